package uuid

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid"
)

// Generator entity id generator
type Generator interface {
	Generate() (string, error)
}

// DefaultAlphabet drops '-' and '_' so ids stay selectable in urls and logs
const DefaultAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// NanoIDGenerator ids of a fixed length drawn from Alphabet
type NanoIDGenerator struct {
	Length   int
	Alphabet string
}

var _ Generator = &NanoIDGenerator{}

// NewNanoIDGenerator panics on a non-positive length
func NewNanoIDGenerator(length int) *NanoIDGenerator {
	if length < 1 {
		panic(fmt.Sprintf("id length must be positive, got %d", length))
	}
	return &NanoIDGenerator{Length: length, Alphabet: DefaultAlphabet}
}

func (ng *NanoIDGenerator) Generate() (string, error) {
	if ng.Alphabet == "" {
		return gonanoid.Nanoid(ng.Length)
	}
	return gonanoid.Generate(ng.Alphabet, ng.Length)
}
