package course

import (
	"errors"

	"github.com/pot-code/coursehub/internal/domain"
)

// PassThreshold minimum score that passes a quiz and completes its lesson
const PassThreshold = 70

var (
	// ErrEmptyQuiz quiz has no question to grade
	ErrEmptyQuiz = errors.New("Quiz has no questions")
	// ErrAnswerCountMismatch one selection per question is expected
	ErrAnswerCountMismatch = errors.New("Number of answers does not match number of questions")
	// ErrUnanswered every question must be answered before grading
	ErrUnanswered = errors.New("All questions must be answered")
	// ErrInvalidOption selection outside the option list
	ErrInvalidOption = errors.New("Answer refers to an unknown option")
)

// Grade result of comparing selections to the answer key
type Grade struct {
	CorrectCount int
	Total        int
	Score        int
	Passed       bool
}

// AnswerError locates the offending selection
type AnswerError struct {
	Index int
	Err   error
}

func (ae *AnswerError) Error() string {
	return ae.Err.Error()
}

func (ae *AnswerError) Unwrap() error {
	return ae.Err
}

// Score percentage of correct answers, rounded half up
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}

// GradeQuiz scores selected option indices against the questions' answer key.
// A negative selection means the question is unanswered.
func GradeQuiz(questions []domain.QuizQuestion, selected []int) (*Grade, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuiz
	}
	if len(selected) != len(questions) {
		return nil, ErrAnswerCountMismatch
	}

	correct := 0
	for i, q := range questions {
		s := selected[i]
		if s < 0 {
			return nil, &AnswerError{i, ErrUnanswered}
		}
		if s >= len(q.Options) {
			return nil, &AnswerError{i, ErrInvalidOption}
		}
		if s == q.Correct {
			correct++
		}
	}

	score := Score(correct, len(questions))
	return &Grade{
		CorrectCount: correct,
		Total:        len(questions),
		Score:        score,
		Passed:       score >= PassThreshold,
	}, nil
}
