package validate

// FieldError field error to be nested by other errors
type FieldError struct {
	Domain string `json:"domain"`
	Reason string `json:"reason"`
}

// NewFieldError create new field error
func NewFieldError(domain string, reason string) *FieldError {
	return &FieldError{domain, reason}
}

// Validator .
type Validator interface {
	// Struct validate struct fields by their `validate` tags
	Struct(s interface{}) []*FieldError
	// Var validate a single value against tag, reported under name
	Var(name string, value interface{}, tag string) []*FieldError
	// WithLocale validator translating into the best match of an Accept-Language value
	WithLocale(acceptLanguage string) Validator
}
