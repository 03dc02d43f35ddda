package collaborator

import "errors"

var (
	ErrCPFInvalidFormat     = errors.New("invalid cpf format")
	ErrCPFChecksumMismatch  = errors.New("cpf checksum mismatch")
	ErrEmailTaken           = errors.New("email already taken")
	ErrCPFTaken             = errors.New("cpf already taken")
	ErrCollaboratorNotFound = errors.New("collaborator not found")
	ErrForbidden            = errors.New("action not allowed for this user")
)

type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	for _, field := range fieldOrder {
		if msgs, ok := e.Fields[field]; ok && len(msgs) > 0 {
			return msgs[0]
		}
	}
	for _, msgs := range e.Fields {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return "invalid data"
}

// ConflictError turns a store uniqueness error into a field error.
func ConflictError(err error) (*ValidationError, bool) {
	verr := NewValidationError()
	switch {
	case errors.Is(err, ErrEmailTaken):
		verr.Add("email", "O campo email já está sendo utilizado.")
	case errors.Is(err, ErrCPFTaken):
		verr.Add("cpf", "O campo cpf já está sendo utilizado.")
	default:
		return nil, false
	}
	return verr, true
}

var fieldOrder = []string{"name", "email", "cpf", "city", "state"}
