package collaborator

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const stateLength = 2

type Collaborator struct {
	ID        uint
	UserID    uint
	Name      string
	Email     string
	CPF       string
	City      string
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch holds the fields of a partial update; nil means "keep".
type Patch struct {
	Name  *string
	Email *string
	CPF   *string
	City  *string
	State *string
}

func New(userID uint, name, email, cpf, city, state string) (Collaborator, error) {
	c := Collaborator{
		UserID: userID,
		Name:   strings.TrimSpace(name),
		Email:  NormalizeEmail(email),
		CPF:    NormalizeCPF(cpf),
		City:   strings.TrimSpace(city),
		State:  strings.TrimSpace(state),
	}

	if err := c.validate(cpf); err != nil {
		return Collaborator{}, err
	}
	return c, nil
}

func (c Collaborator) Apply(p Patch) (Collaborator, error) {
	updated := c
	rawCPF := c.CPF

	if p.Name != nil {
		updated.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		updated.Email = NormalizeEmail(*p.Email)
	}
	if p.CPF != nil {
		rawCPF = *p.CPF
		updated.CPF = NormalizeCPF(*p.CPF)
	}
	if p.City != nil {
		updated.City = strings.TrimSpace(*p.City)
	}
	if p.State != nil {
		updated.State = strings.TrimSpace(*p.State)
	}

	if err := updated.validate(rawCPF); err != nil {
		return Collaborator{}, err
	}
	return updated, nil
}

func (c Collaborator) validate(rawCPF string) error {
	verr := NewValidationError()

	required := func(field, value string) bool {
		if value == "" {
			verr.Add(field, fmt.Sprintf("O campo %s é obrigatório.", field))
			return false
		}
		return true
	}

	required("name", c.Name)
	if required("email", c.Email) && !validEmail(c.Email) {
		verr.Add("email", "O campo email deve ser um endereço de e-mail válido.")
	}
	if required("cpf", strings.TrimSpace(rawCPF)) && ValidateCPF(rawCPF) != nil {
		verr.Add("cpf", "O campo cpf não é um CPF válido.")
	}
	required("city", c.City)
	if required("state", c.State) && utf8.RuneCountInString(c.State) != stateLength {
		verr.Add("state", fmt.Sprintf("O campo state deve ter %d caracteres.", stateLength))
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}
