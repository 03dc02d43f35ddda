package echo

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return domain.ValidateCPF(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) == 2
	})
	return &RequestValidator{validate: v}
}

// Validate returns a *domain.ValidationError keyed by json field name.
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := domain.NewValidationError()
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("O campo %s é obrigatório.", field)
	case "email":
		return fmt.Sprintf("O campo %s deve ser um endereço de e-mail válido.", field)
	case "cpf":
		return fmt.Sprintf("O campo %s não é um CPF válido.", field)
	case "uf":
		return fmt.Sprintf("O campo %s deve ter 2 caracteres.", field)
	case "max":
		return fmt.Sprintf("O campo %s não pode ter mais de %s caracteres.", field, fe.Param())
	default:
		return fmt.Sprintf("O campo %s é inválido.", field)
	}
}
