package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

const (
	msgUnauthenticated = "Unauthenticated."
	msgForbidden       = "This action is unauthorized."
	msgNotFound        = "Colaborador não encontrado."
	msgInternal        = "Erro interno do servidor."
)

type messageBody struct {
	Message string `json:"message"`
}

type validationBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func validationFailed(c echo.Context, verr *domain.ValidationError) error {
	return c.JSON(http.StatusUnprocessableEntity, validationBody{
		Message: verr.Error(),
		Errors:  verr.Fields,
	})
}

func fieldError(c echo.Context, field, message string) error {
	verr := domain.NewValidationError()
	verr.Add(field, message)
	return validationFailed(c, verr)
}

// writeError maps use case errors to status codes.
func writeError(c echo.Context, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationFailed(c, verr)
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, messageBody{Message: msgForbidden})
	case errors.Is(err, domain.ErrCollaboratorNotFound):
		return c.JSON(http.StatusNotFound, messageBody{Message: msgNotFound})
	}

	c.Logger().Errorf("request failed: %v", err)
	return c.JSON(http.StatusInternalServerError, messageBody{Message: msgInternal})
}
