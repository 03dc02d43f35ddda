package echo

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/collaborators-api/internal/application/auth"
)

const msgInvalidCredentials = "Credenciais inválidas"

type AuthHandler struct {
	useCase app.Login
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func NewAuthHandler(useCase app.Login) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageBody{Message: "Corpo da requisição inválido."})
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.useCase.Execute(c.Request().Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, messageBody{Message: msgInvalidCredentials})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
