package echo

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/collaborators-api/internal/application/collaborator"
	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

type CollaboratorUseCases struct {
	Create app.CreateCollaborator
	Get    app.GetCollaborator
	Update app.UpdateCollaborator
	Delete app.DeleteCollaborator
	List   app.ListCollaborators
}

type CollaboratorHandler struct {
	uc CollaboratorUseCases
}

type createCollaboratorRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	CPF   string `json:"cpf" validate:"required,cpf"`
	City  string `json:"city" validate:"required,max=255"`
	State string `json:"state" validate:"required,uf"`
}

func (r *createCollaboratorRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.CPF = strings.TrimSpace(r.CPF)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
}

type updateCollaboratorRequest struct {
	Name  *string `json:"name" validate:"omitnil,required,max=255"`
	Email *string `json:"email" validate:"omitnil,required,email,max=255"`
	CPF   *string `json:"cpf" validate:"omitnil,required,cpf"`
	City  *string `json:"city" validate:"omitnil,required,max=255"`
	State *string `json:"state" validate:"omitnil,required,uf"`
}

func (r *updateCollaboratorRequest) trim() {
	for _, field := range []*string{r.Name, r.Email, r.CPF, r.City, r.State} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

func NewCollaboratorHandler(uc CollaboratorUseCases) *CollaboratorHandler {
	return &CollaboratorHandler{uc: uc}
}

func (h *CollaboratorHandler) List(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	out, err := h.uc.List.Execute(c.Request().Context(), app.ListCollaboratorsInput{
		ActorID: actorID(c),
		Page:    page,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CollaboratorHandler) Create(c echo.Context) error {
	var req createCollaboratorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageBody{Message: "Corpo da requisição inválido."})
	}
	req.trim()
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create.Execute(c.Request().Context(), app.CreateCollaboratorInput{
		ActorID: actorID(c),
		Name:    req.Name,
		Email:   req.Email,
		CPF:     req.CPF,
		City:    req.City,
		State:   req.State,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CollaboratorHandler) Show(c echo.Context) error {
	id, ok := collaboratorID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, messageBody{Message: msgNotFound})
	}

	out, err := h.uc.Get.Execute(c.Request().Context(), app.GetCollaboratorInput{
		ActorID: actorID(c),
		ID:      id,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CollaboratorHandler) Update(c echo.Context) error {
	id, ok := collaboratorID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, messageBody{Message: msgNotFound})
	}

	var req updateCollaboratorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageBody{Message: "Corpo da requisição inválido."})
	}
	req.trim()
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Update.Execute(c.Request().Context(), app.UpdateCollaboratorInput{
		ActorID: actorID(c),
		ID:      id,
		Patch: domain.Patch{
			Name:  req.Name,
			Email: req.Email,
			CPF:   req.CPF,
			City:  req.City,
			State: req.State,
		},
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CollaboratorHandler) Delete(c echo.Context) error {
	id, ok := collaboratorID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, messageBody{Message: msgNotFound})
	}

	err := h.uc.Delete.Execute(c.Request().Context(), app.DeleteCollaboratorInput{
		ActorID: actorID(c),
		ID:      id,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func collaboratorID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
