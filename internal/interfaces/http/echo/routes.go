package echo

import e "github.com/labstack/echo/v4"

type Handlers struct {
	Auth          *AuthHandler
	Collaborators *CollaboratorHandler
	Import        *ImportHandler
}

func RegisterRoutes(server *e.Echo, h Handlers, authenticate, loginLimiter e.MiddlewareFunc) {
	api := server.Group("/api")

	if h.Auth != nil {
		var limit []e.MiddlewareFunc
		if loginLimiter != nil {
			limit = append(limit, loginLimiter)
		}
		api.POST("/login", h.Auth.Login, limit...)
	}

	if h.Import != nil {
		api.POST("/collaborators/import-csv", h.Import.ImportCSV, authenticate)
	}
	if h.Collaborators != nil {
		api.GET("/collaborators", h.Collaborators.List, authenticate)
		api.POST("/collaborators", h.Collaborators.Create, authenticate)
		api.GET("/collaborators/:id", h.Collaborators.Show, authenticate)
		api.PUT("/collaborators/:id", h.Collaborators.Update, authenticate)
		api.DELETE("/collaborators/:id", h.Collaborators.Delete, authenticate)
	}
}
