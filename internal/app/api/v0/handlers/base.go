package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/argus-sec/argus-portal/internal/app/api/core"
	"github.com/argus-sec/argus-portal/internal/app/api/core/middleware/cors"
	"github.com/argus-sec/argus-portal/internal/app/api/core/middleware/csrf"
	"github.com/argus-sec/argus-portal/internal/app/api/core/respond"
	"github.com/argus-sec/argus-portal/internal/app/api/v0/model"
	"github.com/argus-sec/argus-portal/internal/domain"
)

type SessionMiddleware interface {
	// SetData sets the session data for the given context.
	SetData(ctx context.Context, val SessionData)
	// GetData returns the session data for the given context. If no data is found, the default session data is returned.
	GetData(ctx context.Context) SessionData
	// DestroyData destroys the session data for the given context.
	DestroyData(ctx context.Context)

	// LoadAndSave is a middleware that loads the session data for the given request and saves it after the request is
	// finished.
	LoadAndSave(next http.Handler) http.Handler
}

type Handler interface {
	// GetName returns the name of the handler.
	GetName() string
	// RegisterRoutes registers the routes for the handler. The session manager is passed to the handler.
	RegisterRoutes(g *routegroup.Bundle)
}

// To compile the API documentation use the
// api_build_tool
// command that can be found in the $PROJECT_ROOT/cmd/api_build_tool directory.

// @title Argus Portal SPA-UI API
// @version 0.0
// @description Argus Portal API - UI Endpoints

// @contact.name Argus Portal Developers
// @contact.url https://github.com/argus-sec/argus-portal

// @BasePath /api/v0
// @query.collection.format multi

func NewRestApi(
	session SessionMiddleware,
	handlers ...Handler,
) core.ApiEndpointSetupFunc {
	return func() (core.ApiVersion, core.GroupSetupFn) {
		return "v0", func(group *routegroup.Bundle) {
			csrfMiddleware := csrf.New(func(r *http.Request) string {
				return session.GetData(r.Context()).CsrfToken
			}, func(r *http.Request, token string) {
				currentSession := session.GetData(r.Context())
				currentSession.CsrfToken = token
				session.SetData(r.Context(), currentSession)
			})

			group.Use(session.LoadAndSave)
			group.Use(csrfMiddleware.Handler)
			group.Use(cors.New().Handler)
			group.Use(AdminUserContext())

			group.With(csrfMiddleware.RefreshToken).HandleFunc("GET /csrf", handleCsrfGet())

			// Handler functions
			for _, h := range handlers {
				h.RegisterRoutes(group)
			}
		}
	}
}

// handleCsrfGet returns a gorm Handler function.
//
// @ID base_handleCsrfGet
// @Tags Security
// @Summary Get a CSRF token for the current session.
// @Produce json
// @Success 200 {object} string
// @Router /csrf [get]
func handleCsrfGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, csrf.GetToken(r.Context()))
	}
}

// ParseServiceError maps an error from the service layer to an HTTP status
// code and the wire error envelope. Storage and other unclassified errors
// stay in the log, the client only sees a generic message for those.
func ParseServiceError(err error) (int, model.Error) {
	if err == nil {
		return http.StatusInternalServerError, model.Error{
			Code:    http.StatusInternalServerError,
			Message: "unknown server error",
		}
	}

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, domain.ErrNoPermission):
		code = http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateEntry):
		code = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidData):
		code = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidState):
		code = http.StatusBadRequest
	}

	if code == http.StatusInternalServerError {
		slog.Error("service call failed", "error", err)
		return code, model.Error{
			Code:    code,
			Message: "internal server error",
		}
	}

	return code, model.Error{
		Code:    code,
		Message: err.Error(),
	}
}

// region handler-interfaces

type Session interface {
	// SetData sets the session data for the given context.
	SetData(ctx context.Context, val SessionData)
	// GetData returns the session data for the given context. If no data is found, the default session data is returned.
	GetData(ctx context.Context) SessionData
}

type Validator interface {
	// Struct validates the given struct.
	Struct(s interface{}) error
}

// endregion handler-interfaces
