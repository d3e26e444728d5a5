package handlers

import (
	"context"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/argus-sec/argus-portal/internal/app/api/core/request"
	"github.com/argus-sec/argus-portal/internal/app/api/core/respond"
	"github.com/argus-sec/argus-portal/internal/app/api/v0/model"
	"github.com/argus-sec/argus-portal/internal/domain"
)

type ActivityService interface {
	// GetAll returns the newest activity entries up to the given limit.
	GetAll(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
	// GetForEntity returns the newest activity entries for one entity type.
	GetForEntity(ctx context.Context, entityType string, limit int) ([]domain.ActivityEntry, error)
}

type ActivityEndpoint struct {
	activityService ActivityService
}

func NewActivityEndpoint(activityService ActivityService) ActivityEndpoint {
	return ActivityEndpoint{
		activityService: activityService,
	}
}

func (e ActivityEndpoint) GetName() string {
	return "ActivityEndpoint"
}

func (e ActivityEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/activity")

	apiGroup.HandleFunc("GET /all", e.handleAllGet())
}

// handleAllGet returns a gorm Handler function.
//
// @ID activity_handleAllGet
// @Tags Activity
// @Summary Get the newest activity entries. Ordered by timestamp.
// @Produce json
// @Param limit query int false "Maximum number of entries, defaults to 50"
// @Param entityType query string false "Restrict the feed to one entity type"
// @Success 200 {object} []model.ActivityEntry
// @Failure 500 {object} model.Error
// @Router /activity/all [get]
func (e ActivityEndpoint) handleAllGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := request.QueryIntDefault(r, "limit", 50)
		entityType := request.Query(r, "entityType")

		var entries []domain.ActivityEntry
		var err error
		if entityType != "" {
			entries, err = e.activityService.GetForEntity(r.Context(), entityType, limit)
		} else {
			entries, err = e.activityService.GetAll(r.Context(), limit)
		}
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewActivityEntries(entries))
	}
}
