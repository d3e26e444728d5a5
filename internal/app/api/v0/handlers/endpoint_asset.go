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

type AssetService interface {
	// GetAllAssets returns the complete asset catalog.
	GetAllAssets(ctx context.Context) ([]domain.Asset, error)
	// GetAsset returns a single asset by its identifier.
	GetAsset(ctx context.Context, id domain.AssetIdentifier) (*domain.Asset, error)
	// GetAllVulnerabilities returns all tracked vulnerabilities.
	GetAllVulnerabilities(ctx context.Context) ([]domain.Vulnerability, error)
	// GetVulnerability returns a single vulnerability by its identifier.
	GetVulnerability(ctx context.Context, id domain.VulnerabilityIdentifier) (*domain.Vulnerability, error)
}

type AssetEndpoint struct {
	assetService AssetService
}

func NewAssetEndpoint(assetService AssetService) AssetEndpoint {
	return AssetEndpoint{
		assetService: assetService,
	}
}

func (e AssetEndpoint) GetName() string {
	return "AssetEndpoint"
}

func (e AssetEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/asset")
	apiGroup.HandleFunc("GET /all", e.handleAllGet())
	apiGroup.HandleFunc("GET /{id}", e.handleSingleGet())

	vulnGroup := g.Mount("/vulnerability")
	vulnGroup.HandleFunc("GET /all", e.handleVulnerabilityAllGet())
	vulnGroup.HandleFunc("GET /{id}", e.handleVulnerabilitySingleGet())
}

// handleAllGet returns a gorm Handler function.
//
// @ID asset_handleAllGet
// @Tags Asset
// @Summary Get the complete asset catalog.
// @Produce json
// @Success 200 {object} []model.Asset
// @Failure 500 {object} model.Error
// @Router /asset/all [get]
func (e AssetEndpoint) handleAllGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := e.assetService.GetAllAssets(r.Context())
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewAssets(assets))
	}
}

// handleSingleGet returns a gorm Handler function.
//
// @ID asset_handleSingleGet
// @Tags Asset
// @Summary Get a single asset.
// @Produce json
// @Param id path string true "The asset identifier"
// @Success 200 {object} model.Asset
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /asset/{id} [get]
func (e AssetEndpoint) handleSingleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetId, err := request.PathUint(r, "id")
		if err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		asset, err := e.assetService.GetAsset(r.Context(), domain.AssetIdentifier(assetId))
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewAsset(asset))
	}
}

// handleVulnerabilityAllGet returns a gorm Handler function.
//
// @ID asset_handleVulnerabilityAllGet
// @Tags Asset
// @Summary Get all tracked vulnerabilities.
// @Produce json
// @Success 200 {object} []model.Vulnerability
// @Failure 500 {object} model.Error
// @Router /vulnerability/all [get]
func (e AssetEndpoint) handleVulnerabilityAllGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vulnerabilities, err := e.assetService.GetAllVulnerabilities(r.Context())
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewVulnerabilities(vulnerabilities))
	}
}

// handleVulnerabilitySingleGet returns a gorm Handler function.
//
// @ID asset_handleVulnerabilitySingleGet
// @Tags Asset
// @Summary Get a single vulnerability.
// @Produce json
// @Param id path string true "The vulnerability identifier"
// @Success 200 {object} model.Vulnerability
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /vulnerability/{id} [get]
func (e AssetEndpoint) handleVulnerabilitySingleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vulnerabilityId, err := request.PathUint(r, "id")
		if err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		vulnerability, err := e.assetService.GetVulnerability(r.Context(),
			domain.VulnerabilityIdentifier(vulnerabilityId))
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewVulnerability(vulnerability))
	}
}
