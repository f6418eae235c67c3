package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/georegions-server/internal/logger"
	"github.com/dtroode/georegions-server/internal/model"
)

// RegionService defines business operations and geospatial queries for
// regions.
type RegionService interface {
	Create(ctx context.Context, params model.CreateRegionParams) (model.Region, error)
	Get(ctx context.Context, id string) (model.Region, error)
	List(ctx context.Context) ([]model.Region, error)
	Update(ctx context.Context, id string, params model.UpdateRegionParams) (model.Region, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindContainingPoint(ctx context.Context, p model.Point) ([]model.Region, error)
	FindWithinDistance(ctx context.Context, p model.Point, maxDistance float64, ownerID string) ([]model.Region, error)
}

// Region handles HTTP endpoints for regions.
type Region struct {
	regionService RegionService
	logger        *logger.Logger
}

// NewRegion creates a new Region handler.
func NewRegion(regionService RegionService, logger *logger.Logger) *Region {
	return &Region{
		regionService: regionService,
		logger:        logger,
	}
}

// Create handles POST /regions.
func (h *Region) Create(w http.ResponseWriter, r *http.Request) {
	var req createRegionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug("Region handler: invalid create request", "error", err.Error())
		handleError(w, err)
		return
	}

	params, err := req.params()
	if err != nil {
		handleError(w, err)
		return
	}

	region, err := h.regionService.Create(r.Context(), params)
	if err != nil {
		h.logFailure("create region failed", params.ID, err)
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newRegionResponse(region))
}

// List handles GET /regions.
func (h *Region) List(w http.ResponseWriter, r *http.Request) {
	regions, err := h.regionService.List(r.Context())
	if err != nil {
		h.logFailure("list regions failed", "", err)
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newRegionResponses(regions))
}

// Get handles GET /regions/{id}.
func (h *Region) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	region, err := h.regionService.Get(r.Context(), id)
	if err != nil {
		h.logFailure("get region failed", id, err)
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newRegionResponse(region))
}

// Update handles PUT /regions/{id}.
func (h *Region) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRegionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug("Region handler: invalid update request", "region_id", id, "error", err.Error())
		handleError(w, err)
		return
	}

	params, err := req.params()
	if err != nil {
		handleError(w, err)
		return
	}

	region, err := h.regionService.Update(r.Context(), id, params)
	if err != nil {
		h.logFailure("update region failed", id, err)
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newRegionResponse(region))
}

// Delete handles DELETE /regions/{id}.
func (h *Region) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.regionService.Delete(r.Context(), id)
	if err != nil {
		h.logFailure("delete region failed", id, err)
		handleError(w, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "region not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FindContainingPoint handles GET /regions/containing/point.
func (h *Region) FindContainingPoint(w http.ResponseWriter, r *http.Request) {
	p, err := queryPoint(r)
	if err != nil {
		handleError(w, err)
		return
	}

	regions, err := h.regionService.FindContainingPoint(r.Context(), p)
	if err != nil {
		h.logFailure("find regions containing point failed", "", err)
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newRegionResponses(regions))
}

// FindWithinDistance handles GET /regions/within/distance. maxDistance is in
// metres; userId optionally restricts the owner.
func (h *Region) FindWithinDistance(w http.ResponseWriter, r *http.Request) {
	p, err := queryPoint(r)
	if err != nil {
		handleError(w, err)
		return
	}

	maxDistance, err := queryFloat(r, "maxDistance")
	if err != nil {
		handleError(w, err)
		return
	}

	regions, err := h.regionService.FindWithinDistance(r.Context(), p, maxDistance, r.URL.Query().Get("userId"))
	if err != nil {
		h.logFailure("find regions within distance failed", "", err)
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newRegionResponses(regions))
}

func (h *Region) logFailure(msg, id string, err error) {
	status, _ := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Region handler: "+msg, "region_id", id, "error", err.Error())
		return
	}
	h.logger.Debug("Region handler: "+msg, "region_id", id, "error", err.Error())
}

func queryPoint(r *http.Request) (model.Point, error) {
	lat, err := queryFloat(r, "latitude")
	if err != nil {
		return model.Point{}, err
	}
	lng, err := queryFloat(r, "longitude")
	if err != nil {
		return model.Point{}, err
	}
	return model.Point{Lat: lat, Lng: lng}, nil
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: query parameter %s is required", model.ErrValidation, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %s must be a number", model.ErrValidation, name)
	}
	return v, nil
}
