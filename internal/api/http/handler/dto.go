package handler

import (
	"fmt"
	"time"

	"github.com/dtroode/georegions-server/internal/model"
)

// Points travel as [latitude, longitude] pairs.

type userResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Address     string     `json:"address"`
	Coordinates [2]float64 `json:"coordinates"`
	Regions     []string   `json:"regions"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type createUserRequest struct {
	Name        string    `json:"name" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	Address     *string   `json:"address"`
	Coordinates []float64 `json:"coordinates" validate:"omitempty,len=2"`
}

type updateUserRequest struct {
	Name        *string   `json:"name"`
	Email       *string   `json:"email" validate:"omitempty,email"`
	Address     *string   `json:"address"`
	Coordinates []float64 `json:"coordinates" validate:"omitempty,len=2"`
}

type regionResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Coordinates [2]float64   `json:"coordinates"`
	Boundary    [][2]float64 `json:"boundary,omitempty"`
	User        string       `json:"user"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type createRegionRequest struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Coordinates []float64   `json:"coordinates" validate:"required,len=2"`
	Boundary    [][]float64 `json:"boundary" validate:"omitempty,min=3,dive,len=2"`
	User        string      `json:"user" validate:"required"`
}

// updateRegionRequest accepts the owner as either user or userId.
type updateRegionRequest struct {
	Name        *string      `json:"name"`
	Coordinates []float64    `json:"coordinates" validate:"omitempty,len=2"`
	Boundary    *[][]float64 `json:"boundary" validate:"omitempty,dive,len=2"`
	User        *string      `json:"user"`
	UserID      *string      `json:"userId"`
}

func pair(p model.Point) [2]float64 {
	return [2]float64{p.Lat, p.Lng}
}

// pointFromPair returns nil for an absent pair.
func pointFromPair(field string, v []float64) (*model.Point, error) {
	if v == nil {
		return nil, nil
	}
	if len(v) != 2 {
		return nil, fmt.Errorf("%w: %s must be [latitude, longitude]", model.ErrValidation, field)
	}
	return &model.Point{Lat: v[0], Lng: v[1]}, nil
}

func pointsFromPairs(field string, v [][]float64) ([]model.Point, error) {
	if v == nil {
		return nil, nil
	}
	points := make([]model.Point, 0, len(v))
	for _, pt := range v {
		p, err := pointFromPair(field, pt)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: %s must not contain null points", model.ErrValidation, field)
		}
		points = append(points, *p)
	}
	return points, nil
}

func newUserResponse(u model.User) userResponse {
	regions := u.Regions
	if regions == nil {
		regions = []string{}
	}
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Address:     u.Address,
		Coordinates: pair(u.Coordinates),
		Regions:     regions,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func newUserResponses(users []model.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	return out
}

func newRegionResponse(r model.Region) regionResponse {
	resp := regionResponse{
		ID:          r.ID,
		Name:        r.Name,
		Coordinates: pair(r.Coordinates),
		User:        r.Owner,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	for _, p := range r.Boundary {
		resp.Boundary = append(resp.Boundary, pair(p))
	}
	return resp
}

func newRegionResponses(regions []model.Region) []regionResponse {
	out := make([]regionResponse, 0, len(regions))
	for _, r := range regions {
		out = append(out, newRegionResponse(r))
	}
	return out
}

func (req createUserRequest) params() (model.CreateUserParams, error) {
	coords, err := pointFromPair("coordinates", req.Coordinates)
	if err != nil {
		return model.CreateUserParams{}, err
	}
	return model.CreateUserParams{
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		Coordinates: coords,
	}, nil
}

func (req updateUserRequest) params() (model.UpdateUserParams, error) {
	coords, err := pointFromPair("coordinates", req.Coordinates)
	if err != nil {
		return model.UpdateUserParams{}, err
	}
	return model.UpdateUserParams{
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		Coordinates: coords,
	}, nil
}

func (req createRegionRequest) params() (model.CreateRegionParams, error) {
	coords, err := pointFromPair("coordinates", req.Coordinates)
	if err != nil {
		return model.CreateRegionParams{}, err
	}
	boundary, err := pointsFromPairs("boundary", req.Boundary)
	if err != nil {
		return model.CreateRegionParams{}, err
	}
	return model.CreateRegionParams{
		ID:          req.ID,
		Name:        req.Name,
		Coordinates: *coords,
		Boundary:    boundary,
		Owner:       req.User,
	}, nil
}

func (req updateRegionRequest) params() (model.UpdateRegionParams, error) {
	if req.User != nil && req.UserID != nil && *req.User != *req.UserID {
		return model.UpdateRegionParams{}, fmt.Errorf("%w: user and userId disagree", model.ErrValidation)
	}

	coords, err := pointFromPair("coordinates", req.Coordinates)
	if err != nil {
		return model.UpdateRegionParams{}, err
	}

	params := model.UpdateRegionParams{
		Name:        req.Name,
		Coordinates: coords,
		Owner:       req.User,
	}
	if params.Owner == nil {
		params.Owner = req.UserID
	}
	if req.Boundary != nil {
		boundary, err := pointsFromPairs("boundary", *req.Boundary)
		if err != nil {
			return model.UpdateRegionParams{}, err
		}
		params.Boundary = &boundary
	}
	return params, nil
}
