package http

import (
	"net/http"

	"movers/internal/core/application/usecases/commands"
	"movers/internal/core/application/usecases/queries"
	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/ports"

	"github.com/labstack/echo/v4"
)

type identityDocumentRequest struct {
	FullName       string `json:"full_name" validate:"required,max=200"`
	DocumentType   string `json:"document_type" validate:"max=50"`
	DocumentNumber string `json:"document_number" validate:"required,max=100"`
	Country        string `json:"country" validate:"omitempty,len=2"`
}

type registerMoverRequest struct {
	Name      string                  `json:"name" validate:"required,max=100"`
	Phone     string                  `json:"phone" validate:"required,phone"`
	Vehicle   string                  `json:"vehicle" validate:"required,max=100"`
	Latitude  *float64                `json:"latitude" validate:"required"`
	Longitude *float64                `json:"longitude" validate:"required"`
	Document  identityDocumentRequest `json:"identity_document"`
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

type backgroundCheckRequest struct {
	Passed *bool `json:"passed" validate:"required"`
}

type moverResponse struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Phone                 string  `json:"phone"`
	Vehicle               string  `json:"vehicle"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	IdentityVerified      bool    `json:"identity_verified"`
	BackgroundCheckPassed bool    `json:"background_check_passed"`
	Eligible              bool    `json:"eligible"`
	Rating                float64 `json:"rating"`
	RatingCount           int64   `json:"rating_count"`
}

type moverMatchResponse struct {
	moverResponse
	DistanceKm float64 `json:"distance_km"`
}

func toMoverResponse(m queries.MoverResponse) moverResponse {
	return moverResponse{
		ID:                    m.ID.String(),
		Name:                  m.Name,
		Phone:                 m.Phone,
		Vehicle:               m.Vehicle,
		Latitude:              m.Location.Latitude(),
		Longitude:             m.Location.Longitude(),
		IdentityVerified:      m.IdentityVerified,
		BackgroundCheckPassed: m.BackgroundCheckPassed,
		Eligible:              m.Eligible,
		Rating:                m.Rating,
		RatingCount:           m.RatingCount,
	}
}

func toMatchResponses(matches []queries.MoverMatchResponse) []moverMatchResponse {
	out := make([]moverMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, moverMatchResponse{moverResponse: toMoverResponse(m.MoverResponse), DistanceKm: m.DistanceKm})
	}
	return out
}

// RegisterMover handles POST /api/v1/movers.
func (s *Server) RegisterMover(c echo.Context) error {
	var req registerMoverRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	location, err := kernel.NewLocation(*req.Latitude, *req.Longitude)
	if err != nil {
		return err
	}

	moverID := kernel.NewUUID()
	cmd, err := commands.NewRegisterMoverCommand(moverID, req.Name, req.Phone, req.Vehicle, location,
		ports.IdentityDocument{
			FullName:       req.Document.FullName,
			DocumentType:   req.Document.DocumentType,
			DocumentNumber: req.Document.DocumentNumber,
			Country:        req.Document.Country,
		})
	if err != nil {
		return err
	}

	if err = s.h.RegisterMover.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return created(c, moverID)
}

// GetMover handles GET /api/v1/movers/:id.
func (s *Server) GetMover(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	q, err := queries.NewGetMoverQuery(id)
	if err != nil {
		return err
	}

	m, err := s.h.GetMover.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMoverResponse(m))
}

// UpdateMoverLocation handles PUT /api/v1/movers/:id/location.
func (s *Server) UpdateMoverLocation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req locationRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	location, err := kernel.NewLocation(*req.Latitude, *req.Longitude)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateMoverLocationCommand(id, location)
	if err != nil {
		return err
	}
	if err = s.h.UpdateMoverLocation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// RecordBackgroundCheck handles POST /api/v1/movers/:id/background-check,
// the callback of an asynchronous background check.
func (s *Server) RecordBackgroundCheck(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req backgroundCheckRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRecordBackgroundCheckCommand(id, *req.Passed)
	if err != nil {
		return err
	}
	if err = s.h.RecordBackgroundCheck.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// FindNearestMovers handles GET /api/v1/movers/nearest?lat=&lng=&limit=&radius_km=.
func (s *Server) FindNearestMovers(c echo.Context) error {
	var (
		lat, lng, radiusKm float64
		limit              int
	)
	if err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &lat).
		MustFloat64("lng", &lng).
		Int("limit", &limit).
		Float64("radius_km", &radiusKm).
		BindError(); err != nil {
		return err
	}

	origin, err := kernel.NewLocation(lat, lng)
	if err != nil {
		return err
	}
	q, err := queries.NewFindNearestMoversQuery(origin, limit, radiusKm)
	if err != nil {
		return err
	}

	matches, err := s.h.FindNearestMovers.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMatchResponses(matches))
}

// SearchMovers handles GET /api/v1/movers/search?address=&limit=&radius_km=.
// Without an address the caller's IP address is geolocated instead.
func (s *Server) SearchMovers(c echo.Context) error {
	var (
		address  string
		radiusKm float64
		limit    int
	)
	if err := echo.QueryParamsBinder(c).
		String("address", &address).
		Int("limit", &limit).
		Float64("radius_km", &radiusKm).
		BindError(); err != nil {
		return err
	}
	if address == "" {
		address = c.RealIP()
	}

	q, err := queries.NewSearchMoversByAddressQuery(address, limit, radiusKm)
	if err != nil {
		return err
	}

	matches, err := s.h.SearchMovers.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMatchResponses(matches))
}
