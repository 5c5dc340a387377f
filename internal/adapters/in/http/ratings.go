package http

import (
	"net/http"
	"time"

	"movers/internal/core/application/usecases/commands"
	"movers/internal/core/application/usecases/queries"
	"movers/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type submitRatingRequest struct {
	Score   int     `json:"score" validate:"required"`
	Comment string  `json:"comment" validate:"max=2000"`
	OrderID *string `json:"order_id" validate:"omitempty,uuid"`
}

type ratingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MoverID   string    `json:"mover_id"`
	OrderID   *string   `json:"order_id,omitempty"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitRating handles POST /api/v1/movers/:id/ratings on behalf of the X-User-ID user.
func (s *Server) SubmitRating(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	moverID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req submitRatingRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	var orderID *kernel.UUID
	if req.OrderID != nil {
		id, parseErr := kernel.ParseID("order_id", *req.OrderID)
		if parseErr != nil {
			return parseErr
		}
		orderID = &id
	}

	ratingID := kernel.NewUUID()
	cmd, err := commands.NewSubmitRatingCommand(ratingID, userID, moverID, orderID, req.Score, req.Comment)
	if err != nil {
		return err
	}
	if err = s.h.SubmitRating.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return created(c, ratingID)
}

// ListMoverRatings handles GET /api/v1/movers/:id/ratings?limit=&offset=.
func (s *Server) ListMoverRatings(c echo.Context) error {
	moverID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var limit, offset int
	if err = echo.QueryParamsBinder(c).Int("limit", &limit).Int("offset", &offset).BindError(); err != nil {
		return err
	}

	q, err := queries.NewListMoverRatingsQuery(moverID, limit, offset)
	if err != nil {
		return err
	}
	ratings, err := s.h.ListMoverRatings.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}

	out := make([]ratingResponse, 0, len(ratings))
	for _, r := range ratings {
		resp := ratingResponse{
			ID:        r.ID.String(),
			UserID:    r.UserID.String(),
			MoverID:   r.MoverID.String(),
			Score:     r.Score,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		}
		if r.OrderID != nil {
			id := r.OrderID.String()
			resp.OrderID = &id
		}
		out = append(out, resp)
	}

	return c.JSON(http.StatusOK, out)
}

// RecomputeMoverRating handles POST /api/v1/movers/:id/ratings/recompute.
func (s *Server) RecomputeMoverRating(c echo.Context) error {
	moverID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewRecomputeMoverRatingCommand(moverID)
	if err != nil {
		return err
	}
	if err = s.h.RecomputeMoverRating.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
