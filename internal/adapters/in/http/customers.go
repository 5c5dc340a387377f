package http

import (
	"movers/internal/core/application/usecases/commands"
	"movers/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type registerCustomerRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=320"`
}

// RegisterCustomer handles POST /api/v1/customers. The returned id is the
// X-User-ID value for orders and ratings.
func (s *Server) RegisterCustomer(c echo.Context) error {
	var req registerCustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customerID := kernel.NewUUID()
	cmd, err := commands.NewRegisterCustomerCommand(customerID, req.Name, req.Email)
	if err != nil {
		return err
	}
	if err = s.h.RegisterCustomer.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return created(c, customerID)
}
