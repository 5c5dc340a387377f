package commands

import (
	"errors"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/guard"
)

var ErrRegisterCustomerCommandIsNotConstructed = errors.New(
	"RegisterCustomerCommand must be created via NewRegisterCustomerCommand constructor",
)

// RegisterCustomerCommand creates the customer account orders and ratings refer to.
type RegisterCustomerCommand struct {
	customerID kernel.UUID
	name       string
	email      string

	guard guard.ConstructorGuard
}

func NewRegisterCustomerCommand(customerID kernel.UUID, name, email string) (RegisterCustomerCommand, error) {
	if err := customerID.Validate(); err != nil {
		return RegisterCustomerCommand{}, err
	}

	return RegisterCustomerCommand{
		customerID: customerID,
		name:       name,
		email:      email,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterCustomerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCustomerCommandIsNotConstructed)
}

func (c RegisterCustomerCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c RegisterCustomerCommand) Name() string {
	return c.name
}

func (c RegisterCustomerCommand) Email() string {
	return c.email
}
