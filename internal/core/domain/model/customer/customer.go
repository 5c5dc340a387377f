// Package customer holds the Customer entity: the account that books orders
// and rates movers. Customers are referenced by id from orders and ratings.
package customer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/errs"
	"movers/internal/pkg/guard"
)

const (
	maxNameLength  = 255
	maxEmailLength = 320
)

var (
	ErrNameIsRequired           = errs.NewValueIsRequiredError("name")
	ErrEmailIsRequired          = errs.NewValueIsRequiredError("email")
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
)

type Customer struct {
	id        kernel.UUID
	name      string
	email     string
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewCustomer registers a customer. The email is stored lower-cased.
func NewCustomer(id kernel.UUID, name, email string, createdAt time.Time) (*Customer, error) {
	c := &Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setEmail(email),
		c.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Email() string {
	return c.email
}

func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	if len(name) > maxNameLength {
		return errs.NewValueIsInvalidErrorWithCause("name",
			fmt.Errorf("length %d exceeds %d", len(name), maxNameLength))
	}
	c.name = name
	return nil
}

func (c *Customer) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrEmailIsRequired
	}
	if len(email) > maxEmailLength || !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidError("email")
	}
	c.email = email
	return nil
}

func (c *Customer) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	c.createdAt = createdAt.UTC()
	return nil
}
