package customer_test

import (
	"strings"
	"testing"
	"time"

	"movers/internal/core/domain/model/customer"
	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))

	t.Run("valid customer", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := customer.NewCustomer(id, "  Jane Doe ", " Jane@Example.com ", now)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "Jane Doe", c.Name())
		assert.Equal(t, "jane@example.com", c.Email())
		assert.Equal(t, time.UTC, c.CreatedAt().Location())
		assert.True(t, c.CreatedAt().Equal(now))
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.UUID{}, " ", "", time.Time{})

		assert.Nil(t, c)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, customer.ErrNameIsRequired)
		require.ErrorIs(t, err, customer.ErrEmailIsRequired)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("malformed email", func(t *testing.T) {
		_, err := customer.NewCustomer(kernel.NewUUID(), "Jane", "jane.example.com", now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := customer.NewCustomer(kernel.NewUUID(), strings.Repeat("n", 256), "jane@example.com", now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCustomer_ValidateZeroValue(t *testing.T) {
	var c *customer.Customer
	require.ErrorIs(t, c.Validate(), customer.ErrCustomerIsNotConstructed)
	require.ErrorIs(t, (&customer.Customer{}).Validate(), customer.ErrCustomerIsNotConstructed)
}
