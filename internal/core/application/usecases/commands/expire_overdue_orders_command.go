package commands

import (
	"errors"
	"time"

	"movers/internal/pkg/errs"
	"movers/internal/pkg/guard"
)

const DefaultExpiryBatchSize = 100

var ErrExpireOverdueOrdersCommandIsNotConstructed = errors.New(
	"ExpireOverdueOrdersCommand must be created via NewExpireOverdueOrdersCommand constructor",
)

// ExpireOverdueOrdersCommand cancels pending orders whose start time has passed.
type ExpireOverdueOrdersCommand struct {
	now   time.Time
	limit int
	guard guard.ConstructorGuard
}

// NewExpireOverdueOrdersCommand uses DefaultExpiryBatchSize for limit <= 0.
func NewExpireOverdueOrdersCommand(now time.Time, limit int) (ExpireOverdueOrdersCommand, error) {
	if now.IsZero() {
		return ExpireOverdueOrdersCommand{}, errs.NewValueIsRequiredError("now")
	}
	if limit <= 0 {
		limit = DefaultExpiryBatchSize
	}
	return ExpireOverdueOrdersCommand{now: now, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireOverdueOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOverdueOrdersCommandIsNotConstructed)
}

func (c ExpireOverdueOrdersCommand) Now() time.Time {
	return c.now
}

func (c ExpireOverdueOrdersCommand) Limit() int {
	return c.limit
}
