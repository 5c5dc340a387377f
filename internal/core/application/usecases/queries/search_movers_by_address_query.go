package queries

import (
	"errors"
	"strings"

	"movers/internal/pkg/errs"
	"movers/internal/pkg/guard"
)

var ErrSearchMoversByAddressQueryIsNotConstructed = errors.New(
	"SearchMoversByAddressQuery must be created via NewSearchMoversByAddressQuery constructor",
)

// SearchMoversByAddressQuery finds the nearest eligible movers to a free-text
// address or an IP address.
type SearchMoversByAddressQuery struct {
	address  string
	limit    int
	radiusKm float64

	guard guard.ConstructorGuard
}

func NewSearchMoversByAddressQuery(address string, limit int, radiusKm float64) (SearchMoversByAddressQuery, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return SearchMoversByAddressQuery{}, errs.NewValueIsRequiredError("address")
	}

	return SearchMoversByAddressQuery{
		address:  address,
		limit:    limit,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q SearchMoversByAddressQuery) Validate() error {
	return q.guard.Validate(ErrSearchMoversByAddressQueryIsNotConstructed)
}

func (q SearchMoversByAddressQuery) Address() string {
	return q.address
}

func (q SearchMoversByAddressQuery) Limit() int {
	return q.limit
}

func (q SearchMoversByAddressQuery) RadiusKm() float64 {
	return q.radiusKm
}
