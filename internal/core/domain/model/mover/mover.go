package mover

import (
	"errors"
	"fmt"
	"strings"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/ddd"
	"movers/internal/pkg/errs"
	"movers/internal/pkg/guard"
)

const (
	maxNameLength    = 255
	maxVehicleLength = 255

	// MinAverage and MaxAverage bound a non-empty rating average.
	MinAverage = 1.0
	MaxAverage = 5.0
)

var (
	ErrNameIsRequired        = errs.NewValueIsRequiredError("name")
	ErrPhoneIsRequired       = errs.NewValueIsRequiredError("phone")
	ErrMoverIsNotConstructed = errors.New("Mover must be created via NewMover constructor")
	ErrMoverIsNotEligible    = errs.NewValueIsInvalidErrorWithCause(
		"moverId", errors.New("mover has not passed identity verification and background check"))
)

type Mover struct {
	ddd.EventRecorder

	id                    kernel.UUID
	name                  string
	phone                 string
	vehicle               string
	location              kernel.Location
	identityVerified      bool
	backgroundCheckPassed bool
	rating                float64
	ratingCount           int64
	guard                 guard.ConstructorGuard
}

// NewMover registers a mover that has not been vetted yet and has no ratings.
func NewMover(id kernel.UUID, name, phone, vehicle string, location kernel.Location) (*Mover, error) {
	m := &Mover{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
		m.setPhone(phone),
		m.setVehicle(vehicle),
		m.setLocation(location),
	); err != nil {
		return nil, err
	}

	m.RaiseDomainEvent(NewRegisteredEvent(m))
	return m, nil
}

// RestoreMover rebuilds a mover from persisted state without raising events.
func RestoreMover(
	id kernel.UUID,
	name, phone, vehicle string,
	location kernel.Location,
	identityVerified, backgroundCheckPassed bool,
	rating float64,
	ratingCount int64,
) (*Mover, error) {
	m := &Mover{
		identityVerified:      identityVerified,
		backgroundCheckPassed: backgroundCheckPassed,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
		m.setPhone(phone),
		m.setVehicle(vehicle),
		m.setLocation(location),
		m.setRating(rating, ratingCount),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Mover) Validate() error {
	if m == nil {
		return ErrMoverIsNotConstructed
	}
	return m.guard.Validate(ErrMoverIsNotConstructed)
}

func (m *Mover) IsEqual(other *Mover) bool {
	if other == nil {
		return false
	}
	return m.id.IsEqual(other.id)
}

func (m *Mover) ID() kernel.UUID {
	return m.id
}

func (m *Mover) Name() string {
	return m.name
}

func (m *Mover) Phone() string {
	return m.phone
}

func (m *Mover) Vehicle() string {
	return m.vehicle
}

func (m *Mover) Location() kernel.Location {
	return m.location
}

func (m *Mover) IdentityVerified() bool {
	return m.identityVerified
}

func (m *Mover) BackgroundCheckPassed() bool {
	return m.backgroundCheckPassed
}

// Rating is the average score, 0 when the mover has not been rated.
func (m *Mover) Rating() float64 {
	return m.rating
}

func (m *Mover) RatingCount() int64 {
	return m.ratingCount
}

// IsEligible reports whether the mover can be matched and booked.
func (m *Mover) IsEligible() bool {
	return m.identityVerified && m.backgroundCheckPassed
}

// EnsureEligible returns ErrMoverIsNotEligible for a mover that cannot be booked.
func (m *Mover) EnsureEligible() error {
	if err := m.Validate(); err != nil {
		return err
	}
	if !m.IsEligible() {
		return ErrMoverIsNotEligible
	}
	return nil
}

// DistanceTo returns the great-circle distance in km from the mover to point.
func (m *Mover) DistanceTo(point kernel.Location) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return m.location.DistanceKm(point)
}

// RecordIdentityVerification stores the outcome reported by the verification provider.
func (m *Mover) RecordIdentityVerification(verified bool) {
	wasEligible := m.IsEligible()
	m.identityVerified = verified
	m.raiseEligibilityChange(wasEligible)
}

// RecordBackgroundCheck stores the outcome of an asynchronously completed background check.
func (m *Mover) RecordBackgroundCheck(passed bool) {
	wasEligible := m.IsEligible()
	m.backgroundCheckPassed = passed
	m.raiseEligibilityChange(wasEligible)
}

func (m *Mover) Relocate(location kernel.Location) error {
	if err := m.setLocation(location); err != nil {
		return err
	}

	m.RaiseDomainEvent(NewRelocatedEvent(m))
	return nil
}

// ApplyRating replaces the aggregate rating. average must be 0 for count 0
// and within [MinAverage..MaxAverage] otherwise.
func (m *Mover) ApplyRating(average float64, count int64) error {
	if err := m.setRating(average, count); err != nil {
		return err
	}

	m.RaiseDomainEvent(NewRatingChangedEvent(m))
	return nil
}

func (m *Mover) raiseEligibilityChange(wasEligible bool) {
	if wasEligible != m.IsEligible() {
		m.RaiseDomainEvent(NewEligibilityChangedEvent(m))
	}
}

func (m *Mover) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Mover) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	if len(name) > maxNameLength {
		return errs.NewValueIsInvalidErrorWithCause("name",
			fmt.Errorf("length %d exceeds %d", len(name), maxNameLength))
	}
	m.name = name
	return nil
}

func (m *Mover) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrPhoneIsRequired
	}
	m.phone = phone
	return nil
}

func (m *Mover) setVehicle(vehicle string) error {
	vehicle = strings.TrimSpace(vehicle)
	if len(vehicle) > maxVehicleLength {
		return errs.NewValueIsInvalidErrorWithCause("vehicle",
			fmt.Errorf("length %d exceeds %d", len(vehicle), maxVehicleLength))
	}
	m.vehicle = vehicle
	return nil
}

func (m *Mover) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	m.location = location
	return nil
}

func (m *Mover) setRating(average float64, count int64) error {
	if count < 0 {
		return errs.NewValueIsInvalidErrorWithCause("ratingCount", fmt.Errorf("%d is negative", count))
	}
	if count == 0 && average != 0 {
		return errs.NewValueIsInvalidErrorWithCause("rating", errors.New("must be 0 without ratings"))
	}
	if count > 0 && (average < MinAverage || average > MaxAverage) {
		return errs.NewValueIsOutOfRangeError("rating", average, MinAverage, MaxAverage)
	}

	m.rating = average
	m.ratingCount = count
	return nil
}
