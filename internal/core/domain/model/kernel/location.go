package kernel

import (
	"errors"
	"fmt"
	"math"

	"movers/internal/pkg/errs"
	"movers/internal/pkg/guard"

	"github.com/golang/geo/s2"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	// EarthRadiusKm is the WGS84 mean earth radius.
	EarthRadiusKm = 6371.0088
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation")

// Location is an immutable geographic point in decimal degrees.
//
// Example:
//
//	origin, err := kernel.NewLocation(40.0, -73.0)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(origin) // Location(40.000000,-73.000000)
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation validates latitude in [-90..90] and longitude in [-180..180].
// NaN and infinities are rejected as out of range.
func NewLocation(latitude, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Latitude() float64 {
	return l.latitude
}

func (l Location) Longitude() float64 {
	return l.longitude
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual reports whether both points have identical coordinates.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

// DistanceKm returns the great-circle distance between two points in kilometres.
// The metric is symmetric and zero for identical points.
//
//	a, _ := kernel.NewLocation(40.0, -73.0)
//	b, _ := kernel.NewLocation(41.0, -74.0)
//	d, _ := a.DistanceKm(b) // ~139.69
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	angle := l.latLng().Distance(other.latLng())
	return angle.Radians() * EarthRadiusKm, nil
}

func (l Location) latLng() s2.LatLng {
	return s2.LatLngFromDegrees(l.latitude, l.longitude)
}

func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	l.longitude = longitude
	return nil
}
