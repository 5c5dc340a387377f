package mover

import "movers/internal/pkg/ddd"

const (
	RegisteredEventName         = "mover.registered"
	RelocatedEventName          = "mover.relocated"
	EligibilityChangedEventName = "mover.eligibility_changed"
	RatingChangedEventName      = "mover.rating_changed"
)

type RegisteredEvent struct {
	ddd.BaseEvent
	MoverName string `json:"name"`
	Vehicle   string `json:"vehicle"`
}

func NewRegisteredEvent(m *Mover) RegisteredEvent {
	return RegisteredEvent{
		BaseEvent: ddd.NewBaseEvent(RegisteredEventName, m.ID().String()),
		MoverName: m.Name(),
		Vehicle:   m.Vehicle(),
	}
}

type RelocatedEvent struct {
	ddd.BaseEvent
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewRelocatedEvent(m *Mover) RelocatedEvent {
	return RelocatedEvent{
		BaseEvent: ddd.NewBaseEvent(RelocatedEventName, m.ID().String()),
		Latitude:  m.Location().Latitude(),
		Longitude: m.Location().Longitude(),
	}
}

type EligibilityChangedEvent struct {
	ddd.BaseEvent
	IdentityVerified      bool `json:"identityVerified"`
	BackgroundCheckPassed bool `json:"backgroundCheckPassed"`
	Eligible              bool `json:"eligible"`
}

func NewEligibilityChangedEvent(m *Mover) EligibilityChangedEvent {
	return EligibilityChangedEvent{
		BaseEvent:             ddd.NewBaseEvent(EligibilityChangedEventName, m.ID().String()),
		IdentityVerified:      m.IdentityVerified(),
		BackgroundCheckPassed: m.BackgroundCheckPassed(),
		Eligible:              m.IsEligible(),
	}
}

type RatingChangedEvent struct {
	ddd.BaseEvent
	Rating      float64 `json:"rating"`
	RatingCount int64   `json:"ratingCount"`
}

func NewRatingChangedEvent(m *Mover) RatingChangedEvent {
	return RatingChangedEvent{
		BaseEvent:   ddd.NewBaseEvent(RatingChangedEventName, m.ID().String()),
		Rating:      m.Rating(),
		RatingCount: m.RatingCount(),
	}
}
