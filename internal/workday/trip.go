package workday

import (
	"time"
)

type EventType int

const (
	EventStart EventType = iota + 1
	EventStop
	EventMessage
	EventFinish
	EventRestart
)

func (e EventType) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventMessage:
		return "message"
	case EventFinish:
		return "finish"
	case EventRestart:
		return "restart"
	}
	return "unknown"
}

// StopType classifies a STOP event. The ordering matters: values beyond
// StopRest are the stop categories that do not count as worked pauses
// and land in the "stopped" bucket.
type StopType int

const (
	StopNone StopType = iota
	StopStandby
	StopFeed
	StopRest
	StopFueling
	StopMaintenance
	StopAccident
	StopOther
)

func (s StopType) String() string {
	switch s {
	case StopNone:
		return "none"
	case StopStandby:
		return "standby"
	case StopFeed:
		return "feed"
	case StopRest:
		return "rest"
	case StopFueling:
		return "fueling"
	case StopMaintenance:
		return "maintenance"
	case StopAccident:
		return "accident"
	case StopOther:
		return "other"
	}
	return "unknown"
}

// Label is the display name used on rendered segments.
func (s StopType) Label() string {
	switch s {
	case StopStandby:
		return "Standby"
	case StopFeed:
		return "Feeding"
	case StopRest:
		return "Rest"
	case StopFueling:
		return "Fueling"
	case StopMaintenance:
		return "Maintenance"
	case StopAccident:
		return "Accident"
	case StopOther:
		return "Other stop"
	}
	return ""
}

type TripStatus int

const (
	StatusIncomplete TripStatus = iota
	StatusCompleted
	StatusCompletedPartially
)

// TripEvent is a single decoded telemetry event inside a road trip.
// End is the zero time when the trip never closed the event. Incomplete
// marks events whose raw data was only partially recoverable.
type TripEvent struct {
	Start      time.Time
	End        time.Time
	Type       EventType
	StopType   StopType
	Location   string
	Ignored    bool
	Incomplete bool
}

// RoadTrip is a discrete trip assembled by the upstream parser. Events
// are ordered by time. Duration is the trip's total seconds as reported
// by the telemetry unit; it is displayed verbatim on the finish segment.
type RoadTrip struct {
	Status   TripStatus
	Events   []TripEvent
	Duration int64
	Plate    string
}
