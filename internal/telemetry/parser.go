// Package telemetry assembles decoded telemetry messages into discrete
// road trips and pushes them to registered handlers.
package telemetry

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lfarias/fleet-hours/internal/workday"
)

// Payload grammar, one record per telemetry message:
//
//	START
//	STOP;<standby|feed|rest|fueling|maintenance|accident|other>
//	MSG;<free text>
//	RESTART
//	FINISH
//
// A payload that cannot be fully decoded still yields an event at its
// timestamp, flagged incomplete, so downstream policy can decide what
// to do with it.

var stopTypes = map[string]workday.StopType{
	"standby":     workday.StopStandby,
	"feed":        workday.StopFeed,
	"rest":        workday.StopRest,
	"fueling":     workday.StopFueling,
	"maintenance": workday.StopMaintenance,
	"accident":    workday.StopAccident,
	"other":       workday.StopOther,
}

// Parser is a stateful assembler for one driver's message stream.
// Each motion message closes the previously open event (its end is the
// new message's timestamp) and opens the next one; FINISH closes the
// trip and fires the registered handlers.
type Parser struct {
	log      zerolog.Logger
	handlers []func(*workday.RoadTrip)
	trip     *tripBuilder
}

type tripBuilder struct {
	driverID string
	plate    string
	events   []workday.TripEvent
	open     int // index of the event awaiting an end time, -1 if none
}

func NewParser(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// OnTripCompleted registers a handler invoked for every assembled trip,
// in stream order.
func (p *Parser) OnTripCompleted(fn func(*workday.RoadTrip)) {
	p.handlers = append(p.handlers, fn)
}

// Parse consumes one telemetry message. Messages must arrive in
// increasing timestamp order; timestamps are already in the target
// local clock.
func (p *Parser) Parse(eventID, driverID, plate string, ts time.Time, payload, location string) error {
	ev, ok := decode(payload)
	if !ok {
		p.log.Warn().
			Str("event_id", eventID).
			Str("plate", plate).
			Str("payload", payload).
			Msg("undecodable payload, event flagged incomplete")
	}
	ev.Start = ts
	ev.Location = location

	switch ev.Type {
	case workday.EventStart:
		if p.trip != nil {
			p.log.Debug().
				Str("driver_id", p.trip.driverID).
				Str("plate", p.trip.plate).
				Msg("trip restarted before finishing, emitting as incomplete")
			p.emit(workday.StatusIncomplete)
		}
		p.trip = &tripBuilder{driverID: driverID, plate: plate, open: -1}
	case workday.EventMessage:
		if p.trip == nil {
			p.log.Debug().Str("event_id", eventID).Msg("message outside a trip, dropped")
			return nil
		}
		// Messages are instants and do not interrupt the open event.
		ev.End = ts
		p.trip.events = append(p.trip.events, ev)
		return nil
	default:
		if p.trip == nil {
			p.log.Debug().
				Str("event_id", eventID).
				Str("plate", plate).
				Msg("event outside a trip, opening partial trip")
			p.trip = &tripBuilder{driverID: driverID, plate: plate, open: -1}
		}
	}

	p.trip.close(ts)
	if ev.Type == workday.EventFinish {
		ev.End = ts
		p.trip.events = append(p.trip.events, ev)
		status := workday.StatusCompleted
		for _, e := range p.trip.events {
			if e.Incomplete {
				status = workday.StatusCompletedPartially
				break
			}
		}
		p.emit(status)
		return nil
	}

	p.trip.open = len(p.trip.events)
	p.trip.events = append(p.trip.events, ev)
	return nil
}

// Flush emits the still-open trip, if any, as incomplete. Callers must
// invoke it at end of stream.
func (p *Parser) Flush() {
	if p.trip == nil {
		return
	}
	p.log.Debug().
		Str("driver_id", p.trip.driverID).
		Str("plate", p.trip.plate).
		Msg("flushing unfinished trip")
	p.emit(workday.StatusIncomplete)
}

func (p *Parser) emit(status workday.TripStatus) {
	t := p.trip
	p.trip = nil

	trip := &workday.RoadTrip{
		Status: status,
		Events: t.events,
		Plate:  t.plate,
	}
	if len(t.events) > 0 {
		last := t.events[len(t.events)-1]
		end := last.End
		if end.IsZero() {
			end = last.Start
		}
		trip.Duration = int64(end.Sub(t.events[0].Start) / time.Second)
	}
	for _, fn := range p.handlers {
		fn(trip)
	}
}

func (t *tripBuilder) close(ts time.Time) {
	if t.open < 0 {
		return
	}
	t.events[t.open].End = ts
	t.open = -1
}

// decode maps a raw payload to an event shell. The second return value
// is false when the payload was only partially recoverable.
func decode(payload string) (workday.TripEvent, bool) {
	op, rest, _ := strings.Cut(strings.TrimSpace(payload), ";")
	switch strings.ToUpper(op) {
	case "START":
		return workday.TripEvent{Type: workday.EventStart}, true
	case "RESTART":
		return workday.TripEvent{Type: workday.EventRestart}, true
	case "FINISH":
		return workday.TripEvent{Type: workday.EventFinish}, true
	case "MSG":
		return workday.TripEvent{Type: workday.EventMessage}, true
	case "STOP":
		st, ok := stopTypes[strings.ToLower(strings.TrimSpace(rest))]
		if !ok {
			return workday.TripEvent{Type: workday.EventStop, StopType: workday.StopOther, Incomplete: true}, false
		}
		return workday.TripEvent{Type: workday.EventStop, StopType: st}, true
	}
	return workday.TripEvent{Type: workday.EventStop, Incomplete: true}, false
}
