package telemetry

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lfarias/fleet-hours/internal/workday"
)

// Pipeline wires a Parser to a worked-hours Analyzer: assembled trips
// are pushed straight into the analyzer. Like the analyzer, a pipeline
// serves exactly one driver's stream.
type Pipeline struct {
	parser   *Parser
	analyzer *workday.Analyzer
}

func NewPipeline(log zerolog.Logger, analyzer *workday.Analyzer) *Pipeline {
	parser := NewParser(log)
	parser.OnTripCompleted(analyzer.TripCompleted)
	return &Pipeline{parser: parser, analyzer: analyzer}
}

func (p *Pipeline) Parse(eventID, driverID, plate string, ts time.Time, payload, location string) error {
	return p.parser.Parse(eventID, driverID, plate, ts, payload, location)
}

// Close flushes the parser's open trip and finalizes the analyzer's
// open day. Skipping it drops the last day's data.
func (p *Pipeline) Close() {
	p.parser.Flush()
	p.analyzer.Close()
}

func (p *Pipeline) WorkedDays() []*workday.WorkedDay {
	return p.analyzer.WorkedDays()
}

func (p *Pipeline) Totalizers() workday.Totals {
	return p.analyzer.Totalizers()
}
