package clock

import (
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/timemetrics"
)

type Kind = timemetrics.ClockKind

const (
	KindIn  = timemetrics.ClockIn
	KindOut = timemetrics.ClockOut
)

// Source tells how a record was produced.
type Source string

const (
	SourceBadge     Source = "badge"
	SourceAutoClose Source = "auto_close"
)

type Clock struct {
	ID        string
	UserID    string
	Kind      Kind
	At        time.Time
	Source    Source
	CreatedAt time.Time
}

// Record converts the row into the engine's input type.
func (c Clock) Record() timemetrics.ClockRecord {
	return timemetrics.ClockRecord{ID: c.ID, Kind: c.Kind, At: c.At}
}

// Records converts rows into engine input, keeping their order.
func Records(clocks []Clock, loc *time.Location) []timemetrics.ClockRecord {
	records := make([]timemetrics.ClockRecord, 0, len(clocks))
	for _, c := range clocks {
		rec := c.Record()
		if loc != nil {
			rec.At = rec.At.In(loc)
		}
		records = append(records, rec)
	}
	return records
}

// StaleOpen is a user whose latest record is an IN older than the sweep cutoff.
type StaleOpen struct {
	UserID string
	In     time.Time
}
