package engine_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"github.com/tartampluch/go-birthday-wish/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func submittedSnapshot(name string, birthday time.Time) engine.Snapshot {
	return engine.Snapshot{
		Phase: engine.PhaseCelebrating,
		Input: engine.Input{Name: name, Birthday: birthday},
	}
}

func TestExport_YearlyAllDayEvent(t *testing.T) {
	exp := &engine.CalendarExporter{
		Clock: MockClock{CurrentTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	err := exp.Export(&buf, submittedSnapshot("Ada Lovelace", time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "SUMMARY:Birthday: Ada Lovelace")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:18151210")
	assert.Contains(t, out, "RRULE:FREQ=YEARLY")
	assert.Contains(t, out, "20250601T100000Z")

	// Round-trip through the decoder to be sure the document is well formed.
	cal, err := ical.NewDecoder(&buf).Decode()
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)
	uid, err := events[0].Props.Text(config.PropUID)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(uid, "@"+config.UIDNamespace))
}

func TestExport_LocalizedSummary(t *testing.T) {
	exp := &engine.CalendarExporter{
		Clock:         MockClock{CurrentTime: time.Now()},
		FormatSummary: func(name string) string { return "Anniversaire de " + name },
	}

	var buf bytes.Buffer
	require.NoError(t, exp.Export(&buf, submittedSnapshot("Ada", time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC))))
	assert.Contains(t, buf.String(), "SUMMARY:Anniversaire de Ada")
}

func TestExport_RequiresSubmittedForm(t *testing.T) {
	exp := &engine.CalendarExporter{}

	var buf bytes.Buffer
	err := exp.Export(&buf, engine.Snapshot{})
	require.Error(t, err)
	assert.Equal(t, config.ErrNotSubmitted, err.Error())
	assert.Zero(t, buf.Len())
}

func TestEventUID_StableAndDistinct(t *testing.T) {
	a := engine.Input{Name: "Ada", Birthday: time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)}
	b := engine.Input{Name: "Ada", Birthday: time.Date(1990, 1, 3, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, engine.EventUID(a), engine.EventUID(a))
	assert.NotEqual(t, engine.EventUID(a), engine.EventUID(b))
}
