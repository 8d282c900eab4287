package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-birthday-wish/internal/config"
)

// uidNamespace scopes the name-based UUIDs of exported events.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.UIDNamespace))

// CalendarExporter writes the celebrated birthday as a yearly all-day event.
type CalendarExporter struct {
	Clock Clock

	// FormatSummary lets the UI inject a localized event title.
	FormatSummary func(name string) string
}

// Export encodes snap's input as an iCalendar document. The UID is derived
// from the name and date so re-exporting the same birthday updates, rather
// than duplicates, the event in the user's calendar.
func (e *CalendarExporter) Export(w io.Writer, snap Snapshot) error {
	if !snap.Submitted() {
		return errors.New(config.ErrNotSubmitted)
	}
	in := snap.Input

	clock := e.Clock
	if clock == nil {
		clock = RealClock{}
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, EventUID(in))

	summary := fmt.Sprintf(config.FallbackSummary, in.Name)
	if e.FormatSummary != nil {
		summary = e.FormatSummary(in.Name)
	}
	event.Props.SetText(config.PropSummary, summary)

	stamp := ical.NewProp(config.PropDTStamp)
	stamp.SetDateTime(clock.Now().UTC())
	event.Props.Set(stamp)

	start := ical.NewProp(config.PropDTStart)
	start.SetDate(in.Birthday)
	event.Props.Set(start)

	// Set the rule manually to avoid a "VALUE=TEXT" param.
	rule := ical.NewProp(config.PropRRule)
	rule.Value = config.ICalRecurRule
	event.Props.Set(rule)

	event.Props.SetText(config.PropTransp, config.ICalTransp)
	cal.Children = append(cal.Children, event.Component)

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgCalendarExport,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyName, in.Name)
	return nil
}

// EventUID is the stable identifier of a birthday event.
func EventUID(in Input) string {
	key := in.Name + "|" + in.Birthday.Format(config.DateFormatInput)
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@" + config.UIDNamespace
}
