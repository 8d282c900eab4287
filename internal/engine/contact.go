package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-birthday-wish/internal/config"
)

// Contact is a name and full birth date lifted from a vCard.
// It pre-fills the intake form; it is never submitted on its own.
type Contact struct {
	Name     string
	Birthday time.Time
}

// BirthdayText formats the birthday the way the intake form's date field expects.
func (c Contact) BirthdayText() string {
	return c.Birthday.Format(config.DateFormatInput)
}

// ImportContact returns the first card in r that has a name and a BDAY with
// a known year. Malformed cards and year-less dates are skipped.
func ImportContact(r io.Reader) (Contact, error) {
	log := slog.With(config.LogKeyComponent, config.CompContact)
	decoder := vcard.NewDecoder(r)

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The decoder cannot resynchronize after a broken card.
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			return Contact{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		date, err := parseDate(bday.Value)
		if err != nil {
			log.Debug(config.MsgSkippedDate, config.LogKeyValue, bday.Value)
			continue
		}

		name := contactName(card)
		if name == "" {
			continue
		}

		log.Info(config.MsgContactImported,
			config.LogKeyName, name,
			config.LogKeyDOB, date.Format(config.DateFormatInput))
		return Contact{Name: name, Birthday: date}, nil
	}

	return Contact{}, errors.New(config.ErrVCardNoBirthday)
}

// contactName prefers FN (formatted) over N (structured).
func contactName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && strings.TrimSpace(fn.Value) != "" {
		return strings.TrimSpace(fn.Value)
	}
	if n := card.Name(); n != nil {
		parts := []string{n.GivenName, n.AdditionalName, n.FamilyName}
		var kept []string
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				kept = append(kept, p)
			}
		}
		return strings.Join(kept, " ")
	}
	return ""
}

// parseDate accepts the vCard BDAY layouts that carry a year.
// Truncated dates (--MM-DD) cannot fill a calendar date and are rejected.
func parseDate(value string) (time.Time, error) {
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range layouts {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}
