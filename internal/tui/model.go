// Package tui renders the birthday card in a terminal with Bubble Tea.
package tui

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"github.com/tartampluch/go-birthday-wish/internal/engine"
	"github.com/tartampluch/go-birthday-wish/internal/locales"
)

// sessionMsg tells the model the session changed outside of Update,
// typically on a celebrate tick.
type sessionMsg struct {
	event engine.Event
}

// confettiFrameMsg advances the burst by one frame.
type confettiFrameMsg struct{}

const (
	rowCandles = iota
	rowBalloons
)

const (
	fieldName = iota
	fieldDate
)

// Model is the terminal view of an engine.Session. All celebration state
// lives in the session; the model only keeps cursor and input state.
type Model struct {
	session   *engine.Session
	localizer *i18n.Localizer
	keys      KeyMap

	name  textinput.Model
	date  textinput.Model
	focus int

	row int
	col int

	burst *engine.Burst
	rng   *rand.Rand

	width  int
	height int
}

// NewModel creates a model showing the intake form. A nil rng seeds the
// confetti randomly.
func NewModel(session *engine.Session, localizer *i18n.Localizer, rng *rand.Rand) Model {
	name := textinput.New()
	name.Focus()

	date := textinput.New()
	date.Placeholder = config.DatePlaceholder
	date.CharLimit = config.DateEntryMaxRunes

	return Model{
		session:   session,
		localizer: localizer,
		keys:      DefaultKeyMap(),
		name:      name,
		date:      date,
		rng:       rng,
	}
}

// Init starts the cursor blinking in the name field
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// frameCmd schedules the next confetti frame
func frameCmd() tea.Cmd {
	return tea.Tick(config.TUIConfettiFrameInterval, func(time.Time) tea.Msg {
		return confettiFrameMsg{}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.session.Resize(float32(msg.Width), float32(msg.Height))
		if m.burst != nil {
			w, h := m.fieldSize()
			m.burst.Resize(w, h)
		}
		return m, nil

	case sessionMsg:
		return m.sync()

	case confettiFrameMsg:
		if m.burst == nil {
			return m, nil
		}
		m.burst.Step()
		if m.burst.Done() {
			return m, nil
		}
		return m, frameCmd()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Interrupt) {
			return m, tea.Quit
		}
		if !m.session.Snapshot().Submitted() {
			return m.updateForm(msg)
		}
		return m.updateCard(msg)
	}

	// Blink and other input messages go to the focused field.
	if !m.session.Snapshot().Submitted() {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextField):
		if m.focus == fieldName {
			m.focus = fieldDate
			m.name.Blur()
			return m, m.date.Focus()
		}
		m.focus = fieldName
		m.date.Blur()
		return m, m.name.Focus()

	case key.Matches(msg, m.keys.Submit):
		// A rejected submit leaves the form as it is.
		if !m.session.Submit(m.name.Value(), m.date.Value()) {
			return m, nil
		}
		m.name.Blur()
		m.date.Blur()
		return m.sync()
	}
	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == fieldName {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.date, cmd = m.date.Update(msg)
	}
	return m, cmd
}

func (m Model) updateCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.session.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Escape):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}

	case key.Matches(msg, m.keys.Right):
		if m.col < m.rowLen(snap)-1 {
			m.col++
		}

	case key.Matches(msg, m.keys.SwitchRow):
		m.row = 1 - m.row
		m.col = min(m.col, m.rowLen(snap)-1)

	case key.Matches(msg, m.keys.Click):
		var ok bool
		if m.row == rowCandles {
			ok = m.session.AdvanceCandle(m.col)
		} else {
			ok = m.session.AdvanceBalloon(m.col)
		}
		if ok && m.col < m.rowLen(snap)-1 {
			m.col++
		}

	case key.Matches(msg, m.keys.Celebrate):
		m.session.Celebrate()
	}
	return m.sync()
}

// sync starts the confetti once the session has raised its flag.
func (m Model) sync() (tea.Model, tea.Cmd) {
	if m.burst != nil || !m.session.Snapshot().ConfettiShown {
		return m, nil
	}
	spec := m.session.ConfettiSpec()
	spec.Width, spec.Height = m.fieldSize()
	m.burst = engine.NewBurst(spec, m.rng)
	return m, frameCmd()
}

func (m Model) rowLen(snap engine.Snapshot) int {
	if m.row == rowCandles {
		return snap.TotalCandles
	}
	return snap.TotalBalloons
}

// View renders the form, or the card with the confetti field above it.
func (m Model) View() string {
	snap := m.session.Snapshot()
	if !snap.Submitted() {
		return m.place(m.formView())
	}

	body := m.place(lipgloss.JoinVertical(lipgloss.Center,
		m.cardView(snap),
		HelpStyle.Render(m.msg(config.TKeyTUIHelp)),
	))
	if field := m.confettiView(m.fieldRows()); field != "" {
		return lipgloss.JoinVertical(lipgloss.Left, field, body)
	}
	return body
}

func (m Model) place(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func (m Model) formView() string {
	return CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(m.msg(config.TKeyFormTitle)),
		"",
		LabelStyle.Render(m.msg(config.TKeyLblName)),
		m.name.View(),
		"",
		LabelStyle.Render(m.msg(config.TKeyLblBirthday)),
		m.date.View(),
		"",
		HelpStyle.Render(m.msg(config.TKeyTUIFormHelp)),
	))
}

func (m Model) cardView(snap engine.Snapshot) string {
	settings := m.session.Settings()

	var flames, candles, balloons strings.Builder
	for i := 0; i < snap.TotalCandles; i++ {
		shown := snap.CandleShown(i)
		flame, body := " ", InactiveStyle.Render("█")
		if shown {
			flame = FlameStyle.Render("*")
			body = itemStyle(settings.ItemColor(i)).Render("█")
		}
		flames.WriteString(" " + flame + " ")
		candles.WriteString(m.cell(rowCandles, i, body))
	}
	for i := 0; i < snap.TotalBalloons; i++ {
		glyph := itemStyle(settings.ItemColor(i)).Render("●")
		if snap.BalloonPopped(i) {
			glyph = InactiveStyle.Render("·")
		}
		balloons.WriteString(m.cell(rowBalloons, i, glyph))
	}

	return CardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		TitleStyle.Render(m.msg(config.TKeyCardTitle)),
		NameStyle.Render(snap.Input.Name),
		LabelStyle.Render(m.formatBirthday(snap.Input.Birthday)),
		"",
		LabelStyle.Render(m.msg(config.TKeyLblCandles)),
		flames.String(),
		candles.String(),
		"",
		LabelStyle.Render(m.msg(config.TKeyLblBalloons)),
		balloons.String(),
	))
}

// cell pads an item glyph, bracketing it when the cursor is on it.
func (m Model) cell(row, index int, glyph string) string {
	if m.row == row && m.col == index {
		return CursorStyle.Render("[") + glyph + CursorStyle.Render("]")
	}
	return " " + glyph + " "
}

func (m Model) msg(key string) string {
	return locales.Msg(m.localizer, key)
}

func (m Model) formatBirthday(t time.Time) string {
	layout := m.msg(config.TKeyFormatDateLong)
	if layout == config.TKeyFormatDateLong {
		layout = config.DateFormatInput
	}
	return t.Format(layout)
}
