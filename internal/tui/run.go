package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"github.com/tartampluch/go-birthday-wish/internal/engine"
)

// Run shows the card in the terminal and blocks until the user quits or ctx
// is cancelled. The caller still owns session and must Close it.
func Run(ctx context.Context, session *engine.Session, localizer *i18n.Localizer, opts ...tea.ProgramOption) error {
	log := slog.With(config.LogKeyComponent, config.CompTUI)

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(session, localizer, nil), opts...)

	// Listeners may fire inside Update, where a blocking Send would
	// deadlock the event loop.
	session.Subscribe(func(e engine.Event, _ engine.Snapshot) {
		go p.Send(sessionMsg{event: e})
	})

	log.Info(config.MsgAppStarting)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info(config.MsgCtxCancel)
			return nil
		}
		log.Error(config.ErrTUIRun, config.LogKeyError, err)
		return fmt.Errorf("%s: %w", config.ErrTUIRun, err)
	}
	return nil
}
