package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/openapi-tui/internal/config"
	"github.com/studiowebux/openapi-tui/internal/document"
	"github.com/studiowebux/openapi-tui/internal/executor"
	"github.com/studiowebux/openapi-tui/internal/keybinds"
	"github.com/studiowebux/openapi-tui/internal/logging"
	"github.com/studiowebux/openapi-tui/internal/pipeline"
)

// Model adapts State to bubbletea
type Model struct {
	state    *State
	interval time.Duration
	err      error
}

// NewModel wraps a state; ticks fire every interval
func NewModel(s *State, interval time.Duration) Model {
	if interval <= 0 {
		interval = config.DefaultTickInterval
	}
	return Model{state: s, interval: interval}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if _, ok := msg.(tickMsg); ok {
		cmds = append(cmds, m.tick())
	}

	if err := m.state.HandleEvent(msg); err != nil {
		m.err = err
		return m, tea.Quit
	}

	if m.state.quitting {
		return m, tea.Quit
	}
	if m.state.suspending {
		m.state.suspending = false
		cmds = append(cmds, tea.Suspend)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return m.state.View()
}

// Err returns the error that ended the program, if any
func (m Model) Err() error { return m.err }

// Run starts the UI over doc and blocks until the user quits
func Run(ctx context.Context, doc *document.Document, settings config.Settings, keys *keybinds.Registry) error {
	client, err := executor.NewClient(executor.Options{
		Timeout: settings.Timeout,
		TLS: &executor.TLSOptions{
			InsecureSkipVerify: settings.InsecureSkipVerify,
			CAFile:             settings.CAFile,
			CertFile:           settings.CertFile,
			KeyFile:            settings.KeyFile,
		},
	})
	if err != nil {
		return err
	}

	p := pipeline.New(client, settings.Workers)
	state, err := New(Options{Document: doc, Dialer: p, Keys: keys, Settings: settings})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		return p.Run(ctx)
	})

	logging.Info("tui.start", "document", doc.Source, "operations", len(state.catalog.Entries()), "base_url", state.baseURL)
	prog := tea.NewProgram(NewModel(state, settings.TickInterval),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, runErr := prog.Run()

	cancel()
	if err := g.Wait(); err != nil {
		logging.Error(err)
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	logging.Info("tui.stop")
	return nil
}
