package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/persist"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
	"github.com/vovakirdan/tui-snake/internal/theme"
)

// Deps are the collaborators shared by every screen of one player.
type Deps struct {
	Config config.GameConfig
	Data   *persist.PersistentData
	File   *persist.File
	Store  *storage.Store
	Player audio.Player
	Logger *log.Logger
}

// GameModel is the Bubble Tea model for a play session.
type GameModel struct {
	sess       *session.Session
	screen     *core.Screen
	theme      theme.Theme
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	lastFrame  time.Time
	quitting   bool
	backToMenu bool
	standalone bool // owns the program, so leaving quits it
}

// NewGameModel starts a session for the player in deps.
func NewGameModel(deps Deps, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = deps.Config.Timing.RenderFPS
	}

	sess := session.New(session.Options{
		Config: deps.Config,
		Data:   deps.Data,
		File:   deps.File,
		Store:  deps.Store,
		Player: deps.Player,
		Logger: deps.Logger,
		Seed:   cfg.Seed,
	})
	g := sess.Data().Graphics

	return GameModel{
		sess:      sess,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		theme:     theme.Resolve(g.ThemeID, g.ColorblindMode),
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return frameCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		status := m.sess.State().Status
		if status == game.StatusGameOver || status == game.StatusPaused || m.sess.OnboardingVisible() {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	m.sess.HandleAction(action)
	return m, nil
}

// handleFrame advances the session by the wall time since the last frame.
func (m GameModel) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	m.sess.Update(frameDelta(m.lastFrame, now))
	m.lastFrame = now
	return m, frameCmd(m.config.TickRate)
}

// saveScreenshot saves the current board as plain text.
func (m *GameModel) saveScreenshot() {
	DrawSession(m.screen, m.sess)

	dir := filepath.Join(os.Getenv("HOME"), ".snake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	DrawSession(m.screen, m.sess)
	return RenderScreen(m.screen, m.theme)
}

// Session returns the running session.
func (m GameModel) Session() *session.Session { return m.sess }

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// RunGame plays until the user leaves. It reports whether the user asked
// for the menu rather than to quit.
func RunGame(deps Deps, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(deps, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
