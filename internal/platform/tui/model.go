package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/replay"
	"github.com/vovakirdan/arcade-sim/internal/storage"
)

// holdWindow is how long a movement key counts as held after its last
// press. Terminals report repeats but never releases.
const holdWindow = 150 * time.Millisecond

// GameOptions configures a GameModel.
type GameOptions struct {
	Store      *storage.Store
	Runtime    core.RuntimeConfig
	RecordDir  string  // Save a replay of every finished run here ("" = off)
	RecordPath string  // Save the replay of the latest finished run to this file
	Palette    Palette // Colors for the client terminal (nil = local)
}

// GameModel is the Bubble Tea model running one game. It is used directly
// for local play and wrapped by SessionModel for SSH sessions.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	recordDir  string
	recordPath string
	recorder   *replay.Recorder
	palette    Palette
	inputFrame core.InputFrame
	held       map[core.Action]int // Movement action -> ticks left
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	scoreSaved bool
	lastRunID  string
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, opts GameOptions) GameModel {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		config:     cfg,
		recordDir:  opts.RecordDir,
		recordPath: opts.RecordPath,
		inputFrame: core.NewInputFrame(),
		held:       make(map[core.Action]int),
		keyMapper:  NewKeyMapper(),
		palette:    opts.Palette,
	}
	if m.palette == nil {
		m.palette = localPalette
	}
	m.reset()
	return m
}

// reset starts a fresh run of the game with the current config.
func (m *GameModel) reset() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.recorder = replay.NewRecorder(m.game.ID(), m.config)
	m.scoreSaved = false
	m.inputFrame.Clear()
	clear(m.held)
}

// holdTicks converts the hold window to simulation ticks.
func (m GameModel) holdTicks() int {
	n := int(holdWindow * time.Duration(m.config.TickRate) / time.Second)
	return max(n, 1)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
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

	// Back to menu (B or Esc when game over or paused)
	if m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		delete(m.held, opposite(action))
		m.held[action] = m.holdTicks()
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// handleResize processes window resize events. The game is rebuilt for
// the new size only while it still waits on its start screen, so a
// running session and its recording stay intact.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.gameState.Started {
		m.reset()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.reset()
		return m, tickCmd(m.config.TickRate)
	}

	for a, left := range m.held {
		m.inputFrame.Set(a)
		if left <= 1 {
			delete(m.held, a)
		} else {
			m.held[a] = left - 1
		}
	}

	m.recorder.Record(m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.finishRun()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// finishRun stores the score, the run record and the replay of a
// finished session. All of it is best effort.
func (m *GameModel) finishRun() {
	var hash uint64
	if h, ok := m.game.(registry.Hasher); ok {
		hash = h.Hash()
	}
	runID := uuid.NewString()
	m.lastRunID = runID

	replayPath := m.recordPath
	if replayPath == "" && m.recordDir != "" {
		replayPath = filepath.Join(m.recordDir, fmt.Sprintf("%s_%s.replay", m.game.ID(), runID))
	}
	if replayPath != "" {
		rec := m.recorder.Finish(m.gameState.Score, hash)
		if err := replay.Save(replayPath, rec); err != nil {
			log.Warn("could not save replay", "path", replayPath, "error", err)
			replayPath = ""
		} else {
			log.Debug("replay saved", "path", replayPath, "ticks", rec.Ticks)
		}
	}

	if m.store == nil {
		return
	}
	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			log.Warn("could not save score", "game", m.game.ID(), "error", err)
		}
	}
	_, err := m.store.SaveRun(storage.Run{
		RunID:      runID,
		GameID:     m.game.ID(),
		Seed:       m.config.Seed,
		Score:      m.gameState.Score,
		Level:      m.gameState.Level,
		Ticks:      m.gameState.Ticks,
		Hash:       hash,
		ReplayPath: replayPath,
	})
	if err != nil {
		log.Warn("could not save run", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		log.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.palette.Render(m.screen)
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// LastRunID returns the ID of the last stored run, or "".
func (m GameModel) LastRunID() string {
	return m.lastRunID
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game in the local terminal.
func Run(game registry.Game, opts GameOptions) error {
	model := NewGameModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
