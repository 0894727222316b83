package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// keyHold is how long a movement key stays held after its last press.
// Terminals repeat held keys, so this only has to bridge repeat gaps.
const keyHold = 150 * time.Millisecond

// Options configures the game screen.
type Options struct {
	Runtime    core.RuntimeConfig
	Store      *storage.Store // Optional, clears are not recorded when nil
	Logger     *log.Logger    // Optional
	Difficulty string
	StartLevel int
}

// recorder persists level clears reported by the session.
type recorder struct {
	store      *storage.Store
	logger     *log.Logger
	difficulty string
	last       *breakout.LevelClear
	best       map[string]float64
}

func (r *recorder) record(c breakout.LevelClear) {
	r.last = &c
	if prev, ok := r.best[c.LevelID]; !ok || c.Elapsed < prev {
		r.best[c.LevelID] = c.Elapsed
	}
	if r.store == nil {
		return
	}
	_, err := r.store.SaveClear(storage.ClearRecord{
		LevelID:    c.LevelID,
		LevelName:  c.LevelName,
		Elapsed:    c.Elapsed,
		Ticks:      int64(c.Ticks), //#nosec G115 -- tick count fits in int64
		Difficulty: r.difficulty,
	})
	if err != nil {
		// Best-effort save, game continues regardless
		r.logger.Warn("cannot save clear", "level", c.LevelID, "err", err)
	}
}

// loadBest reads the best recorded times of every level.
func (r *recorder) loadBest() {
	if r.store == nil {
		return
	}
	stats, err := r.store.AllLevelStats()
	if err != nil {
		r.logger.Warn("cannot load level stats", "err", err)
		return
	}
	for id, st := range stats {
		r.best[id] = st.BestTime
	}
}

// Model is the Bubble Tea model running a breakout session.
type Model struct {
	session   *breakout.Session
	renderer  *Renderer
	screen    *core.Screen
	latch     *core.KeyLatch
	keyMapper *KeyMapper
	keys      KeyMap
	help      help.Model
	rec       *recorder
	config    core.RuntimeConfig
	logger    *log.Logger
	paused    bool
	quitting  bool
}

// NewModel creates the game model and its session.
func NewModel(cfg config.BreakoutConfig, opts Options) (Model, error) {
	rt := opts.Runtime
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rec := &recorder{
		store:      opts.Store,
		logger:     logger,
		difficulty: opts.Difficulty,
		best:       make(map[string]float64),
	}
	rec.loadBest()

	session, err := breakout.NewSession(cfg,
		breakout.WithSeed(rt.Seed),
		breakout.WithLogger(logger),
		breakout.WithClearHook(rec.record),
	)
	if err != nil {
		return Model{}, err
	}
	if opts.StartLevel > 0 {
		session.SelectLevel(opts.StartLevel - 1)
	}

	hold := int(keyHold * time.Duration(rt.TickRate) / time.Second)
	keys := DefaultKeyMap()
	w, h := session.Size()

	return Model{
		session:   session,
		renderer:  NewRenderer(w, h),
		screen:    core.NewScreen(rt.ScreenW, max(rt.ScreenH-1, 1)),
		latch:     core.NewKeyLatch(hold),
		keyMapper: NewKeyMapper(keys),
		keys:      keys,
		help:      help.New(),
		rec:       rec,
		config:    rt,
		logger:    logger,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionPause && m.session.State() == breakout.StateActive {
		m.paused = !m.paused
		m.latch.Release()
		return m, nil
	}
	if m.paused {
		return m, nil
	}

	m.keyMapper.Latch(action, m.latch)
	return m, nil
}

// handleResize processes window resize events. The playfield is in world
// units, so the session keeps running at any size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		m.session.Step(m.latch.Frame(), m.config.TickDuration())
	}
	return m, tickCmd(m.config.TickRate)
}

// frame collects the view state of the session.
func (m Model) frame() Frame {
	level := m.session.Level()
	f := Frame{
		State:     m.session.State(),
		Effects:   m.session.Effects(),
		Level:     level,
		Levels:    len(m.session.Levels()),
		Elapsed:   m.session.Elapsed(),
		Tick:      m.session.Tick(),
		Active:    m.session.ActiveEffects(),
		Paused:    m.paused,
		BestTime:  m.rec.best[level.ID],
		LastClear: m.rec.last,
	}
	return f
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.renderer.Render(m.screen, m.session.DrawList(), m.frame())

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".breakout", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	filename := fmt.Sprintf("breakout_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.renderer.Render(m.screen, m.session.DrawList(), m.frame())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Session returns the running session.
func (m Model) Session() *breakout.Session {
	return m.session
}

// Run starts the Bubble Tea program.
func Run(cfg config.BreakoutConfig, opts Options) error {
	model, err := NewModel(cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
