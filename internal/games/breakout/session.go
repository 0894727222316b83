// Package breakout implements the brick breaker simulation: a fixed-timestep
// session advancing a ball, a paddle, falling power-ups and a grid of bricks.
package breakout

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// ErrNoLevels is returned when a session has no level to play.
var ErrNoLevels = errors.New("breakout: no levels loaded")

// State is the session state machine. Only StateActive runs physics.
type State int

const (
	StateActive State = iota
	StateMenu
	StateWin
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateMenu:
		return "menu"
	case StateWin:
		return "win"
	default:
		return "unknown"
	}
}

// LevelClear is reported when a level is completed.
type LevelClear struct {
	LevelIndex int
	LevelID    string
	LevelName  string
	Elapsed    float64 // Seconds of active play
	Ticks      uint64
}

// LevelInfo describes a loaded level.
type LevelInfo struct {
	Index     int
	ID        string
	Name      string
	Bricks    int // Destructible bricks
	Remaining int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Sessions log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed sets the power-up RNG seed.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.seed = seed
	}
}

// WithLevels replaces the built-in and configured levels.
func WithLevels(levels ...*Level) Option {
	return func(s *Session) {
		s.levels = levels
	}
}

// WithClearHook registers a callback run when a level is completed.
func WithClearHook(fn func(LevelClear)) Option {
	return func(s *Session) {
		s.onClear = fn
	}
}

// Session owns every entity of a running game and advances them in a fixed
// order each tick. A Session is not safe for concurrent use.
type Session struct {
	cfg    config.BreakoutConfig
	width  float64
	height float64

	state      State
	levels     []*Level
	levelIndex int

	ball     *Ball
	paddle   *Paddle
	powerups *PowerUpManager
	effects  Effects
	resolver Resolver

	prevInput core.InputFrame
	tick      uint64
	startTick uint64 // Tick at which the current level started
	elapsed   float64
	seed      int64

	logger  *log.Logger
	onClear func(LevelClear)
}

// NewSession creates a session in the menu state. Unless WithLevels is given,
// it loads the built-in levels followed by the level files of cfg.
func NewSession(cfg config.BreakoutConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
		state:  StateMenu,
		logger: log.New(io.Discard),
		resolver: Resolver{
			InitialVelocity: core.V(cfg.Ball.VelocityX, cfg.Ball.VelocityY),
			PaddleStrength:  cfg.Physics.PaddleStrength,
			ShakeDuration:   cfg.Physics.ShakeDuration,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.levels == nil {
		levels, err := s.loadLevels()
		if err != nil {
			return nil, err
		}
		s.levels = levels
	}
	if len(s.levels) == 0 {
		return nil, ErrNoLevels
	}

	s.powerups = NewPowerUpManager(s.seed, NewPowerUpConfig(cfg.PowerUps))
	s.paddle = &Paddle{}
	s.ball = NewBall(core.Vec2{}, cfg.Ball.Radius, core.Vec2{})
	s.ResetPlayer()

	s.logger.Debug("session created", "levels", len(s.levels), "seed", s.seed,
		"window", fmt.Sprintf("%gx%g", s.width, s.height))
	return s, nil
}

// loadLevels loads the built-in levels and the configured level files.
// Levels fill the top half of the playfield.
func (s *Session) loadLevels() ([]*Level, error) {
	levelW, levelH := s.width, s.height/2
	levels, err := BuiltinLevels(levelW, levelH)
	if err != nil {
		return nil, err
	}
	for _, src := range s.cfg.Levels {
		l, err := LoadLevelFile(src.Path, src.Name, levelW, levelH)
		if err != nil {
			return nil, fmt.Errorf("load level %q: %w", src.Path, err)
		}
		levels = append(levels, l)
	}
	return levels, nil
}

// pressed reports whether a was pressed this frame and not the previous one.
func (s *Session) pressed(in core.InputFrame, a core.Action) bool {
	return in.Has(a) && !s.prevInput.Has(a)
}

// ProcessInput applies one frame of key states over dt seconds.
// Movement is level-triggered; menu and win actions trigger once per press.
func (s *Session) ProcessInput(in core.InputFrame, dt float64) {
	defer func() { s.prevInput = in }()

	switch s.state {
	case StateMenu:
		switch {
		case s.pressed(in, core.ActionConfirm):
			s.Start()
		case s.pressed(in, core.ActionUp):
			s.SelectLevel(s.levelIndex - 1)
		case s.pressed(in, core.ActionDown):
			s.SelectLevel(s.levelIndex + 1)
		}

	case StateWin:
		if s.pressed(in, core.ActionConfirm) {
			s.effects.Chaos = false
			s.state = StateMenu
			s.logger.Debug("back to menu", "level", s.Level().ID)
		}

	case StateActive:
		step := s.cfg.Paddle.Speed * dt
		if in.Has(core.ActionLeft) {
			s.movePaddle(-step)
		}
		if in.Has(core.ActionRight) {
			s.movePaddle(step)
		}
		if in.Has(core.ActionLaunch) && s.ball.Stuck {
			s.ball.Stuck = false
			s.logger.Debug("ball launched", "tick", s.tick)
		}
	}
}

// movePaddle moves the paddle by dx within the playfield, carrying a stuck ball.
func (s *Session) movePaddle(dx float64) {
	p := s.paddle
	x := core.ClampF(p.Position.X+dx, 0, max(s.width-p.Size.X, 0))
	moved := x - p.Position.X
	p.Position.X = x
	if s.ball.Stuck {
		s.ball.Position.X += moved
	}
}

// Start leaves the menu and starts the selected level from its initial state.
func (s *Session) Start() {
	if s.state != StateMenu {
		return
	}
	s.ResetLevel()
	s.ResetPlayer()
	s.elapsed = 0
	s.startTick = s.tick
	s.state = StateActive
	s.logger.Info("level started", "level", s.Level().ID, "name", s.Level().Name)
}

// SelectLevel picks the level played next, wrapping around the level list.
// Only allowed in the menu.
func (s *Session) SelectLevel(index int) {
	if s.state != StateMenu {
		return
	}
	n := len(s.levels)
	s.levelIndex = ((index % n) + n) % n
	s.ResetLevel()
	s.ResetPlayer()
}

// Update advances the simulation by dt seconds. It does nothing outside
// StateActive. The order of the steps is fixed.
func (s *Session) Update(dt float64) {
	if s.state != StateActive {
		return
	}
	s.tick++
	s.elapsed += dt
	actors := s.actors()
	level := s.levels[s.levelIndex]

	s.ball.Move(dt, s.width)

	res := s.resolver.Resolve(level, actors, func(brick *Body) {
		for _, k := range s.powerups.TrySpawn(brick.Position) {
			s.logger.Debug("power-up spawned", "kind", k, "x", brick.Position.X, "y", brick.Position.Y)
		}
	})
	if n := res.Destroyed(); n > 0 {
		s.logger.Debug("bricks destroyed", "count", n, "remaining", level.Remaining())
	}
	for _, k := range s.powerups.Collect(actors, s.height) {
		s.logger.Debug("power-up collected", "kind", k)
	}

	for _, k := range s.powerups.Update(dt, actors) {
		s.logger.Debug("power-up expired", "kind", k)
	}

	if s.effects.ShakeTime > 0 {
		s.effects.ShakeTime -= dt
		if s.effects.ShakeTime <= 0 {
			s.effects.ShakeTime = 0
			s.effects.Shake = false
		}
	}

	if s.ball.Position.Y >= s.height {
		s.logger.Info("ball lost", "level", level.ID, "tick", s.tick)
		s.ResetLevel()
		s.ResetPlayer()
		return
	}

	if level.IsCompleted() {
		s.handleLevelClear(level)
	}
}

// handleLevelClear reports the clear, resets the level and shows the win
// screen with chaos enabled.
func (s *Session) handleLevelClear(level *Level) {
	info := LevelClear{
		LevelIndex: s.levelIndex,
		LevelID:    level.ID,
		LevelName:  level.Name,
		Elapsed:    s.elapsed,
		Ticks:      s.tick - s.startTick,
	}
	s.logger.Info("level cleared", "level", level.ID, "elapsed", fmt.Sprintf("%.2fs", s.elapsed))

	s.ResetLevel()
	s.ResetPlayer()
	s.effects.Chaos = true
	s.state = StateWin

	if s.onClear != nil {
		s.onClear(info)
	}
}

// Step processes one input frame and advances the simulation by dt.
func (s *Session) Step(in core.InputFrame, dt float64) {
	s.ProcessInput(in, dt)
	s.Update(dt)
}

// ResetLevel restores every brick of the current level.
func (s *Session) ResetLevel() {
	s.levels[s.levelIndex].Reset()
}

// ResetPlayer puts the paddle and ball back at their spawn positions and
// clears power-ups and the confuse and chaos effects.
func (s *Session) ResetPlayer() {
	size := core.V(s.cfg.Paddle.Width, s.cfg.Paddle.Height)
	s.paddle.Body = NewBody(
		core.V(s.width/2-size.X/2, s.height-size.Y),
		size, TexturePaddle, core.ColorWhite, core.Vec2{},
	)

	r := s.cfg.Ball.Radius
	s.ball.Reset(
		s.paddle.Position.Add(core.V(size.X/2-r, -2*r)),
		core.V(s.cfg.Ball.VelocityX, s.cfg.Ball.VelocityY),
	)

	s.powerups.Clear()
	s.effects.Confuse = false
	s.effects.Chaos = false
}

func (s *Session) actors() Actors {
	return Actors{Ball: s.ball, Paddle: s.paddle, Effects: &s.effects}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Effects returns the post-processing flags.
func (s *Session) Effects() Effects {
	return s.effects
}

// Ball returns a copy of the ball.
func (s *Session) Ball() Ball {
	return *s.ball
}

// Paddle returns a copy of the paddle.
func (s *Session) Paddle() Paddle {
	return *s.paddle
}

// ActiveEffects lists the power-up kinds currently applied.
func (s *Session) ActiveEffects() []ActiveEffect {
	return s.powerups.ActiveEffects()
}

// Level returns the current level.
func (s *Session) Level() LevelInfo {
	return s.levelInfo(s.levelIndex)
}

// Levels describes every loaded level in play order.
func (s *Session) Levels() []LevelInfo {
	out := make([]LevelInfo, len(s.levels))
	for i := range s.levels {
		out[i] = s.levelInfo(i)
	}
	return out
}

func (s *Session) levelInfo(i int) LevelInfo {
	l := s.levels[i]
	return LevelInfo{
		Index:     i,
		ID:        l.ID,
		Name:      l.Name,
		Bricks:    l.Destructible(),
		Remaining: l.Remaining(),
	}
}

// Elapsed returns the seconds of active play on the current level.
func (s *Session) Elapsed() float64 {
	return s.elapsed
}

// Tick returns the number of simulated ticks.
func (s *Session) Tick() uint64 {
	return s.tick
}

// Size returns the playfield size.
func (s *Session) Size() (width, height float64) {
	return s.width, s.height
}
