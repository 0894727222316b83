package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// PowerUpKind identifies a power-up and the effect it applies.
type PowerUpKind int

const (
	PowerUpSpeed          PowerUpKind = iota // Ball velocity scaled up
	PowerUpSticky                            // Paddle hits leave the ball stuck
	PowerUpPassThrough                       // Ball passes through non-solid bricks
	PowerUpIncreasePaddle                    // Paddle widened
	PowerUpConfuse                           // Screen mirrored
	PowerUpChaos                             // Screen colors inverted
	PowerUpKindCount                         // Sentinel for counting kinds
)

// String returns the name of the power-up kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpSpeed:
		return "Speed"
	case PowerUpSticky:
		return "Sticky"
	case PowerUpPassThrough:
		return "Pass-Through"
	case PowerUpIncreasePaddle:
		return "Pad-Size+"
	case PowerUpConfuse:
		return "Confuse"
	case PowerUpChaos:
		return "Chaos"
	default:
		return "?"
	}
}

// Color returns the tint of a falling power-up of this kind.
func (k PowerUpKind) Color() core.Color {
	switch k {
	case PowerUpSpeed:
		return core.RGB(0.5, 0.5, 1.0)
	case PowerUpSticky:
		return core.RGB(1.0, 0.5, 1.0)
	case PowerUpPassThrough:
		return core.RGB(0.5, 1.0, 0.5)
	case PowerUpIncreasePaddle:
		return core.RGB(1.0, 0.6, 0.4)
	case PowerUpConfuse:
		return core.RGB(1.0, 0.3, 0.3)
	case PowerUpChaos:
		return core.RGB(0.9, 0.25, 0.25)
	default:
		return core.ColorWhite
	}
}

// Texture returns the texture handle of this kind.
func (k PowerUpKind) Texture() TextureID {
	switch k {
	case PowerUpSpeed:
		return TexturePowerUpSpeed
	case PowerUpSticky:
		return TexturePowerUpSticky
	case PowerUpPassThrough:
		return TexturePowerUpPassThrough
	case PowerUpIncreasePaddle:
		return TexturePowerUpIncrease
	case PowerUpConfuse:
		return TexturePowerUpConfuse
	case PowerUpChaos:
		return TexturePowerUpChaos
	default:
		return TextureNone
	}
}

// Positive reports whether the kind helps the player.
func (k PowerUpKind) Positive() bool {
	return k != PowerUpConfuse && k != PowerUpChaos
}

var (
	stickyPaddleColor = core.RGB(1.0, 0.5, 1.0)
	passThroughColor  = core.RGB(1.0, 0.5, 0.5)
)

// PowerUp is a falling pickup. Once collected it is Destroyed and stays in
// the manager's list while Active, counting its Duration down.
type PowerUp struct {
	Body
	Kind     PowerUpKind
	Duration float64 // Seconds of effect remaining once active
	Active   bool
}

// KindSpec holds the spawn odds and effect duration of one kind.
type KindSpec struct {
	OneIn    int     // Spawn probability is 1/OneIn, 0 disables
	Duration float64 // Seconds
}

// PowerUpConfig holds configuration for power-up spawning and effects.
type PowerUpConfig struct {
	Size         core.Vec2
	Velocity     core.Vec2 // Fall velocity
	SpeedFactor  float64   // Ball velocity multiplier for Speed
	PaddleGrowth float64   // Width added by IncreasePaddle
	Kinds        [PowerUpKindCount]KindSpec
}

// DefaultPowerUpConfig returns the power-up configuration of the embedded
// defaults.
func DefaultPowerUpConfig() PowerUpConfig {
	return NewPowerUpConfig(config.DefaultBreakoutConfig().PowerUps)
}

// NewPowerUpConfig converts the YAML power-up section.
func NewPowerUpConfig(c config.PowerUpsConfig) PowerUpConfig {
	spec := func(k config.PowerUpKindConfig) KindSpec {
		return KindSpec{OneIn: k.OneIn, Duration: k.Duration}
	}
	return PowerUpConfig{
		Size:         core.V(c.Width, c.Height),
		Velocity:     core.V(0, c.FallSpeed),
		SpeedFactor:  c.SpeedFactor,
		PaddleGrowth: c.PaddleGrowth,
		Kinds: [PowerUpKindCount]KindSpec{
			PowerUpSpeed:          spec(c.Speed),
			PowerUpSticky:         spec(c.Sticky),
			PowerUpPassThrough:    spec(c.PassThrough),
			PowerUpIncreasePaddle: spec(c.IncreasePaddle),
			PowerUpConfuse:        spec(c.Confuse),
			PowerUpChaos:          spec(c.Chaos),
		},
	}
}

// ActiveEffect describes a power-up kind currently applied.
type ActiveEffect struct {
	Kind      PowerUpKind
	Remaining float64 // Longest remaining duration among stacked pickups
}

// PowerUpManager handles power-up spawning, falling, collection and expiry.
type PowerUpManager struct {
	Config   PowerUpConfig
	PowerUps []*PowerUp
	RNG      *SimpleRNG // Deterministic RNG
}

// NewPowerUpManager creates a new power-up manager with given seed.
func NewPowerUpManager(seed int64, cfg PowerUpConfig) *PowerUpManager {
	return &PowerUpManager{
		Config:   cfg,
		PowerUps: make([]*PowerUp, 0),
		RNG:      NewSimpleRNG(seed),
	}
}

// Clear drops every power-up, falling or active. The RNG keeps its state.
func (pm *PowerUpManager) Clear() {
	pm.PowerUps = pm.PowerUps[:0]
}

// TrySpawn rolls every kind independently for a brick destroyed at pos and
// spawns each kind that wins its roll. Returns the spawned kinds.
func (pm *PowerUpManager) TrySpawn(pos core.Vec2) []PowerUpKind {
	var spawned []PowerUpKind
	for k := PowerUpKind(0); k < PowerUpKindCount; k++ {
		spec := pm.Config.Kinds[k]
		if spec.OneIn <= 0 {
			continue
		}
		if pm.RNG.Intn(spec.OneIn) == 0 {
			pm.Spawn(k, pos)
			spawned = append(spawned, k)
		}
	}
	return spawned
}

// Spawn adds a falling power-up of the given kind at pos.
func (pm *PowerUpManager) Spawn(kind PowerUpKind, pos core.Vec2) *PowerUp {
	p := &PowerUp{
		Body:     NewBody(pos, pm.Config.Size, kind.Texture(), kind.Color(), pm.Config.Velocity),
		Kind:     kind,
		Duration: pm.Config.Kinds[kind].Duration,
	}
	pm.PowerUps = append(pm.PowerUps, p)
	return p
}

// Collect checks every falling power-up against the paddle. Caught ones are
// activated; ones that reached floor are marked destroyed.
// Returns the kinds collected this tick.
func (pm *PowerUpManager) Collect(a Actors, floor float64) []PowerUpKind {
	var collected []PowerUpKind
	paddle := a.Paddle.Bounds()
	for _, p := range pm.PowerUps {
		if p.Destroyed {
			continue
		}
		if core.RectOverlap(paddle, p.Bounds()) {
			p.Destroyed = true
			p.Active = true
			pm.activate(p, a)
			collected = append(collected, p.Kind)
			continue
		}
		if p.Position.Y >= floor {
			p.Destroyed = true
		}
	}
	return collected
}

// activate applies the effect of a freshly collected power-up.
func (pm *PowerUpManager) activate(p *PowerUp, a Actors) {
	switch p.Kind {
	case PowerUpSpeed:
		a.Ball.Velocity = a.Ball.Velocity.Scale(pm.Config.SpeedFactor)
	case PowerUpSticky:
		a.Ball.Sticky = true
		a.Paddle.Color = stickyPaddleColor
	case PowerUpPassThrough:
		a.Ball.PassThrough = true
		a.Ball.Color = passThroughColor
	case PowerUpIncreasePaddle:
		a.Paddle.Size.X += pm.Config.PaddleGrowth
	case PowerUpConfuse:
		// Confuse and chaos never stack
		if !a.Effects.Chaos {
			a.Effects.Confuse = true
		}
	case PowerUpChaos:
		if !a.Effects.Confuse {
			a.Effects.Chaos = true
		}
	}
}

// deactivate reverts the effect of an expired kind.
func (pm *PowerUpManager) deactivate(kind PowerUpKind, a Actors) {
	switch kind {
	case PowerUpSticky:
		a.Ball.Sticky = false
		a.Paddle.Color = core.ColorWhite
	case PowerUpPassThrough:
		a.Ball.PassThrough = false
		a.Ball.Color = core.ColorWhite
	case PowerUpConfuse:
		a.Effects.Confuse = false
	case PowerUpChaos:
		a.Effects.Chaos = false
	}
}

// Update advances every power-up by dt: falling ones move, active ones count
// down and expire. A kind's effect is reverted only when its last active
// power-up expires. Returns the kinds reverted this tick.
func (pm *PowerUpManager) Update(dt float64, a Actors) []PowerUpKind {
	var reverted []PowerUpKind
	for _, p := range pm.PowerUps {
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		if !p.Active {
			continue
		}
		p.Duration -= dt
		if p.Duration < 0 {
			p.Active = false
			if !pm.IsOtherActive(p.Kind) {
				pm.deactivate(p.Kind, a)
				reverted = append(reverted, p.Kind)
			}
		}
	}
	pm.collectGarbage()
	return reverted
}

// IsOtherActive reports whether any power-up of kind is still active.
func (pm *PowerUpManager) IsOtherActive(kind PowerUpKind) bool {
	for _, p := range pm.PowerUps {
		if p.Active && p.Kind == kind {
			return true
		}
	}
	return false
}

// collectGarbage removes power-ups that are destroyed and no longer active.
// The removal set is computed before the list is compacted.
func (pm *PowerUpManager) collectGarbage() int {
	remove := make([]bool, len(pm.PowerUps))
	n := 0
	for i, p := range pm.PowerUps {
		if p.Destroyed && !p.Active {
			remove[i] = true
			n++
		}
	}
	if n == 0 {
		return 0
	}

	kept := pm.PowerUps[:0]
	for i, p := range pm.PowerUps {
		if !remove[i] {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(pm.PowerUps); i++ {
		pm.PowerUps[i] = nil
	}
	pm.PowerUps = kept
	return n
}

// ActiveEffects lists the kinds with a running timer, in kind order.
// Instant kinds with zero duration expire on the next tick and are only
// listed until then.
func (pm *PowerUpManager) ActiveEffects() []ActiveEffect {
	var remaining [PowerUpKindCount]float64
	var active [PowerUpKindCount]bool
	for _, p := range pm.PowerUps {
		if !p.Active {
			continue
		}
		active[p.Kind] = true
		remaining[p.Kind] = max(remaining[p.Kind], p.Duration)
	}

	var out []ActiveEffect
	for k := PowerUpKind(0); k < PowerUpKindCount; k++ {
		if active[k] {
			out = append(out, ActiveEffect{Kind: k, Remaining: max(remaining[k], 0)})
		}
	}
	return out
}

// Falling returns the number of power-ups not yet collected or lost.
func (pm *PowerUpManager) Falling() int {
	n := 0
	for _, p := range pm.PowerUps {
		if !p.Destroyed {
			n++
		}
	}
	return n
}

// SimpleRNG is a deterministic pseudo-random number generator.
// Uses a 64-bit linear congruential generator.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// State returns the current generator state.
func (r *SimpleRNG) State() uint64 {
	return r.state
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits of an LCG are better distributed than the low ones
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}
