// Package layout computes force-directed bubble layouts for weighted
// nodes. The engine is independent of what the nodes represent: it takes
// identifiers and weights and produces positions and radii.
package layout

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Weighted is an input node for the simulation
type Weighted struct {
	ID    string
	Value float64
}

// Node is a positioned node as seen by consumers
type Node struct {
	ID     string
	Value  float64
	Radius float64
	X      float64
	Y      float64
	Pinned bool
}

// Config tunes the simulation. Zero values are replaced by defaults.
type Config struct {
	Width  float64
	Height float64

	// Radius mapping: area tracks weight, so radius scales with sqrt(value)
	MinRadius float64
	MaxRadius float64

	// Forces
	ChargeStrength  float64 // negative repels
	CenterStrength  float64
	CollidePadding  float64
	CollideStrength float64

	// Cooling
	AlphaMin      float64
	AlphaDecay    float64
	VelocityDecay float64

	// Initial jitter around the viewport center
	Jitter float64

	// Seed for deterministic layouts in tests; 0 seeds from the clock
	Seed int64
}

// DefaultConfig returns the tuning used by the bubble canvas
func DefaultConfig(width, height float64) Config {
	return Config{
		Width:           width,
		Height:          height,
		MinRadius:       55,
		MaxRadius:       110,
		ChargeStrength:  -30,
		CenterStrength:  0.05,
		CollidePadding:  5,
		CollideStrength: 0.8,
		AlphaMin:        0.001,
		AlphaDecay:      1 - math.Pow(0.001, 1.0/300),
		VelocityDecay:   0.4,
		Jitter:          50,
	}
}

type simNode struct {
	Node
	vx, vy float64
	fx, fy *float64 // pin override while dragged
}

// Engine runs a continuously-settling force simulation. It is safe for
// concurrent use; consumers read snapshots while a tick loop advances it.
type Engine struct {
	mu          sync.Mutex
	cfg         Config
	nodes       []*simNode
	index       map[string]*simNode
	alpha       float64
	alphaTarget float64
	rng         *rand.Rand
}

// NewEngine builds an engine for the given weighted nodes. Nodes start
// at the viewport center with a small random offset so the solver never
// sees an all-coincident configuration.
func NewEngine(cfg Config, items []Weighted) *Engine {
	if cfg.MinRadius == 0 && cfg.MaxRadius == 0 {
		def := DefaultConfig(cfg.Width, cfg.Height)
		def.Seed = cfg.Seed
		cfg = def
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	maxVal := 0.0
	for _, it := range items {
		if it.Value > maxVal {
			maxVal = it.Value
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	e := &Engine{
		cfg:   cfg,
		index: make(map[string]*simNode, len(items)),
		alpha: 1,
		rng:   rng,
	}

	cx, cy := cfg.Width/2, cfg.Height/2
	for _, it := range items {
		n := &simNode{Node: Node{
			ID:     it.ID,
			Value:  it.Value,
			Radius: radiusFor(it.Value, maxVal, cfg.MinRadius, cfg.MaxRadius),
			X:      cx + (rng.Float64()-0.5)*cfg.Jitter,
			Y:      cy + (rng.Float64()-0.5)*cfg.Jitter,
		}}
		e.nodes = append(e.nodes, n)
		e.index[n.ID] = n
	}
	return e
}

// radiusFor maps value into [min,max] on a square-root scale so that
// bubble area, not radius, is proportional to weight.
func radiusFor(value, maxValue, min, max float64) float64 {
	if value < 0 {
		value = 0
	}
	return min + (max-min)*math.Sqrt(value/maxValue)
}

// Step advances the simulation by one tick
func (e *Engine) Step() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.alpha < e.cfg.AlphaMin && e.alphaTarget == 0 {
		return
	}

	e.alpha += (e.alphaTarget - e.alpha) * e.cfg.AlphaDecay

	e.applyCharge()
	e.applyCentering()
	e.applyCollision()

	decay := 1 - e.cfg.VelocityDecay
	for _, n := range e.nodes {
		if n.fx != nil {
			n.X, n.vx = *n.fx, 0
			n.Y, n.vy = *n.fy, 0
			continue
		}
		n.vx *= decay
		n.vy *= decay
		n.X += n.vx
		n.Y += n.vy
	}
}

// applyCharge applies pairwise many-body force; negative strength repels
func (e *Engine) applyCharge() {
	for i, a := range e.nodes {
		for _, b := range e.nodes[i+1:] {
			dx := b.X - a.X
			dy := b.Y - a.Y
			d2 := dx*dx + dy*dy
			if d2 < 1 {
				dx, dy = e.jiggle(), e.jiggle()
				d2 = dx*dx + dy*dy
			}
			w := e.cfg.ChargeStrength * e.alpha / d2
			a.vx += dx * w
			a.vy += dy * w
			b.vx -= dx * w
			b.vy -= dy * w
		}
	}
}

// applyCentering pulls every node toward the viewport center on both axes
func (e *Engine) applyCentering() {
	cx, cy := e.cfg.Width/2, e.cfg.Height/2
	for _, n := range e.nodes {
		n.vx += (cx - n.X) * e.cfg.CenterStrength * e.alpha
		n.vy += (cy - n.Y) * e.cfg.CenterStrength * e.alpha
	}
}

// applyCollision separates overlapping pairs, heavier nodes yielding less
func (e *Engine) applyCollision() {
	for i, a := range e.nodes {
		for _, b := range e.nodes[i+1:] {
			minDist := a.Radius + b.Radius + e.cfg.CollidePadding
			dx := (b.X + b.vx) - (a.X + a.vx)
			dy := (b.Y + b.vy) - (a.Y + a.vy)
			d2 := dx*dx + dy*dy
			if d2 >= minDist*minDist {
				continue
			}
			if d2 < 1 {
				dx, dy = e.jiggle(), e.jiggle()
				d2 = dx*dx + dy*dy
			}
			d := math.Sqrt(d2)
			overlap := (minDist - d) / d * e.cfg.CollideStrength
			ra2 := a.Radius * a.Radius
			rb2 := b.Radius * b.Radius
			wa := rb2 / (ra2 + rb2)
			a.vx -= dx * overlap * wa
			a.vy -= dy * overlap * wa
			b.vx += dx * overlap * (1 - wa)
			b.vy += dy * overlap * (1 - wa)
		}
	}
}

func (e *Engine) jiggle() float64 {
	return (e.rng.Float64() - 0.5) * 1e-6
}

// Seize pins a node at its current position for dragging and reheats the
// system so neighbors visibly re-settle around it.
func (e *Engine) Seize(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, ok := e.index[id]
	if !ok {
		return
	}
	x, y := n.X, n.Y
	n.fx, n.fy = &x, &y
	n.Pinned = true
	e.alphaTarget = 0.3
	if e.alpha < e.alphaTarget {
		e.alpha = e.alphaTarget
	}
}

// Drag moves a seized node to a new position
func (e *Engine) Drag(id string, x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, ok := e.index[id]
	if !ok || n.fx == nil {
		return
	}
	*n.fx, *n.fy = x, y
}

// Release returns a node to the force system and lets the energy decay
func (e *Engine) Release(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, ok := e.index[id]
	if !ok {
		return
	}
	n.fx, n.fy = nil, nil
	n.Pinned = false
	e.alphaTarget = 0
}

// Settled reports whether the simulation has reached rest
func (e *Engine) Settled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.alpha < e.cfg.AlphaMin && e.alphaTarget == 0
}

// Snapshot returns the current node positions
func (e *Engine) Snapshot() []Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Node, len(e.nodes))
	for i, n := range e.nodes {
		out[i] = n.Node
	}
	return out
}

// Settle steps the simulation until it rests or maxSteps is reached, then
// returns the final positions. Used when a one-shot layout is enough.
func (e *Engine) Settle(maxSteps int) []Node {
	for i := 0; i < maxSteps && !e.Settled(); i++ {
		e.Step()
	}
	return e.Snapshot()
}

// Run drives the simulation from a tick loop until ctx is cancelled,
// publishing a snapshot after every step. The channel is closed on exit;
// callers must cancel ctx before swapping in a new node set so two
// simulations never run over the same view.
func (e *Engine) Run(ctx context.Context, interval time.Duration) <-chan []Node {
	out := make(chan []Node, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.Step()
				// Drop the stale frame if the consumer is behind
				select {
				case out <- e.Snapshot():
				default:
					select {
					case <-out:
					default:
					}
					out <- e.Snapshot()
				}
			}
		}
	}()
	return out
}
