// Package arena implements the motion-and-collision engine for a
// bounded rectangular world of circular bodies, plus the infrared
// sensor model robots use to perceive it.
//
// The engine is single-threaded and synchronous: one caller drives
// ticks serially, and the collision resolver reads and writes neighbor
// positions without synchronization. A concurrent host must serialize
// all position-mutating calls per arena.
package arena

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-robot-arena/pkg/geometry"
)

// FrameDuration is the simulated duration of one tick in seconds,
// before the time-scale multiplier is applied.
const FrameDuration = 1.0 / 60

// displacementMargin pushes displaced neighbors 1% past exact contact
// to avoid persistent contact jitter.
const displacementMargin = 1.01

// Arena is a bounded rectangular world owning an ordered list of
// bodies. Insertion order is iteration order, for both the per-tick
// motion loop and the collision and sensor scans.
type Arena struct {
	width, height float64
	timeScale     float64
	bodies        []Body

	log     *zap.Logger
	metrics *Collector
}

// New creates an arena with fixed bounds. Both dimensions must be
// positive.
func New(width, height float64) (*Arena, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %vx%v", ErrInvalidDimension, width, height)
	}
	return &Arena{
		width:     width,
		height:    height,
		timeScale: 1,
		log:       zap.NewNop(),
	}, nil
}

// Width returns the arena width.
func (a *Arena) Width() float64 { return a.width }

// Height returns the arena height.
func (a *Arena) Height() float64 { return a.height }

// TimeScale returns the current time-scale multiplier.
func (a *Arena) TimeScale() float64 { return a.timeScale }

// SetTimeScale sets the multiplier applied uniformly to all kinematic
// updates. Negative values are clamped to zero (frozen time), they are
// never an error.
func (a *Arena) SetTimeScale(scale float64) {
	a.timeScale = math.Max(0, scale)
}

// SetLogger attaches a logger for debug-level collision telemetry.
// The default is a no-op logger.
func (a *Arena) SetLogger(log *zap.Logger) {
	if log != nil {
		a.log = log
	}
}

// SetCollector attaches a metrics collector. Nil detaches it.
func (a *Arena) SetCollector(c *Collector) {
	a.metrics = c
	if c != nil {
		c.Bodies.Set(float64(len(a.bodies)))
	}
}

// Bodies returns the bodies in registry (insertion) order.
func (a *Arena) Bodies() []Body {
	out := make([]Body, len(a.bodies))
	copy(out, a.bodies)
	return out
}

// Valid reports whether the point (x, y) lies inside the arena
// rectangle, bounds inclusive. It checks a reference point, not a
// body's full extent.
func (a *Arena) Valid(x, y float64) bool {
	return a.validX(x) && a.validY(y)
}

func (a *Arena) validX(v float64) bool { return v >= 0 && v <= a.width }
func (a *Arena) validY(v float64) bool { return v >= 0 && v <= a.height }

// ClampX saturates a value into [0, width].
func (a *Arena) ClampX(v float64) float64 { return clamp(v, 0, a.width) }

// ClampY saturates a value into [0, height].
func (a *Arena) ClampY(v float64) float64 { return clamp(v, 0, a.height) }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Insert adds a body to the arena registry and assigns its initial
// position through the same commit procedure as subsequent moves. If
// the initial placement collides, the body keeps its zero position
// while the overlapped neighbors are displaced, exactly like a rejected
// move; Insert itself still succeeds. A body belongs to at most one
// arena for its whole lifetime.
func (a *Arena) Insert(b Body, x, y float64) error {
	if b == nil {
		return ErrNotABody
	}
	c := b.core()
	if c.owner != nil {
		return fmt.Errorf("%w: body %s", ErrBodyOwned, c.id)
	}
	c.owner = a
	a.bodies = append(a.bodies, b)
	if a.metrics != nil {
		a.metrics.Bodies.Set(float64(len(a.bodies)))
	}
	a.SetPosition(b, x, y)
	return nil
}

// Tick advances every dynamic body by one frame of simulated time,
// in registry order: recompute the candidate pose from wheel speeds,
// then submit it to the commit procedure. Static bodies are skipped.
func (a *Arena) Tick() {
	dt := FrameDuration * a.timeScale
	for _, b := range a.bodies {
		if candidate, dynamic := b.step(dt); dynamic {
			a.SetPosition(b, candidate.X, candidate.Y)
		}
	}
	if a.metrics != nil {
		a.metrics.Ticks.Inc()
	}
}

// SetPosition runs the position-commit procedure for a body:
//
//  1. Per-axis edge clamp of the extent [x-r, x+r] x [y-r, y+r]
//     against the bounds, X before Y, near edge before far edge.
//  2. Collision scan over all other bodies in registry order, comparing
//     the integer-rounded center distance against the sum of radii.
//     Each overlapped neighbor is displaced away from the candidate
//     position to 1% past exact contact. The displacement is a single
//     asymmetric pass: the neighbor is neither re-clamped against the
//     bounds nor re-checked against third bodies.
//  3. If no collision was found the clamped candidate is committed and
//     SetPosition returns true. Otherwise the body keeps its previous
//     position, its collision handler (if any) fires with the first
//     colliding neighbor, and SetPosition returns false.
func (a *Arena) SetPosition(b Body, x, y float64) bool {
	c := b.core()
	r := c.radius

	if !a.validX(x - r) {
		x = a.ClampX(x-r) + r
	} else if !a.validX(x + r) {
		x = a.ClampX(x+r) - r
	}
	if !a.validY(y - r) {
		y = a.ClampY(y-r) + r
	} else if !a.validY(y + r) {
		y = a.ClampY(y+r) - r
	}

	candidate := geometry.Vector2D{X: x, Y: y}
	collisions := 0
	var firstHit Body

	for _, other := range a.bodies {
		oc := other.core()
		if oc == c {
			continue
		}
		delta := oc.pos.Sub(candidate)
		dist := math.Round(delta.Len())
		minDistance := r + oc.radius
		if dist >= minDistance {
			continue
		}

		collisions++
		if firstHit == nil {
			firstHit = other
		}
		if dist == 0 {
			// Coincident centers leave the push direction undefined;
			// fall back to the positive X axis.
			delta = geometry.Vector2D{X: 1}
			dist = 1
		}
		oc.pos = candidate.Add(delta.Mul(minDistance / dist * displacementMargin))
		a.log.Debug("neighbor displaced",
			zap.String("body", c.id),
			zap.String("neighbor", oc.id),
			zap.Float64("distance", dist),
			zap.Float64("minDistance", minDistance),
		)
		if a.metrics != nil {
			a.metrics.DisplacedBodies.Inc()
		}
	}

	if collisions > 0 {
		a.log.Debug("commit rejected",
			zap.String("body", c.id),
			zap.Int("collisions", collisions),
		)
		if a.metrics != nil {
			a.metrics.RejectedCommits.Inc()
		}
		if c.onCollision != nil {
			c.onCollision(firstHit)
		}
		return false
	}

	c.pos = candidate
	return true
}

func (a *Arena) observeSensorRead(hit bool) {
	if a.metrics != nil {
		a.metrics.SensorReads.WithLabelValues(boolLabel(hit)).Inc()
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
