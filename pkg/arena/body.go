package arena

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-robot-arena/pkg/geometry"
)

// Pose is a read-only snapshot of a body's committed position and heading.
// Heading is always in [0, 2Pi).
type Pose struct {
	X, Y    float64
	Heading float64
}

// CollisionHandler is invoked synchronously after a position commit was
// rejected because of overlaps. It receives the first neighbor the body
// collided with, in registry order. The handler cannot undo the
// rejection; it exists so a host can react (stop the wheels, log, score).
type CollisionHandler func(other Body)

// Body is the capability set shared by everything living in an arena:
// a circular extent, a committed pose, and a per-tick kinematic step.
// The unexported methods keep the set of variants closed to this
// package; concrete variants are StaticObstacle and
// DifferentialDriveRobot.
type Body interface {
	// ID returns the body's stable identifier, used in logs and hooks.
	ID() string
	// Pose returns a snapshot of the committed position and heading.
	Pose() Pose
	// Radius returns the body's circular extent.
	Radius() float64

	// core exposes the shared mutable state to the arena.
	core() *bodyCore
	// step advances the kinematic state by dt seconds of simulated time
	// and returns the candidate position. The bool reports whether the
	// body is dynamic; static bodies skip the commit path entirely.
	step(dt float64) (geometry.Vector2D, bool)
}

// bodyCore holds the state every body variant shares. The owner pointer
// is a non-owning back-reference: the arena owns its bodies, a body can
// belong to at most one arena for its whole lifetime.
type bodyCore struct {
	id          string
	pos         geometry.Vector2D
	heading     float64
	radius      float64
	owner       *Arena
	onCollision CollisionHandler
}

func newBodyCore(radius float64) (bodyCore, error) {
	if radius <= 0 {
		return bodyCore{}, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	return bodyCore{id: uuid.NewString(), radius: radius}, nil
}

func (c *bodyCore) ID() string { return c.id }

func (c *bodyCore) Pose() Pose {
	return Pose{X: c.pos.X, Y: c.pos.Y, Heading: c.heading}
}

func (c *bodyCore) Radius() float64 { return c.radius }

func (c *bodyCore) core() *bodyCore { return c }

// SetCollisionHandler registers the hook invoked after a rejected
// commit. A nil handler clears it.
func (c *bodyCore) SetCollisionHandler(h CollisionHandler) { c.onCollision = h }

var (
	_ Body = (*StaticObstacle)(nil)
	_ Body = (*DifferentialDriveRobot)(nil)
)

// StaticObstacle is a body that never moves on its own. Its heading is
// fixed at zero and its per-tick recompute is a no-op.
type StaticObstacle struct {
	bodyCore
}

// NewStaticObstacle creates an obstacle of the given radius.
func NewStaticObstacle(radius float64) (*StaticObstacle, error) {
	c, err := newBodyCore(radius)
	if err != nil {
		return nil, err
	}
	return &StaticObstacle{bodyCore: c}, nil
}

func (o *StaticObstacle) step(_ float64) (geometry.Vector2D, bool) {
	return o.pos, false
}
