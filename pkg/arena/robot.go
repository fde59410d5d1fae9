package arena

import (
	"github.com/lao-tseu-is-alive/go-robot-arena/pkg/geometry"
)

// DifferentialDriveRobot is a dynamic body driven by two independently
// powered wheels. Wheel speeds are signed linear speeds in arena units
// per second; a speed difference turns the robot, the mean speed
// translates it along its heading.
type DifferentialDriveRobot struct {
	bodyCore
	speedLeft  float64
	speedRight float64
	sensors    []*InfraredSensor
}

// NewDifferentialDriveRobot creates a robot with the given radius and
// initial heading. The heading is normalized into [0, 2Pi), never
// rejected.
func NewDifferentialDriveRobot(radius, heading float64) (*DifferentialDriveRobot, error) {
	c, err := newBodyCore(radius)
	if err != nil {
		return nil, err
	}
	c.heading = geometry.NormalizeAngle(heading)
	return &DifferentialDriveRobot{bodyCore: c}, nil
}

// SetWheelSpeeds sets the left and right wheel linear speeds.
func (r *DifferentialDriveRobot) SetWheelSpeeds(left, right float64) {
	r.speedLeft = left
	r.speedRight = right
}

// WheelSpeeds returns the current left and right wheel linear speeds.
func (r *DifferentialDriveRobot) WheelSpeeds() (left, right float64) {
	return r.speedLeft, r.speedRight
}

// Sensors returns the robot's sensors in attachment order.
func (r *DifferentialDriveRobot) Sensors() []*InfraredSensor {
	out := make([]*InfraredSensor, len(r.sensors))
	copy(out, r.sensors)
	return out
}

// step recomputes the robot's pose from its wheel speeds over dt
// seconds of simulated time. Rotation is applied before translation:
// the heading is updated and committed here, then the candidate
// position is derived along the new heading and submitted to the
// arena's commit procedure by the caller. A rejected commit therefore
// keeps the rotation but not the translation.
func (r *DifferentialDriveRobot) step(dt float64) (geometry.Vector2D, bool) {
	pathLeft := r.speedLeft * dt
	pathRight := r.speedRight * dt

	deltaHeading := (pathLeft - pathRight) / (2 * r.radius)
	r.heading = geometry.NormalizeAngle(r.heading + deltaHeading)

	pathMean := (pathLeft + pathRight) / 2
	return r.pos.Add(geometry.NewVectorPolar(pathMean, r.heading)), true
}
