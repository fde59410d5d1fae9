package arena

import (
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-robot-arena/pkg/geometry"
)

// DetectionKind selects which kinds of targets a sensor reacts to.
type DetectionKind uint8

const (
	// DetectWalls makes the sensor react to the arena boundary.
	DetectWalls DetectionKind = 1 << iota
	// DetectObjects makes the sensor react to other bodies.
	DetectObjects
)

// DetectAll reacts to walls and objects alike.
const DetectAll = DetectWalls | DetectObjects

// Sensor is a proximity sensor attached to a robot. A sensor has no
// state of its own: every reading is recomputed from the committed
// world state, so repeated reads without an intervening tick are
// idempotent and a read never mutates the world.
type Sensor interface {
	// Read reports whether anything eligible is inside the sensor cone.
	Read() bool
	// AbsoluteAngle returns the sensor's current facing in [0, 2Pi).
	AbsoluteAngle() float64
	// WorldPosition returns the sensor's current position on the rim of
	// its robot.
	WorldPosition() geometry.Vector2D
}

var _ Sensor = (*InfraredSensor)(nil)

// InfraredSensor detects the arena walls and other bodies inside an
// angular cone of mount angle +- half-view, up to a maximum range.
// Mount geometry is fixed for the sensor's lifetime; the absolute pose
// is derived from the owning robot on every query.
type InfraredSensor struct {
	robot         *DifferentialDriveRobot
	mountAngle    float64
	halfViewAngle float64
	maxRange      float64
	detects       DetectionKind
}

// AttachInfraredSensor creates a sensor and attaches it to the robot.
// The mount angle is relative to the robot's heading and normalized
// into [0, 2Pi). Sensors are never detached.
func (r *DifferentialDriveRobot) AttachInfraredSensor(mountAngle, halfViewAngle, maxRange float64, detects DetectionKind) (*InfraredSensor, error) {
	if maxRange <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRange, maxRange)
	}
	if halfViewAngle < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidViewAngle, halfViewAngle)
	}
	s := &InfraredSensor{
		robot:         r,
		mountAngle:    geometry.NormalizeAngle(mountAngle),
		halfViewAngle: halfViewAngle,
		maxRange:      maxRange,
		detects:       detects,
	}
	r.sensors = append(r.sensors, s)
	return s, nil
}

// MountAngle returns the mount angle relative to the robot's heading.
func (s *InfraredSensor) MountAngle() float64 { return s.mountAngle }

// HalfViewAngle returns the view half-angle of the cone.
func (s *InfraredSensor) HalfViewAngle() float64 { return s.halfViewAngle }

// MaxRange returns the maximum detection range.
func (s *InfraredSensor) MaxRange() float64 { return s.maxRange }

// Detects returns the sensor's detected-kinds filter.
func (s *InfraredSensor) Detects() DetectionKind { return s.detects }

// AbsoluteAngle returns the sensor facing derived from the robot's
// current heading.
func (s *InfraredSensor) AbsoluteAngle() float64 {
	return geometry.NormalizeAngle(s.robot.heading + s.mountAngle)
}

// WorldPosition returns the robot's center offset by the robot radius
// along the sensor's absolute angle.
func (s *InfraredSensor) WorldPosition() geometry.Vector2D {
	return s.robot.pos.Add(geometry.NewVectorPolar(s.robot.radius, s.AbsoluteAngle()))
}

// Read reports whether the sensor currently detects anything it is
// filtered for. A robot that has not been inserted into an arena has no
// world to detect against and always reads false.
func (s *InfraredSensor) Read() bool {
	a := s.robot.owner
	if a == nil {
		return false
	}
	hit := s.detects&DetectWalls != 0 && s.detectWalls(a)
	if !hit && s.detects&DetectObjects != 0 {
		hit = s.detectBodies(a)
	}
	a.observeSensorRead(hit)
	return hit
}

// detectWalls reports whether any ray of the view cone, up to the
// detection range, would exit the arena rectangle. The cone is treated
// as covering only its angular extremes, a conservative bounding
// approximation: the facing is reduced to a reference angle in
// [0, Pi/2] by quadrant-specific reflection, the Y-axis reach uses the
// cone edge rotated toward the axis, the X-axis reach the edge rotated
// away. The quadrant also picks which wall pair to test. Distances are
// measured from the robot center.
func (s *InfraredSensor) detectWalls(a *Arena) bool {
	abs := s.AbsoluteAngle()
	pos := s.robot.pos

	var ref, distX, distY float64
	switch {
	case abs < math.Pi/2: // toward right and top walls
		ref = abs
		distX = a.width - pos.X
		distY = a.height - pos.Y
	case abs < math.Pi: // toward left and top walls
		ref = math.Pi - abs
		distX = pos.X
		distY = a.height - pos.Y
	case abs < 3*math.Pi/2: // toward left and bottom walls
		ref = abs - math.Pi
		distX = pos.X
		distY = pos.Y
	default: // toward right and bottom walls
		ref = geometry.TwoPi - abs
		distX = a.width - pos.X
		distY = pos.Y
	}

	reachY := s.maxRange * math.Cos(math.Pi/2-math.Min(math.Pi/2, ref+s.halfViewAngle))
	if reachY > distY {
		return true
	}
	reachX := s.maxRange * math.Cos(math.Max(0, ref-s.halfViewAngle))
	return reachX > distX
}

// detectBodies scans all other bodies in registry order and
// short-circuits on the first one whose disk intersects the view cone.
func (s *InfraredSensor) detectBodies(a *Arena) bool {
	origin := s.WorldPosition()
	facing := s.AbsoluteAngle()
	for _, other := range a.bodies {
		if other.core() == &s.robot.bodyCore {
			continue
		}
		if s.detectBody(origin, facing, other) {
			return true
		}
	}
	return false
}

// detectBody runs the cone-vs-circle occlusion test for one target.
func (s *InfraredSensor) detectBody(origin geometry.Vector2D, facing float64, other Body) bool {
	oc := other.core()
	delta := oc.pos.Sub(origin)
	targetRadius := oc.radius

	// Cheap rejections before any trigonometry.
	if math.Abs(delta.X)-targetRadius > s.maxRange || math.Abs(delta.Y)-targetRadius > s.maxRange {
		return false
	}
	dist := delta.Len()
	if dist-targetRadius > s.maxRange {
		return false
	}
	if dist <= targetRadius {
		// The sensor sits inside the target disk.
		return true
	}

	angularDiff := geometry.AngleDistance(geometry.Bearing(delta), facing)
	subtended := math.Asin(targetRadius / dist)
	if angularDiff > s.halfViewAngle+subtended {
		return false
	}

	// The disk overlaps the cone's angular extent; refine against the
	// nearest cone edge. Either the projection of the center along the
	// edge lies within range, or the perpendicular miss-distance from
	// the edge is smaller than the target radius.
	edge := angularDiff - s.halfViewAngle
	if math.Cos(edge)*dist <= s.maxRange {
		return true
	}
	return math.Sin(edge)*dist < targetRadius
}
