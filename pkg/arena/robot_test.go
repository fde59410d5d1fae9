package arena

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRobot(t *testing.T, radius, heading float64) *DifferentialDriveRobot {
	t.Helper()
	r, err := NewDifferentialDriveRobot(radius, heading)
	require.NoError(t, err)
	return r
}

func TestNewDifferentialDriveRobot(t *testing.T) {
	_, err := NewDifferentialDriveRobot(0, 0)
	assert.ErrorIs(t, err, ErrInvalidRadius)

	r := mustRobot(t, 10, -math.Pi/2)
	assert.InDelta(t, 3*math.Pi/2, r.Pose().Heading, 1e-9, "heading normalized into [0, 2Pi)")
}

func TestRobot_StraightLine(t *testing.T) {
	a := mustArena(t, 1000, 1000)
	r := mustRobot(t, 10, 0)
	require.NoError(t, a.Insert(r, 500, 500))

	// Equal wheel speeds of 60 units/s over a 1/60 s frame: one unit
	// forward, no rotation.
	r.SetWheelSpeeds(60, 60)
	a.Tick()

	pose := r.Pose()
	assert.InDelta(t, 501, pose.X, 1e-9)
	assert.InDelta(t, 500, pose.Y, 1e-9)
	assert.InDelta(t, 0, pose.Heading, 1e-9)
}

func TestRobot_TurnInPlace(t *testing.T) {
	a := mustArena(t, 1000, 1000)
	r := mustRobot(t, 10, 0)
	require.NoError(t, a.Insert(r, 500, 500))

	// Opposite speeds: paths +1 and -1, heading delta (1-(-1))/(2*10).
	r.SetWheelSpeeds(60, -60)
	a.Tick()

	pose := r.Pose()
	assert.InDelta(t, 0.1, pose.Heading, 1e-9)
	assert.InDelta(t, 500, pose.X, 1e-9)
	assert.InDelta(t, 500, pose.Y, 1e-9)
}

func TestRobot_RotationAppliedBeforeTranslation(t *testing.T) {
	a := mustArena(t, 1000, 1000)
	r := mustRobot(t, 10, 0)
	require.NoError(t, a.Insert(r, 500, 500))

	// pathL = 10Pi, pathR = 0: heading delta is Pi/2, mean path 5Pi.
	// Translation must follow the post-rotation heading, so the robot
	// moves straight up, not diagonally.
	r.SetWheelSpeeds(600*math.Pi, 0)
	a.Tick()

	pose := r.Pose()
	assert.InDelta(t, math.Pi/2, pose.Heading, 1e-9)
	assert.InDelta(t, 500, pose.X, 1e-9)
	assert.InDelta(t, 500+5*math.Pi, pose.Y, 1e-9)
}

func TestRobot_TimeScale(t *testing.T) {
	a := mustArena(t, 1000, 1000)
	r := mustRobot(t, 10, 0)
	require.NoError(t, a.Insert(r, 500, 500))
	r.SetWheelSpeeds(60, 60)

	a.SetTimeScale(2)
	a.Tick()
	assert.InDelta(t, 502, r.Pose().X, 1e-9, "doubled time scale doubles the path")

	a.SetTimeScale(0)
	a.Tick()
	assert.InDelta(t, 502, r.Pose().X, 1e-9, "frozen time scale freezes motion")
}

func TestRobot_HeadingStaysNormalized(t *testing.T) {
	a := mustArena(t, 1000, 1000)
	r := mustRobot(t, 10, 0)
	require.NoError(t, a.Insert(r, 500, 500))
	r.SetWheelSpeeds(60, -60)

	// 0.1 rad per tick; two full turns worth of ticks never leaves
	// [0, 2Pi).
	for i := 0; i < 126; i++ {
		a.Tick()
		h := r.Pose().Heading
		assert.GreaterOrEqual(t, h, 0.0)
		assert.Less(t, h, 2*math.Pi)
	}
}

func TestRobot_RejectedCommitKeepsRotation(t *testing.T) {
	a := mustArena(t, 1000, 1000)
	wall := mustObstacle(t, 10)
	r := mustRobot(t, 10, 0)
	require.NoError(t, a.Insert(wall, 520, 500))
	require.NoError(t, a.Insert(r, 500, 500))

	// Driving right into the obstacle: the translation is rejected,
	// the rotation half of the recompute still lands.
	r.SetWheelSpeeds(120, 60)
	a.Tick()

	pose := r.Pose()
	assert.InDelta(t, 500, pose.X, 1e-9, "position unchanged on rejected commit")
	assert.InDelta(t, 0.05, pose.Heading, 1e-9, "heading committed before the position was submitted")
}

func TestRobot_WheelSpeedsAccessor(t *testing.T) {
	r := mustRobot(t, 5, 0)
	r.SetWheelSpeeds(-3, 7)
	l, rr := r.WheelSpeeds()
	assert.Equal(t, -3.0, l)
	assert.Equal(t, 7.0, rr)
}
