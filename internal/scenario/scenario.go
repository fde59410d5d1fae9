// Package scenario loads and validates arena scenario files and builds
// the described world. The engine itself never touches files; hosts
// load a scenario and hand the built arena to the simulation loop.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lao-tseu-is-alive/go-robot-arena/pkg/arena"
)

// ArenaConfig describes the world bounds and the initial time scale.
type ArenaConfig struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	TimeScale float64 `json:"timeScale"`
}

// ObstacleConfig describes one static obstacle.
type ObstacleConfig struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// SensorConfig describes one infrared sensor. Angles are in radians;
// Detects lists the target kinds out of "walls" and "objects".
type SensorConfig struct {
	MountAngle    float64  `json:"mountAngle"`
	HalfViewAngle float64  `json:"halfViewAngle"`
	Range         float64  `json:"range"`
	Detects       []string `json:"detects"`
}

// RobotConfig describes one differential-drive robot with its sensors.
type RobotConfig struct {
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Radius     float64        `json:"radius"`
	Heading    float64        `json:"heading"`
	LeftSpeed  float64        `json:"leftSpeed"`
	RightSpeed float64        `json:"rightSpeed"`
	Sensors    []SensorConfig `json:"sensors"`
}

// Scenario is a complete world description.
type Scenario struct {
	Arena     ArenaConfig      `json:"arena"`
	Obstacles []ObstacleConfig `json:"obstacles"`
	Robots    []RobotConfig    `json:"robots"`
}

// Default returns the built-in demo scenario: one robot on a gentle
// curve between three obstacles, with a forward wall-and-object sensor
// and two angled whiskers.
func Default() *Scenario {
	forward := SensorConfig{MountAngle: 0, HalfViewAngle: 0.2182, Range: 120, Detects: []string{"walls", "objects"}}
	left := SensorConfig{MountAngle: 0.7854, HalfViewAngle: 0.2182, Range: 80, Detects: []string{"objects"}}
	right := SensorConfig{MountAngle: -0.7854, HalfViewAngle: 0.2182, Range: 80, Detects: []string{"objects"}}

	return &Scenario{
		Arena: ArenaConfig{Width: 800, Height: 600, TimeScale: 1},
		Obstacles: []ObstacleConfig{
			{X: 200, Y: 150, Radius: 30},
			{X: 600, Y: 450, Radius: 40},
			{X: 400, Y: 300, Radius: 20},
		},
		Robots: []RobotConfig{
			{X: 120, Y: 500, Radius: 16, Heading: 0, LeftSpeed: 42, RightSpeed: 40,
				Sensors: []SensorConfig{forward, left, right}},
			{X: 650, Y: 120, Radius: 16, Heading: 3.1416, LeftSpeed: 40, RightSpeed: 42,
				Sensors: []SensorConfig{forward}},
		},
	}
}

// Load reads a scenario from a JSON file and validates it against the
// schema before unmarshalling.
func Load(configFile, schemaFile string) (*Scenario, error) {
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode scenario json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	var s Scenario
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	return &s, nil
}

// Build constructs the arena and inserts every described body. Bodies
// are inserted in file order (obstacles first, then robots), which is
// also the engine's registry order.
func (s *Scenario) Build() (*arena.Arena, error) {
	a, err := arena.New(s.Arena.Width, s.Arena.Height)
	if err != nil {
		return nil, err
	}
	if s.Arena.TimeScale > 0 {
		a.SetTimeScale(s.Arena.TimeScale)
	}

	for i, oc := range s.Obstacles {
		o, err := arena.NewStaticObstacle(oc.Radius)
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		if err := a.Insert(o, oc.X, oc.Y); err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
	}

	for i, rc := range s.Robots {
		r, err := arena.NewDifferentialDriveRobot(rc.Radius, rc.Heading)
		if err != nil {
			return nil, fmt.Errorf("robot %d: %w", i, err)
		}
		r.SetWheelSpeeds(rc.LeftSpeed, rc.RightSpeed)
		for j, sc := range rc.Sensors {
			kinds, err := parseDetectionKinds(sc.Detects)
			if err != nil {
				return nil, fmt.Errorf("robot %d sensor %d: %w", i, j, err)
			}
			if _, err := r.AttachInfraredSensor(sc.MountAngle, sc.HalfViewAngle, sc.Range, kinds); err != nil {
				return nil, fmt.Errorf("robot %d sensor %d: %w", i, j, err)
			}
		}
		if err := a.Insert(r, rc.X, rc.Y); err != nil {
			return nil, fmt.Errorf("robot %d: %w", i, err)
		}
	}

	return a, nil
}

func parseDetectionKinds(names []string) (arena.DetectionKind, error) {
	var kinds arena.DetectionKind
	for _, n := range names {
		switch n {
		case "walls":
			kinds |= arena.DetectWalls
		case "objects":
			kinds |= arena.DetectObjects
		default:
			return 0, fmt.Errorf("unknown detection kind %q", n)
		}
	}
	return kinds, nil
}
