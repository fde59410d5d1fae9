package arena

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector bundles the Prometheus metrics the engine records. Attach
// one to an arena with SetCollector; a nil collector disables all
// recording.
type Collector struct {
	Ticks           prometheus.Counter
	RejectedCommits prometheus.Counter
	DisplacedBodies prometheus.Counter
	SensorReads     *prometheus.CounterVec
	Bodies          prometheus.Gauge
}

// NewCollector registers the engine metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
// Registering twice against the same registerer reuses the existing
// collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	ticks, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "arena_ticks_total",
		Help: "Total number of simulation ticks advanced.",
	}))
	if err != nil {
		return nil, err
	}
	rejected, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "arena_commits_rejected_total",
		Help: "Total number of position commits rejected because of collisions.",
	}))
	if err != nil {
		return nil, err
	}
	displaced, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "arena_bodies_displaced_total",
		Help: "Total number of neighbor displacements performed by the collision resolver.",
	}))
	if err != nil {
		return nil, err
	}
	reads, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_sensor_reads_total",
		Help: "Total number of sensor reads, labeled by whether the sensor triggered.",
	}, []string{"triggered"}))
	if err != nil {
		return nil, err
	}
	bodies, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arena_bodies",
		Help: "Current number of bodies in the arena registry.",
	}))
	if err != nil {
		return nil, err
	}

	return &Collector{
		Ticks:           ticks,
		RejectedCommits: rejected,
		DisplacedBodies: displaced,
		SensorReads:     reads,
		Bodies:          bodies,
	}, nil
}

// register adds c to reg, reusing the already-registered collector of
// the same fully-qualified name if there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
