package vehicle

import (
	"math"

	"github.com/zeusync/interact/internal/core/observability/log"
)

// MotorConfig holds speeds in km/h and rates in km/h per second.
type MotorConfig struct {
	MaxSpeed          float64 `json:"max_speed,omitempty" yaml:"max_speed,omitempty"`
	BoostSpeed        float64 `json:"boost_speed,omitempty" yaml:"boost_speed,omitempty"`
	ReverseSpeed      float64 `json:"reverse_speed,omitempty" yaml:"reverse_speed,omitempty"`
	Accel             float64 `json:"accel,omitempty" yaml:"accel,omitempty"`
	Brake             float64 `json:"brake,omitempty" yaml:"brake,omitempty"`
	Coast             float64 `json:"coast,omitempty" yaml:"coast,omitempty"`
	ParkedCoast       float64 `json:"parked_coast,omitempty" yaml:"parked_coast,omitempty"`
	SteerRate         float64 `json:"steer_rate,omitempty" yaml:"steer_rate,omitempty"`
	SteerWhileStopped float64 `json:"steer_while_stopped,omitempty" yaml:"steer_while_stopped,omitempty"`
	StopThreshold     float64 `json:"stop_threshold,omitempty" yaml:"stop_threshold,omitempty"`
}

func (c MotorConfig) withDefaults() MotorConfig {
	def := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	def(&c.MaxSpeed, 20)
	def(&c.BoostSpeed, 50)
	def(&c.ReverseSpeed, 10)
	def(&c.Accel, 18)
	def(&c.Brake, 40)
	def(&c.Coast, 8)
	def(&c.ParkedCoast, 20)
	def(&c.SteerRate, 80)
	def(&c.SteerWhileStopped, 30)
	def(&c.StopThreshold, 0.5)
	return c
}

// Controls is the driver input sampled for one tick. Steer is -1 (left) to 1 (right).
type Controls struct {
	Throttle bool
	Reverse  bool
	Brake    bool
	Boost    bool
	Steer    float64
}

var _ Motion = (*Motor)(nil)

// Motor is a kinematic reference Motion: a signed forward speed integrated from
// driver controls, moving an optional body along its heading.
type Motor struct {
	cfg      MotorConfig
	body     Body
	log      log.Log
	enabled  bool
	speed    float64
	controls Controls
}

func NewMotor(cfg MotorConfig, body Body, l log.Log) *Motor {
	if l == nil {
		l = log.NewNop()
	}
	return &Motor{cfg: cfg.withDefaults(), body: body, log: l.With(log.String("component", "motor"))}
}

func (m *Motor) SetControlEnabled(enabled bool) {
	m.enabled = enabled
	if !enabled {
		m.controls = Controls{}
	}
	m.log.Debug("control toggled", log.Bool("enabled", enabled))
}

func (m *Motor) ControlEnabled() bool { return m.enabled }

// SetControls is ignored while driver control is disabled.
func (m *Motor) SetControls(c Controls) {
	if !m.enabled {
		return
	}
	m.controls = c
}

// Speed is the signed forward speed in km/h; negative when reversing.
func (m *Motor) Speed() float64 { return m.speed }

// SetSpeed overrides the current speed, e.g. when restoring a scene.
func (m *Motor) SetSpeed(kmh float64) { m.speed = kmh }

func (m *Motor) CurrentPlanarSpeed() float64 { return math.Abs(m.speed) }

func (m *Motor) IsStopped() bool { return m.CurrentPlanarSpeed() <= m.cfg.StopThreshold }

// Update integrates speed and heading over dt seconds. Without driver control the
// vehicle rolls to rest at the parked rate.
func (m *Motor) Update(dt float64) {
	c := m.controls
	switch {
	case !m.enabled:
		m.speed = moveTowards(m.speed, 0, m.cfg.ParkedCoast*dt)
	case c.Brake:
		m.speed = moveTowards(m.speed, 0, m.cfg.Brake*dt)
	case c.Throttle:
		target := m.cfg.MaxSpeed
		if c.Boost {
			target = m.cfg.BoostSpeed
		}
		m.speed = moveTowards(m.speed, target, m.cfg.Accel*dt)
	case c.Reverse:
		m.speed = moveTowards(m.speed, -m.cfg.ReverseSpeed, m.cfg.Accel*dt)
	default:
		m.speed = moveTowards(m.speed, 0, m.cfg.Coast*dt)
	}

	if m.body == nil {
		return
	}
	pose := m.body.Pose()
	if m.enabled && math.Abs(c.Steer) > 0.01 {
		rate := m.cfg.SteerRate
		if m.IsStopped() {
			rate = m.cfg.SteerWhileStopped
		}
		pose.Yaw += math.Max(-1, math.Min(1, c.Steer)) * rate * dt
	}
	metersPerSecond := m.speed / 3.6
	pose.Position = pose.Position.Add(pose.Forward().Scale(metersPerSecond * dt))
	m.body.SetPose(pose)
}

func moveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + math.Copysign(maxDelta, target-current)
}
