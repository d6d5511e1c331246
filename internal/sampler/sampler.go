// Package sampler averages windows of consecutive range readings, discarding
// readings the sensor timed out on or that fall outside the plausible
// distance band.
package sampler

// Ranger is the subset of the driver the sampler needs
type Ranger interface {
	ReadRangeContinuousMillimeters() (uint16, error)
	TimeoutOccurred() bool
}

// Config bounds one measurement window
type Config struct {
	// Window is the number of consecutive readings per measurement
	Window int
	// MinMM and MaxMM bound plausible distances; readings outside are
	// treated as errors and contribute zero to the average
	MinMM uint16
	MaxMM uint16
}

// Measurement is one averaged window
type Measurement struct {
	// AvgMM is the mean distance over the full window, with discarded
	// readings contributing zero
	AvgMM uint16
	// Degraded is set when any reading in the window was discarded
	Degraded bool
}

// Sampler takes windowed measurements from a Ranger
type Sampler struct {
	cfg Config
}

func New(cfg Config) *Sampler {
	return &Sampler{cfg: cfg}
}

// Measure reads one full window and returns its average. A non-nil error is
// returned only for bus failures; sensor timeouts degrade the window instead.
func (s *Sampler) Measure(r Ranger) (Measurement, error) {

	var sum uint32
	var degraded bool

	for i := 0; i < s.cfg.Window; i++ {

		distance, err := r.ReadRangeContinuousMillimeters()

		if err != nil {
			return Measurement{}, err
		}

		if r.TimeoutOccurred() || distance > s.cfg.MaxMM || distance < s.cfg.MinMM {
			distance = 0
			degraded = true
		}

		sum += uint32(distance)
	}

	return Measurement{
		AvgMM:    uint16(sum / uint32(s.cfg.Window)),
		Degraded: degraded,
	}, nil
}
