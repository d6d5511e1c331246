package sampler

import (
	"errors"
	"testing"
)

type fakeRanger struct {
	readings []uint16
	timeouts []bool
	errAt    int
	calls    int
}

func (f *fakeRanger) ReadRangeContinuousMillimeters() (uint16, error) {

	i := f.calls
	f.calls++

	if f.errAt > 0 && f.calls == f.errAt {
		return 0, errors.New("bus failure")
	}

	return f.readings[i], nil
}

func (f *fakeRanger) TimeoutOccurred() bool {
	return f.timeouts[f.calls-1]
}

func TestMeasureCleanWindow(t *testing.T) {

	r := &fakeRanger{
		readings: []uint16{1000, 1100, 1200, 1300, 1400},
		timeouts: make([]bool, 5),
	}

	s := New(Config{Window: 5, MinMM: 50, MaxMM: 8000})

	m, err := s.Measure(r)

	if err != nil {
		t.Fatalf("Measure() err=%v", err)
	}

	if m.AvgMM != 1200 {
		t.Errorf("AvgMM = %d, want 1200", m.AvgMM)
	}

	if m.Degraded {
		t.Error("Degraded = true for clean window")
	}
}

func TestMeasureDiscardsOutliers(t *testing.T) {

	cases := []struct {
		name     string
		readings []uint16
		timeouts []bool
		wantAvg  uint16
	}{
		{
			name:     "below minimum",
			readings: []uint16{10, 1000, 1000, 1000, 1000},
			timeouts: make([]bool, 5),
			wantAvg:  800,
		},
		{
			name:     "above maximum",
			readings: []uint16{1000, 1000, 65535, 1000, 1000},
			timeouts: make([]bool, 5),
			wantAvg:  800,
		},
		{
			name:     "timeout discards an in-band reading",
			readings: []uint16{1000, 1000, 1000, 1000, 1000},
			timeouts: []bool{false, false, true, false, false},
			wantAvg:  800,
		},
	}

	s := New(Config{Window: 5, MinMM: 50, MaxMM: 8000})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {

			r := &fakeRanger{readings: tc.readings, timeouts: tc.timeouts}

			m, err := s.Measure(r)

			if err != nil {
				t.Fatalf("Measure() err=%v", err)
			}

			if m.AvgMM != tc.wantAvg {
				t.Errorf("AvgMM = %d, want %d", m.AvgMM, tc.wantAvg)
			}

			if !m.Degraded {
				t.Error("Degraded = false, want true")
			}
		})
	}
}

func TestMeasureBusError(t *testing.T) {

	r := &fakeRanger{
		readings: []uint16{1000, 1000, 1000, 1000, 1000},
		timeouts: make([]bool, 5),
		errAt:    3,
	}

	s := New(Config{Window: 5, MinMM: 50, MaxMM: 8000})

	if _, err := s.Measure(r); err == nil {
		t.Fatal("Measure() expected error on bus failure")
	}
}
