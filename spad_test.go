package vl53l0x

import "testing"

func TestApplySpadMap(t *testing.T) {

	allOnes := [6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

	cases := []struct {
		name     string
		initial  [6]byte
		count    uint8
		aperture bool
		want     [6]byte
	}{
		{
			name:    "twelve non-aperture from full map",
			initial: allOnes,
			count:   12,
			want:    [6]byte{0xFF, 0x0F, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "five aperture from full map",
			initial:  allOnes,
			count:    5,
			aperture: true,
			// bits 12..16
			want: [6]byte{0x00, 0xF0, 0x01, 0x00, 0x00, 0x00},
		},
		{
			name:     "sparse map keeps set bits in order",
			initial:  [6]byte{0xFF, 0xAA, 0x00, 0x00, 0x00, 0x00},
			count:    2,
			aperture: true,
			// candidates at or after bit 12 are bits 13 and 15
			want: [6]byte{0x00, 0xA0, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:    "zero count clears everything",
			initial: allOnes,
			count:   0,
			want:    [6]byte{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {

			m := tc.initial
			applySpadMap(&m, tc.count, tc.aperture)

			if m != tc.want {
				t.Errorf("map = %08b, want %08b", m, tc.want)
			}
		})
	}
}

func TestGetSpadInfo(t *testing.T) {

	bus := newFakeBus()

	// aperture type with count 44
	bus.regs[0x92] = 0x80 | 44

	dev, err := New(bus, false)

	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	count, aperture, err := dev.getSpadInfo()

	if err != nil {
		t.Fatalf("getSpadInfo() err=%v", err)
	}

	if count != 44 {
		t.Errorf("count = %d, want 44", count)
	}

	if !aperture {
		t.Error("aperture = false, want true")
	}
}
