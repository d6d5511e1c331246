package vl53l0x

import "testing"

func TestTimeoutCodecRoundTrip(t *testing.T) {

	// every exactly representable timeout (mantissa << exponent) + 1 must
	// survive an encode/decode round trip
	for e := uint(0); e <= 8; e++ {
		for b := uint32(0); b <= 255; b++ {
			mclks := (b << e) + 1

			if mclks > 65535 {
				continue
			}

			reg := encodeTimeout(uint16(mclks))
			got := decodeTimeout(reg)

			if uint32(got) != mclks {
				t.Fatalf("round trip of %d mclks: encoded 0x%04X, decoded %d",
					mclks, reg, got)
			}
		}
	}
}

func TestTimeoutCodecZero(t *testing.T) {

	if got := encodeTimeout(0); got != 0 {
		t.Errorf("encodeTimeout(0) = 0x%04X, want 0", got)
	}

	if got := decodeTimeout(0); got != 1 {
		t.Errorf("decodeTimeout(0) = %d, want 1", got)
	}
}

func TestTimeoutCodecTruncates(t *testing.T) {

	// values that are not exactly representable are rounded down, never up
	for _, mclks := range []uint16{257, 300, 1000, 12345, 65535} {
		got := decodeTimeout(encodeTimeout(mclks))

		if got > mclks {
			t.Errorf("decode(encode(%d)) = %d, exceeds input", mclks, got)
		}
	}
}

func TestCalcMacroPeriodNs(t *testing.T) {

	cases := []struct {
		pclks uint8
		want  uint32
	}{
		{8, 30505},
		{10, 38131},
		{12, 45757},
		{14, 53384},
		{18, 68636},
	}

	for _, tc := range cases {
		if got := calcMacroPeriodNs(tc.pclks); got != tc.want {
			t.Errorf("calcMacroPeriodNs(%d) = %d, want %d", tc.pclks, got, tc.want)
		}
	}
}

func TestTimeoutUnitConversions(t *testing.T) {

	// one macro clock at 14 PCLKs: (53384 + 53384/2) / 1000, following the
	// vendor rounding
	if got := timeoutMclksToMicroseconds(1, 14); got != 80 {
		t.Errorf("timeoutMclksToMicroseconds(1, 14) = %d, want 80", got)
	}

	// converting back and forth stays within one MCLK
	for _, us := range []uint32{100, 1000, 25000, 100000} {
		mclks := timeoutMicrosecondsToMclks(us, 14)
		back := timeoutMclksToMicroseconds(uint16(mclks), 14)

		var diff uint32
		if back > us {
			diff = back - us
		} else {
			diff = us - back
		}

		if diff > 54 {
			t.Errorf("us->mclks->us for %d drifted by %d us", us, diff)
		}
	}
}

func TestVcselPeriodCodec(t *testing.T) {

	for _, pclks := range []uint8{8, 10, 12, 14, 16, 18} {
		if got := decodeVcselPeriod(encodeVcselPeriod(pclks)); got != pclks {
			t.Errorf("vcsel round trip of %d = %d", pclks, got)
		}
	}

	// register defaults from the tuning table
	if got := decodeVcselPeriod(0x06); got != 14 {
		t.Errorf("decodeVcselPeriod(0x06) = %d, want 14", got)
	}

	if got := decodeVcselPeriod(0x04); got != 10 {
		t.Errorf("decodeVcselPeriod(0x04) = %d, want 10", got)
	}
}
