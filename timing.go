package vl53l0x

// Timeout register values use a compact floating-point-like format: the low
// byte is a mantissa, the high byte a shift count, and the stored timeout is
// "(LSByte << MSByte) + 1" macro clocks. Macro period arithmetic follows the
// vendor formulas with PLL_period_ps = 1655 and macro_period_vclks = 2304.

// decodeTimeout decodes a sequence step timeout in MCLKs from a register
// value
func decodeTimeout(regVal uint16) uint16 {
	return (uint16(regVal&0x00FF) << uint16(regVal>>8)) + 1
}

// encodeTimeout encodes a sequence step timeout register value from a
// timeout in MCLKs
func encodeTimeout(timeoutMclks uint16) uint16 {
	var lsByte uint32
	var msByte uint16

	if timeoutMclks == 0 {
		return 0
	}

	lsByte = uint32(timeoutMclks) - 1

	for lsByte&0xFFFFFF00 > 0 {
		lsByte >>= 1
		msByte++
	}

	return (msByte << 8) | uint16(lsByte&0xFF)
}

// calcMacroPeriodNs calculates the macro period in nanoseconds from the
// VCSEL period in PCLKs
func calcMacroPeriodNs(vcselPeriodPclks uint8) uint32 {
	return (2304*uint32(vcselPeriodPclks)*1655 + 500) / 1000
}

// timeoutMclksToMicroseconds converts a sequence step timeout from MCLKs to
// microseconds with the given VCSEL period in PCLKs
func timeoutMclksToMicroseconds(timeoutMclks uint16, vcselPeriodPclks uint8) uint32 {

	macroPeriodNs := calcMacroPeriodNs(vcselPeriodPclks)

	return (uint32(timeoutMclks)*macroPeriodNs + macroPeriodNs/2) / 1000
}

// timeoutMicrosecondsToMclks converts a sequence step timeout from
// microseconds to MCLKs with the given VCSEL period in PCLKs
func timeoutMicrosecondsToMclks(timeoutUs uint32, vcselPeriodPclks uint8) uint32 {

	macroPeriodNs := calcMacroPeriodNs(vcselPeriodPclks)

	return (timeoutUs*1000 + macroPeriodNs/2) / macroPeriodNs
}

// decodeVcselPeriod decodes a VCSEL pulse period in PCLKs from a register
// value
func decodeVcselPeriod(regVal uint8) uint8 {
	return (regVal + 1) << 1
}

// encodeVcselPeriod encodes a VCSEL pulse period register value from the
// period in PCLKs
func encodeVcselPeriod(periodPclks uint8) uint8 {
	return (periodPclks >> 1) - 1
}
