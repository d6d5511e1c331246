package vl53l0x

// sequenceStepEnables holds which steps of the ranging sequence are enabled.
// TCC is Target CentreCheck, MSRC is Minimum Signal Rate Check and DSS is
// Dynamic SPAD Selection.
type sequenceStepEnables struct {
	tcc, msrc, dss, preRange, finalRange bool
}

// sequenceStepTimeouts holds per-step timeouts in both MCLKs and
// microseconds, together with each step's VCSEL period
type sequenceStepTimeouts struct {
	preRangeVcselPeriodPclks   uint8
	finalRangeVcselPeriodPclks uint8

	msrcDssTccMclks uint16
	preRangeMclks   uint16
	finalRangeMclks uint16

	msrcDssTccUs uint32
	preRangeUs   uint32
	finalRangeUs uint32
}

// getSequenceStepEnables reads the sequence config register and decodes
// which steps are enabled. The result is derived state and must be re-read
// after any operation that may change the sequence config.
func (v *VL53L0X) getSequenceStepEnables() (sequenceStepEnables, error) {

	sequenceConfig, err := v.bus.ReadReg(SYSTEM_SEQUENCE_CONFIG)

	if err != nil {
		return sequenceStepEnables{}, err
	}

	enables := sequenceStepEnables{
		tcc:        (sequenceConfig>>4)&0x1 != 0,
		dss:        (sequenceConfig>>3)&0x1 != 0,
		msrc:       (sequenceConfig>>2)&0x1 != 0,
		preRange:   (sequenceConfig>>6)&0x1 != 0,
		finalRange: (sequenceConfig>>7)&0x1 != 0,
	}

	return enables, nil
}

// getSequenceStepTimeouts reads all step timeouts from the device and
// converts them via the current VCSEL periods. The final range timeout is
// stored on the device inclusive of the pre range timeout, so the pre range
// MCLKs are subtracted here when pre range is enabled.
func (v *VL53L0X) getSequenceStepTimeouts(enables sequenceStepEnables) (sequenceStepTimeouts, error) {

	var t sequenceStepTimeouts

	preVcsel, err := v.GetVcselPulsePeriod(VcselPeriodPreRange)

	if err != nil {
		return t, err
	}

	t.preRangeVcselPeriodPclks = preVcsel

	msrcReg, err := v.bus.ReadReg(MSRC_CONFIG_TIMEOUT_MACROP)

	if err != nil {
		return t, err
	}

	t.msrcDssTccMclks = uint16(msrcReg) + 1
	t.msrcDssTccUs = timeoutMclksToMicroseconds(t.msrcDssTccMclks,
		t.preRangeVcselPeriodPclks)

	preRangeReg, err := v.bus.ReadReg16Bit(PRE_RANGE_CONFIG_TIMEOUT_MACROP_HI)

	if err != nil {
		return t, err
	}

	t.preRangeMclks = decodeTimeout(preRangeReg)
	t.preRangeUs = timeoutMclksToMicroseconds(t.preRangeMclks,
		t.preRangeVcselPeriodPclks)

	finalVcsel, err := v.GetVcselPulsePeriod(VcselPeriodFinalRange)

	if err != nil {
		return t, err
	}

	t.finalRangeVcselPeriodPclks = finalVcsel

	finalRangeReg, err := v.bus.ReadReg16Bit(FINAL_RANGE_CONFIG_TIMEOUT_MACROP_HI)

	if err != nil {
		return t, err
	}

	t.finalRangeMclks = decodeTimeout(finalRangeReg)

	if enables.preRange {
		t.finalRangeMclks -= t.preRangeMclks
	}

	t.finalRangeUs = timeoutMclksToMicroseconds(t.finalRangeMclks,
		t.finalRangeVcselPeriodPclks)

	return t, nil
}
