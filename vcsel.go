package vl53l0x

import "fmt"

// VcselPeriodType selects which ranging step's VCSEL (vertical cavity
// surface emitting laser) pulse period is being configured
type VcselPeriodType int

const (
	VcselPeriodPreRange VcselPeriodType = iota
	VcselPeriodFinalRange
)

// regWrite is one register/value pair of an opaque vendor tuning sequence
type regWrite struct {
	reg   uint8
	value uint8
}

// Phase check limits for each valid pre range VCSEL period, from the vendor
// API. Each period has its own literal constants; there is no formula.
var preRangePhaseHigh = map[uint8]uint8{
	12: 0x18,
	14: 0x30,
	16: 0x40,
	18: 0x50,
}

// Phase check limits and calibration settings for each valid final range
// VCSEL period, from the vendor API
var finalRangeSettings = map[uint8][]regWrite{
	8: {
		{FINAL_RANGE_CONFIG_VALID_PHASE_HIGH, 0x10},
		{FINAL_RANGE_CONFIG_VALID_PHASE_LOW, 0x08},
		{GLOBAL_CONFIG_VCSEL_WIDTH, 0x02},
		{ALGO_PHASECAL_CONFIG_TIMEOUT, 0x0C},
		{0xFF, 0x01},
		{ALGO_PHASECAL_LIM, 0x30},
		{0xFF, 0x00},
	},
	10: {
		{FINAL_RANGE_CONFIG_VALID_PHASE_HIGH, 0x28},
		{FINAL_RANGE_CONFIG_VALID_PHASE_LOW, 0x08},
		{GLOBAL_CONFIG_VCSEL_WIDTH, 0x03},
		{ALGO_PHASECAL_CONFIG_TIMEOUT, 0x09},
		{0xFF, 0x01},
		{ALGO_PHASECAL_LIM, 0x20},
		{0xFF, 0x00},
	},
	12: {
		{FINAL_RANGE_CONFIG_VALID_PHASE_HIGH, 0x38},
		{FINAL_RANGE_CONFIG_VALID_PHASE_LOW, 0x08},
		{GLOBAL_CONFIG_VCSEL_WIDTH, 0x03},
		{ALGO_PHASECAL_CONFIG_TIMEOUT, 0x08},
		{0xFF, 0x01},
		{ALGO_PHASECAL_LIM, 0x20},
		{0xFF, 0x00},
	},
	14: {
		{FINAL_RANGE_CONFIG_VALID_PHASE_HIGH, 0x48},
		{FINAL_RANGE_CONFIG_VALID_PHASE_LOW, 0x08},
		{GLOBAL_CONFIG_VCSEL_WIDTH, 0x03},
		{ALGO_PHASECAL_CONFIG_TIMEOUT, 0x07},
		{0xFF, 0x01},
		{ALGO_PHASECAL_LIM, 0x20},
		{0xFF, 0x00},
	},
}

// GetVcselPulsePeriod returns the VCSEL pulse period in PCLKs for the given
// period type
func (v *VL53L0X) GetVcselPulsePeriod(typ VcselPeriodType) (uint8, error) {

	var reg uint8

	switch typ {
	case VcselPeriodPreRange:
		reg = PRE_RANGE_CONFIG_VCSEL_PERIOD
	case VcselPeriodFinalRange:
		reg = FINAL_RANGE_CONFIG_VCSEL_PERIOD
	default:
		return 0, fmt.Errorf("unrecognized VCSEL period type")
	}

	val, err := v.bus.ReadReg(reg)

	if err != nil {
		return 0, err
	}

	return decodeVcselPeriod(val), nil
}

// SetVcselPulsePeriod sets the VCSEL pulse period for the given period type
// to the given value in PCLKs. Longer periods increase the potential range
// of the sensor. Valid values are (even numbers only):
//
//	pre range:   12 to 18 (initialized default: 14)
//	final range:  8 to 14 (initialized default: 10)
//
// When a period changes, the step timeouts are recomputed under the new
// period, the stored timing budget is re-applied and a phase calibration is
// performed.
func (v *VL53L0X) SetVcselPulsePeriod(typ VcselPeriodType, periodPclks uint8) error {

	// validate before any register write
	switch typ {
	case VcselPeriodPreRange:
		if _, ok := preRangePhaseHigh[periodPclks]; !ok {
			return fmt.Errorf("invalid pre range VCSEL period: %d", periodPclks)
		}
	case VcselPeriodFinalRange:
		if _, ok := finalRangeSettings[periodPclks]; !ok {
			return fmt.Errorf("invalid final range VCSEL period: %d", periodPclks)
		}
	default:
		return fmt.Errorf("unrecognized VCSEL period type")
	}

	enables, err := v.getSequenceStepEnables()

	if err != nil {
		return err
	}

	// The timeouts are read under the current VCSEL period before the new
	// period is applied, then written back converted under the new period.
	// The MSRC timeout has the same dependency on the pre range period.
	timeouts, err := v.getSequenceStepTimeouts(enables)

	if err != nil {
		return err
	}

	vcselPeriodReg := encodeVcselPeriod(periodPclks)

	switch typ {
	case VcselPeriodPreRange:

		// set phase check limits
		if err := v.bus.WriteReg(PRE_RANGE_CONFIG_VALID_PHASE_HIGH,
			preRangePhaseHigh[periodPclks]); err != nil {
			return err
		}

		if err := v.bus.WriteReg(PRE_RANGE_CONFIG_VALID_PHASE_LOW, 0x08); err != nil {
			return err
		}

		// apply new VCSEL period
		if err := v.bus.WriteReg(PRE_RANGE_CONFIG_VCSEL_PERIOD, vcselPeriodReg); err != nil {
			return err
		}

		// rewrite the pre range timeout under the new period
		newPreRangeMclks := uint16(timeoutMicrosecondsToMclks(
			timeouts.preRangeUs, periodPclks))

		if err := v.bus.WriteReg16Bit(PRE_RANGE_CONFIG_TIMEOUT_MACROP_HI,
			encodeTimeout(newPreRangeMclks)); err != nil {
			return err
		}

		// rewrite the MSRC timeout under the new period
		newMsrcMclks := timeoutMicrosecondsToMclks(timeouts.msrcDssTccUs,
			periodPclks)

		msrcReg := uint8(newMsrcMclks - 1)

		if newMsrcMclks > 256 {
			msrcReg = 255
		}

		if err := v.bus.WriteReg(MSRC_CONFIG_TIMEOUT_MACROP, msrcReg); err != nil {
			return err
		}

	case VcselPeriodFinalRange:

		for _, w := range finalRangeSettings[periodPclks] {
			if err := v.bus.WriteReg(w.reg, w.value); err != nil {
				return err
			}
		}

		// apply new VCSEL period
		if err := v.bus.WriteReg(FINAL_RANGE_CONFIG_VCSEL_PERIOD, vcselPeriodReg); err != nil {
			return err
		}

		// The final range timeout is stored inclusive of the pre range
		// timeout, so the pre range MCLKs are added back before encoding.
		newFinalRangeMclks := uint16(timeoutMicrosecondsToMclks(
			timeouts.finalRangeUs, periodPclks))

		if enables.preRange {
			newFinalRangeMclks += timeouts.preRangeMclks
		}

		if err := v.bus.WriteReg16Bit(FINAL_RANGE_CONFIG_TIMEOUT_MACROP_HI,
			encodeTimeout(newFinalRangeMclks)); err != nil {
			return err
		}
	}

	// finally, the timing budget must be re-applied
	if err := v.SetMeasurementTimingBudget(v.timingBudgetUs); err != nil {
		return err
	}

	// perform the phase calibration needed after changing a VCSEL period,
	// with the sequence config temporarily forced to phase cal only
	sequenceConfig, err := v.bus.ReadReg(SYSTEM_SEQUENCE_CONFIG)

	if err != nil {
		return err
	}

	if err := v.bus.WriteReg(SYSTEM_SEQUENCE_CONFIG, 0x02); err != nil {
		return err
	}

	if err := v.performSingleRefCalibration(0x00); err != nil {
		return fmt.Errorf("phase calibration failed: %w", err)
	}

	return v.bus.WriteReg(SYSTEM_SEQUENCE_CONFIG, sequenceConfig)
}
