package vl53l0x

import "fmt"

// Per-step overhead constants for timing budget calculations, in
// microseconds. The start overhead differs between the get and set paths;
// this mirrors the vendor algorithm and downstream values depend on it, so
// the two must not be unified.
const (
	startOverheadGet   = 1910
	startOverheadSet   = 1320
	endOverhead        = 960
	msrcOverhead       = 660
	tccOverhead        = 590
	dssOverhead        = 690
	preRangeOverhead   = 660
	finalRangeOverhead = 550
)

// SetSignalRateLimit sets the return signal rate limit check value in units
// of MCPS (mega counts per second). This represents the amplitude of the
// signal reflected from the target and detected by the device. A lower limit
// increases the potential range of the sensor but also the likelihood of an
// inaccurate reading caused by unwanted reflections. Defaults to 0.25 MCPS
// as initialized by the vendor API and this driver.
func (v *VL53L0X) SetSignalRateLimit(limitMcps float32) error {

	if limitMcps < 0 || limitMcps > 511.99 {
		return fmt.Errorf("signal rate limit out of range")
	}

	// Q9.7 fixed point format (9 integer bits, 7 fractional bits)
	return v.bus.WriteReg16Bit(FINAL_RANGE_CONFIG_MIN_COUNT_RATE_RTN_LIMIT,
		uint16(limitMcps*(1<<7)))
}

// GetSignalRateLimit returns the current signal rate limit in MCPS
func (v *VL53L0X) GetSignalRateLimit() (float32, error) {

	val, err := v.bus.ReadReg16Bit(FINAL_RANGE_CONFIG_MIN_COUNT_RATE_RTN_LIMIT)

	if err != nil {
		return 0, err
	}

	return float32(val) / (1 << 7), nil
}

// GetMeasurementTimingBudget returns the measurement timing budget in
// microseconds, computed from the device's current sequence configuration
func (v *VL53L0X) GetMeasurementTimingBudget() (uint32, error) {

	enables, err := v.getSequenceStepEnables()

	if err != nil {
		return 0, err
	}

	timeouts, err := v.getSequenceStepTimeouts(enables)

	if err != nil {
		return 0, err
	}

	// start and end overhead times are always present
	var budgetUs uint32 = startOverheadGet + endOverhead

	if enables.tcc {
		budgetUs += timeouts.msrcDssTccUs + tccOverhead
	}

	if enables.dss {
		budgetUs += 2 * (timeouts.msrcDssTccUs + dssOverhead)
	} else if enables.msrc {
		budgetUs += timeouts.msrcDssTccUs + msrcOverhead
	}

	if enables.preRange {
		budgetUs += timeouts.preRangeUs + preRangeOverhead
	}

	if enables.finalRange {
		budgetUs += timeouts.finalRangeUs + finalRangeOverhead
	}

	// store for internal reuse
	v.timingBudgetUs = budgetUs
	return budgetUs, nil
}

// SetMeasurementTimingBudget sets the measurement timing budget in
// microseconds, which is the time allowed for one measurement. The budget is
// split among the sub-steps in the ranging sequence: all other step costs
// are deducted and the remainder is assigned to the final range step. A
// longer timing budget allows for more accurate measurements; increasing it
// by a factor of N decreases the range measurement standard deviation by a
// factor of sqrt(N). Defaults to about 33 milliseconds; the minimum is 20 ms.
func (v *VL53L0X) SetMeasurementTimingBudget(budgetUs uint32) error {

	if budgetUs < MinTimingBudget {
		return fmt.Errorf("timing budget too low")
	}

	enables, err := v.getSequenceStepEnables()

	if err != nil {
		return err
	}

	timeouts, err := v.getSequenceStepTimeouts(enables)

	if err != nil {
		return err
	}

	var usedBudgetUs uint32 = startOverheadSet + endOverhead

	if enables.tcc {
		usedBudgetUs += timeouts.msrcDssTccUs + tccOverhead
	}

	if enables.dss {
		usedBudgetUs += 2 * (timeouts.msrcDssTccUs + dssOverhead)
	} else if enables.msrc {
		usedBudgetUs += timeouts.msrcDssTccUs + msrcOverhead
	}

	if !enables.preRange && !enables.finalRange {
		return nil
	}

	if enables.preRange {
		usedBudgetUs += timeouts.preRangeUs + preRangeOverhead
	}

	if !enables.finalRange {
		return nil
	}

	usedBudgetUs += finalRangeOverhead

	// The final range timeout is determined by the timing budget and the
	// sum of all other timeouts within the sequence. If there is no room
	// for the final range timeout the requested budget is rejected,
	// otherwise the remaining time is applied to the final range.
	if usedBudgetUs > budgetUs {
		return fmt.Errorf("requested timing budget too big")
	}

	finalRangeTimeoutUs := budgetUs - usedBudgetUs

	// The pre range timeout must be added back before encoding: both
	// timeouts must be expressed in MCLKs because they have different
	// VCSEL periods.
	finalRangeTimeoutMclks := uint16(timeoutMicrosecondsToMclks(
		finalRangeTimeoutUs, timeouts.finalRangeVcselPeriodPclks))

	if enables.preRange {
		finalRangeTimeoutMclks += timeouts.preRangeMclks
	}

	if err := v.bus.WriteReg16Bit(FINAL_RANGE_CONFIG_TIMEOUT_MACROP_HI,
		encodeTimeout(finalRangeTimeoutMclks)); err != nil {
		return err
	}

	// store for internal reuse
	v.timingBudgetUs = budgetUs
	return nil
}
