package vl53l0x

// startStopDance replays the stop variable captured at init into its shadow
// register. The vendor API requires this before every measurement start.
func (v *VL53L0X) startStopDance() error {

	for _, w := range []regWrite{
		{0x80, 0x01},
		{0xFF, 0x01},
		{0x00, 0x00},
		{0x91, v.stopVariable},
		{0x00, 0x01},
		{0xFF, 0x00},
		{0x80, 0x00},
	} {
		if err := v.bus.WriteReg(w.reg, w.value); err != nil {
			return err
		}
	}

	return nil
}

// StartContinuous begins continuous ranging measurements. If periodMs is 0,
// continuous back-to-back mode is used (the sensor takes measurements as
// often as possible); otherwise continuous timed mode is used, with the
// given inter-measurement period in milliseconds determining how often the
// sensor takes a measurement. Based on VL53L0X_StartMeasurement().
func (v *VL53L0X) StartContinuous(periodMs uint32) error {

	v.log.Print("Start continuous mode")

	if err := v.startStopDance(); err != nil {
		return err
	}

	if periodMs != 0 {
		// continuous timed mode

		// the inter-measurement period register counts in oscillator
		// calibration units
		oscCalibrateVal, err := v.bus.ReadReg16Bit(OSC_CALIBRATE_VAL)

		if err != nil {
			return err
		}

		if oscCalibrateVal != 0 {
			periodMs *= uint32(oscCalibrateVal)
		}

		if err := v.bus.WriteReg32Bit(SYSTEM_INTERMEASUREMENT_PERIOD, periodMs); err != nil {
			return err
		}

		// VL53L0X_REG_SYSRANGE_MODE_TIMED
		return v.bus.WriteReg(SYSRANGE_START, 0x04)
	}

	// continuous back-to-back mode
	// VL53L0X_REG_SYSRANGE_MODE_BACKTOBACK
	return v.bus.WriteReg(SYSRANGE_START, 0x02)
}

// StopContinuous stops continuous measurements. Based on
// VL53L0X_StopMeasurement().
func (v *VL53L0X) StopContinuous() error {

	v.log.Print("Stop continuous mode")

	// VL53L0X_REG_SYSRANGE_MODE_SINGLESHOT
	if err := v.bus.WriteReg(SYSRANGE_START, 0x01); err != nil {
		return err
	}

	// reset the stop variable shadow register
	for _, w := range []regWrite{
		{0xFF, 0x01},
		{0x00, 0x00},
		{0x91, 0x00},
		{0x00, 0x01},
		{0xFF, 0x00},
	} {
		if err := v.bus.WriteReg(w.reg, w.value); err != nil {
			return err
		}
	}

	return nil
}

// ReadRangeContinuousMillimeters returns a range reading in millimeters when
// continuous mode is active. If no measurement becomes ready within the
// configured I/O timeout it returns RangeTimeout and sets the sticky timeout
// flag readable via TimeoutOccurred(); a non-nil error is returned only for
// bus failures.
func (v *VL53L0X) ReadRangeContinuousMillimeters() (uint16, error) {

	v.startTimeout()

	for {
		status, err := v.bus.ReadReg(RESULT_INTERRUPT_STATUS)

		if err != nil {
			return 0, err
		}

		if status&0x07 != 0 {
			break
		}

		if v.checkTimeoutExpired() {
			v.didTimeout = true
			return RangeTimeout, nil
		}
	}

	// assumptions: linearity corrective gain is 1000 (default) and
	// fractional ranging is not enabled
	rangeMM, err := v.bus.ReadReg16Bit(RESULT_RANGE_STATUS + 10)

	if err != nil {
		return 0, err
	}

	if err := v.bus.WriteReg(SYSTEM_INTERRUPT_CLEAR, 0x01); err != nil {
		return 0, err
	}

	return rangeMM, nil
}

// ReadRangeSingleMillimeters performs a single-shot range measurement and
// returns the reading in millimeters, with the same timeout semantics as
// ReadRangeContinuousMillimeters. Based on
// VL53L0X_PerformSingleRangingMeasurement().
func (v *VL53L0X) ReadRangeSingleMillimeters() (uint16, error) {

	if err := v.startStopDance(); err != nil {
		return 0, err
	}

	if err := v.bus.WriteReg(SYSRANGE_START, 0x01); err != nil {
		return 0, err
	}

	// wait until the start bit has been cleared
	v.startTimeout()

	for {
		start, err := v.bus.ReadReg(SYSRANGE_START)

		if err != nil {
			return 0, err
		}

		if start&0x01 == 0 {
			break
		}

		if v.checkTimeoutExpired() {
			v.didTimeout = true
			return RangeTimeout, nil
		}
	}

	return v.ReadRangeContinuousMillimeters()
}
