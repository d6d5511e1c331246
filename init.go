package vl53l0x

import (
	"fmt"
	"time"
)

// Init initializes the sensor using a sequence based on VL53L0X_DataInit(),
// VL53L0X_StaticInit() and VL53L0X_PerformRefCalibration(). Reference SPAD
// calibration (VL53L0X_PerformRefSpadManagement()) is not performed since it
// is done by ST on the bare modules; that works well enough unless a cover
// glass is added. If io2v8 is true the sensor is configured for 2V8 mode.
func (v *VL53L0X) Init(io2v8 bool) error {

	v.SetTimeout(time.Millisecond * 500)

	err := v.dataInit(io2v8)

	if err != nil {
		return fmt.Errorf("Error on dataInit(), %w", err)
	}

	err = v.staticInit()

	if err != nil {
		return fmt.Errorf("Error on staticInit(), %w", err)
	}

	err = v.performRefCalibration()

	if err != nil {
		return fmt.Errorf("Error on performRefCalibration(), %w", err)
	}

	return nil
}

// dataInit implements VL53L0X_DataInit() from the vendor API
func (v *VL53L0X) dataInit(io2v8 bool) error {

	// sensor uses 1V8 mode for I/O by default; switch to 2V8 mode if
	// requested
	if io2v8 {
		val, err := v.bus.ReadReg(VHV_CONFIG_PAD_SCL_SDA_EXTSUP_HV)

		if err != nil {
			return err
		}

		if err := v.bus.WriteReg(VHV_CONFIG_PAD_SCL_SDA_EXTSUP_HV, val|0x01); err != nil {
			return err
		}
	}

	// set I2C standard mode
	if err := v.bus.WriteReg(0x88, 0x00); err != nil {
		return err
	}

	// capture the stop variable, replayed before every measurement start
	if err := v.bus.WriteReg(0x80, 0x01); err != nil {
		return err
	}

	if err := v.bus.WriteReg(0xFF, 0x01); err != nil {
		return err
	}

	if err := v.bus.WriteReg(0x00, 0x00); err != nil {
		return err
	}

	stopVar, err := v.bus.ReadReg(0x91)

	if err != nil {
		return err
	}

	v.stopVariable = stopVar

	if err := v.bus.WriteReg(0x00, 0x01); err != nil {
		return err
	}

	if err := v.bus.WriteReg(0xFF, 0x00); err != nil {
		return err
	}

	if err := v.bus.WriteReg(0x80, 0x00); err != nil {
		return err
	}

	// disable SIGNAL_RATE_MSRC (bit 1) and SIGNAL_RATE_PRE_RANGE (bit 4)
	// limit checks
	msrc, err := v.bus.ReadReg(MSRC_CONFIG_CONTROL)

	if err != nil {
		return err
	}

	if err := v.bus.WriteReg(MSRC_CONFIG_CONTROL, msrc|0x12); err != nil {
		return err
	}

	// set final range signal rate limit to 0.25 MCPS (million counts per
	// second)
	if err := v.SetSignalRateLimit(0.25); err != nil {
		return err
	}

	return v.bus.WriteReg(SYSTEM_SEQUENCE_CONFIG, 0xFF)
}

// staticInit implements VL53L0X_StaticInit() from the vendor API
func (v *VL53L0X) staticInit() error {

	spadCount, spadTypeIsAperture, err := v.getSpadInfo()

	if err != nil {
		return fmt.Errorf("Error on getSpadInfo(), %w", err)
	}

	v.log.Printf("SPAD info: count=%d aperture=%v", spadCount, spadTypeIsAperture)

	if err := v.setReferenceSPADs(spadCount, spadTypeIsAperture); err != nil {
		return err
	}

	if err := v.loadTuningSettings(); err != nil {
		return err
	}

	// set interrupt config to new sample ready
	// -- VL53L0X_SetGpioConfig() begin

	if err := v.bus.WriteReg(SYSTEM_INTERRUPT_CONFIG_GPIO, 0x04); err != nil {
		return err
	}

	muxActive, err := v.bus.ReadReg(GPIO_HV_MUX_ACTIVE_HIGH)

	if err != nil {
		return err
	}

	// active low
	if err := v.bus.WriteReg(GPIO_HV_MUX_ACTIVE_HIGH, muxActive & ^uint8(0x10)); err != nil {
		return err
	}

	if err := v.bus.WriteReg(SYSTEM_INTERRUPT_CLEAR, 0x01); err != nil {
		return err
	}

	// -- VL53L0X_SetGpioConfig() end

	budgetUs, err := v.GetMeasurementTimingBudget()

	if err != nil {
		return err
	}

	// disable MSRC and TCC by default
	// -- VL53L0X_SetSequenceStepEnable() begin

	if err := v.bus.WriteReg(SYSTEM_SEQUENCE_CONFIG, 0xE8); err != nil {
		return err
	}

	// -- VL53L0X_SetSequenceStepEnable() end

	// recalculate the timing budget under the new step enables
	return v.SetMeasurementTimingBudget(budgetUs)
}
