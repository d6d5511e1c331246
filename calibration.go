package vl53l0x

import "fmt"

// performSingleRefCalibration runs one reference calibration pass, based on
// VL53L0X_perform_single_ref_calibration(). vhvInitByte selects the VHV
// (voltage) pass with 0x40 and the phase pass with 0x00.
func (v *VL53L0X) performSingleRefCalibration(vhvInitByte uint8) error {

	// VL53L0X_REG_SYSRANGE_MODE_START_STOP
	if err := v.bus.WriteReg(SYSRANGE_START, 0x01|vhvInitByte); err != nil {
		return err
	}

	v.startTimeout()

	for {
		status, err := v.bus.ReadReg(RESULT_INTERRUPT_STATUS)

		if err != nil {
			return err
		}

		if status&0x07 != 0 {
			break
		}

		if v.checkTimeoutExpired() {
			return fmt.Errorf("timeout waiting for ref calibration")
		}
	}

	if err := v.bus.WriteReg(SYSTEM_INTERRUPT_CLEAR, 0x01); err != nil {
		return err
	}

	return v.bus.WriteReg(SYSRANGE_START, 0x00)
}

// performRefCalibration runs the VHV and phase calibration passes used at
// the end of initialization, restoring the operating sequence config
// afterward. Based on VL53L0X_PerformRefCalibration().
func (v *VL53L0X) performRefCalibration() error {

	// VHV calibration
	if err := v.bus.WriteReg(SYSTEM_SEQUENCE_CONFIG, 0x01); err != nil {
		return err
	}

	if err := v.performSingleRefCalibration(0x40); err != nil {
		return fmt.Errorf("VHV calibration failed: %w", err)
	}

	// phase calibration
	if err := v.bus.WriteReg(SYSTEM_SEQUENCE_CONFIG, 0x02); err != nil {
		return err
	}

	if err := v.performSingleRefCalibration(0x00); err != nil {
		return fmt.Errorf("phase calibration failed: %w", err)
	}

	// restore the previous sequence config
	return v.bus.WriteReg(SYSTEM_SEQUENCE_CONFIG, 0xE8)
}
