package vl53l0x

import "fmt"

// firstApertureSpad is the bit index of the first aperture SPAD in the
// reference enable map
const firstApertureSpad = 12

// getSpadInfo returns the reference SPAD (single photon avalanche diode)
// count and whether the SPADs are the aperture type. The register sequence
// is undocumented and reproduced verbatim from the vendor API's
// VL53L0X_get_info_from_device().
func (v *VL53L0X) getSpadInfo() (count uint8, typeIsAperture bool, err error) {

	wr := func(reg, value uint8) {
		if err == nil {
			err = v.bus.WriteReg(reg, value)
		}
	}

	wr(0x80, 0x01)
	wr(0xFF, 0x01)
	wr(0x00, 0x00)

	wr(0xFF, 0x06)

	if err != nil {
		return 0, false, err
	}

	val, err := v.bus.ReadReg(0x83)

	if err != nil {
		return 0, false, err
	}

	wr(0x83, val|0x04)
	wr(0xFF, 0x07)
	wr(0x81, 0x01)

	wr(0x80, 0x01)

	wr(0x94, 0x6b)
	wr(0x83, 0x00)

	if err != nil {
		return 0, false, err
	}

	v.startTimeout()

	for {
		val, err = v.bus.ReadReg(0x83)

		if err != nil {
			return 0, false, err
		}

		if val != 0x00 {
			break
		}

		if v.checkTimeoutExpired() {
			return 0, false, fmt.Errorf("timeout waiting for SPAD info")
		}
	}

	wr(0x83, 0x01)

	if err != nil {
		return 0, false, err
	}

	tmp, err := v.bus.ReadReg(0x92)

	if err != nil {
		return 0, false, err
	}

	count = tmp & 0x7F
	typeIsAperture = (tmp>>7)&0x01 != 0

	wr(0x81, 0x00)
	wr(0xFF, 0x06)

	if err != nil {
		return 0, false, err
	}

	val, err = v.bus.ReadReg(0x83)

	if err != nil {
		return 0, false, err
	}

	wr(0x83, val & ^uint8(0x04))
	wr(0xFF, 0x01)
	wr(0x00, 0x01)

	wr(0xFF, 0x00)
	wr(0x80, 0x00)

	if err != nil {
		return 0, false, err
	}

	return count, typeIsAperture, nil
}

// applySpadMap rewrites the 48-bit reference SPAD enable map in place so
// that, scanning bit indices 0..47 in order, bits before the first enabled
// index are cleared, the first count set bits at or after it are kept and
// all further bits are cleared. Already-set bits are never reordered, only
// truncated.
func applySpadMap(refSpadMap *[6]byte, count uint8, typeIsAperture bool) {

	var firstSpadToEnable uint8

	if typeIsAperture {
		firstSpadToEnable = firstApertureSpad
	}

	var spadsEnabled uint8

	for i := uint8(0); i < 48; i++ {
		if i < firstSpadToEnable || spadsEnabled == count {
			refSpadMap[i/8] &= ^(1 << (i % 8))
		} else if (refSpadMap[i/8]>>(i%8))&0x1 != 0 {
			spadsEnabled++
		}
	}
}

// setReferenceSPADs programs the reference SPAD enable map from the
// NVM-provided map and the given SPAD count and type, based on
// VL53L0X_set_reference_spads() (assuming valid NVM values)
func (v *VL53L0X) setReferenceSPADs(count uint8, typeIsAperture bool) error {

	var refSpadMap [6]byte

	if err := v.bus.ReadMulti(GLOBAL_CONFIG_SPAD_ENABLES_REF_0, refSpadMap[:]); err != nil {
		return err
	}

	if err := v.bus.WriteReg(0xFF, 0x01); err != nil {
		return err
	}

	if err := v.bus.WriteReg(DYNAMIC_SPAD_REF_EN_START_OFFSET, 0x00); err != nil {
		return err
	}

	if err := v.bus.WriteReg(DYNAMIC_SPAD_NUM_REQUESTED_REF_SPAD, 0x2C); err != nil {
		return err
	}

	if err := v.bus.WriteReg(0xFF, 0x00); err != nil {
		return err
	}

	if err := v.bus.WriteReg(GLOBAL_CONFIG_REF_EN_START_SELECT, 0xB4); err != nil {
		return err
	}

	applySpadMap(&refSpadMap, count, typeIsAperture)

	return v.bus.WriteMulti(GLOBAL_CONFIG_SPAD_ENABLES_REF_0, refSpadMap[:])
}
