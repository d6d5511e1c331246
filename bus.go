package vl53l0x

// Bus is the register-level transport the driver runs on. The VL53L0X has an
// 8-bit register address space; multi-byte values are big endian on the wire.
// All operations are synchronous; any error is fatal to the driver operation
// that issued it.
type Bus interface {
	WriteReg(reg, value uint8) error
	WriteReg16Bit(reg uint8, value uint16) error
	WriteReg32Bit(reg uint8, value uint32) error
	ReadReg(reg uint8) (uint8, error)
	ReadReg16Bit(reg uint8) (uint16, error)
	ReadReg32Bit(reg uint8) (uint32, error)

	// WriteMulti writes len(src) bytes to consecutive registers starting
	// at reg
	WriteMulti(reg uint8, src []byte) error

	// ReadMulti fills dst from consecutive registers starting at reg
	ReadMulti(reg uint8, dst []byte) error
}
