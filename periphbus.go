package vl53l0x

import (
	"periph.io/x/conn/v3/i2c"
)

// PeriphBus is a Bus implementation on top of a periph.io I2C bus, for hosts
// already using the periph.io stack.
type PeriphBus struct {
	dev *i2c.Dev
}

// NewPeriphBus wraps a periph.io bus and device address as a register
// transport
func NewPeriphBus(bus i2c.Bus, addr uint16) *PeriphBus {
	return &PeriphBus{dev: &i2c.Dev{Bus: bus, Addr: addr}}
}

func (b *PeriphBus) WriteReg(reg, value uint8) error {
	return b.dev.Tx([]byte{reg, value}, nil)
}

func (b *PeriphBus) WriteReg16Bit(reg uint8, value uint16) error {
	return b.dev.Tx([]byte{reg, byte(value >> 8), byte(value)}, nil)
}

func (b *PeriphBus) WriteReg32Bit(reg uint8, value uint32) error {
	return b.dev.Tx([]byte{
		reg,
		byte(value >> 24), byte(value >> 16),
		byte(value >> 8), byte(value),
	}, nil)
}

func (b *PeriphBus) ReadReg(reg uint8) (uint8, error) {

	buf := make([]byte, 1)

	if err := b.dev.Tx([]byte{reg}, buf); err != nil {
		return 0, err
	}

	return buf[0], nil
}

func (b *PeriphBus) ReadReg16Bit(reg uint8) (uint16, error) {

	buf := make([]byte, 2)

	if err := b.dev.Tx([]byte{reg}, buf); err != nil {
		return 0, err
	}

	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

func (b *PeriphBus) ReadReg32Bit(reg uint8) (uint32, error) {

	buf := make([]byte, 4)

	if err := b.dev.Tx([]byte{reg}, buf); err != nil {
		return 0, err
	}

	return uint32(buf[0])<<24 | uint32(buf[1])<<16 |
		uint32(buf[2])<<8 | uint32(buf[3]), nil
}

func (b *PeriphBus) WriteMulti(reg uint8, src []byte) error {

	buf := make([]byte, 0, len(src)+1)
	buf = append(buf, reg)
	buf = append(buf, src...)

	return b.dev.Tx(buf, nil)
}

func (b *PeriphBus) ReadMulti(reg uint8, dst []byte) error {
	return b.dev.Tx([]byte{reg}, dst)
}
