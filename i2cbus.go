package vl53l0x

import (
	"fmt"

	"github.com/swdee/go-i2c"
)

// I2CBus is the default Bus implementation, running the sensor over a Linux
// I2C device via go-i2c.
type I2CBus struct {
	conn *i2c.Options
}

// NewI2CBus wraps an open go-i2c connection as a register transport
func NewI2CBus(conn *i2c.Options) (*I2CBus, error) {

	if conn == nil || conn.GetAddr() == 0 {
		return nil, fmt.Errorf("I2C device is not initiated")
	}

	return &I2CBus{conn: conn}, nil
}

// SetAddress reopens the connection at the new device address
func (b *I2CBus) SetAddress(addr uint8) error {

	// open new connection
	conn, err := i2c.New(addr, b.conn.GetDev())

	if err != nil {
		return err
	}

	// close existing connection
	b.conn.Close()

	// replace with new connection
	b.conn = conn
	return nil
}

// Close closes the underlying I2C connection
func (b *I2CBus) Close() error {
	return b.conn.Close()
}

// WriteReg writes an 8 bit value to the register
func (b *I2CBus) WriteReg(reg, value uint8) error {

	buf := []byte{reg, value}

	_, err := b.conn.WriteBytes(buf)
	return err
}

// WriteReg16Bit writes a 16 bit value to the register
func (b *I2CBus) WriteReg16Bit(reg uint8, value uint16) error {

	buf := []byte{reg, byte(value >> 8), byte(value)}

	_, err := b.conn.WriteBytes(buf)
	return err
}

// WriteReg32Bit writes a 32 bit value to the register
func (b *I2CBus) WriteReg32Bit(reg uint8, value uint32) error {

	buf := []byte{
		reg,
		byte(value >> 24), byte(value >> 16),
		byte(value >> 8), byte(value),
	}

	_, err := b.conn.WriteBytes(buf)
	return err
}

// ReadReg reads an 8-bit value from the register
func (b *I2CBus) ReadReg(reg uint8) (uint8, error) {

	if _, err := b.conn.WriteBytes([]byte{reg}); err != nil {
		return 0, err
	}

	buf := make([]byte, 1)
	n, err := b.conn.ReadBytes(buf)

	if err != nil {
		return 0, err
	}

	if n < 1 {
		return 0, fmt.Errorf("ReadReg: insufficient data")
	}

	return buf[0], nil
}

// ReadReg16Bit reads a 16-bit value from the register
func (b *I2CBus) ReadReg16Bit(reg uint8) (uint16, error) {

	if _, err := b.conn.WriteBytes([]byte{reg}); err != nil {
		return 0, err
	}

	buf := make([]byte, 2)
	n, err := b.conn.ReadBytes(buf)

	if err != nil {
		return 0, err
	}

	if n < 2 {
		return 0, fmt.Errorf("ReadReg16Bit: insufficient data")
	}

	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// ReadReg32Bit reads a 32-bit value from the register
func (b *I2CBus) ReadReg32Bit(reg uint8) (uint32, error) {

	if _, err := b.conn.WriteBytes([]byte{reg}); err != nil {
		return 0, err
	}

	buf := make([]byte, 4)
	n, err := b.conn.ReadBytes(buf)

	if err != nil {
		return 0, err
	}

	if n < 4 {
		return 0, fmt.Errorf("ReadReg32Bit: insufficient data")
	}

	return uint32(buf[0])<<24 | uint32(buf[1])<<16 |
		uint32(buf[2])<<8 | uint32(buf[3]), nil
}

// WriteMulti writes the given bytes to consecutive registers starting at reg
func (b *I2CBus) WriteMulti(reg uint8, src []byte) error {

	buf := make([]byte, 0, len(src)+1)
	buf = append(buf, reg)
	buf = append(buf, src...)

	_, err := b.conn.WriteBytes(buf)
	return err
}

// ReadMulti fills dst from consecutive registers starting at reg
func (b *I2CBus) ReadMulti(reg uint8, dst []byte) error {

	if _, err := b.conn.WriteBytes([]byte{reg}); err != nil {
		return err
	}

	n, err := b.conn.ReadBytes(dst)

	if err != nil {
		return err
	}

	if n < len(dst) {
		return fmt.Errorf("ReadMulti: insufficient data read")
	}

	return nil
}
