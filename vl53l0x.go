// go-vl53l0x is an I2C driver for the ST VL53L0X time‐of‐flight sensor.
package vl53l0x

import (
	"fmt"
	"io"
	"log"
	"time"
)

const (
	// Address is the default address of the sensor on I2C bus
	Address uint8 = 0x29
	// MinTimingBudget is the smallest measurement timing budget the sensor
	// accepts, in microseconds
	MinTimingBudget uint32 = 20000
	// RangeTimeout is the sentinel value returned by the range read
	// functions when no measurement became ready within the I/O timeout
	RangeTimeout uint16 = 65535
)

// VL53L0X represents a single VL53L0X sensor instance.
type VL53L0X struct {
	// bus is the register transport
	bus Bus

	ioTimeout    time.Duration
	didTimeout   bool
	timeoutStart time.Time

	// now is the monotonic clock consulted by the polling loops
	now func() time.Time

	// stopVariable is read during init and replayed before every
	// measurement start; it is the StopVariable field of the
	// VL53L0X_DevData_t structure in the vendor API
	stopVariable uint8

	// measurement timing budget in microseconds
	timingBudgetUs uint32

	// log logger for debugging
	log *log.Logger
}

// New returns a new VL53L0X sensor instance on the given bus and initializes
// it. If io2v8 is true the sensor I/O is switched to 2V8 mode (it powers up
// in 1V8 mode).
func New(bus Bus, io2v8 bool) (*VL53L0X, error) {

	v, err := newDevice(bus)

	if err != nil {
		return nil, err
	}

	// create null logger
	v.log = log.New(io.Discard, "", log.LstdFlags)

	// finish device setup
	err = v.setup(io2v8)

	return v, err
}

// NewWithLog creates a sensor instance with logger to be used for debugging
func NewWithLog(bus Bus, io2v8 bool, log *log.Logger) (*VL53L0X, error) {

	v, err := newDevice(bus)

	if err != nil {
		return nil, err
	}

	// set logger
	v.log = log

	// finish device setup
	err = v.setup(io2v8)

	return v, err
}

// newDevice returns a new VL53L0X sensor instance
func newDevice(bus Bus) (*VL53L0X, error) {

	if bus == nil {
		return nil, fmt.Errorf("bus is not initiated")
	}

	v := &VL53L0X{
		bus: bus,
		now: time.Now,
	}

	return v, nil
}

// setup completes instance creation and is a common function for New() and
// NewWithLog()
func (v *VL53L0X) setup(io2v8 bool) error {

	v.log.Printf("Starting Setup()")

	// initialize device
	err := v.Init(io2v8)

	if err != nil {
		return fmt.Errorf("Failed to Init device: %w", err)
	}

	v.log.Printf("Device Init()'d")

	return nil
}

// addressSetter is implemented by transports whose device address can be
// retargeted after a bus-level address change.
type addressSetter interface {
	SetAddress(addr uint8) error
}

// SetAddress changes the address of the sensor and retargets the transport
// when it supports doing so.
func (v *VL53L0X) SetAddress(newAddr uint8) error {

	if err := v.bus.WriteReg(I2C_SLAVE_DEVICE_ADDRESS, newAddr&0x7F); err != nil {
		return err
	}

	if as, ok := v.bus.(addressSetter); ok {
		return as.SetAddress(newAddr)
	}

	return nil
}
