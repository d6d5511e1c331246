package vl53l0x

import "time"

// SetTimeout sets the timeout duration for reading sensor values. A zero
// timeout makes the polling loops wait indefinitely.
func (v *VL53L0X) SetTimeout(timeout time.Duration) {
	v.ioTimeout = timeout
}

// TimeoutOccurred reports whether a timeout has occurred since the last call
func (v *VL53L0X) TimeoutOccurred() bool {
	tmp := v.didTimeout
	v.didTimeout = false
	return tmp
}

// startTimeout starts the timeout counter
func (v *VL53L0X) startTimeout() {
	v.timeoutStart = v.now()
}

// checkTimeoutExpired checks if timeout has expired
func (v *VL53L0X) checkTimeoutExpired() bool {
	return (v.ioTimeout > 0) && (v.now().Sub(v.timeoutStart) > v.ioTimeout)
}
