package vl53l0x

// Register map used by the driver. Addresses not named here are touched only
// by the opaque tuning and calibration sequences in tuning.go and spad.go.
const (
	SYSRANGE_START uint8 = 0x00

	SYSTEM_THRESH_HIGH uint8 = 0x0C
	SYSTEM_THRESH_LOW  uint8 = 0x0E

	SYSTEM_SEQUENCE_CONFIG         uint8 = 0x01
	SYSTEM_RANGE_CONFIG            uint8 = 0x09
	SYSTEM_INTERMEASUREMENT_PERIOD uint8 = 0x04

	SYSTEM_INTERRUPT_CONFIG_GPIO uint8 = 0x0A

	GPIO_HV_MUX_ACTIVE_HIGH uint8 = 0x84

	SYSTEM_INTERRUPT_CLEAR uint8 = 0x0B

	RESULT_INTERRUPT_STATUS uint8 = 0x13
	RESULT_RANGE_STATUS     uint8 = 0x14

	RESULT_CORE_AMBIENT_WINDOW_EVENTS_RTN uint8 = 0xBC
	RESULT_CORE_RANGING_TOTAL_EVENTS_RTN  uint8 = 0xC0
	RESULT_CORE_AMBIENT_WINDOW_EVENTS_REF uint8 = 0xD0
	RESULT_CORE_RANGING_TOTAL_EVENTS_REF  uint8 = 0xD4
	RESULT_PEAK_SIGNAL_RATE_REF           uint8 = 0xB6

	ALGO_PART_TO_PART_RANGE_OFFSET_MM uint8 = 0x28

	I2C_SLAVE_DEVICE_ADDRESS uint8 = 0x8A

	MSRC_CONFIG_CONTROL uint8 = 0x60

	PRE_RANGE_CONFIG_MIN_SNR           uint8 = 0x27
	PRE_RANGE_CONFIG_VALID_PHASE_LOW   uint8 = 0x56
	PRE_RANGE_CONFIG_VALID_PHASE_HIGH  uint8 = 0x57
	PRE_RANGE_MIN_COUNT_RATE_RTN_LIMIT uint8 = 0x64

	FINAL_RANGE_CONFIG_MIN_SNR                  uint8 = 0x67
	FINAL_RANGE_CONFIG_VALID_PHASE_LOW          uint8 = 0x47
	FINAL_RANGE_CONFIG_VALID_PHASE_HIGH         uint8 = 0x48
	FINAL_RANGE_CONFIG_MIN_COUNT_RATE_RTN_LIMIT uint8 = 0x44

	PRE_RANGE_CONFIG_SIGMA_THRESH_HI uint8 = 0x61
	PRE_RANGE_CONFIG_SIGMA_THRESH_LO uint8 = 0x62

	PRE_RANGE_CONFIG_VCSEL_PERIOD      uint8 = 0x50
	PRE_RANGE_CONFIG_TIMEOUT_MACROP_HI uint8 = 0x51
	PRE_RANGE_CONFIG_TIMEOUT_MACROP_LO uint8 = 0x52

	SYSTEM_HISTOGRAM_BIN                  uint8 = 0x81
	HISTOGRAM_CONFIG_INITIAL_PHASE_SELECT uint8 = 0x33
	HISTOGRAM_CONFIG_READOUT_CTRL         uint8 = 0x55

	FINAL_RANGE_CONFIG_VCSEL_PERIOD       uint8 = 0x70
	FINAL_RANGE_CONFIG_TIMEOUT_MACROP_HI  uint8 = 0x71
	FINAL_RANGE_CONFIG_TIMEOUT_MACROP_LO  uint8 = 0x72
	CROSSTALK_COMPENSATION_PEAK_RATE_MCPS uint8 = 0x20

	MSRC_CONFIG_TIMEOUT_MACROP uint8 = 0x46

	SOFT_RESET_GO2_SOFT_RESET_N uint8 = 0xBF
	IDENTIFICATION_MODEL_ID     uint8 = 0xC0
	IDENTIFICATION_REVISION_ID  uint8 = 0xC2

	OSC_CALIBRATE_VAL uint8 = 0xF8

	GLOBAL_CONFIG_VCSEL_WIDTH        uint8 = 0x32
	GLOBAL_CONFIG_SPAD_ENABLES_REF_0 uint8 = 0xB0
	GLOBAL_CONFIG_SPAD_ENABLES_REF_1 uint8 = 0xB1
	GLOBAL_CONFIG_SPAD_ENABLES_REF_2 uint8 = 0xB2
	GLOBAL_CONFIG_SPAD_ENABLES_REF_3 uint8 = 0xB3
	GLOBAL_CONFIG_SPAD_ENABLES_REF_4 uint8 = 0xB4
	GLOBAL_CONFIG_SPAD_ENABLES_REF_5 uint8 = 0xB5

	GLOBAL_CONFIG_REF_EN_START_SELECT   uint8 = 0xB6
	DYNAMIC_SPAD_NUM_REQUESTED_REF_SPAD uint8 = 0x4E
	DYNAMIC_SPAD_REF_EN_START_OFFSET    uint8 = 0x4F
	POWER_MANAGEMENT_GO1_POWER_FORCE    uint8 = 0x80

	VHV_CONFIG_PAD_SCL_SDA_EXTSUP_HV uint8 = 0x89

	ALGO_PHASECAL_LIM            uint8 = 0x30
	ALGO_PHASECAL_CONFIG_TIMEOUT uint8 = 0x30
)
