package core

// Register addresses decoded from frame bits 14:8.
const (
	AddrOutEnableLow  = 0x00
	AddrOutEnableHigh = 0x01
	AddrPwmEnableLow  = 0x02
	AddrPwmEnableHigh = 0x03
	AddrPwmDutyCycle  = 0x04
)

// RegisterFile holds the five 8-bit output registers. The decoder is the
// only writer; readers see values that change atomically between ticks.
type RegisterFile struct {
	OutEnableLow  uint8
	OutEnableHigh uint8
	PwmEnableLow  uint8
	PwmEnableHigh uint8
	PwmDutyCycle  uint8
}

// regOp describes one addressable register: its host-visible name, how
// the decoder stores to it, and how host-side consumers read it back.
type regOp struct {
	name string
	set  func(*RegisterFile, uint8)
	get  func(*RegisterFile) uint8
}

// regOps is the address dispatch table. The slice index is the register
// address; anything past the end decodes to a no-op.
var regOps = [...]regOp{
	AddrOutEnableLow: {
		name: "out_enable_low",
		set:  func(rf *RegisterFile, v uint8) { rf.OutEnableLow = v },
		get:  func(rf *RegisterFile) uint8 { return rf.OutEnableLow },
	},
	AddrOutEnableHigh: {
		name: "out_enable_high",
		set:  func(rf *RegisterFile, v uint8) { rf.OutEnableHigh = v },
		get:  func(rf *RegisterFile) uint8 { return rf.OutEnableHigh },
	},
	AddrPwmEnableLow: {
		name: "pwm_enable_low",
		set:  func(rf *RegisterFile, v uint8) { rf.PwmEnableLow = v },
		get:  func(rf *RegisterFile) uint8 { return rf.PwmEnableLow },
	},
	AddrPwmEnableHigh: {
		name: "pwm_enable_high",
		set:  func(rf *RegisterFile, v uint8) { rf.PwmEnableHigh = v },
		get:  func(rf *RegisterFile) uint8 { return rf.PwmEnableHigh },
	},
	AddrPwmDutyCycle: {
		name: "pwm_duty_cycle",
		set:  func(rf *RegisterFile, v uint8) { rf.PwmDutyCycle = v },
		get:  func(rf *RegisterFile) uint8 { return rf.PwmDutyCycle },
	},
}

// NumRegisters is the number of decodable register addresses.
const NumRegisters = len(regOps)

// Write stores data into the register selected by addr. It reports
// whether the address hit the dispatch table; unknown addresses leave
// every register untouched.
func (rf *RegisterFile) Write(addr, data uint8) bool {
	if int(addr) >= len(regOps) {
		return false
	}
	regOps[addr].set(rf, data)
	return true
}

// Read returns the current value of the register at addr. This is a
// host-side convenience; the wire protocol has no read response path.
func (rf *RegisterFile) Read(addr uint8) (uint8, bool) {
	if int(addr) >= len(regOps) {
		return 0, false
	}
	return regOps[addr].get(rf), true
}

// Reset zeroes all five registers.
func (rf *RegisterFile) Reset() {
	*rf = RegisterFile{}
}

// RegisterName returns the host-visible name of the register at addr.
func RegisterName(addr uint8) (string, bool) {
	if int(addr) >= len(regOps) {
		return "", false
	}
	return regOps[addr].name, true
}
