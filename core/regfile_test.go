package core

import "testing"

func TestRegisterFileWriteDispatch(t *testing.T) {
	testCases := []struct {
		addr uint8
		name string
		get  func(RegisterFile) uint8
	}{
		{AddrOutEnableLow, "out_enable_low", func(rf RegisterFile) uint8 { return rf.OutEnableLow }},
		{AddrOutEnableHigh, "out_enable_high", func(rf RegisterFile) uint8 { return rf.OutEnableHigh }},
		{AddrPwmEnableLow, "pwm_enable_low", func(rf RegisterFile) uint8 { return rf.PwmEnableLow }},
		{AddrPwmEnableHigh, "pwm_enable_high", func(rf RegisterFile) uint8 { return rf.PwmEnableHigh }},
		{AddrPwmDutyCycle, "pwm_duty_cycle", func(rf RegisterFile) uint8 { return rf.PwmDutyCycle }},
	}

	for _, tc := range testCases {
		var rf RegisterFile
		value := tc.addr*0x11 + 0x21

		if !rf.Write(tc.addr, value) {
			t.Errorf("Write(0x%02x) missed the dispatch table", tc.addr)
			continue
		}
		if got := tc.get(rf); got != value {
			t.Errorf("register 0x%02x = 0x%02x, want 0x%02x", tc.addr, got, value)
		}

		// Only the targeted register may change.
		changed := 0
		for addr := uint8(0); int(addr) < NumRegisters; addr++ {
			if v, _ := rf.Read(addr); v != 0 {
				changed++
			}
		}
		if changed != 1 {
			t.Errorf("write to 0x%02x changed %d registers, want 1", tc.addr, changed)
		}

		name, ok := RegisterName(tc.addr)
		if !ok || name != tc.name {
			t.Errorf("RegisterName(0x%02x) = %q, want %q", tc.addr, name, tc.name)
		}
	}
}

func TestRegisterFileUnknownAddress(t *testing.T) {
	rf := RegisterFile{
		OutEnableLow:  1,
		OutEnableHigh: 2,
		PwmEnableLow:  3,
		PwmEnableHigh: 4,
		PwmDutyCycle:  5,
	}
	before := rf

	for _, addr := range []uint8{0x05, 0x10, 0x7F} {
		if rf.Write(addr, 0xFF) {
			t.Errorf("Write(0x%02x) hit the dispatch table, want no-op", addr)
		}
		if _, ok := rf.Read(addr); ok {
			t.Errorf("Read(0x%02x) reported a mapped register", addr)
		}
		if _, ok := RegisterName(addr); ok {
			t.Errorf("RegisterName(0x%02x) reported a mapped register", addr)
		}
	}

	if rf != before {
		t.Errorf("unknown-address writes changed state: %+v", rf)
	}
}

func TestRegisterFileReset(t *testing.T) {
	var rf RegisterFile
	for addr := uint8(0); int(addr) < NumRegisters; addr++ {
		rf.Write(addr, 0xFF)
	}

	rf.Reset()
	if rf != (RegisterFile{}) {
		t.Errorf("reset left values behind: %+v", rf)
	}
}
