package core

import (
	"encoding/json"

	"spislave/protocol"
)

// DictVersion identifies the register-map layout to host tools.
const DictVersion = "spislave-0.1.0"

// RegisterInfo describes one entry of the register map.
type RegisterInfo struct {
	Name  string `json:"name"`
	Addr  uint8  `json:"addr"`
	Value uint8  `json:"value"`
}

// Dictionary is the JSON description of the register map served to host
// tools, with current values snapshot at build time.
type Dictionary struct {
	Version   string         `json:"version"`
	FrameBits int            `json:"frame_bits"`
	Registers []RegisterInfo `json:"registers"`
}

// Dictionary builds a register-map dictionary from the peripheral's
// current state.
func (p *Peripheral) Dictionary() Dictionary {
	regs := p.Registers()
	d := Dictionary{
		Version:   DictVersion,
		FrameBits: protocol.FrameBits,
		Registers: make([]RegisterInfo, 0, NumRegisters),
	}
	for addr := uint8(0); int(addr) < NumRegisters; addr++ {
		name, _ := RegisterName(addr)
		value, _ := regs.Read(addr)
		d.Registers = append(d.Registers, RegisterInfo{
			Name:  name,
			Addr:  addr,
			Value: value,
		})
	}
	return d
}

// JSON serializes the dictionary for host consumption.
func (d Dictionary) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
