package protocol

import "testing"

func TestSampleEncodeDecode(t *testing.T) {
	// All eight pin combinations must round trip.
	for i := 0; i < 8; i++ {
		s := Sample{
			SCLK: i&1 != 0,
			COPI: i&2 != 0,
			NCS:  i&4 != 0,
		}

		b := s.Encode()
		if int(b) != i {
			t.Errorf("Encode(%+v) = 0x%02x, want 0x%02x", s, b, i)
		}

		decoded, err := DecodeSample(b)
		if err != nil {
			t.Fatalf("DecodeSample(0x%02x) failed: %v", b, err)
		}
		if decoded != s {
			t.Errorf("round trip mismatch: sent %+v, got %+v", s, decoded)
		}
	}
}

func TestDecodeSampleReservedBits(t *testing.T) {
	for _, b := range []byte{0x08, 0x80, 0xFF, 0x09} {
		if _, err := DecodeSample(b); err != ErrBadSample {
			t.Errorf("DecodeSample(0x%02x) = %v, want ErrBadSample", b, err)
		}
	}
}

func TestIdleSample(t *testing.T) {
	s := IdleSample()
	if s.SCLK || s.COPI || !s.NCS {
		t.Errorf("idle bus should be clock/data low with chip select deasserted, got %+v", s)
	}
	if s.Encode() != SampleNCS {
		t.Errorf("idle sample byte = 0x%02x, want 0x%02x", s.Encode(), SampleNCS)
	}
}
