package jffs2

import "testing"

// TestMtdCRC32ReferenceVector pins the CRC variant to the standard
// "123456789" check value for CRC-32/ISO-HDLC, confirming mtdCRC32 matches
// the MTD CRC-32 flavor JFFS2 itself uses (init/final XOR 0xFFFFFFFF,
// reflected in/out).
func TestMtdCRC32ReferenceVector(t *testing.T) {
	got := mtdCRC32([]byte("123456789"))
	const want = 0xCBF43926
	if got != want {
		t.Fatalf("mtdCRC32(%q) = 0x%08X, want 0x%08X", "123456789", got, want)
	}
}

func TestMtdCRC32Empty(t *testing.T) {
	if got := mtdCRC32(nil); got != 0 {
		t.Fatalf("mtdCRC32(nil) = 0x%08X, want 0", got)
	}
}

func TestPAD(t *testing.T) {
	for n := uint32(0); n <= 512; n++ {
		p := PAD(n)
		if p < n {
			t.Fatalf("PAD(%d) = %d, want >= %d", n, p, n)
		}
		if p%4 != 0 {
			t.Fatalf("PAD(%d) = %d, want a multiple of 4", n, p)
		}
		if p-n >= 4 {
			t.Fatalf("PAD(%d) = %d, added %d bytes, want < 4", n, p, p-n)
		}
	}
}
