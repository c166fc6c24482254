package inspect

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte{0xFF}, "1 bytes | u8:255 i8:-1"},
		{[]byte{0x01, 0x02}, "2 bytes | u16 LE:513 BE:258 | i16 LE:513 BE:258"},
		{[]byte{0x01, 0x00, 0x00}, "3 bytes | u24 LE:1 BE:65536"},
		{[]byte{0x00, 0x00, 0x80, 0x3F}, "4 bytes | u32 LE:1065353216 BE:32831 | f32 LE:1.000000 BE:0.000000"},
		{[]byte{1, 2, 3, 4, 5}, "5 bytes | (01 02 03 04 05)"},
		{make([]byte, 9), "9 bytes"},
		{bytes.Repeat([]byte{0xFF}, 16), "16 bytes" +
			" | u128 LE:340282366920938463463374607431768211455 BE:340282366920938463463374607431768211455" +
			" | i128 LE:-1 BE:-1"},
	}
	for _, tt := range tests {
		if got := Describe(tt.in); got != tt.want {
			t.Errorf("Describe(% X) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDescribeSkipsNonFiniteFloats(t *testing.T) {
	got := Describe([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	want := "4 bytes | u32 LE:4294967295 BE:4294967295"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInt128(t *testing.T) {
	b := make([]byte, 16)
	for i := range b {
		b[i] = 0xFF
	}
	if got := Int128(b, binary.LittleEndian).String(); got != "-1" {
		t.Errorf("Int128 all ones = %s, want -1", got)
	}
	if got := Uint128(b, binary.BigEndian).String(); got != "340282366920938463463374607431768211455" {
		t.Errorf("Uint128 all ones = %s", got)
	}

	one := make([]byte, 16)
	one[0] = 1
	if got := Uint128(one, binary.LittleEndian).String(); got != "1" {
		t.Errorf("Uint128 LE one = %s, want 1", got)
	}
	if got := Int128(one, binary.LittleEndian).String(); got != "1" {
		t.Errorf("Int128 LE one = %s, want 1", got)
	}
}
