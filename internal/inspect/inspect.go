// Package inspect interprets a short byte range as the integer and float
// types it could encode, in both byte orders.
package inspect

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Describe summarises a selection for the status line, for example
// "2 bytes | u16 LE:513 BE:258 | i16 LE:513 BE:258". Ranges longer than
// 8 bytes (other than 16) report the length only.
func Describe(b []byte) string {
	parts := []string{fmt.Sprintf("%d bytes", len(b))}

	switch len(b) {
	case 1:
		parts = append(parts, fmt.Sprintf("u8:%d i8:%d", b[0], int8(b[0])))
	case 2:
		le, be := binary.LittleEndian.Uint16(b), binary.BigEndian.Uint16(b)
		parts = append(parts,
			fmt.Sprintf("u16 LE:%d BE:%d", le, be),
			fmt.Sprintf("i16 LE:%d BE:%d", int16(le), int16(be)))
	case 3:
		le := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
		be := uint32(b[2]) | uint32(b[1])<<8 | uint32(b[0])<<16
		parts = append(parts, fmt.Sprintf("u24 LE:%d BE:%d", le, be))
	case 4:
		le, be := binary.LittleEndian.Uint32(b), binary.BigEndian.Uint32(b)
		parts = append(parts, fmt.Sprintf("u32 LE:%d BE:%d", le, be))
		fle, fbe := math.Float32frombits(le), math.Float32frombits(be)
		if finite(float64(fle)) || finite(float64(fbe)) {
			parts = append(parts, fmt.Sprintf("f32 LE:%.6f BE:%.6f", fle, fbe))
		}
	case 5, 6, 7:
		parts = append(parts, "("+hexList(b)+")")
	case 8:
		le, be := binary.LittleEndian.Uint64(b), binary.BigEndian.Uint64(b)
		parts = append(parts, fmt.Sprintf("u64 LE:%d BE:%d", le, be))
		fle, fbe := math.Float64frombits(le), math.Float64frombits(be)
		if finite(fle) || finite(fbe) {
			parts = append(parts, fmt.Sprintf("f64 LE:%.6f BE:%.6f", fle, fbe))
		}
	case 16:
		parts = append(parts, fmt.Sprintf("u128 LE:%s BE:%s",
			Uint128(b, binary.LittleEndian), Uint128(b, binary.BigEndian)),
			fmt.Sprintf("i128 LE:%s BE:%s",
				Int128(b, binary.LittleEndian), Int128(b, binary.BigEndian)))
	}

	return strings.Join(parts, " | ")
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func hexList(b []byte) string {
	s := make([]string, len(b))
	for i, v := range b {
		s[i] = fmt.Sprintf("%02X", v)
	}
	return strings.Join(s, " ")
}

// Uint128 reads 16 bytes as an unsigned 128-bit integer.
func Uint128(b []byte, order binary.ByteOrder) *big.Int {
	var high, low uint64
	if order == binary.BigEndian {
		high = binary.BigEndian.Uint64(b[:8])
		low = binary.BigEndian.Uint64(b[8:16])
	} else {
		low = binary.LittleEndian.Uint64(b[:8])
		high = binary.LittleEndian.Uint64(b[8:16])
	}

	n := new(big.Int).SetUint64(high)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(low))
}

// Int128 is Uint128 in two's complement.
func Int128(b []byte, order binary.ByteOrder) *big.Int {
	n := Uint128(b, order)
	if n.Bit(127) == 1 {
		limit := new(big.Int).Lsh(big.NewInt(1), 128)
		n.Sub(n, limit)
	}
	return n
}
