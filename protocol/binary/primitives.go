// Package binary implements the Thrift Binary Protocol: encoding of the
// wire.Message value tree to bytes, and a resumable, incremental decoder
// that can be fed bytes as they arrive from a transport (spec.md §4).
//
// Every read helper in this file is pure and total over its input slice:
// given fewer bytes than it needs, it returns ok=false and leaves buf
// completely unexamined for side effects — callers never need to undo a
// partial read. That property is what lets the decoder in decoder.go
// retry a read from scratch on the next call without tracking byte-level
// sub-state (see cont.go's doc comment for the fuller argument).
package binary

import (
	"encoding/binary"
	"math"
)

func encodeBool(b bool) byte {
	if b {
		return 0x01
	}
	return 0x00
}

func encodeI8(n int8) byte { return byte(n) }

func appendI16(dst []byte, n int16) []byte {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(n))
	return append(dst, buf[:]...)
}

func appendI32(dst []byte, n int32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(n))
	return append(dst, buf[:]...)
}

func appendU32(dst []byte, n uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], n)
	return append(dst, buf[:]...)
}

func appendI64(dst []byte, n int64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	return append(dst, buf[:]...)
}

func appendU64(dst []byte, n uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	return append(dst, buf[:]...)
}

func appendDouble(dst []byte, f float64) []byte {
	return appendU64(dst, math.Float64bits(f))
}

func appendBinary(dst []byte, b []byte) []byte {
	dst = appendI32(dst, int32(len(b)))
	return append(dst, b...)
}

// --- resumable reads ---
//
// Each readX takes the currently buffered bytes and returns the decoded
// value, the bytes remaining after it, and whether enough input was
// available. On ok=false, rest equals buf: nothing was consumed.

func readBool(buf []byte) (v bool, rest []byte, ok bool, err error) {
	if len(buf) < 1 {
		return false, buf, false, nil
	}
	switch buf[0] {
	case 0x00:
		return false, buf[1:], true, nil
	case 0x01:
		return true, buf[1:], true, nil
	default:
		return false, buf, true, newMalformed(stageBool, "value", buf[0])
	}
}

func readI8(buf []byte) (v int8, rest []byte, ok bool) {
	if len(buf) < 1 {
		return 0, buf, false
	}
	return int8(buf[0]), buf[1:], true
}

func readI16(buf []byte) (v int16, rest []byte, ok bool) {
	if len(buf) < 2 {
		return 0, buf, false
	}
	return int16(binary.BigEndian.Uint16(buf[:2])), buf[2:], true
}

func readI32(buf []byte) (v int32, rest []byte, ok bool) {
	if len(buf) < 4 {
		return 0, buf, false
	}
	return int32(binary.BigEndian.Uint32(buf[:4])), buf[4:], true
}

func readU32(buf []byte) (v uint32, rest []byte, ok bool) {
	if len(buf) < 4 {
		return 0, buf, false
	}
	return binary.BigEndian.Uint32(buf[:4]), buf[4:], true
}

func readI64(buf []byte) (v int64, rest []byte, ok bool) {
	if len(buf) < 8 {
		return 0, buf, false
	}
	return int64(binary.BigEndian.Uint64(buf[:8])), buf[8:], true
}

func readU64(buf []byte) (v uint64, rest []byte, ok bool) {
	if len(buf) < 8 {
		return 0, buf, false
	}
	return binary.BigEndian.Uint64(buf[:8]), buf[8:], true
}

func readDouble(buf []byte) (v float64, rest []byte, ok bool) {
	n, rest, ok := readU64(buf)
	if !ok {
		return 0, buf, false
	}
	return math.Float64frombits(n), rest, true
}

// readBinary reads an i32 length prefix followed by that many bytes. A
// negative length is a fatal error (spec.md §4.1, §7). The returned slice
// aliases buf; callers that retain it across further decode calls must
// copy it first (see decoder.go).
func readBinary(buf []byte, maxLen int32, subkind string) (v []byte, rest []byte, ok bool, err error) {
	n, after, ok := readI32(buf)
	if !ok {
		return nil, buf, false, nil
	}
	if n < 0 {
		return nil, buf, true, newMalformed(stageBinary, subkind, n)
	}
	if maxLen > 0 && n > maxLen {
		return nil, buf, true, newMalformed(stageBinary, subkind+"-too-large", n)
	}
	if int64(len(after)) < int64(n) {
		return nil, buf, false, nil
	}
	return after[:n], after[n:], true, nil
}
