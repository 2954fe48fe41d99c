// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

import "math"

// Little-endian fixed-width reads. Each reads starting at offset off in
// buf without alignment requirements; the caller guarantees enough bytes
// remain.

func readUint8(buf []byte, off int) uint8   { return buf[off] }
func readInt8(buf []byte, off int) int8     { return int8(buf[off]) }

func readUint16(buf []byte, off int) uint16 {
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

func readInt16(buf []byte, off int) int16 { return int16(readUint16(buf, off)) }

func readUint32(buf []byte, off int) uint32 {
	return uint32(buf[off]) | uint32(buf[off+1])<<8 |
		uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
}

func readInt32(buf []byte, off int) int32 { return int32(readUint32(buf, off)) }

func readUint64(buf []byte, off int) uint64 {
	lo := uint64(readUint32(buf, off))
	hi := uint64(readUint32(buf, off+4))
	return lo | hi<<32
}

func readInt64(buf []byte, off int) int64 { return int64(readUint64(buf, off)) }

func readFloat32(buf []byte, off int) float32 {
	return math.Float32frombits(readUint32(buf, off))
}

func readFloat64(buf []byte, off int) float64 {
	return math.Float64frombits(readUint64(buf, off))
}

// Little-endian fixed-width writes, mirroring the reads above.

func writeUint8(buf []byte, off int, v uint8)   { buf[off] = v }
func writeInt8(buf []byte, off int, v int8)     { buf[off] = byte(v) }

func writeUint16(buf []byte, off int, v uint16) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
}

func writeInt16(buf []byte, off int, v int16) { writeUint16(buf, off, uint16(v)) }

func writeUint32(buf []byte, off int, v uint32) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
	buf[off+2] = byte(v >> 16)
	buf[off+3] = byte(v >> 24)
}

func writeInt32(buf []byte, off int, v int32) { writeUint32(buf, off, uint32(v)) }

func writeUint64(buf []byte, off int, v uint64) {
	writeUint32(buf, off, uint32(v))
	writeUint32(buf, off+4, uint32(v>>32))
}

func writeInt64(buf []byte, off int, v int64) { writeUint64(buf, off, uint64(v)) }

func writeFloat32(buf []byte, off int, v float32) {
	writeUint32(buf, off, math.Float32bits(v))
}

func writeFloat64(buf []byte, off int, v float64) {
	writeUint64(buf, off, math.Float64bits(v))
}

// trimCharArray locates the last non-zero byte and returns the bytes up
// to and including it, decoded as a string. A wholly-zero array trims to
// the empty string.
func trimCharArray(b []byte) string {
	last := -1
	for i, c := range b {
		if c != 0x00 {
			last = i
		}
	}
	if last == -1 {
		return ""
	}
	return string(b[:last+1])
}
