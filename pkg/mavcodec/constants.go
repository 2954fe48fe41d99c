// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

// BaseType identifies the wire type of one field element.
type BaseType string

// Field base types recognized by the layout compiler.
const (
	TypeInt8   BaseType = "int8"
	TypeUint8  BaseType = "uint8"
	TypeInt16  BaseType = "int16"
	TypeUint16 BaseType = "uint16"
	TypeInt32  BaseType = "int32"
	TypeUint32 BaseType = "uint32"
	TypeInt64  BaseType = "int64"
	TypeUint64 BaseType = "uint64"
	TypeChar   BaseType = "char"
	TypeFloat  BaseType = "float"
	TypeDouble BaseType = "double"
)

// typeSizes gives the wire size, in bytes, of one element of each base type.
var typeSizes = map[BaseType]int{
	TypeInt8:   1,
	TypeUint8:  1,
	TypeInt16:  2,
	TypeUint16: 2,
	TypeInt32:  4,
	TypeUint32: 4,
	TypeInt64:  8,
	TypeUint64: 8,
	TypeChar:   1,
	TypeFloat:  4,
	TypeDouble: 8,
}

// Source-dialect aliases resolved at load time.
const (
	aliasMavlinkVersion = "uint8_t_mavlink_version"
	aliasArray          = "array"
)

// Version selects the framing dialect the parser/builder speak.
type Version int

const (
	// V1_0 is the fully-supported wire format: start byte 0xFE, per-message CRC seed.
	V1_0 Version = iota
	// V0_9 is recognized for framing compatibility; its checksum policy is advisory only.
	V0_9
)

// startByte returns the start-of-frame sentinel for a version mode.
func startByte(v Version) byte {
	if v == V0_9 {
		return 0x55
	}
	return 0xFE
}

// Frame layout constants (V1_0/V0_9 share the same geometry).
const (
	headerOverheadBytes = 6 // stx, len, seq, sysid, compid, msgid
	trailerBytes        = 2 // crc_lo, crc_hi
	frameOverheadBytes  = headerOverheadBytes + trailerBytes
	maxPayloadBytes     = 255
	// bufferCapacity must hold the largest possible frame (255 + 8) with
	// room to spare.
	bufferCapacity = 512
)

// parserState is the Frame Parser's state machine position.
type parserState int

const (
	stateIdle parserState = iota
	stateLen
	stateBody
	stateCheck
)
