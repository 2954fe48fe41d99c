// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

import "sort"

// compileLayout sorts fields into wire-layout order, computes the
// message's payload length, and folds its CRC seed. fields must already
// carry normalized BaseType/ArrayLength/TypeSize/TotalSize/SourcePosition
// values in schema (author-visible) order.
func compileLayout(name string, fields []FieldDescriptor) (layout []FieldDescriptor, payloadLength int, crcSeed byte) {
	layout = make([]FieldDescriptor, len(fields))
	copy(layout, fields)

	// Stable descending sort by type_size, source_position as tie-breaker.
	// sort.SliceStable already preserves original relative order for equal
	// keys, so source_position need not be compared explicitly as long as
	// the input is in schema order — it is kept in the comparator anyway
	// to make the tie-break rule explicit.
	sort.SliceStable(layout, func(i, j int) bool {
		if layout[i].TypeSize != layout[j].TypeSize {
			return layout[i].TypeSize > layout[j].TypeSize
		}
		return layout[i].SourcePosition < layout[j].SourcePosition
	})

	for _, f := range layout {
		payloadLength += f.TotalSize
	}

	crcSeed = foldCRCSeed(name, layout)
	return layout, payloadLength, crcSeed
}

// foldCRCSeed computes the per-message CRC seed from the canonical
// signature: message name, then for each field in layout order its
// base_type token (no brackets) and name, each followed by one space; for
// an array field, the raw byte whose code point equals array_length is
// appended after the space that follows the field's name.
func foldCRCSeed(name string, layout []FieldDescriptor) byte {
	crc := crcInitial
	crc = accumulateString(crc, name+" ")
	for _, f := range layout {
		crc = accumulateString(crc, string(f.BaseType)+" ")
		crc = accumulateString(crc, f.Name+" ")
		if f.ArrayLength > 1 {
			crc = accumulateByte(crc, byte(f.ArrayLength))
		}
	}
	return byte(crc&0xFF) ^ byte(crc>>8)
}
