// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

import "fmt"

// Frame is a complete, ready-to-transmit wire frame.
type Frame []byte

// Builder turns a message selector and a field map into a complete
// frame with correct layout, sequence number, and checksum. Build is
// all-or-nothing: a failed build never mutates the sequence counter and
// never returns a partial frame.
type Builder struct {
	catalog *MessageCatalog
	version Version

	systemID     byte
	componentID  byte
	nextSequence byte

	warnings []string
}

// Warnings returns the non-fatal diagnostics produced by the most recent
// Build/BuildByName call that resolved its message; a call that fails
// with ErrUnknownMessage leaves the previous list in place. Overlong char
// arrays truncate rather than fail, but a truncation is recorded here.
func (b *Builder) Warnings() []string {
	return b.warnings
}

// NewBuilder creates a Builder bound to catalog. systemID/componentID of
// 0/0 means the origin is not configured; Build then always fails with
// ErrNotConfigured.
func NewBuilder(catalog *MessageCatalog, version Version, systemID, componentID byte) *Builder {
	return &Builder{catalog: catalog, version: version, systemID: systemID, componentID: componentID}
}

// Build resolves id to a MessageDescriptor and encodes fields into a Frame.
func (b *Builder) Build(id int, fields FieldMap) (Frame, error) {
	descriptor, ok := b.catalog.ByID(id)
	if !ok {
		return nil, &BuildError{Kind: ErrUnknownMessage, Message: fmt.Sprintf("id %d", id)}
	}
	return b.build(descriptor, fields)
}

// BuildByName resolves name to a MessageDescriptor and encodes fields
// into a Frame.
func (b *Builder) BuildByName(name string, fields FieldMap) (Frame, error) {
	descriptor, ok := b.catalog.ByName(name)
	if !ok {
		return nil, &BuildError{Kind: ErrUnknownMessage, Message: name}
	}
	return b.build(descriptor, fields)
}

func (b *Builder) build(descriptor *MessageDescriptor, fields FieldMap) (Frame, error) {
	b.warnings = nil

	if b.systemID == 0 && b.componentID == 0 {
		return nil, &BuildError{Kind: ErrNotConfigured, Message: descriptor.Name}
	}

	payload := make([]byte, descriptor.PayloadLength)
	offset := 0
	for _, f := range descriptor.Fields {
		value, present := fields[f.Name]
		if !present {
			return nil, &BuildError{Kind: ErrMissingField, Message: descriptor.Name, Field: f.Name}
		}

		if err := b.encodeField(payload, offset, f, value); err != nil {
			return nil, &BuildError{Kind: err, Message: descriptor.Name, Field: f.Name}
		}
		offset += f.TotalSize
	}

	header := []byte{
		startByte(b.version),
		byte(descriptor.PayloadLength),
		b.nextSequence,
		b.systemID,
		b.componentID,
		byte(descriptor.ID),
	}

	checksummable := append(append([]byte{}, header[1:]...), payload...)
	crc := CalculateCRC(checksummable)
	if b.version == V1_0 {
		crc = accumulateByte(crc, descriptor.CRCSeed)
	}

	frame := make(Frame, 0, len(header)+len(payload)+trailerBytes)
	frame = append(frame, header...)
	frame = append(frame, payload...)
	frame = append(frame, byte(crc), byte(crc>>8))

	b.nextSequence++

	return frame, nil
}

// encodeField writes value at offset in payload according to f: char
// arrays as string bytes, scalar fields through encodeScalar, and other
// array fields element by element through encodeArray.
func (b *Builder) encodeField(payload []byte, offset int, f FieldDescriptor, value interface{}) error {
	if f.BaseType == TypeChar {
		s, ok := value.(string)
		if !ok {
			return ErrFieldValueType
		}
		raw := []byte(s)
		if len(raw) > f.ArrayLength {
			b.warnings = append(b.warnings, fmt.Sprintf(
				"field %q: value of %d bytes truncated to %d-byte capacity", f.Name, len(raw), f.ArrayLength))
			raw = raw[:f.ArrayLength]
		}
		copy(payload[offset:offset+f.TotalSize], raw)
		return nil
	}

	if f.ArrayLength == 1 {
		return encodeScalar(payload, offset, f.BaseType, value)
	}

	return encodeArray(payload, offset, f.BaseType, f.ArrayLength, value)
}

func encodeScalar(buf []byte, off int, bt BaseType, value interface{}) error {
	switch bt {
	case TypeInt8:
		v, err := toInt64(value)
		if err != nil {
			return err
		}
		writeInt8(buf, off, int8(v))
	case TypeUint8:
		v, err := toUint64(value)
		if err != nil {
			return err
		}
		writeUint8(buf, off, uint8(v))
	case TypeInt16:
		v, err := toInt64(value)
		if err != nil {
			return err
		}
		writeInt16(buf, off, int16(v))
	case TypeUint16:
		v, err := toUint64(value)
		if err != nil {
			return err
		}
		writeUint16(buf, off, uint16(v))
	case TypeInt32:
		v, err := toInt64(value)
		if err != nil {
			return err
		}
		writeInt32(buf, off, int32(v))
	case TypeUint32:
		v, err := toUint64(value)
		if err != nil {
			return err
		}
		writeUint32(buf, off, uint32(v))
	case TypeInt64:
		v, err := toInt64(value)
		if err != nil {
			return err
		}
		writeInt64(buf, off, v)
	case TypeUint64:
		v, err := toUint64(value)
		if err != nil {
			return err
		}
		writeUint64(buf, off, v)
	case TypeFloat:
		v, err := toFloat64(value)
		if err != nil {
			return err
		}
		writeFloat32(buf, off, float32(v))
	case TypeDouble:
		v, err := toFloat64(value)
		if err != nil {
			return err
		}
		writeFloat64(buf, off, v)
	default:
		return ErrFieldValueType
	}
	return nil
}

func encodeArray(buf []byte, off int, bt BaseType, n int, value interface{}) error {
	switch bt {
	case TypeInt8:
		vs, err := toInt64Slice(value, n)
		if err != nil {
			return err
		}
		for i, v := range vs {
			writeInt8(buf, off+i, int8(v))
		}
	case TypeUint8:
		vs, err := toUint64Slice(value, n)
		if err != nil {
			return err
		}
		for i, v := range vs {
			writeUint8(buf, off+i, uint8(v))
		}
	case TypeInt16:
		vs, err := toInt64Slice(value, n)
		if err != nil {
			return err
		}
		for i, v := range vs {
			writeInt16(buf, off+i*2, int16(v))
		}
	case TypeUint16:
		vs, err := toUint64Slice(value, n)
		if err != nil {
			return err
		}
		for i, v := range vs {
			writeUint16(buf, off+i*2, uint16(v))
		}
	case TypeInt32:
		vs, err := toInt64Slice(value, n)
		if err != nil {
			return err
		}
		for i, v := range vs {
			writeInt32(buf, off+i*4, int32(v))
		}
	case TypeUint32:
		vs, err := toUint64Slice(value, n)
		if err != nil {
			return err
		}
		for i, v := range vs {
			writeUint32(buf, off+i*4, uint32(v))
		}
	case TypeInt64:
		vs, err := toInt64Slice(value, n)
		if err != nil {
			return err
		}
		for i, v := range vs {
			writeInt64(buf, off+i*8, v)
		}
	case TypeUint64:
		vs, err := toUint64Slice(value, n)
		if err != nil {
			return err
		}
		for i, v := range vs {
			writeUint64(buf, off+i*8, v)
		}
	case TypeFloat:
		vs, err := toFloat64Slice(value, n)
		if err != nil {
			return err
		}
		for i, v := range vs {
			writeFloat32(buf, off+i*4, float32(v))
		}
	case TypeDouble:
		vs, err := toFloat64Slice(value, n)
		if err != nil {
			return err
		}
		for i, v := range vs {
			writeFloat64(buf, off+i*8, v)
		}
	default:
		return ErrFieldValueType
	}
	return nil
}
