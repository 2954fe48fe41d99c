// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

// Parser is a single-threaded, cooperative, byte-driven state machine.
// Feed may be called with arbitrarily chopped byte chunks; decoded
// messages and diagnostics are dispatched synchronously, in
// byte-arrival order, from within Feed.
//
// A Parser is not safe for concurrent mutation from multiple
// goroutines; the catalog it references may be shared freely once
// ready.
type Parser struct {
	catalog    *MessageCatalog
	dispatcher *Dispatcher
	version    Version

	systemID    byte
	componentID byte

	buffer        []byte
	cursor        int
	payloadLength int
	lastSequence  byte
	haveSequence  bool
	state         parserState
}

// NewParser creates a Parser bound to catalog, dispatching events on
// dispatcher. systemID/componentID of 0/0 puts the parser in
// promiscuous mode: it accepts frames from any origin.
func NewParser(catalog *MessageCatalog, dispatcher *Dispatcher, version Version, systemID, componentID byte) *Parser {
	return &Parser{
		catalog:     catalog,
		dispatcher:  dispatcher,
		version:     version,
		systemID:    systemID,
		componentID: componentID,
		buffer:      make([]byte, bufferCapacity),
		state:       stateIdle,
	}
}

// Feed processes an arbitrarily-sized chunk of bytes in arrival order.
func (p *Parser) Feed(data []byte) {
	for _, b := range data {
		p.feedByte(b)
	}
}

func (p *Parser) feedByte(b byte) {
	switch p.state {
	case stateIdle:
		if b == startByte(p.version) {
			p.buffer[0] = b
			p.cursor = 1
			p.state = stateLen
		}

	case stateLen:
		p.buffer[1] = b
		p.cursor = 2
		p.payloadLength = int(b)
		p.state = stateBody

	case stateBody:
		p.buffer[p.cursor] = b
		p.cursor++
		if p.cursor == p.payloadLength+frameOverheadBytes {
			p.checkAndDispatch()
			p.resetToIdle()
		}
	}
}

func (p *Parser) resetToIdle() {
	p.state = stateIdle
	p.cursor = 0
	p.payloadLength = 0
}

// checkAndDispatch runs message-lookup, checksum, and sequence
// validation against the frame currently held in p.buffer, and
// dispatches the resulting event.
func (p *Parser) checkAndDispatch() {
	l := p.payloadLength
	msgID := p.buffer[5]

	descriptor, known := p.catalog.ByID(int(msgID))
	var seed byte
	if known {
		seed = descriptor.CRCSeed
	}

	checksummable := p.buffer[1 : headerOverheadBytes+l]
	computed := CalculateCRC(checksummable)
	if p.version == V1_0 {
		computed = accumulateByte(computed, seed)
	}

	received := uint16(p.buffer[headerOverheadBytes+l]) | uint16(p.buffer[headerOverheadBytes+l+1])<<8

	if computed != received {
		if p.dispatcher != nil {
			p.dispatcher.dispatchChecksumFail(ChecksumFailEvent{
				ID:       msgID,
				Seed:     seed,
				Computed: computed,
				Received: received,
			})
		}
		return
	}

	seq := p.buffer[2]
	if !p.haveSequence {
		// No prior frame to compare against: nothing to gap-check yet.
		p.haveSequence = true
	} else if p.lastSequence == 255 && seq == 0 {
		// Legitimate wraparound, not a gap.
	} else {
		diff := (int(seq) - int(p.lastSequence)) % 256
		if diff < 0 {
			diff += 256
		}
		if diff != 1 {
			gap := byte((diff - 1 + 256) % 256)
			if p.dispatcher != nil {
				p.dispatcher.dispatchSequenceError(SequenceErrorEvent{Gap: gap})
			}
		}
	}
	p.lastSequence = seq

	sysid := p.buffer[3]
	compid := p.buffer[4]
	promiscuous := p.systemID == 0 && p.componentID == 0
	if !promiscuous && (sysid != p.systemID || compid != p.componentID) {
		return
	}

	if !known {
		return
	}

	fields := decodeFields(descriptor, p.buffer[headerOverheadBytes:headerOverheadBytes+l])
	header := FrameHeader{Sequence: seq, SystemID: sysid, ComponentID: compid, MessageID: msgID}
	if p.dispatcher != nil {
		p.dispatcher.dispatchMessage(MessageEvent{Name: descriptor.Name, Header: header, Fields: fields})
	}
}

// decodeFields reads payload according to descriptor.Fields (layout
// order), producing a name-keyed FieldMap.
func decodeFields(descriptor *MessageDescriptor, payload []byte) FieldMap {
	fields := make(FieldMap, len(descriptor.Fields))
	offset := 0
	for _, f := range descriptor.Fields {
		if f.BaseType == TypeChar {
			fields[f.Name] = trimCharArray(payload[offset : offset+f.TotalSize])
			offset += f.TotalSize
			continue
		}

		if f.ArrayLength == 1 {
			fields[f.Name] = decodeScalar(f.BaseType, payload, offset)
			offset += f.TypeSize
			continue
		}

		fields[f.Name] = decodeArray(f.BaseType, payload, offset, f.ArrayLength)
		offset += f.TotalSize
	}
	return fields
}

func decodeScalar(bt BaseType, buf []byte, off int) interface{} {
	switch bt {
	case TypeInt8:
		return readInt8(buf, off)
	case TypeUint8:
		return readUint8(buf, off)
	case TypeInt16:
		return readInt16(buf, off)
	case TypeUint16:
		return readUint16(buf, off)
	case TypeInt32:
		return readInt32(buf, off)
	case TypeUint32:
		return readUint32(buf, off)
	case TypeInt64:
		return readInt64(buf, off)
	case TypeUint64:
		return readUint64(buf, off)
	case TypeFloat:
		return readFloat32(buf, off)
	case TypeDouble:
		return readFloat64(buf, off)
	default:
		return nil
	}
}

func decodeArray(bt BaseType, buf []byte, off int, n int) interface{} {
	switch bt {
	case TypeInt8:
		out := make([]int8, n)
		for i := range out {
			out[i] = readInt8(buf, off+i)
		}
		return out
	case TypeUint8:
		out := make([]uint8, n)
		for i := range out {
			out[i] = readUint8(buf, off+i)
		}
		return out
	case TypeInt16:
		out := make([]int16, n)
		for i := range out {
			out[i] = readInt16(buf, off+i*2)
		}
		return out
	case TypeUint16:
		out := make([]uint16, n)
		for i := range out {
			out[i] = readUint16(buf, off+i*2)
		}
		return out
	case TypeInt32:
		out := make([]int32, n)
		for i := range out {
			out[i] = readInt32(buf, off+i*4)
		}
		return out
	case TypeUint32:
		out := make([]uint32, n)
		for i := range out {
			out[i] = readUint32(buf, off+i*4)
		}
		return out
	case TypeInt64:
		out := make([]int64, n)
		for i := range out {
			out[i] = readInt64(buf, off+i*8)
		}
		return out
	case TypeUint64:
		out := make([]uint64, n)
		for i := range out {
			out[i] = readUint64(buf, off+i*8)
		}
		return out
	case TypeFloat:
		out := make([]float32, n)
		for i := range out {
			out[i] = readFloat32(buf, off+i*4)
		}
		return out
	case TypeDouble:
		out := make([]float64, n)
		for i := range out {
			out[i] = readFloat64(buf, off+i*8)
		}
		return out
	default:
		return nil
	}
}
