// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

// FieldDescriptor describes one field of one message, after type
// normalization and size computation but before or after layout
// reordering depending on which slice of a MessageDescriptor it lives in.
type FieldDescriptor struct {
	Name           string
	BaseType       BaseType
	ArrayLength    int
	TypeSize       int
	TotalSize      int
	SourcePosition int
}

// MessageDescriptor describes one message, with fields stored in
// wire-layout order (see layout.go), not schema order.
type MessageDescriptor struct {
	ID            int
	Name          string
	Fields        []FieldDescriptor
	PayloadLength int
	CRCSeed       byte
}

// MessageCatalog indexes every MessageDescriptor compiled from a set of
// definition documents, by both id and name. Once returned from Load it
// is immutable and safe to share across codec instances and readers.
type MessageCatalog struct {
	byID   map[int]*MessageDescriptor
	byName map[string]*MessageDescriptor
}

// ByID looks up a descriptor by message id.
func (c *MessageCatalog) ByID(id int) (*MessageDescriptor, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// ByName looks up a descriptor by message name.
func (c *MessageCatalog) ByName(name string) (*MessageDescriptor, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Messages returns every descriptor in the catalog, in unspecified order.
func (c *MessageCatalog) Messages() []*MessageDescriptor {
	out := make([]*MessageDescriptor, 0, len(c.byID))
	for _, d := range c.byID {
		out = append(out, d)
	}
	return out
}

// Len reports how many messages are in the catalog.
func (c *MessageCatalog) Len() int {
	return len(c.byID)
}

// FieldMap is a decoded or to-be-encoded message body, keyed by field name.
// Scalar values are the Go-native type for the field's BaseType (uint8,
// int32, float64, ...); array values are slices of that type, except
// char arrays which decode to string.
type FieldMap map[string]interface{}

// FrameHeader carries the framing bytes of one validated frame.
type FrameHeader struct {
	Sequence    byte
	SystemID    byte
	ComponentID byte
	MessageID   byte
}
