// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

import (
	"fmt"
	"strconv"
	"strings"
)

// Document is a plain, typed stand-in for the document tree an external
// XML-dialect parser would hand the schema compiler. mavcodec never
// parses XML itself; Document is the contract it accepts from whatever
// parser a caller chooses.
type Document struct {
	ID       string
	Enums    []Enum
	Messages []MessageDef
}

// Enum is retained in the catalog for introspection by collaborators but
// is never consulted by the core codec.
type Enum struct {
	Name    string
	Entries []EnumEntry
}

// EnumEntry is one value of an Enum.
type EnumEntry struct {
	Name        string
	Value       int64
	Description string
}

// MessageDef is one <message> element: an id, a name, and fields in
// schema (author-visible) order.
type MessageDef struct {
	ID     int
	Name   string
	Fields []FieldDef
}

// FieldDef is one <field> element: a raw type token (e.g. "float",
// "char[16]", "uint8_t_mavlink_version") and a name.
type FieldDef struct {
	Type string
	Name string
}

// parseTypeToken splits a type token into its base type and array length,
// applying the source-dialect aliases and validating the grammar
// "<base>" or "<base>[<N>]" with N >= 1.
func parseTypeToken(token string) (BaseType, int, error) {
	base := token
	arrayLength := 1

	if open := strings.IndexByte(token, '['); open != -1 {
		if !strings.HasSuffix(token, "]") {
			return "", 0, fmt.Errorf("%w: malformed array token %q", ErrUnknownType, token)
		}
		base = token[:open]
		nStr := token[open+1 : len(token)-1]
		n, err := strconv.Atoi(nStr)
		if err != nil || n < 1 {
			return "", 0, fmt.Errorf("%w: invalid array length in %q", ErrUnknownType, token)
		}
		arrayLength = n
	}

	switch base {
	case aliasMavlinkVersion:
		base = string(TypeUint8)
	case aliasArray:
		base = string(TypeInt8)
	}

	bt := BaseType(base)
	if _, ok := typeSizes[bt]; !ok {
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownType, token)
	}

	return bt, arrayLength, nil
}
