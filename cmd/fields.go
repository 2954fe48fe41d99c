// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kazwalker/mavcodec/pkg/mavcodec"
)

// parseFieldAssignment splits "name=value" into its two halves.
func parseFieldAssignment(s string) (name, value string, err error) {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return "", "", fmt.Errorf("expected name=value, got %q", s)
	}
	return s[:i], s[i+1:], nil
}

// convertFieldValue converts the raw string form of one --field flag into
// the Go value type Builder.Build expects for that field, per the field
// descriptor's BaseType and ArrayLength.
func convertFieldValue(descriptor *mavcodec.MessageDescriptor, name, raw string) (interface{}, error) {
	for _, f := range descriptor.Fields {
		if f.Name != name {
			continue
		}
		if f.BaseType == mavcodec.TypeChar {
			return raw, nil
		}
		if f.ArrayLength == 1 {
			return convertScalar(f.BaseType, raw)
		}
		parts := strings.Split(raw, ",")
		if len(parts) != f.ArrayLength {
			return nil, fmt.Errorf("field %q: expected %d comma-separated values, got %d", name, f.ArrayLength, len(parts))
		}
		return convertArray(f.BaseType, parts)
	}
	return nil, fmt.Errorf("message %q has no field %q", descriptor.Name, name)
}

func convertScalar(bt mavcodec.BaseType, raw string) (interface{}, error) {
	switch bt {
	case mavcodec.TypeInt8, mavcodec.TypeInt16, mavcodec.TypeInt32, mavcodec.TypeInt64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as integer: %w", raw, err)
		}
		return v, nil
	case mavcodec.TypeUint8, mavcodec.TypeUint16, mavcodec.TypeUint32, mavcodec.TypeUint64:
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as unsigned integer: %w", raw, err)
		}
		return v, nil
	case mavcodec.TypeFloat, mavcodec.TypeDouble:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as float: %w", raw, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported base type %q", bt)
	}
}

func convertArray(bt mavcodec.BaseType, parts []string) (interface{}, error) {
	switch bt {
	case mavcodec.TypeInt8, mavcodec.TypeInt16, mavcodec.TypeInt32, mavcodec.TypeInt64:
		out := make([]int64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %q as integer: %w", p, err)
			}
			out[i] = v
		}
		return out, nil
	case mavcodec.TypeUint8, mavcodec.TypeUint16, mavcodec.TypeUint32, mavcodec.TypeUint64:
		out := make([]uint64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %q as unsigned integer: %w", p, err)
			}
			out[i] = v
		}
		return out, nil
	case mavcodec.TypeFloat, mavcodec.TypeDouble:
		out := make([]float64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %q as float: %w", p, err)
			}
			out[i] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported base type %q", bt)
	}
}

// formatFieldValue renders a decoded field value for human-readable output.
func formatFieldValue(v interface{}) string {
	return fmt.Sprintf("%v", v)
}
