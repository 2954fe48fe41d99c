// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

import "reflect"

// Field values accepted from a caller-supplied FieldMap are coerced
// through these helpers rather than requiring one exact Go type per
// field, since callers build field maps from CLI flags, decoded
// round-trip values, and hand-written fixtures alike.

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	default:
		return 0, ErrFieldValueType
	}
}

func toUint64(v interface{}) (uint64, error) {
	i, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	return uint64(i), nil
}

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		i, err := toInt64(v)
		if err != nil {
			return 0, ErrFieldValueType
		}
		return float64(i), nil
	}
}

// toInt64Slice, toUint64Slice, toFloat64Slice accept either a typed Go
// slice (produced by the parser's decodeArray, for round-tripping) or a
// []interface{} (produced by hand-written field maps).

func toInt64Slice(v interface{}, n int) ([]int64, error) {
	out := make([]int64, n)
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.Len() != n {
		return nil, ErrFieldValueType
	}
	for i := 0; i < n; i++ {
		val, err := toInt64(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

func toUint64Slice(v interface{}, n int) ([]uint64, error) {
	out := make([]uint64, n)
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.Len() != n {
		return nil, ErrFieldValueType
	}
	for i := 0; i < n; i++ {
		val, err := toUint64(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

func toFloat64Slice(v interface{}, n int) ([]float64, error) {
	out := make([]float64, n)
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.Len() != n {
		return nil, ErrFieldValueType
	}
	for i := 0; i < n; i++ {
		val, err := toFloat64(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}
