// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

import (
	"errors"
	"testing"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec(DefaultDocuments(), Config{SystemID: 1, ComponentID: 1, Version: V1_0})
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	return codec
}

// TestBuild_Attitude pins spec scenario 1: the exact 36-byte frame and
// header prefix for a starting sequence of 0.
func TestBuild_Attitude(t *testing.T) {
	codec := newTestCodec(t)

	frame, err := codec.Build("ATTITUDE", FieldMap{
		"time_boot_ms": uint32(30),
		"roll":         float32(0.1),
		"pitch":        float32(0.2),
		"yaw":          float32(0.3),
		"rollspeed":    float32(0.4),
		"pitchspeed":   float32(0.5),
		"yawspeed":     float32(0.6),
	})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if len(frame) != 36 {
		t.Fatalf("frame length = %d, want 36", len(frame))
	}
	wantPrefix := []byte{0xFE, 0x1C, 0x00, 0x01, 0x01, 0x1E}
	for i, b := range wantPrefix {
		if frame[i] != b {
			t.Errorf("frame[%d] = 0x%02X, want 0x%02X", i, frame[i], b)
		}
	}

	crc := CalculateCRC(frame[1 : len(frame)-2])
	crc = accumulateByte(crc, 0xD1)
	received := uint16(frame[len(frame)-2]) | uint16(frame[len(frame)-1])<<8
	if crc != received {
		t.Errorf("trailer CRC 0x%04X does not validate against seed, computed 0x%04X", received, crc)
	}
}

// TestBuild_ParamValuePadsCharArrayWithoutWarning covers spec scenario 2:
// param_id encodes as "MY_PI" followed by 11 zero bytes, and Warnings
// stays empty because the value fits.
func TestBuild_ParamValuePadsCharArrayWithoutWarning(t *testing.T) {
	codec := newTestCodec(t)

	frame, err := codec.Build("PARAM_VALUE", FieldMap{
		"param_id":     "MY_PI",
		"param_value":  float32(3.14159),
		"param_type":   uint8(5),
		"param_count":  uint16(100),
		"param_index":  uint16(55),
	})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(codec.Builder.Warnings()) != 0 {
		t.Errorf("expected no warnings for a value that fits, got %v", codec.Builder.Warnings())
	}

	descriptor, _ := codec.Catalog().ByName("PARAM_VALUE")
	payload := frame[headerOverheadBytes : headerOverheadBytes+descriptor.PayloadLength]

	var idOffset int
	for _, f := range descriptor.Fields {
		if f.Name == "param_id" {
			break
		}
		idOffset += f.TotalSize
	}
	idBytes := payload[idOffset : idOffset+16]
	want := append([]byte("MY_PI"), make([]byte, 11)...)
	for i := range want {
		if idBytes[i] != want[i] {
			t.Fatalf("param_id bytes = % X, want % X", idBytes, want)
		}
	}
}

func TestBuild_CharArrayOverflowTruncatesAndWarns(t *testing.T) {
	codec := newTestCodec(t)

	_, err := codec.Build("PARAM_VALUE", FieldMap{
		"param_id":    "THIS_NAME_IS_WAY_TOO_LONG_FOR_16",
		"param_value": float32(1.0),
		"param_type":  uint8(0),
		"param_count": uint16(1),
		"param_index": uint16(0),
	})
	if err != nil {
		t.Fatalf("Build should truncate rather than fail, got error: %v", err)
	}
	if len(codec.Builder.Warnings()) != 1 {
		t.Fatalf("expected one truncation warning, got %v", codec.Builder.Warnings())
	}
}

func TestBuild_MissingFieldFails(t *testing.T) {
	codec := newTestCodec(t)

	_, err := codec.Build("ATTITUDE", FieldMap{"time_boot_ms": uint32(1)})
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestBuild_UnknownMessageFails(t *testing.T) {
	codec := newTestCodec(t)

	_, err := codec.Build("NOT_A_REAL_MESSAGE", FieldMap{})
	if !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("expected ErrUnknownMessage, got %v", err)
	}
}

func TestBuild_NotConfiguredFails(t *testing.T) {
	catalog, err := Load([]Document{CommonDocument()}, V1_0)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	builder := NewBuilder(catalog, V1_0, 0, 0)

	_, err = builder.BuildByName("ATTITUDE", FieldMap{
		"time_boot_ms": uint32(1), "roll": float32(0), "pitch": float32(0),
		"yaw": float32(0), "rollspeed": float32(0), "pitchspeed": float32(0), "yawspeed": float32(0),
	})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

// TestBuild_SequenceWraps checks that N builds starting from s yield
// (s, s+1, ..., s+N-1) mod 256, and a failed build never advances the
// counter.
func TestBuild_SequenceWraps(t *testing.T) {
	codec := newTestCodec(t)
	catalog, _ := Load([]Document{CommonDocument()}, V1_0)
	builder := NewBuilder(catalog, V1_0, 1, 1)
	fields := FieldMap{
		"param_id": "X", "param_value": float32(0), "param_type": uint8(0),
		"param_count": uint16(0), "param_index": uint16(0),
	}

	builder.nextSequence = 254
	for i, want := range []byte{254, 255, 0, 1} {
		frame, err := builder.BuildByName("PARAM_VALUE", fields)
		if err != nil {
			t.Fatalf("build %d: %v", i, err)
		}
		if frame[2] != want {
			t.Errorf("build %d sequence = %d, want %d", i, frame[2], want)
		}
	}

	// A failed build (missing field) must not advance nextSequence.
	before := builder.nextSequence
	if _, err := builder.BuildByName("PARAM_VALUE", FieldMap{}); err == nil {
		t.Fatal("expected build to fail on missing fields")
	}
	if builder.nextSequence != before {
		t.Errorf("nextSequence advanced on failed build: %d != %d", builder.nextSequence, before)
	}
	_ = codec
}

func TestBuild_IdempotentModuloSequenceByte(t *testing.T) {
	catalog, _ := Load([]Document{CommonDocument()}, V1_0)
	b1 := NewBuilder(catalog, V1_0, 1, 1)
	b2 := NewBuilder(catalog, V1_0, 1, 1)
	fields := FieldMap{
		"time_boot_ms": uint32(42), "roll": float32(1), "pitch": float32(2),
		"yaw": float32(3), "rollspeed": float32(4), "pitchspeed": float32(5), "yawspeed": float32(6),
	}

	f1, err1 := b1.BuildByName("ATTITUDE", fields)
	f2, err2 := b2.BuildByName("ATTITUDE", fields)
	if err1 != nil || err2 != nil {
		t.Fatalf("build errors: %v, %v", err1, err2)
	}
	for i := range f1 {
		if i == 2 {
			continue // sequence byte
		}
		if f1[i] != f2[i] {
			t.Errorf("frames diverged at byte %d: 0x%02X != 0x%02X", i, f1[i], f2[i])
		}
	}
}
