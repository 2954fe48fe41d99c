// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

import (
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// TestFuzzParser_RandomBytes feeds random bytes to the parser and
// verifies it never panics, regardless of how garbled the stream is.
func TestFuzzParser_RandomBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	catalog, err := Load(DefaultDocuments(), V1_0)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	for i := 0; i < rounds; i++ {
		parser := NewParser(catalog, NewDispatcher(), V1_0, 1, 1)
		length := rng.Intn(512) + 1
		data := make([]byte, length)
		rng.Read(data)
		parser.Feed(data)
	}
}

// TestFuzzParser_CorruptedFrames builds valid frames and then corrupts a
// random byte, verifying the parser surfaces checksum_fail or silently
// discards rather than panicking.
func TestFuzzParser_CorruptedFrames(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	catalog, err := Load([]Document{CommonDocument()}, V1_0)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	builder := NewBuilder(catalog, V1_0, 1, 1)

	for i := 0; i < rounds; i++ {
		fields := FieldMap{
			"time_boot_ms": uint32(rng.Uint32()),
			"roll":         rng.Float32(),
			"pitch":        rng.Float32(),
			"yaw":          rng.Float32(),
			"rollspeed":    rng.Float32(),
			"pitchspeed":   rng.Float32(),
			"yawspeed":     rng.Float32(),
		}
		frame, err := builder.BuildByName("ATTITUDE", fields)
		if err != nil {
			t.Fatalf("round %d: build error: %v", i, err)
		}

		idx := rng.Intn(len(frame))
		frame[idx] ^= byte(rng.Intn(255) + 1)

		parser := NewParser(catalog, NewDispatcher(), V1_0, 1, 1)
		parser.Feed(frame) // must not panic regardless of which byte flipped
	}
}

// TestFuzzParser_TruncatedAndExtendedFrames feeds valid frames with
// random bytes inserted or removed, verifying no panic.
func TestFuzzParser_TruncatedAndExtendedFrames(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	catalog, err := Load([]Document{CommonDocument()}, V1_0)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	builder := NewBuilder(catalog, V1_0, 1, 1)

	for i := 0; i < rounds; i++ {
		frame, err := builder.BuildByName("PARAM_VALUE", FieldMap{
			"param_id": "X", "param_value": rng.Float32(), "param_type": uint8(rng.Intn(256)),
			"param_count": uint16(rng.Intn(65536)), "param_index": uint16(rng.Intn(65536)),
		})
		if err != nil {
			t.Fatalf("round %d: build error: %v", i, err)
		}

		mutated := append([]byte{}, frame...)
		switch rng.Intn(2) {
		case 0: // truncate
			cut := rng.Intn(len(mutated))
			mutated = mutated[:cut]
		case 1: // extend with junk
			extra := make([]byte, rng.Intn(8)+1)
			rng.Read(extra)
			mutated = append(mutated, extra...)
		}

		parser := NewParser(catalog, NewDispatcher(), V1_0, 1, 1)
		parser.Feed(mutated)
	}
}

// TestFuzzCRC_Deterministic checks that random data hashes
// deterministically: two CRCs over the same bytes always agree.
func TestFuzzCRC_Deterministic(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		length := rng.Intn(1000) + 1
		data := make([]byte, length)
		rng.Read(data)

		crc1 := CalculateCRC(data)
		crc2 := CalculateCRC(data)
		if crc1 != crc2 {
			t.Errorf("round %d: CRC not deterministic: 0x%04X != 0x%04X", i, crc1, crc2)
		}
	}
}

// TestFuzzBuild_RandomFieldsNeverPanics drives the builder with random
// field values across every message in the default catalog.
func TestFuzzBuild_RandomFieldsNeverPanics(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	catalog, err := Load(DefaultDocuments(), V1_0)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	builder := NewBuilder(catalog, V1_0, 1, 1)

	for i := 0; i < rounds; i++ {
		for _, descriptor := range catalog.Messages() {
			fields := randomFieldMap(rng, descriptor)
			if _, err := builder.Build(descriptor.ID, fields); err != nil {
				t.Errorf("round %d: message %q: unexpected build error: %v", i, descriptor.Name, err)
			}
		}
	}
}

func randomFieldMap(rng *rand.Rand, descriptor *MessageDescriptor) FieldMap {
	fields := make(FieldMap, len(descriptor.Fields))
	for _, f := range descriptor.Fields {
		if f.BaseType == TypeChar {
			fields[f.Name] = "x"
			continue
		}
		if f.ArrayLength == 1 {
			fields[f.Name] = randomScalar(rng, f.BaseType)
			continue
		}
		fields[f.Name] = randomArray(rng, f.BaseType, f.ArrayLength)
	}
	return fields
}

func randomScalar(rng *rand.Rand, bt BaseType) interface{} {
	switch bt {
	case TypeInt8:
		return int8(rng.Intn(256))
	case TypeUint8:
		return uint8(rng.Intn(256))
	case TypeInt16:
		return int16(rng.Intn(65536))
	case TypeUint16:
		return uint16(rng.Intn(65536))
	case TypeInt32:
		return rng.Int31()
	case TypeUint32:
		return rng.Uint32()
	case TypeInt64:
		return rng.Int63()
	case TypeUint64:
		return rng.Uint64()
	case TypeFloat:
		return rng.Float32()
	case TypeDouble:
		return rng.Float64()
	default:
		return uint8(0)
	}
}

func randomArray(rng *rand.Rand, bt BaseType, n int) interface{} {
	switch bt {
	case TypeInt8:
		out := make([]int8, n)
		for i := range out {
			out[i] = int8(rng.Intn(256))
		}
		return out
	case TypeUint8:
		out := make([]uint8, n)
		for i := range out {
			out[i] = uint8(rng.Intn(256))
		}
		return out
	case TypeInt16:
		out := make([]int16, n)
		for i := range out {
			out[i] = int16(rng.Intn(65536))
		}
		return out
	case TypeUint16:
		out := make([]uint16, n)
		for i := range out {
			out[i] = uint16(rng.Intn(65536))
		}
		return out
	case TypeInt32:
		out := make([]int32, n)
		for i := range out {
			out[i] = rng.Int31()
		}
		return out
	case TypeUint32:
		out := make([]uint32, n)
		for i := range out {
			out[i] = rng.Uint32()
		}
		return out
	case TypeInt64:
		out := make([]int64, n)
		for i := range out {
			out[i] = rng.Int63()
		}
		return out
	case TypeUint64:
		out := make([]uint64, n)
		for i := range out {
			out[i] = rng.Uint64()
		}
		return out
	case TypeFloat:
		out := make([]float32, n)
		for i := range out {
			out[i] = rng.Float32()
		}
		return out
	case TypeDouble:
		out := make([]float64, n)
		for i := range out {
			out[i] = rng.Float64()
		}
		return out
	default:
		return make([]uint8, n)
	}
}
