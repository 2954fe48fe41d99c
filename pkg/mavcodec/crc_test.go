// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

import "testing"

func TestCalculateCRC_Empty(t *testing.T) {
	crc := CalculateCRC([]byte{})
	if crc != crcInitial {
		t.Errorf("CRC of empty data should be initial value, got 0x%04X", crc)
	}
}

func TestCalculateCRC_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint16
	}{
		{
			name:     "ASCII '123456789'",
			data:     []byte("123456789"),
			expected: 0x6F91, // X.25 check value, distinct from CRC-16-CCITT's 0x29B1
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crc := CalculateCRC(tt.data)
			if crc != tt.expected {
				t.Errorf("CRC mismatch: expected 0x%04X, got 0x%04X", tt.expected, crc)
			}
		})
	}
}

func TestCalculateCRC_Deterministic(t *testing.T) {
	data := []byte{0xFE, 0x1C, 0x00, 0x01, 0x01, 0x1E}
	crc1 := CalculateCRC(data)
	crc2 := CalculateCRC(data)
	if crc1 != crc2 {
		t.Errorf("CRC should be deterministic: 0x%04X != 0x%04X", crc1, crc2)
	}
}

func TestAccumulateString_MatchesByteLoop(t *testing.T) {
	s := "ATTITUDE "
	byByte := crcInitial
	for i := 0; i < len(s); i++ {
		byByte = accumulateByte(byByte, s[i])
	}
	byString := accumulateString(crcInitial, s)
	if byByte != byString {
		t.Errorf("accumulateString diverged from per-byte accumulation: 0x%04X != 0x%04X", byString, byByte)
	}
}
