// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

import (
	"fmt"
	"time"
)

// Statistics tracks frame counts and error rates for one Codec/Parser,
// independent of any particular message set. Attach it with
// Statistics.Attach so it updates from the same Dispatcher the caller's
// own subscribers use.
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	TotalMessages  uint64
	ValidMessages  uint64
	SequenceErrors uint64
	ChecksumFails  uint64

	MessageRate float64
	ErrorRate   float64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{StartTime: now, LastUpdateTime: now}
}

// Attach subscribes the tracker to dispatcher's message and diagnostic
// channels.
func (s *Statistics) Attach(dispatcher *Dispatcher) {
	dispatcher.OnMessage(func(MessageEvent) {
		s.TotalMessages++
		s.ValidMessages++
		s.LastUpdateTime = time.Now()
	})
	dispatcher.OnSequenceError(func(SequenceErrorEvent) {
		s.SequenceErrors++
		s.LastUpdateTime = time.Now()
	})
	dispatcher.OnChecksumFail(func(ChecksumFailEvent) {
		s.TotalMessages++
		s.ChecksumFails++
		s.LastUpdateTime = time.Now()
	})
}

// CalculateRates recomputes MessageRate and ErrorRate from elapsed time.
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed <= 0 {
		return
	}
	s.MessageRate = float64(s.TotalMessages) / elapsed
	s.ErrorRate = float64(s.SequenceErrors+s.ChecksumFails) / elapsed
}

// String renders a human-readable summary of the tracked counters.
func (s *Statistics) String() string {
	s.CalculateRates()

	var validPercent, checksumPercent float64
	if s.TotalMessages > 0 {
		validPercent = float64(s.ValidMessages) * 100.0 / float64(s.TotalMessages)
		checksumPercent = float64(s.ChecksumFails) * 100.0 / float64(s.TotalMessages)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Messages:   %8d\n", s.TotalMessages)
	result += fmt.Sprintf("Valid Messages:   %8d (%.1f%%)\n", s.ValidMessages, validPercent)
	if s.ChecksumFails > 0 {
		result += fmt.Sprintf("Checksum Fails:   %8d (%.1f%%)\n", s.ChecksumFails, checksumPercent)
	}
	if s.SequenceErrors > 0 {
		result += fmt.Sprintf("Sequence Errors:  %8d\n", s.SequenceErrors)
	}
	result += fmt.Sprintf("Message Rate:     %8.1f msg/sec\n", s.MessageRate)
	result += fmt.Sprintf("Error Rate:       %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"
	return result
}

// Reset zeroes all counters and restarts the rate window.
func (s *Statistics) Reset() {
	now := time.Now()
	*s = Statistics{StartTime: now, LastUpdateTime: now}
}
