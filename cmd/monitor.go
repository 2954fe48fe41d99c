// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/kazwalker/mavcodec/pkg/mavcodec"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	monitorTUI      bool
	monitorInterval int
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live statistics for a serial or WebSocket connection",
	Long: `Feeds a live connection through the frame parser and reports
running statistics: total/valid/checksum-fail/sequence-gap counts and
rates, plus a per-message-name breakdown.

Without --tui, statistics print every --interval seconds. With --tui, a
bubbletea dashboard replaces the periodic printout.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVar(&monitorTUI, "tui", false, "Show a live terminal dashboard instead of periodic text output")
	monitorCmd.Flags().IntVar(&monitorInterval, "interval", 5, "Seconds between statistics printouts (text mode only)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	codec, err := newCodec()
	if err != nil {
		return err
	}

	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if monitorTUI {
		return runMonitorTUI(codec, conn, connInfo)
	}
	return runMonitorText(codec, conn, connInfo)
}

func runMonitorText(codec *mavcodec.Codec, conn Connection, connInfo string) error {
	stats := mavcodec.NewStatistics()
	stats.Attach(codec.Dispatcher)

	counts := map[string]uint64{}
	codec.OnMessage(func(evt mavcodec.MessageEvent) { counts[evt.Name]++ })

	fmt.Printf("mavcodec monitor\nConnection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	go feedConnection(conn, codec)

	ticker := time.NewTicker(time.Duration(monitorInterval) * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		fmt.Print(stats.String())
		for name, n := range counts {
			fmt.Printf("  %-20s %d\n", name, n)
		}
		fmt.Println()
	}
	return nil
}

func feedConnection(conn Connection, codec *mavcodec.Codec) {
	buf := make([]byte, 256)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			if err == ErrConnectionClosed {
				fmt.Fprintln(os.Stderr, "connection closed")
				os.Exit(0)
			}
			fmt.Fprintf(os.Stderr, "read error: %v\n", err)
			time.Sleep(10 * time.Millisecond)
			continue
		}
		codec.Feed(buf[:n])
	}
}

func runMonitorTUI(codec *mavcodec.Codec, conn Connection, connInfo string) error {
	m := newMonitorModel(codec, connInfo)
	p := tea.NewProgram(m, tea.WithAltScreen())

	codec.OnMessage(func(evt mavcodec.MessageEvent) {
		p.Send(monitorMessageMsg{name: evt.Name})
	})
	codec.OnSequenceError(func(evt mavcodec.SequenceErrorEvent) {
		p.Send(monitorEventMsg{text: fmt.Sprintf("sequence gap of %d", evt.Gap), isError: true})
	})
	codec.OnChecksumFail(func(evt mavcodec.ChecksumFailEvent) {
		p.Send(monitorEventMsg{text: fmt.Sprintf("checksum fail on id %d", evt.ID), isError: true})
	})

	go feedConnection(conn, codec)

	_, err := p.Run()
	return err
}
