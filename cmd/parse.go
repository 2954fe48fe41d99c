// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"github.com/kazwalker/mavcodec/pkg/mavcodec"
	"github.com/spf13/cobra"
)

var (
	parseFile    string
	parseTimeout int
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Decode frames from a capture file, stdin, or a live connection",
	Long: `Feeds bytes from --file, stdin, or a live serial/WebSocket connection
through the frame parser and prints each decoded message and diagnostic
event as it arrives.

With --timeout set and a live connection, parse exits 0 as soon as the
first valid message decodes (useful as a connectivity check), or 1 if
the timeout elapses first.`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVar(&parseFile, "file", "", "Read a byte capture from this file instead of a live connection")
	parseCmd.Flags().IntVar(&parseTimeout, "timeout", 0, "Exit after this many seconds without a decoded message (live connections only, 0 disables)")
}

func runParse(cmd *cobra.Command, args []string) error {
	codec, err := newCodec()
	if err != nil {
		return err
	}

	codec.OnMessage(func(evt mavcodec.MessageEvent) {
		fmt.Printf("[%s] %-20s seq=%-3d sys=%-3d comp=%-3d %s\n",
			time.Now().Format("15:04:05.000"), evt.Name, evt.Header.Sequence,
			evt.Header.SystemID, evt.Header.ComponentID, formatFields(evt.Fields))
	})
	codec.OnSequenceError(func(evt mavcodec.SequenceErrorEvent) {
		fmt.Printf("[%s] sequence_error gap=%d\n", time.Now().Format("15:04:05.000"), evt.Gap)
	})
	codec.OnChecksumFail(func(evt mavcodec.ChecksumFailEvent) {
		fmt.Printf("[%s] checksum_fail id=%d computed=0x%04X received=0x%04X\n",
			time.Now().Format("15:04:05.000"), evt.ID, evt.Computed, evt.Received)
	})

	if parseFile != "" {
		data, err := os.ReadFile(parseFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", parseFile, err)
		}
		codec.Feed(data)
		return nil
	}

	if portName == "" && wsURL == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		codec.Feed(data)
		return nil
	}

	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("mavcodec parse\nConnection: %s\n", connInfo)
	if parseTimeout > 0 {
		fmt.Printf("Timeout: %d seconds\n", parseTimeout)
	}
	fmt.Println("Press Ctrl+C to exit")

	got := make(chan struct{}, 1)
	if parseTimeout > 0 {
		codec.OnMessage(func(mavcodec.MessageEvent) {
			select {
			case got <- struct{}{}:
			default:
			}
		})
	}

	readErr := make(chan error, 1)
	buf := make([]byte, 256)
	go func() {
		for {
			n, err := conn.Read(buf)
			if err != nil {
				readErr <- err
				return
			}
			codec.Feed(buf[:n])
		}
	}()

	if parseTimeout <= 0 {
		err := <-readErr
		if err == ErrConnectionClosed {
			log.Printf("Connection closed")
			return nil
		}
		return err
	}

	select {
	case <-got:
		return nil
	case err := <-readErr:
		if err == ErrConnectionClosed {
			os.Exit(2)
		}
		return err
	case <-time.After(time.Duration(parseTimeout) * time.Second):
		fmt.Fprintf(os.Stderr, "TIMEOUT: no valid message within %d seconds\n", parseTimeout)
		os.Exit(1)
	}
	return nil
}

func formatFields(fields mavcodec.FieldMap) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := ""
	for i, name := range names {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%s", name, formatFieldValue(fields[name]))
	}
	return out
}
