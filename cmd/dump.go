// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/kazwalker/mavcodec/pkg/mavcodec"
	"github.com/spf13/cobra"
)

var dumpFile string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Decode the first frame in a capture and print it as CBOR",
	Long: `Reads a byte capture (--file or stdin), decodes the first message
that parses, and prints its field map CBOR-encoded as a hex string. This
is a compact, non-JSON alternative to "parse" for piping decoded fields
into another tool.`,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVar(&dumpFile, "file", "", "Read a byte capture from this file instead of stdin")
}

func runDump(cmd *cobra.Command, args []string) error {
	codec, err := newCodec()
	if err != nil {
		return err
	}

	var data []byte
	if dumpFile != "" {
		data, err = os.ReadFile(dumpFile)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading capture: %w", err)
	}

	var found *mavcodec.MessageEvent
	codec.OnMessage(func(evt mavcodec.MessageEvent) {
		if found == nil {
			e := evt
			found = &e
		}
	})
	codec.Feed(data)

	if found == nil {
		return fmt.Errorf("no valid message decoded from capture")
	}

	encoded, err := cbor.Marshal(map[string]interface{}{
		"name":   found.Name,
		"seq":    found.Header.Sequence,
		"sysid":  found.Header.SystemID,
		"compid": found.Header.ComponentID,
		"fields": map[string]interface{}(found.Fields),
	})
	if err != nil {
		return fmt.Errorf("encoding CBOR: %w", err)
	}

	fmt.Println(hex.EncodeToString(encoded))
	return nil
}
