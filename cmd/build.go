// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	buildFields []string
	buildStdin  bool
	buildHex    bool
)

var buildCmd = &cobra.Command{
	Use:   "build <message>",
	Short: "Build one frame from field assignments and print it",
	Long: `Build constructs a single frame for the named message, either from
repeated --field name=value flags or from "name: value" lines read from
stdin (one field per line), and writes the frame to stdout.

Array fields take a comma-separated list ("1,2,3"); char fields take a
plain string.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringArrayVar(&buildFields, "field", nil, "name=value field assignment, may be repeated")
	buildCmd.Flags().BoolVar(&buildStdin, "stdin", false, "Read field assignments as \"name: value\" lines from stdin")
	buildCmd.Flags().BoolVar(&buildHex, "hex", false, "Print the frame as hex instead of writing raw bytes")
}

func runBuild(cmd *cobra.Command, args []string) error {
	messageName := args[0]

	codec, err := newCodec()
	if err != nil {
		return err
	}

	descriptor, ok := codec.Catalog().ByName(messageName)
	if !ok {
		return fmt.Errorf("unknown message %q", messageName)
	}

	assignments := map[string]string{}
	for _, kv := range buildFields {
		name, value, err := parseFieldAssignment(kv)
		if err != nil {
			return err
		}
		assignments[name] = value
	}
	if buildStdin {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			i := strings.IndexByte(line, ':')
			if i < 0 {
				return fmt.Errorf("malformed stdin line, expected \"name: value\": %q", line)
			}
			name := strings.TrimSpace(line[:i])
			value := strings.TrimSpace(line[i+1:])
			assignments[name] = value
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	fields := make(map[string]interface{}, len(assignments))
	for name, raw := range assignments {
		value, err := convertFieldValue(descriptor, name, raw)
		if err != nil {
			return err
		}
		fields[name] = value
	}

	frame, err := codec.Build(messageName, fields)
	if err != nil {
		return err
	}
	for _, w := range codec.Builder.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if buildHex {
		fmt.Println(hex.EncodeToString(frame))
		return nil
	}
	_, err = os.Stdout.Write(frame)
	return err
}
