// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/kazwalker/mavcodec/pkg/mavcodec"
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Codec configuration flags
	systemID      int
	componentID   int
	versionFlag   string
	definitionSet []string
)

var rootCmd = &cobra.Command{
	Use:   "mavcodec",
	Short: "Schema-driven framed telemetry/control codec",
	Long: `mavcodec loads a set of message definitions, then parses or builds
framed wire messages against them.

Connection modes (parse/monitor only):
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the MAVCODEC_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.`,
	Version: "1.0.0",
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Codec configuration flags
	rootCmd.PersistentFlags().IntVar(&systemID, "system-id", 1, "System id used for Build and non-promiscuous Parse")
	rootCmd.PersistentFlags().IntVar(&componentID, "component-id", 1, "Component id used for Build and non-promiscuous Parse")
	rootCmd.PersistentFlags().StringVar(&versionFlag, "version", "v1.0", "Frame version: v1.0 or v0.9")
	rootCmd.PersistentFlags().StringSliceVar(&definitionSet, "definitions", []string{"common", "ardupilotmega"}, "Definition sets to load (common, ardupilotmega)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// resolveDocuments maps --definitions names to the built-in Document
// fixtures. A real deployment would instead point this at files produced
// by an XML-dialect parser; mavcodec itself never reads schema files.
func resolveDocuments() ([]mavcodec.Document, error) {
	docs := make([]mavcodec.Document, 0, len(definitionSet))
	for _, name := range definitionSet {
		switch name {
		case "common":
			docs = append(docs, mavcodec.CommonDocument())
		case "ardupilotmega":
			docs = append(docs, mavcodec.ArduPilotMegaDocument())
		default:
			return nil, fmt.Errorf("unknown definition set %q (known: common, ardupilotmega)", name)
		}
	}
	return docs, nil
}

// resolveVersion maps --version to a mavcodec.Version.
func resolveVersion() (mavcodec.Version, error) {
	switch versionFlag {
	case "v1.0", "1.0", "":
		return mavcodec.V1_0, nil
	case "v0.9", "0.9":
		return mavcodec.V0_9, nil
	default:
		return 0, fmt.Errorf("unknown --version %q (known: v1.0, v0.9)", versionFlag)
	}
}

// newCodec builds a Codec from the persistent flags.
func newCodec() (*mavcodec.Codec, error) {
	docs, err := resolveDocuments()
	if err != nil {
		return nil, err
	}
	version, err := resolveVersion()
	if err != nil {
		return nil, err
	}
	return mavcodec.NewCodec(docs, mavcodec.Config{
		SystemID:    byte(systemID),
		ComponentID: byte(componentID),
		Version:     version,
	})
}
