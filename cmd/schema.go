// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/kazwalker/mavcodec/pkg/mavcodec"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect and validate message definitions",
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load --definitions and report compile diagnostics",
	Long: `Compiles the definition sets named by --definitions into a
MessageCatalog and reports either how many messages compiled or the
schema error that stopped compilation (duplicate id/name, unknown field
type). Use "schema list" for the per-message layout.`,
	RunE: runSchemaValidate,
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every message in --definitions with its compiled layout",
	RunE:  runSchemaList,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaValidateCmd)
	schemaCmd.AddCommand(schemaListCmd)
}

func runSchemaValidate(cmd *cobra.Command, args []string) error {
	docs, err := resolveDocuments()
	if err != nil {
		return err
	}
	version, err := resolveVersion()
	if err != nil {
		return err
	}

	catalog, err := mavcodec.Load(docs, version)
	if err != nil {
		var schemaErr *mavcodec.SchemaError
		if errors.As(err, &schemaErr) {
			fmt.Fprintf(os.Stderr, "FAIL: %s\n", schemaErr.Error())
			switch {
			case errors.Is(schemaErr.Kind, mavcodec.ErrDuplicateID):
				fmt.Fprintf(os.Stderr, "  message %q reuses an id already claimed by another message\n", schemaErr.Message)
			case errors.Is(schemaErr.Kind, mavcodec.ErrDuplicateName):
				fmt.Fprintf(os.Stderr, "  message name %q is claimed by more than one definition\n", schemaErr.Message)
			case errors.Is(schemaErr.Kind, mavcodec.ErrUnknownType):
				fmt.Fprintf(os.Stderr, "  message %q field %q has an unrecognized type token\n", schemaErr.Message, schemaErr.Field)
			}
			os.Exit(1)
		}
		return err
	}

	fmt.Printf("OK: %d messages compiled from %d definition set(s)\n", catalog.Len(), len(docs))
	return nil
}

func runSchemaList(cmd *cobra.Command, args []string) error {
	codec, err := newCodec()
	if err != nil {
		return err
	}

	messages := codec.Catalog().Messages()
	sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })

	for _, m := range messages {
		fmt.Printf("%3d  %-20s payload=%-3d crc_seed=0x%02X\n", m.ID, m.Name, m.PayloadLength, m.CRCSeed)
		for _, f := range m.Fields {
			if f.ArrayLength > 1 {
				fmt.Printf("       %-20s %s[%d]\n", f.Name, f.BaseType, f.ArrayLength)
			} else {
				fmt.Printf("       %-20s %s\n", f.Name, f.BaseType)
			}
		}
	}
	return nil
}
