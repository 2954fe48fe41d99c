// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// mavcodec - schema-driven framed telemetry/control codec CLI

package main

import (
	"fmt"
	"os"

	"github.com/kazwalker/mavcodec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
