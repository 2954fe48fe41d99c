// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package mavcodec provides a transport-agnostic codec for a framed
// telemetry/control wire protocol historically used by small unmanned
// vehicles. It compiles a schema document tree into a message catalog,
// parses a byte stream into discrete decoded messages, and encodes
// outgoing field maps into wire-format frames.
//
// The package does not own a transport; callers feed it bytes read from
// a serial port, a WebSocket, or any other io.Reader and hand its output
// frames to the matching io.Writer. See cmd/ for a Cobra-based CLI that
// wires mavcodec to go.bug.st/serial and gorilla/websocket.
package mavcodec
