// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

// Codec composes the schema Loader, Frame Parser, and Frame Builder
// around one MessageCatalog and one Dispatcher, the way a transport
// layer (serial or WebSocket, see cmd/connection.go) actually uses this
// package: load a catalog once, then Feed bytes in and Build frames out
// for as long as the link is open.
type Codec struct {
	Loader     *Loader
	Dispatcher *Dispatcher
	Parser     *Parser
	Builder    *Builder

	catalog *MessageCatalog
}

// Config carries the options needed to construct a Codec: the local
// origin's system/component IDs and the wire version to speak.
type Config struct {
	SystemID    byte
	ComponentID byte
	Version     Version
}

// NewCodec compiles definitions into a catalog and wires a Parser and
// Builder to it, sharing one Dispatcher for message/diagnostic events.
// The ready signal stays on the Loader (see OnReady).
func NewCodec(definitions []Document, cfg Config) (*Codec, error) {
	loader := NewLoader()
	catalog, err := loader.Load(definitions, cfg.Version)
	if err != nil {
		return nil, err
	}

	dispatcher := NewDispatcher()
	return &Codec{
		Loader:     loader,
		Dispatcher: dispatcher,
		Parser:     NewParser(catalog, dispatcher, cfg.Version, cfg.SystemID, cfg.ComponentID),
		Builder:    NewBuilder(catalog, cfg.Version, cfg.SystemID, cfg.ComponentID),
		catalog:    catalog,
	}, nil
}

// Catalog returns the compiled MessageCatalog.
func (c *Codec) Catalog() *MessageCatalog {
	return c.catalog
}

// Feed drives the Frame Parser with a chunk of transport bytes.
func (c *Codec) Feed(data []byte) {
	c.Parser.Feed(data)
}

// Build encodes fields for the message named name into a Frame.
func (c *Codec) Build(name string, fields FieldMap) (Frame, error) {
	return c.Builder.BuildByName(name, fields)
}

// OnReady registers fn for the one-shot catalog-ready signal. Since
// NewCodec only returns after the catalog is compiled, fn always fires
// immediately; OnReady is kept on Codec for parity with the Loader
// contract consumers constructed against a bare Loader would use.
func (c *Codec) OnReady(fn func(*MessageCatalog)) {
	c.Loader.OnReady(fn)
}

// OnMessage registers fn on the generic message channel.
func (c *Codec) OnMessage(fn func(MessageEvent)) { c.Dispatcher.OnMessage(fn) }

// On registers fn on the per-name channel for the given message name.
func (c *Codec) On(name string, fn func(MessageEvent)) { c.Dispatcher.On(name, fn) }

// OnSequenceError registers fn for sequence-gap diagnostics.
func (c *Codec) OnSequenceError(fn func(SequenceErrorEvent)) { c.Dispatcher.OnSequenceError(fn) }

// OnChecksumFail registers fn for checksum-failure diagnostics.
func (c *Codec) OnChecksumFail(fn func(ChecksumFailEvent)) { c.Dispatcher.OnChecksumFail(fn) }
