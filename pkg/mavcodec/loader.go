// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package mavcodec

import (
	"sync"
)

// Loader turns a set of already-parsed definition documents into a
// MessageCatalog and delivers a one-shot ready notification to
// consumers, whether they registered interest before or after the load
// completed. A Loader is safe for concurrent use: OnReady may be called
// from a different goroutine than Load.
type Loader struct {
	mu      sync.Mutex
	ready   bool
	catalog *MessageCatalog
	waiters []func(*MessageCatalog)
}

// NewLoader creates an empty, not-yet-ready Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// OnReady registers fn to be called exactly once with the compiled
// catalog. If the catalog is already ready, fn is invoked immediately,
// synchronously, before OnReady returns.
func (l *Loader) OnReady(fn func(*MessageCatalog)) {
	l.mu.Lock()
	if l.ready {
		catalog := l.catalog
		l.mu.Unlock()
		fn(catalog)
		return
	}
	l.waiters = append(l.waiters, fn)
	l.mu.Unlock()
}

// Load compiles definitions (ordering across documents is unobservable)
// into a MessageCatalog, or fails with a *SchemaError. On success it
// fires ready to every registered and future OnReady callback exactly
// once.
func (l *Loader) Load(definitions []Document, version Version) (*MessageCatalog, error) {
	byID := make(map[int]*MessageDescriptor)
	byName := make(map[string]*MessageDescriptor)

	for _, doc := range definitions {
		for _, msgDef := range doc.Messages {
			if _, dup := byID[msgDef.ID]; dup {
				return nil, &SchemaError{Kind: ErrDuplicateID, Path: doc.ID, Message: msgDef.Name}
			}
			if _, dup := byName[msgDef.Name]; dup {
				return nil, &SchemaError{Kind: ErrDuplicateName, Path: doc.ID, Message: msgDef.Name}
			}

			fields := make([]FieldDescriptor, len(msgDef.Fields))
			for i, fieldDef := range msgDef.Fields {
				bt, arrayLength, err := parseTypeToken(fieldDef.Type)
				if err != nil {
					return nil, &SchemaError{
						Kind:    ErrUnknownType,
						Path:    doc.ID,
						Message: msgDef.Name,
						Field:   fieldDef.Name,
					}
				}
				size := typeSizes[bt]
				fields[i] = FieldDescriptor{
					Name:           fieldDef.Name,
					BaseType:       bt,
					ArrayLength:    arrayLength,
					TypeSize:       size,
					TotalSize:      size * arrayLength,
					SourcePosition: i,
				}
			}

			layout, payloadLength, crcSeed := compileLayout(msgDef.Name, fields)
			descriptor := &MessageDescriptor{
				ID:            msgDef.ID,
				Name:          msgDef.Name,
				Fields:        layout,
				PayloadLength: payloadLength,
				CRCSeed:       crcSeed,
			}

			byID[msgDef.ID] = descriptor
			byName[msgDef.Name] = descriptor
		}
	}

	catalog := &MessageCatalog{byID: byID, byName: byName}

	l.mu.Lock()
	l.catalog = catalog
	l.ready = true
	waiters := l.waiters
	l.waiters = nil
	l.mu.Unlock()

	for _, fn := range waiters {
		fn(catalog)
	}

	return catalog, nil
}

// Load is a package-level convenience wrapping a throwaway Loader, for
// callers that don't need the ready-notification model.
func Load(definitions []Document, version Version) (*MessageCatalog, error) {
	return NewLoader().Load(definitions, version)
}
