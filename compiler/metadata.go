// Copyright 2025 The etherscan-input Authors
// This file is part of the etherscan-input library.
//
// The etherscan-input library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The etherscan-input library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the etherscan-input library. If not, see <http://www.gnu.org/licenses/>.

// Package compiler turns the solc metadata emitted for a compiled contract
// into the standard-json compiler input accepted by block-explorer
// verification services.
package compiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Metadata is the solc metadata document of a single compiled contract, as
// produced by the build toolchain. Settings values are kept as raw JSON and
// passed through verbatim: re-encoding them could alter hash-affecting
// fields and break bytecode-level verification.
type Metadata struct {
	Language string
	Compiler struct {
		Version string
	}
	Settings map[string]json.RawMessage
	Sources  map[string]json.RawMessage

	// top-level fields, retained for version fallback scanning
	fields map[string]json.RawMessage
}

// ParseMetadata parses raw metadata text into a Metadata document. Some
// toolchain versions emit the document double-encoded as a quoted JSON
// string; both forms are accepted.
func ParseMetadata(raw string) (*Metadata, error) {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "{") {
		var inner string
		if err := json.Unmarshal([]byte(text), &inner); err != nil {
			return nil, fmt.Errorf("invalid compiler metadata: %w", err)
		}
		text = inner
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("invalid compiler metadata: %w", err)
	}
	if fields == nil {
		return nil, errors.New("invalid compiler metadata: not a JSON object")
	}
	m := &Metadata{
		Language: "Solidity",
		fields:   fields,
	}
	if lang, ok := stringField(fields, "language"); ok && lang != "" {
		m.Language = lang
	}
	if blob, ok := fields["compiler"]; ok {
		if err := json.Unmarshal(blob, &m.Compiler); err != nil {
			return nil, fmt.Errorf("invalid compiler metadata: %w", err)
		}
	}
	if blob, ok := fields["settings"]; ok {
		if err := json.Unmarshal(blob, &m.Settings); err != nil {
			return nil, fmt.Errorf("invalid compiler metadata: %w", err)
		}
	}
	if blob, ok := fields["sources"]; ok {
		if err := json.Unmarshal(blob, &m.Sources); err != nil {
			return nil, fmt.Errorf("invalid compiler metadata: %w", err)
		}
	}
	return m, nil
}

// SolcVersion returns the compiler version recorded in the metadata. The
// canonical location is compiler.version; a few toolchains store it under a
// top-level key instead, so those are scanned as a fallback. Returns
// "<unknown>" if no version can be found.
func (m *Metadata) SolcVersion() string {
	if m.Compiler.Version != "" {
		return m.Compiler.Version
	}
	for _, key := range []string{"solcVersion", "solc", "version"} {
		if v, ok := stringField(m.fields, key); ok && v != "" {
			return v
		}
	}
	return "<unknown>"
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
