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

package compiler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// settingsAllowlist enumerates the standard-json settings keys Etherscan's
// verification compiler accepts. Anything else the toolchain recorded is
// dropped on purpose.
var settingsAllowlist = []string{
	"optimizer",
	"evmVersion",
	"metadata",
	"libraries",
	"viaIR",
	"remappings",
	"outputSelection",
}

// defaultOutputSelection requests ABI and bytecode for every contract in
// every file. Without it some solc invocations omit bytecode from the
// output, making the artifact useless for verification.
var defaultOutputSelection = json.RawMessage(`{"*":{"*":["abi","evm.bytecode","evm.deployedBytecode"]}}`)

// StandardInput is the standard-json compiler input document, with every
// referenced source file inlined.
type StandardInput struct {
	Language string                     `json:"language"`
	Settings map[string]json.RawMessage `json:"settings"`
	Sources  map[string]SourceContent   `json:"sources"`
}

// SourceContent wraps the literal text of one source file.
type SourceContent struct {
	Content string `json:"content"`
}

// MissingSourceError is returned when a source file referenced by the
// metadata cannot be resolved on disk.
type MissingSourceError struct {
	Path string
	Err  error
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("source file %q: %v", e.Path, e.Err)
}

func (e *MissingSourceError) Unwrap() error { return e.Err }

// StandardInput derives the standard-json input from the metadata, inlining
// every source file listed in metadata.sources. Paths are resolved under
// root first, then as given. A single unresolvable source aborts the whole
// build: a partial input with missing sources is not verifiable and must
// not be emitted.
func (m *Metadata) StandardInput(root string) (*StandardInput, error) {
	settings := make(map[string]json.RawMessage)
	for _, key := range settingsAllowlist {
		if value, ok := m.Settings[key]; ok {
			settings[key] = value
		}
	}
	if _, ok := settings["outputSelection"]; !ok {
		settings["outputSelection"] = defaultOutputSelection
	}
	sources := make(map[string]SourceContent, len(m.Sources))
	for path := range m.Sources {
		content, err := readSource(root, path)
		if err != nil {
			return nil, err
		}
		sources[path] = SourceContent{Content: content}
	}
	return &StandardInput{
		Language: m.Language,
		Settings: settings,
		Sources:  sources,
	}, nil
}

// readSource resolves a logical source path against the project root, falling
// back to the path as given for sources living outside the root (absolute
// remappings and the like).
func readSource(root, path string) (string, error) {
	name := filepath.Join(root, path)
	if _, err := os.Stat(name); err != nil {
		name = filepath.Clean(path)
	}
	blob, err := os.ReadFile(name)
	if err != nil {
		return "", &MissingSourceError{Path: path, Err: err}
	}
	return string(blob), nil
}
