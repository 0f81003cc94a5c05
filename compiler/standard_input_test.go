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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fooSource = "pragma solidity ^0.8.19;\n\ncontract Foo {}\n"

// writeFooProject lays out a minimal project containing src/Foo.sol and
// returns its root.
func writeFooProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "Foo.sol"), []byte(fooSource), 0644))
	return root
}

func TestStandardInputSettingsWhitelist(t *testing.T) {
	m, err := ParseMetadata(sampleMetadata)
	require.NoError(t, err)
	root := writeFooProject(t)

	input, err := m.StandardInput(root)
	require.NoError(t, err)

	allowed := map[string]bool{
		"optimizer": true, "evmVersion": true, "metadata": true, "libraries": true,
		"viaIR": true, "remappings": true, "outputSelection": true,
	}
	for key := range input.Settings {
		assert.True(t, allowed[key], "unexpected settings key %q", key)
	}
	assert.NotContains(t, input.Settings, "compilationTarget")
}

func TestStandardInputDefaultOutputSelection(t *testing.T) {
	m, err := ParseMetadata(sampleMetadata)
	require.NoError(t, err)
	root := writeFooProject(t)

	input, err := m.StandardInput(root)
	require.NoError(t, err)
	require.Contains(t, input.Settings, "outputSelection")

	var selection map[string]map[string][]string
	require.NoError(t, json.Unmarshal(input.Settings["outputSelection"], &selection))
	assert.Equal(t, []string{"abi", "evm.bytecode", "evm.deployedBytecode"}, selection["*"]["*"])
}

func TestStandardInputKeepsOutputSelection(t *testing.T) {
	raw := `{
		"settings": {"outputSelection": {"src/Foo.sol": {"Foo": ["abi"]}}},
		"sources": {"src/Foo.sol": {}}
	}`
	m, err := ParseMetadata(raw)
	require.NoError(t, err)
	root := writeFooProject(t)

	input, err := m.StandardInput(root)
	require.NoError(t, err)
	assert.JSONEq(t, `{"src/Foo.sol": {"Foo": ["abi"]}}`, string(input.Settings["outputSelection"]))
}

func TestStandardInputMetadataPassthrough(t *testing.T) {
	// The metadata settings sub-object affects the content hash embedded in
	// bytecode and must survive byte-exact.
	const metadataSettings = `{"bytecodeHash":"none","useLiteralContent":true}`
	raw := fmt.Sprintf(`{"settings": {"metadata": %s}, "sources": {"src/Foo.sol": {}}}`, metadataSettings)
	m, err := ParseMetadata(raw)
	require.NoError(t, err)
	root := writeFooProject(t)

	input, err := m.StandardInput(root)
	require.NoError(t, err)
	assert.Equal(t, metadataSettings, string(input.Settings["metadata"]))
}

func TestStandardInputLanguageDefault(t *testing.T) {
	m, err := ParseMetadata(`{"sources": {}}`)
	require.NoError(t, err)

	input, err := m.StandardInput(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "Solidity", input.Language)
}

func TestStandardInputInlinesSources(t *testing.T) {
	m, err := ParseMetadata(sampleMetadata)
	require.NoError(t, err)
	root := writeFooProject(t)

	input, err := m.StandardInput(root)
	require.NoError(t, err)
	require.Len(t, input.Sources, 1)
	assert.Equal(t, fooSource, input.Sources["src/Foo.sol"].Content)
}

func TestStandardInputAbsoluteSourceFallback(t *testing.T) {
	// Sources outside the root, e.g. from absolute remappings, resolve by
	// their own path when the root join misses.
	outside := filepath.Join(t.TempDir(), "Lib.sol")
	require.NoError(t, os.WriteFile(outside, []byte("library Lib {}\n"), 0644))
	raw := fmt.Sprintf(`{"sources": {%q: {}}}`, outside)
	m, err := ParseMetadata(raw)
	require.NoError(t, err)

	input, err := m.StandardInput(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "library Lib {}\n", input.Sources[outside].Content)
}

func TestStandardInputMissingSource(t *testing.T) {
	m, err := ParseMetadata(`{"sources": {"src/Gone.sol": {}}}`)
	require.NoError(t, err)

	_, err = m.StandardInput(t.TempDir())
	require.Error(t, err)
	var missing *MissingSourceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "src/Gone.sol", missing.Path)
}

func TestStandardInputIdempotent(t *testing.T) {
	m, err := ParseMetadata(sampleMetadata)
	require.NoError(t, err)
	root := writeFooProject(t)

	first, err := m.StandardInput(root)
	require.NoError(t, err)
	second, err := m.StandardInput(root)
	require.NoError(t, err)

	blob1, err := json.MarshalIndent(first, "", "  ")
	require.NoError(t, err)
	blob2, err := json.MarshalIndent(second, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, blob1, blob2)
}
