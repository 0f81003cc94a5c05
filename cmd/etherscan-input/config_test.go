// Copyright 2025 The etherscan-input Authors
// This file is part of etherscan-input.
//
// etherscan-input is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// etherscan-input is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with etherscan-input. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	content := `
Root = "/srv/diamond"
FacetsDir = "contracts/facets"
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	cfg := &config{Root: ".", DispatcherFile: "src/IdeationMarketDiamond.sol"}
	require.NoError(t, loadConfigFile(file, cfg))
	assert.Equal(t, "/srv/diamond", cfg.Root)
	assert.Equal(t, "contracts/facets", cfg.FacetsDir)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "src/IdeationMarketDiamond.sol", cfg.DispatcherFile)
}

func TestLoadConfigFileUnknownField(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("Bogus = true\n"), 0644))

	err := loadConfigFile(file, &config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bogus")
}

func TestLoadConfigFileMissing(t *testing.T) {
	err := loadConfigFile(filepath.Join(t.TempDir(), "nope.toml"), &config{})
	assert.Error(t, err)
}
