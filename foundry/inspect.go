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

// Package foundry discovers verification targets in a Foundry project and
// drives standard-json input generation for them, reading build metadata
// through forge.
package foundry

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// MetadataReader supplies raw solc metadata for a fully-qualified contract,
// e.g. "src/facets/VersionFacet.sol:VersionFacet".
type MetadataReader interface {
	ContractMetadata(ctx context.Context, target string) (string, error)
}

// Inspector reads contract metadata from a Foundry build via forge inspect.
type Inspector struct {
	// Dir is the directory forge runs in. Empty means the current directory.
	Dir string
}

// ContractMetadata shells out to forge and returns the raw metadata text for
// the given contract. The target must be known to the build cache.
func (i *Inspector) ContractMetadata(ctx context.Context, target string) (string, error) {
	cmd := exec.CommandContext(ctx, "forge", "inspect", target, "metadata")
	cmd.Dir = i.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("forge inspect %s: %v: %s", target, err, msg)
		}
		return "", fmt.Errorf("forge inspect %s: %w", target, err)
	}
	return strings.TrimSpace(string(out)), nil
}
