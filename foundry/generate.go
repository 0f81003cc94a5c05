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

package foundry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/ideationmarket/etherscan-input/compiler"
)

// Generator derives standard-json verification inputs for contracts of one
// project. Metadata acquisition is abstracted so tests can run without a
// forge build cache.
type Generator struct {
	Metadata MetadataReader
	Root     string    // project root, inlined sources resolve against it
	Hints    io.Writer // optional destination for the copy-paste hint block
}

// Generate produces the standard-json input and the verification-info
// sidecar for one contract. Nothing is written until the whole input has
// been built, so a failed generation leaves no partial artifact behind.
func (g *Generator) Generate(ctx context.Context, target, outPath string) error {
	raw, err := g.Metadata.ContractMetadata(ctx, target)
	if err != nil {
		return err
	}
	meta, err := compiler.ParseMetadata(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}
	input, err := meta.StandardInput(g.Root)
	if err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}
	info := compiler.NewVerificationInfo(target, meta)

	if err := writeJSON(outPath, input); err != nil {
		return err
	}
	if err := writeJSON(infoPath(outPath), info); err != nil {
		return err
	}
	if g.Hints != nil {
		fmt.Fprintln(g.Hints, info.Hints())
	}
	log.Debug("Generated verification input", "target", target, "solc", info.Solc)
	return nil
}

// GenerateAll discovers every target of the project and generates inputs
// for all of them under outDir, in sorted order. A failing target does not
// stop the batch: the remaining targets are still generated and the
// collected errors are returned at the end.
func (g *Generator) GenerateAll(ctx context.Context, project *Project, outDir string) error {
	targets, err := project.Targets(outDir)
	if err != nil {
		return err
	}
	var errs []error
	for _, target := range targets {
		if err := g.Generate(ctx, target.Name, target.OutputPath); err != nil {
			log.Error("Failed to generate verification input", "target", target.Name, "err", err)
			errs = append(errs, err)
			continue
		}
		log.Info("Wrote verification input", "target", target.Name, "path", target.OutputPath)
	}
	return errors.Join(errs...)
}

// infoPath derives the sidecar path from the standard-json path. Paths not
// carrying the canonical suffix get ".json" replaced instead, so the sidecar
// never clobbers the main artifact.
func infoPath(outPath string) string {
	if strings.HasSuffix(outPath, StandardInputSuffix) {
		return strings.TrimSuffix(outPath, StandardInputSuffix) + VerificationInfoSuffix
	}
	return strings.TrimSuffix(outPath, ".json") + VerificationInfoSuffix
}

func writeJSON(path string, v interface{}) error {
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(blob, '\n'), 0644)
}
