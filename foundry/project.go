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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	// DefaultDispatcherFile is the diamond dispatcher source, relative to the
	// project root.
	DefaultDispatcherFile = "src/IdeationMarketDiamond.sol"

	// DefaultFacetsDir is the directory holding facet sources, relative to
	// the project root.
	DefaultFacetsDir = "src/facets"

	// StandardInputSuffix is the file name suffix of generated standard-json
	// artifacts.
	StandardInputSuffix = ".standard-input.json"

	// VerificationInfoSuffix is the file name suffix of the sidecar carrying
	// the compiler version and settings.
	VerificationInfoSuffix = ".verification-info.json"
)

// ErrNoTargets is returned when target discovery finds no contract
// declarations at all.
var ErrNoTargets = errors.New("no contracts found")

// Project describes where a Foundry project keeps its verifiable sources.
type Project struct {
	Root           string // project root, sources resolve against it
	DispatcherFile string // dispatcher source, relative to Root
	FacetsDir      string // facet directory, relative to Root
}

// NewProject returns a Project rooted at root with the default layout.
func NewProject(root string) *Project {
	return &Project{
		Root:           root,
		DispatcherFile: DefaultDispatcherFile,
		FacetsDir:      DefaultFacetsDir,
	}
}

// Target is one contract to generate a verification input for.
type Target struct {
	Name       string // fully-qualified identifier, "<rel-path>:<Contract>"
	OutputPath string
}

var (
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
	contractDeclPattern = regexp.MustCompile(`^\s*contract\s+([A-Za-z_]\w*)\b`)
)

// ContractNames extracts the names of concrete contract declarations from
// Solidity source text. Interface and library declarations are skipped:
// only contracts are deployed, so only contracts are verification targets.
// This is a line-oriented scan, not a parser; block and line comments are
// stripped first to avoid matching commented-out declarations.
func ContractNames(src string) []string {
	src = blockCommentPattern.ReplaceAllString(src, "")
	var names []string
	for _, line := range strings.Split(src, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		if m := contractDeclPattern.FindStringSubmatch(line); m != nil {
			names = append(names, m[1])
		}
	}
	return names
}

// Targets enumerates every contract declared in the dispatcher file and the
// facets directory, paired with its output path under outDir. The result is
// sorted by identifier so batch output is reproducible regardless of
// filesystem iteration order. Returns ErrNoTargets if nothing was found.
func (p *Project) Targets(outDir string) ([]Target, error) {
	var targets []Target
	scan := func(path string) error {
		blob, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(p.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, name := range ContractNames(string(blob)) {
			targets = append(targets, Target{
				Name:       rel + ":" + name,
				OutputPath: filepath.Join(outDir, name+StandardInputSuffix),
			})
		}
		return nil
	}

	dispatcher := filepath.Join(p.Root, p.DispatcherFile)
	if info, err := os.Stat(dispatcher); err == nil && !info.IsDir() {
		if err := scan(dispatcher); err != nil {
			return nil, err
		}
	}
	facets := filepath.Join(p.Root, p.FacetsDir)
	if info, err := os.Stat(facets); err == nil && info.IsDir() {
		err := filepath.WalkDir(facets, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".sol") {
				return nil
			}
			return scan(path)
		})
		if err != nil {
			return nil, err
		}
	}
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })
	return targets, nil
}
