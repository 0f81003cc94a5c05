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

// etherscan-input generates Etherscan standard-json verification inputs
// from the build metadata of a Foundry project.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/ideationmarket/etherscan-input/foundry"
	"github.com/ideationmarket/etherscan-input/internal/flags"
)

const (
	// defaultOutputFile receives the single-target artifact when no output
	// path is given.
	defaultOutputFile = "/tmp/etherscan-input.json"

	// defaultOutputDir receives batch artifacts, relative to the project root.
	defaultOutputDir = "etherscan"
)

var (
	allFlag = &cli.BoolFlag{
		Name:  "all",
		Usage: "Generate inputs for the diamond dispatcher and every facet",
	}
	rootFlag = &flags.DirectoryFlag{
		Name:     "root",
		Usage:    "Foundry project root the sources resolve against",
		Value:    flags.DirectoryString("."),
		Category: flags.ProjectCategory,
	}
	dispatcherFlag = &cli.StringFlag{
		Name:     "dispatcher",
		Usage:    "Diamond dispatcher source file, relative to the project root",
		Value:    foundry.DefaultDispatcherFile,
		Category: flags.ProjectCategory,
	}
	facetsFlag = &cli.StringFlag{
		Name:     "facets",
		Usage:    "Facet source directory, relative to the project root",
		Value:    foundry.DefaultFacetsDir,
		Category: flags.ProjectCategory,
	}
	configFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.ProjectCategory,
	}
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    3,
		Category: flags.LoggingCategory,
	}
	logjsonFlag = &cli.BoolFlag{
		Name:     "log.json",
		Usage:    "Format logs with JSON",
		Category: flags.LoggingCategory,
	}
)

var app = &cli.App{
	Name:      "etherscan-input",
	Usage:     "generate Etherscan standard-json verification inputs from Foundry build metadata",
	ArgsUsage: "<file.sol:ContractName> [out.json] | --all [outDir]",
	Flags: []cli.Flag{
		allFlag,
		rootFlag,
		dispatcherFlag,
		facetsFlag,
		configFileFlag,
		verbosityFlag,
		logjsonFlag,
	},
	Before:    setupLogging,
	Action:    generate,
	Copyright: "Copyright 2025 The etherscan-input Authors",
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) error {
	level := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	var handler slog.Handler
	if ctx.Bool(logjsonFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, level)
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("TERM") != "dumb"
		output := io.Writer(os.Stderr)
		if useColor {
			output = colorable.NewColorableStderr()
		}
		handler = log.NewTerminalHandlerWithLevel(output, level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}

func generate(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	generator := &foundry.Generator{
		Metadata: &foundry.Inspector{Dir: cfg.Root},
		Root:     cfg.Root,
		Hints:    os.Stdout,
	}
	if ctx.Bool(allFlag.Name) {
		outDir := cfg.OutputDir
		if ctx.Args().Present() {
			outDir = ctx.Args().First()
		}
		return generator.GenerateAll(ctx.Context, cfg.project(), outDir)
	}
	if !ctx.Args().Present() {
		cli.ShowAppHelpAndExit(ctx, 2)
	}
	target := ctx.Args().First()
	outPath := defaultOutputFile
	if ctx.Args().Len() > 1 {
		outPath = ctx.Args().Get(1)
	}
	if err := generator.Generate(ctx.Context, target, outPath); err != nil {
		return err
	}
	fmt.Println(outPath)
	return nil
}
