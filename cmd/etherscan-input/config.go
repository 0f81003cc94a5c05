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
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"

	"github.com/ideationmarket/etherscan-input/foundry"
)

// config describes the project layout the generator works against. Flags
// override file values.
type config struct {
	Root           string
	DispatcherFile string
	FacetsDir      string
	OutputDir      string
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

func loadConfigFile(file string, cfg *config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

func loadConfig(ctx *cli.Context) (*config, error) {
	cfg := &config{
		Root:           ".",
		DispatcherFile: foundry.DefaultDispatcherFile,
		FacetsDir:      foundry.DefaultFacetsDir,
		OutputDir:      defaultOutputDir,
	}
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfigFile(file, cfg); err != nil {
			return nil, err
		}
	}
	if ctx.IsSet(rootFlag.Name) {
		cfg.Root = ctx.String(rootFlag.Name)
	}
	if ctx.IsSet(dispatcherFlag.Name) {
		cfg.DispatcherFile = ctx.String(dispatcherFlag.Name)
	}
	if ctx.IsSet(facetsFlag.Name) {
		cfg.FacetsDir = ctx.String(facetsFlag.Name)
	}
	return cfg, nil
}

func (c *config) project() *foundry.Project {
	return &foundry.Project{
		Root:           c.Root,
		DispatcherFile: c.DispatcherFile,
		FacetsDir:      c.FacetsDir,
	}
}
