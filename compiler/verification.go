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
	"strings"
)

// VerificationInfo summarizes the compiler configuration of one contract for
// manual verification. Settings holds the full original settings object, not
// the whitelisted subset, so the exact build configuration stays available
// for reference.
type VerificationInfo struct {
	Contract string                     `json:"contract"`
	Solc     string                     `json:"solc"`
	Settings map[string]json.RawMessage `json:"settings"`
}

// NewVerificationInfo builds the verification summary for the given
// fully-qualified contract.
func NewVerificationInfo(contract string, m *Metadata) *VerificationInfo {
	return &VerificationInfo{
		Contract: contract,
		Solc:     m.SolcVersion(),
		Settings: m.Settings,
	}
}

// Hints renders the human-readable block of settings to punch into the
// Etherscan verification form. Lines whose underlying value is absent are
// omitted entirely.
func (vi *VerificationInfo) Hints() string {
	var b strings.Builder
	b.WriteString("=== Etherscan verification hints ===\n")
	fmt.Fprintf(&b, "Contract: %s\n", vi.Contract)
	fmt.Fprintf(&b, "solc: %s\n", vi.Solc)
	if v, ok := scalar(vi.Settings["evmVersion"]); ok {
		fmt.Fprintf(&b, "evmVersion: %v\n", v)
	}
	if v, ok := scalar(vi.Settings["viaIR"]); ok {
		fmt.Fprintf(&b, "viaIR: %v\n", v)
	}
	optimizer := object(vi.Settings["optimizer"])
	if v, ok := scalar(optimizer["enabled"]); ok {
		fmt.Fprintf(&b, "optimizer.enabled: %v\n", v)
	}
	if v, ok := scalar(optimizer["runs"]); ok {
		fmt.Fprintf(&b, "optimizer.runs: %v\n", v)
	}
	if v, ok := scalar(object(vi.Settings["metadata"])["bytecodeHash"]); ok {
		fmt.Fprintf(&b, "metadata.bytecodeHash: %v\n", v)
	}
	b.WriteString("===================================")
	return b.String()
}

// scalar decodes a raw JSON value for display, reporting false for absent
// or null values.
func scalar(raw json.RawMessage) (interface{}, bool) {
	if raw == nil {
		return nil, false
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return nil, false
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return int64(f), true
	}
	return v, true
}

func object(raw json.RawMessage) map[string]json.RawMessage {
	if raw == nil {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}
