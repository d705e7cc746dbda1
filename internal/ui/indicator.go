// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package ui

// IndicatorMode represents the current input mode.
type IndicatorMode int

const (
	// ModeNormal is the default navigation mode.
	ModeNormal IndicatorMode = iota
	// ModeCommand is for entering commands (: prefix).
	ModeCommand
	// ModeFilter is for filtering resources (/ prefix).
	ModeFilter
)

// Mode indicators (emoji/icons).
const (
	IndicatorNormal  = "🐵"
	IndicatorCommand = "🐵"
	IndicatorFilter  = "🔍"
)
