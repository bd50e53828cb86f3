// Package constants defines shared constants, types, and limits
// used throughout the rotamenu engine.
package constants

import (
	"os"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names read by the engine and the simulator.
const (
	EnvironmentEnvVar = "ENVIRONMENT"
	LogLevelEnvVar    = "ROTAMENU_LOG_LEVEL"
	ConfigPathEnvVar  = "ROTAMENU_CONFIG"
	SimScaleEnvVar    = "ROTAMENU_SIM_SCALE"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Alignment specifies horizontal placement of an item's content inside its width.
type Alignment uint8

const (
	AlignLeft   Alignment = iota // Content starts at the item column
	AlignCentre                  // Content is centred inside the item width
	AlignRight                   // Content ends one pixel before the item's right edge
)

// Valid reports whether a is one of the defined alignments.
func (a Alignment) Valid() bool {
	return a <= AlignRight
}

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCentre:
		return "centre"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseAlignment maps "left", "centre"/"center" and "right" to an Alignment.
// Anything else is left aligned.
func ParseAlignment(s string) Alignment {
	switch s {
	case "centre", "center":
		return AlignCentre
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// FontNumber selects one of the fonts registered with the display.
type FontNumber uint8

// Visibility is an opaque tag compared against live controller state.
type Visibility uint8

// AlwaysVisible items participate in layout regardless of controller state.
const AlwaysVisible Visibility = 0

// Buffer and listing limits. Nothing grows past these at runtime.
const (
	MaxFilenameLength   = 120
	MaxCommandLength    = MaxFilenameLength + 20
	MaxDirectoryEntries = 256
	MaxDirectoryDepth   = 8
	MaxMenuDepth        = 8
	MaxImageWidth       = 256
	MaxImageHeight      = 128
)

// Layout defaults.
const (
	DefaultValueWidth    int16 = 25 // numeric field width when none is given
	ValuePlaceholder           = "***"
	ParentDirectoryLabel       = "../"
)

// Command verbs the menu handles itself instead of forwarding them.
const (
	CommandMenu   = "menu"
	CommandReturn = "return"
)
