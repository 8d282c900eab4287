package ui

import (
	"image/color"
	"strconv"
	"strings"
)

// parseHexColor converts "#RRGGBB" to an opaque color. Malformed input
// yields opaque black; config.Settings.Validate rejects it earlier.
func parseHexColor(hex string) color.NRGBA {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(hex) != 7 {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}
