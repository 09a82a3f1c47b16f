package scoring

import (
	"fmt"
	"unicode/utf16"
)

const (
	colorSaturation = 70
	colorLightness  = 55
)

// SeedToColor maps seed to a CSS color of the form "hsl(<hue> 70% 55%)".
// Equal seeds always give equal colors.
func SeedToColor(seed string) string {
	return fmt.Sprintf("hsl(%d %d%% %d%%)", SeedHue(seed), colorSaturation, colorLightness)
}

// SeedHue returns the hue in [0, 359] that SeedToColor uses for seed.
func SeedHue(seed string) int {
	return hueOf(seedHash(seed))
}

// seedHash is a 31-multiplier rolling hash over UTF-16 code units. int32
// arithmetic wraps on overflow at every step.
func seedHash(seed string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		h = h*31 + int32(unit)
	}
	return h
}

func hueOf(h int32) int {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % 360)
}
