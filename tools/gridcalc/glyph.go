package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Glyph - упакованный цветной символ оверлея.
//
//	[0:8]  - символ (ASCII) - маска 0xFF
//	[8:32] - RGB-цвет - маска 0xFFFFFF
type Glyph uint32

const (
	bitsChar  = 8
	bitsColor = 24

	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1  // 0xFF
	maskColor = (1 << bitsColor) - 1 // 0xFFFFFF
)

// Цвета слоев
const (
	colorFloor  uint32 = 0x606060
	colorCover  uint32 = 0xB0B0B0
	colorMud    uint32 = 0x8B5A2B
	colorReach  uint32 = 0x46F0F0
	colorHidden uint32 = 0x303030
)

// MakeGlyph: учитываются только младшие 24 бита цвета.
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

func (g Glyph) Char() byte {
	return byte(g & maskChar)
}

// WithChar меняет символ, сохраняя цвет.
func (g Glyph) WithChar(char byte) Glyph {
	return MakeGlyph(g.Color(), char)
}

func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}

// ANSI - символ в 24-битной escape-последовательности терминала.
func (g Glyph) ANSI() string {
	c := g.Color()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%c\x1b[0m", c>>16&0xFF, c>>8&0xFF, c&0xFF, g.Char())
}

// String формат: "Glyph{char='A', color=#FFA500}"
func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})

	// Для непечатаемых символов показываем hex
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.HexColor())
}

// ParseHexColor разбирает "#RRGGBB" (цвета Palette). Ошибка - серый пола.
func ParseHexColor(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || len(strings.TrimPrefix(s, "#")) != 6 {
		return colorFloor, fmt.Errorf("invalid color %q", s)
	}
	return uint32(v), nil
}
