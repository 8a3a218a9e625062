package main

import "testing"

func TestMakeGlyph(t *testing.T) {
	tests := []struct {
		name     string
		colorRGB uint32
		char     byte
		want     Glyph
	}{
		{"orange A", 0xFFA500, 'A', Glyph(0xFFA50041)},
		{"black space", 0x000000, ' ', Glyph(0x00000020)},
		{"color truncation", 0x12345678, 'x', Glyph(0x34567878)},
		{"max char", 0x404040, 0xFF, Glyph(0x404040FF)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeGlyph(tt.colorRGB, tt.char)
			if got != tt.want {
				t.Errorf("MakeGlyph() = 0x%08X, want 0x%08X", got, tt.want)
			}
			if got.Char() != tt.char {
				t.Errorf("Char() = %q, want %q", got.Char(), tt.char)
			}
			if got.Color() != tt.colorRGB&maskColor {
				t.Errorf("Color() = 0x%06X, want 0x%06X", got.Color(), tt.colorRGB&maskColor)
			}
		})
	}
}

func TestGlyph_Strings(t *testing.T) {
	g := MakeGlyph(0xE6194B, '@')
	if s := g.String(); s != "Glyph{char='@', color=#E6194B}" {
		t.Errorf("String() = %q", s)
	}
	if s := g.ANSI(); s != "\x1b[38;2;230;25;75m@\x1b[0m" {
		t.Errorf("ANSI() = %q", s)
	}
	if s := MakeGlyph(0, 0x07).String(); s != "Glyph{char='\\x07', color=#000000}" {
		t.Errorf("String() = %q", s)
	}
	if w := g.WithChar('E'); w.Char() != 'E' || w.Color() != 0xE6194B {
		t.Errorf("WithChar() = %v", w)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#3cb44b")
	if err != nil || c != 0x3CB44B {
		t.Errorf("ParseHexColor = 0x%06X, %v", c, err)
	}
	if _, err := ParseHexColor("red"); err == nil {
		t.Error("expected error for non-hex color")
	}
	if _, err := ParseHexColor("#fff"); err == nil {
		t.Error("expected error for short color")
	}
}
