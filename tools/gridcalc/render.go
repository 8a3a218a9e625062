package main

import (
	"strconv"
	"strings"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
)

// Символы карты
const (
	glyphEmpty     = '.'
	glyphPlayer    = '@'
	glyphEnemy     = 'E'
	glyphDifficult = '~'
	glyphHidden    = '#'
)

var coverGlyphs = map[domain.TerrainKind]Glyph{
	domain.TerrainQuarter:       MakeGlyph(colorCover, 'q'),
	domain.TerrainHalf:          MakeGlyph(colorCover, 'h'),
	domain.TerrainThreeQuarters: MakeGlyph(colorCover, 't'),
	domain.TerrainFull:          MakeGlyph(colorCover, 'F'),
	domain.TerrainDifficult:     MakeGlyph(colorMud, glyphDifficult),
}

type layer [][]Glyph

// baseLayer рисует футпринты: местность снизу, токены сверху.
// Токены красятся цветами палитры в порядке списка, как это делает коллаборатор.
func baseLayer(snap *domain.Snapshot) layer {
	g := snap.Grid
	rows := make(layer, g.Height)
	for y := range rows {
		rows[y] = make([]Glyph, g.Width)
		for x := range rows[y] {
			rows[y][x] = MakeGlyph(colorFloor, glyphEmpty)
		}
	}

	paint := func(e *domain.Element, gl Glyph) {
		for _, c := range e.Footprint().Cells() {
			if g.InBounds(c) {
				rows[c.Y][c.X] = gl
			}
		}
	}
	for i := range snap.Elements {
		e := &snap.Elements[i]
		if e.IsTerrain() {
			if gl, ok := coverGlyphs[e.TerrainKind]; ok {
				paint(e, gl)
			}
		}
	}

	palette := domain.NewPalette(nil)
	for i := range snap.Elements {
		e := &snap.Elements[i]
		if !e.IsActor() {
			continue
		}
		color, _ := ParseHexColor(palette.Next())
		char := byte(glyphPlayer)
		if e.Kind == domain.ElementEnemy {
			char = glyphEnemy
		}
		paint(e, MakeGlyph(color, char))
	}
	return rows
}

func (l layer) at(c domain.Cell) Glyph {
	return l[c.Y][c.X]
}

func (l layer) set(c domain.Cell, g Glyph) {
	l[c.Y][c.X] = g
}

// render: color=true выводит ANSI-цвета, иначе голые символы.
func (l layer) render(color bool) string {
	var b strings.Builder
	for _, row := range l {
		for _, g := range row {
			if color {
				b.WriteString(g.ANSI())
			} else {
				b.WriteByte(g.Char())
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func renderElements(snap *domain.Snapshot, color bool) string {
	return baseLayer(snap).render(color)
}

// renderReach: пустые достижимые клетки показывают стоимость (0-9, '+' для больших).
func renderReach(snap *domain.Snapshot, res domain.ReachabilityResult, color bool) string {
	rows := baseLayer(snap)
	for c, cost := range res {
		if !snap.Grid.InBounds(c) {
			continue
		}
		if ch := rows.at(c).Char(); ch != glyphEmpty && ch != glyphDifficult {
			continue
		}
		mark := byte('+')
		if cost < 10 {
			mark = strconv.Itoa(cost)[0]
		}
		rows.set(c, MakeGlyph(colorReach, mark))
	}
	return rows.render(color)
}

// renderVisibility закрывает скрытые клетки '#', частично прикрытые оставляет как есть.
func renderVisibility(snap *domain.Snapshot, res domain.VisibilityResult, color bool) string {
	rows := baseLayer(snap)
	for y := 0; y < snap.Grid.Height; y++ {
		for x := 0; x < snap.Grid.Width; x++ {
			c := domain.Cell{X: x, Y: y}
			if !res.IsVisible(c) {
				rows.set(c, MakeGlyph(colorHidden, glyphHidden))
			}
		}
	}
	return rows.render(color)
}
