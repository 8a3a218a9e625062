package systems

import (
	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
	"github.com/sirupsen/logrus"
)

// CellClass - классификация клетки для движения.
// Порядок значений = строгость: при наложении побеждает больший.
type CellClass uint8

const (
	CellOpen CellClass = iota
	CellDifficult
	CellImpassable
)

func (c CellClass) String() string {
	switch c {
	case CellDifficult:
		return "difficult"
	case CellImpassable:
		return "impassable"
	default:
		return "open"
	}
}

// TerrainIndex - производная от местности карта: класс и степень перекрытия на клетку.
// Строится заново на каждый снимок и после построения только читается.
type TerrainIndex struct {
	grid     domain.GridSpec
	class    []CellClass
	severity []float64
}

// BuildTerrainIndex классифицирует каждую клетку под футпринтами местности.
// Клетки футпринта за пределами карты игнорируются.
func BuildTerrainIndex(grid domain.GridSpec, elements []domain.Element) *TerrainIndex {
	n := grid.CellCount()
	if n < 0 {
		n = 0
	}
	idx := &TerrainIndex{
		grid:     grid,
		class:    make([]CellClass, n),
		severity: make([]float64, n),
	}

	terrainCount := 0
	for i := range elements {
		e := &elements[i]
		if !e.IsTerrain() {
			continue
		}
		terrainCount++

		sev := domain.CoverSeverity(e.TerrainKind)
		class := CellOpen
		switch {
		case e.TerrainKind == domain.TerrainDifficult:
			class = CellDifficult
		case sev > 0:
			class = CellImpassable
		}

		for _, c := range e.Footprint().Cells() {
			if !grid.InBounds(c) {
				continue
			}
			k := grid.Index(c)
			if sev > idx.severity[k] {
				idx.severity[k] = sev
			}
			if class > idx.class[k] {
				idx.class[k] = class
			}
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "terrain_index",
		"grid":      grid,
		"terrain":   terrainCount,
	}).Debug("Terrain index built.")

	return idx
}

func (t *TerrainIndex) Grid() domain.GridSpec {
	return t.grid
}

// Class - класс клетки. Все, что вне карты, непроходимо.
func (t *TerrainIndex) Class(c domain.Cell) CellClass {
	if !t.grid.InBounds(c) {
		return CellImpassable
	}
	return t.class[t.grid.Index(c)]
}

// Severity - степень перекрытия обзора в клетке (0..1). Вне карты - 0.
func (t *TerrainIndex) Severity(c domain.Cell) float64 {
	if !t.grid.InBounds(c) {
		return 0
	}
	return t.severity[t.grid.Index(c)]
}

func (t *TerrainIndex) Passable(c domain.Cell) bool {
	return t.Class(c) != CellImpassable
}

// EnterCost - стоимость входа в клетку; -1 для непроходимой.
func (t *TerrainIndex) EnterCost(c domain.Cell) int {
	switch t.Class(c) {
	case CellImpassable:
		return -1
	case CellDifficult:
		return domain.MoveCostDifficult
	default:
		return domain.MoveCostOpen
	}
}
