package engine

import (
	"io"
	"os"
	"testing"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitWith(io.Discard, "debug", "text")

	os.Exit(m.Run())
}

// Helper: сетка 5-футовых клеток
func testGrid(w, h int) domain.GridSpec {
	return domain.GridSpec{Width: w, Height: h, CellFeet: 5}
}

func feet(v float64) *float64 {
	return &v
}

func player(id string, x, y int, speed float64) domain.Element {
	return domain.Element{
		ID:           domain.ElementID(id),
		Kind:         domain.ElementPlayer,
		Anchor:       domain.Cell{X: x, Y: y},
		Size:         1,
		MovementFeet: feet(speed),
	}
}

func foe(id string, x, y int, facing float64) domain.Element {
	return domain.Element{
		ID:        domain.ElementID(id),
		Kind:      domain.ElementEnemy,
		Anchor:    domain.Cell{X: x, Y: y},
		Size:      1,
		FacingDeg: facing,
	}
}

func rock(id string, x, y, size int, kind domain.TerrainKind, group string) domain.Element {
	return domain.Element{
		ID:          domain.ElementID(id),
		Kind:        domain.ElementTerrain,
		Anchor:      domain.Cell{X: x, Y: y},
		Size:        size,
		TerrainKind: kind,
		GroupID:     group,
	}
}
