package systems

import (
	"math"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
)

// RaySeverity - максимальная степень перекрытия вдоль отрезка от точки (ox, oy)
// до центра клетки target.
//
// Отрезок сэмплируется RaySamplesPerCell раз на клетку по главной оси.
// Концы отрезка не проверяются, как и точки, попавшие в саму цель
// или в skip (футпринт наблюдателя), чтобы клетка не перекрывала сама себя.
// Как только максимум достигает 1.0, обход прекращается.
func RaySeverity(ox, oy float64, target domain.Cell, skip domain.Rect, index *TerrainIndex) float64 {
	tx := float64(target.X) + 0.5
	ty := float64(target.Y) + 0.5
	dx := tx - ox
	dy := ty - oy

	span := math.Max(math.Abs(dx), math.Abs(dy))
	steps := int(math.Ceil(domain.RaySamplesPerCell * span))
	if steps < 2 {
		// Нет ни одной внутренней точки
		return 0
	}

	worst := 0.0
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		p := domain.Cell{
			X: int(math.Floor(ox + dx*t)),
			Y: int(math.Floor(oy + dy*t)),
		}
		if p == target || skip.Contains(p) {
			continue
		}
		if sev := index.Severity(p); sev > worst {
			worst = sev
			if worst >= 1.0 {
				return 1.0
			}
		}
	}
	return worst
}
