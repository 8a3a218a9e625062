package systems

import (
	"math"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
	"github.com/sirupsen/logrus"
)

// NormalizeDegrees приводит угол к (-180, 180].
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a <= -180 {
		a += 360
	} else if a > 180 {
		a -= 360
	}
	return a
}

// BearingDelta - знаковое отклонение направления на цель от взгляда наблюдателя.
func BearingDelta(facingDeg, dx, dy float64) float64 {
	bearing := math.Atan2(dy, dx) * 180 / math.Pi
	return NormalizeDegrees(bearing - facingDeg)
}

// InCone проверяет, попадает ли центр клетки в 120-градусный конус наблюдателя.
// Клетки под самим наблюдателем отсекает ObserverSeverity.
func InCone(observer *domain.Element, target domain.Cell) bool {
	ox, oy := observer.Center()
	dx := float64(target.X) + 0.5 - ox
	dy := float64(target.Y) + 0.5 - oy
	return math.Abs(BearingDelta(observer.FacingDeg, dx, dy)) <= domain.FOVHalfDegrees
}

// ObserverSeverity - насколько клетка скрыта от одного наблюдателя:
// 0 - видна полностью, 1 - скрыта (вне конуса или за полным укрытием),
// дробное значение - частичное укрытие.
func ObserverSeverity(observer *domain.Element, target domain.Cell, index *TerrainIndex) float64 {
	fp := observer.Footprint()
	// Свою клетку наблюдатель видит всегда
	if fp.Contains(target) {
		return 0
	}
	if !InCone(observer, target) {
		return 1.0
	}
	ox, oy := observer.Center()
	return RaySeverity(ox, oy, target, fp, index)
}

// ComputeEnemyVisibility - булева видимость: клетка видна, если хотя бы один враг
// держит ее в конусе с перекрытием меньше 1. Без врагов видимых клеток нет.
func ComputeEnemyVisibility(elements []domain.Element, index *TerrainIndex) domain.VisibilityResult {
	grid := index.Grid()
	res := domain.VisibilityResult{
		Mode:    domain.VisibilityAnyEnemy,
		Width:   grid.Width,
		Height:  grid.Height,
		Visible: make([]bool, grid.CellCount()),
	}

	var observers []*domain.Element
	for i := range elements {
		if elements[i].Kind == domain.ElementEnemy {
			observers = append(observers, &elements[i])
		}
	}

	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component": "fov_system",
		"mode":      res.Mode,
		"observers": len(observers),
	})
	if len(observers) == 0 {
		fovLogger.Debug("No enemy observers, every cell is hidden.")
		return res
	}

	visibleCount := 0
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := domain.Cell{X: x, Y: y}
			for _, o := range observers {
				if ObserverSeverity(o, c, index) < 1.0 {
					res.Visible[grid.Index(c)] = true
					visibleCount++
					break
				}
			}
		}
	}

	fovLogger.WithField("visible_tiles", visibleCount).Debug("FOV calculation complete.")
	return res
}

// ComputeObserverCover - доля перекрытия каждой клетки для одного наблюдателя.
// observer == nil означает "наблюдатель не назначен": все клетки равны 1.
func ComputeObserverCover(observer *domain.Element, index *TerrainIndex) domain.VisibilityResult {
	grid := index.Grid()
	res := domain.VisibilityResult{
		Mode:     domain.VisibilityObserver,
		Width:    grid.Width,
		Height:   grid.Height,
		Severity: make([]float64, grid.CellCount()),
	}

	if observer == nil {
		for i := range res.Severity {
			res.Severity[i] = 1.0
		}
		logger.Log.WithField("component", "fov_system").Debug("No designated observer, every cell is hidden.")
		return res
	}
	res.ObserverID = observer.ID

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := domain.Cell{X: x, Y: y}
			res.Severity[grid.Index(c)] = ObserverSeverity(observer, c, index)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component":   "fov_system",
		"observer_id": observer.ID,
		"facing":      observer.FacingDeg,
	}).Debug("Observer cover computed.")
	return res
}
