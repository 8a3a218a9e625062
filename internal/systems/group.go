package systems

import (
	"sort"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// GroupMoveResult - результат перемещения группы местности
type GroupMoveResult struct {
	// Anchors - новая позиция каждого члена группы (применяется атомарно)
	Anchors map[domain.ElementID]domain.Cell
	// Dx, Dy - итоговое смещение (0,0 если группа не сдвинулась)
	Dx, Dy int
	// Clamped - смещение было урезано границами карты
	Clamped bool
	// Blocked - сдвиг невозможен даже на (0,0): группа уже пересекается с чужим футпринтом
	Blocked bool
}

// ResolveGroupMove сдвигает жесткую группу местности на (dx, dy).
//
// Смещение сначала прижимается к границам карты (по каждой оси отдельно,
// решает самый "крайний" член группы), затем ищется ближайшее к запросу
// смещение без пересечений с футпринтами элементов вне группы: кандидаты
// перебираются от большей манхэттенской величины к меньшей, при равенстве
// предпочтение отдается большему |dx|. Если свободного кандидата нет,
// все члены остаются на месте. Неизвестная группа - пустой результат.
func ResolveGroupMove(groupID string, dx, dy int, grid domain.GridSpec, elements []domain.Element) GroupMoveResult {
	res := GroupMoveResult{Anchors: make(map[domain.ElementID]domain.Cell)}

	members := domain.GroupMembers(elements, groupID)
	if len(members) == 0 {
		return res
	}

	groupLogger := logger.Log.WithFields(logrus.Fields{
		"component": "group_resolver",
		"group_id":  groupID,
		"members":   len(members),
		"requested": domain.Cell{X: dx, Y: dy},
	})

	inGroup := mapset.New[domain.ElementID]()
	for _, m := range members {
		inGroup.Put(m.ID)
		res.Anchors[m.ID] = m.Anchor
	}

	cdx, cdy := clampGroupDelta(members, dx, dy, grid)
	res.Clamped = cdx != dx || cdy != dy

	var obstacles []domain.Rect
	for i := range elements {
		if inGroup.Has(elements[i].ID) {
			continue
		}
		obstacles = append(obstacles, elements[i].Footprint())
	}

	for _, cand := range deltaCandidates(cdx, cdy) {
		if groupCollides(members, cand.X, cand.Y, obstacles) {
			continue
		}
		for _, m := range members {
			res.Anchors[m.ID] = m.Anchor.Shift(cand.X, cand.Y)
		}
		res.Dx, res.Dy = cand.X, cand.Y
		groupLogger.WithField("resolved", cand).Debug("Group move resolved.")
		return res
	}

	res.Blocked = true
	groupLogger.Debug("Group overlaps a foreign footprint at rest, move rejected.")
	return res
}

// clampGroupDelta урезает смещение так, чтобы каждый футпринт остался в [0,W)x[0,H).
// Члены, уже вылезшие за границу, не выталкивают группу назад.
func clampGroupDelta(members []*domain.Element, dx, dy int, grid domain.GridSpec) (int, int) {
	for _, m := range members {
		fp := m.Footprint()
		if dx > 0 {
			dx = minInt(dx, maxInt(0, grid.Width-(fp.X+fp.W)))
		} else if dx < 0 {
			dx = maxInt(dx, minInt(0, -fp.X))
		}
		if dy > 0 {
			dy = minInt(dy, maxInt(0, grid.Height-(fp.Y+fp.H)))
		} else if dy < 0 {
			dy = maxInt(dy, minInt(0, -fp.Y))
		}
	}
	return dx, dy
}

// deltaCandidates - все смещения от (dx,dy) к нулю по каждой оси,
// от наибольшей величины к наименьшей. Последний кандидат всегда (0,0).
func deltaCandidates(dx, dy int) []domain.Cell {
	sx, sy := sign(dx), sign(dy)
	ax, ay := absInt(dx), absInt(dy)

	out := make([]domain.Cell, 0, (ax+1)*(ay+1))
	for x := ax; x >= 0; x-- {
		for y := ay; y >= 0; y-- {
			out = append(out, domain.Cell{X: x, Y: y})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		mi, mj := out[i].X+out[i].Y, out[j].X+out[j].Y
		if mi != mj {
			return mi > mj
		}
		return out[i].X > out[j].X
	})
	for i := range out {
		out[i].X *= sx
		out[i].Y *= sy
	}
	return out
}

func groupCollides(members []*domain.Element, dx, dy int, obstacles []domain.Rect) bool {
	for _, m := range members {
		moved := m.Footprint().Translate(dx, dy)
		for _, o := range obstacles {
			if moved.Overlaps(o) {
				return true
			}
		}
	}
	return false
}

// ClampElementMove прижимает желаемую позицию одиночного элемента к карте,
// чтобы весь футпринт остался внутри.
func ClampElementMove(e *domain.Element, target domain.Cell, grid domain.GridSpec) domain.Cell {
	s := e.EffectiveSize()
	return domain.Cell{
		X: maxInt(0, minInt(target.X, grid.Width-s)),
		Y: maxInt(0, minInt(target.Y, grid.Height-s)),
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
