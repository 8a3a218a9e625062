package systems

import (
	"container/heap"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
	"github.com/sirupsen/logrus"
)

// frontierItem - элемент открытого списка поиска
type frontierItem struct {
	cell domain.Cell
	cost int
}

// frontier - min-heap по стоимости (container/heap)
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	// Стабильный порядок извлечения при равной стоимости
	return f[i].cell.Less(f[j].cell)
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x interface{}) {
	*f = append(*f, x.(frontierItem))
}

func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// MovementRange - сколько клеток дает бюджет: floor(feet / cellFeet).
// Сверху ограничен 2*CellCount: дороже кратчайший путь на этой карте не бывает.
func MovementRange(effectiveFeet int, grid domain.GridSpec) int {
	if effectiveFeet <= 0 || !(grid.CellFeet > 0) {
		return 0
	}
	return floorClamp(float64(effectiveFeet)/grid.CellFeet, 2*float64(grid.CellCount()))
}

// ComputeReachability возвращает все клетки, достижимые из origin в пределах бюджета,
// с минимальной стоимостью до каждой. Не меняет состояние мира!
//
// Поиск Дейкстры по 4 соседям: в непроходимую клетку войти нельзя,
// труднопроходимая стоит 2, открытая 1. Клетка старта всегда в результате.
func ComputeReachability(origin domain.Cell, effectiveFeet int, index *TerrainIndex) domain.ReachabilityResult {
	grid := index.Grid()
	origin = grid.Clamp(origin)
	rng := MovementRange(effectiveFeet, grid)

	moveLogger := logger.Log.WithFields(logrus.Fields{
		"component": "movement_solver",
		"origin":    origin,
		"range":     rng,
	})

	result := domain.ReachabilityResult{origin: 0}
	if rng <= 0 {
		moveLogger.Debug("Zero movement range, only origin is reachable.")
		return result
	}

	open := &frontier{{cell: origin, cost: 0}}
	heap.Init(open)

	for open.Len() > 0 {
		cur := heap.Pop(open).(frontierItem)

		// Устаревшая запись: клетку уже нашли дешевле
		if best, ok := result[cur.cell]; ok && best < cur.cost {
			continue
		}

		for _, next := range cur.cell.Neighbors4() {
			step := index.EnterCost(next)
			if step < 0 {
				continue
			}
			cost := cur.cost + step
			if cost > rng {
				continue
			}
			if known, ok := result[next]; ok && known <= cost {
				continue
			}
			result[next] = cost
			heap.Push(open, frontierItem{cell: next, cost: cost})
		}
	}

	moveLogger.WithField("reachable", len(result)).Debug("Reachability computed.")
	return result
}
