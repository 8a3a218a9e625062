package domain

import (
	"encoding/json"
	"sort"
)

// ReachabilityResult - все достижимые клетки и минимальная стоимость до каждой.
// Клетка старта всегда присутствует со стоимостью 0.
type ReachabilityResult map[Cell]int

func (r ReachabilityResult) Contains(c Cell) bool {
	_, ok := r[c]
	return ok
}

// Cost возвращает стоимость и флаг достижимости.
func (r ReachabilityResult) Cost(c Cell) (int, bool) {
	cost, ok := r[c]
	return cost, ok
}

// Cells - плоский список в порядке row-major (для отрисовки и передачи по сети).
func (r ReachabilityResult) Cells() []CellCost {
	out := make([]CellCost, 0, len(r))
	for c, cost := range r {
		out = append(out, CellCost{Cell: c, Cost: cost})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cell.Less(out[j].Cell) })
	return out
}

// MarshalJSON кодирует результат списком CellCost в порядке row-major,
// поэтому одинаковые результаты дают одинаковые байты.
func (r ReachabilityResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Cells())
}

func (r *ReachabilityResult) UnmarshalJSON(data []byte) error {
	var cells []CellCost
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	out := make(ReachabilityResult, len(cells))
	for _, c := range cells {
		out[c.Cell] = c.Cost
	}
	*r = out
	return nil
}

// VisibilityMode - какой из двух запросов видимости посчитан
type VisibilityMode string

const (
	// VisibilityAnyEnemy - булева видимость "видит хотя бы один враг"
	VisibilityAnyEnemy VisibilityMode = "ANY_ENEMY"
	// VisibilityObserver - доля перекрытия для одного назначенного наблюдателя
	VisibilityObserver VisibilityMode = "OBSERVER"
)

// VisibilityResult - плотная карта видимости, индекс Y * Width + X.
// В режиме AnyEnemy заполнен Visible, в режиме Observer - Severity.
type VisibilityResult struct {
	Mode       VisibilityMode `json:"mode"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	ObserverID ElementID      `json:"observerId,omitempty"`
	Visible    []bool         `json:"visible,omitempty"`
	Severity   []float64      `json:"severity,omitempty"`
}

func (r VisibilityResult) index(c Cell) (int, bool) {
	if c.X < 0 || c.Y < 0 || c.X >= r.Width || c.Y >= r.Height {
		return 0, false
	}
	return c.Y*r.Width + c.X, true
}

// IsVisible - видна ли клетка. Вне карты ничего не видно.
func (r VisibilityResult) IsVisible(c Cell) bool {
	return r.SeverityAt(c) < 1.0
}

// SeverityAt - 0 полностью видно, 1 полностью скрыто.
func (r VisibilityResult) SeverityAt(c Cell) float64 {
	idx, ok := r.index(c)
	if !ok {
		return 1.0
	}
	switch r.Mode {
	case VisibilityAnyEnemy:
		if idx < len(r.Visible) && r.Visible[idx] {
			return 0
		}
		return 1.0
	default:
		if idx < len(r.Severity) {
			return r.Severity[idx]
		}
		return 1.0
	}
}
