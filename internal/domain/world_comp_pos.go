package domain

import "fmt"

// Cell - клетка сетки, адресуемая целыми (x, y).
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CellCost - клетка и накопленная стоимость пути до нее.
type CellCost struct {
	Cell
	Cost int `json:"cost"`
}

// Shift возвращает новую клетку со смещением (текущая не меняется)
func (c Cell) Shift(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Neighbors4 - соседи по четырем направлениям, в фиксированном порядке.
func (c Cell) Neighbors4() [4]Cell {
	return [4]Cell{
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X, Y: c.Y - 1},
	}
}

// Manhattan возвращает манхэттенское расстояние до другой клетки
func (c Cell) Manhattan(other Cell) int {
	return absInt(c.X-other.X) + absInt(c.Y-other.Y)
}

// Less задает порядок row-major (сначала Y, потом X).
func (c Cell) Less(other Cell) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
