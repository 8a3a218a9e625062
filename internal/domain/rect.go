package domain

// Rect - прямоугольник клеток [X, X+W) x [Y, Y+H). Так описывается футпринт элемента.
type Rect struct {
	X, Y int
	W, H int
}

// Overlaps - AABB-тест пересечения. Пустые прямоугольники ни с чем не пересекаются.
func (r Rect) Overlaps(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

func (r Rect) Contains(c Cell) bool {
	return c.X >= r.X && c.Y >= r.Y && c.X < r.X+r.W && c.Y < r.Y+r.H
}

// Within проверяет, что прямоугольник целиком лежит внутри outer.
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.X+r.W <= outer.X+outer.W && r.Y+r.H <= outer.Y+outer.H
}

// Cells перечисляет клетки прямоугольника в порядке row-major.
func (r Rect) Cells() []Cell {
	if r.W <= 0 || r.H <= 0 {
		return nil
	}
	cells := make([]Cell, 0, r.W*r.H)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}
