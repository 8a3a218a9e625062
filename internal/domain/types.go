package domain

import (
	"errors"
	"fmt"
)

// Ошибки конфигурации сетки. Это единственное фатальное условие движка:
// без положительных размеров не определены ни дальность, ни сэмплинг лучей.
var (
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrInvalidCellFeet   = errors.New("cell size in feet must be positive")
)

// GridSpec - статические размеры карты и масштаб клетки.
type GridSpec struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	CellFeet float64 `json:"cellFeet"`
}

// NewGridSpec создает валидированную сетку.
func NewGridSpec(width, height int, cellFeet float64) (GridSpec, error) {
	g := GridSpec{Width: width, Height: height, CellFeet: cellFeet}
	if err := g.Validate(); err != nil {
		return GridSpec{}, err
	}
	return g, nil
}

// Validate проверяет инварианты. Нужен для снимков, пришедших по сети
// в обход конструктора.
func (g GridSpec) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, g.Width, g.Height)
	}
	if !(g.CellFeet > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidCellFeet, g.CellFeet)
	}
	return nil
}

func (g GridSpec) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.Width && c.Y < g.Height
}

// Clamp прижимает клетку к границам карты.
func (g GridSpec) Clamp(c Cell) Cell {
	return Cell{X: clampInt(c.X, 0, g.Width-1), Y: clampInt(c.Y, 0, g.Height-1)}
}

// Index - плоский индекс клетки (row-major). Ключ: Y * Width + X
func (g GridSpec) Index(c Cell) int {
	return c.Y*g.Width + c.X
}

func (g GridSpec) CellCount() int {
	return g.Width * g.Height
}

// Bounds возвращает прямоугольник всей карты.
func (g GridSpec) Bounds() Rect {
	return Rect{X: 0, Y: 0, W: g.Width, H: g.Height}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
