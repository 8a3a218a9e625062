package domain

// ElementID - идентификатор элемента, выданный коллаборатором (см. IDAllocator).
type ElementID string

func (id ElementID) String() string {
	return string(id)
}

// Element - токен игрока, врага или кусок местности.
// Снимок принадлежит коллаборатору; движок его никогда не меняет.
type Element struct {
	ID     ElementID   `json:"id"`
	Kind   ElementKind `json:"kind"`
	Anchor Cell        `json:"anchor"`
	Size   int         `json:"size"` // NxN футпринт

	// Только для акторов
	MovementFeet *float64 `json:"movementFeet,omitempty"`
	// Только для врагов. 0 = +x, 90 = +y
	FacingDeg float64 `json:"facingDeg,omitempty"`

	// Только для местности
	TerrainKind TerrainKind `json:"terrainKind,omitempty"`
	GroupID     string      `json:"groupId,omitempty"`
}

// EffectiveSize - размер футпринта; все, что меньше 1, считается 1.
func (e *Element) EffectiveSize() int {
	if e.Size < 1 {
		return 1
	}
	return e.Size
}

// Footprint - блок size x size клеток, привязанный к Anchor.
func (e *Element) Footprint() Rect {
	s := e.EffectiveSize()
	return Rect{X: e.Anchor.X, Y: e.Anchor.Y, W: s, H: s}
}

// Center - центр футпринта в координатах клеток (anchor + size/2).
func (e *Element) Center() (float64, float64) {
	half := float64(e.EffectiveSize()) / 2
	return float64(e.Anchor.X) + half, float64(e.Anchor.Y) + half
}

func (e *Element) IsActor() bool {
	return e.Kind == ElementPlayer || e.Kind == ElementEnemy
}

func (e *Element) IsTerrain() bool {
	return e.Kind == ElementTerrain
}

// BaseMovementFeet - скорость из снимка или значение по умолчанию.
func (e *Element) BaseMovementFeet() float64 {
	if e.MovementFeet == nil {
		return DefaultMovementFeet
	}
	return *e.MovementFeet
}
