package domain

// ElementKind - тип элемента на карте
type ElementKind string

// Типы элементов
const (
	ElementPlayer  ElementKind = "PLAYER"
	ElementEnemy   ElementKind = "ENEMY"
	ElementTerrain ElementKind = "TERRAIN"
)

// TerrainKind - тип местности (укрытие или труднопроходимая зона)
type TerrainKind string

const (
	TerrainQuarter       TerrainKind = "QUARTER"
	TerrainHalf          TerrainKind = "HALF"
	TerrainThreeQuarters TerrainKind = "THREE_QUARTERS"
	TerrainFull          TerrainKind = "FULL"
	TerrainDifficult     TerrainKind = "DIFFICULT"
)

// CoverSeverity - фиксированная степень перекрытия обзора для типа местности.
// Difficult не перекрывает обзор, но удваивает стоимость прохода.
func CoverSeverity(kind TerrainKind) float64 {
	switch kind {
	case TerrainQuarter:
		return 0.25
	case TerrainHalf:
		return 0.5
	case TerrainThreeQuarters:
		return 0.75
	case TerrainFull:
		return 1.0
	default:
		return 0
	}
}

// Стоимость входа в клетку (в клетках движения)
const (
	MoveCostOpen      = 1
	MoveCostDifficult = 2
)

// Параметры восприятия
const (
	FOVDegrees     = 120.0
	FOVHalfDegrees = FOVDegrees / 2
	// RaySamplesPerCell - сколько точек луча приходится на клетку по главной оси.
	RaySamplesPerCell = 3
)

// DefaultMovementFeet - базовая скорость актора без явного movementFeet.
const DefaultMovementFeet = 30.0
