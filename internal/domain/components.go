package domain

// ModifierCategory - на какую характеристику действует глобальный модификатор
type ModifierCategory string

const (
	ModifierMovement ModifierCategory = "MOVEMENT"
	ModifierHP       ModifierCategory = "HP"
)

// ModifierMode - способ применения величины
type ModifierMode string

const (
	ModePlus    ModifierMode = "PLUS"
	ModeMinus   ModifierMode = "MINUS"
	ModePercent ModifierMode = "PERCENT" // множитель Magnitude/100
)

// GlobalModifier - глобальный переключатель хоста ("туман", "гололед", "спешка").
type GlobalModifier struct {
	ID               string           `json:"id"`
	Category         ModifierCategory `json:"category"`
	AppliesToPlayers bool             `json:"appliesToPlayers"`
	AppliesToEnemies bool             `json:"appliesToEnemies"`
	Enabled          bool             `json:"enabled"`
	Magnitude        int              `json:"magnitude"`
	Mode             ModifierMode     `json:"mode"`
}

// AppliesTo проверяет, действует ли модификатор на элемент данного типа.
// Местность модификаторы не получает.
func (m GlobalModifier) AppliesTo(kind ElementKind) bool {
	switch kind {
	case ElementPlayer:
		return m.AppliesToPlayers
	case ElementEnemy:
		return m.AppliesToEnemies
	default:
		return false
	}
}
