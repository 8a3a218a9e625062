package systems

import (
	"math"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ModifierStack - свернутые активные модификаторы одной категории:
// итог = floor(max(0, base + Add) * Mult).
type ModifierStack struct {
	Add  int
	Mult float64
	// Applied - сколько модификаторов реально учтено
	Applied int
}

// CollectModifiers фильтрует и сворачивает модификаторы. Сумма и произведение
// коммутативны, поэтому порядок списка на результат не влияет.
// Проценты перемножаются: два модификатора по 50% дают 0.25.
func CollectModifiers(category domain.ModifierCategory, kind domain.ElementKind, modifiers []domain.GlobalModifier) ModifierStack {
	stack := ModifierStack{Mult: 1}
	for _, m := range modifiers {
		if !m.Enabled || m.Category != category || !m.AppliesTo(kind) {
			continue
		}
		switch m.Mode {
		case domain.ModePlus:
			stack.Add += m.Magnitude
		case domain.ModeMinus:
			stack.Add -= m.Magnitude
		case domain.ModePercent:
			stack.Mult *= float64(m.Magnitude) / 100
		default:
			continue
		}
		stack.Applied++
	}
	return stack
}

// MaxModifiedValue - потолок результата стека. Большие значения обрезаются, а не переполняют int.
const MaxModifiedValue = math.MaxInt32

// Apply применяет стек к базовому значению.
func (s ModifierStack) Apply(base float64) int {
	return floorClamp(math.Max(0, base+float64(s.Add))*s.Mult, MaxModifiedValue)
}

// floorClamp - floor(v), зажатый в [0, limit]. NaN дает 0.
func floorClamp(v, limit float64) int {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= limit:
		return int(limit)
	}
	return int(math.Floor(v))
}

// EffectiveMovement - эффективный бюджет движения актора в футах.
func EffectiveMovement(baseFeet float64, kind domain.ElementKind, modifiers []domain.GlobalModifier) int {
	stack := CollectModifiers(domain.ModifierMovement, kind, modifiers)
	feet := stack.Apply(baseFeet)

	logger.Log.WithFields(logrus.Fields{
		"component": "modifier_engine",
		"kind":      kind,
		"base":      baseFeet,
		"add":       stack.Add,
		"mult":      stack.Mult,
		"effective": feet,
	}).Debug("Movement budget resolved.")

	return feet
}

// EffectiveHP - то же самое для категории HP (максимум здоровья с учетом модификаторов).
func EffectiveHP(baseHP int, kind domain.ElementKind, modifiers []domain.GlobalModifier) int {
	return CollectModifiers(domain.ModifierHP, kind, modifiers).Apply(float64(baseHP))
}
