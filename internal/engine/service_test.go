package engine

import (
	"testing"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ComputeReachability(t *testing.T) {
	svc := NewService()

	// 10 футов = 2 клетки, ромб из 13 клеток
	res := svc.ComputeReachability(domain.Cell{X: 2, Y: 2}, 10, testGrid(5, 5), nil)
	assert.Len(t, res, 13)
	cost, ok := res.Cost(domain.Cell{X: 2, Y: 2})
	require.True(t, ok)
	assert.Equal(t, 0, cost)

	// Битая сетка - пустой результат, без паники
	bad := domain.GridSpec{Width: 0, Height: 5, CellFeet: 5}
	assert.Empty(t, svc.ComputeReachability(domain.Cell{}, 30, bad, nil))
}

func TestService_ReachabilityFor_Modifiers(t *testing.T) {
	svc := NewService()
	snap := &domain.Snapshot{
		Grid: testGrid(7, 7),
		Elements: []domain.Element{
			player("p1", 3, 3, 30),
			foe("e1", 0, 0, 0),
		},
		Modifiers: []domain.GlobalModifier{
			{
				ID: "haste-off", Category: domain.ModifierMovement,
				AppliesToPlayers: true, Enabled: true,
				Magnitude: 50, Mode: domain.ModePercent,
			},
			{
				ID: "disabled", Category: domain.ModifierMovement,
				AppliesToPlayers: true, AppliesToEnemies: true, Enabled: false,
				Magnitude: 100, Mode: domain.ModeMinus,
			},
		},
	}

	budget, ok := svc.EffectiveBudget("p1", snap)
	require.True(t, ok)
	assert.Equal(t, 15, budget)

	// 15 футов = 3 клетки: 1 + 4 + 8 + 12
	res := svc.ReachabilityFor("p1", snap)
	assert.Len(t, res, 25)

	// На врагов модификатор не действует, скорость по умолчанию 30
	budget, ok = svc.EffectiveBudget("e1", snap)
	require.True(t, ok)
	assert.Equal(t, 30, budget)
}

func TestService_ReachabilityFor_Unknown(t *testing.T) {
	svc := NewService()
	snap := &domain.Snapshot{
		Grid:     testGrid(5, 5),
		Elements: []domain.Element{rock("r1", 1, 1, 1, domain.TerrainHalf, "")},
	}

	_, ok := svc.EffectiveBudget("ghost", snap)
	assert.False(t, ok)
	assert.Empty(t, svc.ReachabilityFor("ghost", snap))

	// Местность не актор
	_, ok = svc.EffectiveBudget("r1", snap)
	assert.False(t, ok)
	assert.Empty(t, svc.ReachabilityFor("r1", snap))
}

func TestService_ComputeVisibility(t *testing.T) {
	svc := NewService()
	grid := testGrid(5, 1)
	elements := []domain.Element{
		foe("e1", 0, 0, 0),
		rock("crate", 2, 0, 1, domain.TerrainHalf, ""),
		player("p1", 4, 0, 30),
	}

	anyEnemy := svc.ComputeVisibility(grid, elements, "")
	require.Equal(t, domain.VisibilityAnyEnemy, anyEnemy.Mode)
	for x := 0; x < 5; x++ {
		assert.True(t, anyEnemy.IsVisible(domain.Cell{X: x, Y: 0}), "x=%d", x)
	}

	cover := svc.ComputeVisibility(grid, elements, "e1")
	require.Equal(t, domain.VisibilityObserver, cover.Mode)
	assert.Equal(t, domain.ElementID("e1"), cover.ObserverID)
	assert.Equal(t, 0.0, cover.SeverityAt(domain.Cell{X: 1, Y: 0}))
	assert.Equal(t, 0.5, cover.SeverityAt(domain.Cell{X: 4, Y: 0}))
}

func TestService_ComputeVisibility_NoObserver(t *testing.T) {
	svc := NewService()
	grid := testGrid(3, 3)
	elements := []domain.Element{player("p1", 1, 1, 30)}

	tests := []struct {
		name       string
		observerID domain.ElementID
	}{
		{"unknown id", "ghost"},
		{"player is not an observer", "p1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.ComputeVisibility(grid, elements, tt.observerID)
			require.Equal(t, domain.VisibilityObserver, res.Mode)
			assert.Empty(t, res.ObserverID)
			require.Len(t, res.Severity, 9)
			for _, s := range res.Severity {
				assert.Equal(t, 1.0, s)
			}
		})
	}

	// Пустой ID в режиме доли перекрытия - тоже "никто не назначен"
	res := svc.ComputeObserverCover(grid, elements, "")
	for _, s := range res.Severity {
		assert.Equal(t, 1.0, s)
	}

	// Без врагов булев режим скрывает все
	anyEnemy := svc.ComputeVisibility(grid, elements, "")
	for _, v := range anyEnemy.Visible {
		assert.False(t, v)
	}
}

func TestService_ResolveGroupMove(t *testing.T) {
	svc := NewService()
	grid := testGrid(6, 6)
	elements := []domain.Element{
		rock("a", 0, 0, 1, domain.TerrainFull, "wall"),
		rock("b", 1, 0, 1, domain.TerrainFull, "wall"),
		player("p1", 5, 5, 30),
	}

	res := svc.ResolveGroupMove("wall", 0, 2, grid, elements)
	assert.Equal(t, 0, res.Dx)
	assert.Equal(t, 2, res.Dy)
	assert.Equal(t, domain.Cell{X: 0, Y: 2}, res.Anchors["a"])
	assert.Equal(t, domain.Cell{X: 1, Y: 2}, res.Anchors["b"])

	// Снимок не меняется
	assert.Equal(t, domain.Cell{X: 0, Y: 0}, elements[0].Anchor)

	assert.Empty(t, svc.ResolveGroupMove("nope", 1, 1, grid, elements).Anchors)
}
