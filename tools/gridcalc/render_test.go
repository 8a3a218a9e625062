package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/internal/engine"
	"github.com/Elliott-ab/Battlemap-sub000/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *domain.Snapshot {
	speed := 10.0
	return &domain.Snapshot{
		Grid: domain.GridSpec{Width: 5, Height: 2, CellFeet: 5},
		Elements: []domain.Element{
			{ID: "p1", Kind: domain.ElementPlayer, Anchor: domain.Cell{X: 0, Y: 0}, Size: 1, MovementFeet: &speed},
			{ID: "e1", Kind: domain.ElementEnemy, Anchor: domain.Cell{X: 4, Y: 0}, Size: 1, FacingDeg: 180},
			{ID: "wall", Kind: domain.ElementTerrain, Anchor: domain.Cell{X: 2, Y: 1}, Size: 1, TerrainKind: domain.TerrainFull, GroupID: "g"},
		},
		Modifiers: []domain.GlobalModifier{
			{ID: "tough", Category: domain.ModifierHP, AppliesToPlayers: true, Enabled: true, Magnitude: 5, Mode: domain.ModePlus},
		},
	}
}

func TestRenderElements(t *testing.T) {
	assert.Equal(t, "@...E\n..F..\n", renderElements(sampleSnapshot(), false))
}

func TestRunReach(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runReach(&out, engine.NewService(), sampleSnapshot(), []string{"p1"}))
	assert.Equal(t, "p1: 10 ft\n@12.E\n12F..\n5 cells\n", out.String())

	assert.Error(t, runReach(&out, engine.NewService(), sampleSnapshot(), []string{"ghost"}))
	assert.Error(t, runReach(&out, engine.NewService(), sampleSnapshot(), []string{"1", "x", "10"}))
}

func TestRunGroup(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runGroup(&out, engine.NewService(), sampleSnapshot(), []string{"g", "1", "0"}))
	assert.Equal(t, "requested (1,0) resolved (1,0) clamped=false blocked=false\n@...E\n...F.\n", out.String())

	assert.Error(t, runGroup(&out, engine.NewService(), sampleSnapshot(), []string{"nope", "1", "0"}))
}

func TestRunHP(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runHP(&out, sampleSnapshot(), []string{"p1", "20"}))
	assert.Equal(t, "p1: 20 -> 25 HP\n", out.String())
}

func TestRenderElements_Color(t *testing.T) {
	out := renderElements(sampleSnapshot(), true)
	// Первый токен получает первый цвет палитры (#e6194b), второй - следующий (#3cb44b)
	assert.Contains(t, out, "\x1b[38;2;230;25;75m@\x1b[0m")
	assert.Contains(t, out, "\x1b[38;2;60;180;75mE\x1b[0m")
}

func TestRunPack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.bmap")

	var out bytes.Buffer
	require.NoError(t, runPack(&out, sampleSnapshot(), []string{path}))
	assert.Equal(t, path+": 5x2, 3 elements\n", out.String())

	got, err := storage.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), got)
}
