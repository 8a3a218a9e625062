package engine

import (
	"encoding/json"
	"testing"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(NewService(), NewConfig())
}

func baseSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Grid: testGrid(6, 6),
		Elements: []domain.Element{
			player("p1", 0, 0, 10),
			foe("e1", 5, 0, 180),
			foe("e2", 0, 5, 0),
			rock("a", 2, 2, 1, domain.TerrainHalf, "crates"),
			rock("b", 3, 2, 1, domain.TerrainHalf, "crates"),
		},
	}
}

func TestDispatcher_Rejects(t *testing.T) {
	small := NewConfig()
	small.MaxGridCells = 10

	tests := []struct {
		name string
		d    *Dispatcher
		req  api.Request
		want string
	}{
		{
			name: "unknown op",
			d:    newTestDispatcher(),
			req:  api.Request{Op: "TELEPORT", Snapshot: baseSnapshot()},
			want: "unknown op",
		},
		{
			name: "missing payload",
			d:    newTestDispatcher(),
			req:  api.Request{Op: api.OpGroupMove, Snapshot: baseSnapshot()},
			want: "payload is required",
		},
		{
			name: "invalid grid",
			d:    newTestDispatcher(),
			req: api.Request{
				Op:       api.OpVisibility,
				Snapshot: domain.Snapshot{Grid: domain.GridSpec{Width: 3, Height: 3, CellFeet: 0}},
			},
			want: "invalid snapshot",
		},
		{
			name: "grid too large",
			d:    NewDispatcher(NewService(), small),
			req:  api.Request{Op: api.OpVisibility, Snapshot: baseSnapshot()},
			want: "grid exceeds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Generation = 7
			resp := tt.d.Handle(tt.req)
			assert.Contains(t, resp.Error, tt.want)
			assert.Equal(t, tt.req.Op, resp.Op)
			assert.Equal(t, uint64(7), resp.Generation)
			assert.Nil(t, resp.Visibility)
			assert.Nil(t, resp.GroupMove)
		})
	}
}

func TestDispatcher_Reachability(t *testing.T) {
	d := newTestDispatcher()

	resp := d.Handle(api.Request{
		Op:           api.OpReachability,
		Generation:   1,
		Snapshot:     baseSnapshot(),
		Reachability: &api.ReachabilityPayload{ActorID: "p1"},
	})
	require.Empty(t, resp.Error)
	require.NotNil(t, resp.BudgetFeet)
	assert.Equal(t, 10, *resp.BudgetFeet)
	// Угол карты, 2 клетки: (0,0) (1,0) (2,0) (0,1) (1,1) (0,2)
	assert.Len(t, resp.Reachable, 6)
	assert.Equal(t, domain.CellCost{Cell: domain.Cell{X: 0, Y: 0}, Cost: 0}, resp.Reachable[0])

	origin := domain.Cell{X: 3, Y: 3}
	resp = d.Handle(api.Request{
		Op:           api.OpReachability,
		Snapshot:     baseSnapshot(),
		Reachability: &api.ReachabilityPayload{Origin: &origin, BudgetFeet: 0},
	})
	require.Empty(t, resp.Error)
	assert.Equal(t, []domain.CellCost{{Cell: origin, Cost: 0}}, resp.Reachable)
}

func TestDispatcher_Visibility(t *testing.T) {
	d := newTestDispatcher()

	tests := []struct {
		name         string
		payload      *api.VisibilityPayload
		wantMode     domain.VisibilityMode
		wantObserver domain.ElementID
	}{
		{"no payload", nil, domain.VisibilityAnyEnemy, ""},
		{"explicit observer", &api.VisibilityPayload{ObserverID: "e2"}, domain.VisibilityObserver, "e2"},
		{"auto picks selection", &api.VisibilityPayload{Auto: true, SelectedID: "e2"}, domain.VisibilityObserver, "e2"},
		{
			name: "auto picks current turn",
			payload: &api.VisibilityPayload{
				Auto: true,
				Initiative: []api.InitiativeEntry{
					{ID: "p1", Initiative: 18},
					{ID: "e2", Initiative: 12},
				},
				CurrentTurn: "e2",
			},
			wantMode:     domain.VisibilityObserver,
			wantObserver: "e2",
		},
		{"auto falls back to first enemy", &api.VisibilityPayload{Auto: true}, domain.VisibilityObserver, "e1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := d.Handle(api.Request{Op: api.OpVisibility, Snapshot: baseSnapshot(), Visibility: tt.payload})
			require.Empty(t, resp.Error)
			require.NotNil(t, resp.Visibility)
			assert.Equal(t, tt.wantMode, resp.Visibility.Mode)
			assert.Equal(t, tt.wantObserver, resp.Visibility.ObserverID)
		})
	}
}

func TestDispatcher_Visibility_AutoWithoutEnemies(t *testing.T) {
	d := newTestDispatcher()
	snap := domain.Snapshot{
		Grid:     testGrid(3, 3),
		Elements: []domain.Element{player("p1", 1, 1, 30)},
	}

	resp := d.Handle(api.Request{
		Op:         api.OpVisibility,
		Snapshot:   snap,
		Visibility: &api.VisibilityPayload{Auto: true},
	})
	require.Empty(t, resp.Error)
	require.NotNil(t, resp.Visibility)
	assert.Equal(t, domain.VisibilityObserver, resp.Visibility.Mode)
	require.Len(t, resp.Visibility.Severity, 9)
	for _, s := range resp.Visibility.Severity {
		assert.Equal(t, 1.0, s)
	}
}

func TestDispatcher_GroupMove(t *testing.T) {
	d := newTestDispatcher()

	resp := d.Handle(api.Request{
		Op:        api.OpGroupMove,
		Snapshot:  baseSnapshot(),
		GroupMove: &api.GroupMovePayload{GroupID: "crates", Dx: 0, Dy: -1},
	})
	require.Empty(t, resp.Error)
	require.NotNil(t, resp.GroupMove)
	assert.Equal(t, 0, resp.GroupMove.Dx)
	assert.Equal(t, -1, resp.GroupMove.Dy)
	assert.False(t, resp.GroupMove.Blocked)
	assert.Equal(t, []api.AnchorView{
		{ID: "a", Anchor: domain.Cell{X: 2, Y: 1}},
		{ID: "b", Anchor: domain.Cell{X: 3, Y: 1}},
	}, resp.GroupMove.Anchors)
}

func TestDispatcher_RepeatedRequestsAreByteIdentical(t *testing.T) {
	d := newTestDispatcher()
	origin := domain.Cell{X: 1, Y: 1}

	requests := []api.Request{
		{Op: api.OpReachability, Reachability: &api.ReachabilityPayload{ActorID: "p1"}},
		{Op: api.OpReachability, Reachability: &api.ReachabilityPayload{Origin: &origin, BudgetFeet: 15}},
		{Op: api.OpVisibility},
		{Op: api.OpVisibility, Visibility: &api.VisibilityPayload{ObserverID: "e1"}},
		{Op: api.OpVisibility, Visibility: &api.VisibilityPayload{Auto: true}},
		{Op: api.OpGroupMove, GroupMove: &api.GroupMovePayload{GroupID: "crates", Dx: 1, Dy: 2}},
	}

	for _, req := range requests {
		req.Snapshot = baseSnapshot()
		first, err := json.Marshal(d.Handle(req))
		require.NoError(t, err)

		// Якоря группы лежат в map: повторяем, чтобы поймать нестабильный порядок
		for i := 0; i < 10; i++ {
			again, err := json.Marshal(d.Handle(req))
			require.NoError(t, err)
			require.JSONEq(t, string(first), string(again), "op %s", req.Op)
			require.Equal(t, first, again, "op %s", req.Op)
		}
	}
}
