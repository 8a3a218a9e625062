package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/api"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
	"github.com/sirupsen/logrus"
)

var ErrGridTooLarge = errors.New("grid exceeds configured cell limit")

// Dispatcher переводит протокольные запросы в вызовы Service.
type Dispatcher struct {
	svc *Service
	cfg Config
}

func NewDispatcher(svc *Service, cfg Config) *Dispatcher {
	return &Dispatcher{svc: svc, cfg: cfg}
}

// Handle обрабатывает один запрос. Ошибки формы запроса возвращаются в Response.Error,
// сами операции движка ошибок не порождают.
func (d *Dispatcher) Handle(req api.Request) api.Response {
	reqLogger := logger.Log.WithFields(logrus.Fields{
		"component":  "dispatcher",
		"op":         req.Op,
		"generation": req.Generation,
	})

	if err := d.check(req); err != nil {
		reqLogger.WithError(err).Warn("Rejected request.")
		return api.ErrorResponse(req, err)
	}

	resp := api.Response{Op: req.Op, Generation: req.Generation}
	snap := &req.Snapshot

	switch req.Op {
	case api.OpReachability:
		p := req.Reachability
		var result domain.ReachabilityResult
		budget := p.BudgetFeet
		if p.ActorID != "" {
			budget, _ = d.svc.EffectiveBudget(p.ActorID, snap)
			result = d.svc.ReachabilityFor(p.ActorID, snap)
		} else {
			result = d.svc.ComputeReachability(*p.Origin, p.BudgetFeet, snap.Grid, snap.Elements)
		}
		resp.BudgetFeet = &budget
		resp.Reachable = result.Cells()

	case api.OpVisibility:
		var vis domain.VisibilityResult
		if p := req.Visibility; p != nil && (p.Auto || p.ObserverID != "") {
			vis = d.svc.ComputeObserverCover(snap.Grid, snap.Elements, d.observerFor(snap, p))
		} else {
			vis = d.svc.ComputeVisibility(snap.Grid, snap.Elements, "")
		}
		resp.Visibility = &vis

	case api.OpGroupMove:
		p := req.GroupMove
		res := d.svc.ResolveGroupMove(p.GroupID, p.Dx, p.Dy, snap.Grid, snap.Elements)
		view := &api.GroupMoveView{
			Dx:      res.Dx,
			Dy:      res.Dy,
			Clamped: res.Clamped,
			Blocked: res.Blocked,
			Anchors: make([]api.AnchorView, 0, len(res.Anchors)),
		}
		for id, anchor := range res.Anchors {
			view.Anchors = append(view.Anchors, api.AnchorView{ID: id, Anchor: anchor})
		}
		sort.Slice(view.Anchors, func(i, j int) bool { return view.Anchors[i].ID < view.Anchors[j].ID })
		resp.GroupMove = view
	}

	reqLogger.Debug("Request handled.")
	return resp
}

func (d *Dispatcher) check(req api.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := req.Snapshot.Grid.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	if d.cfg.MaxGridCells > 0 && req.Snapshot.Grid.CellCount() > d.cfg.MaxGridCells {
		return fmt.Errorf("%w: %d > %d", ErrGridTooLarge, req.Snapshot.Grid.CellCount(), d.cfg.MaxGridCells)
	}
	return nil
}

// observerFor разворачивает VisibilityPayload в ID наблюдателя ("" - никто не назначен).
func (d *Dispatcher) observerFor(snap *domain.Snapshot, p *api.VisibilityPayload) domain.ElementID {
	if !p.Auto {
		return p.ObserverID
	}

	var turns *TurnManager
	if len(p.Initiative) > 0 {
		turns = NewTurnManager()
		for _, entry := range p.Initiative {
			turns.Add(entry.ID, entry.Initiative)
		}
		turns.SetCurrent(p.CurrentTurn)
	}
	return SelectObserver(snap, p.SelectedID, turns)
}
