package engine

import (
	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/internal/systems"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Service - фасад тактического движка. Состояния между вызовами не хранит:
// каждая операция получает полный снимок и возвращает новые данные.
// Поэтому один Service безопасно вызывать из нескольких горутин.
type Service struct {
	log *logrus.Entry
}

func NewService() *Service {
	return &Service{log: logger.Component("engine")}
}

// validGrid - снимок с битой сеткой не считается, операции при этом остаются тотальными.
func (s *Service) validGrid(op string, grid domain.GridSpec) bool {
	if err := grid.Validate(); err != nil {
		s.log.WithError(err).WithField("op", op).Error("Invalid grid in snapshot.")
		return false
	}
	return true
}

// ComputeReachability - клетки, достижимые из origin при бюджете budgetFeet.
// Бюджет уже должен быть пропущен через модификаторы (см. ReachabilityFor).
func (s *Service) ComputeReachability(origin domain.Cell, budgetFeet int, grid domain.GridSpec, elements []domain.Element) domain.ReachabilityResult {
	if !s.validGrid("reachability", grid) {
		return domain.ReachabilityResult{}
	}
	index := systems.BuildTerrainIndex(grid, elements)
	return systems.ComputeReachability(origin, budgetFeet, index)
}

// EffectiveBudget - бюджет движения актора с учетом глобальных модификаторов.
// Неизвестный ID или не-актор: 0 и false.
func (s *Service) EffectiveBudget(actorID domain.ElementID, snap *domain.Snapshot) (int, bool) {
	actor := snap.Find(actorID)
	if actor == nil || !actor.IsActor() {
		return 0, false
	}
	return systems.EffectiveMovement(actor.BaseMovementFeet(), actor.Kind, snap.Modifiers), true
}

// ReachabilityFor - цепочка Modifier Engine -> Movement Solver для актора из снимка.
// Неизвестный актор дает пустой результат.
func (s *Service) ReachabilityFor(actorID domain.ElementID, snap *domain.Snapshot) domain.ReachabilityResult {
	feet, ok := s.EffectiveBudget(actorID, snap)
	if !ok {
		s.log.WithField("actor_id", actorID).Debug("Reachability requested for unknown actor.")
		return domain.ReachabilityResult{}
	}
	actor := snap.Find(actorID)
	return s.ComputeReachability(actor.Anchor, feet, snap.Grid, snap.Elements)
}

// ComputeVisibility:
//   - observerID == "" - булева видимость "хотя бы один враг";
//   - иначе доля перекрытия для этого врага. Если такого врага нет,
//     результат "наблюдатель не назначен" (все клетки 1).
//
// Без врагов обе формы отвечают одинаково: все клетки скрыты.
func (s *Service) ComputeVisibility(grid domain.GridSpec, elements []domain.Element, observerID domain.ElementID) domain.VisibilityResult {
	if !s.validGrid("visibility", grid) {
		return domain.VisibilityResult{Mode: domain.VisibilityAnyEnemy}
	}
	index := systems.BuildTerrainIndex(grid, elements)

	if observerID == "" {
		return systems.ComputeEnemyVisibility(elements, index)
	}

	return s.observerCover(index, elements, observerID)
}

// ComputeObserverCover - всегда режим доли перекрытия. Пустой или неизвестный
// observerID означает "наблюдатель не назначен": все клетки 1.
func (s *Service) ComputeObserverCover(grid domain.GridSpec, elements []domain.Element, observerID domain.ElementID) domain.VisibilityResult {
	if !s.validGrid("visibility", grid) {
		return domain.VisibilityResult{Mode: domain.VisibilityObserver}
	}
	return s.observerCover(systems.BuildTerrainIndex(grid, elements), elements, observerID)
}

func (s *Service) observerCover(index *systems.TerrainIndex, elements []domain.Element, observerID domain.ElementID) domain.VisibilityResult {
	observer := domain.FindElement(elements, observerID)
	if observer == nil || observer.Kind != domain.ElementEnemy {
		s.log.WithField("observer_id", observerID).Debug("Designated observer is not an enemy in snapshot.")
		observer = nil
	}
	return systems.ComputeObserverCover(observer, index)
}

// ResolveGroupMove - сдвиг жесткой группы местности. Неизвестная группа - пустой результат.
func (s *Service) ResolveGroupMove(groupID string, dx, dy int, grid domain.GridSpec, elements []domain.Element) systems.GroupMoveResult {
	if !s.validGrid("group_move", grid) {
		return systems.GroupMoveResult{Anchors: map[domain.ElementID]domain.Cell{}}
	}
	return systems.ResolveGroupMove(groupID, dx, dy, grid, elements)
}
