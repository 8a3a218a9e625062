package engine

import "github.com/Elliott-ab/Battlemap-sub000/internal/domain"

// SelectObserver - политика выбора "текущего" врага для режима доли перекрытия:
// явно выбранный враг, иначе враг, чей сейчас ход по инициативе,
// иначе первый враг в списке, иначе никто ("").
func SelectObserver(snap *domain.Snapshot, selectedID domain.ElementID, turns *TurnManager) domain.ElementID {
	isEnemy := func(id domain.ElementID) bool {
		e := snap.Find(id)
		return e != nil && e.Kind == domain.ElementEnemy
	}

	if isEnemy(selectedID) {
		return selectedID
	}
	if turns != nil {
		if cur := turns.Current(); isEnemy(cur) {
			return cur
		}
	}
	if enemies := snap.Enemies(); len(enemies) > 0 {
		return enemies[0].ID
	}
	return ""
}
