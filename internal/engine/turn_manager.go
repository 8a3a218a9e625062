package engine

import (
	"container/heap"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
	"github.com/sirupsen/logrus"
)

// TurnManager отслеживает порядок инициативы и текущий ход.
// Принадлежит коллаборатору (хосту), движок только читает Current().
type TurnManager struct {
	queue   TurnQueue
	itemMap map[domain.ElementID]*TurnItem
	seq     int
	current domain.ElementID
	round   int
}

func NewTurnManager() *TurnManager {
	return &TurnManager{
		queue:   make(TurnQueue, 0),
		itemMap: make(map[domain.ElementID]*TurnItem),
		round:   1,
	}
}

// Add регистрирует участника боя. Повторный Add обновляет инициативу.
func (tm *TurnManager) Add(id domain.ElementID, initiative int) {
	if id == "" {
		return
	}
	if item, ok := tm.itemMap[id]; ok {
		tm.queue.Update(item, initiative)
		return
	}

	item := &TurnItem{ID: id, Initiative: initiative, Seq: tm.seq}
	tm.seq++
	heap.Push(&tm.queue, item)
	tm.itemMap[id] = item

	logger.Log.WithFields(logrus.Fields{
		"component":  "turn_manager",
		"element_id": id,
		"initiative": initiative,
	}).Debug("Element added to initiative.")
}

// PeekNext возвращает того, кто ходит первым в раунде.
func (tm *TurnManager) PeekNext() *TurnItem {
	if tm.queue.Len() == 0 {
		return nil
	}
	return tm.queue[0]
}

// Remove убирает участника (например, токен удален с карты).
// Если ходил он, ход переходит к следующему.
func (tm *TurnManager) Remove(id domain.ElementID) {
	item, ok := tm.itemMap[id]
	if !ok {
		return
	}
	if tm.current == id {
		next := tm.after(id)
		if next == id {
			next = ""
		}
		tm.current = next
	}
	heap.Remove(&tm.queue, item.Index)
	delete(tm.itemMap, id)
}

// Order - участники в порядке ходов.
func (tm *TurnManager) Order() []domain.ElementID {
	return tm.queue.sorted()
}

// Current - чей ход сейчас. Пока ход явно не выставлен, ходит первый по инициативе.
func (tm *TurnManager) Current() domain.ElementID {
	if tm.current != "" {
		return tm.current
	}
	if top := tm.PeekNext(); top != nil {
		return top.ID
	}
	return ""
}

// SetCurrent выставляет текущий ход. Неизвестный ID игнорируется.
func (tm *TurnManager) SetCurrent(id domain.ElementID) bool {
	if _, ok := tm.itemMap[id]; !ok {
		return false
	}
	tm.current = id
	return true
}

// Advance передает ход следующему; после последнего начинается новый раунд.
func (tm *TurnManager) Advance() domain.ElementID {
	cur := tm.Current()
	if cur == "" {
		return ""
	}
	order := tm.Order()
	if order[len(order)-1] == cur {
		tm.round++
	}
	tm.current = tm.after(cur)
	return tm.current
}

func (tm *TurnManager) Round() int {
	return tm.round
}

func (tm *TurnManager) Len() int {
	return tm.queue.Len()
}

func (tm *TurnManager) after(id domain.ElementID) domain.ElementID {
	order := tm.Order()
	for i, other := range order {
		if other == id {
			return order[(i+1)%len(order)]
		}
	}
	return ""
}

// DebugDump возвращает снимок очереди для отладки
func (tm *TurnManager) DebugDump() []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]interface{}, 0)

	cur := tm.Current()
	for _, id := range tm.Order() {
		item := tm.itemMap[id]
		result = append(result, map[string]interface{}{
			"id":         id,
			"initiative": item.Initiative,
			"current":    id == cur,
		})
	}
	return result
}
