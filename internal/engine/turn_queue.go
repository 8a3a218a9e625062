package engine

import (
	"container/heap"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
)

// TurnItem обертка для элемента очереди инициативы
type TurnItem struct {
	ID         domain.ElementID // Чей ход
	Initiative int              // Бросок инициативы. Чем больше, тем раньше ход.
	Seq        int              // Порядок добавления (при равной инициативе раньше ходит добавленный раньше)
	Index      int              // Индекс в куче (нужен для update)
}

// TurnQueue реализует heap.Interface и хранит TurnItems
type TurnQueue []*TurnItem

func (pq TurnQueue) Len() int { return len(pq) }

func (pq TurnQueue) Less(i, j int) bool {
	// Нам нужна MaxHeap по инициативе
	if pq[i].Initiative != pq[j].Initiative {
		return pq[i].Initiative > pq[j].Initiative
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq TurnQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *TurnQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*TurnItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *TurnQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Update изменяет инициативу элемента в очереди
func (pq *TurnQueue) Update(item *TurnItem, initiative int) {
	item.Initiative = initiative
	heap.Fix(pq, item.Index)
}

// sorted возвращает ID в порядке ходов, не трогая саму очередь.
func (pq TurnQueue) sorted() []domain.ElementID {
	clone := make(TurnQueue, len(pq))
	for i, item := range pq {
		cp := *item
		clone[i] = &cp
	}

	order := make([]domain.ElementID, 0, len(clone))
	for clone.Len() > 0 {
		order = append(order, heap.Pop(&clone).(*TurnItem).ID)
	}
	return order
}
