package engine

import (
	"sync"

	"github.com/Elliott-ab/Battlemap-sub000/pkg/api"
)

// GenerationTracker помнит последний номер запроса по каждой операции одной сессии.
// Результат, посчитанный для меньшего номера, считается устаревшим и не отправляется.
type GenerationTracker struct {
	mu     sync.Mutex
	latest map[api.Op]uint64
}

func NewGenerationTracker() *GenerationTracker {
	return &GenerationTracker{latest: make(map[api.Op]uint64)}
}

// Observe регистрирует пришедший запрос. Возвращает false, если запрос
// устарел уже по прибытии (пришел позже более нового). Номер 0 не отслеживается.
func (g *GenerationTracker) Observe(op api.Op, gen uint64) bool {
	if gen == 0 {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen < g.latest[op] {
		return false
	}
	g.latest[op] = gen
	return true
}

// IsStale - появился ли после gen более новый запрос той же операции.
func (g *GenerationTracker) IsStale(op api.Op, gen uint64) bool {
	if gen == 0 {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return gen < g.latest[op]
}

func (g *GenerationTracker) Latest(op api.Op) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest[op]
}
