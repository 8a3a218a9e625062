package network

import (
	"sort"
	"sync"

	"github.com/Elliott-ab/Battlemap-sub000/pkg/api"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
)

// SessionBuffer - емкость личного канала сессии
const SessionBuffer = 64

// Broadcaster занимается только доставкой ответов подписчикам (сессиям сокета)
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: SessionID -> Личный канал
	subscribers map[string]chan api.Response
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.Response),
	}
}

// Register создает личный канал для сессии
func (b *Broadcaster) Register(sessionID string) chan api.Response {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[sessionID]; ok {
		close(old)
	}

	ch := make(chan api.Response, SessionBuffer)
	b.subscribers[sessionID] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		close(ch)
		delete(b.subscribers, sessionID)
	}
}

// SendTo отправляет ответ конкретной сессии. false - сессии нет или канал переполнен.
func (b *Broadcaster) SendTo(sessionID string, msg api.Response) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[sessionID]
	if !ok {
		return false
	}
	select {
	case ch <- msg:
		return true
	default:
		logger.Log.WithField("session", sessionID).Warn("Hub: channel full, response dropped.")
		return false
	}
}

// HasSubscriber проверяет, жива ли сессия.
// Воркеры не отправляют результат в закрытую сессию.
func (b *Broadcaster) HasSubscriber(sessionID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[sessionID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Sessions - отсортированный список активных сессий (для /debug/sessions)
func (b *Broadcaster) Sessions() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, 0, len(b.subscribers))
	for id := range b.subscribers {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
