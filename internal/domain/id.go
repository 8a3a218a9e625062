package domain

import (
	"strconv"
	"strings"
	"sync"
)

// IDAllocator выдает ID элементов: "<kind>-<n>", счетчик свой для каждого типа.
//
// Аллокатор принадлежит коллаборатору и передается явно - глобальных
// счетчиков нет. Безопасен для конкурентного использования.
type IDAllocator struct {
	mu       sync.Mutex
	counters map[string]uint64
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{counters: make(map[string]uint64)}
}

// Next возвращает следующий ID для префикса (обычно тип элемента).
func (a *IDAllocator) Next(prefix string) ElementID {
	prefix = strings.ToLower(prefix)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counters[prefix]++
	return ElementID(prefix + "-" + strconv.FormatUint(a.counters[prefix], 10))
}

// NextFor - ID для элемента данного типа.
func (a *IDAllocator) NextFor(kind ElementKind) ElementID {
	return a.Next(string(kind))
}

// Reserve сдвигает счетчик за уже существующие ID (например, после загрузки карты),
// чтобы новые ID не совпали со старыми. Чужие форматы игнорируются.
func (a *IDAllocator) Reserve(ids ...ElementID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, id := range ids {
		prefix, num, ok := strings.Cut(string(id), "-")
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(num, 10, 64)
		if err != nil {
			continue
		}
		if n > a.counters[prefix] {
			a.counters[prefix] = n
		}
	}
}

// DefaultPalette - цвета токенов по умолчанию.
var DefaultPalette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8",
	"#f58231", "#911eb4", "#46f0f0", "#f032e6",
}

// Palette раздает цвета по кругу. Как и IDAllocator, живет у коллаборатора.
type Palette struct {
	mu     sync.Mutex
	colors []string
	next   int
}

func NewPalette(colors []string) *Palette {
	if len(colors) == 0 {
		colors = DefaultPalette
	}
	c := make([]string, len(colors))
	copy(c, colors)
	return &Palette{colors: c}
}

func (p *Palette) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	color := p.colors[p.next]
	p.next = (p.next + 1) % len(p.colors)
	return color
}
