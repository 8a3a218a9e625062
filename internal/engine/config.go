package engine

import (
	"fmt"
	"os"
	"strconv"
)

// Config хранит параметры запуска движка
type Config struct {
	// Port - порт HTTP/WebSocket адаптера
	Port string
	// Workers - сколько горутин считают запросы в фоне
	Workers int
	// QueueSize - емкость очереди задач пула
	QueueSize int
	// MaxGridCells - верхняя граница W*H для запросов по сети (0 - без ограничения)
	MaxGridCells int
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		Port:         "8080",
		Workers:      4,
		QueueSize:    256,
		MaxGridCells: 250_000,
	}
}

// LoadEnv переопределяет значения из переменных окружения BM_*.
func (c *Config) LoadEnv() error {
	if v, ok := os.LookupEnv("BM_PORT"); ok && v != "" {
		c.Port = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"BM_WORKERS", &c.Workers},
		{"BM_QUEUE", &c.QueueSize},
		{"BM_MAX_CELLS", &c.MaxGridCells},
	}
	for _, it := range ints {
		v, ok := os.LookupEnv(it.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", it.key, v, err)
		}
		*it.dst = n
	}

	return c.Validate()
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("queue size must be >= 0, got %d", c.QueueSize)
	}
	if c.MaxGridCells < 0 {
		return fmt.Errorf("max grid cells must be >= 0, got %d", c.MaxGridCells)
	}
	return nil
}
