package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init пишет в stderr с уровнем по умолчанию, чтобы пакеты
// движка можно было использовать как библиотеку без main.go.
var Log = logrus.New()

// Init инициализирует глобальный логгер из переменных окружения.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	InitWith(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// InitWith настраивает логгер явно (используется в тестах и утилитах).
func InitWith(out io.Writer, levelName, format string) {
	Log = logrus.New()

	// 1. Уровень. По умолчанию - "info". Для отладки можно выставить "debug".
	if levelName == "" {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер.
	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(out)
}

// Component возвращает entry с полем "component" - так помечаются логи всех подсистем.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
