package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	_ "net/http/pprof" // Profiling
	"time"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/internal/engine"
	"github.com/Elliott-ab/Battlemap-sub000/internal/network"
	"github.com/Elliott-ab/Battlemap-sub000/internal/version"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
)

type Server struct {
	Pool    *engine.Pool
	Hub     *network.Broadcaster
	IDs     *domain.IDAllocator
	Palette *domain.Palette
	Port    string
}

func New(pool *engine.Pool, port string) *Server {
	return &Server{
		Pool:    pool,
		Hub:     network.NewBroadcaster(),
		IDs:     domain.NewIDAllocator(),
		Palette: domain.NewPalette(nil),
		Port:    port,
	}
}

// Handler собирает все роуты. Отдельно от Run, чтобы тесты могли поднять httptest.Server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	debugHandler := NewDebugHandler(s)
	debugHandler.RegisterRoutes(mux)

	// pprof регистрируется в DefaultServeMux
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	return mux
}

// Run запускает HTTP сервер и останавливает его по отмене ctx
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("HTTP shutdown failed")
		}
	}()

	logger.Log.Infof("Battlemap engine running on :%s", s.Port)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket. ?codec=msgpack включает бинарные кадры.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	codec, err := CodecFor(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client := newClient(s, conn, codec)
	client.log.WithField("color", client.color).Info("Client connected")

	// Запускаем пампы
	go client.writePump()
	client.hello()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
