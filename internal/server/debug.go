package server

import (
	"encoding/json"
	"net/http"

	"github.com/Elliott-ab/Battlemap-sub000/internal/engine"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/api"
)

// DebugHandler предоставляет доступ к внутреннему состоянию сервера
type DebugHandler struct {
	srv *Server
}

func NewDebugHandler(s *Server) *DebugHandler {
	return &DebugHandler{srv: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleSessions)
	mux.HandleFunc("/debug/initiative", h.handleInitiative)
}

// /debug/sessions - активные сессии сокета и глубина очереди воркеров
func (h *DebugHandler) handleSessions(w http.ResponseWriter, r *http.Request) {
	type SessionsView struct {
		Count    int      `json:"count"`
		Sessions []string `json:"sessions"`
		Pending  int      `json:"pending"`
	}

	view := SessionsView{
		Count:    h.srv.Hub.SubscriberCount(),
		Sessions: h.srv.Hub.Sessions(),
	}
	if h.srv.Pool != nil {
		view.Pending = h.srv.Pool.Pending()
	}
	writeJSON(w, view)
}

// /debug/initiative - POST со списком инициативы, в ответ порядок ходов.
// Помогает проверить, кого SelectObserver посчитает текущим.
func (h *DebugHandler) handleInitiative(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST expected", http.StatusMethodNotAllowed)
		return
	}

	var body api.VisibilityPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad body: "+err.Error(), http.StatusBadRequest)
		return
	}

	tm := engine.NewTurnManager()
	for _, entry := range body.Initiative {
		tm.Add(entry.ID, entry.Initiative)
	}
	tm.SetCurrent(body.CurrentTurn)

	writeJSON(w, tm.DebugDump())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil, возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
