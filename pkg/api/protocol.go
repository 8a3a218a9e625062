package api

import (
	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
)

// Op - название операции движка
type Op string

const (
	OpReachability Op = "REACHABILITY"
	OpVisibility   Op = "VISIBILITY"
	OpGroupMove    Op = "GROUP_MOVE"
	// OpHello - первое сообщение сервера после подключения
	OpHello Op = "HELLO"
)

// --- КЛИЕНТ -> СЕРВЕР ---

// Request это корневой объект для всех запросов коллаборатора к движку.
// Каждый запрос несет полный снимок карты: сервер ничего не хранит между вызовами.
type Request struct {
	// Op название операции.
	Op Op `json:"op"`

	// Generation монотонно растущий номер запроса для данной операции.
	// Ответ на запрос, который успел устареть (пришел запрос с большим номером),
	// сервер отбрасывает. 0 - запрос без номера, никогда не устаревает.
	Generation uint64 `json:"generation,omitempty"`

	// Snapshot неизменяемый снимок сетки, элементов и модификаторов.
	Snapshot domain.Snapshot `json:"snapshot"`

	// Ровно один из payload'ов должен соответствовать Op.
	Reachability *ReachabilityPayload `json:"reachability,omitempty"`
	Visibility   *VisibilityPayload   `json:"visibility,omitempty"`
	GroupMove    *GroupMovePayload    `json:"groupMove,omitempty"`
}

// --- Payloads ---

// ReachabilityPayload: либо ActorID (бюджет считается из снимка с модификаторами),
// либо явные Origin + BudgetFeet.
type ReachabilityPayload struct {
	ActorID    domain.ElementID `json:"actorId,omitempty"`
	Origin     *domain.Cell     `json:"origin,omitempty"`
	BudgetFeet int              `json:"budgetFeet,omitempty"`
}

// InitiativeEntry - строка трекера инициативы коллаборатора.
type InitiativeEntry struct {
	ID         domain.ElementID `json:"id"`
	Initiative int              `json:"initiative"`
}

// VisibilityPayload выбирает режим:
//   - пустой payload - булева видимость "хотя бы один враг";
//   - ObserverID - доля перекрытия для этого врага;
//   - Auto - наблюдатель выбирается политикой: SelectedID, затем текущий ход
//     по Initiative/CurrentTurn, затем первый враг в списке.
type VisibilityPayload struct {
	ObserverID  domain.ElementID  `json:"observerId,omitempty"`
	Auto        bool              `json:"auto,omitempty"`
	SelectedID  domain.ElementID  `json:"selectedId,omitempty"`
	Initiative  []InitiativeEntry `json:"initiative,omitempty"`
	CurrentTurn domain.ElementID  `json:"currentTurn,omitempty"`
}

// GroupMovePayload - сдвиг группы местности на (Dx, Dy) клеток.
type GroupMovePayload struct {
	GroupID string `json:"groupId"`
	Dx      int    `json:"dx"`
	Dy      int    `json:"dy"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// Response это ответ на один Request (или приветствие OpHello).
type Response struct {
	Op         Op     `json:"op"`
	Generation uint64 `json:"generation,omitempty"`

	// Error заполняется, если запрос некорректен. Остальные поля тогда пустые.
	Error string `json:"error,omitempty"`

	// Hello
	SessionID string `json:"sessionId,omitempty"`
	Color     string `json:"color,omitempty"`
	Version   string `json:"version,omitempty"`

	// Reachability
	BudgetFeet *int              `json:"budgetFeet,omitempty"`
	Reachable  []domain.CellCost `json:"reachable,omitempty"`

	// Visibility
	Visibility *domain.VisibilityResult `json:"visibility,omitempty"`

	// GroupMove
	GroupMove *GroupMoveView `json:"groupMove,omitempty"`
}

// AnchorView - новая позиция одного члена группы.
type AnchorView struct {
	ID     domain.ElementID `json:"id"`
	Anchor domain.Cell      `json:"anchor"`
}

// GroupMoveView - результат перемещения группы для клиента.
type GroupMoveView struct {
	Dx      int          `json:"dx"`
	Dy      int          `json:"dy"`
	Clamped bool         `json:"clamped,omitempty"`
	Blocked bool         `json:"blocked,omitempty"`
	Anchors []AnchorView `json:"anchors"`
}

// ErrorResponse - ответ с ошибкой на конкретный запрос.
func ErrorResponse(req Request, err error) Response {
	return Response{Op: req.Op, Generation: req.Generation, Error: err.Error()}
}
