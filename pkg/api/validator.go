package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOp      = errors.New("unknown op")
	ErrMissingPayload = errors.New("payload is required for op")
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// Validate проверяет, что запрос можно передать движку.
// Снимок проверяется отдельно (GridSpec.Validate), тут только форма запроса.
func (r Request) Validate() error {
	var payload Validator
	switch r.Op {
	case OpReachability:
		if r.Reachability != nil {
			payload = r.Reachability
		}
	case OpVisibility:
		// Пустой payload - допустимый режим "любой враг"
		if r.Visibility == nil {
			return nil
		}
		payload = r.Visibility
	case OpGroupMove:
		if r.GroupMove != nil {
			payload = r.GroupMove
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, r.Op)
	}

	if payload == nil {
		return fmt.Errorf("%w %s", ErrMissingPayload, r.Op)
	}
	return payload.Validate()
}

func (p *ReachabilityPayload) Validate() error {
	if p.ActorID == "" && p.Origin == nil {
		return errors.New("either actorId or origin is required")
	}
	if p.ActorID != "" && p.Origin != nil {
		return errors.New("actorId and origin are mutually exclusive")
	}
	return nil
}

func (p *VisibilityPayload) Validate() error {
	if p.ObserverID != "" && p.Auto {
		return errors.New("observerId and auto are mutually exclusive")
	}
	return nil
}

func (p *GroupMovePayload) Validate() error {
	if p.GroupID == "" {
		return errors.New("groupId is required")
	}
	return nil
}
