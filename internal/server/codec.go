package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec - формат кадров одной websocket-сессии. Им же пользуется клиент (internal/agent).
type Codec interface {
	Name() string
	// FrameType - websocket.TextMessage или websocket.BinaryMessage
	FrameType() int
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

// CodecFor выбирает кодек по параметру ?codec=. Пустое значение - JSON.
func CodecFor(name string) (Codec, error) {
	switch name {
	case "", "json":
		return jsonCodec{}, nil
	case "msgpack":
		return msgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported codec %q", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string   { return "json" }
func (jsonCodec) FrameType() int { return websocket.TextMessage }

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// msgpackCodec использует те же имена полей, что и JSON (теги json),
// чтобы клиенту не нужно было держать две схемы.
type msgpackCodec struct{}

func (msgpackCodec) Name() string   { return "msgpack" }
func (msgpackCodec) FrameType() int { return websocket.BinaryMessage }

func (msgpackCodec) Unmarshal(data []byte, v interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

func (msgpackCodec) Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
