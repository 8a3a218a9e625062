package agent

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/Elliott-ab/Battlemap-sub000/internal/server"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/api"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var ErrNoHello = errors.New("server did not greet the session")

// Client - внешний клиент движка (headless-коллаборатор).
// Подключается к /ws так же, как браузер: получает HELLO, затем шлет
// запросы со снимками и ждет ответ с тем же поколением.
//
// Жизненный цикл:
//  1. Dial -> соединение, выбор кодека, чтение HELLO (SessionID, цвет, версия).
//  2. Do -> присваивает запросу следующее поколение операции и ждет ответ.
//     Ответы на устаревшие поколения пропускаются.
//  3. Close.
type Client struct {
	conn  *websocket.Conn
	codec server.Codec
	log   *logrus.Entry

	// Hello - приветствие сервера
	Hello api.Response

	mu   sync.Mutex
	gens map[api.Op]uint64
}

// Dial подключается к ws://host/ws. codec: "" или "json", "msgpack".
func Dial(ctx context.Context, rawURL, codecName string) (*Client, error) {
	codec, err := server.CodecFor(codecName)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if codecName != "" {
		q := u.Query()
		q.Set("codec", codecName)
		u.RawQuery = q.Encode()
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.Redacted(), err)
	}

	c := &Client{
		conn:  conn,
		codec: codec,
		gens:  make(map[api.Op]uint64),
		log:   logger.Log.WithFields(logrus.Fields{"component": "agent", "codec": codec.Name()}),
	}

	hello, err := c.read(ctx)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if hello.Op != api.OpHello {
		conn.Close()
		return nil, fmt.Errorf("%w: got %q", ErrNoHello, hello.Op)
	}
	c.Hello = hello
	c.log = c.log.WithField("session", hello.SessionID)
	c.log.WithField("version", hello.Version).Debug("Connected.")
	return c, nil
}

// Do отправляет запрос и ждет ответ на него. Поле Generation заполняется само.
// Один Client обслуживает один запрос за раз.
func (c *Client) Do(ctx context.Context, req api.Request) (api.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[req.Op]++
	req.Generation = c.gens[req.Op]

	data, err := c.codec.Marshal(req)
	if err != nil {
		return api.Response{}, fmt.Errorf("encode request: %w", err)
	}
	if err := c.conn.WriteMessage(c.codec.FrameType(), data); err != nil {
		return api.Response{}, fmt.Errorf("write request: %w", err)
	}

	for {
		resp, err := c.read(ctx)
		if err != nil {
			return api.Response{}, err
		}
		// Ошибка разбора кадра приходит без Op
		if resp.Op == "" && resp.Error != "" {
			return resp, errors.New(resp.Error)
		}
		if resp.Op != req.Op || resp.Generation != req.Generation {
			c.log.WithFields(logrus.Fields{
				"op":         resp.Op,
				"generation": resp.Generation,
			}).Debug("Skipping unrelated response.")
			continue
		}
		if resp.Error != "" {
			return resp, errors.New(resp.Error)
		}
		return resp, nil
	}
}

func (c *Client) read(ctx context.Context) (api.Response, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(30 * time.Second)
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return api.Response{}, err
	}

	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return api.Response{}, fmt.Errorf("read response: %w", err)
	}
	var resp api.Response
	if err := c.codec.Unmarshal(data, &resp); err != nil {
		return api.Response{}, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}

func (c *Client) Close() error {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return c.conn.Close()
}
