package server

import (
	"net/http"
	"time"

	"github.com/Elliott-ab/Battlemap-sub000/internal/engine"
	"github.com/Elliott-ab/Battlemap-sub000/internal/version"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/api"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	// Снимок большой карты целиком приходит в каждом запросе
	maxMessageSize = 8 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и пулом воркеров движка.
// Одна сессия = одно соединение; состояние сессии - только номера поколений.
type Client struct {
	srv       *Server
	conn      *websocket.Conn
	codec     Codec
	sessionID string
	color     string
	tracker   *engine.GenerationTracker
	send      chan api.Response
	log       *logrus.Entry
}

func newClient(srv *Server, conn *websocket.Conn, codec Codec) *Client {
	sessionID := string(srv.IDs.Next("session"))
	c := &Client{
		srv:       srv,
		conn:      conn,
		codec:     codec,
		sessionID: sessionID,
		color:     srv.Palette.Next(),
		tracker:   engine.NewGenerationTracker(),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "ws_client",
			"session":   sessionID,
			"codec":     codec.Name(),
		}),
	}
	c.send = srv.Hub.Register(sessionID)
	return c
}

// hello - первое сообщение сессии
func (c *Client) hello() {
	c.srv.Hub.SendTo(c.sessionID, api.Response{
		Op:        api.OpHello,
		SessionID: c.sessionID,
		Color:     c.color,
		Version:   version.Short(),
	})
}

// readPump читает запросы и отдает их пулу
func (c *Client) readPump() {
	defer func() {
		c.srv.Hub.Unregister(c.sessionID)
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Errorf("WS Error: %v", err)
			}
			return
		}

		var req api.Request
		if err := c.codec.Unmarshal(data, &req); err != nil {
			c.log.WithError(err).Warn("Malformed request.")
			c.srv.Hub.SendTo(c.sessionID, api.Response{Error: "malformed request: " + err.Error()})
			continue
		}
		c.submit(req)
	}
}

func (c *Client) submit(req api.Request) {
	if !c.tracker.Observe(req.Op, req.Generation) {
		c.log.WithFields(logrus.Fields{
			"op":         req.Op,
			"generation": req.Generation,
		}).Debug("Request arrived after a newer one, ignored.")
		return
	}

	sessionID := c.sessionID
	task := engine.Task{
		SessionID: sessionID,
		Request:   req,
		Tracker:   c.tracker,
		Deliver: func(resp api.Response) {
			c.srv.Hub.SendTo(sessionID, resp)
		},
	}
	if err := c.srv.Pool.Submit(task); err != nil {
		c.log.WithError(err).Warn("Request rejected by worker pool.")
		c.srv.Hub.SendTo(sessionID, api.ErrorResponse(req, err))
	}
}

// writePump отправляет ответы клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			data, err := c.codec.Marshal(message)
			if err != nil {
				c.log.WithError(err).Error("encode response failed")
				continue
			}
			if err := c.conn.WriteMessage(c.codec.FrameType(), data); err != nil {
				c.log.WithError(err).Debug("write message failed")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
