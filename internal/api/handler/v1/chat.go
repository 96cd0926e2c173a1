package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vietanh2810/supply-chain-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/supply-chain-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/service"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxMessageBytes = 8 << 10

	frameAnswer = "answer"
	frameError  = "error"

	sessionEnded = "session expired, please log in again"
)

type ChatService interface {
	Chat(ctx context.Context, message string) (string, error)
}

type SessionChecker interface {
	ValidateSession(ctx context.Context, sessionID string) (domain.Session, error)
}

type chatClient struct {
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
	userID    uint
}

// ChatHandler serves the assistant over websocket. Every text frame is one
// question; answers come back on the same connection in order. The session
// is checked again before each answer, so a logout or expiry ends the
// connection.
type ChatHandler struct {
	svc          ChatService
	sessions     SessionChecker
	upgrader     websocket.Upgrader
	clients      map[*chatClient]struct{}
	clientsMutex sync.RWMutex
}

func NewChatHandler(svc ChatService, sessions SessionChecker, allowedOrigins []string) *ChatHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &ChatHandler{
		svc:      svc,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
		clients: make(map[*chatClient]struct{}),
	}
}

// HandleWebSocket godoc
// @Summary      Chat with the assistant over websocket
// @Description  Each text frame is a question. Replies are {"type":"answer"|"error","message":"..."}.
// @Tags         advisory
// @Success      101      {string}   string "Switching Protocols"
// @Failure      401      {object}   response.Err
// @Router       /chatbot/ws [get]
// @Security     BearerAuth
func (h *ChatHandler) HandleWebSocket(ctx *gin.Context) {
	session, ok := authorize(ctx)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &chatClient{
		conn:      conn,
		send:      make(chan []byte, 16),
		sessionID: session.ID,
		userID:    session.UserID,
	}
	h.register(client)

	go client.writePump()
	client.readPump(ctx.Request.Context(), h)
}

// Connected reports how many chat connections are open.
func (h *ChatHandler) Connected() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	return len(h.clients)
}

// CloseAll disconnects every client.
func (h *ChatHandler) CloseAll() {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	for c := range h.clients {
		_ = c.conn.Close()
	}
}

func (h *ChatHandler) register(c *chatClient) {
	h.clientsMutex.Lock()
	h.clients[c] = struct{}{}
	h.clientsMutex.Unlock()
}

func (h *ChatHandler) unregister(c *chatClient) {
	h.clientsMutex.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.clientsMutex.Unlock()
}

func (h *ChatHandler) answer(ctx context.Context, raw []byte) response.ChatFrame {
	var req request.ChatRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.Message == "" {
		req.Message = string(raw)
	}

	answer, err := h.svc.Chat(ctx, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMessage) {
			return response.ChatFrame{Type: frameError, Message: service.ErrInvalidMessage.Error()}
		}
		return response.ChatFrame{Type: frameError, Message: assistantUnavailable}
	}

	return response.ChatFrame{Type: frameAnswer, Message: answer}
}

// readPump owns the read side. Returning closes send, and writePump then
// flushes what is queued and closes the connection.
func (c *chatClient) readPump(ctx context.Context, h *ChatHandler) {
	defer h.unregister(c)

	c.conn.SetReadLimit(maxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("chat connection closed", zap.Uint("user_id", c.userID), zap.Error(err))
			}
			return
		}

		reply, active := h.reply(ctx, c, message)
		frame, err := json.Marshal(reply)
		if err != nil {
			continue
		}

		select {
		case c.send <- frame:
		default:
			zap.L().Warn("chat client not draining replies", zap.Uint("user_id", c.userID))
			return
		}

		if !active {
			return
		}
	}
}

// reply answers one question if the session behind the connection is still
// active. The second return is false once the session is gone.
func (h *ChatHandler) reply(ctx context.Context, c *chatClient, message []byte) (response.ChatFrame, bool) {
	if _, err := h.sessions.ValidateSession(ctx, c.sessionID); err != nil {
		if errors.Is(err, service.ErrSessionInactive) {
			zap.L().Debug("chat session ended", zap.Uint("user_id", c.userID), zap.String("session_id", c.sessionID))
			return response.ChatFrame{Type: frameError, Message: sessionEnded}, false
		}

		zap.L().Error("chat session check failed", zap.Uint("user_id", c.userID), zap.Error(err))
		return response.ChatFrame{Type: frameError, Message: assistantUnavailable}, true
	}

	return h.answer(ctx, message), true
}

func (c *chatClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
