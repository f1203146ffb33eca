package handlers

import (
	"net/http"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/middleware"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/services/chat"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

// Origin checks are left to CORS and the bearer token in the query string.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type ChatHandler struct {
	Chat   chat.Service
	Hub    *chat.Hub
	Tokens middleware.TokenVerifier
}

func NewChatHandler(svc chat.Service, hub *chat.Hub, tokens middleware.TokenVerifier) *ChatHandler {
	return &ChatHandler{Chat: svc, Hub: hub, Tokens: tokens}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	caller, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var input models.SendChatInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	msg, err := h.Chat.Send(ctx, caller, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Message sent", msg))
}

func (h *ChatHandler) GetThread(c *gin.Context) {
	caller, ok := mustPrincipal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	messages, err := h.Chat.Thread(ctx, caller, c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Messages fetched", messages))
}

func (h *ChatHandler) AdminReply(c *gin.Context) {
	admin, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var input models.SendChatInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	msg, err := h.Chat.Reply(ctx, admin, c.Param("user_id"), input.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Reply sent", msg))
}

func (h *ChatHandler) GetConversations(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	conversations, err := h.Chat.Conversations(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Conversations fetched", conversations))
}

// Stream upgrades GET /api/chat/ws?token=... and pushes new messages for the
// caller's thread, or every thread for admins. Browsers cannot set headers
// on a websocket handshake, hence the query token.
func (h *ChatHandler) Stream(c *gin.Context) {
	principal, err := h.Tokens.Verify(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(err.Error()))
		return
	}
	middleware.SetPrincipal(c, principal)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	sub := h.Hub.Subscribe(principal)
	go writePump(conn, sub)
	readPump(conn)
	h.Hub.Unsubscribe(sub)
}

// readPump drains client frames until the connection fails.
func readPump(conn *websocket.Conn) {
	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, sub *chat.Subscription) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case data, ok := <-sub.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
