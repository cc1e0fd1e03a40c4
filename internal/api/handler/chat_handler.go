package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportmeet/backend/internal/api/metrics"
	"github.com/sportmeet/backend/internal/core/domain"
	"github.com/sportmeet/backend/internal/core/ports"
)

// ChatHandler serves private chat management and message posting for both
// chat kinds.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type postMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type messageResponse struct {
	ID       string `json:"id"`
	ChatID   string `json:"chat_id"`
	SenderID string `json:"sender_id"`
	Content  string `json:"content"`
	SentAt   string `json:"sent_at"`
}

// CreatePrivate handles POST /v1/chats/private. The creator becomes the first
// participant.
//
// @Summary      Create a private chat
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  domain.PrivateChat
// @Router       /v1/chats/private [post]
func (h *ChatHandler) CreatePrivate(c echo.Context) error {
	creatorID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	chat, err := h.service.CreatePrivateChat(c.Request().Context(), creatorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, chat)
}

// GetEvent handles GET /v1/chats/event/:id.
//
// @Summary      Get an event chat
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Chat id"
// @Success      200  {object}  domain.EventChat
// @Failure      404  {object}  errorResponse
// @Router       /v1/chats/event/{id} [get]
func (h *ChatHandler) GetEvent(c echo.Context) error {
	chat, err := h.service.GetEventChat(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chat)
}

// GetPrivate handles GET /v1/chats/private/:id.
//
// @Summary      Get a private chat
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Chat id"
// @Success      200  {object}  domain.PrivateChat
// @Failure      404  {object}  errorResponse
// @Router       /v1/chats/private/{id} [get]
func (h *ChatHandler) GetPrivate(c echo.Context) error {
	chat, err := h.service.GetPrivateChat(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chat)
}

// DeletePrivate handles DELETE /v1/chats/private/:id. Idempotent.
//
// @Summary      Delete a private chat
// @Tags         chats
// @Security     BearerAuth
// @Param        id  path  string  true  "Chat id"
// @Success      204
// @Router       /v1/chats/private/{id} [delete]
func (h *ChatHandler) DeletePrivate(c echo.Context) error {
	if _, err := ctxAccountID(c); err != nil {
		return err
	}
	if err := h.service.DeletePrivateChat(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddParticipant handles PUT /v1/chats/private/:id/participants/:accountId.
//
// @Summary      Add a participant to a private chat
// @Tags         chats
// @Security     BearerAuth
// @Param        id         path  string  true  "Chat id"
// @Param        accountId  path  string  true  "Account id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/chats/private/{id}/participants/{accountId} [put]
func (h *ChatHandler) AddParticipant(c echo.Context) error {
	if _, err := ctxAccountID(c); err != nil {
		return err
	}
	if err := h.service.AddParticipant(c.Request().Context(), c.Param("id"), c.Param("accountId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveParticipant handles DELETE /v1/chats/private/:id/participants/:accountId.
//
// @Summary      Remove a participant from a private chat
// @Tags         chats
// @Security     BearerAuth
// @Param        id         path  string  true  "Chat id"
// @Param        accountId  path  string  true  "Account id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/chats/private/{id}/participants/{accountId} [delete]
func (h *ChatHandler) RemoveParticipant(c echo.Context) error {
	if _, err := ctxAccountID(c); err != nil {
		return err
	}
	if err := h.service.RemoveParticipant(c.Request().Context(), c.Param("id"), c.Param("accountId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PostEventMessage handles POST /v1/chats/event/:id/messages.
//
// @Summary      Post a message to an event chat
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "Chat id"
// @Param        body  body  postMessageRequest  true  "Message"
// @Success      201   {object}  messageResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/chats/event/{id}/messages [post]
func (h *ChatHandler) PostEventMessage(c echo.Context) error {
	return h.postMessage(c, domain.ChatKindEvent)
}

// PostPrivateMessage handles POST /v1/chats/private/:id/messages.
//
// @Summary      Post a message to a private chat
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "Chat id"
// @Param        body  body  postMessageRequest  true  "Message"
// @Success      201   {object}  messageResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/chats/private/{id}/messages [post]
func (h *ChatHandler) PostPrivateMessage(c echo.Context) error {
	return h.postMessage(c, domain.ChatKindPrivate)
}

func (h *ChatHandler) postMessage(c echo.Context, kind domain.ChatKind) error {
	senderID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.PostMessage(c.Request().Context(), ports.PostMessageInput{
		ChatID:   c.Param("id"),
		ChatKind: kind,
		SenderID: senderID,
		Content:  req.Content,
	})
	if err != nil {
		return err
	}

	metrics.MessagesPostedTotal.WithLabelValues(string(kind)).Inc()
	return c.JSON(http.StatusCreated, toMessageResponse(msg))
}

// ListMessages handles GET /v1/chats/:id/messages.
//
// @Summary      List messages of a chat
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   string  true   "Chat id"
// @Param        limit  query  int     false  "Max messages (default 50)"
// @Success      200  {array}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/chats/{id}/messages [get]
func (h *ChatHandler) ListMessages(c echo.Context) error {
	requesterID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}

	msgs, err := h.service.ListMessages(c.Request().Context(), c.Param("id"), requesterID, limit)
	if err != nil {
		return err
	}

	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return c.JSON(http.StatusOK, out)
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:       m.ID,
		ChatID:   m.ChatID,
		SenderID: m.SenderID,
		Content:  m.Content,
		SentAt:   m.SentAt.UTC().Format(time.RFC3339),
	}
}
