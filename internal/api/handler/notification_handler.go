package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sportmeet/backend/internal/api/metrics"
	"github.com/sportmeet/backend/internal/core/domain"
	"github.com/sportmeet/backend/internal/core/ports"
	"github.com/sportmeet/backend/internal/notification"
)

// NotificationHandler serves the two delivery surfaces: the rest-pollable
// inbox and the socket-pushed stream.
type NotificationHandler struct {
	hub   *notification.Hub
	inbox ports.NotificationInbox
}

func NewNotificationHandler(hub *notification.Hub, inbox ports.NotificationInbox) *NotificationHandler {
	return &NotificationHandler{hub: hub, inbox: inbox}
}

// Poll handles GET /v1/notifications — returns and clears everything queued
// for the caller while offline.
//
// @Summary      Poll queued notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Notification
// @Router       /v1/notifications [get]
func (h *NotificationHandler) Poll(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	queued, err := h.inbox.Drain(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	if queued == nil {
		queued = []domain.Notification{}
	}

	metrics.NotificationsDeliveredTotal.WithLabelValues(string(domain.ChannelRest)).Add(float64(len(queued)))
	return c.JSON(http.StatusOK, queued)
}

// Stream handles GET /v1/notifications/stream — registers the caller on the
// hub and writes newline-delimited JSON payloads until the client goes away.
// Wire framing beyond that is left to the transport.
//
// @Summary      Stream notifications as they arrive
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Notification
// @Router       /v1/notifications/stream [get]
func (h *NotificationHandler) Stream(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	ch := h.hub.Connect(accountID)
	defer h.hub.Disconnect(accountID, ch)

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "application/x-ndjson")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	enc := json.NewEncoder(resp)
	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case n, ok := <-ch:
			if !ok {
				// replaced by a newer connection
				return nil
			}
			if err := enc.Encode(n); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}
