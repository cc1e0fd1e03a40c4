package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportmeet/backend/internal/api/metrics"
	"github.com/sportmeet/backend/internal/core/ports"
)

// maxPhotoBytes caps photo uploads at 5 MiB.
const maxPhotoBytes = 5 << 20

// EventHandler serves the event endpoints.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

type createEventRequest struct {
	Title     string    `json:"title"      validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
}

type eventResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	StartDate    time.Time `json:"start_date"`
	Participants []string  `json:"participants"`
	ChatID       string    `json:"chat_id"`
}

type photoResponse struct {
	ID          string `json:"id"`
	EventID     string `json:"event_id"`
	ContentType string `json:"content_type"`
}

// Create handles POST /v1/events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event draft"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	ownerID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.service.CreateEvent(c.Request().Context(), ports.CreateEventInput{
		OwnerID:   ownerID,
		Title:     req.Title,
		StartDate: req.StartDate,
	})
	if err != nil {
		return err
	}

	metrics.EventsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toEventResponse(event.ID, event.OwnerID, event.Title, event.StartDate, event.Participants, event.ChatID))
}

// List handles GET /v1/events — the public summary view of all events.
//
// @Summary      List all events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  eventResponse
// @Router       /v1/events [get]
func (h *EventHandler) List(c echo.Context) error {
	summaries, err := h.service.GetAllEvents(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]eventResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toEventResponse(s.ID, s.OwnerID, s.Title, s.StartDate, s.Participants, s.ChatID))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/events/:id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  eventResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.service.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event.ID, event.OwnerID, event.Title, event.StartDate, event.Participants, event.ChatID))
}

// Delete handles DELETE /v1/events/:id. Owner only; cascades chat and photos.
//
// @Summary      Delete an event
// @Tags         events
// @Security     BearerAuth
// @Param        id  path  string  true  "Event id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	requesterID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteEvent(c.Request().Context(), c.Param("id"), requesterID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddParticipant handles PUT /v1/events/:id/participants/:accountId.
//
// @Summary      Add a participant to an event
// @Tags         events
// @Security     BearerAuth
// @Param        id         path  string  true  "Event id"
// @Param        accountId  path  string  true  "Account id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/events/{id}/participants/{accountId} [put]
func (h *EventHandler) AddParticipant(c echo.Context) error {
	if _, err := ctxAccountID(c); err != nil {
		return err
	}
	if err := h.service.AddParticipant(c.Request().Context(), c.Param("id"), c.Param("accountId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveParticipant handles DELETE /v1/events/:id/participants/:accountId.
//
// @Summary      Remove a participant from an event
// @Tags         events
// @Security     BearerAuth
// @Param        id         path  string  true  "Event id"
// @Param        accountId  path  string  true  "Account id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/events/{id}/participants/{accountId} [delete]
func (h *EventHandler) RemoveParticipant(c echo.Context) error {
	if _, err := ctxAccountID(c); err != nil {
		return err
	}
	if err := h.service.RemoveParticipant(c.Request().Context(), c.Param("id"), c.Param("accountId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddPhoto handles POST /v1/events/:id/photos. The body is the raw image.
//
// @Summary      Attach a photo to an event
// @Tags         events
// @Accept       octet-stream
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Event id"
// @Success      201  {object}  photoResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/events/{id}/photos [post]
func (h *EventHandler) AddPhoto(c echo.Context) error {
	uploaderID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPhotoBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}
	if len(data) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "empty photo")
	}
	if len(data) > maxPhotoBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "photo too large")
	}

	photo, err := h.service.AddPhoto(c.Request().Context(), ports.AddPhotoInput{
		EventID:     c.Param("id"),
		UploaderID:  uploaderID,
		ContentType: c.Request().Header.Get(echo.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, photoResponse{
		ID:          photo.ID,
		EventID:     photo.EventID,
		ContentType: photo.ContentType,
	})
}

// RemovePhoto handles DELETE /v1/events/:id/photos/:photoId.
//
// @Summary      Remove a photo from an event
// @Tags         events
// @Security     BearerAuth
// @Param        id       path  string  true  "Event id"
// @Param        photoId  path  string  true  "Photo id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/events/{id}/photos/{photoId} [delete]
func (h *EventHandler) RemovePhoto(c echo.Context) error {
	requesterID, err := ctxAccountID(c)
	if err != nil {
		return err
	}
	if err := h.service.RemovePhoto(c.Request().Context(), c.Param("id"), c.Param("photoId"), requesterID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toEventResponse(id, ownerID, title string, start time.Time, participants []string, chatID string) eventResponse {
	return eventResponse{
		ID:           id,
		OwnerID:      ownerID,
		Title:        title,
		StartDate:    start,
		Participants: participants,
		ChatID:       chatID,
	}
}
