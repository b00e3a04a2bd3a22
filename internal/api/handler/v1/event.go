package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clubeativo/hub-api/internal/api/handler/v1/response"
	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/service"
)

const upcomingEventsLimit = 20

type EventDirectoryService interface {
	GetUpcomingEvents(ctx context.Context, now time.Time, limit int) ([]domain.Event, error)
	GetEventDetail(ctx context.Context, eventID, viewerID uint) (domain.EventDetail, error)
	SeatsRemaining(ctx context.Context, eventID uint) (int64, error)
}

type EnrollService interface {
	Enroll(ctx context.Context, userID, eventID uint) error
}

type EventHandler struct {
	svc  EventDirectoryService
	eSvc EnrollService
}

func NewEventHandler(svc EventDirectoryService, eSvc EnrollService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		eSvc: eSvc,
	}
}

// HandleGetEvents godoc
// @Summary      List upcoming events
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvents(ctx *gin.Context) {
	events, err := h.svc.GetUpcomingEvents(ctx.Request.Context(), time.Now(), upcomingEventsLimit)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvents -> h.svc.GetUpcomingEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event's detail page
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  domain.EventDetail
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	userID, respErr := authedUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	detail, err := h.svc.GetEventDetail(ctx.Request.Context(), uint(eventID), userID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "id", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEventDetail -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// HandleGetSeats godoc
// @Summary      Seats remaining for an event
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  response.SeatsRemainingResponse
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/seats [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetSeats(ctx *gin.Context) {
	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	seats, err := h.svc.SeatsRemaining(ctx.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "id", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSeats -> h.svc.SeatsRemaining -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.SeatsRemainingResponse{
		EventID:        uint(eventID),
		SeatsRemaining: seats,
	})
}

// HandleEnroll godoc
// @Summary      Enroll in an event
// @Description  Seats the authenticated user if capacity allows. Enrolling twice is rejected; a full event returns 409.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      201      {object}  response.EnrollmentResponse
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/enroll [post]
// @Security BearerAuth
func (h *EventHandler) HandleEnroll(ctx *gin.Context) {
	userID, respErr := authedUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.eSvc.Enroll(ctx.Request.Context(), userID, uint(eventID)); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "id", eventID))
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyEnrolled))
		case errors.Is(err, service.ErrCapacityExceeded):
			response.RenderErr(ctx, response.ErrConflict(service.ErrCapacityExceeded))
		default:
			err = fmt.Errorf("v1.HandleEnroll -> h.eSvc.Enroll -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.EnrollmentResponse{
		Message: "enrollment confirmed",
		EventID: uint(eventID),
	})
}
