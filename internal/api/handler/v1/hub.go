package v1

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clubeativo/hub-api/internal/api/handler/v1/response"
	"github.com/clubeativo/hub-api/internal/domain"
)

type ScheduleService interface {
	GetWeekMenu(ctx context.Context, now time.Time) ([]domain.MenuEntry, error)
	GetCalendar(ctx context.Context, from time.Time) ([]domain.CalendarEntry, error)
}

// HubHandler serves the campus-wide pages that sit next to the clubs:
// the cafeteria menu and the academic calendar.
type HubHandler struct {
	svc ScheduleService
}

func NewHubHandler(svc ScheduleService) *HubHandler {
	return &HubHandler{
		svc: svc,
	}
}

// HandleGetMenu godoc
// @Summary      Cafeteria menu for the current week
// @Tags         hub
// @Produce      json
// @Success      200  {array}   domain.MenuEntry
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /hub/menu [get]
// @Security BearerAuth
func (h *HubHandler) HandleGetMenu(ctx *gin.Context) {
	entries, err := h.svc.GetWeekMenu(ctx.Request.Context(), time.Now())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMenu -> h.svc.GetWeekMenu -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleGetCalendar godoc
// @Summary      Academic calendar from today on
// @Tags         hub
// @Produce      json
// @Success      200  {array}   domain.CalendarEntry
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /hub/calendar [get]
// @Security BearerAuth
func (h *HubHandler) HandleGetCalendar(ctx *gin.Context) {
	entries, err := h.svc.GetCalendar(ctx.Request.Context(), time.Now())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCalendar -> h.svc.GetCalendar -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
