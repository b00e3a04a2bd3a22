package v1

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clubeativo/hub-api/internal/api/handler/v1/request"
	"github.com/clubeativo/hub-api/internal/api/handler/v1/response"
	"github.com/clubeativo/hub-api/internal/domain"
)

type NewsService interface {
	Publish(ctx context.Context, news domain.News) (domain.News, error)
	GetFeed(ctx context.Context) ([]domain.News, error)
}

type NewsHandler struct {
	svc NewsService
}

func NewNewsHandler(svc NewsService) *NewsHandler {
	return &NewsHandler{
		svc: svc,
	}
}

// HandleGetNews godoc
// @Summary      News feed, newest first
// @Tags         news
// @Produce      json
// @Success      200  {array}   domain.News
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /news [get]
// @Security BearerAuth
func (h *NewsHandler) HandleGetNews(ctx *gin.Context) {
	news, err := h.svc.GetFeed(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetNews -> h.svc.GetFeed -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, news)
}

// HandleCreateNews godoc
// @Summary      Publish a news item
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateNewsRequest true "request body"
// @Success      201      {object}  domain.News
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /news [post]
// @Security BearerAuth
func (h *NewsHandler) HandleCreateNews(ctx *gin.Context) {
	var req request.CreateNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	news, err := h.svc.Publish(ctx.Request.Context(), domain.News{
		Title:       req.Title,
		Content:     req.Content,
		PublishedAt: time.Now(),
		EventID:     req.EventID,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateNews -> h.svc.Publish -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, news)
}
