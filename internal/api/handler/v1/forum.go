package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubeativo/hub-api/internal/api/handler/v1/request"
	"github.com/clubeativo/hub-api/internal/api/handler/v1/response"
	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/service"
)

type ForumService interface {
	CreateTopic(ctx context.Context, topic domain.ForumTopic) (domain.ForumTopic, error)
	Reply(ctx context.Context, post domain.ForumPost) (domain.ForumPost, error)
	GetTopics(ctx context.Context) ([]domain.ForumTopic, error)
	GetTopic(ctx context.Context, topicID uint) (domain.ForumTopic, []domain.ForumPost, error)
}

type ForumHandler struct {
	svc ForumService
}

func NewForumHandler(svc ForumService) *ForumHandler {
	return &ForumHandler{
		svc: svc,
	}
}

// HandleGetTopics godoc
// @Summary      List forum topics
// @Tags         forum
// @Produce      json
// @Success      200  {array}   domain.ForumTopic
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /forum/topics [get]
// @Security BearerAuth
func (h *ForumHandler) HandleGetTopics(ctx *gin.Context) {
	topics, err := h.svc.GetTopics(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetTopics -> h.svc.GetTopics -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, topics)
}

// HandleGetTopic godoc
// @Summary      Get a topic with its replies
// @Tags         forum
// @Produce      json
// @Param        topicID  path      int  true  "topic ID"
// @Success      200      {object}  map[string]interface{}
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /forum/topics/{topicID} [get]
// @Security BearerAuth
func (h *ForumHandler) HandleGetTopic(ctx *gin.Context) {
	topicID, err := strconv.ParseUint(ctx.Param("topicID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	topic, posts, err := h.svc.GetTopic(ctx.Request.Context(), uint(topicID))
	if err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("topic", "id", topicID))
			return
		}

		err = fmt.Errorf("v1.HandleGetTopic -> h.svc.GetTopic -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"topic": topic,
		"posts": posts,
	})
}

// HandleCreateTopic godoc
// @Summary      Open a new topic
// @Tags         forum
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateTopicRequest true "request body"
// @Success      201      {object}  domain.ForumTopic
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /forum/topics [post]
// @Security BearerAuth
func (h *ForumHandler) HandleCreateTopic(ctx *gin.Context) {
	userID, respErr := authedUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	topic, err := h.svc.CreateTopic(ctx.Request.Context(), domain.ForumTopic{
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateTopic -> h.svc.CreateTopic -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, topic)
}

// HandleCreatePost godoc
// @Summary      Reply to a topic
// @Tags         forum
// @Accept       json
// @Produce      json
// @Param        topicID  path      int                        true  "topic ID"
// @Param        request  body      request.CreatePostRequest  true  "request body"
// @Success      201      {object}  domain.ForumPost
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /forum/topics/{topicID}/posts [post]
// @Security BearerAuth
func (h *ForumHandler) HandleCreatePost(ctx *gin.Context) {
	userID, respErr := authedUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	topicID, err := strconv.ParseUint(ctx.Param("topicID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CreatePostRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	post, err := h.svc.Reply(ctx.Request.Context(), domain.ForumPost{
		Content: req.Content,
		UserID:  userID,
		TopicID: uint(topicID),
	})
	if err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("topic", "id", topicID))
			return
		}

		err = fmt.Errorf("v1.HandleCreatePost -> h.svc.Reply -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, post)
}
