package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/clubeativo/hub-api/internal/api/handler/v1/request"
	"github.com/clubeativo/hub-api/internal/api/handler/v1/response"
	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/service"
)

type AccountService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	GetEnrolledEvents(ctx context.Context, userID uint) ([]domain.Event, error)
	GetBadges(ctx context.Context, userID uint) ([]domain.Badge, error)
	UpdateProfilePicture(ctx context.Context, userID uint, originalFilename string) (string, error)
	DeleteAccount(ctx context.Context, userID uint, password string) error
}

type PasswordService interface {
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
}

type UserHandler struct {
	svc     AccountService
	pwSvc   PasswordService
	uploads string
}

func NewUserHandler(svc AccountService, pwSvc PasswordService, uploadsDir string) *UserHandler {
	return &UserHandler{
		svc:     svc,
		pwSvc:   pwSvc,
		uploads: uploadsDir,
	}
}

// HandleGetAccount godoc
// @Summary      Get the authenticated user's account page
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetAccount(ctx *gin.Context) {
	userID, respErr := authedUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "id", userID))
			return
		}

		err = fmt.Errorf("v1.HandleGetAccount -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	events, err := h.svc.GetEnrolledEvents(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetAccount -> h.svc.GetEnrolledEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	badges, err := h.svc.GetBadges(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetAccount -> h.svc.GetBadges -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":            user,
		"enrolled_events": events,
		"badges":          badges,
	})
}

// HandleGetBadges godoc
// @Summary      Get the authenticated user's badges
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.Badge
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me/badges [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetBadges(ctx *gin.Context) {
	userID, respErr := authedUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	badges, err := h.svc.GetBadges(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetBadges -> h.svc.GetBadges -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, badges)
}

// HandleChangePassword godoc
// @Summary      Change the authenticated user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.ChangePasswordRequest true "request body"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/me/password [put]
// @Security BearerAuth
func (h *UserHandler) HandleChangePassword(ctx *gin.Context) {
	userID, respErr := authedUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.pwSvc.ChangePassword(ctx.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
			return
		}

		err = fmt.Errorf("v1.HandleChangePassword -> h.pwSvc.ChangePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// HandleUploadPicture godoc
// @Summary      Upload a profile picture
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Param        picture  formData  file  true  "image file"
// @Success      200      {object}  response.ProfilePictureResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/me/picture [post]
// @Security BearerAuth
func (h *UserHandler) HandleUploadPicture(ctx *gin.Context) {
	userID, respErr := authedUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	file, err := ctx.FormFile("picture")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filename, err := h.svc.UpdateProfilePicture(ctx.Request.Context(), userID, file.Filename)
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadPicture -> h.svc.UpdateProfilePicture -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if err = ctx.SaveUploadedFile(file, filepath.Join(h.uploads, filename)); err != nil {
		err = fmt.Errorf("v1.HandleUploadPicture -> ctx.SaveUploadedFile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ProfilePictureResponse{ImageFile: filename})
}

// HandleDeleteAccount godoc
// @Summary      Delete the authenticated user's account
// @Description  Removes the user with all memberships, enrollments, badges and forum activity in one atomic operation.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.DeleteAccountRequest true "request body"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/me [delete]
// @Security BearerAuth
func (h *UserHandler) HandleDeleteAccount(ctx *gin.Context) {
	userID, respErr := authedUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteAccount(ctx.Request.Context(), userID, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "id", userID))
		default:
			err = fmt.Errorf("v1.HandleDeleteAccount -> h.svc.DeleteAccount -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
