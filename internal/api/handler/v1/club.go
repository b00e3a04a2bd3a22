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

type ClubDirectoryService interface {
	GetClubs(ctx context.Context) ([]domain.Club, error)
	GetClubDetail(ctx context.Context, clubID, viewerID uint, now time.Time) (domain.ClubDetail, error)
	MemberCount(ctx context.Context, clubID uint) (int64, error)
	Ranking(ctx context.Context) ([]domain.RankedClub, error)
}

type MembershipService interface {
	JoinClub(ctx context.Context, userID, clubID uint) error
}

type ClubHandler struct {
	svc  ClubDirectoryService
	mSvc MembershipService
}

func NewClubHandler(svc ClubDirectoryService, mSvc MembershipService) *ClubHandler {
	return &ClubHandler{
		svc:  svc,
		mSvc: mSvc,
	}
}

// HandleGetClubs godoc
// @Summary      List all clubs
// @Tags         clubs
// @Produce      json
// @Success      200  {array}   domain.Club
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /clubs [get]
// @Security BearerAuth
func (h *ClubHandler) HandleGetClubs(ctx *gin.Context) {
	clubs, err := h.svc.GetClubs(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetClubs -> h.svc.GetClubs -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, clubs)
}

// HandleGetRanking godoc
// @Summary      Club ranking by member count
// @Description  Clubs ordered by member count descending; ties broken by club name.
// @Tags         clubs
// @Produce      json
// @Success      200  {array}   domain.RankedClub
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /clubs/ranking [get]
// @Security BearerAuth
func (h *ClubHandler) HandleGetRanking(ctx *gin.Context) {
	ranked, err := h.svc.Ranking(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRanking -> h.svc.Ranking -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, ranked)
}

// HandleGetClub godoc
// @Summary      Get a club's detail page
// @Tags         clubs
// @Produce      json
// @Param        clubID  path      int  true  "club ID"
// @Success      200     {object}  domain.ClubDetail
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /clubs/{clubID} [get]
// @Security BearerAuth
func (h *ClubHandler) HandleGetClub(ctx *gin.Context) {
	userID, respErr := authedUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	clubID, err := strconv.ParseUint(ctx.Param("clubID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	detail, err := h.svc.GetClubDetail(ctx.Request.Context(), uint(clubID), userID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("club", "id", clubID))
			return
		}

		err = fmt.Errorf("v1.HandleGetClub -> h.svc.GetClubDetail -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// HandleGetMemberCount godoc
// @Summary      Get a club's member count
// @Tags         clubs
// @Produce      json
// @Param        clubID  path      int  true  "club ID"
// @Success      200     {object}  response.MemberCountResponse
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /clubs/{clubID}/members/count [get]
// @Security BearerAuth
func (h *ClubHandler) HandleGetMemberCount(ctx *gin.Context) {
	clubID, err := strconv.ParseUint(ctx.Param("clubID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	count, err := h.svc.MemberCount(ctx.Request.Context(), uint(clubID))
	if err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("club", "id", clubID))
			return
		}

		err = fmt.Errorf("v1.HandleGetMemberCount -> h.svc.MemberCount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MemberCountResponse{
		ClubID:      uint(clubID),
		MemberCount: count,
	})
}

// HandleJoinClub godoc
// @Summary      Join a club
// @Description  Adds the authenticated user as a member. Joining twice is rejected without creating a duplicate.
// @Tags         clubs
// @Produce      json
// @Param        clubID  path      int  true  "club ID"
// @Success      201     {object}  response.MembershipResponse
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /clubs/{clubID}/join [post]
// @Security BearerAuth
func (h *ClubHandler) HandleJoinClub(ctx *gin.Context) {
	userID, respErr := authedUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	clubID, err := strconv.ParseUint(ctx.Param("clubID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.mSvc.JoinClub(ctx.Request.Context(), userID, uint(clubID)); err != nil {
		switch {
		case errors.Is(err, service.ErrClubNotFound):
			response.RenderErr(ctx, response.ErrNotFound("club", "id", clubID))
		case errors.Is(err, service.ErrAlreadyMember):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyMember))
		default:
			err = fmt.Errorf("v1.HandleJoinClub -> h.mSvc.JoinClub -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.MembershipResponse{
		Message: "membership created",
		ClubID:  uint(clubID),
	})
}
