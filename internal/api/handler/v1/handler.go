package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubeativo/hub-api/internal/api/handler/v1/response"
	"github.com/clubeativo/hub-api/internal/api/middleware"
)

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// authedUserID pulls the user ID stored by the JWT middleware. A missing
// or mistyped value means the route was mounted without the middleware.
func authedUserID(ctx *gin.Context) (uint, *response.Err) {
	value, ok := ctx.Get(middleware.CtxKeyUserID)
	if !ok {
		return 0, &response.Err{
			StatusCode: http.StatusUnauthorized,
			Msg:        "not authenticated",
		}
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, &response.Err{
			StatusCode: http.StatusUnauthorized,
			Msg:        "not authenticated",
		}
	}

	return userID, nil
}
