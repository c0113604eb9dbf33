package handlers

import (
	"errors"
	"net/http"

	"clinichub/middleware"
	"clinichub/models"
	"clinichub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrSlotTaken),
		errors.Is(err, models.ErrReviewExists),
		errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, models.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the envelope for err. Unexpected errors are logged and
// reported with the generic message.
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		utils.JSONValidationError(c, "Please correct the highlighted fields", verr.Fields)
		return
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		utils.GetLogger().Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		utils.JSONError(c, status, utils.GenericErrorMessage)
		return
	}
	if status == http.StatusServiceUnavailable {
		utils.GetLogger().Warn("Dependency unavailable", zap.String("path", c.FullPath()), zap.Error(err))
	}
	utils.JSONError(c, status, err.Error())
}

// bindJSON decodes the request body, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// actor returns the authenticated caller. Routes using it sit behind JWTAuth.
func actor(c *gin.Context) models.Actor {
	a, _ := middleware.GetActor(c)
	return a
}
