package handlers

import (
	"net/http"

	"clinichub/models"
	"clinichub/services/review"
	"clinichub/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	Reviews review.ReviewService
}

func NewReviewHandler(rs review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: rs}
}

// SubmitHandler handles POST /api/appointments/reviews.
func (h *ReviewHandler) SubmitHandler(c *gin.Context) {
	var req models.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	rv, err := h.Reviews.Submit(c.Request.Context(), actor(c).ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rv)
}
