package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinichub/models"
	"clinichub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		models.ErrNotFound:          http.StatusNotFound,
		models.ErrForbidden:         http.StatusForbidden,
		models.ErrUnauthorized:      http.StatusUnauthorized,
		models.ErrSlotTaken:         http.StatusConflict,
		models.ErrReviewExists:      http.StatusConflict,
		models.ErrInvalidTransition: http.StatusConflict,
		models.ErrUnavailable:       http.StatusServiceUnavailable,
		errors.New("boom"):          http.StatusInternalServerError,
	}
	for err, want := range cases {
		wrapped := fmt.Errorf("appointment a1: %w", err)
		assert.Equal(t, want, statusFor(wrapped), err.Error())
	}
}

func respond(err error) (*httptest.ResponseRecorder, utils.Envelope) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(c, err)

	var env utils.Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	w, env := respond(errors.New("mongo: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, utils.GenericErrorMessage, env.Error)
}

func TestRespondErrorValidation(t *testing.T) {
	verr := &models.ValidationError{}
	verr.Add("email", "invalid email address")

	w, env := respond(fmt.Errorf("register: %w", verr))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid email address", env.Fields["email"])
}

func TestRespondErrorKeepsClientMessage(t *testing.T) {
	w, env := respond(models.ErrSlotTaken)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, models.ErrSlotTaken.Error(), env.Error)
}
