package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBusy = errors.New("carrier busy")

func TestChainedResponder_MapsSentinels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	responder := NewChainedResponder("", MapSentinel(ErrBadGateway, errBusy))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/shipment", nil)
	responder.RespondError(c, fmt.Errorf("create: %w", errBusy))

	require.Equal(t, http.StatusBadGateway, w.Code)
	var body Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "create: carrier busy", body.Message)
	assert.Equal(t, TypeUpstream, body.Error.Type)
	assert.Equal(t, "/api/shipment", body.Error.Instance)
}

func TestResponder_FallsBackToInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	RespondError(c, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "boom", body.Message)
}

func TestResponder_UsesTitleWithoutDetail(t *testing.T) {
	env := NewEnvelope(ErrConflict)
	assert.Equal(t, "Conflict", env.Message)
	assert.Equal(t, http.StatusConflict, HTTPStatusFromError(ErrConflict))
}
