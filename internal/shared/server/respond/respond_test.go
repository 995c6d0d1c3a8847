package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKSetsNoStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resp := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(resp)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/analyses/demo", nil)

	OK(c, gin.H{"resumeScore": 84})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "no-store", resp.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"resumeScore":84}`, resp.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resp := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(resp)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/resumes/analyze", nil)

	Error(c, http.StatusUnprocessableEntity, "extraction_failed", "could not read", gin.H{"hint": "retry"})

	require.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "extraction_failed", body.Error.Code)
	assert.Equal(t, "could not read", body.Error.Message)
	assert.NotNil(t, body.Error.Details)
}
