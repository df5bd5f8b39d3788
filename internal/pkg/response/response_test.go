package response

import (
	"Tieba/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func render(t *testing.T, fn func(c *gin.Context)) body {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	require.Equal(t, http.StatusOK, w.Code)
	var b body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func TestSuccess(t *testing.T) {
	b := render(t, func(c *gin.Context) { Success(c, map[string]int{"count": 2}) })
	assert.Equal(t, Ok, b.Code)
	assert.Equal(t, map[string]any{"count": float64(2)}, b.Data)
}

func TestError_BusinessCode(t *testing.T) {
	b := render(t, func(c *gin.Context) { Error(c, service.ErrRoleCeiling) })
	assert.Equal(t, service.InvalidOperation, b.Code)
	assert.Equal(t, service.ErrRoleCeiling.Error(), b.Message)

	b = render(t, func(c *gin.Context) { Error(c, service.ErrActionDuplicate) })
	assert.Equal(t, service.Conflict, b.Code)
}

func TestError_Unknown(t *testing.T) {
	b := render(t, func(c *gin.Context) { Error(c, errors.New("boom")) })
	assert.Equal(t, InternalServerError, b.Code)
	assert.Nil(t, b.Data)
}
