package response

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/service"
	stdjson "encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h gin.HandlerFunc) dto.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorMapsWrappedSentinel(t *testing.T) {
	resp := serve(t, func(c *gin.Context) {
		Error(c, fmt.Errorf("load report: %w", service.ErrReportNotFound))
	})
	assert.Equal(t, NotFound, resp.Code)
}

func TestErrorHidesUnknownError(t *testing.T) {
	resp := serve(t, func(c *gin.Context) {
		Error(c, fmt.Errorf("dial tcp: refused"))
	})
	assert.Equal(t, InternalServerError, resp.Code)
	assert.Equal(t, service.UnExpectedError.Error(), resp.Message)
}

func TestSuccessEnvelope(t *testing.T) {
	resp := serve(t, func(c *gin.Context) {
		Success(c, map[string]int{"n": 1})
	})
	assert.Equal(t, Ok, resp.Code)
	assert.Equal(t, "success", resp.Message)
}

func TestErrorMapsBindingErrors(t *testing.T) {
	for _, err := range []error{
		io.EOF,
		&strconv.NumError{Func: "ParseInt", Num: "abc", Err: strconv.ErrSyntax},
		&stdjson.UnmarshalTypeError{Value: "string", Field: "days", Type: reflect.TypeOf(0)},
	} {
		resp := serve(t, func(c *gin.Context) {
			Error(c, err)
		})
		assert.Equal(t, BadRequest, resp.Code, err.Error())
	}
}
