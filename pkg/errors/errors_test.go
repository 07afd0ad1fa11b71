package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	pkgapp "github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"

	"github.com/gin-gonic/gin"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		status int
	}{
		{name: "code", err: code.ErrorArticleNotFound, code: code.ErrorArticleNotFound.Code(), status: http.StatusNotFound},
		{name: "wrapped code", err: pkgerrors.Wrap(code.ErrorPermissionDenied, "preview"), code: code.ErrorPermissionDenied.Code(), status: http.StatusForbidden},
		{name: "plain", err: pkgerrors.New("boom"), code: code.ErrorServerInternal.Code(), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := From(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, got.StatusCode())
		})
	}
}

func TestErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(pkgapp.TraceIDKey, "trace-1")

	ErrorResponse(c, code.ErrorArticleNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"traceId":"trace-1"`)
}
