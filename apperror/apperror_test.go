package apperror

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "bad request",
			err:          BadRequest("Invalid ID"),
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid ID"}`,
		},
		{
			name:         "wrapped not found",
			err:          errors.Wrap(NotFound("Product not found"), "loading product"),
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Product not found"}`,
		},
		{
			name:         "unknown error is hidden",
			err:          errors.New("connection reset by peer"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Respond(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.True(t, c.IsAborted())
		})
	}
}
