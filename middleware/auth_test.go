package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBearerAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/products", BearerAuth("s3cret"), func(c *gin.Context) {
		c.String(http.StatusOK, "success")
	})

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "valid token",
			header:         "Bearer s3cret",
			expectedStatus: http.StatusOK,
			expectedBody:   "success",
		},
		{
			name:           "missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"Token required"}`,
		},
		{
			name:           "bearer without token",
			header:         "Bearer ",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"Token required"}`,
		},
		{
			name:           "wrong token",
			header:         "Bearer nope",
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error":"Invalid token"}`,
		},
		{
			name:           "token is case sensitive",
			header:         "Bearer S3CRET",
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error":"Invalid token"}`,
		},
		{
			name:           "other scheme",
			header:         "Basic s3cret",
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error":"Invalid token"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			} else {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}
