package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClientIPPrecedence(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{
			name:       "forwarded-for wins and takes the first hop",
			forwarded:  " 203.0.113.7 , 10.0.0.2",
			realIP:     "198.51.100.4",
			remoteAddr: "10.0.0.9:4321",
			want:       "203.0.113.7",
		},
		{
			name:       "real-ip when forwarded-for is absent",
			realIP:     "198.51.100.4",
			remoteAddr: "10.0.0.9:4321",
			want:       "198.51.100.4",
		},
		{
			name:       "remote address with port stripped",
			remoteAddr: "10.0.0.9:4321",
			want:       "10.0.0.9",
		},
		{
			name:       "remote address without port kept as is",
			remoteAddr: "10.0.0.9",
			want:       "10.0.0.9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				c.Request.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				c.Request.Header.Set("X-Real-IP", tt.realIP)
			}

			assert.Equal(t, tt.want, clientIP(c))
		})
	}
}
