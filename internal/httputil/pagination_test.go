package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/allisson/deliveryqueue/internal/httputil"
)

func newContext(url string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		expectedOffset int
		expectedLimit  int
		errorMsg       string
	}{
		{name: "default values", url: "/", expectedOffset: 0, expectedLimit: 50},
		{name: "valid custom values", url: "/?offset=10&limit=20", expectedOffset: 10, expectedLimit: 20},
		{name: "max limit", url: "/?limit=100", expectedOffset: 0, expectedLimit: 100},
		{name: "negative offset", url: "/?offset=-1", errorMsg: "invalid offset parameter"},
		{name: "non-numeric offset", url: "/?offset=abc", errorMsg: "invalid offset parameter"},
		{name: "zero limit", url: "/?limit=0", errorMsg: "invalid limit parameter"},
		{name: "limit above max", url: "/?limit=101", errorMsg: "invalid limit parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit, err := httputil.ParsePagination(newContext(tt.url))

			if tt.errorMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedOffset, offset)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}

func TestParseBoolQuery(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
		hasError bool
	}{
		{name: "absent", url: "/", expected: false},
		{name: "empty", url: "/?mine=", expected: false},
		{name: "true", url: "/?mine=true", expected: true},
		{name: "numeric true", url: "/?mine=1", expected: true},
		{name: "false", url: "/?mine=false", expected: false},
		{name: "invalid", url: "/?mine=maybe", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := httputil.ParseBoolQuery(newContext(tt.url), "mine")

			if tt.hasError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}
