package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tasktracker/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := map[string]struct {
		checks map[string]handler.Check
		code   int
		body   string
	}{
		"all healthy": {
			checks: map[string]handler.Check{"database": ok},
			code:   http.StatusOK,
			body:   `{"status":"ok","dependencies":{"database":"ok"}}`,
		},
		"redis down": {
			checks: map[string]handler.Check{"database": ok, "redis": down},
			code:   http.StatusServiceUnavailable,
			body:   `{"status":"degraded","dependencies":{"database":"ok","redis":"connection refused"}}`,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", handler.NewHealthHandler(tc.checks).Health)

			resp := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/health", nil)
			r.ServeHTTP(resp, req)

			assert.Equal(t, tc.code, resp.Code)
			assert.JSONEq(t, tc.body, resp.Body.String())
		})
	}
}
