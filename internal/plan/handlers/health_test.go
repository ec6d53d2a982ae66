package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthRoutes(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		body   string
	}{
		{"live", "/health/live", nil, http.StatusOK, `"alive"`},
		{"ready", "/health/ready", nil, http.StatusOK, `"ready"`},
		{"db down", "/health/ready", errors.New("closed"), http.StatusServiceUnavailable, `"closed"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			HealthRoutes(app, fakePinger{err: tt.err})

			resp, body := do(t, app, http.MethodGet, tt.target, "", nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, string(body), tt.body)
		})
	}
}
