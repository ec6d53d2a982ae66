package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formwork/internal/common/middleware"
	"formwork/internal/host/store"
	"formwork/internal/plan/mapper"
	"formwork/internal/plan/models"
	"formwork/internal/plan/service"
)

const drawing = `<svg xmlns="http://www.w3.org/2000/svg">
  <line id="Axis_A" x1="-15" y1="-500" x2="-15" y2="5000"/>
  <rect id="Slab_1" x="0" y="0" width="1250" height="600"/>
</svg>`

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	db, err := store.OpenSQLite(filepath.Join(dir, "formwork.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := store.New(db)
	require.NoError(t, repo.Init(context.Background()))

	logger := log.New(io.Discard)
	h := NewPlanHandler(repo, service.NewSessions(time.Hour), service.NewFileStorage(filepath.Join(dir, "plans")), mapper.DefaultOptions(), logger)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logger)})
	Routes(app, h)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, contentType string, body io.Reader) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func postJSON(t *testing.T, app *fiber.App, target string, v any) (*http.Response, []byte) {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return do(t, app, http.MethodPost, target, "application/json", bytes.NewReader(body))
}

var axisA = []models.Axis{{Name: "A", Start: models.Point{X: -15, Y: -500}, End: models.Point{X: -15, Y: 5000}}}

func TestMantissaRoutes(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		name   string
		target string
		req    any
		want   string
	}{
		{
			name:   "two end",
			target: "/mantissa/two-end",
			req:    models.TwoEndRequest{Axes: axisA, Start: models.Point{}, End: models.Point{X: 1250}},
			want:   `{"matched":true,"endL":35,"endR":15}`,
		},
		{
			name:   "two end without axes",
			target: "/mantissa/two-end",
			req:    models.TwoEndRequest{Start: models.Point{}, End: models.Point{X: 1250}},
			want:   `{"matched":false,"endL":0,"endR":0}`,
		},
		{
			name:   "section",
			target: "/mantissa/section",
			req: models.SectionRequest{
				Axes:  []models.Axis{{Name: "1", Start: models.Point{X: 0, Y: -15}, End: models.Point{X: 5000, Y: -15}}},
				End:   models.Point{X: 1000},
				Probe: models.Point{Y: 1},
			},
			want: `{"matched":true,"mantissa":35}`,
		},
		{
			name:   "single end",
			target: "/mantissa/single-end",
			req:    models.SingleEndRequest{Axes: axisA, Point: models.Point{X: 100}, Direction: models.Point{X: 1}},
			want:   `{"matched":true,"mantissa":35}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, app, tt.target, tt.req)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, tt.want, string(body))
		})
	}
}

func TestBadRequests(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"empty body", "/mantissa/two-end", ""},
		{"invalid json", "/mantissa/section", "{"},
		{"coincident ends", "/mantissa/two-end", `{"start":{"x":1,"y":1},"end":{"x":1,"y":1}}`},
		{"zero direction", "/mantissa/single-end", `{"point":{"x":1,"y":1}}`},
		{"degenerate rect", "/rect/transform", `{"p2":{"x":1000}}`},
		{"bad drawing", "/plan/analyze", "<svg"},
		{"empty drawing", "/plan/analyze", "<svg/>"},
		{"unknown system", "/plan/analyze?system=nope", drawing},
		{"bad height", "/plan/layout?height=-1", drawing},
		{"huge extension", "/mantissa/two-end", `{"start":{"x":0,"y":0},"end":{"x":5000,"y":0},"extendL":9000000000000000000}`},
		{"negative huge extension", "/mantissa/two-end", `{"start":{"x":0,"y":0},"end":{"x":5000,"y":0},"extendR":-9223372036854775808}`},
		{"huge coordinate", "/mantissa/single-end", `{"point":{"x":1e300,"y":0},"direction":{"x":1}}`},
		{"huge axis", "/mantissa/section", `{"axes":[{"start":{"x":-1e300},"end":{"x":-1e300,"y":1}}],"start":{"x":0},"end":{"x":1},"probe":{"y":1}}`},
		{"huge expand", "/rect/transform", `{"p2":{"x":1000},"p3":{"y":500},"expand":1e200}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, app, http.MethodPost, tt.target, "", strings.NewReader(tt.body))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, string(body), `"error"`)
		})
	}
}

func TestTransformRect(t *testing.T) {
	app := newApp(t)
	resp, body := postJSON(t, app, "/rect/transform", models.RectRequest{
		P2:     models.Point3{X: 1000},
		P3:     models.Point3{Y: 500},
		Expand: 10,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var r models.Rect
	require.NoError(t, json.Unmarshal(body, &r))
	assert.Equal(t, 1020.0, r.LenX)
	assert.Equal(t, 520.0, r.LenY)
	assert.Equal(t, models.Point3{X: -10, Y: -10}, r.Origin)
}

func TestTransformRectExtremeAdvance(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		name    string
		advance int
		origin  models.Point3
	}{
		{"min int", math.MinInt, models.Point3{}},
		{"large negative", -9e18 - 1, models.Point3{Y: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, app, "/rect/transform", models.RectRequest{
				P2:      models.Point3{X: 1000},
				P3:      models.Point3{Y: 500},
				Advance: tt.advance,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var r models.Rect
			require.NoError(t, json.Unmarshal(body, &r))
			assert.Equal(t, tt.origin, r.Origin)
		})
	}
}

func TestAnalyzeMultipart(t *testing.T) {
	app := newApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "plan.svg")
	require.NoError(t, err)
	_, err = part.Write([]byte(drawing))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	resp, body := do(t, app, http.MethodPost, "/plan/analyze?kind=SC", w.FormDataContentType(), &buf)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		PlanID string `json:"planId"`
		models.Analysis
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.NotEmpty(t, got.PlanID)
	require.Len(t, got.Outlines, 1)
	sides := got.Outlines[0].Loops[0].Sides
	require.Len(t, sides, 4)
	assert.Equal(t, 35, sides[0].EndL)
	assert.Equal(t, "SC", sides[0].Ranges[1].Kind)
}

func TestPlanLifecycle(t *testing.T) {
	app := newApp(t)

	// analyze keeps the plan for later requests
	resp, body := do(t, app, http.MethodPost, "/plan/analyze", "image/svg+xml", strings.NewReader(drawing))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var analyzed struct {
		PlanID string `json:"planId"`
	}
	require.NoError(t, json.Unmarshal(body, &analyzed))

	resp, body = do(t, app, http.MethodPost, "/plan/layout?name=level-1&plan="+analyzed.PlanID, "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var layout models.Layout
	require.NoError(t, json.Unmarshal(body, &layout))
	assert.Equal(t, "level-1", layout.Name)
	assert.Len(t, layout.Panels, 10)
	id := layout.DocumentID

	resp, body = do(t, app, http.MethodGet, "/documents", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []store.DocumentInfo
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "level-1", list[0].Name)
	assert.Equal(t, 10, list[0].Elements)

	resp, body = do(t, app, http.MethodGet, "/documents/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc struct {
		ID     string         `json:"id"`
		Panels []models.Panel `json:"panels"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, layout.Panels, doc.Panels)

	resp, body = do(t, app, http.MethodGet, "/documents/"+id+"/svg", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, 10, strings.Count(string(body), "<title>"))

	resp, body = do(t, app, http.MethodPost, "/plan/render?plan="+analyzed.PlanID+"&document="+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `id="Slab_1.1-002"`)

	resp, _ = do(t, app, http.MethodDelete, "/documents/"+id, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, app, http.MethodGet, "/documents/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, app, http.MethodDelete, "/documents/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNotFound(t *testing.T) {
	app := newApp(t)

	resp, _ := do(t, app, http.MethodPost, "/plan/layout?plan=expired", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/plan/render?document=missing", "", strings.NewReader(drawing))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/documents/missing/svg", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
