package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"

	"formwork/internal/host/memhost"
	"formwork/internal/host/store"
	"formwork/internal/panel"
	"formwork/internal/plan/mapper"
	"formwork/internal/plan/models"
	"formwork/internal/plan/service"
)

// ============================================================
// Plan Handler
// ============================================================

type PlanHandler struct {
	repo     *store.Repository
	sessions *service.Sessions
	files    *service.FileStorage
	defaults mapper.Options
	log      *log.Logger
}

func NewPlanHandler(repo *store.Repository, sessions *service.Sessions, files *service.FileStorage, defaults mapper.Options, logger *log.Logger) *PlanHandler {
	return &PlanHandler{
		repo:     repo,
		sessions: sessions,
		files:    files,
		defaults: defaults,
		log:      logger,
	}
}

type analyzeResponse struct {
	PlanID string `json:"planId"`
	models.Analysis
}

// Analyze parses an uploaded drawing and reports the cut plan of every side.
// The parsed plan is kept under the returned planId.
func (h *PlanHandler) Analyze(c fiber.Ctx) error {
	conv, err := h.converter(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	data, err := readDrawing(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	plan, err := conv.Load(bytes.NewReader(data))
	if err != nil {
		h.log.Warn("analyze: load plan", "err", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resp := analyzeResponse{
		PlanID:   h.sessions.Issue(plan, data),
		Analysis: conv.Analyze(plan),
	}
	h.log.Info("plan analyzed", "plan", resp.PlanID, "axes", len(plan.Axes), "outlines", len(plan.Outlines))
	return c.JSON(resp)
}

// Layout lays wall panels along every side of a plan into a new host
// document and stores it.
func (h *PlanHandler) Layout(c fiber.Ctx) error {
	conv, err := h.converter(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	plan, source, status, err := h.resolvePlan(c, conv)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	doc := memhost.New()
	layout, _, err := conv.Layout(plan, doc)
	if err != nil {
		return err
	}
	layout.Name = c.Query("name", "plan")

	if err := h.repo.Save(c.Context(), layout.Name, doc); err != nil {
		return err
	}
	if err := h.files.SaveSVG(doc.ID(), source); err != nil {
		return err
	}

	h.log.Info("layout stored", "document", doc.ID(), "panels", len(layout.Panels), "skipped", layout.Skipped)
	return c.Status(http.StatusCreated).JSON(layout)
}

// Render draws a plan; with ?document=<id> the panels of that stored
// document are drawn over it.
func (h *PlanHandler) Render(c fiber.Ctx) error {
	conv, err := h.converter(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	plan, _, status, err := h.resolvePlan(c, conv)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	var panels []models.Panel
	if id := c.Query("document"); id != "" {
		doc, err := h.repo.Load(c.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return err
		}
		panels = mapper.PanelsOf(doc)
	}
	return sendSVG(c, plan, panels)
}

// ============================================================
// Documents
// ============================================================

func (h *PlanHandler) ListDocuments(c fiber.Ctx) error {
	docs, err := h.repo.List(c.Context())
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []store.DocumentInfo{}
	}
	return c.JSON(docs)
}

// GetDocument returns the wall panels of a stored document.
func (h *PlanHandler) GetDocument(c fiber.Ctx) error {
	doc, err := h.repo.Load(c.Context(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "document not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"id":       doc.ID(),
		"elements": doc.Len(),
		"panels":   mapper.PanelsOf(doc),
	})
}

// GetDocumentSVG renders the stored drawing of a document with its panels.
func (h *PlanHandler) GetDocumentSVG(c fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.repo.Load(c.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "document not found"})
	}
	if err != nil {
		return err
	}
	source, err := h.files.LoadSVG(id)
	if errors.Is(err, os.ErrNotExist) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "drawing not found"})
	}
	if err != nil {
		return err
	}

	plan, err := mapper.New(h.defaults).Load(bytes.NewReader(source))
	if err != nil {
		return err
	}
	return sendSVG(c, plan, mapper.PanelsOf(doc))
}

func (h *PlanHandler) DeleteDocument(c fiber.Ctx) error {
	id := c.Params("id")
	err := h.repo.Delete(c.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "document not found"})
	}
	if err != nil {
		return err
	}
	if err := h.files.Remove(id); err != nil {
		h.log.Warn("delete drawing", "document", id, "err", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Helpers
// ============================================================

// converter applies the system, kind and height query overrides
// to the default options.
func (h *PlanHandler) converter(c fiber.Ctx) (*mapper.Converter, error) {
	opts := h.defaults
	if v := c.Query("system"); v != "" {
		sys, err := panel.ParseSystem(v)
		if err != nil {
			return nil, err
		}
		opts.System = sys
	}
	if v := c.Query("kind"); v != "" {
		kind, err := panel.ParseRangeKind(v)
		if err != nil {
			return nil, err
		}
		opts.Kind = kind
	}
	if v := c.Query("height"); v != "" {
		height, err := strconv.ParseFloat(v, 64)
		if err != nil || height <= 0 {
			return nil, errors.New("height must be a positive number of millimetres")
		}
		opts.Height = height
	}
	return mapper.New(opts), nil
}

// resolvePlan takes the plan kept under ?plan=<id> or parses the uploaded
// drawing.
func (h *PlanHandler) resolvePlan(c fiber.Ctx, conv *mapper.Converter) (*mapper.Plan, []byte, int, error) {
	if token := c.Query("plan"); token != "" {
		plan, source, ok := h.sessions.Resolve(token)
		if !ok {
			return nil, nil, http.StatusNotFound, errors.New("plan not found or expired")
		}
		return plan, source, 0, nil
	}

	data, err := readDrawing(c)
	if err != nil {
		return nil, nil, http.StatusBadRequest, err
	}
	plan, err := conv.Load(bytes.NewReader(data))
	if err != nil {
		return nil, nil, http.StatusBadRequest, err
	}
	return plan, data, 0, nil
}

// readDrawing reads the SVG from the multipart "file" field, falling back
// to the raw body.
func readDrawing(c fiber.Ctx) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, errors.New("failed to open file")
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	if len(c.Body()) == 0 {
		return nil, errors.New("SVG required in body or multipart file")
	}
	return bytes.Clone(c.Body()), nil
}

func sendSVG(c fiber.Ctx, plan *mapper.Plan, panels []models.Panel) error {
	svg, err := mapper.NewRenderer().Render(plan, panels)
	if err != nil {
		return err
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}
