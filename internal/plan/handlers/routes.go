package handlers

import "github.com/gofiber/fiber/v3"

// Routes mounts the plan service endpoints on r.
func Routes(r fiber.Router, h *PlanHandler) {
	// ============================================================
	// Geometry Routes
	// ============================================================

	r.Post("/mantissa/two-end", TwoEndMantissa)
	r.Post("/mantissa/section", SectionMantissa)
	r.Post("/mantissa/single-end", SingleEndMantissa)
	r.Post("/rect/transform", TransformRect)

	// ============================================================
	// Plan Routes
	// ============================================================

	r.Post("/plan/analyze", h.Analyze)
	r.Post("/plan/layout", h.Layout)
	r.Post("/plan/render", h.Render)

	r.Get("/documents", h.ListDocuments)
	r.Get("/documents/:id", h.GetDocument)
	r.Get("/documents/:id/svg", h.GetDocumentSVG)
	r.Delete("/documents/:id", h.DeleteDocument)
}
