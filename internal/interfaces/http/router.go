package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/caducidad-api/internal/application/shelflife"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EvaluateUC *shelflife.EvaluateUseCase
	LabelUC    *shelflife.LabelUseCase
	Metrics    http.Handler // opcional; expuesto en /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	shelf := api.Group("/shelf-life")
	h := NewShelfLifeHandler(deps.EvaluateUC, deps.LabelUC)
	shelf.Get("/today", h.Today)
	shelf.Get("/presets", h.Presets)
	shelf.Post("/evaluate", h.Evaluate)
	shelf.Post("/label", h.Label)
	shelf.Get("/sessions/:id", h.Session)

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}
}
