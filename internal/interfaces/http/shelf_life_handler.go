package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caducidad-api/internal/application/dto"
	"github.com/jhoicas/caducidad-api/internal/application/shelflife"
	"github.com/jhoicas/caducidad-api/internal/domain"
)

// ShelfLifeHandler maneja los endpoints de cálculo de caducidad.
type ShelfLifeHandler struct {
	evaluate *shelflife.EvaluateUseCase
	label    *shelflife.LabelUseCase
}

// NewShelfLifeHandler construye el handler. label puede ser nil (sin etiquetas PDF).
func NewShelfLifeHandler(evaluate *shelflife.EvaluateUseCase, label *shelflife.LabelUseCase) *ShelfLifeHandler {
	return &ShelfLifeHandler{evaluate: evaluate, label: label}
}

// Today godoc
// @Summary      Fecha actual del servidor
// @Tags         shelf-life
// @Produce      json
// @Success      200  {object}  dto.TodayResponse
// @Router       /api/shelf-life/today [get]
func (h *ShelfLifeHandler) Today(c *fiber.Ctx) error {
	return c.JSON(h.evaluate.TodayResponse())
}

// Presets godoc
// @Summary      Atajos de vida útil
// @Tags         shelf-life
// @Produce      json
// @Success      200  {array}  dto.PresetResponse
// @Router       /api/shelf-life/presets [get]
func (h *ShelfLifeHandler) Presets(c *fiber.Ctx) error {
	return c.JSON(shelflife.Presets())
}

// Evaluate godoc
// @Summary      Calcular fechas y estado de un lote
// @Description  Devuelve vencimiento, fecha de etiqueta, umbral 超三 y el estado.
//               Con session_id el servidor no repite la misma alerta dos veces seguidas.
// @Tags         shelf-life
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EvaluateRequest  true  "production_date, shelf_life, unit opcional"
// @Success      200   {object}  dto.EvaluateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/shelf-life/evaluate [post]
func (h *ShelfLifeHandler) Evaluate(c *fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.evaluate.Evaluate(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Session godoc
// @Summary      Re-evaluar la última entrada de una sesión
// @Tags         shelf-life
// @Produce      json
// @Param        id   path  string  true  "session_id"
// @Success      200  {object}  dto.EvaluateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelf-life/sessions/{id} [get]
func (h *ShelfLifeHandler) Session(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.evaluate.Reevaluate(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Label godoc
// @Summary      Etiqueta PDF del lote
// @Tags         shelf-life
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.LabelRequest  true  "Lote y datos de la etiqueta"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/shelf-life/label [post]
func (h *ShelfLifeHandler) Label(c *fiber.Ctx) error {
	if h.label == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_AVAILABLE", Message: "etiquetas no configuradas"})
	}
	var req dto.LabelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pdf, err := h.label.Generate(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	name := "etiqueta.pdf"
	if req.SKU != "" {
		name = fmt.Sprintf("etiqueta-%s.pdf", req.SKU)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", name))
	return c.Send(pdf)
}

// writeError traduce los errores de dominio a códigos HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidShelfLife):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_SHELF_LIFE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
