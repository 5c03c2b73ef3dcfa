package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidDate      = errors.New("fecha de producción inválida")
	ErrInvalidShelfLife = errors.New("vida útil fuera de rango (debe ser > 0 y <= 9999 días)")
)
