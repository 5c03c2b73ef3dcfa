package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateDTO fecha en formato ISO y en el formato de presentación (2024年1月2日).
type DateDTO struct {
	ISO     string `json:"iso"`
	Display string `json:"display"`
}
