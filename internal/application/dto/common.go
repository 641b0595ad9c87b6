package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Message string `json:"error"`
	Code    string `json:"code"`
}

// MessageResponse confirmación simple (borrados, logout).
type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse confirmación con cantidad afectada.
type CountResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
