package dto

// ErrorResponse cuerpo de error HTTP. El UI lee la clave "error".
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

// SuccessResponse cuerpo de respuesta para operaciones sin contenido (DELETE).
type SuccessResponse struct {
	Success bool `json:"success"`
}
