package dto

// APIResponse sobre común de todas las respuestas HTTP.
// Un éxito nunca lleva Error y un fallo nunca lleva Data.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// OK construye una respuesta exitosa.
func OK(data any, message string) APIResponse {
	return APIResponse{Success: true, Data: data, Message: message}
}

// Fail construye una respuesta de error.
func Fail(code, message string) APIResponse {
	return APIResponse{Success: false, Code: code, Error: message}
}
