package dto

// ErrorResponse cuerpo de error HTTP. Message se muestra tal cual al operador.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeletedResponse confirmación de borrado.
type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
