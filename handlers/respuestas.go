// backend/handlers/respuestas.go
package handlers

import (
	"encoding/json"
	"net/http"
)

// Respuesta es el sobre único de todas las respuestas JSON del API.
type Respuesta struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func responderJSON(w http.ResponseWriter, codigo int, respuesta Respuesta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(codigo)
	json.NewEncoder(w).Encode(respuesta)
}

func responderExito(w http.ResponseWriter, codigo int, mensaje string, data any) {
	responderJSON(w, codigo, Respuesta{Success: true, Message: mensaje, Data: data})
}

func responderError(w http.ResponseWriter, codigo int, mensaje string) {
	responderJSON(w, codigo, Respuesta{Success: false, Message: mensaje})
}
