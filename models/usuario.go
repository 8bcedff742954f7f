package models

import "time"

// Usuario es el registro público de un usuario del sitio. El hash de la
// contraseña nunca sale en las respuestas.
type Usuario struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Roles reconocidos por el sitio.
const (
	RolAdministrador = "administrador"
	RolAnalitico     = "analitico"
	RolUsuario       = "usuario"
)
