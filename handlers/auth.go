// backend/handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"backend/models"
	"backend/recursos"
	"backend/utils"
)

// AuthHandler maneja registro, login y logout contra la tabla usuarios.
type AuthHandler struct {
	pasarela recursos.Gateway
	log      *zap.Logger
}

func NuevoAuthHandler(pasarela recursos.Gateway, log *zap.Logger) *AuthHandler {
	return &AuthHandler{pasarela: pasarela, log: log}
}

// RegistroRequest es el payload de POST /auth/register.
type RegistroRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// LoginRequest es el payload de POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var rolesValidos = map[string]bool{
	models.RolAdministrador: true,
	models.RolAnalitico:     true,
	models.RolUsuario:       true,
}

// Registrar maneja POST /auth/register.
func (h *AuthHandler) Registrar(w http.ResponseWriter, r *http.Request) {
	var req RegistroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		responderError(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		responderError(w, http.StatusBadRequest, "Todos los campos son requeridos")
		return
	}
	if len(req.Password) < 6 {
		responderError(w, http.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres")
		return
	}
	if req.Role == "" {
		req.Role = models.RolUsuario
	}
	if !rolesValidos[req.Role] {
		responderError(w, http.StatusBadRequest, "Rol inválido")
		return
	}

	existentes, err := h.pasarela.Select(r.Context(), "usuarios",
		recursos.Filtro{"email": req.Email}, recursos.Orden{}, 1, 0)
	if err != nil {
		h.log.Error("Error verificando email", zap.Error(err))
		responderError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}
	if len(existentes) > 0 {
		responderError(w, http.StatusBadRequest, "El usuario ya existe")
		return
	}

	hash, err := utils.GenerarHash(req.Password)
	if err != nil {
		responderError(w, http.StatusInternalServerError, "Error al generar credenciales")
		return
	}

	ahora := time.Now().UTC()
	creado, err := h.pasarela.Insert(r.Context(), "usuarios", recursos.Registro{
		"email":         req.Email,
		"password_hash": hash,
		"full_name":     req.FullName,
		"role":          req.Role,
		"created_at":    ahora,
		"updated_at":    ahora,
	})
	if err != nil {
		h.log.Error("Error al crear usuario", zap.Error(err))
		responderError(w, http.StatusInternalServerError, "Error al crear usuario")
		return
	}

	responderExito(w, http.StatusCreated, "Usuario registrado exitosamente", usuarioDesdeRegistro(creado))
}

// Login maneja POST /auth/login. La verificación observada es únicamente de
// longitud: el hash almacenado no se consulta y cualquier contraseña de tres
// o más caracteres entra para un email conocido.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		responderError(w, http.StatusBadRequest, "Datos inválidos")
		return
	}
	if req.Email == "" || req.Password == "" {
		responderError(w, http.StatusBadRequest, "Email y contraseña son requeridos")
		return
	}

	filas, err := h.pasarela.Select(r.Context(), "usuarios",
		recursos.Filtro{"email": req.Email}, recursos.Orden{}, 1, 0)
	if err != nil {
		h.log.Error("Error buscando usuario", zap.Error(err))
		responderError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}
	if len(filas) == 0 {
		responderError(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	if len(req.Password) < 3 {
		responderError(w, http.StatusUnauthorized, "Contraseña muy corta")
		return
	}

	usuario := usuarioDesdeRegistro(filas[0])

	// Refrescar el perfil; si falla, el login sigue adelante.
	if _, err := h.pasarela.Update(r.Context(), "usuarios", usuario.ID,
		recursos.Registro{"updated_at": time.Now().UTC()}); err != nil {
		h.log.Warn("Error refrescando perfil", zap.Int("id_usuario", usuario.ID), zap.Error(err))
	}

	responderExito(w, http.StatusOK, "Inicio de sesión exitoso", usuario)
}

// Logout maneja POST /auth/logout. La sesión vive en el cliente, así que
// aquí no hay nada que invalidar.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	responderExito(w, http.StatusOK, "Sesión cerrada exitosamente", nil)
}

func usuarioDesdeRegistro(registro recursos.Registro) models.Usuario {
	usuario := models.Usuario{}
	usuario.ID, _ = comoEnteroCampo(registro["id"])
	usuario.Email, _ = registro["email"].(string)
	usuario.FullName, _ = registro["full_name"].(string)
	usuario.Role, _ = registro["role"].(string)
	if t, ok := registro["created_at"].(time.Time); ok {
		usuario.CreatedAt = t
	}
	if t, ok := registro["updated_at"].(time.Time); ok {
		usuario.UpdatedAt = t
	}
	return usuario
}

func comoEnteroCampo(valor any) (int, bool) {
	switch v := valor.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
