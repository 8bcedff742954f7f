// backend/handlers/middleware.go
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"backend/recursos"
)

// ctxKey es el tipo que usamos para guardar el userID en el contexto de la
// petición.
type ctxKey string

const CtxUserIDKey ctxKey = "userID"

// UserIDDesdeContexto extrae el ID del usuario autenticado, si existe.
func UserIDDesdeContexto(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(CtxUserIDKey).(int)
	return id, ok
}

// Autenticador centraliza la verificación de rol que antes se repetía por
// pantalla: una sola función parametrizada por el conjunto de roles
// admitidos. El cliente incluye un header "X-User-ID: <numero>" en cada
// petición protegida.
type Autenticador struct {
	pasarela recursos.Gateway
	log      *zap.Logger
}

func NuevoAutenticador(pasarela recursos.Gateway, log *zap.Logger) *Autenticador {
	return &Autenticador{pasarela: pasarela, log: log}
}

// RequerirRol protege un handler: 401 sin usuario, 403 con rol insuficiente.
func (a *Autenticador) RequerirRol(roles ...string) Proteger {
	return func(next http.HandlerFunc) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idStr := r.Header.Get("X-User-ID")
			if idStr == "" {
				responderError(w, http.StatusUnauthorized, "No se indicó usuario autenticado")
				return
			}
			id, err := strconv.Atoi(idStr)
			if err != nil {
				responderError(w, http.StatusBadRequest, "ID de usuario inválido")
				return
			}

			filas, err := a.pasarela.Select(r.Context(), "usuarios",
				recursos.Filtro{"id": id}, recursos.Orden{}, 1, 0)
			if err != nil {
				a.log.Error("Error verificando rol", zap.Int("id_usuario", id), zap.Error(err))
				responderError(w, http.StatusInternalServerError, "Error interno al verificar rol")
				return
			}
			if len(filas) == 0 {
				responderError(w, http.StatusUnauthorized, "Usuario no encontrado")
				return
			}

			rol, _ := filas[0]["role"].(string)
			permitido := false
			for _, admitido := range roles {
				if rol == admitido {
					permitido = true
					break
				}
			}
			if !permitido {
				responderError(w, http.StatusForbidden, "Acceso denegado: rol insuficiente")
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HabilitarCORS permite el acceso del frontend desde cualquier origen.
func HabilitarCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RegistroPeticiones anota cada petición con un id propio y deja traza de
// inicio y fin.
func RegistroPeticiones(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idPeticion := uuid.New().String()
			w.Header().Set("X-Request-ID", idPeticion)
			inicio := time.Now()

			grabador := &grabadorEstado{ResponseWriter: w, estado: http.StatusOK}
			next.ServeHTTP(grabador, r)

			log.Info("Petición atendida",
				zap.String("request_id", idPeticion),
				zap.String("metodo", r.Method),
				zap.String("ruta", r.URL.Path),
				zap.Int("estado", grabador.estado),
				zap.Duration("duracion", time.Since(inicio)),
			)
		})
	}
}

type grabadorEstado struct {
	http.ResponseWriter
	estado int
}

func (g *grabadorEstado) WriteHeader(codigo int) {
	g.estado = codigo
	g.ResponseWriter.WriteHeader(codigo)
}
