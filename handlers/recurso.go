// backend/handlers/recurso.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"backend/recursos"
)

// Proteger envuelve un handler con un requisito de rol. La implementación
// real la da el Autenticador; las pruebas pasan una que deja pasar.
type Proteger func(http.HandlerFunc) http.Handler

// RecursoHandler atiende listar/crear/actualizar/eliminar para un tipo de
// contenido según su definición de catálogo. Toda mutación se valida antes
// de tocar la pasarela y el que llama vuelve a pedir el listado después.
type RecursoHandler struct {
	def      recursos.Definicion
	pasarela recursos.Gateway
	log      *zap.Logger
}

func NuevoRecursoHandler(def recursos.Definicion, pasarela recursos.Gateway, log *zap.Logger) *RecursoHandler {
	return &RecursoHandler{def: def, pasarela: pasarela, log: log}
}

// Registrar monta las rutas del recurso. Las mutaciones quedan detrás de
// proteger salvo que la definición declare creación pública.
func (h *RecursoHandler) Registrar(r *mux.Router, proteger Proteger) {
	ruta := "/" + h.def.Nombre

	r.HandleFunc(ruta, h.Listar).Methods("GET")
	r.Handle(ruta+"/{id}", proteger(h.Actualizar)).Methods("PUT")
	if h.def.SoloActualizar {
		return
	}
	if h.def.CreacionPublica {
		r.HandleFunc(ruta, h.Crear).Methods("POST")
	} else {
		r.Handle(ruta, proteger(h.Crear)).Methods("POST")
	}
	r.Handle(ruta+"/{id}", proteger(h.Eliminar)).Methods("DELETE")
}

// Listar maneja GET /<recurso>. Admite los filtros de igualdad declarados,
// búsqueda por texto libre con q, calificacion_min y paginación.
func (h *RecursoHandler) Listar(w http.ResponseWriter, r *http.Request) {
	consulta := r.URL.Query()

	filtro := recursos.Filtro{}
	for columna, valor := range h.def.ListaFija {
		filtro[columna] = valor
	}
	for _, nombre := range h.def.Filtros {
		crudo := consulta.Get(nombre)
		if crudo == "" || crudo == "all" {
			continue
		}
		campo, ok := h.def.CampoPorNombre(nombre)
		if !ok {
			continue
		}
		valor, ok := valorDeFiltro(campo, crudo)
		if !ok {
			continue
		}
		filtro[nombre] = valor
	}

	limite := enteroODefecto(consulta.Get("limit"), h.def.LimiteDefecto)
	desplazamiento := enteroODefecto(consulta.Get("offset"), 0)

	lista, err := h.pasarela.Select(r.Context(), h.def.Tabla, filtro, h.def.Orden, limite, desplazamiento)
	if err != nil {
		h.log.Error("Error al listar", zap.String("recurso", h.def.Nombre), zap.Error(err))
		responderError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	lista = h.derivarVista(lista, consulta)
	responderExito(w, http.StatusOK, "", lista)
}

// derivarVista aplica los filtros de presentación (texto libre y umbral de
// calificación) sobre la colección ya traída, sin mutarla.
func (h *RecursoHandler) derivarVista(lista []recursos.Registro, consulta map[string][]string) []recursos.Registro {
	texto := ""
	if valores, ok := consulta["q"]; ok && len(valores) > 0 {
		texto = strings.ToLower(strings.TrimSpace(valores[0]))
	}
	minimo := 0
	if valores, ok := consulta["calificacion_min"]; ok && len(valores) > 0 {
		minimo = enteroODefecto(valores[0], 0)
	}
	if texto == "" && minimo == 0 {
		return lista
	}

	vista := make([]recursos.Registro, 0, len(lista))
	for _, registro := range lista {
		if texto != "" && len(h.def.CamposBusqueda) > 0 && !coincideTexto(registro, h.def.CamposBusqueda, texto) {
			continue
		}
		if minimo > 0 && !alcanzaCalificacion(registro, minimo) {
			continue
		}
		vista = append(vista, registro)
	}
	return vista
}

// Crear maneja POST /<recurso>.
func (h *RecursoHandler) Crear(w http.ResponseWriter, r *http.Request) {
	var cuerpo recursos.Registro
	if err := json.NewDecoder(r.Body).Decode(&cuerpo); err != nil {
		responderError(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	registro, err := h.def.ValidarCreacion(cuerpo)
	if err != nil {
		responderError(w, http.StatusBadRequest, mensajeValidacion(err))
		return
	}

	creado, err := h.pasarela.Insert(r.Context(), h.def.Tabla, registro)
	if err != nil {
		h.log.Error("Error al crear", zap.String("recurso", h.def.Nombre), zap.Error(err))
		responderError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}
	responderExito(w, http.StatusCreated, "Registro creado exitosamente", creado)
}

// Actualizar maneja PUT /<recurso>/{id}. Combina el parche sobre la fila
// almacenada; updated_at se refresca siempre.
func (h *RecursoHandler) Actualizar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(w, r)
	if !ok {
		return
	}

	var cuerpo recursos.Registro
	if err := json.NewDecoder(r.Body).Decode(&cuerpo); err != nil {
		responderError(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	parche, err := h.def.ValidarParche(cuerpo)
	if err != nil {
		responderError(w, http.StatusBadRequest, mensajeValidacion(err))
		return
	}
	parche["updated_at"] = time.Now().UTC()

	actualizado, err := h.pasarela.Update(r.Context(), h.def.Tabla, id, parche)
	if err != nil {
		if errors.Is(err, recursos.ErrNoEncontrado) {
			responderError(w, http.StatusNotFound, "Registro no encontrado")
			return
		}
		h.log.Error("Error al actualizar", zap.String("recurso", h.def.Nombre), zap.Int("id", id), zap.Error(err))
		responderError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}
	responderExito(w, http.StatusOK, "Registro actualizado exitosamente", actualizado)
}

// Eliminar maneja DELETE /<recurso>/{id}.
func (h *RecursoHandler) Eliminar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(w, r)
	if !ok {
		return
	}

	if err := h.pasarela.Delete(r.Context(), h.def.Tabla, id); err != nil {
		if errors.Is(err, recursos.ErrNoEncontrado) {
			responderError(w, http.StatusNotFound, "Registro no encontrado")
			return
		}
		h.log.Error("Error al eliminar", zap.String("recurso", h.def.Nombre), zap.Int("id", id), zap.Error(err))
		responderError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}
	responderExito(w, http.StatusOK, "Registro eliminado exitosamente", nil)
}

func idDeRuta(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		responderError(w, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return id, true
}

func mensajeValidacion(err error) string {
	var validacion *recursos.ErrorValidacion
	if errors.As(err, &validacion) && validacion.Campo != "" {
		return "El campo " + validacion.Campo + " " + validacion.Motivo
	}
	return err.Error()
}

func valorDeFiltro(campo recursos.Campo, crudo string) (any, bool) {
	switch campo.Tipo {
	case recursos.Booleano:
		b, err := strconv.ParseBool(crudo)
		if err != nil {
			return nil, false
		}
		return b, true
	case recursos.Entero:
		n, err := strconv.Atoi(crudo)
		if err != nil {
			return nil, false
		}
		return n, true
	case recursos.Numero:
		f, err := strconv.ParseFloat(crudo, 64)
		if err != nil {
			return nil, false
		}
		return f, true
	}
	return crudo, true
}

func coincideTexto(registro recursos.Registro, columnas []string, texto string) bool {
	for _, columna := range columnas {
		if valor, ok := registro[columna].(string); ok {
			if strings.Contains(strings.ToLower(valor), texto) {
				return true
			}
		}
	}
	return false
}

func alcanzaCalificacion(registro recursos.Registro, minimo int) bool {
	switch v := registro["calificacion"].(type) {
	case int:
		return v >= minimo
	case int32:
		return int(v) >= minimo
	case int64:
		return int(v) >= minimo
	case float64:
		return int(v) >= minimo
	}
	return false
}

func enteroODefecto(crudo string, defecto int) int {
	if crudo == "" {
		return defecto
	}
	n, err := strconv.Atoi(crudo)
	if err != nil || n < 0 {
		return defecto
	}
	return n
}
