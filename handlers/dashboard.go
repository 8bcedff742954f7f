// backend/handlers/dashboard.go
package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"backend/recursos"
)

// DashboardHandler arma los resúmenes del panel administrativo y del panel
// analítico.
type DashboardHandler struct {
	pasarela recursos.Gateway
	log      *zap.Logger
}

func NuevoDashboardHandler(pasarela recursos.Gateway, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{pasarela: pasarela, log: log}
}

// ResumenAdmin maneja GET /admin/resumen: conteos en vivo por tipo de
// contenido para la portada del back-office.
func (h *DashboardHandler) ResumenAdmin(w http.ResponseWriter, r *http.Request) {
	conteos := map[string]struct {
		tabla  string
		filtro recursos.Filtro
	}{
		"noticias_activas":       {"noticias", recursos.Filtro{"activa": true}},
		"tramites_activos":       {"tramites", recursos.Filtro{"activo": true}},
		"sitios_activos":         {"sitios_turisticos", recursos.Filtro{"activo": true}},
		"ubicaciones_activas":    {"ubicaciones_mapa", recursos.Filtro{"activa": true}},
		"documentos_activos":     {"documentos_transparencia", recursos.Filtro{"activo": true}},
		"testimonios_pendientes": {"testimonios", recursos.Filtro{"estado": "pendiente"}},
		"testimonios_aprobados":  {"testimonios", recursos.Filtro{"estado": "aprobado"}},
		"usuarios_registrados":   {"usuarios", nil},
	}

	resumen := map[string]int{}
	for clave, objetivo := range conteos {
		filas, err := h.pasarela.Select(r.Context(), objetivo.tabla, objetivo.filtro, recursos.Orden{}, 0, 0)
		if err != nil {
			h.log.Error("Error al calcular resumen", zap.String("tabla", objetivo.tabla), zap.Error(err))
			responderError(w, http.StatusInternalServerError, "Error al calcular resumen")
			return
		}
		resumen[clave] = len(filas)
	}

	responderExito(w, http.StatusOK, "", resumen)
}

// ResumenAnalitico maneja GET /analitica/resumen. Cifras de demostración:
// no existe recolección real de visitas todavía.
func (h *DashboardHandler) ResumenAnalitico(w http.ResponseWriter, r *http.Request) {
	responderExito(w, http.StatusOK, "", map[string]any{
		"visitas_hoy":             247,
		"visitas_semana":          1834,
		"visitas_mes":             7892,
		"usuarios_activos":        45,
		"testimonios_pendientes":  23,
		"testimonios_aprobados":   133,
		"total_noticias":          45,
		"total_tramites":          89,
		"visitas_por_dia": []map[string]any{
			{"dia": "Lun", "visitas": 234, "usuarios": 89},
			{"dia": "Mar", "visitas": 287, "usuarios": 112},
			{"dia": "Mié", "visitas": 321, "usuarios": 134},
			{"dia": "Jue", "visitas": 298, "usuarios": 98},
			{"dia": "Vie", "visitas": 356, "usuarios": 156},
			{"dia": "Sáb", "visitas": 189, "usuarios": 67},
			{"dia": "Dom", "visitas": 149, "usuarios": 45},
		},
		"visitas_por_pagina": []map[string]any{
			{"pagina": "Inicio", "visitas": 1234},
			{"pagina": "Trámites", "visitas": 892},
			{"pagina": "Noticias", "visitas": 567},
			{"pagina": "Testimonios", "visitas": 445},
			{"pagina": "Historia", "visitas": 334},
			{"pagina": "Turismo", "visitas": 289},
		},
		"testimonios_por_calificacion": []map[string]any{
			{"calificacion": "5 estrellas", "cantidad": 78},
			{"calificacion": "4 estrellas", "cantidad": 45},
			{"calificacion": "3 estrellas", "cantidad": 23},
			{"calificacion": "2 estrellas", "cantidad": 8},
			{"calificacion": "1 estrella", "cantidad": 2},
		},
		"tramites_por_categoria": []map[string]any{
			{"categoria": "Licencias", "solicitudes": 34, "completados": 28},
			{"categoria": "Certificados", "solicitudes": 28, "completados": 25},
			{"categoria": "Permisos", "solicitudes": 15, "completados": 12},
			{"categoria": "Otros", "solicitudes": 12, "completados": 10},
		},
	})
}
