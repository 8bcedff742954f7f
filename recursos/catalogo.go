// backend/recursos/catalogo.go
package recursos

import "time"

// Los siete tipos de contenido del sitio municipal comparten el mismo
// manejador; aquí vive lo único que los distingue.

func rangoCalificacion() (*int, *int) {
	min, max := 1, 5
	return &min, &max
}

func marcasDeTiempo(extras ...string) func(Registro) {
	return func(registro Registro) {
		ahora := time.Now().UTC()
		registro["created_at"] = ahora
		registro["updated_at"] = ahora
		for _, columna := range extras {
			registro[columna] = ahora
		}
	}
}

// Noticias publica y administra las noticias municipales.
func Noticias() Definicion {
	return Definicion{
		Nombre: "noticias",
		Tabla:  "noticias",
		Campos: []Campo{
			{Nombre: "titulo", Tipo: Texto, Requerido: true},
			{Nombre: "contenido", Tipo: Texto, Requerido: true},
			{Nombre: "autor", Tipo: Texto, Requerido: true},
			{Nombre: "categoria", Tipo: Texto, Requerido: true},
			{Nombre: "imagen_url", Tipo: Texto},
			{Nombre: "destacada", Tipo: Booleano, Defecto: false},
			{Nombre: "activa", Tipo: Booleano, Defecto: true},
		},
		Orden:          Orden{Columna: "fecha_publicacion", Descendente: true},
		Filtros:        []string{"categoria", "destacada", "activa"},
		CamposBusqueda: []string{"titulo", "contenido"},
		LimiteDefecto:  50,
		AlCrear:        marcasDeTiempo("fecha_publicacion"),
	}
}

// Tramites lista los trámites municipales. El listado siempre se limita a
// los trámites activos.
func Tramites() Definicion {
	return Definicion{
		Nombre: "tramites",
		Tabla:  "tramites",
		Campos: []Campo{
			{Nombre: "nombre", Tipo: Texto, Requerido: true},
			{Nombre: "descripcion", Tipo: Texto, Requerido: true},
			// Lista de requisitos separada por saltos de línea; se interpreta
			// solo al renderizar.
			{Nombre: "requisitos", Tipo: Texto, Requerido: true},
			{Nombre: "costo", Tipo: Numero, Defecto: float64(0), NoNegativo: true},
			{Nombre: "tiempo_estimado", Tipo: Texto, Requerido: true},
			{Nombre: "categoria", Tipo: Texto, Requerido: true},
			{Nombre: "documento_url", Tipo: Texto},
			{Nombre: "imagen_url", Tipo: Texto},
			{Nombre: "activo", Tipo: Booleano, Defecto: true},
		},
		Orden:          Orden{Columna: "nombre"},
		Filtros:        []string{"categoria"},
		ListaFija:      Filtro{"activo": true},
		CamposBusqueda: []string{"nombre", "descripcion"},
		LimiteDefecto:  50,
		AlCrear:        marcasDeTiempo(),
	}
}

// SitiosTuristicos administra los sitios de interés turístico.
func SitiosTuristicos() Definicion {
	min, max := rangoCalificacion()
	return Definicion{
		Nombre: "sitios-turisticos",
		Tabla:  "sitios_turisticos",
		Campos: []Campo{
			{Nombre: "nombre", Tipo: Texto, Requerido: true},
			{Nombre: "descripcion", Tipo: Texto, Requerido: true},
			{Nombre: "categoria", Tipo: Texto, Requerido: true},
			{Nombre: "ubicacion", Tipo: Texto, Requerido: true},
			{Nombre: "horarios", Tipo: Texto},
			{Nombre: "precio", Tipo: Texto},
			{Nombre: "calificacion", Tipo: Entero, Min: min, Max: max},
			{Nombre: "imagen_url", Tipo: Texto},
			{Nombre: "destacado", Tipo: Booleano, Defecto: false},
			{Nombre: "activo", Tipo: Booleano, Defecto: true},
		},
		Orden:          Orden{Columna: "created_at", Descendente: true},
		Filtros:        []string{"categoria", "activo", "destacado"},
		CamposBusqueda: []string{"nombre", "descripcion"},
		LimiteDefecto:  50,
		AlCrear:        marcasDeTiempo(),
	}
}

// UbicacionesMapa administra los puntos del mapa municipal.
func UbicacionesMapa() Definicion {
	return Definicion{
		Nombre: "ubicaciones-mapa",
		Tabla:  "ubicaciones_mapa",
		Campos: []Campo{
			{Nombre: "nombre", Tipo: Texto, Requerido: true},
			{Nombre: "descripcion", Tipo: Texto},
			{Nombre: "direccion", Tipo: Texto, Requerido: true},
			{Nombre: "telefono", Tipo: Texto},
			{Nombre: "categoria", Tipo: Texto, Requerido: true},
			{Nombre: "lat", Tipo: Numero, Requerido: true},
			{Nombre: "lng", Tipo: Numero, Requerido: true},
			{Nombre: "imagen_url", Tipo: Texto},
			{Nombre: "activa", Tipo: Booleano, Defecto: true},
		},
		Orden:          Orden{Columna: "created_at", Descendente: true},
		Filtros:        []string{"categoria", "activa"},
		CamposBusqueda: []string{"nombre", "direccion"},
		LimiteDefecto:  50,
		AlCrear:        marcasDeTiempo(),
	}
}

// Transparencia administra los documentos de transparencia publicados. El
// listado siempre se limita a los documentos activos.
func Transparencia() Definicion {
	return Definicion{
		Nombre: "transparencia",
		Tabla:  "documentos_transparencia",
		Campos: []Campo{
			{Nombre: "titulo", Tipo: Texto, Requerido: true},
			{Nombre: "descripcion", Tipo: Texto, Requerido: true},
			{Nombre: "categoria", Tipo: Texto, Requerido: true},
			{Nombre: "archivo_url", Tipo: Texto, Requerido: true},
			{Nombre: "activo", Tipo: Booleano, Defecto: true},
		},
		Orden:          Orden{Columna: "fecha_publicacion", Descendente: true},
		Filtros:        []string{"categoria"},
		ListaFija:      Filtro{"activo": true},
		CamposBusqueda: []string{"titulo", "descripcion"},
		LimiteDefecto:  20,
		AlCrear:        marcasDeTiempo("fecha_publicacion"),
	}
}

// Testimonios recibe los testimonios ciudadanos. La creación es pública y
// siempre entra en estado "pendiente"; solo el estado es actualizable, por
// el flujo de moderación.
func Testimonios() Definicion {
	min, max := rangoCalificacion()
	marcas := marcasDeTiempo()
	return Definicion{
		Nombre: "testimonios",
		Tabla:  "testimonios",
		Campos: []Campo{
			{Nombre: "nombre", Tipo: Texto, Requerido: true},
			{Nombre: "email", Tipo: Texto, Requerido: true},
			{Nombre: "telefono", Tipo: Texto},
			{Nombre: "mensaje", Tipo: Texto, Requerido: true},
			{Nombre: "calificacion", Tipo: Entero, Requerido: true, Min: min, Max: max},
			{Nombre: "estado", Tipo: Texto, SoloParche: true,
				Valores: []string{"pendiente", "aprobado", "rechazado"}},
		},
		Orden:           Orden{Columna: "created_at", Descendente: true},
		Filtros:         []string{"estado"},
		CamposParche:    []string{"estado"},
		LimiteDefecto:   10,
		CreacionPublica: true,
		AlCrear: func(registro Registro) {
			marcas(registro)
			registro["estado"] = "pendiente"
		},
	}
}

// Secciones cubre los bloques editables de historia y misión/visión. Solo
// se actualizan en sitio: no hay creación ni borrado.
func Secciones() Definicion {
	return Definicion{
		Nombre: "secciones",
		Tabla:  "secciones_contenido",
		Campos: []Campo{
			{Nombre: "tipo", Tipo: Texto, Requerido: true},
			{Nombre: "titulo", Tipo: Texto, Requerido: true},
			{Nombre: "contenido", Tipo: Texto, Requerido: true},
			{Nombre: "activa", Tipo: Booleano, Defecto: true},
			{Nombre: "orden", Tipo: Entero},
		},
		Orden:          Orden{Columna: "orden"},
		Filtros:        []string{"tipo", "activa"},
		LimiteDefecto:  50,
		SoloActualizar: true,
		AlCrear:        marcasDeTiempo(),
	}
}

// Catalogo devuelve las definiciones de todos los tipos de contenido.
func Catalogo() []Definicion {
	return []Definicion{
		Noticias(),
		Tramites(),
		SitiosTuristicos(),
		UbicacionesMapa(),
		Transparencia(),
		Testimonios(),
		Secciones(),
	}
}
