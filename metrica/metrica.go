// backend/metrica/metrica.go
package metrica

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	peticiones = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tibirita_http_peticiones_total",
			Help: "Total de peticiones HTTP atendidas.",
		},
		[]string{"metodo", "ruta", "codigo"},
	)
	duracion = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tibirita_http_duracion_segundos",
			Help:    "Duración de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"metodo", "ruta"},
	)
)

// Middleware registra contador y duración por ruta. Usa la plantilla de la
// ruta de mux para acotar la cardinalidad de las etiquetas.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inicio := time.Now()
		grabador := &grabadorEstado{ResponseWriter: w, estado: http.StatusOK}

		next.ServeHTTP(grabador, r)

		ruta := r.URL.Path
		if actual := mux.CurrentRoute(r); actual != nil {
			if plantilla, err := actual.GetPathTemplate(); err == nil {
				ruta = plantilla
			}
		}
		peticiones.WithLabelValues(r.Method, ruta, strconv.Itoa(grabador.estado)).Inc()
		duracion.WithLabelValues(r.Method, ruta).Observe(time.Since(inicio).Seconds())
	})
}

// Manejador expone las métricas en formato Prometheus.
func Manejador() http.Handler {
	return promhttp.Handler()
}

type grabadorEstado struct {
	http.ResponseWriter
	estado int
}

func (g *grabadorEstado) WriteHeader(codigo int) {
	g.estado = codigo
	g.ResponseWriter.WriteHeader(codigo)
}
