// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"backend/config"
	"backend/db"
	"backend/handlers"
	"backend/logger"
	"backend/metrica"
	"backend/models"
	"backend/recursos"
)

func main() {
	cfg := config.Cargar()

	registrador, err := logger.Nuevo(cfg.Entorno)
	if err != nil {
		log.Fatal("Error creando registrador:", err)
	}
	defer registrador.Sync()

	// Conexión a la base de datos
	pool, err := db.Conectar(context.Background(), cfg.BaseDatosURL)
	if err != nil {
		registrador.Fatal("Error conectando a la base de datos", zap.Error(err))
	}
	defer pool.Close()
	pasarela := db.NuevaPasarela(pool)

	// Guardas de rol
	autenticador := handlers.NuevoAutenticador(pasarela, registrador)
	soloAdmin := autenticador.RequerirRol(models.RolAdministrador)
	analistas := autenticador.RequerirRol(models.RolAnalitico, models.RolAdministrador)

	// Router y rutas
	r := mux.NewRouter()
	r.Use(handlers.RegistroPeticiones(registrador))
	r.Use(metrica.Middleware)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Backend del municipio de Tibirita funcionando correctamente")
	}).Methods("GET")
	r.Handle("/metrics", metrica.Manejador()).Methods("GET")

	// — AUTENTICACIÓN —
	auth := handlers.NuevoAuthHandler(pasarela, registrador)
	r.HandleFunc("/auth/register", auth.Registrar).Methods("POST")
	r.HandleFunc("/auth/login", auth.Login).Methods("POST")
	r.HandleFunc("/auth/logout", auth.Logout).Methods("POST")

	// — CONTENIDO —
	// Un manejador genérico por tipo de contenido; las mutaciones exigen
	// rol de administrador salvo el envío público de testimonios.
	for _, definicion := range recursos.Catalogo() {
		handlers.NuevoRecursoHandler(definicion, pasarela, registrador).Registrar(r, soloAdmin)
	}

	// — PANELES —
	tablero := handlers.NuevoDashboardHandler(pasarela, registrador)
	r.Handle("/admin/resumen", soloAdmin(tablero.ResumenAdmin)).Methods("GET")
	r.Handle("/analitica/resumen", analistas(tablero.ResumenAnalitico)).Methods("GET")

	// Arrancar servidor
	servidor := &http.Server{
		Addr:         ":" + cfg.Puerto,
		Handler:      handlers.HabilitarCORS(r),
		ReadTimeout:  cfg.TiempoLectura,
		WriteTimeout: cfg.TiempoEscritura,
		IdleTimeout:  cfg.TiempoInactivo,
	}
	registrador.Info("Servidor corriendo", zap.String("puerto", cfg.Puerto))
	if err := servidor.ListenAndServe(); err != nil {
		registrador.Fatal("Servidor detenido", zap.Error(err))
	}
}
