package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hosteldb-backend/config"
	"hosteldb-backend/controllers"
	"hosteldb-backend/routes"
	"hosteldb-backend/services"
	"hosteldb-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Println("⚠️  JWT_SECRET not set; using the development default")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	defer config.CloseDatabase(db)

	if err := config.Migrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	config.SeedDatabase(db)
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	personaService := services.NewPersonaService(db)
	habitacionService := services.NewHabitacionService(db)
	amenityService := services.NewAmenityService(db)
	reservaService := services.NewReservaService(db)
	notificacionService := services.NewNotificacionService(db)
	conversacionService := services.NewConversacionService(db)
	participanteService := services.NewParticipanteService(db)
	mensajeService := services.NewMensajeService(db)

	// Initialize controllers
	personaController := controllers.NewPersonaController(personaService)
	habitacionController := controllers.NewHabitacionController(habitacionService)
	amenityController := controllers.NewAmenityController(amenityService)
	reservaController := controllers.NewReservaController(reservaService)
	notificacionController := controllers.NewNotificacionController(notificacionService)
	conversacionController := controllers.NewConversacionController(conversacionService)
	participanteController := controllers.NewParticipanteController(participanteService)
	mensajeController := controllers.NewMensajeController(mensajeService)

	router := routes.SetupRouter(
		personaController,
		habitacionController,
		amenityController,
		reservaController,
		notificacionController,
		conversacionController,
		participanteController,
		mensajeController,
		personaService,
	)

	addr := ":" + utils.EnvOrDefault("PORT", "3002")

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
