package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hosteldb-backend/controllers"
	"hosteldb-backend/middleware"
	"hosteldb-backend/models"
	"hosteldb-backend/services"
	"hosteldb-backend/utils"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter recibe los controllers ya armados y cuelga todas las rutas
// bajo /api/v1.
func SetupRouter(
	pc *controllers.PersonaController,
	hc *controllers.HabitacionController,
	ac *controllers.AmenityController,
	rc *controllers.ReservaController,
	nc *controllers.NotificacionController,
	cc *controllers.ConversacionController,
	ptc *controllers.ParticipanteController,
	mc *controllers.MensajeController,
	personaSvc *services.PersonaService,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"nombre":  "HostelDB API",
			"version": "v1",
			"docs":    "/docs",
		})
	})

	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/docs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"auth":                      []string{"POST /api/v1/personas/register", "POST /api/v1/personas/login"},
			"personas":                  "/api/v1/personas",
			"habitaciones":              "/api/v1/habitaciones",
			"habitacionAmenities":       "/api/v1/habitacion-amenities",
			"reservas":                  "/api/v1/reservas",
			"notificaciones":            "/api/v1/notificaciones",
			"conversaciones":            "/api/v1/conversaciones",
			"participantesConversacion": "/api/v1/participantes-conversacion",
			"mensajes":                  "/api/v1/mensajes",
		})
	})

	r.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound, "error.rutaNoEncontrada", "Ruta no encontrada")
	})

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", pc.Register)
			auth.POST("/login", pc.Login)
		}

		personas := api.Group("/personas")
		{
			// alias del contrato original, junto al grupo /auth
			personas.POST("/register", pc.Register)
			personas.POST("/login", pc.Login)

			personas.GET("", pc.GetPersonas)
			personas.GET("/perfil", middleware.Protect(personaSvc), pc.Perfil)

			// rutas con prefijo fijo antes de /:id
			personas.GET("/correo/:correo", pc.GetPersonaByCorreo)
			personas.GET("/tipo/:tipo", pc.GetPersonasByTipo)

			personas.GET("/:id", pc.GetPersonaByID)
			personas.POST("", pc.CreatePersona)
			personas.PUT("/:id", pc.UpdatePersona)
			personas.DELETE("/:id",
				middleware.Protect(personaSvc),
				middleware.Autorizar(models.TipoAdmin),
				pc.DeletePersona)
		}

		habitaciones := api.Group("/habitaciones")
		{
			habitaciones.GET("", hc.GetHabitaciones)
			habitaciones.GET("/tipo/:tipo", hc.GetHabitacionesByTipo)
			habitaciones.GET("/precio/:precioMax", hc.GetHabitacionesByPrecio)
			habitaciones.GET("/:id", hc.GetHabitacionByID)
			habitaciones.POST("", hc.CreateHabitacion)
			habitaciones.PUT("/:id", hc.UpdateHabitacion)
			habitaciones.DELETE("/:id", hc.DeleteHabitacion)
		}

		amenities := api.Group("/habitacion-amenities")
		{
			amenities.GET("", ac.GetAmenities)
			amenities.GET("/unicos", ac.GetAmenitiesUnicos)
			amenities.GET("/buscar/multiples", ac.GetHabitacionesConTodos)
			amenities.GET("/habitacion/:habitacionId", ac.GetAmenitiesByHabitacion)
			amenities.GET("/amenity/:amenity", ac.GetHabitacionesByAmenity)
			amenities.POST("", ac.CreateAmenity)
			amenities.POST("/multiples/:habitacionId", ac.AddAmenities)
			amenities.PUT("/reemplazar/:habitacionId", ac.ReplaceAmenities)
			amenities.DELETE("/:habitacionId/:amenity", ac.DeleteAmenity)
			amenities.DELETE("/habitacion/:habitacionId", ac.DeleteAmenitiesByHabitacion)
		}

		reservas := api.Group("/reservas")
		{
			reservas.GET("", rc.GetReservas)

			// la verificación va antes de /:id
			reservas.GET("/disponibilidad/verificar", rc.VerificarDisponibilidad)
			reservas.GET("/usuario/:usuarioId", rc.GetReservasByUsuario)
			reservas.GET("/habitacion/:habitacionId", rc.GetReservasByHabitacion)
			reservas.GET("/estado/:estado", rc.GetReservasByEstado)

			reservas.GET("/:id", rc.GetReservaByID)
			reservas.POST("", rc.CreateReserva)
			reservas.PUT("/:id", rc.UpdateReserva)
			reservas.PATCH("/:id/estado", rc.CambiarEstado)
			reservas.DELETE("/:id", rc.DeleteReserva)
		}

		notificaciones := api.Group("/notificaciones")
		{
			notificaciones.GET("", nc.GetNotificaciones)
			notificaciones.GET("/usuario/:usuarioId", nc.GetNotificacionesByUsuario)
			notificaciones.GET("/tipo/:tipo", nc.GetNotificacionesByTipo)
			notificaciones.GET("/:id", nc.GetNotificacionByID)
			notificaciones.POST("", nc.CreateNotificacion)
			notificaciones.POST("/reserva", nc.NotificarReserva)
			notificaciones.PATCH("/:id/leida", nc.MarcarLeida)
			notificaciones.PATCH("/usuario/:usuarioId/leer-todas", nc.MarcarTodasLeidas)
			notificaciones.DELETE("/:id", nc.DeleteNotificacion)
		}

		conversaciones := api.Group("/conversaciones")
		{
			conversaciones.GET("", cc.GetConversaciones)
			conversaciones.GET("/persona/:personaId", cc.GetConversacionesByPersona)
			conversaciones.GET("/buscar/entre-personas", cc.GetConversacionesEntre)
			conversaciones.GET("/:id", cc.GetConversacionByID)
			conversaciones.POST("", cc.CreateConversacion)
			conversaciones.POST("/:id/participantes", cc.AddParticipante)
			conversaciones.DELETE("/:id/participantes/:personaId", cc.RemoveParticipante)
			conversaciones.DELETE("/:id", cc.DeleteConversacion)
		}

		participantes := api.Group("/participantes-conversacion")
		{
			participantes.GET("", ptc.GetParticipantes)
			participantes.GET("/conversacion/:conversacionId", ptc.GetParticipantesByConversacion)
			participantes.GET("/persona/:personaId", ptc.GetParticipacionesByPersona)
			participantes.GET("/buscar/comunes", ptc.GetConversacionesComunes)
			participantes.GET("/verificar/:conversacionId/:personaId", ptc.VerificarParticipacion)
			participantes.GET("/contar/conversacion/:conversacionId", ptc.ContarPorConversacion)
			participantes.GET("/contar/persona/:personaId", ptc.ContarPorPersona)
			participantes.POST("", ptc.CreateParticipante)
			participantes.POST("/multiples/:conversacionId", ptc.AddParticipantes)
			participantes.PUT("/reemplazar/:conversacionId", ptc.ReplaceParticipantes)
			participantes.DELETE("/:conversacionId/:personaId", ptc.DeleteParticipante)
			participantes.DELETE("/conversacion/:conversacionId", ptc.DeleteParticipantesByConversacion)
			participantes.DELETE("/persona/:personaId", ptc.DeleteParticipacionesDePersona)
		}

		mensajes := api.Group("/mensajes")
		{
			mensajes.GET("", mc.GetMensajes)
			mensajes.GET("/buscar/texto", mc.BuscarMensajes)
			mensajes.GET("/conversacion/:conversacionId", mc.GetMensajesByConversacion)
			mensajes.GET("/conversacion/:conversacionId/ultimos", mc.GetUltimosMensajes)
			mensajes.GET("/conversacion/:conversacionId/fechas", mc.GetMensajesByFechas)
			mensajes.GET("/conversacion/:conversacionId/contar", mc.ContarMensajes)
			mensajes.GET("/emisor/:emisorId", mc.GetMensajesByEmisor)
			mensajes.GET("/:id", mc.GetMensajeByID)
			mensajes.POST("", mc.EnviarMensaje)
			mensajes.POST("/enviar", mc.EnviarMensaje)
			mensajes.PUT("/:id", mc.UpdateMensaje)
			mensajes.DELETE("/:id", mc.DeleteMensaje)
		}
	}

	return r
}
