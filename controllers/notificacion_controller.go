// controllers/notificacion_controller.go
package controllers

import (
	"net/http"
	"time"

	"hosteldb-backend/dto"
	"hosteldb-backend/services"
	"hosteldb-backend/utils"

	"github.com/gin-gonic/gin"
)

type NotificacionController struct {
	Svc *services.NotificacionService
}

func NewNotificacionController(svc *services.NotificacionService) *NotificacionController {
	return &NotificacionController{Svc: svc}
}

type crearNotificacionPayload struct {
	UsuarioID uint   `json:"usuarioId" binding:"required"`
	Texto     string `json:"texto" binding:"required"`
	Tipo      string `json:"tipo"`
	Fecha     string `json:"fecha"`
}

type notificarReservaPayload struct {
	ReservaID uint   `json:"reservaId" binding:"required"`
	Texto     string `json:"texto"`
}

func (ctrl *NotificacionController) GetNotificaciones(c *gin.Context) {
	notificaciones, err := ctrl.Svc.ObtenerTodas()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatNotificaciones(notificaciones))
}

func (ctrl *NotificacionController) GetNotificacionByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	notificacion, err := ctrl.Svc.ObtenerPorID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatNotificacion(notificacion))
}

func (ctrl *NotificacionController) GetNotificacionesByUsuario(c *gin.Context) {
	id, ok := parseIDParam(c, "usuarioId")
	if !ok {
		return
	}
	notificaciones, err := ctrl.Svc.PorUsuario(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatNotificaciones(notificaciones))
}

func (ctrl *NotificacionController) GetNotificacionesByTipo(c *gin.Context) {
	notificaciones, err := ctrl.Svc.PorTipo(c.Param("tipo"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatNotificaciones(notificaciones))
}

func (ctrl *NotificacionController) CreateNotificacion(c *gin.Context) {
	var payload crearNotificacionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos",
			"Campos obligatorios faltantes: usuarioId y texto")
		return
	}

	fecha := time.Now()
	if payload.Fecha != "" {
		parsed, err := time.Parse(time.RFC3339, payload.Fecha)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El campo 'fecha' debe ser RFC3339")
			return
		}
		fecha = parsed
	}

	notificacion, err := ctrl.Svc.Crear(payload.UsuarioID, payload.Texto, payload.Tipo, fecha)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensaje":      "Notificación creada",
		"notificacion": dto.FormatNotificacion(notificacion),
	})
}

func (ctrl *NotificacionController) NotificarReserva(c *gin.Context) {
	var payload notificarReservaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El campo 'reservaId' es obligatorio")
		return
	}

	notificacion, err := ctrl.Svc.CrearParaReserva(payload.ReservaID, payload.Texto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensaje":      "Notificación creada",
		"notificacion": dto.FormatNotificacion(notificacion),
	})
}

func (ctrl *NotificacionController) MarcarLeida(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	notificacion, err := ctrl.Svc.MarcarLeida(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":      "Notificación marcada como leída",
		"notificacion": dto.FormatNotificacion(notificacion),
	})
}

func (ctrl *NotificacionController) MarcarTodasLeidas(c *gin.Context) {
	id, ok := parseIDParam(c, "usuarioId")
	if !ok {
		return
	}
	actualizadas, err := ctrl.Svc.MarcarTodasLeidas(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":      "Notificaciones marcadas como leídas",
		"actualizadas": actualizadas,
	})
}

func (ctrl *NotificacionController) DeleteNotificacion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Svc.Eliminar(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Notificación eliminada"})
}
