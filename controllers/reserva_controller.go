// controllers/reserva_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"hosteldb-backend/dto"
	"hosteldb-backend/models"
	"hosteldb-backend/services"
	"hosteldb-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservaController struct {
	Svc *services.ReservaService
}

func NewReservaController(svc *services.ReservaService) *ReservaController {
	return &ReservaController{Svc: svc}
}

type crearReservaPayload struct {
	HabitacionID  uint   `json:"habitacionId" binding:"required"`
	UsuarioID     uint   `json:"usuarioId" binding:"required"`
	UsuarioNombre string `json:"usuarioNombre"`
	Correo        string `json:"correo"`
	CheckIn       string `json:"checkIn" binding:"required"`
	CheckOut      string `json:"checkOut" binding:"required"`
	Adultos       int    `json:"adultos"`
	Ninos         int    `json:"ninos"`
	Precio        string `json:"precio"`
}

type actualizarReservaPayload struct {
	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut"`
	Estado   *string `json:"estado"`
}

type cambiarEstadoPayload struct {
	Estado string `json:"estado" binding:"required"`
}

// respondConflicto writes the 409 body carrying the colliding interval.
func respondConflicto(c *gin.Context, conflicto *services.ConflictoReservaError) {
	c.JSON(http.StatusConflict, gin.H{
		"error": gin.H{
			"code":    "error.habitacionNoDisponible",
			"message": "La habitación no está disponible en las fechas seleccionadas",
		},
		"reservaConflicto": dto.FormatConflicto(
			conflicto.ReservaID, conflicto.CheckIn, conflicto.CheckOut, conflicto.Estado),
	})
}

func (ctrl *ReservaController) GetReservas(c *gin.Context) {
	reservas, err := ctrl.Svc.ObtenerTodas()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(reservas) == 0 {
		utils.JSONError(c, http.StatusNotFound, "error.reservaNoEncontrada", "Reserva no encontrada")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservas": dto.FormatReservas(reservas)})
}

func (ctrl *ReservaController) GetReservaByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reserva, err := ctrl.Svc.ObtenerPorID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatReserva(reserva))
}

func (ctrl *ReservaController) CreateReserva(c *gin.Context) {
	var payload crearReservaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos",
			"Campos obligatorios faltantes: habitacionId, usuarioId, checkIn y checkOut")
		return
	}

	reserva, err := ctrl.Svc.Crear(services.CrearReservaInput{
		HabitacionID:  payload.HabitacionID,
		UsuarioID:     payload.UsuarioID,
		UsuarioNombre: payload.UsuarioNombre,
		Correo:        payload.Correo,
		CheckIn:       payload.CheckIn,
		CheckOut:      payload.CheckOut,
		Adultos:       payload.Adultos,
		Ninos:         payload.Ninos,
		Precio:        payload.Precio,
	})
	if err != nil {
		var conflicto *services.ConflictoReservaError
		if errors.As(err, &conflicto) {
			respondConflicto(c, conflicto)
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"mensaje": "Reserva creada exitosamente",
		"id":      strconv.FormatUint(uint64(reserva.ID), 10),
	})
}

func (ctrl *ReservaController) UpdateReserva(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload actualizarReservaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "Datos inválidos o mal formateados")
		return
	}

	var estado *models.EstadoReserva
	if payload.Estado != nil {
		e := models.EstadoReserva(*payload.Estado)
		estado = &e
	}

	_, err := ctrl.Svc.Actualizar(id, services.ActualizarReservaInput{
		CheckIn:  payload.CheckIn,
		CheckOut: payload.CheckOut,
		Estado:   estado,
	})
	if err != nil {
		var conflicto *services.ConflictoReservaError
		if errors.As(err, &conflicto) {
			respondConflicto(c, conflicto)
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Reserva actualizada correctamente"})
}

func (ctrl *ReservaController) CambiarEstado(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload cambiarEstadoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El campo 'estado' es obligatorio")
		return
	}

	reserva, err := ctrl.Svc.CambiarEstado(id, models.EstadoReserva(payload.Estado))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje": "Estado de la reserva actualizado",
		"estado":  string(reserva.Estado),
	})
}

func (ctrl *ReservaController) DeleteReserva(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Svc.Eliminar(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Reserva eliminada"})
}

func (ctrl *ReservaController) GetReservasByUsuario(c *gin.Context) {
	id, ok := parseIDParam(c, "usuarioId")
	if !ok {
		return
	}
	reservas, err := ctrl.Svc.PorUsuario(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservas": dto.FormatReservas(reservas)})
}

func (ctrl *ReservaController) GetReservasByHabitacion(c *gin.Context) {
	id, ok := parseIDParam(c, "habitacionId")
	if !ok {
		return
	}
	reservas, err := ctrl.Svc.PorHabitacion(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservas": dto.FormatReservas(reservas)})
}

func (ctrl *ReservaController) GetReservasByEstado(c *gin.Context) {
	reservas, err := ctrl.Svc.PorEstado(models.EstadoReserva(c.Param("estado")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservas": dto.FormatReservas(reservas)})
}

// VerificarDisponibilidad is the read-only pre-validation endpoint:
// GET /reservas/disponibilidad/verificar?habitacionId&checkIn&checkOut
func (ctrl *ReservaController) VerificarDisponibilidad(c *gin.Context) {
	habitacionID, err := strconv.ParseUint(c.Query("habitacionId"), 10, 32)
	if err != nil || habitacionID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El parámetro 'habitacionId' es obligatorio")
		return
	}

	checkIn, err := services.ParseFecha(c.Query("checkIn"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	checkOut, err := services.ParseFecha(c.Query("checkOut"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	disponibilidad, err := ctrl.Svc.VerificarDisponibilidad(uint(habitacionID), checkIn, checkOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	mensaje := "Habitación disponible en las fechas seleccionadas"
	if !disponibilidad.Disponible {
		mensaje = "La habitación no está disponible en las fechas seleccionadas"
	}
	c.JSON(http.StatusOK, gin.H{
		"disponible":        disponibilidad.Disponible,
		"reservasConflicto": len(disponibilidad.Conflictos),
		"mensaje":           mensaje,
	})
}
