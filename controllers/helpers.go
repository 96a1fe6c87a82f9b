package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"hosteldb-backend/services"
	"hosteldb-backend/utils"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a numeric path parameter; on failure it writes the
// 400 response and returns false.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.idInvalido", "Identificador inválido: "+raw)
		return 0, false
	}
	return uint(id), true
}

// parseIDQuery reads a numeric query parameter the same way.
func parseIDQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.idInvalido", "El parámetro '"+name+"' debe ser un entero positivo")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps the shared service sentinels to the error
// taxonomy. Controllers handle their endpoint-specific errors first and
// fall through to this.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDatosInvalidos):
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", err.Error())
	case errors.Is(err, services.ErrRangoFechasInvalido):
		utils.JSONError(c, http.StatusBadRequest, "error.rangoFechas", err.Error())
	case errors.Is(err, services.ErrCredencialesInvalidas):
		utils.JSONError(c, http.StatusUnauthorized, "error.credenciales", "Credenciales inválidas")
	case errors.Is(err, services.ErrCorreoRegistrado):
		utils.JSONError(c, http.StatusConflict, "error.correoRegistrado", "El correo ya está registrado")
	case errors.Is(err, services.ErrNoParticipa):
		utils.JSONError(c, http.StatusForbidden, "error.noParticipa", "La persona no participa en la conversación")
	case errors.Is(err, services.ErrPersonaNoEncontrada):
		utils.JSONError(c, http.StatusNotFound, "error.personaNoEncontrada", "Persona no encontrada")
	case errors.Is(err, services.ErrHabitacionNoEncontrada):
		utils.JSONError(c, http.StatusNotFound, "error.habitacionNoEncontrada", "Habitación no encontrada")
	case errors.Is(err, services.ErrReservaNoEncontrada):
		utils.JSONError(c, http.StatusNotFound, "error.reservaNoEncontrada", "Reserva no encontrada")
	case errors.Is(err, services.ErrNotificacionNoEncontrada):
		utils.JSONError(c, http.StatusNotFound, "error.notificacionNoEncontrada", "Notificación no encontrada")
	case errors.Is(err, services.ErrConversacionNoEncontrada):
		utils.JSONError(c, http.StatusNotFound, "error.conversacionNoEncontrada", "Conversación no encontrada")
	case errors.Is(err, services.ErrMensajeNoEncontrado):
		utils.JSONError(c, http.StatusNotFound, "error.mensajeNoEncontrado", "Mensaje no encontrado")
	case errors.Is(err, services.ErrAmenityNoEncontrado):
		utils.JSONError(c, http.StatusNotFound, "error.amenityNoEncontrado", "Amenity no encontrado")
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.interno", "Error interno del servidor")
	}
}
