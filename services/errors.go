package services

import (
	"errors"
	"fmt"
	"time"

	"hosteldb-backend/models"
)

// Sentinel errors shared by the services. Controllers map them to HTTP
// status codes with errors.Is; none of them carries a raw DB message.
var (
	ErrDatosInvalidos        = errors.New("datos_invalidos")
	ErrRangoFechasInvalido   = errors.New("rango_fechas_invalido")
	ErrCredencialesInvalidas = errors.New("credenciales_invalidas")
	ErrCorreoRegistrado      = errors.New("correo_registrado")
	ErrNoParticipa           = errors.New("persona_no_participa")

	ErrPersonaNoEncontrada      = errors.New("persona_no_encontrada")
	ErrHabitacionNoEncontrada   = errors.New("habitacion_no_encontrada")
	ErrReservaNoEncontrada      = errors.New("reserva_no_encontrada")
	ErrNotificacionNoEncontrada = errors.New("notificacion_no_encontrada")
	ErrConversacionNoEncontrada = errors.New("conversacion_no_encontrada")
	ErrMensajeNoEncontrado      = errors.New("mensaje_no_encontrado")
	ErrAmenityNoEncontrado      = errors.New("amenity_no_encontrado")
)

// ConflictoReservaError reports the colliding reservation when a candidate
// date range is not available.
type ConflictoReservaError struct {
	ReservaID uint
	CheckIn   time.Time
	CheckOut  time.Time
	Estado    models.EstadoReserva
}

func (e *ConflictoReservaError) Error() string {
	return fmt.Sprintf("habitacion no disponible: conflicto con reserva %d del %s al %s",
		e.ReservaID, e.CheckIn.Format("2006-01-02"), e.CheckOut.Format("2006-01-02"))
}
