package models

import "time"

// EstadoReserva is the closed status vocabulary for a reservation.
type EstadoReserva string

const (
	EstadoPendiente  EstadoReserva = "pendiente"
	EstadoAceptada   EstadoReserva = "aceptada"
	EstadoConfirmada EstadoReserva = "confirmada"
	EstadoRechazada  EstadoReserva = "rechazada"
	EstadoCancelada  EstadoReserva = "cancelada"
)

// EstadosActivos are the statuses that count toward overlap checks.
var EstadosActivos = []EstadoReserva{EstadoPendiente, EstadoAceptada, EstadoConfirmada}

func (e EstadoReserva) Valido() bool {
	switch e {
	case EstadoPendiente, EstadoAceptada, EstadoConfirmada, EstadoRechazada, EstadoCancelada:
		return true
	}
	return false
}

func (e EstadoReserva) Activo() bool {
	for _, a := range EstadosActivos {
		if e == a {
			return true
		}
	}
	return false
}

type Reserva struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Codigo        string        `gorm:"column:codigo;uniqueIndex;size:64" json:"codigo"`
	HabitacionID  uint          `gorm:"column:habitacionId;index" json:"habitacionId"`
	UsuarioID     uint          `gorm:"column:usuarioId;index" json:"usuarioId"`
	UsuarioNombre string        `gorm:"column:usuarioNombre;size:100" json:"usuarioNombre"`
	Correo        string        `gorm:"column:correo;size:100" json:"correo"`
	CheckIn       time.Time     `gorm:"column:checkIn" json:"checkIn"`
	CheckOut      time.Time     `gorm:"column:checkOut" json:"checkOut"`
	Adultos       int           `gorm:"column:adultos;default:1" json:"adultos"`
	Ninos         int           `gorm:"column:ninos;default:0" json:"ninos"`
	Personas      string        `gorm:"column:personas;size:50" json:"personas"`
	Precio        string        `gorm:"column:precio;size:20" json:"precio"`
	Estado        EstadoReserva `gorm:"column:estado;size:20;index" json:"estado"`
	FechaCreacion time.Time     `gorm:"column:fechaCreacion" json:"fechaCreacion"`

	Habitacion Habitacion `gorm:"foreignKey:HabitacionID;references:ID" json:"habitacion,omitempty"`
	Usuario    Persona    `gorm:"foreignKey:UsuarioID;references:ID" json:"-"`
}

func (Reserva) TableName() string { return "Reservas" }

// Solapa reports whether [checkIn, checkOut) intersects the reservation's
// own half-open interval. Touching endpoints are not an overlap.
func (r *Reserva) Solapa(checkIn, checkOut time.Time) bool {
	return r.CheckIn.Before(checkOut) && checkIn.Before(r.CheckOut)
}
