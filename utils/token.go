package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NuevoCodigoReserva returns an opaque reference code for a reservation.
func NuevoCodigoReserva() string {
	return uuid.New().String()
}

// ResumenPersonas builds the occupancy summary stored alongside a
// reservation, e.g. "2 Adulto(s), 1 Niño(s)".
func ResumenPersonas(adultos, ninos int) string {
	return fmt.Sprintf("%d Adulto(s), %d Niño(s)", adultos, ninos)
}
