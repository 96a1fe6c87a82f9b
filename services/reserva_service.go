// services/reserva_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"hosteldb-backend/models"
	"hosteldb-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservaService owns the reservation lifecycle and the availability check.
// Create and update run the conflict scan and the write inside one
// transaction holding the habitación row FOR UPDATE, so two concurrent
// bookings for the same room cannot both pass the check.
type ReservaService struct {
	DB *gorm.DB
}

func NewReservaService(db *gorm.DB) *ReservaService {
	return &ReservaService{DB: db}
}

// ParseFecha accepts the date-only wire format or RFC3339 and truncates to
// midnight; reservations carry calendar dates, never times.
func ParseFecha(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: formato de fecha invalido %q", ErrRangoFechasInvalido, s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func hoy() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// hayConflicto scans the active reservations of a room for any whose
// half-open interval intersects [checkIn, checkOut). Touching intervals
// are not a conflict. excluirID skips a reservation being modified.
func hayConflicto(tx *gorm.DB, habitacionID uint, checkIn, checkOut time.Time, excluirID uint) (*models.Reserva, error) {
	q := tx.
		Where("habitacionId = ?", habitacionID).
		Where("estado IN ?", models.EstadosActivos).
		Where("checkIn < ? AND ? < checkOut", checkOut, checkIn)
	if excluirID != 0 {
		q = q.Where("id <> ?", excluirID)
	}

	var choque models.Reserva
	if err := q.Order("checkIn").First(&choque).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan reservations: %w", err)
	}
	return &choque, nil
}

// HayConflicto is the read-only form of the checker; it never mutates state.
func (s *ReservaService) HayConflicto(habitacionID uint, checkIn, checkOut time.Time, excluirID uint) (bool, *models.Reserva, error) {
	choque, err := hayConflicto(s.DB, habitacionID, checkIn, checkOut, excluirID)
	return choque != nil, choque, err
}

// Disponibilidad is the result of a client-side pre-validation query.
type Disponibilidad struct {
	Disponible bool
	Conflictos []models.Reserva
}

func (s *ReservaService) VerificarDisponibilidad(habitacionID uint, checkIn, checkOut time.Time) (Disponibilidad, error) {
	var conflictos []models.Reserva
	err := s.DB.
		Where("habitacionId = ?", habitacionID).
		Where("estado IN ?", models.EstadosActivos).
		Where("checkIn < ? AND ? < checkOut", checkOut, checkIn).
		Order("checkIn").
		Find(&conflictos).Error
	if err != nil {
		return Disponibilidad{}, fmt.Errorf("failed to check availability: %w", err)
	}
	return Disponibilidad{Disponible: len(conflictos) == 0, Conflictos: conflictos}, nil
}

type CrearReservaInput struct {
	HabitacionID  uint
	UsuarioID     uint
	UsuarioNombre string
	Correo        string
	CheckIn       string
	CheckOut      string
	Adultos       int
	Ninos         int
	Precio        string
}

// Crear validates the request, locks the room, re-runs the conflict check
// and inserts the reservation in estado pendiente, all in one transaction.
func (s *ReservaService) Crear(in CrearReservaInput) (models.Reserva, error) {
	checkIn, err := ParseFecha(in.CheckIn)
	if err != nil {
		return models.Reserva{}, err
	}
	checkOut, err := ParseFecha(in.CheckOut)
	if err != nil {
		return models.Reserva{}, err
	}

	if checkIn.Before(hoy()) {
		return models.Reserva{}, fmt.Errorf("%w: la fecha de check-in no puede ser anterior a hoy", ErrRangoFechasInvalido)
	}
	if !checkOut.After(checkIn) {
		return models.Reserva{}, fmt.Errorf("%w: la fecha de check-out debe ser posterior al check-in", ErrRangoFechasInvalido)
	}

	if in.Adultos <= 0 {
		in.Adultos = 1
	}
	if in.Ninos < 0 {
		in.Ninos = 0
	}

	var reserva models.Reserva
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var habitacion models.Habitacion
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&habitacion, in.HabitacionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHabitacionNoEncontrada
			}
			return fmt.Errorf("db error checking room %d: %w", in.HabitacionID, err)
		}

		var usuario models.Persona
		if err := tx.First(&usuario, in.UsuarioID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPersonaNoEncontrada
			}
			return fmt.Errorf("db error checking user %d: %w", in.UsuarioID, err)
		}

		choque, err := hayConflicto(tx, in.HabitacionID, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if choque != nil {
			return &ConflictoReservaError{
				ReservaID: choque.ID,
				CheckIn:   choque.CheckIn,
				CheckOut:  choque.CheckOut,
				Estado:    choque.Estado,
			}
		}

		nombre := in.UsuarioNombre
		if nombre == "" {
			nombre = usuario.PrimerNombre + " " + usuario.PrimerApellido
		}
		correo := in.Correo
		if correo == "" {
			correo = usuario.Correo
		}

		reserva = models.Reserva{
			Codigo:        utils.NuevoCodigoReserva(),
			HabitacionID:  in.HabitacionID,
			UsuarioID:     in.UsuarioID,
			UsuarioNombre: nombre,
			Correo:        correo,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Adultos:       in.Adultos,
			Ninos:         in.Ninos,
			Personas:      utils.ResumenPersonas(in.Adultos, in.Ninos),
			Precio:        in.Precio,
			Estado:        models.EstadoPendiente,
			FechaCreacion: time.Now(),
		}
		if err := tx.Create(&reserva).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return models.Reserva{}, txErr
	}
	return reserva, nil
}

type ActualizarReservaInput struct {
	CheckIn  *string
	CheckOut *string
	Estado   *models.EstadoReserva
}

// Actualizar applies a partial update. A date change re-runs the
// availability check excluding the reservation's own id, under the same
// room lock used by Crear.
func (s *ReservaService) Actualizar(id uint, in ActualizarReservaInput) (models.Reserva, error) {
	var reserva models.Reserva
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reserva, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservaNoEncontrada
			}
			return fmt.Errorf("failed to find reservation: %w", err)
		}

		updates := map[string]interface{}{}

		checkIn := reserva.CheckIn
		checkOut := reserva.CheckOut
		fechasCambian := false
		if in.CheckIn != nil {
			t, err := ParseFecha(*in.CheckIn)
			if err != nil {
				return err
			}
			checkIn = t
			fechasCambian = true
			updates["checkIn"] = t
		}
		if in.CheckOut != nil {
			t, err := ParseFecha(*in.CheckOut)
			if err != nil {
				return err
			}
			checkOut = t
			fechasCambian = true
			updates["checkOut"] = t
		}

		if in.Estado != nil {
			if !in.Estado.Valido() {
				return fmt.Errorf("%w: estado %q desconocido", ErrDatosInvalidos, *in.Estado)
			}
			updates["estado"] = *in.Estado
		}

		if fechasCambian {
			if !checkOut.After(checkIn) {
				return fmt.Errorf("%w: la fecha de check-out debe ser posterior al check-in", ErrRangoFechasInvalido)
			}

			var habitacion models.Habitacion
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&habitacion, reserva.HabitacionID).Error; err != nil {
				return fmt.Errorf("db error locking room %d: %w", reserva.HabitacionID, err)
			}

			choque, err := hayConflicto(tx, reserva.HabitacionID, checkIn, checkOut, reserva.ID)
			if err != nil {
				return err
			}
			if choque != nil {
				return &ConflictoReservaError{
					ReservaID: choque.ID,
					CheckIn:   choque.CheckIn,
					CheckOut:  choque.CheckOut,
					Estado:    choque.Estado,
				}
			}
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&reserva).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}
		return tx.First(&reserva, id).Error
	})
	if txErr != nil {
		return models.Reserva{}, txErr
	}
	return reserva, nil
}

// CambiarEstado is the PATCH /:id/estado shortcut.
func (s *ReservaService) CambiarEstado(id uint, estado models.EstadoReserva) (models.Reserva, error) {
	if !estado.Valido() {
		return models.Reserva{}, fmt.Errorf("%w: estado %q desconocido", ErrDatosInvalidos, estado)
	}
	return s.Actualizar(id, ActualizarReservaInput{Estado: &estado})
}

// Eliminar hard-deletes; there is no tombstone for reservations.
func (s *ReservaService) Eliminar(id uint) error {
	var reserva models.Reserva
	if err := s.DB.First(&reserva, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservaNoEncontrada
		}
		return fmt.Errorf("failed to find reservation: %w", err)
	}
	if err := s.DB.Delete(&reserva).Error; err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

func (s *ReservaService) ObtenerTodas() ([]models.Reserva, error) {
	var reservas []models.Reserva
	if err := s.DB.Preload("Habitacion").Order("fechaCreacion DESC").Find(&reservas).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return reservas, nil
}

func (s *ReservaService) ObtenerPorID(id uint) (models.Reserva, error) {
	var reserva models.Reserva
	if err := s.DB.Preload("Habitacion").First(&reserva, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Reserva{}, ErrReservaNoEncontrada
		}
		return models.Reserva{}, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	return reserva, nil
}

func (s *ReservaService) PorUsuario(usuarioID uint) ([]models.Reserva, error) {
	var reservas []models.Reserva
	err := s.DB.Preload("Habitacion").
		Where("usuarioId = ?", usuarioID).
		Order("fechaCreacion DESC").
		Find(&reservas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations by user: %w", err)
	}
	return reservas, nil
}

func (s *ReservaService) PorHabitacion(habitacionID uint) ([]models.Reserva, error) {
	var reservas []models.Reserva
	err := s.DB.
		Where("habitacionId = ?", habitacionID).
		Order("checkIn").
		Find(&reservas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations by room: %w", err)
	}
	return reservas, nil
}

func (s *ReservaService) PorEstado(estado models.EstadoReserva) ([]models.Reserva, error) {
	if !estado.Valido() {
		return nil, fmt.Errorf("%w: estado %q desconocido", ErrDatosInvalidos, estado)
	}
	var reservas []models.Reserva
	err := s.DB.Preload("Habitacion").
		Where("estado = ?", estado).
		Order("fechaCreacion DESC").
		Find(&reservas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations by status: %w", err)
	}
	return reservas, nil
}
