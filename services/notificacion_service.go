// services/notificacion_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hosteldb-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificacionService struct {
	DB *gorm.DB
}

func NewNotificacionService(db *gorm.DB) *NotificacionService {
	return &NotificacionService{DB: db}
}

func (s *NotificacionService) usuarioExiste(id uint) error {
	var count int64
	if err := s.DB.Model(&models.Persona{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("db error checking user %d: %w", id, err)
	}
	if count == 0 {
		return ErrPersonaNoEncontrada
	}
	return nil
}

func (s *NotificacionService) ObtenerTodas() ([]models.Notificacion, error) {
	var notificaciones []models.Notificacion
	if err := s.DB.Order("fecha DESC").Find(&notificaciones).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %w", err)
	}
	return notificaciones, nil
}

func (s *NotificacionService) ObtenerPorID(id uint) (models.Notificacion, error) {
	var notificacion models.Notificacion
	if err := s.DB.First(&notificacion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Notificacion{}, ErrNotificacionNoEncontrada
		}
		return models.Notificacion{}, fmt.Errorf("failed to retrieve notification: %w", err)
	}
	return notificacion, nil
}

func (s *NotificacionService) PorUsuario(usuarioID uint) ([]models.Notificacion, error) {
	if err := s.usuarioExiste(usuarioID); err != nil {
		return nil, err
	}
	var notificaciones []models.Notificacion
	err := s.DB.Where("usuarioId = ?", usuarioID).Order("fecha DESC").Find(&notificaciones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications by user: %w", err)
	}
	return notificaciones, nil
}

func (s *NotificacionService) PorTipo(tipo string) ([]models.Notificacion, error) {
	var notificaciones []models.Notificacion
	err := s.DB.Where("tipo = ?", tipo).Order("fecha DESC").Find(&notificaciones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications by type: %w", err)
	}
	return notificaciones, nil
}

func (s *NotificacionService) Crear(usuarioID uint, texto, tipo string, fecha time.Time) (models.Notificacion, error) {
	if strings.TrimSpace(texto) == "" || strings.TrimSpace(tipo) == "" {
		return models.Notificacion{}, fmt.Errorf("%w: texto y tipo son obligatorios", ErrDatosInvalidos)
	}
	if err := s.usuarioExiste(usuarioID); err != nil {
		return models.Notificacion{}, err
	}
	if fecha.IsZero() {
		fecha = time.Now()
	}

	notificacion := models.Notificacion{
		UsuarioID: usuarioID,
		Texto:     texto,
		Tipo:      tipo,
		Fecha:     fecha,
	}
	if err := s.DB.Create(&notificacion).Error; err != nil {
		return models.Notificacion{}, fmt.Errorf("failed to create notification: %w", err)
	}
	return notificacion, nil
}

// CrearParaReserva notifies the requester about a reservation event,
// snapshotting the reservation into the datos column so the notification
// survives later changes to the booking.
func (s *NotificacionService) CrearParaReserva(reservaID uint, texto string) (models.Notificacion, error) {
	var reserva models.Reserva
	if err := s.DB.First(&reserva, reservaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Notificacion{}, ErrReservaNoEncontrada
		}
		return models.Notificacion{}, fmt.Errorf("failed to find reservation: %w", err)
	}

	if strings.TrimSpace(texto) == "" {
		texto = fmt.Sprintf("Tu reserva del %s al %s está %s",
			reserva.CheckIn.Format("2006-01-02"),
			reserva.CheckOut.Format("2006-01-02"),
			reserva.Estado)
	}

	snapshot, err := json.Marshal(map[string]interface{}{
		"reservaId":    reserva.ID,
		"habitacionId": reserva.HabitacionID,
		"checkIn":      reserva.CheckIn.Format("2006-01-02"),
		"checkOut":     reserva.CheckOut.Format("2006-01-02"),
		"estado":       reserva.Estado,
	})
	if err != nil {
		return models.Notificacion{}, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	notificacion := models.Notificacion{
		UsuarioID: reserva.UsuarioID,
		Texto:     texto,
		Tipo:      "reserva",
		Fecha:     time.Now(),
		Datos:     datatypes.JSON(snapshot),
	}
	if err := s.DB.Create(&notificacion).Error; err != nil {
		return models.Notificacion{}, fmt.Errorf("failed to create notification: %w", err)
	}
	return notificacion, nil
}

// MarcarLeida flips the internal tipo to "leida".
func (s *NotificacionService) MarcarLeida(id uint) (models.Notificacion, error) {
	notificacion, err := s.ObtenerPorID(id)
	if err != nil {
		return models.Notificacion{}, err
	}
	if err := s.DB.Model(&notificacion).Update("tipo", models.NotificacionLeida).Error; err != nil {
		return models.Notificacion{}, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return s.ObtenerPorID(id)
}

func (s *NotificacionService) MarcarTodasLeidas(usuarioID uint) (int64, error) {
	if err := s.usuarioExiste(usuarioID); err != nil {
		return 0, err
	}
	res := s.DB.Model(&models.Notificacion{}).
		Where("usuarioId = ? AND tipo <> ?", usuarioID, models.NotificacionLeida).
		Update("tipo", models.NotificacionLeida)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *NotificacionService) Eliminar(id uint) error {
	notificacion, err := s.ObtenerPorID(id)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(&notificacion).Error; err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
