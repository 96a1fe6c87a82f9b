// services/mensaje_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hosteldb-backend/models"

	"gorm.io/gorm"
)

type MensajeService struct {
	DB *gorm.DB
}

func NewMensajeService(db *gorm.DB) *MensajeService {
	return &MensajeService{DB: db}
}

func (s *MensajeService) ObtenerTodos() ([]models.Mensaje, error) {
	var mensajes []models.Mensaje
	if err := s.DB.Order("fecha DESC").Find(&mensajes).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve messages: %w", err)
	}
	return mensajes, nil
}

func (s *MensajeService) ObtenerPorID(id uint64) (models.Mensaje, error) {
	var mensaje models.Mensaje
	if err := s.DB.First(&mensaje, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Mensaje{}, ErrMensajeNoEncontrado
		}
		return models.Mensaje{}, fmt.Errorf("failed to retrieve message: %w", err)
	}
	return mensaje, nil
}

// Enviar posts a message after verifying the sender actually participates
// in the conversation.
func (s *MensajeService) Enviar(conversacionID, emisorID uint, texto string) (models.Mensaje, error) {
	if strings.TrimSpace(texto) == "" {
		return models.Mensaje{}, fmt.Errorf("%w: el campo 'texto' es obligatorio", ErrDatosInvalidos)
	}

	var count int64
	err := s.DB.Model(&models.Conversacion{}).Where("id = ?", conversacionID).Count(&count).Error
	if err != nil {
		return models.Mensaje{}, fmt.Errorf("db error checking conversation %d: %w", conversacionID, err)
	}
	if count == 0 {
		return models.Mensaje{}, ErrConversacionNoEncontrada
	}

	err = s.DB.Model(&models.ParticipanteConversacion{}).
		Where("conversacion_id = ? AND persona_id = ?", conversacionID, emisorID).
		Count(&count).Error
	if err != nil {
		return models.Mensaje{}, fmt.Errorf("db error checking participation: %w", err)
	}
	if count == 0 {
		return models.Mensaje{}, ErrNoParticipa
	}

	mensaje := models.Mensaje{
		ConversacionID: conversacionID,
		Emisor:         emisorID,
		Texto:          texto,
		Fecha:          time.Now(),
	}
	if err := s.DB.Create(&mensaje).Error; err != nil {
		return models.Mensaje{}, fmt.Errorf("failed to create message: %w", err)
	}
	return mensaje, nil
}

func (s *MensajeService) Actualizar(id uint64, texto string) (models.Mensaje, error) {
	if strings.TrimSpace(texto) == "" {
		return models.Mensaje{}, fmt.Errorf("%w: el campo 'texto' es obligatorio", ErrDatosInvalidos)
	}
	mensaje, err := s.ObtenerPorID(id)
	if err != nil {
		return models.Mensaje{}, err
	}
	if err := s.DB.Model(&mensaje).Update("texto", texto).Error; err != nil {
		return models.Mensaje{}, fmt.Errorf("failed to update message: %w", err)
	}
	return s.ObtenerPorID(id)
}

func (s *MensajeService) Eliminar(id uint64) error {
	mensaje, err := s.ObtenerPorID(id)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(&mensaje).Error; err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

func (s *MensajeService) PorConversacion(conversacionID uint) ([]models.Mensaje, error) {
	var mensajes []models.Mensaje
	err := s.DB.Where("conversacion_id = ?", conversacionID).Order("fecha").Find(&mensajes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve messages by conversation: %w", err)
	}
	return mensajes, nil
}

func (s *MensajeService) PorEmisor(emisorID uint) ([]models.Mensaje, error) {
	var mensajes []models.Mensaje
	err := s.DB.Where("emisor = ?", emisorID).Order("fecha DESC").Find(&mensajes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve messages by sender: %w", err)
	}
	return mensajes, nil
}

func (s *MensajeService) BuscarTexto(texto string) ([]models.Mensaje, error) {
	if strings.TrimSpace(texto) == "" {
		return nil, fmt.Errorf("%w: se requiere el parámetro 'texto'", ErrDatosInvalidos)
	}
	var mensajes []models.Mensaje
	err := s.DB.Where("texto LIKE ?", "%"+texto+"%").Order("fecha DESC").Find(&mensajes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}
	return mensajes, nil
}

// Ultimos returns the newest n messages of a conversation, oldest first.
func (s *MensajeService) Ultimos(conversacionID uint, n int) ([]models.Mensaje, error) {
	if n <= 0 {
		n = 10
	}
	var mensajes []models.Mensaje
	err := s.DB.Where("conversacion_id = ?", conversacionID).
		Order("fecha DESC").
		Limit(n).
		Find(&mensajes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve last messages: %w", err)
	}
	for i, j := 0, len(mensajes)-1; i < j; i, j = i+1, j-1 {
		mensajes[i], mensajes[j] = mensajes[j], mensajes[i]
	}
	return mensajes, nil
}

func (s *MensajeService) PorFechas(conversacionID uint, desde, hasta time.Time) ([]models.Mensaje, error) {
	var mensajes []models.Mensaje
	err := s.DB.Where("conversacion_id = ? AND fecha >= ? AND fecha <= ?", conversacionID, desde, hasta).
		Order("fecha").
		Find(&mensajes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve messages by date range: %w", err)
	}
	return mensajes, nil
}

func (s *MensajeService) ContarPorConversacion(conversacionID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Mensaje{}).
		Where("conversacion_id = ?", conversacionID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}
