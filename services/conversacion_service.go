// services/conversacion_service.go
package services

import (
	"errors"
	"fmt"

	"hosteldb-backend/models"

	"gorm.io/gorm"
)

type ConversacionService struct {
	DB *gorm.DB
}

func NewConversacionService(db *gorm.DB) *ConversacionService {
	return &ConversacionService{DB: db}
}

func (s *ConversacionService) personaExiste(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Persona{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("db error checking persona %d: %w", id, err)
	}
	if count == 0 {
		return ErrPersonaNoEncontrada
	}
	return nil
}

func (s *ConversacionService) ObtenerTodas() ([]models.Conversacion, error) {
	var conversaciones []models.Conversacion
	err := s.DB.Preload("Participantes.Persona").Find(&conversaciones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve conversations: %w", err)
	}
	return conversaciones, nil
}

func (s *ConversacionService) ObtenerPorID(id uint) (models.Conversacion, error) {
	var conversacion models.Conversacion
	err := s.DB.Preload("Participantes.Persona").Preload("Mensajes").First(&conversacion, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Conversacion{}, ErrConversacionNoEncontrada
		}
		return models.Conversacion{}, fmt.Errorf("failed to retrieve conversation: %w", err)
	}
	return conversacion, nil
}

// Crear opens a conversation between at least two existing personas.
func (s *ConversacionService) Crear(participantes []uint) (models.Conversacion, error) {
	if len(participantes) < 2 {
		return models.Conversacion{}, fmt.Errorf("%w: una conversación requiere al menos 2 participantes", ErrDatosInvalidos)
	}

	var conversacion models.Conversacion
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, pid := range participantes {
			if err := s.personaExiste(tx, pid); err != nil {
				return err
			}
		}
		if err := tx.Create(&conversacion).Error; err != nil {
			return fmt.Errorf("failed to create conversation: %w", err)
		}
		for _, pid := range participantes {
			pc := models.ParticipanteConversacion{ConversacionID: conversacion.ID, PersonaID: pid}
			if err := tx.Create(&pc).Error; err != nil {
				return fmt.Errorf("failed to add participant %d: %w", pid, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return models.Conversacion{}, txErr
	}
	return s.ObtenerPorID(conversacion.ID)
}

func (s *ConversacionService) Eliminar(id uint) error {
	conversacion := models.Conversacion{ID: id}
	var count int64
	if err := s.DB.Model(&models.Conversacion{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("db error checking conversation %d: %w", id, err)
	}
	if count == 0 {
		return ErrConversacionNoEncontrada
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversacion_id = ?", id).Delete(&models.Mensaje{}).Error; err != nil {
			return fmt.Errorf("failed to delete messages: %w", err)
		}
		if err := tx.Where("conversacion_id = ?", id).Delete(&models.ParticipanteConversacion{}).Error; err != nil {
			return fmt.Errorf("failed to delete participants: %w", err)
		}
		if err := tx.Delete(&conversacion).Error; err != nil {
			return fmt.Errorf("failed to delete conversation: %w", err)
		}
		return nil
	})
}

func (s *ConversacionService) PorPersona(personaID uint) ([]models.Conversacion, error) {
	if err := s.personaExiste(s.DB, personaID); err != nil {
		return nil, err
	}

	var ids []uint
	err := s.DB.Model(&models.ParticipanteConversacion{}).
		Where("persona_id = ?", personaID).
		Pluck("conversacion_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations by persona: %w", err)
	}
	if len(ids) == 0 {
		return []models.Conversacion{}, nil
	}

	var conversaciones []models.Conversacion
	err = s.DB.Preload("Participantes.Persona").Where("id IN ?", ids).Find(&conversaciones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load conversations: %w", err)
	}
	return conversaciones, nil
}

func (s *ConversacionService) AgregarParticipante(conversacionID, personaID uint) error {
	if _, err := s.ObtenerPorID(conversacionID); err != nil {
		return err
	}
	if err := s.personaExiste(s.DB, personaID); err != nil {
		return err
	}
	pc := models.ParticipanteConversacion{ConversacionID: conversacionID, PersonaID: personaID}
	if err := s.DB.Create(&pc).Error; err != nil {
		if esDuplicado(err) {
			return nil
		}
		return fmt.Errorf("failed to add participant: %w", err)
	}
	return nil
}

func (s *ConversacionService) RemoverParticipante(conversacionID, personaID uint) error {
	res := s.DB.Where("conversacion_id = ? AND persona_id = ?", conversacionID, personaID).
		Delete(&models.ParticipanteConversacion{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove participant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoParticipa
	}
	return nil
}

// EntrePersonas finds every conversation both personas take part in,
// loaded with participants and the latest message.
func (s *ConversacionService) EntrePersonas(persona1ID, persona2ID uint) ([]models.Conversacion, error) {
	ids, err := s.conversacionesComunes(persona1ID, persona2ID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Conversacion{}, nil
	}

	var conversaciones []models.Conversacion
	err = s.DB.Preload("Participantes.Persona").
		Preload("Mensajes", func(db *gorm.DB) *gorm.DB {
			return db.Order("fecha DESC").Limit(1)
		}).
		Where("id IN ?", ids).
		Find(&conversaciones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load conversations: %w", err)
	}
	return conversaciones, nil
}

func (s *ConversacionService) conversacionesComunes(persona1ID, persona2ID uint) ([]uint, error) {
	var ids []uint
	err := s.DB.Raw(`
SELECT c.id
FROM Conversaciones c
INNER JOIN ParticipantesConversacion pc1 ON c.id = pc1.conversacion_id AND pc1.persona_id = ?
INNER JOIN ParticipantesConversacion pc2 ON c.id = pc2.conversacion_id AND pc2.persona_id = ?
GROUP BY c.id`, persona1ID, persona2ID).Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find common conversations: %w", err)
	}
	return ids, nil
}
