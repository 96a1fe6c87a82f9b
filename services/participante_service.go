// services/participante_service.go
package services

import (
	"fmt"

	"hosteldb-backend/models"

	"gorm.io/gorm"
)

type ParticipanteService struct {
	DB *gorm.DB
}

func NewParticipanteService(db *gorm.DB) *ParticipanteService {
	return &ParticipanteService{DB: db}
}

func (s *ParticipanteService) conversacionExiste(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Conversacion{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("db error checking conversation %d: %w", id, err)
	}
	if count == 0 {
		return ErrConversacionNoEncontrada
	}
	return nil
}

func (s *ParticipanteService) ObtenerTodos() ([]models.ParticipanteConversacion, error) {
	var participantes []models.ParticipanteConversacion
	if err := s.DB.Preload("Persona").Find(&participantes).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve participants: %w", err)
	}
	return participantes, nil
}

func (s *ParticipanteService) PorConversacion(conversacionID uint) ([]models.ParticipanteConversacion, error) {
	if err := s.conversacionExiste(s.DB, conversacionID); err != nil {
		return nil, err
	}
	var participantes []models.ParticipanteConversacion
	err := s.DB.Preload("Persona").
		Where("conversacion_id = ?", conversacionID).
		Find(&participantes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve participants: %w", err)
	}
	return participantes, nil
}

func (s *ParticipanteService) PorPersona(personaID uint) ([]models.ParticipanteConversacion, error) {
	var participantes []models.ParticipanteConversacion
	err := s.DB.Where("persona_id = ?", personaID).Find(&participantes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve participations: %w", err)
	}
	return participantes, nil
}

func (s *ParticipanteService) Crear(conversacionID, personaID uint) (models.ParticipanteConversacion, error) {
	if err := s.conversacionExiste(s.DB, conversacionID); err != nil {
		return models.ParticipanteConversacion{}, err
	}
	var count int64
	if err := s.DB.Model(&models.Persona{}).Where("id = ?", personaID).Count(&count).Error; err != nil {
		return models.ParticipanteConversacion{}, fmt.Errorf("db error checking persona %d: %w", personaID, err)
	}
	if count == 0 {
		return models.ParticipanteConversacion{}, ErrPersonaNoEncontrada
	}

	pc := models.ParticipanteConversacion{ConversacionID: conversacionID, PersonaID: personaID}
	if err := s.DB.Create(&pc).Error; err != nil {
		if esDuplicado(err) {
			return pc, nil
		}
		return models.ParticipanteConversacion{}, fmt.Errorf("failed to create participant: %w", err)
	}
	return pc, nil
}

func (s *ParticipanteService) Eliminar(conversacionID, personaID uint) error {
	res := s.DB.Where("conversacion_id = ? AND persona_id = ?", conversacionID, personaID).
		Delete(&models.ParticipanteConversacion{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete participant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoParticipa
	}
	return nil
}

func (s *ParticipanteService) EliminarTodosPorConversacion(conversacionID uint) (int64, error) {
	if err := s.conversacionExiste(s.DB, conversacionID); err != nil {
		return 0, err
	}
	res := s.DB.Where("conversacion_id = ?", conversacionID).Delete(&models.ParticipanteConversacion{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete participants: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *ParticipanteService) EliminarPersonaDeTodas(personaID uint) (int64, error) {
	res := s.DB.Where("persona_id = ?", personaID).Delete(&models.ParticipanteConversacion{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete participations: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *ParticipanteService) AgregarMultiples(conversacionID uint, personaIDs []uint) ([]models.ParticipanteConversacion, error) {
	if len(personaIDs) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un participante", ErrDatosInvalidos)
	}
	if err := s.conversacionExiste(s.DB, conversacionID); err != nil {
		return nil, err
	}

	agregados := make([]models.ParticipanteConversacion, 0, len(personaIDs))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, pid := range personaIDs {
			pc := models.ParticipanteConversacion{ConversacionID: conversacionID, PersonaID: pid}
			if err := tx.Create(&pc).Error; err != nil {
				if esDuplicado(err) {
					continue
				}
				return fmt.Errorf("failed to add participant %d: %w", pid, err)
			}
			agregados = append(agregados, pc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return agregados, nil
}

// ReemplazarTodos swaps the participant set atomically; a conversation
// always keeps at least two participants.
func (s *ParticipanteService) ReemplazarTodos(conversacionID uint, personaIDs []uint) ([]models.ParticipanteConversacion, error) {
	if len(personaIDs) < 2 {
		return nil, fmt.Errorf("%w: una conversación debe tener al menos 2 participantes", ErrDatosInvalidos)
	}
	if err := s.conversacionExiste(s.DB, conversacionID); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversacion_id = ?", conversacionID).
			Delete(&models.ParticipanteConversacion{}).Error; err != nil {
			return fmt.Errorf("failed to clear participants: %w", err)
		}
		for _, pid := range personaIDs {
			pc := models.ParticipanteConversacion{ConversacionID: conversacionID, PersonaID: pid}
			if err := tx.Create(&pc).Error; err != nil {
				return fmt.Errorf("failed to add participant %d: %w", pid, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.PorConversacion(conversacionID)
}

func (s *ParticipanteService) Participa(conversacionID, personaID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.ParticipanteConversacion{}).
		Where("conversacion_id = ? AND persona_id = ?", conversacionID, personaID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check participation: %w", err)
	}
	return count > 0, nil
}

func (s *ParticipanteService) ContarPorConversacion(conversacionID uint) (int64, error) {
	if err := s.conversacionExiste(s.DB, conversacionID); err != nil {
		return 0, err
	}
	var count int64
	err := s.DB.Model(&models.ParticipanteConversacion{}).
		Where("conversacion_id = ?", conversacionID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}

func (s *ParticipanteService) ContarPorPersona(personaID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.ParticipanteConversacion{}).
		Where("persona_id = ?", personaID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count participations: %w", err)
	}
	return count, nil
}

// ConversacionesComunes lists the conversation ids shared by two personas.
func (s *ParticipanteService) ConversacionesComunes(persona1ID, persona2ID uint) ([]uint, error) {
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
