// services/amenity_service.go
package services

import (
	"fmt"
	"strings"

	"hosteldb-backend/models"

	"gorm.io/gorm"
)

type AmenityService struct {
	DB *gorm.DB
}

func NewAmenityService(db *gorm.DB) *AmenityService {
	return &AmenityService{DB: db}
}

func (s *AmenityService) habitacionExiste(id uint) error {
	var count int64
	if err := s.DB.Model(&models.Habitacion{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("db error checking room %d: %w", id, err)
	}
	if count == 0 {
		return ErrHabitacionNoEncontrada
	}
	return nil
}

func (s *AmenityService) ObtenerTodos() ([]models.HabitacionAmenity, error) {
	var amenities []models.HabitacionAmenity
	if err := s.DB.Order("habitacion_id, amenity").Find(&amenities).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve amenities: %w", err)
	}
	return amenities, nil
}

func (s *AmenityService) PorHabitacion(habitacionID uint) ([]models.HabitacionAmenity, error) {
	if err := s.habitacionExiste(habitacionID); err != nil {
		return nil, err
	}
	var amenities []models.HabitacionAmenity
	err := s.DB.Where("habitacion_id = ?", habitacionID).Order("amenity").Find(&amenities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve amenities by room: %w", err)
	}
	return amenities, nil
}

func (s *AmenityService) HabitacionesPorAmenity(amenity string) ([]models.Habitacion, error) {
	var habitaciones []models.Habitacion
	err := s.DB.
		Joins("JOIN HabitacionAmenities ON HabitacionAmenities.habitacion_id = Habitaciones.id").
		Where("HabitacionAmenities.amenity = ?", amenity).
		Find(&habitaciones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms by amenity: %w", err)
	}
	return habitaciones, nil
}

func (s *AmenityService) Crear(habitacionID uint, amenity string) (models.HabitacionAmenity, error) {
	amenity = strings.TrimSpace(amenity)
	if amenity == "" {
		return models.HabitacionAmenity{}, fmt.Errorf("%w: el campo 'amenity' es obligatorio", ErrDatosInvalidos)
	}
	if err := s.habitacionExiste(habitacionID); err != nil {
		return models.HabitacionAmenity{}, err
	}

	ha := models.HabitacionAmenity{HabitacionID: habitacionID, Amenity: amenity}
	if err := s.DB.Create(&ha).Error; err != nil {
		if esDuplicado(err) {
			// already present, the pair is the primary key
			return ha, nil
		}
		return models.HabitacionAmenity{}, fmt.Errorf("failed to create amenity: %w", err)
	}
	return ha, nil
}

func (s *AmenityService) Eliminar(habitacionID uint, amenity string) error {
	res := s.DB.Where("habitacion_id = ? AND amenity = ?", habitacionID, amenity).
		Delete(&models.HabitacionAmenity{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete amenity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAmenityNoEncontrado
	}
	return nil
}

func (s *AmenityService) EliminarTodosPorHabitacion(habitacionID uint) (int64, error) {
	if err := s.habitacionExiste(habitacionID); err != nil {
		return 0, err
	}
	res := s.DB.Where("habitacion_id = ?", habitacionID).Delete(&models.HabitacionAmenity{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete amenities: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// AgregarMultiples inserts the given amenities for a room, skipping those
// already present.
func (s *AmenityService) AgregarMultiples(habitacionID uint, amenities []string) ([]models.HabitacionAmenity, error) {
	if len(amenities) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un amenity", ErrDatosInvalidos)
	}
	if err := s.habitacionExiste(habitacionID); err != nil {
		return nil, err
	}

	agregados := make([]models.HabitacionAmenity, 0, len(amenities))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, a := range amenities {
			a = strings.TrimSpace(a)
			if a == "" {
				continue
			}
			ha := models.HabitacionAmenity{HabitacionID: habitacionID, Amenity: a}
			if err := tx.Create(&ha).Error; err != nil {
				if esDuplicado(err) {
					continue
				}
				return fmt.Errorf("failed to create amenity %q: %w", a, err)
			}
			agregados = append(agregados, ha)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return agregados, nil
}

// ReemplazarTodos swaps a room's amenity set atomically.
func (s *AmenityService) ReemplazarTodos(habitacionID uint, amenities []string) ([]models.HabitacionAmenity, error) {
	if err := s.habitacionExiste(habitacionID); err != nil {
		return nil, err
	}

	nuevos := make([]models.HabitacionAmenity, 0, len(amenities))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habitacion_id = ?", habitacionID).
			Delete(&models.HabitacionAmenity{}).Error; err != nil {
			return fmt.Errorf("failed to clear amenities: %w", err)
		}
		for _, a := range amenities {
			a = strings.TrimSpace(a)
			if a == "" {
				continue
			}
			ha := models.HabitacionAmenity{HabitacionID: habitacionID, Amenity: a}
			if err := tx.Create(&ha).Error; err != nil {
				if esDuplicado(err) {
					continue
				}
				return fmt.Errorf("failed to create amenity %q: %w", a, err)
			}
			nuevos = append(nuevos, ha)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nuevos, nil
}

// AmenitiesUnicos lists every distinct amenity across all rooms.
func (s *AmenityService) AmenitiesUnicos() ([]string, error) {
	var unicos []string
	err := s.DB.Model(&models.HabitacionAmenity{}).
		Distinct("amenity").
		Order("amenity").
		Pluck("amenity", &unicos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct amenities: %w", err)
	}
	return unicos, nil
}

// HabitacionesConTodos returns rooms carrying every one of the requested
// amenities (intersection, not union).
func (s *AmenityService) HabitacionesConTodos(amenities []string) ([]models.Habitacion, error) {
	if len(amenities) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un amenity", ErrDatosInvalidos)
	}

	var ids []uint
	err := s.DB.Model(&models.HabitacionAmenity{}).
		Select("habitacion_id").
		Where("amenity IN ?", amenities).
		Group("habitacion_id").
		Having("COUNT(DISTINCT amenity) = ?", len(amenities)).
		Pluck("habitacion_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to intersect amenities: %w", err)
	}
	if len(ids) == 0 {
		return []models.Habitacion{}, nil
	}

	var habitaciones []models.Habitacion
	if err := s.DB.Where("id IN ?", ids).Find(&habitaciones).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	return habitaciones, nil
}
