// services/habitacion_service.go
package services

import (
	"errors"
	"fmt"

	"hosteldb-backend/models"

	"gorm.io/gorm"
)

type HabitacionService struct {
	DB *gorm.DB
}

func NewHabitacionService(db *gorm.DB) *HabitacionService {
	return &HabitacionService{DB: db}
}

func (s *HabitacionService) Crear(habitacion models.Habitacion) (models.Habitacion, error) {
	if habitacion.Titulo == "" {
		return models.Habitacion{}, fmt.Errorf("%w: el campo 'titulo' es obligatorio", ErrDatosInvalidos)
	}
	if err := s.DB.Create(&habitacion).Error; err != nil {
		return models.Habitacion{}, fmt.Errorf("failed to create room: %w", err)
	}
	return habitacion, nil
}

func (s *HabitacionService) ObtenerTodas() ([]models.Habitacion, error) {
	var habitaciones []models.Habitacion
	if err := s.DB.Preload("Amenities").Find(&habitaciones).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	return habitaciones, nil
}

func (s *HabitacionService) ObtenerPorID(id uint) (models.Habitacion, error) {
	var habitacion models.Habitacion
	if err := s.DB.Preload("Amenities").First(&habitacion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Habitacion{}, ErrHabitacionNoEncontrada
		}
		return models.Habitacion{}, fmt.Errorf("failed to retrieve room: %w", err)
	}
	return habitacion, nil
}

func (s *HabitacionService) Actualizar(id uint, cambios map[string]interface{}) (models.Habitacion, error) {
	habitacion, err := s.ObtenerPorID(id)
	if err != nil {
		return models.Habitacion{}, err
	}
	if len(cambios) == 0 {
		return habitacion, nil
	}
	if err := s.DB.Model(&habitacion).Updates(cambios).Error; err != nil {
		return models.Habitacion{}, fmt.Errorf("failed to update room: %w", err)
	}
	return s.ObtenerPorID(id)
}

func (s *HabitacionService) Eliminar(id uint) error {
	habitacion, err := s.ObtenerPorID(id)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(&habitacion).Error; err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}

func (s *HabitacionService) PorTipo(tipo string) ([]models.Habitacion, error) {
	var habitaciones []models.Habitacion
	if err := s.DB.Where("tipo = ?", tipo).Find(&habitaciones).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms by type: %w", err)
	}
	return habitaciones, nil
}

// PorPrecioMaximo filters on the numeric value of the precio column; the
// column itself is a display string in the client contract.
func (s *HabitacionService) PorPrecioMaximo(precioMax float64) ([]models.Habitacion, error) {
	var habitaciones []models.Habitacion
	err := s.DB.Where("CAST(precio AS DECIMAL(10,2)) <= ?", precioMax).Find(&habitaciones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to filter rooms by price: %w", err)
	}
	return habitaciones, nil
}
