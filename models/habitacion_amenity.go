package models

// HabitacionAmenity is a (room, amenity) pair; the composite key makes
// duplicates impossible at the schema level.
type HabitacionAmenity struct {
	HabitacionID uint   `gorm:"column:habitacion_id;primaryKey" json:"habitacion_id"`
	Amenity      string `gorm:"column:amenity;primaryKey;size:100" json:"amenity"`
}

func (HabitacionAmenity) TableName() string { return "HabitacionAmenities" }
