package models

type Habitacion struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	IDHabitacion     string `gorm:"column:id_habitacion;size:20" json:"id_habitacion"`
	Titulo           string `gorm:"column:titulo;size:100" json:"titulo"`
	Tipo             string `gorm:"column:tipo;size:50" json:"tipo"`
	Precio           string `gorm:"column:precio;size:50" json:"precio"`
	Descripcion      string `gorm:"column:descripcion;type:text" json:"descripcion"`
	DescripcionLarga string `gorm:"column:descripcionLarga;type:text" json:"descripcionLarga"`
	Camas            int    `gorm:"column:camas" json:"camas"`
	Banos            int    `gorm:"column:banos" json:"banos"`
	Parqueo          int    `gorm:"column:parqueo" json:"parqueo"`
	Mascotas         bool   `gorm:"column:mascotas" json:"mascotas"`
	Portada          string `gorm:"column:portada;type:text" json:"portada"`

	Amenities []HabitacionAmenity `gorm:"foreignKey:HabitacionID" json:"amenities,omitempty"`
}

func (Habitacion) TableName() string { return "Habitaciones" }
