package models

import (
	"time"

	"gorm.io/datatypes"
)

// Tipo interno "leida" marca la notificación como leída; el resto de los
// tipos ("mensaje", "sistema", "reserva", ...) cuentan como sin leer.
const NotificacionLeida = "leida"

type Notificacion struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UsuarioID uint           `gorm:"column:usuarioId;index" json:"usuarioId"`
	Texto     string         `gorm:"column:texto;type:text" json:"texto"`
	Fecha     time.Time      `gorm:"column:fecha" json:"fecha"`
	Tipo      string         `gorm:"column:tipo;size:20" json:"tipo"`
	Datos     datatypes.JSON `gorm:"column:datos" json:"datos,omitempty"`

	Usuario Persona `gorm:"foreignKey:UsuarioID;references:ID" json:"-"`
}

func (Notificacion) TableName() string { return "Notificaciones" }
