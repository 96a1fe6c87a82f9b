package models

import "time"

type Mensaje struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	ConversacionID uint      `gorm:"column:conversacion_id;index" json:"conversacion_id"`
	Emisor         uint      `gorm:"column:emisor;index" json:"emisor"`
	Fecha          time.Time `gorm:"column:fecha" json:"fecha"`
	Texto          string    `gorm:"column:texto;type:text" json:"texto"`
}

func (Mensaje) TableName() string { return "Mensajes" }
