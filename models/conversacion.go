package models

type Conversacion struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Participantes []ParticipanteConversacion `gorm:"foreignKey:ConversacionID" json:"participantes,omitempty"`
	Mensajes      []Mensaje                  `gorm:"foreignKey:ConversacionID" json:"mensajes,omitempty"`
}

func (Conversacion) TableName() string { return "Conversaciones" }
