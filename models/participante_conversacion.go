package models

type ParticipanteConversacion struct {
	ConversacionID uint `gorm:"column:conversacion_id;primaryKey" json:"conversacion_id"`
	PersonaID      uint `gorm:"column:persona_id;primaryKey" json:"persona_id"`

	Persona Persona `gorm:"foreignKey:PersonaID;references:ID" json:"persona,omitempty"`
}

func (ParticipanteConversacion) TableName() string { return "ParticipantesConversacion" }
