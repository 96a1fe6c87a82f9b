package models

// Persona is both a guest account and an admin; Tipo decides which.
type Persona struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	PrimerNombre   string `gorm:"column:primerNombre;size:100" json:"primerNombre"`
	SegundoNombre  string `gorm:"column:segundoNombre;size:100" json:"segundoNombre"`
	PrimerApellido string `gorm:"column:primerApellido;size:100" json:"primerApellido"`
	Prefijo        string `gorm:"column:prefijo;size:10" json:"prefijo"`
	Numero         string `gorm:"column:numero;size:30" json:"numero"`
	Correo         string `gorm:"column:correo;uniqueIndex;size:150" json:"correo"`
	Contrasena     string `gorm:"column:contrasena;size:255" json:"-"` // bcrypt hash, never serialized
	Tipo           string `gorm:"column:tipo;size:20" json:"tipo"`
	Foto           string `gorm:"column:foto;type:text" json:"foto"`
}

func (Persona) TableName() string { return "Personas" }

// Role values stored in Tipo.
const (
	TipoUsuario = "usuario"
	TipoAdmin   = "admin"
)
