// services/persona_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"hosteldb-backend/models"
	"hosteldb-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type PersonaService struct {
	DB *gorm.DB
}

func NewPersonaService(db *gorm.DB) *PersonaService {
	return &PersonaService{DB: db}
}

func esDuplicado(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}

type RegistroInput struct {
	PrimerNombre   string
	SegundoNombre  string
	PrimerApellido string
	Prefijo        string
	Numero         string
	Correo         string
	Contrasena     string
	Tipo           string
	Foto           string
}

// Registrar hashes the password, stores the account and issues a session
// token. The plaintext never reaches the database.
func (s *PersonaService) Registrar(in RegistroInput) (models.Persona, string, error) {
	if strings.TrimSpace(in.PrimerNombre) == "" ||
		strings.TrimSpace(in.Correo) == "" ||
		in.Contrasena == "" {
		return models.Persona{}, "", fmt.Errorf("%w: primerNombre, correo y contrasena son obligatorios", ErrDatosInvalidos)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return models.Persona{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	tipo := in.Tipo
	if tipo == "" {
		tipo = models.TipoUsuario
	}

	persona := models.Persona{
		PrimerNombre:   strings.TrimSpace(in.PrimerNombre),
		SegundoNombre:  strings.TrimSpace(in.SegundoNombre),
		PrimerApellido: strings.TrimSpace(in.PrimerApellido),
		Prefijo:        strings.TrimSpace(in.Prefijo),
		Numero:         strings.TrimSpace(in.Numero),
		Correo:         strings.ToLower(strings.TrimSpace(in.Correo)),
		Contrasena:     string(hash),
		Tipo:           tipo,
		Foto:           in.Foto,
	}

	if err := s.DB.Create(&persona).Error; err != nil {
		if esDuplicado(err) {
			return models.Persona{}, "", ErrCorreoRegistrado
		}
		return models.Persona{}, "", fmt.Errorf("failed to create persona: %w", err)
	}

	token, err := utils.GenerarToken(persona.ID, persona.Tipo)
	if err != nil {
		return models.Persona{}, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return persona, token, nil
}

// Login verifies credentials and issues a fresh token. Unknown email and
// wrong password both come back as the same error so the response never
// reveals whether the account exists.
func (s *PersonaService) Login(correo, contrasena string) (models.Persona, string, error) {
	correo = strings.ToLower(strings.TrimSpace(correo))
	if correo == "" || contrasena == "" {
		return models.Persona{}, "", fmt.Errorf("%w: correo y contrasena son obligatorios", ErrDatosInvalidos)
	}

	var persona models.Persona
	if err := s.DB.Where("correo = ?", correo).First(&persona).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Persona{}, "", ErrCredencialesInvalidas
		}
		return models.Persona{}, "", fmt.Errorf("failed to find persona: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(persona.Contrasena), []byte(contrasena)) != nil {
		return models.Persona{}, "", ErrCredencialesInvalidas
	}

	token, err := utils.GenerarToken(persona.ID, persona.Tipo)
	if err != nil {
		return models.Persona{}, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return persona, token, nil
}

func (s *PersonaService) ObtenerTodas() ([]models.Persona, error) {
	var personas []models.Persona
	if err := s.DB.Find(&personas).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve personas: %w", err)
	}
	return personas, nil
}

func (s *PersonaService) ObtenerPorID(id uint) (models.Persona, error) {
	var persona models.Persona
	if err := s.DB.First(&persona, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Persona{}, ErrPersonaNoEncontrada
		}
		return models.Persona{}, fmt.Errorf("failed to retrieve persona: %w", err)
	}
	return persona, nil
}

func (s *PersonaService) BuscarPorCorreo(correo string) (models.Persona, error) {
	var persona models.Persona
	err := s.DB.Where("correo = ?", strings.ToLower(strings.TrimSpace(correo))).First(&persona).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Persona{}, ErrPersonaNoEncontrada
		}
		return models.Persona{}, fmt.Errorf("failed to find persona by email: %w", err)
	}
	return persona, nil
}

func (s *PersonaService) PorTipo(tipo string) ([]models.Persona, error) {
	var personas []models.Persona
	if err := s.DB.Where("tipo = ?", tipo).Find(&personas).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve personas by type: %w", err)
	}
	return personas, nil
}

type ActualizarPersonaInput struct {
	PrimerNombre   *string
	SegundoNombre  *string
	PrimerApellido *string
	Prefijo        *string
	Numero         *string
	Correo         *string
	Contrasena     *string
	Tipo           *string
	Foto           *string
}

// Actualizar applies a partial update; the password is re-hashed only when
// a new plaintext is supplied, otherwise the stored hash is untouched.
func (s *PersonaService) Actualizar(id uint, in ActualizarPersonaInput) (models.Persona, error) {
	persona, err := s.ObtenerPorID(id)
	if err != nil {
		return models.Persona{}, err
	}

	updates := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	set("primerNombre", in.PrimerNombre)
	set("segundoNombre", in.SegundoNombre)
	set("primerApellido", in.PrimerApellido)
	set("prefijo", in.Prefijo)
	set("numero", in.Numero)
	set("tipo", in.Tipo)
	set("foto", in.Foto)
	if in.Correo != nil {
		updates["correo"] = strings.ToLower(strings.TrimSpace(*in.Correo))
	}
	if in.Contrasena != nil && *in.Contrasena != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Contrasena), bcrypt.DefaultCost)
		if err != nil {
			return models.Persona{}, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["contrasena"] = string(hash)
	}

	if len(updates) == 0 {
		return persona, nil
	}

	if err := s.DB.Model(&persona).Updates(updates).Error; err != nil {
		if esDuplicado(err) {
			return models.Persona{}, ErrCorreoRegistrado
		}
		return models.Persona{}, fmt.Errorf("failed to update persona: %w", err)
	}
	return s.ObtenerPorID(id)
}

// Eliminar removes the account. Outstanding tokens die with it: the auth
// middleware re-reads the persona row on every request.
func (s *PersonaService) Eliminar(id uint) (models.Persona, error) {
	persona, err := s.ObtenerPorID(id)
	if err != nil {
		return models.Persona{}, err
	}
	if err := s.DB.Delete(&persona).Error; err != nil {
		return models.Persona{}, fmt.Errorf("failed to delete persona: %w", err)
	}
	return persona, nil
}
