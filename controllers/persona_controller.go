// controllers/persona_controller.go
package controllers

import (
	"net/http"

	"hosteldb-backend/dto"
	"hosteldb-backend/middleware"
	"hosteldb-backend/models"
	"hosteldb-backend/services"
	"hosteldb-backend/utils"

	"github.com/gin-gonic/gin"
)

type PersonaController struct {
	Svc *services.PersonaService
}

func NewPersonaController(svc *services.PersonaService) *PersonaController {
	return &PersonaController{Svc: svc}
}

type registroPayload struct {
	PrimerNombre   string `json:"primerNombre" binding:"required"`
	SegundoNombre  string `json:"segundoNombre"`
	PrimerApellido string `json:"primerApellido"`
	Prefijo        string `json:"prefijo"`
	Numero         string `json:"numero"`
	Correo         string `json:"correo" binding:"required"`
	Contrasena     string `json:"contrasena" binding:"required"`
	Tipo           string `json:"tipo"`
	Foto           string `json:"foto"`
}

type loginPayload struct {
	Correo     string `json:"correo" binding:"required"`
	Contrasena string `json:"contrasena" binding:"required"`
}

func (ctrl *PersonaController) registroInput(p registroPayload) services.RegistroInput {
	return services.RegistroInput{
		PrimerNombre:   p.PrimerNombre,
		SegundoNombre:  p.SegundoNombre,
		PrimerApellido: p.PrimerApellido,
		Prefijo:        p.Prefijo,
		Numero:         p.Numero,
		Correo:         p.Correo,
		Contrasena:     p.Contrasena,
		Tipo:           p.Tipo,
		Foto:           p.Foto,
	}
}

// Register crea la cuenta y entrega el token de sesión en la misma
// respuesta.
func (ctrl *PersonaController) Register(c *gin.Context) {
	var payload registroPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "Datos requeridos faltantes o inválidos")
		return
	}

	persona, token, err := ctrl.Svc.Registrar(ctrl.registroInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"persona": dto.FormatPersona(persona),
		"token":   token,
	})
}

func (ctrl *PersonaController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "Correo y contraseña son obligatorios")
		return
	}

	persona, token, err := ctrl.Svc.Login(payload.Correo, payload.Contrasena)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"persona": dto.FormatPersona(persona),
		"token":   token,
	})
}

// Perfil returns the authenticated account; Protect put it in the context.
func (ctrl *PersonaController) Perfil(c *gin.Context) {
	v, ok := c.Get(middleware.ContextPersona)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "error.noAutorizado", "Acceso denegado. No autenticado")
		return
	}
	c.JSON(http.StatusOK, dto.FormatPersona(v.(models.Persona)))
}

func (ctrl *PersonaController) GetPersonas(c *gin.Context) {
	personas, err := ctrl.Svc.ObtenerTodas()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatPersonas(personas))
}

func (ctrl *PersonaController) GetPersonaByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	persona, err := ctrl.Svc.ObtenerPorID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatPersona(persona))
}

// CreatePersona is the plain CRUD create; same validation and hashing as
// Register but without issuing a token.
func (ctrl *PersonaController) CreatePersona(c *gin.Context) {
	var payload registroPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "Datos requeridos faltantes o inválidos")
		return
	}

	persona, _, err := ctrl.Svc.Registrar(ctrl.registroInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FormatPersona(persona))
}

type actualizarPersonaPayload struct {
	PrimerNombre   *string `json:"primerNombre"`
	SegundoNombre  *string `json:"segundoNombre"`
	PrimerApellido *string `json:"primerApellido"`
	Prefijo        *string `json:"prefijo"`
	Numero         *string `json:"numero"`
	Correo         *string `json:"correo"`
	Contrasena     *string `json:"contrasena"`
	Tipo           *string `json:"tipo"`
	Foto           *string `json:"foto"`
}

func (ctrl *PersonaController) UpdatePersona(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload actualizarPersonaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "Datos inválidos o mal formateados")
		return
	}

	persona, err := ctrl.Svc.Actualizar(id, services.ActualizarPersonaInput{
		PrimerNombre:   payload.PrimerNombre,
		SegundoNombre:  payload.SegundoNombre,
		PrimerApellido: payload.PrimerApellido,
		Prefijo:        payload.Prefijo,
		Numero:         payload.Numero,
		Correo:         payload.Correo,
		Contrasena:     payload.Contrasena,
		Tipo:           payload.Tipo,
		Foto:           payload.Foto,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"personas": []dto.PersonaVista{dto.FormatPersona(persona)},
		"id":       dto.FormatPersona(persona).ID,
	})
}

func (ctrl *PersonaController) DeletePersona(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	persona, err := ctrl.Svc.Eliminar(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje": "Persona eliminada correctamente",
		"persona": dto.FormatPersona(persona),
	})
}

func (ctrl *PersonaController) GetPersonaByCorreo(c *gin.Context) {
	persona, err := ctrl.Svc.BuscarPorCorreo(c.Param("correo"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatPersona(persona))
}

func (ctrl *PersonaController) GetPersonasByTipo(c *gin.Context) {
	personas, err := ctrl.Svc.PorTipo(c.Param("tipo"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatPersonas(personas))
}
