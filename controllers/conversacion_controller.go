// controllers/conversacion_controller.go
package controllers

import (
	"net/http"

	"hosteldb-backend/services"
	"hosteldb-backend/utils"

	"github.com/gin-gonic/gin"
)

type ConversacionController struct {
	Svc *services.ConversacionService
}

func NewConversacionController(svc *services.ConversacionService) *ConversacionController {
	return &ConversacionController{Svc: svc}
}

type crearConversacionPayload struct {
	Participantes []uint `json:"participantes" binding:"required"`
}

type participantePayload struct {
	PersonaID uint `json:"personaId" binding:"required"`
}

func (ctrl *ConversacionController) GetConversaciones(c *gin.Context) {
	conversaciones, err := ctrl.Svc.ObtenerTodas()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversaciones)
}

func (ctrl *ConversacionController) GetConversacionByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	conversacion, err := ctrl.Svc.ObtenerPorID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversacion)
}

func (ctrl *ConversacionController) CreateConversacion(c *gin.Context) {
	var payload crearConversacionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos",
			"El campo 'participantes' debe listar al menos dos personas")
		return
	}

	conversacion, err := ctrl.Svc.Crear(payload.Participantes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensaje":      "Conversación creada",
		"conversacion": conversacion,
	})
}

func (ctrl *ConversacionController) DeleteConversacion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Svc.Eliminar(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Conversación eliminada"})
}

func (ctrl *ConversacionController) GetConversacionesByPersona(c *gin.Context) {
	id, ok := parseIDParam(c, "personaId")
	if !ok {
		return
	}
	conversaciones, err := ctrl.Svc.PorPersona(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversaciones)
}

func (ctrl *ConversacionController) AddParticipante(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload participantePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El campo 'personaId' es obligatorio")
		return
	}

	if err := ctrl.Svc.AgregarParticipante(id, payload.PersonaID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Participante agregado"})
}

func (ctrl *ConversacionController) RemoveParticipante(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	personaID, ok := parseIDParam(c, "personaId")
	if !ok {
		return
	}
	if err := ctrl.Svc.RemoverParticipante(id, personaID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Participante removido"})
}

// GetConversacionesEntre lists the conversations two people share,
// each preloaded with its most recent message.
func (ctrl *ConversacionController) GetConversacionesEntre(c *gin.Context) {
	persona1, ok := parseIDQuery(c, "persona1Id")
	if !ok {
		return
	}
	persona2, ok := parseIDQuery(c, "persona2Id")
	if !ok {
		return
	}
	conversaciones, err := ctrl.Svc.EntrePersonas(persona1, persona2)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversaciones)
}
