// controllers/participante_controller.go
package controllers

import (
	"net/http"

	"hosteldb-backend/services"
	"hosteldb-backend/utils"

	"github.com/gin-gonic/gin"
)

type ParticipanteController struct {
	Svc *services.ParticipanteService
}

func NewParticipanteController(svc *services.ParticipanteService) *ParticipanteController {
	return &ParticipanteController{Svc: svc}
}

type crearParticipantePayload struct {
	ConversacionID uint `json:"conversacionId" binding:"required"`
	PersonaID      uint `json:"personaId" binding:"required"`
}

type personasPayload struct {
	Personas []uint `json:"personas" binding:"required"`
}

func (ctrl *ParticipanteController) GetParticipantes(c *gin.Context) {
	participantes, err := ctrl.Svc.ObtenerTodos()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, participantes)
}

func (ctrl *ParticipanteController) GetParticipantesByConversacion(c *gin.Context) {
	id, ok := parseIDParam(c, "conversacionId")
	if !ok {
		return
	}
	participantes, err := ctrl.Svc.PorConversacion(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, participantes)
}

func (ctrl *ParticipanteController) GetParticipacionesByPersona(c *gin.Context) {
	id, ok := parseIDParam(c, "personaId")
	if !ok {
		return
	}
	participaciones, err := ctrl.Svc.PorPersona(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, participaciones)
}

func (ctrl *ParticipanteController) CreateParticipante(c *gin.Context) {
	var payload crearParticipantePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos",
			"Campos obligatorios faltantes: conversacionId y personaId")
		return
	}

	participante, err := ctrl.Svc.Crear(payload.ConversacionID, payload.PersonaID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensaje":      "Participante agregado",
		"participante": participante,
	})
}

func (ctrl *ParticipanteController) AddParticipantes(c *gin.Context) {
	id, ok := parseIDParam(c, "conversacionId")
	if !ok {
		return
	}

	var payload personasPayload
	if err := c.ShouldBindJSON(&payload); err != nil || len(payload.Personas) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El campo 'personas' debe ser una lista no vacía")
		return
	}

	participantes, err := ctrl.Svc.AgregarMultiples(id, payload.Personas)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensaje":       "Participantes agregados",
		"participantes": participantes,
	})
}

func (ctrl *ParticipanteController) ReplaceParticipantes(c *gin.Context) {
	id, ok := parseIDParam(c, "conversacionId")
	if !ok {
		return
	}

	var payload personasPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El campo 'personas' es obligatorio")
		return
	}

	participantes, err := ctrl.Svc.ReemplazarTodos(id, payload.Personas)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":       "Participantes reemplazados",
		"participantes": participantes,
	})
}

func (ctrl *ParticipanteController) DeleteParticipante(c *gin.Context) {
	conversacionID, ok := parseIDParam(c, "conversacionId")
	if !ok {
		return
	}
	personaID, ok := parseIDParam(c, "personaId")
	if !ok {
		return
	}
	if err := ctrl.Svc.Eliminar(conversacionID, personaID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Participante eliminado"})
}

func (ctrl *ParticipanteController) DeleteParticipantesByConversacion(c *gin.Context) {
	id, ok := parseIDParam(c, "conversacionId")
	if !ok {
		return
	}
	eliminados, err := ctrl.Svc.EliminarTodosPorConversacion(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":    "Participantes eliminados",
		"eliminados": eliminados,
	})
}

func (ctrl *ParticipanteController) DeleteParticipacionesDePersona(c *gin.Context) {
	id, ok := parseIDParam(c, "personaId")
	if !ok {
		return
	}
	eliminados, err := ctrl.Svc.EliminarPersonaDeTodas(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":    "Participaciones eliminadas",
		"eliminados": eliminados,
	})
}

func (ctrl *ParticipanteController) VerificarParticipacion(c *gin.Context) {
	conversacionID, ok := parseIDParam(c, "conversacionId")
	if !ok {
		return
	}
	personaID, ok := parseIDParam(c, "personaId")
	if !ok {
		return
	}
	participa, err := ctrl.Svc.Participa(conversacionID, personaID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participa": participa})
}

func (ctrl *ParticipanteController) ContarPorConversacion(c *gin.Context) {
	id, ok := parseIDParam(c, "conversacionId")
	if !ok {
		return
	}
	total, err := ctrl.Svc.ContarPorConversacion(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (ctrl *ParticipanteController) ContarPorPersona(c *gin.Context) {
	id, ok := parseIDParam(c, "personaId")
	if !ok {
		return
	}
	total, err := ctrl.Svc.ContarPorPersona(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (ctrl *ParticipanteController) GetConversacionesComunes(c *gin.Context) {
	persona1, ok := parseIDQuery(c, "persona1Id")
	if !ok {
		return
	}
	persona2, ok := parseIDQuery(c, "persona2Id")
	if !ok {
		return
	}
	ids, err := ctrl.Svc.ConversacionesComunes(persona1, persona2)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversaciones": ids})
}
