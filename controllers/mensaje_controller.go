// controllers/mensaje_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"hosteldb-backend/dto"
	"hosteldb-backend/services"
	"hosteldb-backend/utils"

	"github.com/gin-gonic/gin"
)

type MensajeController struct {
	Svc *services.MensajeService
}

func NewMensajeController(svc *services.MensajeService) *MensajeController {
	return &MensajeController{Svc: svc}
}

type enviarMensajePayload struct {
	ConversacionID uint   `json:"conversacionId" binding:"required"`
	Emisor         uint   `json:"emisor" binding:"required"`
	Texto          string `json:"texto" binding:"required"`
}

type actualizarMensajePayload struct {
	Texto string `json:"texto" binding:"required"`
}

// parseMensajeID handles the wider id space of Mensajes.
func parseMensajeID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El parámetro 'id' debe ser un entero positivo")
		return 0, false
	}
	return id, true
}

func (ctrl *MensajeController) GetMensajes(c *gin.Context) {
	mensajes, err := ctrl.Svc.ObtenerTodos()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatMensajes(mensajes))
}

func (ctrl *MensajeController) GetMensajeByID(c *gin.Context) {
	id, ok := parseMensajeID(c)
	if !ok {
		return
	}
	mensaje, err := ctrl.Svc.ObtenerPorID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatMensaje(mensaje))
}

func (ctrl *MensajeController) EnviarMensaje(c *gin.Context) {
	var payload enviarMensajePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos",
			"Campos obligatorios faltantes: conversacionId, emisor y texto")
		return
	}

	mensaje, err := ctrl.Svc.Enviar(payload.ConversacionID, payload.Emisor, payload.Texto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensaje": "Mensaje enviado",
		"id":      strconv.FormatUint(mensaje.ID, 10),
	})
}

func (ctrl *MensajeController) UpdateMensaje(c *gin.Context) {
	id, ok := parseMensajeID(c)
	if !ok {
		return
	}

	var payload actualizarMensajePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El campo 'texto' es obligatorio")
		return
	}

	mensaje, err := ctrl.Svc.Actualizar(id, payload.Texto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje": "Mensaje actualizado",
		"texto":   mensaje.Texto,
	})
}

func (ctrl *MensajeController) DeleteMensaje(c *gin.Context) {
	id, ok := parseMensajeID(c)
	if !ok {
		return
	}
	if err := ctrl.Svc.Eliminar(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Mensaje eliminado"})
}

func (ctrl *MensajeController) GetMensajesByConversacion(c *gin.Context) {
	id, ok := parseIDParam(c, "conversacionId")
	if !ok {
		return
	}
	mensajes, err := ctrl.Svc.PorConversacion(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatMensajes(mensajes))
}

func (ctrl *MensajeController) GetMensajesByEmisor(c *gin.Context) {
	id, ok := parseIDParam(c, "emisorId")
	if !ok {
		return
	}
	mensajes, err := ctrl.Svc.PorEmisor(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatMensajes(mensajes))
}

func (ctrl *MensajeController) BuscarMensajes(c *gin.Context) {
	texto := c.Query("texto")
	if texto == "" {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El parámetro 'texto' es obligatorio")
		return
	}
	mensajes, err := ctrl.Svc.BuscarTexto(texto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatMensajes(mensajes))
}

func (ctrl *MensajeController) GetUltimosMensajes(c *gin.Context) {
	id, ok := parseIDParam(c, "conversacionId")
	if !ok {
		return
	}
	n, err := strconv.Atoi(c.DefaultQuery("n", "20"))
	if err != nil || n <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El parámetro 'n' debe ser un entero positivo")
		return
	}
	mensajes, err := ctrl.Svc.Ultimos(id, n)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatMensajes(mensajes))
}

func (ctrl *MensajeController) GetMensajesByFechas(c *gin.Context) {
	id, ok := parseIDParam(c, "conversacionId")
	if !ok {
		return
	}
	desde, err := time.Parse(time.RFC3339, c.Query("desde"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El parámetro 'desde' debe ser RFC3339")
		return
	}
	hasta, err := time.Parse(time.RFC3339, c.Query("hasta"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El parámetro 'hasta' debe ser RFC3339")
		return
	}
	mensajes, err := ctrl.Svc.PorFechas(id, desde, hasta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormatMensajes(mensajes))
}

func (ctrl *MensajeController) ContarMensajes(c *gin.Context) {
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
