// controllers/amenity_controller.go
package controllers

import (
	"net/http"
	"strings"

	"hosteldb-backend/services"
	"hosteldb-backend/utils"

	"github.com/gin-gonic/gin"
)

type AmenityController struct {
	Svc *services.AmenityService
}

func NewAmenityController(svc *services.AmenityService) *AmenityController {
	return &AmenityController{Svc: svc}
}

type amenityPayload struct {
	HabitacionID uint   `json:"habitacionId" binding:"required"`
	Amenity      string `json:"amenity" binding:"required"`
}

type amenitiesPayload struct {
	Amenities []string `json:"amenities" binding:"required"`
}

func (ctrl *AmenityController) GetAmenities(c *gin.Context) {
	amenities, err := ctrl.Svc.ObtenerTodos()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, amenities)
}

func (ctrl *AmenityController) GetAmenitiesByHabitacion(c *gin.Context) {
	id, ok := parseIDParam(c, "habitacionId")
	if !ok {
		return
	}
	amenities, err := ctrl.Svc.PorHabitacion(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, amenities)
}

func (ctrl *AmenityController) GetHabitacionesByAmenity(c *gin.Context) {
	habitaciones, err := ctrl.Svc.HabitacionesPorAmenity(c.Param("amenity"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, habitaciones)
}

func (ctrl *AmenityController) CreateAmenity(c *gin.Context) {
	var payload amenityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "Los campos 'habitacionId' y 'amenity' son obligatorios")
		return
	}

	amenity, err := ctrl.Svc.Crear(payload.HabitacionID, payload.Amenity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensaje": "Amenity agregado",
		"amenity": amenity,
	})
}

func (ctrl *AmenityController) AddAmenities(c *gin.Context) {
	id, ok := parseIDParam(c, "habitacionId")
	if !ok {
		return
	}

	var payload amenitiesPayload
	if err := c.ShouldBindJSON(&payload); err != nil || len(payload.Amenities) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El campo 'amenities' debe ser una lista no vacía")
		return
	}

	amenities, err := ctrl.Svc.AgregarMultiples(id, payload.Amenities)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensaje":   "Amenities agregados",
		"amenities": amenities,
	})
}

func (ctrl *AmenityController) ReplaceAmenities(c *gin.Context) {
	id, ok := parseIDParam(c, "habitacionId")
	if !ok {
		return
	}

	var payload amenitiesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El campo 'amenities' es obligatorio")
		return
	}

	amenities, err := ctrl.Svc.ReemplazarTodos(id, payload.Amenities)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":   "Amenities reemplazados",
		"amenities": amenities,
	})
}

func (ctrl *AmenityController) DeleteAmenity(c *gin.Context) {
	id, ok := parseIDParam(c, "habitacionId")
	if !ok {
		return
	}
	if err := ctrl.Svc.Eliminar(id, c.Param("amenity")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Amenity eliminado"})
}

func (ctrl *AmenityController) DeleteAmenitiesByHabitacion(c *gin.Context) {
	id, ok := parseIDParam(c, "habitacionId")
	if !ok {
		return
	}
	eliminados, err := ctrl.Svc.EliminarTodosPorHabitacion(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":    "Amenities eliminados",
		"eliminados": eliminados,
	})
}

func (ctrl *AmenityController) GetAmenitiesUnicos(c *gin.Context) {
	amenities, err := ctrl.Svc.AmenitiesUnicos()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amenities": amenities})
}

// GetHabitacionesConTodos filters rooms carrying every amenity in the
// comma separated ?amenities= query.
func (ctrl *AmenityController) GetHabitacionesConTodos(c *gin.Context) {
	raw := strings.Split(c.Query("amenities"), ",")
	amenities := make([]string, 0, len(raw))
	for _, a := range raw {
		if a = strings.TrimSpace(a); a != "" {
			amenities = append(amenities, a)
		}
	}
	if len(amenities) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El parámetro 'amenities' es obligatorio")
		return
	}

	habitaciones, err := ctrl.Svc.HabitacionesConTodos(amenities)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, habitaciones)
}
