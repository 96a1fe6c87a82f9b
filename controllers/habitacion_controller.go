// controllers/habitacion_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"hosteldb-backend/models"
	"hosteldb-backend/services"
	"hosteldb-backend/utils"

	"github.com/gin-gonic/gin"
)

type HabitacionController struct {
	Svc *services.HabitacionService
}

func NewHabitacionController(svc *services.HabitacionService) *HabitacionController {
	return &HabitacionController{Svc: svc}
}

type habitacionPayload struct {
	IDHabitacion     string `json:"id_habitacion"`
	Titulo           string `json:"titulo" binding:"required"`
	Tipo             string `json:"tipo"`
	Precio           string `json:"precio"`
	Descripcion      string `json:"descripcion"`
	DescripcionLarga string `json:"descripcionLarga"`
	Camas            int    `json:"camas"`
	Banos            int    `json:"banos"`
	Parqueo          int    `json:"parqueo"`
	Mascotas         bool   `json:"mascotas"`
	Portada          string `json:"portada"`
}

func (ctrl *HabitacionController) GetHabitaciones(c *gin.Context) {
	habitaciones, err := ctrl.Svc.ObtenerTodas()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, habitaciones)
}

func (ctrl *HabitacionController) GetHabitacionByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	habitacion, err := ctrl.Svc.ObtenerPorID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, habitacion)
}

func (ctrl *HabitacionController) CreateHabitacion(c *gin.Context) {
	var payload habitacionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El campo 'titulo' es obligatorio")
		return
	}

	habitacion, err := ctrl.Svc.Crear(models.Habitacion{
		IDHabitacion:     payload.IDHabitacion,
		Titulo:           payload.Titulo,
		Tipo:             payload.Tipo,
		Precio:           payload.Precio,
		Descripcion:      payload.Descripcion,
		DescripcionLarga: payload.DescripcionLarga,
		Camas:            payload.Camas,
		Banos:            payload.Banos,
		Parqueo:          payload.Parqueo,
		Mascotas:         payload.Mascotas,
		Portada:          payload.Portada,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensaje":    "Habitación creada",
		"habitacion": habitacion,
	})
}

func (ctrl *HabitacionController) UpdateHabitacion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var cambios map[string]interface{}
	if err := c.ShouldBindJSON(&cambios); err != nil || len(cambios) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "Datos inválidos o mal formateados")
		return
	}
	// id never changes through this endpoint.
	delete(cambios, "id")

	habitacion, err := ctrl.Svc.Actualizar(id, cambios)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":    "Habitación actualizada",
		"habitacion": habitacion,
	})
}

func (ctrl *HabitacionController) DeleteHabitacion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Svc.Eliminar(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Habitación eliminada"})
}

func (ctrl *HabitacionController) GetHabitacionesByTipo(c *gin.Context) {
	habitaciones, err := ctrl.Svc.PorTipo(c.Param("tipo"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, habitaciones)
}

func (ctrl *HabitacionController) GetHabitacionesByPrecio(c *gin.Context) {
	precioMax, err := strconv.ParseFloat(c.Param("precioMax"), 64)
	if err != nil || precioMax <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.datosInvalidos", "El parámetro 'precioMax' debe ser un número positivo")
		return
	}
	habitaciones, err := ctrl.Svc.PorPrecioMaximo(precioMax)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, habitaciones)
}
