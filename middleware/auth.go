package middleware

import (
	"errors"
	"net/http"
	"strings"

	"hosteldb-backend/models"
	"hosteldb-backend/services"
	"hosteldb-backend/utils"

	"github.com/gin-gonic/gin"
)

// ContextPersona is the key under which Protect stores the authenticated
// account.
const ContextPersona = "persona"

// Protect rejects requests without a valid Bearer token. The persona row
// is re-read on every request, so tokens issued before an account was
// deleted stop working immediately.
func Protect(personaSvc *services.PersonaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "error.noAutorizado", "No autorizado, falta token")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := utils.ValidarToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "error.tokenInvalido", "Token no válido o expirado")
			c.Abort()
			return
		}

		persona, err := personaSvc.ObtenerPorID(claims.PersonaID)
		if err != nil {
			if errors.Is(err, services.ErrPersonaNoEncontrada) {
				utils.JSONError(c, http.StatusUnauthorized, "error.tokenInvalido", "Persona no encontrada")
			} else {
				utils.JSONError(c, http.StatusInternalServerError, "error.interno", "Error interno del servidor")
			}
			c.Abort()
			return
		}

		c.Set(ContextPersona, persona)
		c.Next()
	}
}

// Autorizar gates a route to the given roles; it assumes Protect ran first.
func Autorizar(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ContextPersona)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "error.noAutorizado", "Acceso denegado. No autenticado")
			c.Abort()
			return
		}
		persona := v.(models.Persona)

		for _, rol := range roles {
			if persona.Tipo == rol {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "error.rolInsuficiente",
			"Acceso denegado. Se requiere rol: "+strings.Join(roles, " o "))
		c.Abort()
	}
}
