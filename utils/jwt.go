package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVigencia is how long an issued session token stays valid.
const TokenVigencia = 30 * 24 * time.Hour

var ErrTokenInvalido = errors.New("token invalido o expirado")

// SesionClaims binds a persona to an expiry. Stateless: there is no
// server-side revocation list, validity is signature + exp + the persona
// still existing (checked by the middleware).
type SesionClaims struct {
	PersonaID uint   `json:"personaId"`
	Tipo      string `json:"tipo"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(EnvOrDefault("JWT_SECRET", "hosteldb-dev-secret"))
}

// GenerarToken issues a signed session token for the given persona.
func GenerarToken(personaID uint, tipo string) (string, error) {
	now := time.Now()
	claims := &SesionClaims{
		PersonaID: personaID,
		Tipo:      tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenVigencia)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// ValidarToken parses and verifies a session token. Expired, malformed or
// wrongly signed tokens all come back as ErrTokenInvalido.
func ValidarToken(tokenString string) (*SesionClaims, error) {
	claims := &SesionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return jwtSecret(), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalido
	}
	return claims, nil
}
