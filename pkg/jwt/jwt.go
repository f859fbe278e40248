package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/octavian/nexus-inventory/internal/domain/identity"
)

// Claims claims estándar JWT más los campos de perfil que emite el proveedor de identidad.
type Claims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email,omitempty"`
	Name         string         `json:"name,omitempty"`
	Picture      string         `json:"picture,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// Identity convierte los claims del token al modelo de dominio.
func (c *Claims) Identity() *identity.Claims {
	return &identity.Claims{
		Subject:      c.Subject,
		Email:        c.Email,
		Name:         c.Name,
		Picture:      c.Picture,
		UserMetadata: c.UserMetadata,
	}
}

// Generate firma un token HS256 con los datos de identidad dados. Se usa en tests y herramientas locales.
func Generate(secret, issuer string, id identity.Claims, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:        id.Email,
		Name:         id.Name,
		Picture:      id.Picture,
		UserMetadata: id.UserMetadata,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma, expiración y (si issuer no es vacío) emisor, y devuelve la identidad del token.
func Parse(secret, issuer, tokenString string) (*identity.Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("jwt: token sin sub")
	}
	return claims.Identity(), nil
}
