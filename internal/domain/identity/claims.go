// Package identity extrae el perfil de usuario a partir de los claims de un token externo.
// Es puro: no toca persistencia ni reloj.
package identity

import (
	"fmt"
	"strings"
)

// Claims conjunto de claims relevantes de un token de identidad ya verificado.
type Claims struct {
	Subject      string
	Email        string
	Name         string
	Picture      string
	UserMetadata map[string]any
}

// Profile datos de perfil extraídos; cadenas vacías significan "ausente".
type Profile struct {
	Subject     string
	Email       string
	DisplayName string
	AvatarURL   string
}

// Extractor obtiene un valor candidato de los claims.
type Extractor func(c *Claims) string

// Orden de preferencia: claim directo primero, luego user_metadata.
var (
	DisplayNameExtractors = []Extractor{
		func(c *Claims) string { return c.Name },
		MetadataString("full_name"),
		MetadataString("name"),
	}
	AvatarURLExtractors = []Extractor{
		func(c *Claims) string { return c.Picture },
		MetadataString("avatar_url"),
	}
)

// MetadataString extractor para una clave de user_metadata.
func MetadataString(key string) Extractor {
	return func(c *Claims) string {
		if c.UserMetadata == nil {
			return ""
		}
		v, ok := c.UserMetadata[key]
		if !ok || v == nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
}

// FirstNonBlank aplica los extractores en orden y devuelve el primer valor no vacío (recortado).
func FirstNonBlank(c *Claims, extractors []Extractor) string {
	for _, ex := range extractors {
		if v := strings.TrimSpace(ex(c)); v != "" {
			return v
		}
	}
	return ""
}

// Extract construye el Profile a partir de los claims.
func Extract(c *Claims) Profile {
	if c == nil {
		return Profile{}
	}
	return Profile{
		Subject:     strings.TrimSpace(c.Subject),
		Email:       strings.TrimSpace(c.Email),
		DisplayName: FirstNonBlank(c, DisplayNameExtractors),
		AvatarURL:   FirstNonBlank(c, AvatarURLExtractors),
	}
}
