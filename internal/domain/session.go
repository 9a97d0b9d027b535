package domain

import "time"

// Session es el registro persistido de una sesion activa. El token crudo
// nunca se guarda: solo su hash SHA-256.
type Session struct {
	TokenHash string    `json:"-"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
