package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrStateInvalid = errors.New("oauth state invalid")

const stateTTL = 10 * time.Minute

// StateSigner emite y valida el parametro state del handshake OAuth como
// token firmado de vida corta, para rechazar callbacks forjados o
// reenviados tarde.
type StateSigner struct {
	secret []byte
	issuer string
}

type stateClaims struct {
	jwt.RegisteredClaims
}

func NewStateSigner(secret string) *StateSigner {
	return &StateSigner{
		secret: []byte(secret),
		issuer: "careerlift",
	}
}

// Sign genera un state firmado con nonce unico y expiracion corta.
func (s *StateSigner) Sign() (string, error) {
	if len(s.secret) == 0 {
		return "", ErrStateInvalid
	}
	now := time.Now().UTC()
	claims := stateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify valida firma, emisor y expiracion del state recibido.
func (s *StateSigner) Verify(state string) error {
	if len(s.secret) == 0 || strings.TrimSpace(state) == "" {
		return ErrStateInvalid
	}
	var claims stateClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(state, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return ErrStateInvalid
	}
	if claims.Issuer != s.issuer || claims.ID == "" {
		return ErrStateInvalid
	}
	return nil
}
