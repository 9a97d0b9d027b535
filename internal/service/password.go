package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Parametros de derivacion. Scrypt es deliberadamente costoso para resistir
// fuerza bruta; el runtime ejecuta cada request en su propia goroutine, asi
// que un hash en curso no bloquea al resto.
const (
	scryptN    = 32768
	scryptR    = 8
	scryptP    = 1
	saltLength = 16
	keyLength  = 64
)

// HashPassword deriva un hash con salt aleatorio por llamada. El formato
// almacenado es "<derivado-hex>.<salt-hex>".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return hex.EncodeToString(derived) + "." + hex.EncodeToString(salt), nil
}

// VerifyPassword re-deriva con el salt extraido y compara en tiempo
// constante. Cualquier error de parseo cuenta como mismatch, nunca panic.
func VerifyPassword(password, stored string) bool {
	parts := strings.Split(stored, ".")
	if len(parts) != 2 {
		return false
	}

	derived, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	// Sin esta guarda, una parte derivada vacia compararia dos claves de
	// longitud cero y cualquier password verificaria.
	if len(derived) != keyLength {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}

	candidate, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(derived, candidate) == 1
}

// HashToken reduce un token de sesion a su hash SHA-256 en hex, que es lo
// unico que toca el storage.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
