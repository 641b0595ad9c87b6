package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// MinPasswordLength longitud mínima aceptada para contraseñas nuevas.
const MinPasswordLength = 8

// HashPassword genera el hash bcrypt de una contraseña.
func HashPassword(plain string) (string, error) {
	if len(plain) < MinPasswordLength {
		return "", invalid("la contraseña debe tener al menos %d caracteres", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compara la contraseña con su hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// GenerateTemporaryPassword contraseña aleatoria de 12 caracteres sin símbolos ambiguos.
func GenerateTemporaryPassword() (string, error) {
	out := make([]byte, 12)
	limit := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		out[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}
