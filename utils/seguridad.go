package utils

import "golang.org/x/crypto/bcrypt"

// GenerarHash produce el hash bcrypt que se almacena con las credenciales
// del usuario.
func GenerarHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
