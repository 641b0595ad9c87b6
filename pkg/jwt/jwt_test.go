package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/jhoicas/gestion-ti-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secreto-de-prueba"

func TestGenerateParse_ConservaIdentidad(t *testing.T) {
	in := jwt.Identity{UserID: 42, Email: "ana@empresa.com", Name: "Ana", Role: "admin"}

	token, exp, err := jwt.Generate(secret, in, "gestion-ti-api", 60)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	out, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.UserID)
	assert.Equal(t, "ana@empresa.com", out.Email)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, "admin", out.Role)
	assert.WithinDuration(t, exp, out.ExpiresAt, time.Second)
}

func TestParse_TokenExpiradoEsRechazado(t *testing.T) {
	token, _, err := jwt.Generate(secret, jwt.Identity{UserID: 1, Role: "usuario"}, "gestion-ti-api", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, _, err := jwt.Generate(secret, jwt.Identity{UserID: 1}, "gestion-ti-api", 10)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_SinExpiracionEsRechazado(t *testing.T) {
	claims := jwt.Claims{UserID: 5, Role: "admin"}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, _, err := jwt.Generate("", jwt.Identity{UserID: 1}, "x", 10)
	assert.Error(t, err)
}
