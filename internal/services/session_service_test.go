package services_test

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
	"storefront/internal/services"
)

func TestSessionLifecycle(t *testing.T) {
	session := services.NewSession()
	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.Token())
	assert.Nil(t, session.User())
	assert.Equal(t, int64(0), session.UserID())

	session.SetCredentials("tok", &models.User{ID: 3, Username: "alice"})
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "tok", session.Token())
	assert.Equal(t, int64(3), session.UserID())

	session.Clear()
	assert.False(t, session.IsAuthenticated())
	assert.Nil(t, session.User())
}

func TestUserReturnsACopy(t *testing.T) {
	session := services.NewSession()
	session.SetCredentials("tok", &models.User{ID: 3, Username: "alice"})

	user := session.User()
	user.Username = "mallory"

	assert.Equal(t, "alice", session.User().Username)
}

func TestTokenExpiryReadsExpClaim(t *testing.T) {
	expiry := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 3,
		"exp":     expiry.Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte("any-secret"))
	assert.NoError(t, err)

	session := services.NewSession()
	session.SetCredentials(signed, &models.User{ID: 3})

	got, err := session.TokenExpiry()
	assert.NoError(t, err)
	assert.True(t, got.Equal(expiry))
}

func TestTokenExpiryErrors(t *testing.T) {
	session := services.NewSession()
	_, err := session.TokenExpiry()
	assert.Error(t, err, "no token in session")

	session.SetCredentials("not-a-jwt", &models.User{ID: 1})
	_, err = session.TokenExpiry()
	assert.Error(t, err)
}
