package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/repositories/memory"
)

const testSecret = "test-secret"

func newAuthFixture(t *testing.T) (AuthService, *memory.Store, models.User) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	s := memory.NewStore()
	user := s.AddUser(models.User{Username: "alice", PasswordHash: string(hash), IsStaff: true})
	return NewAuthService(s.Users(), s.Players(), testSecret, time.Hour), s, user
}

func TestLoginIssuesToken(t *testing.T) {
	auth, _, user := newAuthFixture(t)

	token, err := auth.Login(context.Background(), models.Credentials{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	assert.Equal(t, jwt.SigningMethodHS256.Alg(), parsed.Method.Alg())

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["user_id"])
	assert.Equal(t, true, claims["is_staff"])
	assert.InDelta(t, time.Hour.Seconds(), claims["exp"].(float64)-claims["iat"].(float64), 1)

	userID, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, models.Credentials{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, models.Credentials{Username: "bob", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejects(t *testing.T) {
	auth, _, user := newAuthFixture(t)

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": sign(jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"user_id": user.ID}),
		"expired": sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
			"user_id": user.ID,
			"exp":     time.Now().Add(-time.Minute).Unix(),
		}),
		"missing user":    sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "x"}),
		"fractional user": sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"user_id": 1.5}),
		"none alg":        sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"user_id": user.ID}),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := auth.ParseToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestResolveActor(t *testing.T) {
	auth, s, staff := newAuthFixture(t)
	ctx := context.Background()

	actor, err := auth.ResolveActor(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Actor{UserID: staff.ID, IsStaff: true}, actor)

	u := s.AddUser(models.User{Username: "carol"})
	p := s.AddPlayer(models.Player{UserID: u.ID, Username: "carol"})

	actor, err = auth.ResolveActor(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, actor.IsAuthenticated())
	assert.False(t, actor.IsStaff)
	assert.True(t, actor.IsPlayer(p.ID))

	_, err = auth.ResolveActor(ctx, 9999)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
