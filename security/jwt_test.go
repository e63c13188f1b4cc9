package security

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-app-core/config/common"
	"chat-app-core/entity"
	"chat-app-core/enum"
)

func newTestJWT(secret string) *JWT {
	v := viper.New()
	v.Set("JWT_SECRET", secret)
	return NewJWT(&common.Config{Viper: v})
}

func TestGenerateAndVerifyToken(t *testing.T) {
	jwt := newTestJWT("test-secret")
	user := &entity.User{Role: enum.UserRoleUser}
	user.ID = "user-123"

	token, err := jwt.GenerateToken(user)
	require.NoError(t, err)

	claims, err := jwt.VerifyJwtToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, string(enum.UserRoleUser), claims["role"])

	subject, err := jwt.GetUserIdFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := newTestJWT("secret-a").GenerateToken(&entity.User{})
	require.NoError(t, err)

	_, err = newTestJWT("secret-b").VerifyJwtToken(token)
	assert.Error(t, err)

	_, err = newTestJWT("secret-a").VerifyJwtToken("not.a.token")
	assert.Error(t, err)
}
