package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dormhub/infras/jwt"
	"dormhub/internal/domains/auth/model/dto"
	"dormhub/shared/timezone"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestUpdateLastLoginRequest(t *testing.T) {
	now := timezone.Now()

	req := dto.UpdateLastLoginRequest{
		LastLogin: now,
	}

	assert.Equal(t, now, req.LastLogin)
}

func TestUpdatePasswordRequest(t *testing.T) {
	hashedPassword := "hashed-new-password"

	req := dto.UpdatePasswordRequest{
		Password: hashedPassword,
	}

	assert.Equal(t, hashedPassword, req.Password)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Email:     "new@example.com",
		Password:  "plaintext",
		FirstName: "New",
		LastName:  "User",
		Tel:       stringPtr("0812345678"),
	}

	user := req.ToUserModel("guest", "hashed-password")

	assert.Equal(t, req.Email, user.Email)
	assert.Equal(t, "hashed-password", user.Password)
	assert.Equal(t, "user", user.Role)
	assert.Equal(t, req.FirstName, user.FirstName)
	assert.Equal(t, req.LastName, user.LastName)
	assert.Equal(t, req.Tel, user.Tel)
	assert.True(t, user.Active)
	assert.Equal(t, "guest", user.CreatedBy)
}

// Helper function to create string pointer
func stringPtr(s string) *string {
	return &s
}
