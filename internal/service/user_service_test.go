package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/maheshrc27/pagepost/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserInfo(t *testing.T) {
	token, name := "sealed", "Jane"
	user := &models.User{ID: uuid.New(), Email: "jane@example.com", FacebookAccessToken: &token, FacebookName: &name}

	info, err := NewUserService(&fakeUserRepo{user: user}).GetUserInfo(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, info.FacebookConnected)
	assert.Equal(t, "Jane", *info.FacebookName)
	assert.Equal(t, "jane@example.com", info.Email)
}

func TestGetUserInfo_NotConnected(t *testing.T) {
	info, err := NewUserService(&fakeUserRepo{user: &models.User{ID: uuid.New()}}).GetUserInfo(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, info.FacebookConnected)
}

func TestGetUserInfo_Missing(t *testing.T) {
	_, err := NewUserService(&fakeUserRepo{}).GetUserInfo(context.Background(), uuid.New())
	assert.True(t, IsClientError(err))
}
