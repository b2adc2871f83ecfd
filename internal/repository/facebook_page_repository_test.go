package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/maheshrc27/pagepost/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertPage(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFacebookPageRepository(db)

	id, user := uuid.New(), uuid.New()
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	picture := "https://cdn.example/p.png"

	mock.ExpectQuery("ON CONFLICT \\(user_id, page_id\\) DO UPDATE").
		WithArgs(user, "1234", "Bakery", "sealed", picture, at).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	got, err := repo.Upsert(context.Background(), &models.FacebookPage{
		UserID:          user,
		PageID:          "1234",
		PageName:        "Bakery",
		PageAccessToken: "sealed",
		PagePictureURL:  &picture,
		ConnectedAt:     at,
	})
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPage_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFacebookPageRepository(db)

	mock.ExpectQuery("FROM facebook_pages").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPages(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFacebookPageRepository(db)

	user := uuid.New()
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "user_id", "page_id", "page_name", "page_picture_url", "connected_at", "created_at"}).
		AddRow(uuid.NewString(), user.String(), "1", "One", nil, at, at).
		AddRow(uuid.NewString(), user.String(), "2", "Two", "https://cdn.example/2.png", at, at)
	mock.ExpectQuery("FROM facebook_pages").WithArgs(user).WillReturnRows(rows)

	pages, err := repo.ListByUserID(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Nil(t, pages[0].PagePictureURL)
	require.NotNil(t, pages[1].PagePictureURL)
	assert.Equal(t, "https://cdn.example/2.png", *pages[1].PagePictureURL)
}

func TestAppendPostLog(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostLogRepository(db)

	id, user, page := uuid.New(), uuid.New(), uuid.New()
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	fbID := "999"

	mock.ExpectQuery("INSERT INTO post_logs").
		WithArgs(user, page, "hello", fbID, models.PostStatusPublished, at).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	got, err := repo.Create(context.Background(), &models.PostLog{
		UserID:         user,
		PageID:         page,
		Content:        "hello",
		FacebookPostID: &fbID,
		Status:         models.PostStatusPublished,
		PublishedAt:    at,
	})
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetFacebookToken_MissingUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

	token := "sealed"
	err := repo.SetFacebookToken(context.Background(), &models.User{ID: uuid.New(), FacebookAccessToken: &token})
	assert.ErrorIs(t, err, ErrNotFound)
}
