package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/pagepost/internal/models"
	"github.com/maheshrc27/pagepost/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostService(posts *fakePostRepo, pages *fakePageRepo, now time.Time) *postService {
	return &postService{pr: posts, fp: pages, pl: &fakeLogRepo{}, now: func() time.Time { return now }}
}

func TestCreatePost(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	posts := &fakePostRepo{}
	svc := newTestPostService(posts, &fakePageRepo{owned: true}, now)
	userID, pageID := uuid.New(), uuid.New()

	id, err := svc.CreatePost(context.Background(), userID, &transfer.PostCreation{
		PageID:        pageID.String(),
		Content:       "  Hello world  ",
		ScheduledTime: "2024-01-01T11:00:00Z",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	require.Len(t, posts.created, 1)
	created := posts.created[0]
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, pageID, created.PageID)
	assert.Equal(t, "Hello world", created.Content)
	assert.Equal(t, models.PostStatusPending, created.Status)
	assert.True(t, created.ScheduledTime.Equal(now.Add(time.Hour)))
}

func TestCreatePost_DatetimeLocalLayout(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	posts := &fakePostRepo{}
	svc := newTestPostService(posts, &fakePageRepo{owned: true}, now)

	_, err := svc.CreatePost(context.Background(), uuid.New(), &transfer.PostCreation{
		PageID:        uuid.NewString(),
		Content:       "Hi",
		ScheduledTime: "2024-01-01T10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, 30, posts.created[0].ScheduledTime.Minute())
}

func TestCreatePost_Validation(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	future := "2024-01-02T10:00:00Z"

	tests := []struct {
		name string
		pc   *transfer.PostCreation
	}{
		{"nil body", nil},
		{"empty content", &transfer.PostCreation{PageID: uuid.NewString(), Content: "   ", ScheduledTime: future}},
		{"content too long", &transfer.PostCreation{PageID: uuid.NewString(), Content: strings.Repeat("é", models.MaxPostContentLength+1), ScheduledTime: future}},
		{"bad page id", &transfer.PostCreation{PageID: "nope", Content: "x", ScheduledTime: future}},
		{"bad time", &transfer.PostCreation{PageID: uuid.NewString(), Content: "x", ScheduledTime: "tomorrow"}},
		{"past time", &transfer.PostCreation{PageID: uuid.NewString(), Content: "x", ScheduledTime: "2023-12-31T10:00:00Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := &fakePostRepo{}
			svc := newTestPostService(posts, &fakePageRepo{owned: true}, now)

			_, err := svc.CreatePost(context.Background(), uuid.New(), tt.pc)
			require.Error(t, err)
			assert.True(t, IsClientError(err))
			assert.Empty(t, posts.created)
		})
	}
}

func TestCreatePost_MaxLengthAccepted(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	posts := &fakePostRepo{}
	svc := newTestPostService(posts, &fakePageRepo{owned: true}, now)

	_, err := svc.CreatePost(context.Background(), uuid.New(), &transfer.PostCreation{
		PageID:        uuid.NewString(),
		Content:       strings.Repeat("é", models.MaxPostContentLength),
		ScheduledTime: "2024-01-02T10:00:00Z",
	})
	assert.NoError(t, err)
}

func TestCreatePost_PageNotOwned(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	posts := &fakePostRepo{}
	svc := newTestPostService(posts, &fakePageRepo{owned: false}, now)

	_, err := svc.CreatePost(context.Background(), uuid.New(), &transfer.PostCreation{
		PageID:        uuid.NewString(),
		Content:       "x",
		ScheduledTime: "2024-01-02T10:00:00Z",
	})
	assert.ErrorIs(t, err, ErrNotOwned)
	assert.Empty(t, posts.created)
}

func TestRemovePost(t *testing.T) {
	posts := &fakePostRepo{owned: true}
	svc := newTestPostService(posts, &fakePageRepo{}, time.Now())
	postID := uuid.New()

	require.NoError(t, svc.Remove(context.Background(), uuid.New(), postID))
	assert.Equal(t, []uuid.UUID{postID}, posts.removed)

	posts.owned = false
	assert.ErrorIs(t, svc.Remove(context.Background(), uuid.New(), uuid.New()), ErrNotOwned)
	assert.Len(t, posts.removed, 1)
}

func TestListLogs(t *testing.T) {
	userID := uuid.New()
	logs := &fakeLogRepo{entries: []*models.PostLog{{UserID: userID, Status: models.PostStatusPublished}}}
	svc := NewPostService(&fakePostRepo{}, &fakePageRepo{}, logs)

	got, err := svc.ListLogs(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.PostStatusPublished, got[0].Status)
	assert.Equal(t, userID, logs.listedFor)
}
