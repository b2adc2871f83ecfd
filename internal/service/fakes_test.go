package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/maheshrc27/pagepost/internal/models"
	"github.com/maheshrc27/pagepost/internal/repository"
	"github.com/maheshrc27/pagepost/internal/transfer"
)

type fakeFacebook struct {
	FacebookService

	token   *transfer.FacebookToken
	user    *transfer.FacebookUserInfo
	pages   []transfer.FacebookPage
	pageID  string
	err     error
	created *transfer.PageCreation
	usedTok string
}

func (f *fakeFacebook) AuthCodeURL(state string) string {
	return "https://facebook.test/dialog?state=" + state
}

func (f *fakeFacebook) ExchangeCode(ctx context.Context, code string) (*transfer.FacebookToken, error) {
	return f.token, f.err
}

func (f *fakeFacebook) GetUserInfo(ctx context.Context, accessToken string) (*transfer.FacebookUserInfo, error) {
	f.usedTok = accessToken
	return f.user, nil
}

func (f *fakeFacebook) GetUserPages(ctx context.Context, accessToken string) ([]transfer.FacebookPage, error) {
	return f.pages, nil
}

func (f *fakeFacebook) CreatePage(ctx context.Context, accessToken string, pc *transfer.PageCreation) (string, error) {
	f.usedTok = accessToken
	f.created = pc
	return f.pageID, f.err
}

type fakePageRepo struct {
	repository.FacebookPageRepository

	upserted []*models.FacebookPage
	owned    bool
	removed  []uuid.UUID
	list     []*models.FacebookPage
}

func (f *fakePageRepo) Upsert(ctx context.Context, page *models.FacebookPage) (uuid.UUID, error) {
	f.upserted = append(f.upserted, page)
	return uuid.New(), nil
}

func (f *fakePageRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.FacebookPage, error) {
	return f.list, nil
}

func (f *fakePageRepo) CheckByUserID(ctx context.Context, pageID, userID uuid.UUID) (bool, error) {
	return f.owned, nil
}

func (f *fakePageRepo) Remove(ctx context.Context, id uuid.UUID) error {
	f.removed = append(f.removed, id)
	return nil
}

type fakeUserRepo struct {
	repository.UserRepository

	user   *models.User
	stored *models.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, bool, error) {
	if f.user == nil {
		return nil, false, nil
	}
	return f.user, true, nil
}

func (f *fakeUserRepo) SetFacebookToken(ctx context.Context, user *models.User) error {
	f.stored = user
	return nil
}

type fakePostRepo struct {
	repository.ScheduledPostRepository

	created []*models.ScheduledPost
	owned   bool
	removed []uuid.UUID
}

func (f *fakePostRepo) Create(ctx context.Context, post *models.ScheduledPost) (uuid.UUID, error) {
	f.created = append(f.created, post)
	return uuid.New(), nil
}

func (f *fakePostRepo) CheckByUserID(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	return f.owned, nil
}

func (f *fakePostRepo) Remove(ctx context.Context, id uuid.UUID) error {
	f.removed = append(f.removed, id)
	return nil
}

type fakeLogRepo struct {
	repository.PostLogRepository

	entries   []*models.PostLog
	listedFor uuid.UUID
}

func (f *fakeLogRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.PostLog, error) {
	f.listedFor = userID
	return f.entries, nil
}
