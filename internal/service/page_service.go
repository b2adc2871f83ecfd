package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/pagepost/internal/models"
	"github.com/maheshrc27/pagepost/internal/repository"
	"github.com/maheshrc27/pagepost/internal/transfer"
	"github.com/maheshrc27/pagepost/pkg/utils"
)

type PageService interface {
	GetAuthURL(state string) string
	Connect(ctx context.Context, code string, userID uuid.UUID) (int, error)
	List(ctx context.Context, userID uuid.UUID) ([]*models.FacebookPage, error)
	Delete(ctx context.Context, userID, pageID uuid.UUID) error
	CreatePage(ctx context.Context, userID uuid.UUID, pc *transfer.PageCreation) (string, error)
}

type pageService struct {
	fb     FacebookService
	pages  repository.FacebookPageRepository
	users  repository.UserRepository
	cipher utils.TokenCipher
}

func NewPageService(
	fb FacebookService,
	pages repository.FacebookPageRepository,
	users repository.UserRepository,
	cipher utils.TokenCipher) PageService {
	return &pageService{
		fb:     fb,
		pages:  pages,
		users:  users,
		cipher: cipher,
	}
}

func (s *pageService) GetAuthURL(state string) string {
	return s.fb.AuthCodeURL(state)
}

// Connect finishes the OAuth dance: it stores the user's Facebook token and
// every page the user manages, and returns how many pages were stored.
func (s *pageService) Connect(ctx context.Context, code string, userID uuid.UUID) (int, error) {
	if code == "" {
		err := invalid("code or state is empty")
		slog.Info(err.Error())
		return 0, err
	}
	if userID == uuid.Nil {
		err := invalid("User not found")
		slog.Info(err.Error())
		return 0, err
	}

	token, err := s.fb.ExchangeCode(ctx, code)
	if err != nil {
		return 0, err
	}

	userInfo, err := s.fb.GetUserInfo(ctx, token.AccessToken)
	if err != nil {
		return 0, err
	}

	sealedUserToken, err := s.cipher.Seal(token.AccessToken)
	if err != nil {
		return 0, fmt.Errorf("failed to encrypt user token: %w", err)
	}

	user := &models.User{
		ID:                  userID,
		FacebookAccessToken: &sealedUserToken,
		FacebookUserID:      &userInfo.ID,
		FacebookName:        &userInfo.Name,
	}
	if !token.ExpiresAt.IsZero() {
		user.TokenExpiresAt = &token.ExpiresAt
	}
	if err := s.users.SetFacebookToken(ctx, user); err != nil {
		return 0, err
	}

	fbPages, err := s.fb.GetUserPages(ctx, token.AccessToken)
	if err != nil {
		return 0, err
	}

	connectedAt := time.Now().UTC()
	for _, fp := range fbPages {
		sealedPageToken, err := s.cipher.Seal(fp.AccessToken)
		if err != nil {
			return 0, fmt.Errorf("failed to encrypt page token: %w", err)
		}

		page := &models.FacebookPage{
			UserID:          userID,
			PageID:          fp.ID,
			PageName:        fp.Name,
			PageAccessToken: sealedPageToken,
			ConnectedAt:     connectedAt,
		}
		if picture := fp.Picture.Data.URL; picture != "" {
			page.PagePictureURL = &picture
		}

		if _, err := s.pages.Upsert(ctx, page); err != nil {
			return 0, fmt.Errorf("error saving page %s: %w", fp.ID, err)
		}
	}

	slog.Info("facebook pages connected", "user_id", userID, "pages", len(fbPages))
	return len(fbPages), nil
}

func (s *pageService) List(ctx context.Context, userID uuid.UUID) ([]*models.FacebookPage, error) {
	if userID == uuid.Nil {
		err := invalid("UserID is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	pages, err := s.pages.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting pages: %w", err)
	}

	return pages, nil
}

func (s *pageService) Delete(ctx context.Context, userID, pageID uuid.UUID) error {
	if userID == uuid.Nil || pageID == uuid.Nil {
		err := invalid("page id is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.pages.CheckByUserID(ctx, pageID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		slog.Info("page doesn't exist", "page_id", pageID, "user_id", userID)
		return ErrNotOwned
	}

	if err := s.pages.Remove(ctx, pageID); err != nil {
		return fmt.Errorf("Error removing page: %w", err)
	}

	return nil
}

func (s *pageService) CreatePage(ctx context.Context, userID uuid.UUID, pc *transfer.PageCreation) (string, error) {
	if pc == nil || strings.TrimSpace(pc.Name) == "" || strings.TrimSpace(pc.Category) == "" {
		return "", invalid("name and category are required")
	}

	user, isExist, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !isExist || user.FacebookAccessToken == nil || *user.FacebookAccessToken == "" {
		return "", ErrFacebookNotConnected
	}

	accessToken, err := s.cipher.Open(*user.FacebookAccessToken)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt user token: %w", err)
	}

	pageID, err := s.fb.CreatePage(ctx, accessToken, pc)
	if err != nil {
		return "", err
	}

	return pageID, nil
}

// IsClientError reports whether err should be answered with a 4xx status.
func IsClientError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr) ||
		errors.Is(err, ErrNotOwned) ||
		errors.Is(err, ErrFacebookNotConnected)
}
