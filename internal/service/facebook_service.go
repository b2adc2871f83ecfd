package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	config "github.com/maheshrc27/pagepost/configs"
	"github.com/maheshrc27/pagepost/internal/transfer"
	"golang.org/x/oauth2"
)

var facebookScopes = []string{
	"pages_show_list",
	"pages_manage_posts",
	"pages_read_engagement",
}

type FacebookService interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*transfer.FacebookToken, error)
	GetUserInfo(ctx context.Context, accessToken string) (*transfer.FacebookUserInfo, error)
	GetUserPages(ctx context.Context, accessToken string) ([]transfer.FacebookPage, error)
	PublishPost(ctx context.Context, accessToken, pageID, message string) (*transfer.FacebookPostResult, error)
	CreatePage(ctx context.Context, accessToken string, pc *transfer.PageCreation) (string, error)
}

type facebookService struct {
	graphURL string
	client   *http.Client
	oauth    *oauth2.Config
}

func NewFacebookService(cfg config.Config, client *http.Client) FacebookService {
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &facebookService{
		graphURL: strings.TrimRight(cfg.Facebook.GraphURL, "/"),
		client:   client,
		oauth: &oauth2.Config{
			ClientID:     cfg.Facebook.AppID,
			ClientSecret: cfg.Facebook.AppSecret,
			RedirectURL:  cfg.Facebook.RedirectURI,
			Scopes:       facebookScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.Facebook.DialogURL,
				TokenURL:  strings.TrimRight(cfg.Facebook.GraphURL, "/") + "/oauth/access_token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

func (s *facebookService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

func (s *facebookService) ExchangeCode(ctx context.Context, code string) (*transfer.FacebookToken, error) {
	if code == "" {
		return nil, invalid("authorization code is empty")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.client)
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("Token exchange failed: %w", err)
	}

	return &transfer.FacebookToken{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.Expiry,
	}, nil
}

func (s *facebookService) GetUserInfo(ctx context.Context, accessToken string) (*transfer.FacebookUserInfo, error) {
	params := url.Values{}
	params.Set("fields", "id,name")
	params.Set("access_token", accessToken)

	var userInfo transfer.FacebookUserInfo
	if err := s.get(ctx, "/me", params, &userInfo); err != nil {
		return nil, fmt.Errorf("Failed to fetch user: %w", err)
	}
	if userInfo.Error != nil {
		return nil, fmt.Errorf("Failed to fetch user: %s", graphErrorMessage(userInfo.Error))
	}

	return &userInfo, nil
}

func (s *facebookService) GetUserPages(ctx context.Context, accessToken string) ([]transfer.FacebookPage, error) {
	params := url.Values{}
	params.Set("fields", "id,name,access_token,picture.type(large)")
	params.Set("access_token", accessToken)

	var result transfer.FacebookPagesResponse
	if err := s.get(ctx, "/me/accounts", params, &result); err != nil {
		return nil, fmt.Errorf("Failed to fetch pages: %w", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("Failed to fetch pages: %s", graphErrorMessage(result.Error))
	}

	return result.Data, nil
}

// PublishPost creates a post on the page feed. Any failure is reported as a
// *PublishError; the call is never retried here.
func (s *facebookService) PublishPost(ctx context.Context, accessToken, pageID, message string) (*transfer.FacebookPostResult, error) {
	if accessToken == "" || pageID == "" {
		return nil, &PublishError{Message: "page id and access token are required"}
	}

	data := url.Values{}
	data.Set("message", message)
	data.Set("access_token", accessToken)

	var result transfer.FacebookPostResult
	if err := s.postForm(ctx, "/"+url.PathEscape(pageID)+"/feed", data, &result); err != nil {
		return nil, &PublishError{Message: err.Error(), Err: err}
	}
	if result.Error != nil {
		return nil, &PublishError{Message: graphErrorMessage(result.Error)}
	}
	if result.ID == "" {
		return nil, &PublishError{Message: errMissingGraphIdentifier.Error(), Err: errMissingGraphIdentifier}
	}

	return &result, nil
}

func (s *facebookService) CreatePage(ctx context.Context, accessToken string, pc *transfer.PageCreation) (string, error) {
	data := url.Values{}
	data.Set("name", pc.Name)
	data.Set("category_enum", pc.Category)
	data.Set("access_token", accessToken)
	if pc.About != "" {
		data.Set("about", pc.About)
	}

	var result transfer.FacebookPostResult
	if err := s.postForm(ctx, "/me/accounts", data, &result); err != nil {
		return "", fmt.Errorf("Page creation failed: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("Page creation failed: %s", graphErrorMessage(result.Error))
	}
	if result.ID == "" {
		return "", fmt.Errorf("Page creation failed: %w", errMissingGraphIdentifier)
	}

	return result.ID, nil
}

func (s *facebookService) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.graphURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	return s.do(req, out)
}

func (s *facebookService) postForm(ctx context.Context, path string, data url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.graphURL+path, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req, out)
}

// do decodes the body whatever the status code: the Graph API reports
// failures through an "error" object that the caller inspects.
func (s *facebookService) do(req *http.Request, out any) error {
	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		slog.Info("unexpected response from Facebook", "status", resp.StatusCode, "error", err)
		return fmt.Errorf("error parsing response (status code: %d): %w", resp.StatusCode, err)
	}

	return nil
}
