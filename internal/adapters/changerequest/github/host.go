package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

const defaultRequestTimeout = 30 * time.Second

type Config struct {
	// Repository is the upstream "owner/name" the pull request targets.
	Repository string
	// BaseURL overrides the API endpoint, e.g. for GitHub Enterprise.
	BaseURL string
	Timeout time.Duration
}

// Host opens pull requests on GitHub. The token is resolved per call so a
// login after startup is picked up without a restart.
type Host struct {
	owner      string
	repo       string
	baseURL    *url.URL
	timeout    time.Duration
	tokens     ports.TokenSource
	httpClient *http.Client
}

var _ ports.ChangeRequestHost = (*Host)(nil)

func New(cfg Config, tokens ports.TokenSource, httpClient *http.Client) (*Host, error) {
	owner, repo, ok := strings.Cut(strings.Trim(cfg.Repository, "/"), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("github repository must be owner/name, got %q", cfg.Repository)
	}

	h := &Host{
		owner:      owner,
		repo:       repo,
		timeout:    cfg.Timeout,
		tokens:     tokens,
		httpClient: httpClient,
	}
	if h.timeout <= 0 {
		h.timeout = defaultRequestTimeout
	}
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		parsed, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}
		h.baseURL = parsed
	}
	return h, nil
}

// Create opens a pull request from req.SourceRef into req.TargetRef. When
// one is already open for the same head, its URL is returned inside a
// *domain.ConflictError.
func (h *Host) Create(ctx context.Context, req ports.ChangeRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client, err := h.client(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	pr, _, err := client.PullRequests.Create(ctx, h.owner, h.repo, &gh.NewPullRequest{
		Title: gh.String(req.Title),
		Head:  gh.String(req.SourceRef),
		Base:  gh.String(req.TargetRef),
		Body:  gh.String(req.Body),
	})
	if err == nil {
		return pr.GetHTMLURL(), nil
	}

	if alreadyExists(err) {
		existing, lookupErr := h.findOpen(ctx, client, req)
		if lookupErr != nil {
			return "", &domain.ConflictError{}
		}
		return "", &domain.ConflictError{URL: existing}
	}
	return "", classify(err)
}

func (h *Host) client(ctx context.Context) (*gh.Client, error) {
	client := gh.NewClient(h.httpClient)
	if h.baseURL != nil {
		client.BaseURL = h.baseURL
	}
	if h.tokens == nil {
		return client, nil
	}

	token, err := h.tokens.Token(ctx)
	if err != nil {
		return nil, &domain.RemoteError{Category: domain.RemoteAuth, Detail: "no GitHub token is configured", Err: err}
	}
	return client.WithAuthToken(token), nil
}

func (h *Host) findOpen(ctx context.Context, client *gh.Client, req ports.ChangeRequest) (string, error) {
	head := req.SourceRef
	if !strings.Contains(head, ":") {
		head = h.owner + ":" + head
	}

	pulls, _, err := client.PullRequests.List(ctx, h.owner, h.repo, &gh.PullRequestListOptions{
		State: "open",
		Head:  head,
		Base:  req.TargetRef,
	})
	if err != nil {
		return "", fmt.Errorf("list open pull requests: %w", err)
	}
	if len(pulls) == 0 {
		return "", errors.New("no open pull request found")
	}
	return pulls[0].GetHTMLURL(), nil
}

func alreadyExists(err error) bool {
	var apiErr *gh.ErrorResponse
	if !errors.As(err, &apiErr) || apiErr.Response == nil || apiErr.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}
	if strings.Contains(strings.ToLower(apiErr.Message), "already exists") {
		return true
	}
	for _, e := range apiErr.Errors {
		if strings.Contains(strings.ToLower(e.Message), "already exists") {
			return true
		}
	}
	return false
}

func classify(err error) *domain.RemoteError {
	var apiErr *gh.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		status := apiErr.Response.StatusCode
		remote := &domain.RemoteError{StatusCode: status, Detail: apiErr.Message, Err: err}
		switch {
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			remote.Category = domain.RemoteAuth
		case status == http.StatusNotFound:
			remote.Category = domain.RemoteNotFound
		case status == http.StatusUnprocessableEntity:
			remote.Category = domain.RemoteValidation
			remote.Detail = validationDetail(apiErr)
		default:
			remote.Category = domain.RemoteUnknown
		}
		return remote
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &domain.RemoteError{Category: domain.RemoteAuth, StatusCode: http.StatusForbidden, Detail: "GitHub rate limit exceeded", Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.RemoteError{Category: domain.RemoteTimeout, Detail: "GitHub did not answer in time", Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return &domain.RemoteError{Category: domain.RemoteTimeout, Detail: "GitHub did not answer in time", Err: err}
		}
		return &domain.RemoteError{Category: domain.RemoteConnection, Detail: "could not reach GitHub", Err: err}
	}

	return &domain.RemoteError{Category: domain.RemoteUnknown, Detail: err.Error(), Err: err}
}

func validationDetail(apiErr *gh.ErrorResponse) string {
	parts := []string{apiErr.Message}
	for _, e := range apiErr.Errors {
		switch {
		case e.Message != "":
			parts = append(parts, e.Message)
		case e.Field != "":
			parts = append(parts, e.Field+" "+e.Code)
		}
	}
	return strings.Join(parts, "; ")
}
