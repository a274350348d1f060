package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	deviceCodeGrantType   = "urn:ietf:params:oauth:grant-type:device_code"
	maxOAuthResponseBytes = 1 << 20

	DefaultBaseURL    = "https://github.com"
	deviceCodePath    = "/login/device/code"
	accessTokenPath   = "/login/oauth/access_token"
	defaultInterval   = 5 * time.Second
	slowDownIncrement = 5 * time.Second
)

// DefaultScopes lets the token push branches and open pull requests.
var DefaultScopes = []string{"repo"}

var (
	ErrDeviceFlowTimeout = errors.New("timed out waiting for device authorization")
	ErrAccessDenied      = errors.New("device authorization was denied")
)

// DeviceFlow implements the GitHub OAuth device authorization grant.
type DeviceFlow struct {
	BaseURL        string
	ClientID       string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

type DeviceCode struct {
	VerificationURL string
	UserCode        string
	PollInterval    time.Duration
	ExpiresIn       time.Duration
	deviceCode      string
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

type deviceCodeResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int64  `json:"expires_in"`
	Interval        int64  `json:"interval"`
}

// GitHub answers token polls with 200 and an error field while pending.
type accessTokenResponse struct {
	Token
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Interval         int64  `json:"interval"`
}

// Login requests a device code, hands it to prompt so the user can enter it
// in a browser, then waits for the grant.
func (f DeviceFlow) Login(ctx context.Context, scopes []string, prompt func(DeviceCode)) (Token, error) {
	code, err := f.RequestDeviceCode(ctx, scopes)
	if err != nil {
		return Token{}, err
	}
	if prompt != nil {
		prompt(code)
	}
	return f.PollToken(ctx, code)
}

func (f DeviceFlow) RequestDeviceCode(ctx context.Context, scopes []string) (DeviceCode, error) {
	if f.ClientID == "" {
		return DeviceCode{}, errors.New("github oauth client id is required")
	}

	values := url.Values{}
	values.Set("client_id", f.ClientID)
	if len(scopes) > 0 {
		values.Set("scope", strings.Join(scopes, " "))
	}

	requestCtx, cancel := f.requestContext(ctx)
	defer cancel()

	var payload deviceCodeResponse
	if err := f.post(requestCtx, deviceCodePath, values, &payload); err != nil {
		return DeviceCode{}, fmt.Errorf("request device code: %w", err)
	}
	if payload.DeviceCode == "" || payload.UserCode == "" || payload.VerificationURI == "" {
		return DeviceCode{}, errors.New("device code response missing required fields")
	}

	code := DeviceCode{
		VerificationURL: payload.VerificationURI,
		UserCode:        payload.UserCode,
		PollInterval:    time.Duration(payload.Interval) * time.Second,
		ExpiresIn:       time.Duration(payload.ExpiresIn) * time.Second,
		deviceCode:      payload.DeviceCode,
	}
	if code.PollInterval <= 0 {
		code.PollInterval = defaultInterval
	}
	if code.ExpiresIn <= 0 {
		code.ExpiresIn = 15 * time.Minute
	}
	return code, nil
}

// PollToken waits until the user approves the device code, it expires, or
// ctx is done.
func (f DeviceFlow) PollToken(ctx context.Context, code DeviceCode) (Token, error) {
	if code.deviceCode == "" {
		return Token{}, errors.New("device code is required")
	}

	ctx, cancel := context.WithTimeout(ctx, code.ExpiresIn)
	defer cancel()

	interval := code.PollInterval
	for {
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return Token{}, ErrDeviceFlowTimeout
			}
			return Token{}, ctx.Err()
		case <-timer.C:
		}

		token, next, done, err := f.pollOnce(ctx, code.deviceCode, interval)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return Token{}, ErrDeviceFlowTimeout
			}
			return Token{}, err
		}
		if done {
			return token, nil
		}
		interval = next
	}
}

func (f DeviceFlow) pollOnce(ctx context.Context, deviceCode string, interval time.Duration) (Token, time.Duration, bool, error) {
	values := url.Values{}
	values.Set("client_id", f.ClientID)
	values.Set("device_code", deviceCode)
	values.Set("grant_type", deviceCodeGrantType)

	var payload accessTokenResponse
	if err := f.post(ctx, accessTokenPath, values, &payload); err != nil {
		return Token{}, 0, false, fmt.Errorf("request token: %w", err)
	}

	switch payload.Error {
	case "":
		if payload.AccessToken == "" {
			return Token{}, 0, false, errors.New("token response missing access token")
		}
		return payload.Token, 0, true, nil
	case "authorization_pending":
		return Token{}, interval, false, nil
	case "slow_down":
		if payload.Interval > 0 {
			return Token{}, time.Duration(payload.Interval) * time.Second, false, nil
		}
		return Token{}, interval + slowDownIncrement, false, nil
	case "expired_token":
		return Token{}, 0, false, ErrDeviceFlowTimeout
	case "access_denied":
		return Token{}, 0, false, ErrAccessDenied
	default:
		return Token{}, 0, false, fmt.Errorf("request token: %s", formatOAuthError(payload.Error, payload.ErrorDescription))
	}
}

func (f DeviceFlow) post(ctx context.Context, path string, values url.Values, out any) error {
	endpoint, err := buildURL(f.BaseURL, path)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body := io.LimitReader(resp.Body, maxOAuthResponseBytes)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var oauthErr accessTokenResponse
		if err := json.NewDecoder(body).Decode(&oauthErr); err != nil || oauthErr.Error == "" {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return errors.New(formatOAuthError(oauthErr.Error, oauthErr.ErrorDescription))
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (f DeviceFlow) httpClient() *http.Client {
	if f.HTTPClient != nil {
		return f.HTTPClient
	}
	return http.DefaultClient
}

func (f DeviceFlow) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := f.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func formatOAuthError(code, description string) string {
	if description != "" {
		return code + ": " + description
	}
	return code
}

func buildURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse github base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("github base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("github base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse oauth path: %w", err)
	}
	return endpoint.String(), nil
}
