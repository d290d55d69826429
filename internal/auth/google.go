package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"google.golang.org/api/idtoken"
)

const (
	googleTokenInfoURL = "https://www.googleapis.com/oauth2/v1/tokeninfo"
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v3/userinfo"
)

var ErrGoogleToken = errors.New("недействительный токен Google")

// GoogleUser содержит данные профиля, полученные из токена Google.
type GoogleUser struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	EmailVerified bool   `json:"email_verified"`
}

// GoogleVerifier принимает как ID token, так и OAuth access token.
type GoogleVerifier struct {
	ClientID     string
	HTTPClient   *http.Client
	TokenInfoURL string
	UserInfoURL  string

	validateIDToken func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		ClientID:        clientID,
		HTTPClient:      &http.Client{Timeout: 10 * time.Second},
		TokenInfoURL:    googleTokenInfoURL,
		UserInfoURL:     googleUserInfoURL,
		validateIDToken: idtoken.Validate,
	}
}

// Verify сначала проверяет токен как ID token, затем как access token.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*GoogleUser, error) {
	if v.ClientID == "" {
		return nil, fmt.Errorf("%w: GOOGLE_CLIENT_ID не задан", ErrGoogleToken)
	}

	if payload, err := v.validateIDToken(ctx, token, v.ClientID); err == nil {
		return userFromClaims(payload.Claims), nil
	}

	if err := v.checkAccessToken(ctx, token); err != nil {
		return nil, err
	}
	return v.fetchUserInfo(ctx, token)
}

func (v *GoogleVerifier) checkAccessToken(ctx context.Context, token string) error {
	u := v.TokenInfoURL + "?access_token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGoogleToken, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: tokeninfo status %d", ErrGoogleToken, resp.StatusCode)
	}

	var info struct {
		Audience string `json:"audience"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("%w: %v", ErrGoogleToken, err)
	}
	if info.Audience != v.ClientID {
		return fmt.Errorf("%w: токен выдан другому приложению", ErrGoogleToken)
	}
	return nil
}

func (v *GoogleVerifier) fetchUserInfo(ctx context.Context, token string) (*GoogleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGoogleToken, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo status %d", ErrGoogleToken, resp.StatusCode)
	}

	var user GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGoogleToken, err)
	}
	if user.Email == "" {
		return nil, fmt.Errorf("%w: в профиле нет email", ErrGoogleToken)
	}
	return &user, nil
}

func userFromClaims(claims map[string]interface{}) *GoogleUser {
	str := func(key string) string {
		s, _ := claims[key].(string)
		return s
	}
	verified, _ := claims["email_verified"].(bool)
	return &GoogleUser{
		Email:         str("email"),
		Name:          str("name"),
		Picture:       str("picture"),
		GivenName:     str("given_name"),
		FamilyName:    str("family_name"),
		EmailVerified: verified,
	}
}
