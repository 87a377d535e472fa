package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// SignInRequest is the body of POST /v1/auth/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse carries the issued bearer token and the server's reference
// date, which the calendar uses to disable future days.
type SignInResponse struct {
	Token string `json:"token"`
	Today string `json:"today"` // YYYY-MM-DD
}

// Profile is the signed-in user's account and school context.
type Profile struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	SchoolID   int64  `json:"school_id"`
	SchoolName string `json:"school_name"`
}

// SignIn exchanges credentials for a bearer token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInResponse, error) {
	var resp SignInResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/signin", nil, SignInRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("sign in: empty token in response")
	}
	return &resp, nil
}

// FetchProfile loads the signed-in user's profile. The profile endpoint has
// shipped both a bare profile object and a {"data": profile} envelope; the
// shape is decided here, once, instead of being sniffed at call sites.
func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/v1/profile", nil, nil, &raw); err != nil {
		return nil, err
	}
	return decodeProfile(raw)
}

func decodeProfile(raw json.RawMessage) (*Profile, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		raw = envelope.Data
	}

	var profile Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if profile.SchoolID == 0 {
		return nil, fmt.Errorf("decode profile: missing school context")
	}
	return &profile, nil
}
