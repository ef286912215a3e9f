package resource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kwachira/walletctl/internal/api"
)

// Login exchanges credentials for a session token and persists it. On
// failure nothing is persisted and the standard login notice is shown.
func (s *Service) Login(ctx context.Context, creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	raw, err := s.backend.Post(ctx, "/auth/signin", creds)
	if err != nil {
		s.notices.Error("Invalid Username or password")
		return err
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	if result.AccessToken == "" {
		return fmt.Errorf("login response carried no access token")
	}

	if err := s.tokens.SetToken(ctx, result.AccessToken); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	return nil
}

// Signup registers a new user. It does not sign the user in; login is a
// separate step, as in the web client.
func (s *Service) Signup(ctx context.Context, in SignupInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	if _, err := s.backend.Post(ctx, "/auth/signup", in); err != nil {
		s.notices.Error(api.UserMessage(err, genericFailure))
		return err
	}

	s.notices.Success("Sign up successfully")
	return nil
}

// Logout ends the session server-side, then clears every piece of
// process-wide session state: the cached profile, the persisted token, and
// all cached resources.
func (s *Service) Logout(ctx context.Context) error {
	if _, err := s.backend.Get(ctx, "/auth/logout", nil); err != nil {
		s.notices.Error(api.UserMessage(err, genericFailure))
		return err
	}

	s.sessions.Clear()
	if err := s.tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	s.cache.InvalidateAll()

	s.notices.Success("Logout successful")
	return nil
}
