package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"libraryhub/models"
)

// UserSource is the slice of the user repository the guard needs.
type UserSource interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Guard resolves bearer tokens to user records. One request moves
// Anonymous -> Authenticated (CurrentUser) -> Authorized (RequireRole).
type Guard struct {
	Secret string
	Expire time.Duration
	Users  UserSource
}

func NewGuard(secret string, expire time.Duration, users UserSource) *Guard {
	return &Guard{Secret: secret, Expire: expire, Users: users}
}

// IssueToken signs a token for the given username.
func (g *Guard) IssueToken(username string) (string, error) {
	return IssueToken(g.Secret, username, g.Expire)
}

// CurrentUser extracts the bearer token from the Authorization header,
// decodes it, and loads the user it names. Every failure is
// ErrUnauthenticated.
func (g *Guard) CurrentUser(r *http.Request) (*models.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, fmt.Errorf("missing authorization header: %w", ErrUnauthenticated)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, fmt.Errorf("invalid authorization header: %w", ErrUnauthenticated)
	}

	username, err := DecodeToken(g.Secret, strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}

	user, err := g.Users.GetUserByUsername(r.Context(), username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", username, ErrUnauthenticated)
	}
	return user, nil
}

// RequireRole authenticates the request and checks role membership.
func (g *Guard) RequireRole(r *http.Request, roles ...string) (*models.User, error) {
	user, err := g.CurrentUser(r)
	if err != nil {
		return nil, err
	}
	return CheckRole(user, roles...)
}

// CheckRole passes the user through when its role is in roles.
func CheckRole(user *models.User, roles ...string) (*models.User, error) {
	for _, role := range roles {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, fmt.Errorf("role %q not permitted: %w", user.Role, ErrForbidden)
}
