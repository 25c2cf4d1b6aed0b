package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
)

var (
	// ErrInvalidCredentials is returned by Verify and Login for an unknown
	// username or a wrong password. The two cases are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthenticated is returned by Authenticate when a request carries
	// no usable session.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// DefaultSessionTTL is used when NewAuthService is given a non-positive TTL.
const DefaultSessionTTL = 24 * time.Hour

// Session is an issued session token and the identity it carries.
type Session struct {
	Token    string
	Identity model.Identity
}

// sessionClaims are the JWT claims of a session token. Subject is the user
// id and ID is the revocable session id.
type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService verifies credentials and issues, checks and revokes session
// tokens. Tokens are HS256 JWTs; logout records the token id in the
// session store until the token would have expired anyway.
type AuthService struct {
	users    driven.UserStore
	sessions driven.SessionStore
	clock    Clock
	ids      IDGenerator
	secret   []byte
	ttl      time.Duration
	cost     int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates an AuthService signing tokens with secret.
func NewAuthService(
	users driven.UserStore,
	sessions driven.SessionStore,
	secret []byte,
	ttl time.Duration,
	clock Clock,
	ids IDGenerator,
) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		clock:    clock,
		ids:      ids,
		secret:   secret,
		ttl:      ttl,
		cost:     bcrypt.DefaultCost,
	}
}

// EnsureUser creates the credential username/password if no credential with
// that username exists. It reports whether a credential was created; an
// existing credential is left untouched.
func (s *AuthService) EnsureUser(ctx context.Context, username, password string) (bool, error) {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, driven.ErrUserNotFound) {
		return false, fmt.Errorf("look up user %s: %w", username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	_, err = s.users.Create(ctx, model.User{Username: username, PasswordHash: string(hash)})
	if errors.Is(err, driven.ErrUserAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create user %s: %w", username, err)
	}

	return true, nil
}

// Verify checks username (exact, case-sensitive) and password. Unknown users
// still pay for one bcrypt comparison so response time does not reveal
// which usernames exist.
func (s *AuthService) Verify(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, driven.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login verifies the credentials and issues a new session.
func (s *AuthService) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := s.Verify(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	now := s.clock.Now()
	identity := model.Identity{
		UserID:    user.ID,
		Username:  user.Username,
		SessionID: s.ids.New(),
		ExpiresAt: now.Add(s.ttl).Truncate(time.Second),
	}

	claims := sessionClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        identity.SessionID,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(identity.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}

	return Session{Token: token, Identity: identity}, nil
}

// Authenticate resolves token to the identity it was issued for. Empty,
// malformed, foreign, expired and revoked tokens yield ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, ErrUnauthenticated
	}

	claims, err := s.parse(token, true)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return model.Identity{}, fmt.Errorf("check session revocation: %w", err)
	}
	if revoked {
		return model.Identity{}, fmt.Errorf("%w: session revoked", ErrUnauthenticated)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: bad subject %q", ErrUnauthenticated, claims.Subject)
	}

	return model.Identity{
		UserID:    userID,
		Username:  claims.Username,
		SessionID: claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout revokes token so later Authenticate calls reject it, then prunes
// revocations whose tokens have expired. Tokens that are already invalid
// need no revocation and are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.parse(token, false)
	if err != nil {
		return nil
	}

	now := s.clock.Now()
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(now) {
		return nil
	}

	if err := s.sessions.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	if _, err := s.sessions.PruneExpired(ctx, now); err != nil {
		return fmt.Errorf("prune revoked sessions: %w", err)
	}

	return nil
}

// parse verifies the signature of token and decodes its claims. With
// checkTime unset the expiry is not enforced.
func (s *AuthService) parse(token string, checkTime bool) (*sessionClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	}
	if checkTime {
		opts = append(opts, jwt.WithExpirationRequired())
	} else {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if claims.ID == "" {
		return nil, errors.New("session token has no id")
	}

	return claims, nil
}

// dummy returns a hash compared against when the username is unknown.
func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("jobtracker-dummy-password"), s.cost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
