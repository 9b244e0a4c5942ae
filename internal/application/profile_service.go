package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/entity"
	repo "github.com/Lucas-Nascimentto/projeto-fan/internal/domain/repository"
	"github.com/Lucas-Nascimentto/projeto-fan/pkg/helpers"
)

// ProfileService owns user records and the credential surface around
// them: registration, login, token refresh, and field-restricted
// profile edits. The role column is never writable through self-edit.
type ProfileService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewProfileService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Users: users, JWT: jwt, Redis: rdb, Logger: logger}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// Profile is the public projection of a user; the password hash never
// leaves the service.
type Profile struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

func publicProfile(u *entity.User) Profile {
	return Profile{
		ID:        u.ID,
		Role:      string(u.Role),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		City:      u.City,
		State:     u.State,
		CreatedAt: u.CreatedAt,
	}
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

type RegisterInput struct {
	Role     string
	Name     string
	Email    string
	Phone    string
	Document string
	Address  string
	City     string
	State    string
	Password string
}

// Register creates a user with a bcrypt-hashed password. Emails are
// unique across all users; the role must come from the closed set and
// defaults to "other".
func (s *ProfileService) Register(ctx context.Context, in RegisterInput) (*Profile, error) {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"email", in.Email},
		{"password", in.Password},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}

	role := entity.Role(in.Role)
	if in.Role == "" {
		role = entity.RoleOther
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}

	if existing, err := s.Users.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email already in use", ErrValidation)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Role:      role,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Document:  in.Document,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		Password:  hash,
		CreatedAt: time.Now(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	p := publicProfile(u)
	return &p, nil
}

// Authenticate validates email/password and returns the user without
// issuing tokens.
func (s *ProfileService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *ProfileService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"role":       string(u.Role),
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *ProfileService) Login(ctx context.Context, email, password string) (*Profile, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	p := publicProfile(u)
	return &p, pair, nil
}

func (s *ProfileService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	// Current session id must match the token's sid
	if s.Redis != nil {
		key := sessionKey(u.ID)
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	// Rotate session id and tokens
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"updated_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		_, _ = pipe.Exec(ctx)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, u.ID, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, classifyLookup(err, "user")
	}
	p := publicProfile(u)
	return &p, nil
}

// UpdateProfileInput carries partial profile fields; empty fields leave
// the stored value untouched. Role is accepted and discarded: the role
// column is not self-editable, whatever the caller sends.
type UpdateProfileInput struct {
	Role     string
	Name     string
	Email    string
	Phone    string
	Document string
	Address  string
	City     string
	State    string
	Password string
}

func (s *ProfileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (*Profile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, classifyLookup(err, "user")
	}

	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Document != "" {
		u.Document = in.Document
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	if in.City != "" {
		u.City = in.City
	}
	if in.State != "" {
		u.State = in.State
	}
	if in.Password != "" {
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	if err := s.Users.Update(ctx, u); err != nil {
		return nil, classifyLookup(err, "user")
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"name":       u.Name,
			"email":      u.Email,
			"updated_at": nowRFC3339(),
		})
		if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, pErr := pipe.Exec(ctx); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	p := publicProfile(u)
	return &p, nil
}

// Logout drops the redis session so a stolen access token dies with it.
func (s *ProfileService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, sessionKey(userID)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
	}
}
