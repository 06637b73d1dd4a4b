package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fintrack-server/src/apperr"
	"fintrack-server/src/auth"
	"fintrack-server/src/db"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

// invalidCredentials is returned for both unknown emails and wrong passwords
// so login responses do not reveal which accounts exist.
const invalidCredentials = "Invalid credentials"

type Identity struct {
	users  UserStore
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	cache  *db.ProfileCache
}

// NewIdentity builds the identity service. cache may be nil.
func NewIdentity(users UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenManager, cache *db.ProfileCache) *Identity {
	return &Identity{users: users, hasher: hasher, tokens: tokens, cache: cache}
}

func (s *Identity) Register(ctx context.Context, req models.RegisterRequest) (*models.UserResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = util.NormalizeEmail(req.Email)
	req.Profession = strings.TrimSpace(req.Profession)

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Gender == "" {
		return nil, apperr.Validation("Please provide all required fields")
	}
	if !util.ValidateName(req.Name) {
		return nil, apperr.Validation("Name must be between 1 and 100 characters")
	}
	if !util.ValidateEmail(req.Email) {
		return nil, apperr.Validation("Please provide a valid email")
	}
	gender := models.Gender(req.Gender)
	if !gender.Valid() {
		return nil, apperr.Validation("Gender must be one of Male, Female, Other")
	}
	if req.Profession == "" {
		req.Profession = models.DefaultProfession
	}

	_, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperr.Conflict("User already exists with this email")
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, apperr.Internal(fmt.Errorf("lookup email: %w", err))
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Profession:   req.Profession,
		Gender:       gender,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, db.ErrDuplicateEmail) {
			return nil, apperr.Conflict("User already exists with this email")
		}
		return nil, apperr.Internal(err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	slog.Info("New user registered", "user_id", user.ID, "email", user.Email)
	return models.NewUserResponse(user, token), nil
}

func (s *Identity) Login(ctx context.Context, req models.LoginRequest) (*models.UserResponse, error) {
	email := util.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperr.Validation("Please provide email and password")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, db.ErrNotFound) {
		slog.Warn("Login failed, user not found", "email", email)
		return nil, apperr.Auth(invalidCredentials)
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("lookup email: %w", err))
	}

	if !s.hasher.Matches(user.PasswordHash, req.Password) {
		slog.Warn("Invalid password", "email", email)
		return nil, apperr.Auth(invalidCredentials)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	slog.Info("User logged in", "user_id", user.ID)
	return models.NewUserResponse(user, token), nil
}

func (s *Identity) Profile(ctx context.Context, userID string) (*models.UserResponse, error) {
	if s.cache != nil {
		if user, ok := s.cache.Get(userID); ok {
			return models.NewUserResponse(user, ""), nil
		}
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("get user %s: %w", userID, err))
	}

	if s.cache != nil {
		s.cache.Set(user)
	}
	return models.NewUserResponse(user, ""), nil
}

// VerifyToken resolves a bearer token to the user id it was issued for.
func (s *Identity) VerifyToken(token string) (string, error) {
	if token == "" {
		return "", apperr.Auth("Not authorized, no token")
	}
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return "", apperr.Auth("Not authorized, token failed")
	}
	return userID, nil
}
