package userapp

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	userEntity "timelineforum/internal/core/user"
	userPort "timelineforum/internal/ports/user"
)

const tokenTTL = 24 * time.Hour

type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
	Logger         *zap.Logger
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
		Logger:         logger,
	}
}

// LoginUser verifies credentials and issues a signed JWT.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByUsername(username)
	if err != nil {
		s.Logger.Info("login failed, unknown user", zap.String("username", username))
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.Logger.Info("login failed, bad password", zap.String("username", username))
		return nil, errors.New("invalid credentials")
	}

	expiresAt := time.Now().Add(tokenTTL)
	token, err := s.generateJWT(u, expiresAt)
	if err != nil {
		s.Logger.Error("JWT generation failed", zap.Error(err))
		return nil, errors.New("could not generate token")
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) generateJWT(u *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   u.ID.String(),
		Issuer:    "timelineforum",
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// RegisterUser creates a new account with a bcrypt-hashed password.
func (s *UserService) RegisterUser(ctx context.Context, username, email, password string) (*userPort.UserDTO, error) {
	existing, err := s.UserRepository.FindByUsernameOrEmail(username, email)
	if err == nil && existing != nil {
		return nil, errors.New("username or email already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &userEntity.User{
		ID:           uuid.Must(uuid.NewV4()),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	created, err := s.UserRepository.Create(u)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("user registered", zap.String("username", username))
	return &userPort.UserDTO{
		ID:       created.ID.String(),
		Username: created.Username,
		Email:    created.Email,
	}, nil
}
