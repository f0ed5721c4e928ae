package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/thesrcielos/RobotArena/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 30
	minPasswordLength = 6
)

var bcryptCost = 14

type UserService struct {
	repo          UserRepository
	jwtSecret     string
	initialRating int
}

func NewUserService(repo UserRepository, jwtSecret string, initialRating int) *UserService {
	return &UserService{
		repo:          repo,
		jwtSecret:     jwtSecret,
		initialRating: initialRating,
	}
}

func (u *UserService) Signup(ctx context.Context, creds Credentials) (string, error) {
	if err := creds.Validate(); err != nil {
		return "", err
	}

	_, err := u.repo.GetUserByUsername(ctx, creds.Username)
	if err == nil {
		return "", apperrors.NewAppError(400, "user already exists", nil)
	}
	if !apperrors.IsNotFound(err) {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcryptCost)
	if err != nil {
		return "", apperrors.NewAppError(500, "error hashing password", err)
	}
	newUser := &User{
		Username:      creds.Username,
		Password:      string(hashed),
		OverallRating: u.initialRating,
		HighestRating: u.initialRating,
	}
	if err := u.repo.CreateUser(ctx, newUser); err != nil {
		return "", err
	}
	log.WithFields(log.Fields{"user_id": newUser.ID, "username": newUser.Username}).Info("User signed up")

	token, errJWT := GenerateJWT(newUser.ID, u.jwtSecret)
	if errJWT != nil {
		return "", apperrors.NewAppError(500, "error creating jwt token", errJWT)
	}
	return token, nil
}

func (u *UserService) Login(ctx context.Context, creds Credentials) (string, error) {
	userRetrieved, err := u.repo.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", apperrors.NewAppError(401, "invalid credentials", nil)
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userRetrieved.Password), []byte(creds.Password)); err != nil {
		return "", apperrors.NewAppError(401, "invalid credentials", nil)
	}

	token, errJWT := GenerateJWT(userRetrieved.ID, u.jwtSecret)
	if errJWT != nil {
		return "", apperrors.NewAppError(500, "error creating jwt token", errJWT)
	}
	return token, nil
}

func (c Credentials) Validate() error {
	if c.Username == "" {
		return apperrors.NewAppError(400, "username is required", errors.New("empty username"))
	}
	if len(c.Username) > maxUsernameLength {
		return apperrors.NewAppError(400, "username must not exceed 30 characters", nil)
	}
	if len(c.Password) < minPasswordLength {
		return apperrors.NewAppError(400, "password must have at least 6 characters", nil)
	}
	return nil
}
