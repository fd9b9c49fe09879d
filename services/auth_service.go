package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"
	"github.com/FawazNazmo/MechLink/utils"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{userRepo: repo, jwtSecret: secret, jwtTTL: ttl}
}

type RegisterInput struct {
	Username    string
	Password    string
	Role        string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string

	CarDetails string // user only

	GarageName    string // mechanic only
	GarageAddress string
	GarageLat     *float64
	GarageLng     *float64
}

// Register creates a user or mechanic account and issues a token.
func (s *AuthService) Register(in RegisterInput) (string, *entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Username == "" || in.Password == "" {
		return "", nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if in.Role != "user" && in.Role != "mechanic" {
		return "", nil, fmt.Errorf("%w: invalid role", ErrValidation)
	}

	count, err := s.userRepo.CountByUsernameOrEmail(in.Username, in.Email)
	if err != nil {
		return "", nil, err
	}
	if count > 0 {
		return "", nil, fmt.Errorf("%w: username or email already in use", ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &entity.User{
		Username:    in.Username,
		Email:       in.Email,
		Password:    string(hashed),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Role:        in.Role,
	}
	if in.Role == "user" {
		user.CarDetails = strings.TrimSpace(in.CarDetails)
	} else {
		user.GarageName = strings.TrimSpace(in.GarageName)
		user.GarageAddress = strings.TrimSpace(in.GarageAddress)
		user.GarageLat = in.GarageLat
		user.GarageLng = in.GarageLng
	}

	if err := s.userRepo.Create(user); err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login checks credentials (email or username) and issues a JWT.
func (s *AuthService) Login(email, username, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if password == "" || (email == "" && username == "") {
		return "", nil, fmt.Errorf("%w: email/username and password required", ErrValidation)
	}

	user, err := s.userRepo.FindByLogin(email, username)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}
