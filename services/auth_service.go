package services

import (
	"errors"
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"
	"github.com/OCHOLLA20/75hard-fitness-tracker/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const resetTokenTTL = 15 * time.Minute

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates the account and issues a token right away. The welcome
// mail is best effort and never fails the registration.
func (s *AuthService) Register(in RegisterInput) (*AuthResult, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	if err := s.db.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    in.Email,
		Username: in.Username,
		Password: hashed,
		FullName: in.FullName,
		IsActive: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	go func(email, username string) {
		if err := utils.SendWelcomeEmail(email, username); err != nil {
			utils.Logger.Warn("welcome_email_failed", zap.String("email", email), zap.Error(err))
		}
	}(user.Email, user.Username)

	return &AuthResult{Token: token, User: &user}, nil
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // username or email
	Password   string `json:"password" binding:"required"`
}

// Login accepts either username or email as identifier.
func (s *AuthService) Login(in LoginInput) (*AuthResult, error) {
	var user models.User
	err := s.db.Where("(email = ? OR username = ?) AND is_active = ?",
		in.Identifier, in.Identifier, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPasswordHash(in.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: &user}, nil
}

// ForgotPassword stores a short-lived reset code and mails it. Unknown
// emails return ErrUserNotFound; the controller responds identically either
// way so the endpoint does not leak account existence.
func (s *AuthService) ForgotPassword(email string) error {
	var user models.User
	err := s.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	code := utils.GenerateRandomToken(8)
	exp := time.Now().Add(resetTokenTTL)
	user.ResetToken = code
	user.ResetTokenExp = &exp
	if err := s.db.Save(&user).Error; err != nil {
		return err
	}

	return utils.SendResetEmail(user.Email, code)
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (s *AuthService) ResetPassword(in ResetPasswordInput) error {
	var user models.User
	err := s.db.Where("email = ? AND is_active = ?", in.Email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrResetTokenInvalid
	}
	if err != nil {
		return err
	}

	if user.ResetToken == "" || user.ResetToken != in.Token ||
		user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return ErrResetTokenInvalid
	}

	hashed, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = nil
	return s.db.Save(&user).Error
}
