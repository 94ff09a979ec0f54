package services

import (
	"errors"
	"fmt"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"
	"github.com/OCHOLLA20/75hard-fitness-tracker/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type ProfileInput struct {
	Username       string `json:"username"`
	Email          string `json:"email" binding:"omitempty,email"`
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture"` // base64 data URI
}

func (s *UserService) Get(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update changes the fields present in the input. A profile picture arrives
// as a base64 data URI and is stored on S3.
func (s *UserService) Update(userID uint, in ProfileInput) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		var count int64
		if err := s.db.Model(&models.User{}).
			Where("email = ? AND id <> ?", in.Email, userID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
		user.Email = in.Email
	}
	if in.Username != "" && in.Username != user.Username {
		var count int64
		if err := s.db.Model(&models.User{}).
			Where("username = ? AND id <> ?", in.Username, userID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUsernameTaken
		}
		user.Username = in.Username
	}
	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(in.ProfilePicture, "profile-pictures/"+user.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %v", err)
		}
		user.ProfilePicture = url
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (s *UserService) ChangePassword(userID uint, in ChangePasswordInput) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(in.CurrentPassword, user.Password) {
		return ErrWrongPassword
	}

	hashed, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.db.Save(user).Error
}

// Deactivate soft-disables the account; records stay for a possible return.
func (s *UserService) Deactivate(userID uint) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	user.IsActive = false
	return s.db.Save(user).Error
}
