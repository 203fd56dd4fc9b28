package auth

import (
	"errors"
	"time"

	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/apperror"
	"github.com/inkpress/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// The wrong-password and wrong-role cases share one message so a caller
// cannot tell which check failed. Banned accounts get a distinct message.
var (
	ErrInvalidCredentials = apperror.Unauthorized("Invalid login credentials")
	ErrAccountBanned      = apperror.Unauthorized("Your account has been banned, Contact the admin")
)

type Service struct {
	db       *gorm.DB
	tokenTTL time.Duration
}

func NewService(db *gorm.DB, tokenTTL time.Duration) *Service {
	return &Service{db: db, tokenTTL: tokenTTL}
}

// Register creates an author account with a bcrypt-hashed password.
// Duplicate email or phone is rejected with the duplicate-field error.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", dto.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Duplicate("email")
	}
	if err := s.db.Model(&models.UserModel{}).Where("phone = ?", dto.Phone).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Duplicate("phone")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Name:     dto.Name,
		Email:    dto.Email,
		Phone:    dto.Phone,
		Password: string(hash),
		Role:     models.RoleAuthor,
		Status:   models.UserActive,
		Joined:   time.Now(),
	}
	return &user, s.db.Create(&user).Error
}

// Login authenticates a user of the expected role and issues a token.
// Banned status is only enforced for author logins.
func (s *Service) Login(email, password string, role models.Role) (string, *models.UserModel, error) {
	var user models.UserModel
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.Role != role {
		return "", nil, ErrInvalidCredentials
	}
	if role == models.RoleAuthor && user.Status == models.UserBanned {
		return "", nil, ErrAccountBanned
	}

	token, err := jwt.Sign(user.ID, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// UpdateProfile patches name/email/phone/desc and optionally the avatar.
func (s *Service) UpdateProfile(userID string, dto *UpdateProfileDTO, image string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No user found with ID " + userID)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != "" {
		updates["name"] = dto.Name
	}
	if dto.Email != "" {
		updates["email"] = dto.Email
	}
	if dto.Phone != "" {
		updates["phone"] = dto.Phone
	}
	if dto.About != "" {
		updates["desc"] = dto.About
	}
	if image != "" {
		updates["image"] = image
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// UpdatePassword verifies the current password before storing the new hash.
func (s *Service) UpdatePassword(userID string, dto *UpdatePasswordDTO) error {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.CurrentPassword)); err != nil {
		return apperror.BadRequest("Password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(&user).Update("password", string(hash)).Error
}
