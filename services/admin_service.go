package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"lodge-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserInput struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin manager"`
}

type UserUpdate struct {
	Username string `json:"username" binding:"omitempty,min=3"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin manager"`
}

// AdminService manages back-office accounts.
type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Authenticate checks a username/password pair. Legacy plaintext passwords are upgraded to bcrypt.
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (models.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.AdminUser{}, ErrInvalidCredentials
	}

	var user models.AdminUser
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AdminUser{}, ErrInvalidCredentials
		}
		return models.AdminUser{}, fmt.Errorf("load user: %w", err)
	}

	if isBcryptHash(user.Password) {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return models.AdminUser{}, ErrInvalidCredentials
		}
		return user, nil
	}

	if user.Password == "" || user.Password != password {
		return models.AdminUser{}, ErrInvalidCredentials
	}
	if hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
		if err := s.DB.WithContext(ctx).Model(&user).Update("password", string(hash)).Error; err != nil {
			log.Printf("auth: failed to upgrade password hash for %s: %v", username, err)
		}
	}
	return user, nil
}

func (s *AdminService) List(ctx context.Context) ([]models.AdminUser, error) {
	users := []models.AdminUser{}
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *AdminService) Create(ctx context.Context, in UserInput) (models.AdminUser, error) {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = models.RoleAdmin
	}
	if role != models.RoleAdmin && role != models.RoleManager {
		return models.AdminUser{}, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("hash password: %w", err)
	}
	user := models.AdminUser{Username: strings.TrimSpace(in.Username), Password: string(hash), Role: role}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.AdminUser{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return models.AdminUser{}, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return models.AdminUser{}, ErrDuplicateUsername
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return models.AdminUser{}, ErrDuplicateUsername
		}
		return models.AdminUser{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *AdminService) Update(ctx context.Context, id uint, in UserUpdate) (models.AdminUser, error) {
	var user models.AdminUser
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}

		updates := map[string]interface{}{}
		if name := strings.TrimSpace(in.Username); name != "" && name != user.Username {
			var count int64
			if err := tx.Model(&models.AdminUser{}).Where("username = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
				return fmt.Errorf("check username: %w", err)
			}
			if count > 0 {
				return ErrDuplicateUsername
			}
			updates["username"] = name
		}
		if in.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			updates["password"] = string(hash)
		}
		if role := strings.ToLower(strings.TrimSpace(in.Role)); role != "" && role != user.Role {
			if role != models.RoleAdmin && role != models.RoleManager {
				return ErrInvalidRole
			}
			if user.Role == models.RoleManager {
				if err := ensureAnotherManager(tx, user.ID); err != nil {
					return err
				}
			}
			updates["role"] = role
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateUsername
			}
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.AdminUser{}, err
	}
	return user, nil
}

// Delete removes a user. Nobody can delete themselves, and the last manager stays.
func (s *AdminService) Delete(ctx context.Context, id, actorID uint) error {
	if id == actorID {
		return ErrCannotDeleteSelf
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.AdminUser
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}
		if user.Role == models.RoleManager {
			if err := ensureAnotherManager(tx, user.ID); err != nil {
				return err
			}
		}
		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

func ensureAnotherManager(tx *gorm.DB, excludeID uint) error {
	var others int64
	if err := tx.Model(&models.AdminUser{}).Where("role = ? AND id <> ?", models.RoleManager, excludeID).Count(&others).Error; err != nil {
		return fmt.Errorf("count managers: %w", err)
	}
	if others == 0 {
		return ErrLastManager
	}
	return nil
}
