package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/pkg/queryparams"
	"formu.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceError özel servis hataları.
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound           UserServiceError = "kullanıcı bulunamadı"
	ErrUserInvalidCredentials UserServiceError = "e-posta veya şifre hatalı"
	ErrUserInactive           UserServiceError = "hesap pasif durumda"
	ErrUserEmailTaken         UserServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrUserInvalidInput       UserServiceError = "geçersiz kullanıcı bilgisi"
	ErrUserHashingFailed      UserServiceError = "şifre oluşturulamadı"
)

// IUserService kullanıcı işlemleri için arayüz.
type IUserService interface {
	Register(ctx context.Context, name, email, password string, role models.UserRole) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUsersPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	SetActive(ctx context.Context, userID uint, active bool) error
	GetUserCount(ctx context.Context) (int64, error)
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	repo repositories.IUserRepository
}

// NewUserService yeni bir UserService örneği oluşturur.
func NewUserService() IUserService {
	return &UserService{repo: repositories.NewUserRepository()}
}

// Register yeni kullanıcı kaydı oluşturur. Varsayılan rol editor'dür.
func (s *UserService) Register(ctx context.Context, name, email, password string, role models.UserRole) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: isim, e-posta ve en az 8 karakterli şifre zorunlu", ErrUserInvalidInput)
	}
	if role == "" {
		role = models.RoleEditor
	}

	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrUserEmailTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrUserHashingFailed
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		configslog.Log.Error("Kullanıcı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Kullanıcı kaydedildi: %s (ID %d, rol: %s)", email, user.ID, user.Role)
	return user, nil
}

// Authenticate e-posta/şifre ile giriş doğrulaması yapar.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUserInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

// GetUserByID kullanıcıyı ID ile getirir.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUsersPaginated kullanıcıları sayfalayarak getirir (admin).
func (s *UserService) GetUsersPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	users, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: users,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdatePassword mevcut şifreyi doğrulayıp yenisini yazar.
func (s *UserService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: yeni şifre en az 8 karakter olmalı", ErrUserInvalidInput)
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrUserInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrUserHashingFailed
	}
	user.PasswordHash = string(hashed)
	return s.repo.Update(models.ContextWithUserID(ctx, userID), user)
}

// SetActive kullanıcı hesabını aktifleştirir/pasifleştirir (admin).
func (s *UserService) SetActive(ctx context.Context, userID uint, active bool) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	user.IsActive = active
	return s.repo.Update(ctx, user)
}

// GetUserCount toplam kullanıcı sayısını döndürür.
func (s *UserService) GetUserCount(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

var _ IUserService = (*UserService)(nil)
