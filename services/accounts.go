package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"washpro-backend/config"
	"washpro-backend/models"
	"washpro-backend/notify"
	"washpro-backend/store"
	"washpro-backend/utils"
)

type WasherInput struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email" binding:"required,email"`
	Phone    string     `json:"phone"`
	HireDate *time.Time `json:"hireDate"`
}

type WasherUpdate struct {
	Name     *string    `json:"name"`
	Email    *string    `json:"email" binding:"omitempty,email"`
	Phone    *string    `json:"phone"`
	Status   *string    `json:"status" binding:"omitempty,oneof=active inactive suspended"`
	HireDate *time.Time `json:"hireDate"`
}

type AdminInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=super_admin admin manager"`
}

type AdminUpdate struct {
	Name     *string `json:"name"`
	Role     *string `json:"role" binding:"omitempty,oneof=super_admin admin manager"`
	IsActive *bool   `json:"isActive"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// NewAccount carries the generated password back to the admin who created
// the account, alongside whether the credentials e-mail went out.
type NewAccount[T any] struct {
	Account           T      `json:"account"`
	TemporaryPassword string `json:"temporaryPassword"`
	EmailSent         bool   `json:"emailSent"`
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      interface{} `json:"user"`
}

// AdminRoles may use the admin API.
var AdminRoles = []string{models.RoleSuperAdmin, models.RoleAdmin, models.RoleManager}

type AccountService struct {
	uow      *store.UnitOfWork
	mailer   notify.Mailer
	settings *SettingsService
	secret   string
	ttl      time.Duration
}

func NewAccountService(uow *store.UnitOfWork, mailer notify.Mailer, settings *SettingsService, cfg config.Config) *AccountService {
	return &AccountService{
		uow:      uow,
		mailer:   mailer,
		settings: settings,
		secret:   cfg.JWTSecret,
		ttl:      cfg.TokenExpiry,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AccountService) sendCredentials(ctx context.Context, name, role, email, password string) bool {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		log.Printf("[accounts] loading business profile for %s failed: %v", email, err)
		return false
	}
	business := settings.Name
	html, err := notify.RenderCredentials(notify.Credentials{
		Business: business,
		Name:     name,
		Role:     role,
		Email:    email,
		Password: password,
	})
	if err != nil {
		log.Printf("[accounts] rendering credentials for %s failed: %v", email, err)
		return false
	}
	subject := fmt.Sprintf("Your %s account", business)
	if err := s.mailer.SendMail(ctx, email, subject, html); err != nil {
		log.Printf("[accounts] credentials e-mail to %s failed: %v", email, err)
		return false
	}
	return true
}

func (s *AccountService) CreateWasher(ctx context.Context, in WasherInput) (*NewAccount[models.Washer], error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name is required")
	}
	if in.Phone != "" && !utils.ValidatePhone(in.Phone) {
		return nil, invalid("invalid phone number format")
	}

	password := utils.GenerateTemporaryPassword()
	washer := models.Washer{
		Name:     strings.TrimSpace(in.Name),
		Email:    normalizeEmail(in.Email),
		Phone:    utils.CleanPhone(in.Phone),
		Password: password,
		Status:   models.WasherStatusActive,
		HireDate: in.HireDate,
	}
	if err := s.uow.DB(ctx).Create(&washer).Error; err != nil {
		return nil, err
	}

	sent := s.sendCredentials(ctx, washer.Name, models.RoleWasher, washer.Email, password)
	return &NewAccount[models.Washer]{Account: washer, TemporaryPassword: password, EmailSent: sent}, nil
}

func (s *AccountService) ListWashers(ctx context.Context, status string) ([]models.Washer, error) {
	query := s.uow.DB(ctx).Order("name")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var washers []models.Washer
	if err := query.Find(&washers).Error; err != nil {
		return nil, err
	}
	return washers, nil
}

func (s *AccountService) GetWasher(ctx context.Context, id uuid.UUID) (*models.Washer, error) {
	var washer models.Washer
	if err := findByID(s.uow.DB(ctx), &washer, "washer", id); err != nil {
		return nil, err
	}
	return &washer, nil
}

func (s *AccountService) UpdateWasher(ctx context.Context, id uuid.UUID, in WasherUpdate) (*models.Washer, error) {
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var washer models.Washer
		if err := findByID(tx, &washer, "washer", id); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return invalid("name is required")
			}
			updates["name"] = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			updates["email"] = normalizeEmail(*in.Email)
		}
		if in.Phone != nil {
			if *in.Phone != "" && !utils.ValidatePhone(*in.Phone) {
				return invalid("invalid phone number format")
			}
			updates["phone"] = utils.CleanPhone(*in.Phone)
		}
		if in.Status != nil {
			switch *in.Status {
			case models.WasherStatusActive, models.WasherStatusInactive, models.WasherStatusSuspended:
				updates["status"] = *in.Status
			default:
				return invalid("status must be active, inactive or suspended")
			}
		}
		if in.HireDate != nil {
			updates["hire_date"] = *in.HireDate
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.Washer{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetWasher(ctx, id)
}

func (s *AccountService) DeleteWasher(ctx context.Context, id uuid.UUID) error {
	result := s.uow.DB(ctx).Where("id = ?", id).Delete(&models.Washer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("washer")
	}
	return nil
}

func (s *AccountService) CreateAdmin(ctx context.Context, in AdminInput) (*NewAccount[models.Admin], error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name is required")
	}
	if !isAdminRole(in.Role) {
		return nil, invalid("role must be super_admin, admin or manager")
	}

	password := utils.GenerateTemporaryPassword()
	admin := models.Admin{
		Name:     strings.TrimSpace(in.Name),
		Email:    normalizeEmail(in.Email),
		Password: password,
		Role:     in.Role,
		IsActive: true,
	}
	if err := s.uow.DB(ctx).Create(&admin).Error; err != nil {
		return nil, err
	}

	sent := s.sendCredentials(ctx, admin.Name, admin.Role, admin.Email, password)
	return &NewAccount[models.Admin]{Account: admin, TemporaryPassword: password, EmailSent: sent}, nil
}

// EnsureSuperAdmin creates the first super_admin from configured credentials.
// It does nothing once any admin exists, so rotating ADMIN_PASSWORD later has
// no effect. The returned bool reports whether an account was created.
func (s *AccountService) EnsureSuperAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if !utils.ValidateEmail(email) {
		return false, invalid("invalid bootstrap admin e-mail %q", email)
	}
	if len(password) < 8 {
		return false, invalid("bootstrap admin password must be at least 8 characters")
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}

	created := false
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Admin{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		admin := models.Admin{
			Name:     strings.TrimSpace(name),
			Email:    email,
			Password: password,
			Role:     models.RoleSuperAdmin,
			IsActive: true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if created {
		log.Printf("[accounts] bootstrap super_admin %s created", email)
	}
	return created, nil
}

func isAdminRole(role string) bool {
	for _, r := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (s *AccountService) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := s.uow.DB(ctx).Order("name").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (s *AccountService) UpdateAdmin(ctx context.Context, id uuid.UUID, in AdminUpdate) (*models.Admin, error) {
	var admin models.Admin
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := findByID(tx, &admin, "admin", id); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return invalid("name is required")
			}
			updates["name"] = strings.TrimSpace(*in.Name)
		}
		if in.Role != nil {
			if !isAdminRole(*in.Role) {
				return invalid("role must be super_admin, admin or manager")
			}
			updates["role"] = *in.Role
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.Admin{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return findByID(tx, &admin, "admin", id)
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *AccountService) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	result := s.uow.DB(ctx).Where("id = ?", id).Delete(&models.Admin{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("admin")
	}
	return nil
}

// ActiveAdminEmails lists where operational alerts go.
func (s *AccountService) ActiveAdminEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := s.uow.DB(ctx).Model(&models.Admin{}).
		Where("is_active = ? AND role IN ?", true, []string{models.RoleSuperAdmin, models.RoleAdmin}).
		Pluck("email", &emails).Error
	return emails, err
}

func (s *AccountService) LoginAdmin(ctx context.Context, in LoginInput) (*LoginResult, error) {
	var admin models.Admin
	err := s.uow.DB(ctx).Where("email = ?", normalizeEmail(in.Email)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(in.Password, admin.Password) {
		return nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, ErrAccountDisabled
	}

	at := now()
	if err := s.uow.DB(ctx).Model(&models.Admin{}).Where("id = ?", admin.ID).Update("last_login", at).Error; err != nil {
		log.Printf("[accounts] failed to record login for admin %s: %v", admin.ID, err)
	}
	admin.LastLogin = &at
	return s.issue(admin.ID, admin.Role, admin)
}

func (s *AccountService) LoginWasher(ctx context.Context, in LoginInput) (*LoginResult, error) {
	var washer models.Washer
	err := s.uow.DB(ctx).Where("email = ?", normalizeEmail(in.Email)).First(&washer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(in.Password, washer.Password) {
		return nil, ErrInvalidCredentials
	}
	if washer.Status != models.WasherStatusActive {
		return nil, ErrAccountDisabled
	}

	at := now()
	if err := s.uow.DB(ctx).Model(&models.Washer{}).Where("id = ?", washer.ID).Update("last_login", at).Error; err != nil {
		log.Printf("[accounts] failed to record login for washer %s: %v", washer.ID, err)
	}
	washer.LastLogin = &at
	return s.issue(washer.ID, models.RoleWasher, washer)
}

func (s *AccountService) issue(id uuid.UUID, role string, user interface{}) (*LoginResult, error) {
	token, err := utils.GenerateToken(s.secret, s.ttl, id.String(), role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: now().Add(s.ttl), User: user}, nil
}
