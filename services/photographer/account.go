package photographer

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	photographerRepo "shotfolio/database/repository/photographer"
	"shotfolio/models"
	"shotfolio/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthResponse contains the photographer's ID, token, and profile basics.
type AuthResponse struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	Name         string `json:"name,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	Email        string `json:"email,omitempty"`
}

// RegisterInput is the payload for creating a photographer account.
type RegisterInput struct {
	Name         string `json:"name" binding:"required"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
}

// SettingsUpdate carries optional account settings changes; nil fields are
// left untouched.
type SettingsUpdate struct {
	BusinessName         *string `json:"business_name"`
	AutoRemindersEnabled *bool   `json:"auto_reminders_enabled"`
	StripeAccountID      *string `json:"stripe_account_id"`
}

// PhotographerService defines account operations for the tenant accounts.
type PhotographerService interface {
	Register(input RegisterInput) (*AuthResponse, error)
	SignIn(email, password string) (*AuthResponse, error)
	UpdateSettings(id string, upd SettingsUpdate) (*models.Photographer, error)
}

// DefaultPhotographerService is the production implementation backed by the
// photographer repository.
type DefaultPhotographerService struct {
	Repo photographerRepo.PhotographerRepository
}

const tokenDuration = 24 * time.Hour

// verifyPasswordComplexity checks minimum length plus at least one letter
// and one digit.
func verifyPasswordComplexity(pw string) error {
	if len(pw) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !regexp.MustCompile(`[A-Za-z]`).MatchString(pw) {
		return fmt.Errorf("password must include at least one letter")
	}
	if !regexp.MustCompile(`[0-9]`).MatchString(pw) {
		return fmt.Errorf("password must include at least one number")
	}
	return nil
}

// Register creates a new photographer account, generates a token, and stores
// its hash for middleware lookups.
func (s *DefaultPhotographerService) Register(input RegisterInput) (*AuthResponse, error) {
	if input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if err := verifyPasswordComplexity(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(input.Email)
	if err != nil && !errors.Is(err, photographerRepo.ErrNotFound) {
		utils.GetLogger().Error("Failed to check for existing photographer", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now()
	p := models.Photographer{
		ID:           uuid.New().String(),
		Name:         input.Name,
		BusinessName: input.BusinessName,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		// New accounts get the post-event nudge by default; it can be
		// switched off in settings.
		AutoRemindersEnabled: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.Repo.Create(&p); err != nil {
		utils.GetLogger().Error("Failed to create photographer", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(p.ID, p.Email, tokenDuration)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	p.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(&p); err != nil {
		utils.GetLogger().Error("Failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &AuthResponse{
		ID:           p.ID,
		Token:        token,
		Name:         p.Name,
		BusinessName: p.BusinessName,
		Email:        p.Email,
	}, nil
}

// SignIn authenticates a photographer and rotates the stored token hash.
func (s *DefaultPhotographerService) SignIn(email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	p, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, photographerRepo.ErrNotFound) {
			return nil, fmt.Errorf("invalid email or password")
		}
		utils.GetLogger().Error("Failed to look up photographer", zap.Error(err))
		return nil, fmt.Errorf("sign in failed, please try again")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(p.ID, p.Email, tokenDuration)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("sign in failed, please try again")
	}

	p.TokenHash = utils.HashToken(token)
	p.UpdatedAt = time.Now()
	if err := s.Repo.Update(p); err != nil {
		utils.GetLogger().Error("Failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("sign in failed, please try again")
	}

	return &AuthResponse{
		ID:           p.ID,
		Token:        token,
		Name:         p.Name,
		BusinessName: p.BusinessName,
		Email:        p.Email,
	}, nil
}

// UpdateSettings applies a partial settings change and returns the updated
// account.
func (s *DefaultPhotographerService) UpdateSettings(id string, upd SettingsUpdate) (*models.Photographer, error) {
	fields := map[string]interface{}{"updated_at": time.Now()}
	if upd.BusinessName != nil {
		fields["business_name"] = *upd.BusinessName
	}
	if upd.AutoRemindersEnabled != nil {
		fields["auto_reminders_enabled"] = *upd.AutoRemindersEnabled
	}
	if upd.StripeAccountID != nil {
		fields["stripe_account_id"] = *upd.StripeAccountID
	}

	if err := s.Repo.UpdateSetDocument(id, fields); err != nil {
		if errors.Is(err, photographerRepo.ErrNotFound) {
			return nil, err
		}
		utils.GetLogger().Error("Failed to update photographer settings",
			zap.String("photographerID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update settings")
	}
	return s.Repo.GetByID(id)
}
