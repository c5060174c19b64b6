package service

import (
	"errors"
	"strings"
	"time"

	"github.com/damirpristav/dogs-app-backend/internal/config"
	"github.com/damirpristav/dogs-app-backend/internal/mailer"
	"github.com/damirpristav/dogs-app-backend/internal/models"
	"github.com/damirpristav/dogs-app-backend/internal/util"

	"gorm.io/gorm"
)

// AuthService issues, verifies and invalidates user credentials: activation
// tokens, password reset tokens and session tokens. Raw tokens are returned
// to the caller for out-of-band delivery; only their hashes are persisted.
type AuthService struct {
	DB     *gorm.DB
	Mailer mailer.Mailer

	JWTSecret   string
	TokenTTL    time.Duration
	BcryptCost  int
	FrontendURL string
}

// ResetTokenTTL is the validity window of password reset tokens.
// Activation tokens carry no expiry.
const ResetTokenTTL = 10 * time.Minute

func NewAuthService(db *gorm.DB, m mailer.Mailer, cfg *config.Config) *AuthService {
	ttl := time.Duration(cfg.JWT.ExpireSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{
		DB:          db,
		Mailer:      m,
		JWTSecret:   cfg.JWT.Secret,
		TokenTTL:    ttl,
		BcryptCost:  cfg.Security.BcryptCost,
		FrontendURL: cfg.Mail.FrontendURL,
	}
}

type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates an inactive user with a hashed password and a hashed
// one-time activation token, then mails the raw token. If the mail cannot
// be delivered the stored token hash is cleared before the error is
// surfaced, so no half-usable state remains.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return nil, Validation("First name, last name, email and password are required.")
	}
	if in.Password != in.ConfirmPassword {
		return nil, Validation("Passwords does not match!")
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, Internal("Failed to check existing users.", err)
	}
	if count > 0 {
		return nil, Validation("Email already in use!")
	}

	hash, err := util.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, Internal("Failed to encrypt password.", err)
	}

	rawToken, err := util.GenerateToken()
	if err != nil {
		return nil, Internal("Failed to generate activation token.", err)
	}
	tokenHash := util.HashToken(rawToken)

	user := models.User{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		PasswordHash:    hash,
		Role:            models.RoleUser,
		Active:          false,
		ActivationToken: &tokenHash,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, Internal("Failed to create user.", err)
	}

	err = s.Mailer.Send(mailer.Message{
		Template: mailer.TemplateActivateAccount,
		Subject:  "Activate your account",
		To:       []string{user.Email},
		Name:     user.FullName(),
		URL:      s.FrontendURL + "/activateAccount/" + rawToken,
	})
	if err != nil {
		// compensate: the token hash must not survive a failed delivery
		_ = s.DB.Model(&user).Update("activation_token", nil).Error
		return nil, Internal("There was an error sending an email. Please contact admin to activate your account!", err)
	}

	return &user, nil
}

// Activate consumes a raw activation token: the matching user becomes
// active and the stored token hash is cleared.
func (s *AuthService) Activate(rawToken string) error {
	tokenHash := util.HashToken(rawToken)

	var user models.User
	err := s.DB.Where("activation_token = ?", tokenHash).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Invalid activation token!")
		}
		return Internal("Failed to look up activation token.", err)
	}

	updates := map[string]interface{}{
		"active":           true,
		"activation_token": nil,
	}
	if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
		return Internal("Failed to activate user.", err)
	}
	return nil
}

// Authenticate checks email/password and issues a session token valid for
// TokenTTL. Inactive accounts cannot log in.
func (s *AuthService) Authenticate(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", Validation("Email and password fields are required.")
	}

	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", Auth("Invalid credentials!")
		}
		return nil, "", Internal("Failed to look up user.", err)
	}

	if !util.CheckPassword(password, user.PasswordHash) {
		return nil, "", Auth("Invalid credentials!")
	}
	if !user.Active {
		return nil, "", Auth("User is not active. Please activate your account and try again.")
	}

	token, err := util.GenerateSessionToken(s.JWTSecret, user.ID, s.TokenTTL)
	if err != nil {
		return nil, "", Internal("Failed to sign session token.", err)
	}
	return &user, token, nil
}

// VerifySession validates a session token and resolves it to a user. A
// token issued before the user's last password change is rejected even if
// unexpired, forcing a re-login.
func (s *AuthService) VerifySession(tokenStr string) (*models.User, error) {
	claims, err := util.ParseSessionToken(s.JWTSecret, tokenStr)
	if err != nil {
		return nil, Auth("Not authorized to access this page!")
	}

	var user models.User
	err = s.DB.First(&user, claims.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User does not exist.")
		}
		return nil, Internal("Failed to look up user.", err)
	}

	if claims.IssuedAt == nil || user.ChangedPasswordAfter(claims.IssuedAt.Time) {
		return nil, Auth("Recently changed password. Please login again!")
	}
	return &user, nil
}

// RequestPasswordReset issues a reset token valid for ResetTokenTTL and
// mails it. Delivery failure triggers the compensating write clearing the
// stored hash and expiry before the error is surfaced.
func (s *AuthService) RequestPasswordReset(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", NotFound("User with this email is not registered. Please register!")
		}
		return "", Internal("Failed to look up user.", err)
	}
	if !user.Active {
		return "", Validation("User is not yet active. Please activate your account!")
	}

	rawToken, err := util.GenerateToken()
	if err != nil {
		return "", Internal("Failed to generate reset token.", err)
	}
	tokenHash := util.HashToken(rawToken)
	expires := time.Now().Add(ResetTokenTTL)

	updates := map[string]interface{}{
		"reset_password_token":   tokenHash,
		"reset_password_expires": expires,
	}
	if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
		return "", Internal("Failed to store reset token.", err)
	}

	err = s.Mailer.Send(mailer.Message{
		Template: mailer.TemplateResetPassword,
		Subject:  "Reset your password",
		To:       []string{user.Email},
		Name:     user.FullName(),
		URL:      s.FrontendURL + "/resetPassword/" + rawToken,
	})
	if err != nil {
		clear := map[string]interface{}{
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		}
		_ = s.DB.Model(&user).Updates(clear).Error
		return "", Internal("There was an error sending an email. Try again later!", err)
	}

	return rawToken, nil
}

// ResetPassword consumes an unexpired reset token and replaces the password
// hash. PasswordChangedAt is set slightly in the past to tolerate clock
// skew, which invalidates every previously issued session token.
func (s *AuthService) ResetPassword(rawToken, password, confirmPassword string) error {
	if password == "" || confirmPassword == "" {
		return Validation("Password and Confirm password fields are required!")
	}
	if password != confirmPassword {
		return Validation("Passwords must be equal!")
	}

	tokenHash := util.HashToken(rawToken)

	var user models.User
	err := s.DB.Where("reset_password_token = ? AND reset_password_expires > ?", tokenHash, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Auth("Your token is not valid or has expired!")
		}
		return Internal("Failed to look up reset token.", err)
	}

	hash, err := util.HashPassword(password, s.BcryptCost)
	if err != nil {
		return Internal("Failed to encrypt password.", err)
	}

	changedAt := time.Now().Add(-time.Second)
	updates := map[string]interface{}{
		"password_hash":          hash,
		"reset_password_token":   nil,
		"reset_password_expires": nil,
		"password_changed_at":    changedAt,
	}
	if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
		return Internal("Failed to update password.", err)
	}
	return nil
}

// ResendActivation reissues an activation token for an inactive user,
// following the same hash-at-rest and compensation discipline as Register.
func (s *AuthService) ResendActivation(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", NotFound("User with this email does not exist!")
		}
		return "", Internal("Failed to look up user.", err)
	}
	if user.Active {
		return "", Validation("User is already active.")
	}

	rawToken, err := util.GenerateToken()
	if err != nil {
		return "", Internal("Failed to generate activation token.", err)
	}
	tokenHash := util.HashToken(rawToken)

	if err := s.DB.Model(&user).Update("activation_token", tokenHash).Error; err != nil {
		return "", Internal("Failed to store activation token.", err)
	}

	err = s.Mailer.Send(mailer.Message{
		Template: mailer.TemplateActivateAccount,
		Subject:  "Activate your account",
		To:       []string{user.Email},
		Name:     user.FullName(),
		URL:      s.FrontendURL + "/activateAccount/" + rawToken,
	})
	if err != nil {
		_ = s.DB.Model(&user).Update("activation_token", nil).Error
		return "", Internal("Email could not be sent. Please try again!", err)
	}

	return rawToken, nil
}

// DeleteAccount removes the user record. Session tokens referencing the
// deleted id fail verification afterwards.
func (s *AuthService) DeleteAccount(userID uint) error {
	res := s.DB.Delete(&models.User{}, userID)
	if res.Error != nil {
		return Internal("Failed to delete user.", res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("No user found with this id!")
	}
	return nil
}
