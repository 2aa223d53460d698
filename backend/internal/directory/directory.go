package directory

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"social-demo/backend/internal/constants"
	"social-demo/backend/internal/state"
	apperrors "social-demo/backend/pkg/errors"
	"social-demo/backend/pkg/logger"
)

var validate = validator.New()

// RegisterInput is what a caller supplies to create a profile
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// Directory holds profiles keyed by email, in registration order
type Directory struct {
	mu       sync.RWMutex
	profiles []*state.Profile
	byEmail  map[string]*state.Profile
	logger   *zap.Logger
}

// New creates an empty directory
func New(log *zap.Logger) *Directory {
	return &Directory{
		byEmail: make(map[string]*state.Profile),
		logger:  logger.Named(log, constants.ComponentDirectory),
	}
}

// Register adds a profile. All fields must be present and the email unused.
func (d *Directory) Register(in RegisterInput) (state.Profile, error) {
	if err := validate.Struct(in); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields = lo.Map(verrs, func(fe validator.FieldError, _ int) string { return fe.Field() })
		}
		return state.Profile{}, apperrors.NewMissingFields(fields, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[in.Email]; exists {
		d.logger.Debug("Registration rejected, email taken", zap.String("email", in.Email))
		return state.Profile{}, apperrors.NewProfileExists(in.Email)
	}

	p := &state.Profile{Name: in.Name, Email: in.Email, Password: in.Password}
	d.profiles = append(d.profiles, p)
	d.byEmail[p.Email] = p

	d.logger.Info("Profile created", zap.String("email", p.Email), zap.String("name", p.Name))
	return *p, nil
}

// Authenticate returns the profile whose email and password both match
func (d *Directory) Authenticate(email, password string) (state.Profile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.byEmail[email]
	if !ok || p.Password != password {
		return state.Profile{}, apperrors.ErrInvalidCredentials
	}
	return *p, nil
}

// FindByEmail looks a profile up by its identity
func (d *Directory) FindByEmail(email string) (state.Profile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.byEmail[email]
	if !ok {
		return state.Profile{}, false
	}
	return *p, true
}

// List returns copies of every profile in registration order
func (d *Directory) List() []state.Profile {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return lo.Map(d.profiles, func(p *state.Profile, _ int) state.Profile { return *p })
}

// SetProfilePicture points a profile at an uploaded picture
func (d *Directory) SetProfilePicture(email, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.byEmail[email]
	if !ok {
		return apperrors.NewUserNotFound(email)
	}
	p.ProfilePicture = path

	d.logger.Info("Profile picture updated", zap.String("email", email), zap.String("path", path))
	return nil
}
