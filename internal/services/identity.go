package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/mindcare-backend/internal/events"
	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"github.com/AnshRaj112/mindcare-backend/internal/storage"
	"github.com/AnshRaj112/mindcare-backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minPasswordLength = 6

// RegisterInput is a signup request.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`

	Age                      int    `json:"age"`
	EmergencyContactEmail    string `json:"emergencyContactEmail"`
	EmergencyContactRelation string `json:"emergencyContactRelation"`

	Specialization string  `json:"specialization"`
	Location       string  `json:"location"`
	HourlyRate     float64 `json:"hourlyRate"`
	LicenseNumber  string  `json:"licenseNumber"`
	Phone          string  `json:"phone"`
}

// IdentityService registers accounts and issues sessions stored in the
// key-value store under session:<token>.
type IdentityService struct {
	dir   *LifecycleService
	store storage.Store
	bus   events.Publisher
	log   *zap.Logger
	now   func() time.Time
	ttl   time.Duration
	newID func() string
}

func NewIdentityService(dir *LifecycleService, store storage.Store, bus events.Publisher, log *zap.Logger, ttl time.Duration, now func() time.Time) *IdentityService {
	if now == nil {
		now = time.Now
	}
	return &IdentityService{
		dir:   dir,
		store: store,
		bus:   bus,
		log:   log.Named("identity"),
		now:   now,
		ttl:   ttl,
		newID: uuid.NewString,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func findUserByEmail(users []models.User, email string) (models.User, bool) {
	for _, u := range users {
		if normalizeEmail(u.Email) == email {
			return u, true
		}
	}
	return models.User{}, false
}

// Register creates a patient (verified at once) or a therapist (pending,
// unverified) and signs them in.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (models.Session, models.User, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	switch {
	case email == "" || !strings.Contains(email, "@"):
		return models.Session{}, models.User{}, fmt.Errorf("%w: a valid email is required", ErrValidation)
	case name == "":
		return models.Session{}, models.User{}, fmt.Errorf("%w: name is required", ErrValidation)
	case len(in.Password) < minPasswordLength:
		return models.Session{}, models.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	case in.Role != models.RolePatient && in.Role != models.RoleTherapist:
		return models.Session{}, models.User{}, fmt.Errorf("%w: role must be patient or therapist", ErrValidation)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.Session{}, models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:        s.newID(),
		Email:     email,
		Name:      name,
		Role:      in.Role,
		Verified:  in.Role == models.RolePatient,
		CreatedAt: s.now().UTC(),
	}
	if in.Role == models.RoleTherapist {
		user.Status = models.StatusPending
		user.Specialization = in.Specialization
		user.Location = in.Location
		user.HourlyRate = in.HourlyRate
		user.LicenseNumber = in.LicenseNumber
		user.Phone = in.Phone
	} else {
		user.Age = in.Age
		user.EmergencyContactEmail = in.EmergencyContactEmail
		user.EmergencyContactRelation = in.EmergencyContactRelation
	}

	err = s.dir.mutate(ctx, func(st *lifecycleState) (bool, error) {
		if _, taken := findUserByEmail(st.users, email); taken {
			return false, ErrEmailTaken
		}
		st.users = append(st.users, user)
		st.credentials[email] = models.Credential{UserID: user.ID, PasswordHash: hash}
		return true, nil
	})
	if err != nil {
		return models.Session{}, models.User{}, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", user.Role))
	s.bus.Publish(ctx, events.Event{Type: events.AnalyticsUpdated, UserID: user.ID})

	sess, err := s.createSession(ctx, user)
	if err != nil {
		return models.Session{}, models.User{}, err
	}
	return sess, user, nil
}

// Login checks credentials. A non-empty role must match the account's role.
func (s *IdentityService) Login(ctx context.Context, email, password, role string) (models.Session, models.User, error) {
	email = normalizeEmail(email)

	st, err := s.dir.load(ctx)
	if err != nil {
		return models.Session{}, models.User{}, err
	}
	creds := make(map[string]models.Credential)
	if err := s.dir.loadList(ctx, storage.KeyUserCredentials, &creds); err != nil {
		return models.Session{}, models.User{}, err
	}

	user, ok := findUserByEmail(st.users, email)
	cred, hasCred := creds[email]
	if !ok || !hasCred || cred.UserID != user.ID {
		return models.Session{}, models.User{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	match, err := utils.VerifyPassword(password, cred.PasswordHash)
	if err != nil {
		s.log.Warn("stored password hash unreadable", zap.String("user_id", user.ID), zap.Error(err))
	}
	if !match {
		return models.Session{}, models.User{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if role != "" && role != user.Role {
		return models.Session{}, models.User{}, fmt.Errorf("%w: this account is not registered as a %s", ErrUnauthorized, role)
	}
	if user.Status == models.StatusDeleted {
		return models.Session{}, models.User{}, fmt.Errorf("%w: account removed", ErrUnauthorized)
	}

	sess, err := s.createSession(ctx, user)
	if err != nil {
		return models.Session{}, models.User{}, err
	}
	s.log.Info("user signed in", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return sess, user, nil
}

func (s *IdentityService) createSession(ctx context.Context, user models.User) (models.Session, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return models.Session{}, err
	}
	sess := models.Session{
		Token:     base64.URLEncoding.EncodeToString(tokenBytes),
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}
	if err := storage.SaveJSON(ctx, s.store, storage.UserKey(storage.PrefixSession, sess.Token), sess); err != nil {
		return models.Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Authenticate resolves a session token to its user. Expired sessions are
// removed.
func (s *IdentityService) Authenticate(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrUnauthorized
	}
	key := storage.UserKey(storage.PrefixSession, token)

	var sess models.Session
	found, err := storage.LoadJSON(ctx, s.store, key, &sess)
	if errors.Is(err, storage.ErrCorrupt) {
		_ = s.store.Delete(ctx, key)
		return models.User{}, ErrUnauthorized
	}
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrUnauthorized
	}
	if !s.now().Before(sess.ExpiresAt) {
		_ = s.store.Delete(ctx, key)
		return models.User{}, ErrUnauthorized
	}

	user, err := s.User(ctx, sess.UserID)
	if errors.Is(err, ErrNotFound) {
		return models.User{}, ErrUnauthorized
	}
	return user, err
}

// User looks a registered user up by id.
func (s *IdentityService) User(ctx context.Context, userID string) (models.User, error) {
	st, err := s.dir.load(ctx)
	if err != nil {
		return models.User{}, err
	}
	if i := st.userIndex(userID); i >= 0 {
		return st.users[i], nil
	}
	return models.User{}, ErrNotFound
}

// Users lists registered users, optionally by role.
func (s *IdentityService) Users(ctx context.Context, role string) ([]models.User, error) {
	st, err := s.dir.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(st.users))
	for _, u := range st.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

// Logout removes the session. Unknown tokens are ignored.
func (s *IdentityService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, storage.UserKey(storage.PrefixSession, token))
}

// SeedAdmin creates the admin account once. It is a no-op when either value
// is empty or the email is already registered.
func (s *IdentityService) SeedAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	created := false
	err = s.dir.mutate(ctx, func(st *lifecycleState) (bool, error) {
		if _, exists := findUserByEmail(st.users, email); exists {
			return false, nil
		}
		admin := models.User{
			ID:        s.newID(),
			Email:     email,
			Name:      "Administrator",
			Role:      models.RoleAdmin,
			Verified:  true,
			CreatedAt: s.now().UTC(),
		}
		st.users = append(st.users, admin)
		st.credentials[email] = models.Credential{UserID: admin.ID, PasswordHash: hash}
		created = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	if created {
		s.log.Info("admin account seeded", zap.String("email", email))
	}
	return created, nil
}
