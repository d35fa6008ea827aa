package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/mindcare-backend/internal/events"
	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"github.com/AnshRaj112/mindcare-backend/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultAvatar        = "https://images.pexels.com/photos/5327580/pexels-photo-5327580.jpeg?auto=compress&cs=tinysrgb&w=150"
	defaultRatingNew     = 4.8
	defaultLocation      = "Online"
	defaultNextAvailable = "Today, 2:00 PM"
)

// Display statuses in the admin listing.
const (
	DisplayActive    = "active"
	DisplayPending   = "pending"
	DisplayInactive  = "inactive"
	DisplaySuspended = "suspended"
)

// LifecycleResult reports what an admin action did. Applied is false when the
// service id was unknown; that is not an error.
type LifecycleResult struct {
	Applied     bool                      `json:"applied"`
	TherapistID string                    `json:"therapistId,omitempty"`
	Service     *models.TherapistService  `json:"service,omitempty"`
	Bookable    *models.BookableTherapist `json:"bookable,omitempty"`
}

// ServiceInput is what a therapist submits for review.
type ServiceInput struct {
	Qualification     string   `json:"qualification"`
	Specialization    []string `json:"specialization"`
	Experience        string   `json:"experience"`
	ChargesPerSession float64  `json:"chargesPerSession"`
	Bio               string   `json:"bio"`
	Languages         []string `json:"languages"`
	ProfilePicture    string   `json:"profilePicture"`
}

// ProfileUpdate is an admin edit. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	Specialization []string `json:"specialization"`
	Experience     *string  `json:"experience"`
	HourlyRate     *float64 `json:"hourlyRate"`
	Bio            *string  `json:"bio"`
	Languages      []string `json:"languages"`
}

// LifecycleService keeps the service, user and bookable-therapist collections
// consistent. Every action loads all three, mutates them in memory and writes
// them back with one SetMulti.
type LifecycleService struct {
	store storage.Store
	bus   events.Publisher
	log   *zap.Logger
	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

func NewLifecycleService(store storage.Store, bus events.Publisher, log *zap.Logger, now func() time.Time) *LifecycleService {
	if now == nil {
		now = time.Now
	}
	return &LifecycleService{
		store: store,
		bus:   bus,
		log:   log.Named("lifecycle"),
		now:   now,
		newID: uuid.NewString,
	}
}

type lifecycleState struct {
	users       []models.User
	services    []models.TherapistService
	bookable    []models.BookableTherapist
	credentials map[string]models.Credential
}

func (s *LifecycleService) loadList(ctx context.Context, key string, dest interface{}) error {
	_, err := storage.LoadJSON(ctx, s.store, key, dest)
	if errors.Is(err, storage.ErrCorrupt) {
		s.log.Warn("corrupt collection, treating as empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	return nil
}

func (s *LifecycleService) load(ctx context.Context) (*lifecycleState, error) {
	st := &lifecycleState{}
	if err := s.loadList(ctx, storage.KeyRegisteredUsers, &st.users); err != nil {
		return nil, err
	}
	if err := s.loadList(ctx, storage.KeyTherapistServices, &st.services); err != nil {
		return nil, err
	}
	if err := s.loadList(ctx, storage.KeyBookableTherapist, &st.bookable); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *LifecycleService) commit(ctx context.Context, st *lifecycleState) error {
	b := storage.NewBatch()
	b.Put(storage.KeyRegisteredUsers, nonNilUsers(st.users))
	b.Put(storage.KeyTherapistServices, nonNilServices(st.services))
	b.Put(storage.KeyBookableTherapist, nonNilBookable(st.bookable))
	if st.credentials != nil {
		b.Put(storage.KeyUserCredentials, st.credentials)
	}
	if err := b.Commit(ctx, s.store); err != nil {
		s.log.Error("commit lifecycle state", zap.Error(err))
		return fmt.Errorf("commit lifecycle state: %w", err)
	}
	return nil
}

// mutate runs fn on the full directory, credentials included, under the
// lifecycle lock and commits when fn reports a change. Identity uses it so
// registrations and admin actions never interleave on registered_users.
func (s *LifecycleService) mutate(ctx context.Context, fn func(st *lifecycleState) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return err
	}
	st.credentials = make(map[string]models.Credential)
	if err := s.loadList(ctx, storage.KeyUserCredentials, &st.credentials); err != nil {
		return err
	}
	changed, err := fn(st)
	if err != nil || !changed {
		return err
	}
	return s.commit(ctx, st)
}

func (st *lifecycleState) serviceIndex(serviceID string) int {
	for i := range st.services {
		if st.services[i].ID == serviceID {
			return i
		}
	}
	return -1
}

func (st *lifecycleState) serviceIndexByTherapist(therapistID string) int {
	for i := range st.services {
		if st.services[i].TherapistID == therapistID {
			return i
		}
	}
	return -1
}

func (st *lifecycleState) userIndex(userID string) int {
	for i := range st.users {
		if st.users[i].ID == userID {
			return i
		}
	}
	return -1
}

func (st *lifecycleState) setUserStatus(userID, status string, verified *bool) {
	if i := st.userIndex(userID); i >= 0 {
		st.users[i].Status = status
		if verified != nil {
			st.users[i].Verified = *verified
		}
	}
}

// removeBookable drops every projection for therapistID.
func (st *lifecycleState) removeBookable(therapistID string) {
	kept := st.bookable[:0]
	for _, b := range st.bookable {
		if b.ID != therapistID {
			kept = append(kept, b)
		}
	}
	st.bookable = kept
}

// upsertBookable replaces any stale projection with a fresh one.
func (st *lifecycleState) upsertBookable(b models.BookableTherapist) {
	st.removeBookable(b.ID)
	st.bookable = append(st.bookable, b)
}

// Project builds the bookable projection of an approved service.
func Project(svc models.TherapistService) models.BookableTherapist {
	avatar := strings.TrimSpace(svc.ProfilePicture)
	if avatar == "" {
		avatar = defaultAvatar
	}
	return models.BookableTherapist{
		ID:             svc.TherapistID,
		Name:           svc.TherapistName,
		Title:          svc.Qualification,
		Specialization: svc.Specialization,
		Experience:     parseExperience(svc.Experience),
		Rating:         defaultRatingNew,
		ReviewCount:    0,
		HourlyRate:     svc.ChargesPerSession,
		Location:       defaultLocation,
		Avatar:         avatar,
		Verified:       true,
		NextAvailable:  defaultNextAvailable,
		Bio:            svc.Bio,
		Languages:      svc.Languages,
	}
}

// parseExperience reads the leading year count from strings like "8 years".
func parseExperience(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}

// SubmitService creates or updates the therapist's service. A new or
// rejected service goes (back) to pending; a pending or approved one keeps
// its status, and an approved one has its projection refreshed.
func (s *LifecycleService) SubmitService(ctx context.Context, therapistID string, in ServiceInput) (models.TherapistService, error) {
	if strings.TrimSpace(in.Qualification) == "" || len(in.Specialization) == 0 {
		return models.TherapistService{}, fmt.Errorf("%w: qualification and specialization are required", ErrValidation)
	}
	if in.ChargesPerSession < 0 {
		return models.TherapistService{}, fmt.Errorf("%w: charges must not be negative", ErrValidation)
	}

	out, err := s.submitService(ctx, therapistID, in)
	if err != nil {
		return models.TherapistService{}, err
	}
	s.log.Info("service submitted", zap.String("therapist_id", therapistID), zap.String("service_id", out.ID), zap.String("status", out.Status))
	s.bus.Publish(ctx, events.Event{Type: events.DataUpdated, TherapistID: therapistID})
	return out, nil
}

func (s *LifecycleService) submitService(ctx context.Context, therapistID string, in ServiceInput) (models.TherapistService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return models.TherapistService{}, err
	}
	ui := st.userIndex(therapistID)
	if ui < 0 || st.users[ui].Role != models.RoleTherapist {
		return models.TherapistService{}, ErrNotFound
	}
	user := st.users[ui]

	i := st.serviceIndexByTherapist(therapistID)
	if i < 0 {
		st.services = append(st.services, models.TherapistService{
			ID:          s.newID(),
			TherapistID: therapistID,
			Status:      models.StatusPending,
		})
		i = len(st.services) - 1
	}
	svc := &st.services[i]
	if svc.Status == models.StatusSuspended {
		return models.TherapistService{}, ErrInvalidTransition
	}

	svc.TherapistName = user.Name
	svc.Email = user.Email
	svc.Qualification = in.Qualification
	svc.Specialization = in.Specialization
	svc.Experience = in.Experience
	svc.ChargesPerSession = in.ChargesPerSession
	svc.Bio = in.Bio
	svc.Languages = in.Languages
	if in.ProfilePicture != "" {
		svc.ProfilePicture = in.ProfilePicture
	}

	switch svc.Status {
	case models.StatusRejected, "":
		svc.Status = models.StatusPending
		svc.SubmittedAt = s.now().UTC()
		svc.ApprovedAt = nil
		st.setUserStatus(therapistID, models.StatusPending, nil)
	case models.StatusPending:
		svc.SubmittedAt = s.now().UTC()
	case models.StatusApproved:
		st.upsertBookable(Project(*svc))
	}

	out := *svc
	if err := s.commit(ctx, st); err != nil {
		return models.TherapistService{}, err
	}
	return out, nil
}

// SetProfilePicture stores an uploaded picture on the therapist's service.
func (s *LifecycleService) SetProfilePicture(ctx context.Context, therapistID, url string) (models.TherapistService, error) {
	out, err := s.setProfilePicture(ctx, therapistID, url)
	if err != nil {
		return models.TherapistService{}, err
	}
	s.bus.Publish(ctx, events.Event{Type: events.DataUpdated, TherapistID: therapistID})
	return out, nil
}

func (s *LifecycleService) setProfilePicture(ctx context.Context, therapistID, url string) (models.TherapistService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return models.TherapistService{}, err
	}
	i := st.serviceIndexByTherapist(therapistID)
	if i < 0 {
		return models.TherapistService{}, ErrNotFound
	}
	st.services[i].ProfilePicture = url
	if st.services[i].Status == models.StatusApproved {
		st.upsertBookable(Project(st.services[i]))
	}
	out := st.services[i]
	if err := s.commit(ctx, st); err != nil {
		return models.TherapistService{}, err
	}
	return out, nil
}

// transition loads state, applies fn to the service and commits. fn returns
// whether anything changed; unchanged state is not written.
func (s *LifecycleService) transition(ctx context.Context, serviceID string, fn func(st *lifecycleState, svc *models.TherapistService) (bool, error)) (LifecycleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return LifecycleResult{}, err
	}
	i := st.serviceIndex(serviceID)
	if i < 0 {
		s.log.Info("lifecycle action on unknown service", zap.String("service_id", serviceID))
		return LifecycleResult{Applied: false}, nil
	}
	svc := &st.services[i]
	changed, err := fn(st, svc)
	if err != nil {
		return LifecycleResult{}, err
	}

	res := LifecycleResult{Applied: true, TherapistID: svc.TherapistID}
	out := *svc
	res.Service = &out
	for _, b := range st.bookable {
		if b.ID == svc.TherapistID {
			b := b
			res.Bookable = &b
		}
	}
	if changed {
		if err := s.commit(ctx, st); err != nil {
			return LifecycleResult{}, err
		}
	}
	return res, nil
}

// Approve moves a pending, rejected or suspended service to approved,
// approves and verifies the user and upserts the bookable projection.
// Approving an approved service only refreshes the projection.
func (s *LifecycleService) Approve(ctx context.Context, serviceID string) (LifecycleResult, error) {
	return s.approve(ctx, serviceID, nil)
}

// Reactivate returns a suspended therapist to approved.
func (s *LifecycleService) Reactivate(ctx context.Context, serviceID string) (LifecycleResult, error) {
	return s.approve(ctx, serviceID, func(status string) error {
		if status != models.StatusSuspended {
			return ErrInvalidTransition
		}
		return nil
	})
}

func (s *LifecycleService) approve(ctx context.Context, serviceID string, guard func(status string) error) (LifecycleResult, error) {
	res, err := s.transition(ctx, serviceID, func(st *lifecycleState, svc *models.TherapistService) (bool, error) {
		if guard != nil {
			if err := guard(svc.Status); err != nil {
				return false, err
			}
		}
		if svc.Status != models.StatusApproved {
			now := s.now().UTC()
			svc.Status = models.StatusApproved
			svc.ApprovedAt = &now
		}
		verified := true
		st.setUserStatus(svc.TherapistID, models.StatusApproved, &verified)
		st.upsertBookable(Project(*svc))
		return true, nil
	})
	if err != nil || !res.Applied {
		return res, err
	}
	s.log.Info("therapist approved", zap.String("service_id", serviceID), zap.String("therapist_id", res.TherapistID))
	s.bus.Publish(ctx, events.Event{Type: events.TherapistApproved, TherapistID: res.TherapistID})
	s.bus.Publish(ctx, events.Event{Type: events.DataUpdated, TherapistID: res.TherapistID})
	s.bus.Publish(ctx, events.Event{Type: events.AnalyticsUpdated, TherapistID: res.TherapistID})
	return res, nil
}

// Reject only applies to pending services. The bookable list is untouched.
func (s *LifecycleService) Reject(ctx context.Context, serviceID string) (LifecycleResult, error) {
	res, err := s.transition(ctx, serviceID, func(st *lifecycleState, svc *models.TherapistService) (bool, error) {
		switch svc.Status {
		case models.StatusRejected:
			return false, nil
		case models.StatusPending:
			svc.Status = models.StatusRejected
			st.setUserStatus(svc.TherapistID, models.StatusRejected, nil)
			return true, nil
		default:
			return false, ErrInvalidTransition
		}
	})
	if err != nil || !res.Applied {
		return res, err
	}
	s.log.Info("therapist rejected", zap.String("service_id", serviceID), zap.String("therapist_id", res.TherapistID))
	s.bus.Publish(ctx, events.Event{Type: events.TherapistRejected, TherapistID: res.TherapistID})
	s.bus.Publish(ctx, events.Event{Type: events.DataUpdated, TherapistID: res.TherapistID})
	return res, nil
}

// Suspend takes an approved therapist off the bookable list.
func (s *LifecycleService) Suspend(ctx context.Context, serviceID string) (LifecycleResult, error) {
	res, err := s.transition(ctx, serviceID, func(st *lifecycleState, svc *models.TherapistService) (bool, error) {
		switch svc.Status {
		case models.StatusSuspended:
			return false, nil
		case models.StatusApproved:
			svc.Status = models.StatusSuspended
			st.setUserStatus(svc.TherapistID, models.StatusSuspended, nil)
			st.removeBookable(svc.TherapistID)
			return true, nil
		default:
			return false, ErrInvalidTransition
		}
	})
	if err != nil || !res.Applied {
		return res, err
	}
	s.log.Info("therapist suspended", zap.String("service_id", serviceID), zap.String("therapist_id", res.TherapistID))
	s.bus.Publish(ctx, events.Event{Type: events.DataUpdated, TherapistID: res.TherapistID})
	return res, nil
}

// Delete removes the service, the user, their credentials and any
// projection. Deleting an unknown id is a no-op.
func (s *LifecycleService) Delete(ctx context.Context, serviceID string) (LifecycleResult, error) {
	var therapistID string
	err := s.mutate(ctx, func(st *lifecycleState) (bool, error) {
		i := st.serviceIndex(serviceID)
		if i < 0 {
			return false, nil
		}
		therapistID = st.services[i].TherapistID

		st.services = append(st.services[:i], st.services[i+1:]...)
		if ui := st.userIndex(therapistID); ui >= 0 {
			st.users = append(st.users[:ui], st.users[ui+1:]...)
		}
		st.removeBookable(therapistID)
		for email, c := range st.credentials {
			if c.UserID == therapistID {
				delete(st.credentials, email)
			}
		}
		return true, nil
	})
	if err != nil {
		return LifecycleResult{}, err
	}
	if therapistID == "" {
		return LifecycleResult{Applied: false}, nil
	}
	s.log.Info("therapist deleted", zap.String("service_id", serviceID), zap.String("therapist_id", therapistID))
	s.bus.Publish(ctx, events.Event{Type: events.DataUpdated, TherapistID: therapistID})
	s.bus.Publish(ctx, events.Event{Type: events.AnalyticsUpdated, TherapistID: therapistID})
	return LifecycleResult{Applied: true, TherapistID: therapistID}, nil
}

// UpdateProfile applies an admin edit to the user, their service and, when
// approved, the bookable projection. An email change moves the login
// credential to the new address and fails with ErrEmailTaken when another
// account already uses it.
func (s *LifecycleService) UpdateProfile(ctx context.Context, therapistID string, upd ProfileUpdate) (LifecycleResult, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return LifecycleResult{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if upd.Email != nil && strings.TrimSpace(*upd.Email) == "" {
		return LifecycleResult{}, fmt.Errorf("%w: email is required", ErrValidation)
	}

	var res LifecycleResult
	err := s.mutate(ctx, func(st *lifecycleState) (bool, error) {
		ui := st.userIndex(therapistID)
		if ui < 0 {
			return false, nil
		}
		u := &st.users[ui]
		if upd.Email != nil {
			email := normalizeEmail(*upd.Email)
			if other, taken := findUserByEmail(st.users, email); taken && other.ID != therapistID {
				return false, ErrEmailTaken
			}
			old := normalizeEmail(u.Email)
			if cred, ok := st.credentials[old]; ok && old != email {
				st.credentials[email] = cred
				delete(st.credentials, old)
			}
			u.Email = email
		}
		if upd.Name != nil {
			u.Name = *upd.Name
		}
		if upd.Phone != nil {
			u.Phone = *upd.Phone
		}
		if upd.HourlyRate != nil {
			u.HourlyRate = *upd.HourlyRate
		}
		if len(upd.Specialization) > 0 {
			u.Specialization = strings.Join(upd.Specialization, ", ")
		}

		res = LifecycleResult{Applied: true, TherapistID: therapistID}
		if i := st.serviceIndexByTherapist(therapistID); i >= 0 {
			svc := &st.services[i]
			svc.TherapistName = u.Name
			svc.Email = u.Email
			if len(upd.Specialization) > 0 {
				svc.Specialization = upd.Specialization
			}
			if upd.Experience != nil {
				svc.Experience = *upd.Experience
			}
			if upd.HourlyRate != nil {
				svc.ChargesPerSession = *upd.HourlyRate
			}
			if upd.Bio != nil {
				svc.Bio = *upd.Bio
			}
			if upd.Languages != nil {
				svc.Languages = upd.Languages
			}
			if svc.Status == models.StatusApproved && u.Status != models.StatusSuspended {
				b := Project(*svc)
				st.upsertBookable(b)
				res.Bookable = &b
			}
			out := *svc
			res.Service = &out
		}
		return true, nil
	})
	if err != nil || !res.Applied {
		return LifecycleResult{}, err
	}

	s.log.Info("therapist profile updated", zap.String("therapist_id", therapistID))
	s.bus.Publish(ctx, events.Event{Type: events.DataUpdated, TherapistID: therapistID})
	return res, nil
}

// ListServices returns services, optionally filtered by status, newest first.
func (s *LifecycleService) ListServices(ctx context.Context, status string) ([]models.TherapistService, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.TherapistService, 0, len(st.services))
	for _, svc := range st.services {
		if status == "" || svc.Status == status {
			out = append(out, svc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

// ServiceFor returns the therapist's own service.
func (s *LifecycleService) ServiceFor(ctx context.Context, therapistID string) (models.TherapistService, error) {
	st, err := s.load(ctx)
	if err != nil {
		return models.TherapistService{}, err
	}
	i := st.serviceIndexByTherapist(therapistID)
	if i < 0 {
		return models.TherapistService{}, ErrNotFound
	}
	return st.services[i], nil
}

// ListTherapists is the admin view of every registered therapist.
func (s *LifecycleService) ListTherapists(ctx context.Context) ([]models.TherapistListing, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	bookable := make(map[string]bool, len(st.bookable))
	for _, b := range st.bookable {
		bookable[b.ID] = true
	}

	var out []models.TherapistListing
	for _, u := range st.users {
		if u.Role != models.RoleTherapist {
			continue
		}
		l := models.TherapistListing{User: u, Bookable: bookable[u.ID]}
		if i := st.serviceIndexByTherapist(u.ID); i >= 0 {
			svc := st.services[i]
			l.Service = &svc
		}
		l.DisplayStatus = displayStatus(u, l.Service)
		out = append(out, l)
	}
	return out, nil
}

func displayStatus(u models.User, svc *models.TherapistService) string {
	if u.Status == models.StatusSuspended {
		return DisplaySuspended
	}
	if svc == nil {
		return DisplayInactive
	}
	switch svc.Status {
	case models.StatusApproved:
		return DisplayActive
	case models.StatusPending:
		return DisplayPending
	case models.StatusSuspended:
		return DisplaySuspended
	default:
		return DisplayInactive
	}
}

// Bookable lists patient-facing therapists matching query (name or
// specialization substring) and specialization (exact, case-insensitive).
// Entries whose user is deleted or suspended are filtered out.
func (s *LifecycleService) Bookable(ctx context.Context, query, specialization string) ([]models.BookableTherapist, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	specialization = strings.TrimSpace(specialization)

	out := make([]models.BookableTherapist, 0, len(st.bookable))
	for _, b := range st.bookable {
		if i := st.userIndex(b.ID); i >= 0 {
			status := st.users[i].Status
			if status == models.StatusDeleted || status == models.StatusSuspended {
				continue
			}
		}
		if query != "" && !matchesQuery(b, query) {
			continue
		}
		if specialization != "" && !hasSpecialization(b, specialization) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// FindBookable looks a bookable therapist up by id.
func (s *LifecycleService) FindBookable(ctx context.Context, therapistID string) (models.BookableTherapist, error) {
	list, err := s.Bookable(ctx, "", "")
	if err != nil {
		return models.BookableTherapist{}, err
	}
	for _, b := range list {
		if b.ID == therapistID {
			return b, nil
		}
	}
	return models.BookableTherapist{}, ErrNotFound
}

func matchesQuery(b models.BookableTherapist, q string) bool {
	if strings.Contains(strings.ToLower(b.Name), q) {
		return true
	}
	for _, sp := range b.Specialization {
		if strings.Contains(strings.ToLower(sp), q) {
			return true
		}
	}
	return false
}

func hasSpecialization(b models.BookableTherapist, sp string) bool {
	for _, have := range b.Specialization {
		if strings.EqualFold(have, sp) {
			return true
		}
	}
	return false
}

// SeedDemoTherapists fills an empty bookable list with the demo directory.
func (s *LifecycleService) SeedDemoTherapists(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if len(st.bookable) > 0 {
		return false, nil
	}
	st.bookable = append(st.bookable, demoTherapists()...)
	if err := storage.SaveJSON(ctx, s.store, storage.KeyBookableTherapist, st.bookable); err != nil {
		return false, fmt.Errorf("seed demo therapists: %w", err)
	}
	s.log.Info("seeded demo therapists", zap.Int("count", len(st.bookable)))
	return true, nil
}

func demoTherapists() []models.BookableTherapist {
	return []models.BookableTherapist{
		{
			ID: "1", Name: "Dr. Sarah Johnson", Title: "Ph.D. in Clinical Psychology",
			Specialization: []string{"Anxiety", "Depression"}, Experience: 8, Rating: 4.9, ReviewCount: 127,
			HourlyRate: 150, Location: "New York, NY",
			Avatar:   "https://images.pexels.com/photos/5327580/pexels-photo-5327580.jpeg?auto=compress&cs=tinysrgb&w=150",
			Verified: true, NextAvailable: "Today, 2:00 PM",
			Bio:       "Specializing in cognitive behavioral therapy with over 8 years of experience helping patients overcome anxiety and depression.",
			Languages: []string{"English", "Spanish"},
		},
		{
			ID: "2", Name: "Dr. Michael Chen", Title: "M.D. Psychiatrist",
			Specialization: []string{"Trauma", "PTSD"}, Experience: 12, Rating: 4.8, ReviewCount: 89,
			HourlyRate: 180, Location: "Los Angeles, CA",
			Avatar:   "https://images.pexels.com/photos/5327921/pexels-photo-5327921.jpeg?auto=compress&cs=tinysrgb&w=150",
			Verified: true, NextAvailable: "Tomorrow, 10:00 AM",
			Bio:       "Expert in trauma therapy and EMDR with extensive experience in helping veterans and first responders.",
			Languages: []string{"English", "Mandarin"},
		},
		{
			ID: "3", Name: "Dr. Emily Rodriguez", Title: "Licensed Family Therapist",
			Specialization: []string{"Family Therapy", "Couples"}, Experience: 10, Rating: 4.7, ReviewCount: 156,
			HourlyRate: 160, Location: "Chicago, IL",
			Avatar:   "https://images.pexels.com/photos/5327647/pexels-photo-5327647.jpeg?auto=compress&cs=tinysrgb&w=150",
			Verified: true, NextAvailable: "Today, 4:30 PM",
			Bio:       "Dedicated to helping families and couples build stronger relationships through evidence-based therapeutic approaches.",
			Languages: []string{"English", "Spanish", "Portuguese"},
		},
	}
}

func nonNilUsers(v []models.User) []models.User {
	if v == nil {
		return []models.User{}
	}
	return v
}

func nonNilServices(v []models.TherapistService) []models.TherapistService {
	if v == nil {
		return []models.TherapistService{}
	}
	return v
}

func nonNilBookable(v []models.BookableTherapist) []models.BookableTherapist {
	if v == nil {
		return []models.BookableTherapist{}
	}
	return v
}
