// Package userservice manages business logic layer of users.
package userservice

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/errorspkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/passpkg"
)

const (
	// maxFailedPasswordChecks is how many wrong current passwords in a row a
	// user may submit to ChangePassword before further attempts are refused.
	maxFailedPasswordChecks = 5
	// failedCheckCooldown is how long the refusal lasts. The counter also
	// restarts once the last failure is older than the cooldown.
	failedCheckCooldown = time.Minute
)

// Repo provides data access layer interface needed by user service layer.
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, email string) (domain.User, error)
	UpdatePassword(ctx context.Context, email, hashedPassword string) (domain.User, error)
}

// SessionBlocker revokes all refresh sessions of a user.
type SessionBlocker interface {
	BlockByEmail(ctx context.Context, email string) error
}

//go:generate mockgen -source service.go -destination service_mock.go -package userservice

// failedCheck tracks consecutive wrong current passwords of one user.
type failedCheck struct {
	count int
	last  time.Time
}

// Service facilitates user service layer logic.
type Service struct {
	repo     Repo
	sessions SessionBlocker
	now      func() time.Time

	mu           sync.Mutex
	failedChecks map[string]failedCheck
}

// New return user service struct to manage user bussines logic.
func New(ur Repo, sb SessionBlocker) *Service {
	return &Service{
		repo:         ur,
		sessions:     sb,
		now:          time.Now,
		failedChecks: make(map[string]failedCheck),
	}
}

// NewUserWihtoutPassword returns user with removed sensitive data.
func NewUserWihtoutPassword(u domain.User) domain.UserWihtoutPassword {
	return domain.UserWihtoutPassword{
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Create creates and returns user.
func (s *Service) Create(ctx context.Context, email, password string) (domain.UserWihtoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWihtoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Email:          email,
		HashedPassword: hashedPassword,
	}

	gotUser, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	result = NewUserWihtoutPassword(gotUser)

	return result, nil
}

// CheckPassword checks if the password is valid for the given email.
func (s *Service) CheckPassword(ctx context.Context, email, pass string) (domain.UserWihtoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWihtoutPassword

	gotUser, err := s.repo.Get(ctx, email)
	if err != nil {
		return response, err
	}

	err = passpkg.Check(pass, gotUser.HashedPassword)
	if err != nil {
		l.Warn().Err(err).Send()
		return response, domain.ErrWrongPassword
	}

	response = NewUserWihtoutPassword(gotUser)

	return response, nil
}

func (s *Service) tooManyFailedChecks(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	fc := s.failedChecks[email]
	if fc.count < maxFailedPasswordChecks {
		return false
	}

	// The refusal expires on its own, the user just has to wait it out.
	if s.now().Sub(fc.last) >= failedCheckCooldown {
		delete(s.failedChecks, email)
		return false
	}

	return true
}

func (s *Service) recordCheck(email string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ok {
		delete(s.failedChecks, email)
		return
	}

	fc := s.failedChecks[email]
	if s.now().Sub(fc.last) >= failedCheckCooldown {
		fc.count = 0
	}

	fc.count++
	fc.last = s.now()
	s.failedChecks[email] = fc
}

// ChangePassword re-verifies the current password, stores the new hash and
// revokes the user's refresh sessions so other devices must log in again.
func (s *Service) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) (domain.UserWihtoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWihtoutPassword

	if s.tooManyFailedChecks(email) {
		l.Warn().Str("email", email).Msg("password change refused after repeated failures")
		return response, domain.ErrTooManyRequests
	}

	gotUser, err := s.repo.Get(ctx, email)
	if err != nil {
		return response, err
	}

	if err := passpkg.Check(currentPassword, gotUser.HashedPassword); err != nil {
		s.recordCheck(email, false)
		l.Warn().Err(err).Send()

		return response, domain.ErrWrongPassword
	}

	s.recordCheck(email, true)

	hashedPassword, err := passpkg.Hash(newPassword)
	if err != nil {
		l.Error().Err(err).Send()
		return response, errorspkg.ErrInternal
	}

	updated, err := s.repo.UpdatePassword(ctx, email, hashedPassword)
	if err != nil {
		return response, err
	}

	if err := s.sessions.BlockByEmail(ctx, email); err != nil {
		l.Error().Err(err).Send()
		return response, errorspkg.ErrInternal
	}

	response = NewUserWihtoutPassword(updated)

	return response, nil
}
