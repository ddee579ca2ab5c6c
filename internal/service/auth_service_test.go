package service

import (
	"testing"
	"time"

	"github.com/hndoan/Lorises/config"
	"github.com/hndoan/Lorises/internal/apperr"
	"github.com/hndoan/Lorises/internal/dto"
	"github.com/hndoan/Lorises/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users  map[uint]*model.User
	roles  map[uint][]string
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[uint]*model.User),
		roles: make(map[uint][]string),
	}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) MarkVerified(id uint) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsVerified = true
	return nil
}

func (r *fakeUserRepo) AssignRole(userID uint, roleName string) error {
	r.roles[userID] = append(r.roles[userID], roleName)
	return nil
}

func (r *fakeUserRepo) FindRoleNames(userID uint) ([]string, error) {
	return r.roles[userID], nil
}

func (r *fakeUserRepo) EnsureRole(name string) error { return nil }

type fakeOTPRepo struct {
	codes  map[uint]*model.EmailVerification
	nextID uint
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{codes: make(map[uint]*model.EmailVerification)}
}

func (r *fakeOTPRepo) Create(v *model.EmailVerification) error {
	r.nextID++
	v.ID = r.nextID
	r.codes[v.ID] = v
	return nil
}

func (r *fakeOTPRepo) FindActive(userID uint, code string, now time.Time) (*model.EmailVerification, error) {
	for _, v := range r.codes {
		if v.UserID == userID && v.Code == code && !v.Consumed && v.ExpiresAt.After(now) {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOTPRepo) Consume(id uint) error {
	v, ok := r.codes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Consumed = true
	return nil
}

type fakeMailer struct {
	sentTo    []string
	lastCode  string
	shouldErr error
}

func (m *fakeMailer) SendVerificationCode(email, fullName, code string) error {
	if m.shouldErr != nil {
		return m.shouldErr
	}
	m.sentTo = append(m.sentTo, email)
	m.lastCode = code
	return nil
}

type authFixture struct {
	userRepo *fakeUserRepo
	otpRepo  *fakeOTPRepo
	mailer   *fakeMailer
	svc      AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo: newFakeUserRepo(),
		otpRepo:  newFakeOTPRepo(),
		mailer:   &fakeMailer{},
	}
	cfg := &config.Config{
		JWT:     config.JWT{Secret: "test-secret", AccessTTLHours: 1},
		Scoring: config.Scoring{OTPLifetimeMinutes: 15},
	}
	f.svc = NewAuthService(f.userRepo, f.otpRepo, f.mailer, NewTokenService(cfg), cfg)
	return f
}

func registerReq() dto.RegisterRequestDTO {
	return dto.RegisterRequestDTO{
		Email:    "learner@example.com",
		Password: "correct horse battery",
		FullName: "Test Learner",
	}
}

func TestRegisterCreatesUnverifiedLearner(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.svc.Register(registerReq())

	require.NoError(t, err)
	assert.Equal(t, "learner@example.com", resp.Email)

	user := f.userRepo.users[resp.UserID]
	require.NotNil(t, user)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.Contains(t, f.userRepo.roles[user.ID], model.RoleLearner)

	require.Len(t, f.mailer.sentTo, 1)
	assert.NotEmpty(t, f.mailer.lastCode)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Register(registerReq())
	require.NoError(t, err)

	_, err = f.svc.Register(registerReq())
	assert.ErrorIs(t, err, apperr.ErrValidationFailed)
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	f := newAuthFixture()
	f.mailer.shouldErr = assert.AnError

	resp, err := f.svc.Register(registerReq())

	require.NoError(t, err)
	assert.NotZero(t, resp.UserID)
}

func TestVerifyEmailFlow(t *testing.T) {
	f := newAuthFixture()
	resp, err := f.svc.Register(registerReq())
	require.NoError(t, err)

	err = f.svc.VerifyEmail(dto.VerifyEmailRequestDTO{Email: resp.Email, Code: f.mailer.lastCode})
	require.NoError(t, err)
	assert.True(t, f.userRepo.users[resp.UserID].IsVerified)

	// The code is single-use.
	err = f.svc.VerifyEmail(dto.VerifyEmailRequestDTO{Email: resp.Email, Code: f.mailer.lastCode})
	assert.ErrorIs(t, err, apperr.ErrValidationFailed)
}

func TestVerifyEmailRejectsWrongOrExpiredCode(t *testing.T) {
	f := newAuthFixture()
	resp, err := f.svc.Register(registerReq())
	require.NoError(t, err)

	err = f.svc.VerifyEmail(dto.VerifyEmailRequestDTO{Email: resp.Email, Code: "wrong-code"})
	assert.ErrorIs(t, err, apperr.ErrValidationFailed)

	for _, v := range f.otpRepo.codes {
		v.ExpiresAt = time.Now().Add(-time.Minute)
	}
	err = f.svc.VerifyEmail(dto.VerifyEmailRequestDTO{Email: resp.Email, Code: f.mailer.lastCode})
	assert.ErrorIs(t, err, apperr.ErrValidationFailed)
}

func TestLoginFlow(t *testing.T) {
	f := newAuthFixture()
	resp, err := f.svc.Register(registerReq())
	require.NoError(t, err)

	// Unverified accounts cannot log in yet.
	_, err = f.svc.Login(dto.LoginRequestDTO{Email: resp.Email, Password: "correct horse battery"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, f.svc.VerifyEmail(dto.VerifyEmailRequestDTO{Email: resp.Email, Code: f.mailer.lastCode}))

	auth, err := f.svc.Login(dto.LoginRequestDTO{Email: resp.Email, Password: "correct horse battery"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.AccessToken)
	assert.Equal(t, resp.UserID, auth.UserID)

	_, err = f.svc.Login(dto.LoginRequestDTO{Email: resp.Email, Password: "wrong password"})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = f.svc.Login(dto.LoginRequestDTO{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestCapabilityService(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.roles[1] = []string{model.RoleLearner}
	userRepo.roles[2] = []string{model.RoleLearner, model.RoleReviewer}
	userRepo.roles[3] = []string{model.RoleAdmin}
	userRepo.roles[4] = []string{model.RoleSuperAdmin}

	caps := NewCapabilityService(userRepo)

	tests := []struct {
		userID    uint
		canReview bool
		isAdmin   bool
	}{
		{1, false, false},
		{2, true, false},
		{3, true, true},
		{4, true, true},
		{99, false, false},
	}

	for _, tt := range tests {
		canReview, err := caps.CanReview(tt.userID)
		require.NoError(t, err)
		assert.Equal(t, tt.canReview, canReview, "userID %d", tt.userID)

		isAdmin, err := caps.IsAdmin(tt.userID)
		require.NoError(t, err)
		assert.Equal(t, tt.isAdmin, isAdmin, "userID %d", tt.userID)
	}
}
