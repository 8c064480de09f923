package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/melhem/content-hub/internal/config"
	"github.com/melhem/content-hub/internal/domain"
	"github.com/melhem/content-hub/internal/repository"
	"github.com/melhem/content-hub/internal/store"
	apperrors "github.com/melhem/content-hub/pkg/util"
)

type fakeAccountRepo struct {
	accounts map[string]*domain.Account
	seq      int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*domain.Account{}}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.seq++
	account.ID = fmt.Sprintf("acc-%d", r.seq)
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *account
	return &cp, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			cp := *account
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeResetRepo struct {
	tokens map[string]*repository.PasswordResetToken
	seq    int
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: map[string]*repository.PasswordResetToken{}}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.seq++
	token.ID = fmt.Sprintf("rst-%d", r.seq)
	token.CreatedAt = time.Now()
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	for _, token := range r.tokens {
		if token.Token == tokenStr {
			cp := *token
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	token, ok := r.tokens[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	token.UsedAt = &now
	return nil
}

func authFixture(t *testing.T) (*AuthService, *store.Store, *fakeResetRepo) {
	t.Helper()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   60,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              4,
	}}
	profiles := store.New(store.Options{})
	resets := newFakeResetRepo()
	svc := NewAuthService(cfg, AuthDependencies{
		AccountRepo:       newFakeAccountRepo(),
		PasswordResetRepo: resets,
		Profiles:          profiles,
	})
	return svc, profiles, resets
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Name:      "Dr. Leyla Aliyeva",
		Email:     "Leyla@Hospital.Az",
		Password:  "s3cret-pass",
		Specialty: "Gynecologic surgery",
		Whatsapp:  "+994501234567",
	}
}

func TestRegisterDoctorMirrorsProfile(t *testing.T) {
	svc, profiles, _ := authFixture(t)

	account, token, exp, err := svc.RegisterDoctor(context.Background(), validRegistration())
	require.NoError(t, err)
	require.NotEmpty(t, account.ID)
	require.Equal(t, domain.RoleDoctor, account.Role)
	require.Equal(t, "leyla@hospital.az", account.Email)
	require.NotEmpty(t, token)
	require.True(t, exp.After(time.Now()))

	profile, ok := profiles.UserByID(account.ID)
	require.True(t, ok)
	require.Equal(t, account.Name, profile.Name)
	require.Equal(t, domain.RoleDoctor, profile.Role)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, account.ID, claims.AccountID)
}

func TestRegisterDoctorValidation(t *testing.T) {
	svc, _, _ := authFixture(t)

	missing := validRegistration()
	missing.Whatsapp = ""
	_, _, _, err := svc.RegisterDoctor(context.Background(), missing)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	short := validRegistration()
	short.Password = "abc"
	_, _, _, err = svc.RegisterDoctor(context.Background(), short)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestRegisterDoctorDuplicateEmail(t *testing.T) {
	svc, _, _ := authFixture(t)
	_, _, _, err := svc.RegisterDoctor(context.Background(), validRegistration())
	require.NoError(t, err)

	_, _, _, err = svc.RegisterDoctor(context.Background(), validRegistration())
	require.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestLogin(t *testing.T) {
	svc, _, _ := authFixture(t)
	registered, _, _, err := svc.RegisterDoctor(context.Background(), validRegistration())
	require.NoError(t, err)

	account, token, _, err := svc.Login(context.Background(), "leyla@hospital.az", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, registered.ID, account.ID)
	require.NotEmpty(t, token)

	_, _, _, err = svc.Login(context.Background(), "leyla@hospital.az", "wrong")
	require.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	_, _, _, err = svc.Login(context.Background(), "nobody@hospital.az", "s3cret-pass")
	require.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestUpdateProfileMirrorsStoreAndKeepsCasesCount(t *testing.T) {
	svc, profiles, _ := authFixture(t)
	account, _, _, err := svc.RegisterDoctor(context.Background(), validRegistration())
	require.NoError(t, err)

	// submitting a case bumps the profile counter
	require.NoError(t, profiles.AddCase(domain.ClinicalCase{
		ID: "c1", DoctorID: account.ID, DoctorName: account.Name, Title: "X",
	}))

	updated, err := svc.UpdateProfile(context.Background(), account.ID, ProfileInput{
		Name:      "Dr. L. Aliyeva",
		Specialty: "Oncologic surgery",
		Whatsapp:  "+994501234567",
	})
	require.NoError(t, err)
	require.Equal(t, "Oncologic surgery", updated.Specialty)

	profile, ok := profiles.UserByID(account.ID)
	require.True(t, ok)
	require.Equal(t, "Dr. L. Aliyeva", profile.Name)
	require.Equal(t, 1, profile.CasesCount)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := authFixture(t)
	account, _, _, err := svc.RegisterDoctor(context.Background(), validRegistration())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), account.ID, "wrong", "another-pass")
	require.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	require.NoError(t, svc.ChangePassword(context.Background(), account.ID, "s3cret-pass", "another-pass"))

	_, _, _, err = svc.Login(context.Background(), "leyla@hospital.az", "another-pass")
	require.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, _ := authFixture(t)
	_, _, _, err := svc.RegisterDoctor(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.RequestPasswordReset(context.Background(), "nobody@hospital.az")
	require.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	token, err := svc.RequestPasswordReset(context.Background(), "leyla@hospital.az")
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)

	require.NoError(t, svc.ConfirmPasswordReset(context.Background(), token.Token, "fresh-pass"))

	_, _, _, err = svc.Login(context.Background(), "leyla@hospital.az", "fresh-pass")
	require.NoError(t, err)

	// a token is single-use
	err = svc.ConfirmPasswordReset(context.Background(), token.Token, "again-pass")
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}
