package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/formlytic/formlytic-api/internal/service"
	"github.com/formlytic/formlytic-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var testAuthConfig = &config.AuthConfig{
	JWTSecret:  "test-secret-with-enough-length-123",
	Issuer:     "formlytic-test",
	Audience:   "formlytic-test-api",
	TokenTTL:   60,
	BcryptCost: bcrypt.MinCost,
}

func createAuthService(db *gorm.DB) *service.AuthService {
	return service.NewAuthService(
		repository.NewUserRepository(db),
		auth.NewTokenIssuer(testAuthConfig),
		bcrypt.MinCost,
		zap.NewNop(),
	)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &domain.RegisterRequest{Email: " Ann@Example.com ", Password: "s3cret-pass", Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", registered.User.Email)
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.NotEmpty(t, registered.AccessToken)

	userCtx, err := auth.NewJWTValidator(testAuthConfig).ValidateToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userCtx.UserID)

	_, err = svc.Register(ctx, &domain.RegisterRequest{Email: "ann@example.com", Password: "another-pass"})
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	loggedIn, err := svc.Login(ctx, &domain.LoginRequest{Email: "ANN@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	var user domain.User
	require.NoError(t, db.First(&user, "id = ?", registered.User.ID).Error)
	assert.NotNil(t, user.LastLoginAt)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, &domain.RegisterRequest{Email: "ann@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	// accounts created elsewhere may have no password
	noPassword := testutil.CreateTestUser(t, db, "Federated")

	cases := []domain.LoginRequest{
		{Email: "ann@example.com", Password: "wrong-pass"},
		{Email: "nobody@example.com", Password: "s3cret-pass"},
		{Email: noPassword.Email, Password: "anything"},
	}
	for _, c := range cases {
		_, err := svc.Login(ctx, &c)
		assert.ErrorIs(t, err, service.ErrInvalidCredentials, c.Email)
	}
}

func TestAuthService_Me(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(db)
	user := testutil.CreateTestUser(t, db, "Ann")

	me, err := svc.Me(testutil.ContextFor(user))
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)

	_, err = svc.Me(testutil.SystemContext())
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

// insertBeforeCreate registers a create callback that runs stmt once, inside
// the insert's transaction, the first time a T is created.
func insertBeforeCreate[T any](t *testing.T, db *gorm.DB, stmt string, args ...interface{}) {
	t.Helper()
	var once sync.Once
	err := db.Callback().Create().Before("gorm:create").Register("test:competing_insert", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*T); !ok {
			return
		}
		once.Do(func() {
			_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context, stmt, args...)
			require.NoError(t, err)
		})
	})
	require.NoError(t, err)
}

func TestAuthService_Register_LosesRaceToSameEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(db)
	now := time.Now().UTC()

	// Another registration commits between the e-mail check and the insert
	insertBeforeCreate[domain.User](t, db,
		"INSERT INTO users (id, email, created_at, updated_at) VALUES (?, ?, ?, ?)",
		uuid.NewString(), "race@example.com", now, now)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email:    "race@example.com",
		Password: "long-enough-password",
		Name:     "Racer",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}
