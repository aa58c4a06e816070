package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/database"
	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// The pool is limited to one connection so every query sees the same database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// CreateTestUser creates a user with a unique e-mail address
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email: fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		Name:  name,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestForm creates a published, active form owned by creator
func CreateTestForm(t *testing.T, db *gorm.DB, creator *domain.User, title string) *domain.Form {
	t.Helper()
	form := &domain.Form{
		Title:       title,
		CreatorID:   creator.ID,
		IsActive:    true,
		IsPublished: true,
		PublicID:    uuid.NewString()[:12],
		Settings:    domain.DefaultFormSettings(),
	}
	require.NoError(t, db.Create(form).Error)
	return form
}

// CreateTestQuestion appends a question to form
func CreateTestQuestion(t *testing.T, db *gorm.DB, form *domain.Form, q domain.Question) *domain.Question {
	t.Helper()
	q.FormID = form.ID
	if q.Label == "" {
		q.Label = string(q.Type)
	}
	require.NoError(t, db.Create(&q).Error)
	return &q
}

// CreateTestResponse stores a response with the given answers
func CreateTestResponse(t *testing.T, db *gorm.DB, form *domain.Form, answers domain.JSONMap) *domain.Response {
	t.Helper()
	resp := &domain.Response{
		FormID:    form.ID,
		Answers:   answers,
		Metadata:  domain.JSONMap{"submittedAt": time.Now().UTC().Format(time.RFC3339)},
		IPAddress: "127.0.0.1",
	}
	require.NoError(t, db.Create(resp).Error)
	return resp
}

// Options builds a choice list whose labels double as values
func Options(labels ...string) domain.QuestionOptions {
	out := make(domain.QuestionOptions, 0, len(labels))
	for i, l := range labels {
		out = append(out, domain.QuestionOption{ID: fmt.Sprintf("opt-%d", i+1), Label: l, Value: l})
	}
	return out
}

// ContextFor returns a context authenticated as user
func ContextFor(user *domain.User) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      user.ID,
		DisplayName: user.Name,
		Email:       user.Email,
	})
}

// SystemContext returns a context authenticated with the API key
func SystemContext() context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      auth.SystemUserID,
		DisplayName: "System",
		IsSystem:    true,
	})
}
