package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/http/handler"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/formlytic/formlytic-api/internal/service"
	"github.com/formlytic/formlytic-api/internal/storage"
	"github.com/formlytic/formlytic-api/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testBaseURL = "https://forms.example.com"

var testAuthConfig = &config.AuthConfig{
	JWTSecret:  "handler-test-secret-with-enough-length",
	Issuer:     "formlytic-test",
	Audience:   "formlytic-test-api",
	TokenTTL:   60,
	BcryptCost: bcrypt.MinCost,
}

var testBilling = config.BillingConfig{
	Currency:                  "INR",
	DefaultPurchaseAmount:     10,
	DefaultSubscriptionAmount: 300,
	SubscriptionMonths:        1,
}

type testEnv struct {
	db        *gorm.DB
	auth      *handler.AuthHandler
	forms     *handler.FormHandler
	questions *handler.QuestionHandler
	responses *handler.ResponseHandler
	files     *handler.FileHandler
	analytics *handler.AnalyticsHandler
	quizzes   *handler.QuizHandler
	billing   *handler.BillingHandler
	audit     *handler.AuditHandler
	health    *handler.HealthHandler
}

func newTestEnv(t *testing.T, maxUploadBytes int64) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	formRepo := repository.NewFormRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	fileRepo := repository.NewFileRepository(db)

	authSvc := service.NewAuthService(userRepo, auth.NewTokenIssuer(testAuthConfig), bcrypt.MinCost, logger)
	formSvc := service.NewFormService(formRepo, questionRepo, fileRepo, store, testBaseURL, logger)
	questionSvc := service.NewQuestionService(formRepo, questionRepo, logger)
	responseSvc := service.NewResponseService(formRepo, questionRepo, responseRepo, userRepo, nil, testBaseURL, logger)
	fileSvc := service.NewFileService(formRepo, questionRepo, fileRepo, store, maxUploadBytes, nil, logger)
	analyticsSvc := service.NewAnalyticsService(formRepo, questionRepo, responseRepo, logger)
	exportSvc := service.NewExportService(formRepo, questionRepo, responseRepo, logger)
	quizSvc := service.NewQuizService(formRepo, questionRepo, responseRepo, testBaseURL, logger)
	purchaseSvc := service.NewPurchaseService(repository.NewPurchaseRepository(db), formRepo, testBilling, logger)
	subscriptionSvc := service.NewSubscriptionService(repository.NewSubscriptionRepository(db), testBilling, logger)
	auditSvc := service.NewAuditLogService(repository.NewAuditLogRepository(db), logger)

	return &testEnv{
		db:        db,
		auth:      handler.NewAuthHandler(authSvc, logger),
		forms:     handler.NewFormHandler(formSvc, logger),
		questions: handler.NewQuestionHandler(questionSvc, logger),
		responses: handler.NewResponseHandler(responseSvc, fileSvc, logger),
		files:     handler.NewFileHandler(fileSvc, logger),
		analytics: handler.NewAnalyticsHandler(analyticsSvc, exportSvc, logger),
		quizzes:   handler.NewQuizHandler(quizSvc, logger),
		billing:   handler.NewBillingHandler(purchaseSvc, subscriptionSvc, logger),
		audit:     handler.NewAuditHandler(auditSvc, logger),
		health:    handler.NewHealthHandler(db, logger),
	}
}

// newRequest builds a request with an optional JSON body, caller context and chi URL params
func newRequest(t *testing.T, ctx context.Context, method, target string, body interface{}, params map[string]string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func newOwner(t *testing.T, db *gorm.DB) (*domain.User, context.Context) {
	t.Helper()
	user := testutil.CreateTestUser(t, db, "Owner")
	return user, testutil.ContextFor(user)
}
