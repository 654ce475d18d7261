package handlers_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"DocKeeper/internal/config"
	"DocKeeper/internal/handlers"
	"DocKeeper/internal/middleware"
	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"DocKeeper/internal/service"
	"DocKeeper/internal/storage"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// webEnv — полный HTTP-стек поверх in-memory SQLite и временного каталога.
type webEnv struct {
	router http.Handler
	cfg    *config.Config
	users  repo.UserRepository
}

func newWebEnv(t *testing.T) *webEnv {
	t.Helper()

	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file::memory:"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	files, err := storage.NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("disk storage: %v", err)
	}

	cfg := &config.Config{AuthSecret: "test-secret", MaxUploadMB: 8}
	logger := zap.NewNop().Sugar()

	users := repo.NewUserRepository(db)
	cats := repo.NewCategoryRepository(db)
	docs := repo.NewDocumentRepository(db)
	shares := repo.NewShareRepository(db)
	comments := repo.NewCommentRepository(db)
	notifs := repo.NewNotificationRepository(db)

	docSvc := service.NewDocumentService(docs, users, notifs, files, logger)
	shareSvc := service.NewShareService(shares, docs, notifs, files, logger)

	h := handlers.NewHandler(handlers.Services{
		Users:         service.NewUserService(users),
		Documents:     docSvc,
		Categories:    service.NewCategoryService(cats, users, logger),
		Shares:        shareSvc,
		Comments:      service.NewCommentService(comments, docs, shareSvc, notifs, logger),
		Notifications: service.NewNotificationService(notifs),
		Analytics:     service.NewAnalyticsService(docs, files, logger),
		Transfer:      service.NewTransferService(docSvc, files, logger),
	}, logger, cfg)

	return &webEnv{router: h.Router, cfg: cfg, users: users}
}

// register создаёт пользователя через API и возвращает его cookies сессии.
func (e *webEnv) register(t *testing.T, login string, role model.Role) (int64, []*http.Cookie) {
	t.Helper()

	body := `{"login":"` + login + `","password":"secret"}`
	rr := e.do(t, http.MethodPost, "/api/user/register", strings.NewReader(body), nil, "application/json")
	assert.Equal(t, http.StatusCreated, rr.Code)

	u, err := e.users.GetUserByLogin(context.Background(), login)
	assert.NoError(t, err)
	if role != model.RoleMember {
		assert.NoError(t, e.users.SetRole(context.Background(), u.ID, role))
	}
	return u.ID, rr.Result().Cookies()
}

func (e *webEnv) do(t *testing.T, method, target string, body *strings.Reader, cookies []*http.Cookie, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// uploadDocument — multipart-создание документа через API.
func (e *webEnv) uploadDocument(t *testing.T, cookies []*http.Cookie, title, fileName, content string, extra map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	assert.NoError(t, mw.WriteField("title", title))
	for k, v := range extra {
		assert.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", fileName)
	assert.NoError(t, err)
	_, err = fw.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}
