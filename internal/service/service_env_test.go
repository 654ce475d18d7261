package service

import (
	"context"
	"strings"
	"testing"

	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"DocKeeper/internal/storage"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// testEnv — сервисный слой поверх реальных репозиториев (in-memory SQLite)
// и дискового хранилища во временном каталоге.
type testEnv struct {
	db    *gorm.DB
	files *storage.Disk

	users    repo.UserRepository
	cats     repo.CategoryRepository
	docs     repo.DocumentRepository
	shares   repo.ShareRepository
	comments repo.CommentRepository
	notifs   repo.NotificationRepository

	userSvc      *UserService
	docSvc       *DocumentService
	catSvc       *CategoryService
	shareSvc     *ShareService
	commentSvc   *CommentService
	notifSvc     *NotificationService
	analyticsSvc *AnalyticsService
	transferSvc  *TransferService
}

func newTestEnv(t *testing.T) *testEnv {
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

	logger := zap.NewNop().Sugar()
	env := &testEnv{
		db:       db,
		files:    files,
		users:    repo.NewUserRepository(db),
		cats:     repo.NewCategoryRepository(db),
		docs:     repo.NewDocumentRepository(db),
		shares:   repo.NewShareRepository(db),
		comments: repo.NewCommentRepository(db),
		notifs:   repo.NewNotificationRepository(db),
	}

	env.userSvc = NewUserService(env.users)
	env.docSvc = NewDocumentService(env.docs, env.users, env.notifs, files, logger)
	env.catSvc = NewCategoryService(env.cats, env.users, logger)
	env.shareSvc = NewShareService(env.shares, env.docs, env.notifs, files, logger)
	env.commentSvc = NewCommentService(env.comments, env.docs, env.shareSvc, env.notifs, logger)
	env.notifSvc = NewNotificationService(env.notifs)
	env.analyticsSvc = NewAnalyticsService(env.docs, files, logger)
	env.transferSvc = NewTransferService(env.docSvc, files, logger)
	return env
}

func (e *testEnv) addUser(t *testing.T, login string, role model.Role) *model.User {
	t.Helper()
	u, err := e.users.CreateUser(context.Background(), &model.User{Login: login, Password: "hash"})
	assert.NoError(t, err)
	if role != model.RoleMember {
		assert.NoError(t, e.users.SetRole(context.Background(), u.ID, role))
	}
	return u
}

func (e *testEnv) uploadDoc(t *testing.T, ownerID int64, title, fileName, content string) *model.Document {
	t.Helper()
	doc, err := e.docSvc.Upload(context.Background(), ownerID, UploadInput{
		Title:    title,
		FileName: fileName,
		File:     strings.NewReader(content),
	})
	assert.NoError(t, err)
	return doc
}
