package repo

import (
	"context"
	"testing"
	"time"

	"DocKeeper/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, r UserRepository, login string) *model.User {
	t.Helper()
	u, err := r.CreateUser(context.Background(), &model.User{Login: login, Password: "x"})
	assert.NoError(t, err)
	return u
}

func TestDocumentRepository_CreateWithVersion(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	docs := NewDocumentRepository(db)
	ctx := context.Background()

	u := createTestUser(t, users, "owner")

	doc := &model.Document{Title: "Doc", FilePath: "documents/a.pdf", OwnerID: u.ID, CurrentVersion: 1}
	ver := &model.Version{FilePath: "documents/a.pdf", VersionNumber: 1, CreatedByID: u.ID, Comment: "Initial version"}
	assert.NoError(t, docs.CreateWithVersion(ctx, doc, ver))

	got, err := docs.GetByID(ctx, doc.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), got.CurrentVersion)
	assert.Len(t, got.Versions, 1)
	assert.Equal(t, "Initial version", got.Versions[0].Comment)
}

func TestDocumentRepository_AddVersionBumpsCounter(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	docs := NewDocumentRepository(db)
	ctx := context.Background()

	u := createTestUser(t, users, "owner")
	doc := &model.Document{Title: "Doc", FilePath: "documents/v1.pdf", OwnerID: u.ID, CurrentVersion: 1}
	assert.NoError(t, docs.CreateWithVersion(ctx, doc,
		&model.Version{FilePath: "documents/v1.pdf", VersionNumber: 1, CreatedByID: u.ID}))

	assert.NoError(t, docs.AddVersion(ctx, &model.Version{
		DocumentID: doc.ID, FilePath: "documents/v2.pdf", VersionNumber: 2, CreatedByID: u.ID, Comment: "fix",
	}))

	got, err := docs.GetByID(ctx, doc.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), got.CurrentVersion)
	assert.Len(t, got.Versions, 2)

	// версии отдаются новыми первыми
	assert.Equal(t, int64(2), got.Versions[0].VersionNumber)
	assert.Equal(t, "fix", got.Versions[0].Comment)
	assert.Equal(t, "documents/v2.pdf", got.CurrentFilePath())
}

func TestDocumentRepository_ListVisibility(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	docs := NewDocumentRepository(db)
	cats := NewCategoryRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, users, "owner")
	other := createTestUser(t, users, "other")

	reports := &model.Category{Name: "Reports"}
	assert.NoError(t, cats.Create(ctx, reports))

	add := func(title string, ownerID int64, private bool, catID *int64) *model.Document {
		d := &model.Document{Title: title, FilePath: "documents/x.pdf", OwnerID: ownerID, IsPrivate: private, CategoryID: catID, CurrentVersion: 1}
		assert.NoError(t, docs.CreateWithVersion(ctx, d,
			&model.Version{FilePath: "documents/x.pdf", VersionNumber: 1, CreatedByID: ownerID}))
		return d
	}

	add("Public report", owner.ID, false, &reports.ID)
	add("Own private", owner.ID, true, nil)
	hidden := add("Foreign private", other.ID, true, nil)
	archived := add("Archived", owner.ID, false, nil)
	now := time.Now().UTC()
	assert.NoError(t, docs.SetArchived(ctx, archived.ID, true, &now))

	// владелец видит свои (включая приватные) и чужие публичные; архив — нет
	list, err := docs.List(ctx, ListFilter{ViewerID: owner.ID})
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	for _, d := range list {
		assert.NotEqual(t, hidden.ID, d.ID)
		assert.NotEqual(t, archived.ID, d.ID)
	}

	// поиск по подстроке
	list, err = docs.List(ctx, ListFilter{ViewerID: owner.ID, Query: "report"})
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Public report", list[0].Title)

	// фильтр по категории
	list, err = docs.List(ctx, ListFilter{ViewerID: owner.ID, CategoryName: "Reports"})
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	// архивные — отдельным списком, только свои
	arch, err := docs.ListArchived(ctx, owner.ID)
	assert.NoError(t, err)
	assert.Len(t, arch, 1)
	assert.Equal(t, archived.ID, arch[0].ID)

	arch, err = docs.ListArchived(ctx, other.ID)
	assert.NoError(t, err)
	assert.Len(t, arch, 0)
}

func TestDocumentRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	docs := NewDocumentRepository(db)
	shares := NewShareRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	u := createTestUser(t, users, "owner")
	doc := &model.Document{Title: "Doc", FilePath: "documents/a.pdf", OwnerID: u.ID, CurrentVersion: 1}
	assert.NoError(t, docs.CreateWithVersion(ctx, doc,
		&model.Version{FilePath: "documents/a.pdf", VersionNumber: 1, CreatedByID: u.ID}))

	assert.NoError(t, shares.Create(ctx, &model.Share{DocumentID: doc.ID, Token: "tok-1", CreatedByID: u.ID, Active: true}))
	assert.NoError(t, comments.Create(ctx, &model.Comment{DocumentID: doc.ID, AuthorID: u.ID, Body: "hi"}))

	assert.NoError(t, docs.Delete(ctx, doc.ID))

	_, err := docs.GetByID(ctx, doc.ID)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	var versions int64
	db.Model(&model.Version{}).Where("document_id = ?", doc.ID).Count(&versions)
	assert.Zero(t, versions)

	_, err = shares.GetByToken(ctx, "tok-1")
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	list, err := comments.ListByDocument(ctx, doc.ID)
	assert.NoError(t, err)
	assert.Len(t, list, 0)
}
