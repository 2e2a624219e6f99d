package service

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"coscribe/internal/document/model"
	"coscribe/internal/document/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvictor struct {
	removed []string
}

func (f *fakeEvictor) RemoveDocument(docID string) {
	f.removed = append(f.removed, docID)
}

type fakeUsers struct {
	id  string
	err error
}

func (f fakeUsers) FindUserIDByEmail(email string) (string, error) {
	return f.id, f.err
}

func newTestService(t *testing.T, users UserFinder) (*DocumentService, sqlmock.Sqlmock, *fakeEvictor) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	evictor := &fakeEvictor{}
	svc := NewDocumentService(repository.NewDocumentRepository(db), evictor, users)
	return svc, mock, evictor
}

func strptr(s string) *string { return &s }

func TestCreateDefaultsTitle(t *testing.T) {
	svc, mock, _ := newTestService(t, fakeUsers{})

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(sqlmock.AnyArg(), "Untitled Document", "user1").
		WillReturnRows(sqlmock.NewRows([]string{"last_modified"}).AddRow(time.Now()))

	doc, err := svc.Create("user1", "")
	require.NoError(t, err)
	assert.Equal(t, "Untitled Document", doc.Title)
	assert.Equal(t, "", doc.Content)
	assert.NotEmpty(t, doc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWithoutAccessReadsAsNotFound(t *testing.T) {
	svc, mock, _ := newTestService(t, fakeUsers{})

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("doc1", "stranger").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.Get("doc1", "stranger")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateAppliesProvidedFieldsOnly(t *testing.T) {
	svc, mock, _ := newTestService(t, fakeUsers{})

	mock.ExpectQuery("SELECT owner_id").
		WithArgs("doc1").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner1"))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("doc1", "collab1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("UPDATE documents").
		WithArgs("doc1", "<p>new</p>", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "owner_id", "last_modified"}).
			AddRow("doc1", "Kept Title", "<p>new</p>", "owner1", time.Now()))

	doc, err := svc.Update("doc1", "collab1", model.UpdateDocRequest{Content: strptr("<p>new</p>")})
	require.NoError(t, err)
	assert.Equal(t, "<p>new</p>", doc.Content)
	assert.Equal(t, "Kept Title", doc.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithoutAccessIsForbidden(t *testing.T) {
	svc, mock, _ := newTestService(t, fakeUsers{})

	mock.ExpectQuery("SELECT owner_id").
		WithArgs("doc1").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner1"))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("doc1", "stranger").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.Update("doc1", "stranger", model.UpdateDocRequest{Content: strptr("x")})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateUnknownDocument(t *testing.T) {
	svc, mock, _ := newTestService(t, fakeUsers{})

	mock.ExpectQuery("SELECT owner_id").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Update("ghost", "user1", model.UpdateDocRequest{Content: strptr("x")})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteByOwner(t *testing.T) {
	svc, mock, evictor := newTestService(t, fakeUsers{})

	mock.ExpectQuery("SELECT owner_id").
		WithArgs("doc1").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner1"))
	mock.ExpectExec("DELETE FROM documents").
		WithArgs("doc1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.Delete("doc1", "owner1"))
	assert.Equal(t, []string{"doc1"}, evictor.removed, "live sessions must be evicted")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByNonOwner(t *testing.T) {
	svc, mock, evictor := newTestService(t, fakeUsers{})

	mock.ExpectQuery("SELECT owner_id").
		WithArgs("doc1").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner1"))

	err := svc.Delete("doc1", "collab1")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, evictor.removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnknownDocument(t *testing.T) {
	svc, mock, _ := newTestService(t, fakeUsers{})

	mock.ExpectQuery("SELECT owner_id").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	err := svc.Delete("ghost", "user1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestShareSuccess(t *testing.T) {
	svc, mock, _ := newTestService(t, fakeUsers{id: "bob-id"})

	mock.ExpectQuery("SELECT owner_id").
		WithArgs("doc1").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner1"))
	mock.ExpectExec("INSERT INTO collaborators").
		WithArgs("doc1", "bob-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.Share("owner1", model.ShareRequest{DocID: "doc1", Email: " bob@example.com "})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShareByNonOwner(t *testing.T) {
	svc, mock, _ := newTestService(t, fakeUsers{id: "bob-id"})

	mock.ExpectQuery("SELECT owner_id").
		WithArgs("doc1").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner1"))

	err := svc.Share("collab1", model.ShareRequest{DocID: "doc1", Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestShareWithSelf(t *testing.T) {
	svc, mock, _ := newTestService(t, fakeUsers{id: "owner1"})

	mock.ExpectQuery("SELECT owner_id").
		WithArgs("doc1").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner1"))

	err := svc.Share("owner1", model.ShareRequest{DocID: "doc1", Email: "owner@example.com"})
	assert.ErrorIs(t, err, ErrSelfShare)
}

func TestShareUnknownEmail(t *testing.T) {
	svc, mock, _ := newTestService(t, fakeUsers{err: errors.New("no rows")})

	mock.ExpectQuery("SELECT owner_id").
		WithArgs("doc1").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner1"))

	err := svc.Share("owner1", model.ShareRequest{DocID: "doc1", Email: "nobody@example.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListMarksOwnership(t *testing.T) {
	svc, mock, _ := newTestService(t, fakeUsers{})

	now := time.Now()
	mock.ExpectQuery("SELECT id, title, last_modified, owner_id FROM documents").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "last_modified", "owner_id"}).
			AddRow("doc1", "Mine", now, "alice").
			AddRow("doc2", "Shared with me", now, "bob"))

	docs, err := svc.List("alice")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.True(t, docs[0].OwnedByCurrentUser)
	assert.False(t, docs[1].OwnedByCurrentUser)
}
