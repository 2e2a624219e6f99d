package repository

import (
	"database/sql"
	"errors"

	"coscribe/internal/document/model"
	"coscribe/pkg/logger"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("document not found")

type DocumentRepository struct {
	DB *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Create(ownerID, title string) (*model.Document, error) {
	doc := &model.Document{ID: uuid.NewString(), Title: title, Content: "", OwnerID: ownerID}
	err := r.DB.QueryRow(
		`INSERT INTO documents (id, title, content, owner_id, last_modified) VALUES ($1, $2, '', $3, NOW())
		RETURNING last_modified`,
		doc.ID, doc.Title, doc.OwnerID,
	).Scan(&doc.LastModified)
	if err != nil {
		logger.Sugar.Errorf("Failed to create document: %v", err)
		return nil, err
	}
	return doc, nil
}

func (r *DocumentRepository) Get(docID string) (*model.Document, error) {
	var doc model.Document
	err := r.DB.QueryRow(
		`SELECT id, title, content, owner_id, last_modified FROM documents WHERE id = $1`, docID,
	).Scan(&doc.ID, &doc.Title, &doc.Content, &doc.OwnerID, &doc.LastModified)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get document %s: %v", docID, err)
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) GetOwnerID(docID string) (string, error) {
	var ownerID string
	err := r.DB.QueryRow(`SELECT owner_id FROM documents WHERE id = $1`, docID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get owner ID for doc %s: %v", docID, err)
		return "", err
	}
	return ownerID, nil
}

// ApplyUpdate folds the provided fields into the document and bumps
// last_modified. A nil field is left unchanged. The single UPDATE statement
// keeps concurrent read-modify-writes on one document from interleaving.
func (r *DocumentRepository) ApplyUpdate(docID string, content, title *string) (*model.Document, error) {
	var doc model.Document
	err := r.DB.QueryRow(
		`UPDATE documents
		SET content = COALESCE($2, content), title = COALESCE($3, title), last_modified = NOW()
		WHERE id = $1
		RETURNING id, title, content, owner_id, last_modified`,
		docID, content, title,
	).Scan(&doc.ID, &doc.Title, &doc.Content, &doc.OwnerID, &doc.LastModified)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to update doc %s: %v", docID, err)
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) Delete(docID string) error {
	_, err := r.DB.Exec(`DELETE FROM documents WHERE id = $1`, docID)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete doc %s: %v", docID, err)
	}
	return err
}

func (r *DocumentRepository) ListFor(userID string) ([]model.DocumentSummary, error) {
	query := `
		SELECT id, title, last_modified, owner_id FROM documents WHERE owner_id = $1
		UNION
		SELECT d.id, d.title, d.last_modified, d.owner_id FROM documents d
		JOIN collaborators c ON d.id = c.document_id WHERE c.user_id = $1
		ORDER BY last_modified DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to list documents for user %s: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	docs := []model.DocumentSummary{}
	for rows.Next() {
		var doc model.DocumentSummary
		var ownerID string
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.LastModified, &ownerID); err != nil {
			continue
		}
		doc.OwnedByCurrentUser = ownerID == userID
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *DocumentRepository) AddCollaborator(docID, userID string) error {
	_, err := r.DB.Exec(
		`INSERT INTO collaborators (document_id, user_id) VALUES ($1, $2)
		ON CONFLICT (document_id, user_id) DO NOTHING`,
		docID, userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to add collaborator %s to doc %s: %v", userID, docID, err)
	}
	return err
}

// CheckAccess reports whether the user is the owner or a collaborator.
// Access is binary: anyone on the document may read and write all of it.
func (r *DocumentRepository) CheckAccess(docID, userID string) (bool, error) {
	var hasAccess bool
	err := r.DB.QueryRow(
		`SELECT EXISTS(
			SELECT 1 FROM documents WHERE id = $1 AND owner_id = $2
			UNION
			SELECT 1 FROM collaborators WHERE document_id = $1 AND user_id = $2
		)`, docID, userID).Scan(&hasAccess)
	if err != nil {
		logger.Sugar.Errorf("Failed to check access for user %s on doc %s: %v", userID, docID, err)
		return false, err
	}
	return hasAccess, nil
}
