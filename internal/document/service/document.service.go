package service

import (
	"errors"
	"strings"

	"coscribe/internal/document/model"
	"coscribe/internal/document/repository"
)

var (
	ErrForbidden    = errors.New("forbidden")
	ErrSelfShare    = errors.New("cannot share document with yourself")
	ErrUserNotFound = errors.New("user not found with that email")
)

// Evictor disconnects any live editing sessions bound to a document.
// The synchronization hub implements it; deleting a document must not
// leave channels broadcasting into a record that no longer exists.
type Evictor interface {
	RemoveDocument(docID string)
}

// UserFinder resolves a collaborator's email to an identity for sharing.
type UserFinder interface {
	FindUserIDByEmail(email string) (string, error)
}

type DocumentService struct {
	Repo  *repository.DocumentRepository
	Hub   Evictor
	Users UserFinder
}

func NewDocumentService(repo *repository.DocumentRepository, hub Evictor, users UserFinder) *DocumentService {
	return &DocumentService{Repo: repo, Hub: hub, Users: users}
}

func (s *DocumentService) Create(userID, title string) (*model.Document, error) {
	if title == "" {
		title = "Untitled Document"
	}
	return s.Repo.Create(userID, title)
}

// Get returns the document if the caller may see it. A document the caller
// has no access to is indistinguishable from one that does not exist.
func (s *DocumentService) Get(docID, userID string) (*model.Document, error) {
	hasAccess, err := s.Repo.CheckAccess(docID, userID)
	if err != nil {
		return nil, err
	}
	if !hasAccess {
		return nil, repository.ErrNotFound
	}
	return s.Repo.Get(docID)
}

func (s *DocumentService) Update(docID, userID string, req model.UpdateDocRequest) (*model.Document, error) {
	if _, err := s.Repo.GetOwnerID(docID); err != nil {
		return nil, err
	}
	hasAccess, err := s.Repo.CheckAccess(docID, userID)
	if err != nil {
		return nil, err
	}
	if !hasAccess {
		return nil, ErrForbidden
	}
	return s.Repo.ApplyUpdate(docID, req.Content, req.Title)
}

func (s *DocumentService) Delete(docID, userID string) error {
	ownerID, err := s.Repo.GetOwnerID(docID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}

	if err := s.Repo.Delete(docID); err != nil {
		return err
	}
	if s.Hub != nil {
		s.Hub.RemoveDocument(docID)
	}
	return nil
}

func (s *DocumentService) List(userID string) ([]model.DocumentSummary, error) {
	return s.Repo.ListFor(userID)
}

// Share grants an identity, looked up by email, read+write access to the
// document. Only the owner may share, and not with themselves.
func (s *DocumentService) Share(userID string, req model.ShareRequest) error {
	ownerID, err := s.Repo.GetOwnerID(req.DocID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}

	targetID, err := s.Users.FindUserIDByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		return ErrUserNotFound
	}
	if targetID == userID {
		return ErrSelfShare
	}

	return s.Repo.AddCollaborator(req.DocID, targetID)
}
