package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"coscribe/internal/document/model"
	"coscribe/internal/document/repository"
	"coscribe/internal/document/service"
	"coscribe/middleware"
	"coscribe/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type DocumentHandler struct {
	Service *service.DocumentService
}

func NewDocumentHandler(s *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{Service: s}
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req model.CreateDocRequest
	_ = json.NewDecoder(r.Body).Decode(&req) // Ignore error, default title below

	doc, err := h.Service.Create(userID, req.Title)
	if err != nil {
		logger.Sugar.Errorf("Failed to create document: %v", err)
		http.Error(w, "Failed to create document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "documentID")
	userID := middleware.UserID(r)

	doc, err := h.Service.Get(docID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Document not found", http.StatusNotFound)
			return
		}
		logger.Sugar.Errorf("Failed to fetch document %s: %v", docID, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	docs, err := h.Service.List(userID)
	if err != nil {
		logger.Sugar.Errorf("Error fetching documents: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}

func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "documentID")
	userID := middleware.UserID(r)

	var req model.UpdateDocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	doc, err := h.Service.Update(docID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			http.Error(w, "Document not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			logger.Sugar.Errorf("Failed to update document %s: %v", docID, err)
			http.Error(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "documentID")
	userID := middleware.UserID(r)

	if err := h.Service.Delete(docID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			http.Error(w, "Document not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			http.Error(w, "Forbidden: only the owner can delete", http.StatusForbidden)
		default:
			logger.Sugar.Errorf("Failed to delete document %s: %v", docID, err)
			http.Error(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DocumentHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req model.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DocID == "" || req.Email == "" {
		writeStatus(w, http.StatusBadRequest, "error", "document_id and email are required")
		return
	}

	if err := h.Service.Share(userID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfShare):
			writeStatus(w, http.StatusBadRequest, "error", err.Error())
		case errors.Is(err, service.ErrForbidden):
			writeStatus(w, http.StatusForbidden, "error", "only the owner can share this document")
		case errors.Is(err, repository.ErrNotFound):
			writeStatus(w, http.StatusNotFound, "error", "document not found")
		case errors.Is(err, service.ErrUserNotFound):
			writeStatus(w, http.StatusNotFound, "error", err.Error())
		default:
			logger.Sugar.Errorf("Failed to share document %s: %v", req.DocID, err)
			writeStatus(w, http.StatusInternalServerError, "error", "failed to share document")
		}
		return
	}

	writeStatus(w, http.StatusOK, "success", "")
}

func writeStatus(w http.ResponseWriter, code int, status, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.StatusResponse{Status: status, Detail: detail})
}
