package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/rendering"
	"github.com/jonathan/folio-builder/internal/server/middleware"
	"github.com/jonathan/folio-builder/internal/types"
)

// requireUser returns the authenticated user or answers 401.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, middleware.UnauthorizedMessage)
		return uuid.Nil, false
	}
	return userID, true
}

// handleListDocuments lists the user's documents, optionally of one kind.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	kind := types.Kind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		writeError(w, &ErrValidation{Field: "kind", Message: "must be resume or portfolio"})
		return
	}

	docs, err := s.docs.List(r.Context(), userID, kind)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"documents": docs, "count": len(docs)})
}

// handleCreateDocument stores a new empty or sample-seeded document.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req types.CreateDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, extractValidationErrors(err))
		return
	}
	if req.Template != "" && req.Kind == types.KindResume && !rendering.HasTemplate(req.Template) {
		writeError(w, &ErrValidation{Field: "template", Message: "unknown template " + req.Template})
		return
	}

	now := time.Now().UTC()
	doc := types.NewDocument(req.Kind, "", now)
	if req.Sample {
		doc = types.SampleDocument(req.Kind, now)
	}
	if req.Name != "" {
		doc.Name = req.Name
	}
	if req.Template != "" {
		doc.Template = req.Template
	}

	saved, err := s.docs.Save(r.Context(), userID, doc)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, saved)
}

// handleDeleteDocument removes a stored document. Sessions already open on
// it keep their snapshot; their next save reports the document missing.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := s.docs.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
