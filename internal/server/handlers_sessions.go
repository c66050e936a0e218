package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/folio-builder/internal/editor"
	"github.com/jonathan/folio-builder/internal/importer"
	"github.com/jonathan/folio-builder/internal/mutation"
	"github.com/jonathan/folio-builder/internal/rendering"
	"github.com/jonathan/folio-builder/internal/types"
)

// maxOpsPerBatch bounds one ops request.
const maxOpsPerBatch = 200

type applyOpsRequest struct {
	Ops []mutation.Command `json:"ops"`
}

type applyOpsResponse struct {
	Results []OpResult   `json:"results"`
	State   SessionState `json:"state"`
}

type historyResponse struct {
	Changed bool         `json:"changed"`
	State   SessionState `json:"state"`
}

// sessionFor resolves the {id} session of the authenticated user or writes
// the error response.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return nil, false
	}
	sess, err := s.sessions.Get(userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req types.OpenSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, extractValidationErrors(err))
		return
	}

	sess, err := s.sessions.Open(r.Context(), userID, req.Kind, req.DocumentID)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, sess.State())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, sess.State())
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Close(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApplyOps(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	var req applyOpsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	switch {
	case len(req.Ops) == 0:
		writeError(w, &ErrValidation{Field: "ops", Message: "at least one operation is required"})
		return
	case len(req.Ops) > maxOpsPerBatch:
		writeError(w, &ErrValidation{Field: "ops", Message: fmt.Sprintf("at most %d operations per request", maxOpsPerBatch)})
		return
	}

	results := sess.Apply(req.Ops)
	jsonResponse(w, http.StatusOK, applyOpsResponse{Results: results, State: sess.State()})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	changed := sess.Undo()
	jsonResponse(w, http.StatusOK, historyResponse{Changed: changed, State: sess.State()})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	changed := sess.Redo()
	jsonResponse(w, http.StatusOK, historyResponse{Changed: changed, State: sess.State()})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	if err := sess.Save(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, sess.State())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, importer.MaxSize))
	if err != nil {
		errorResponse(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("document exceeds %d bytes", importer.MaxSize))
		return
	}
	if _, err := sess.Import(data); err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, sess.State())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	var patch editor.SettingsPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	settings, err := sess.UpdateSettings(patch)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, settings)
}

// previewOptions are the overrides a preview accepts: ?template= for trying
// another resume layout and ?page= for another portfolio page. The colour
// scheme comes from the Sec-CH-Prefers-Color-Scheme hint, ?scheme=light|dark
// or ?dark=true|false, later ones winning. None of them touch the document.
type previewOptions struct {
	template string
	page     string
	dark     bool
}

func parsePreviewOptions(r *http.Request, settings editor.Settings) (previewOptions, error) {
	q := r.URL.Query()
	opts := previewOptions{
		template: q.Get("template"),
		page:     q.Get("page"),
		dark:     settings.PrefersDark,
	}
	if opts.page == "" {
		opts.page = settings.ActivePage
	}
	if opts.template != "" && !rendering.HasTemplate(opts.template) {
		return opts, &ErrValidation{Field: "template", Message: "unknown template " + opts.template}
	}
	if hint := strings.Trim(r.Header.Get("Sec-CH-Prefers-Color-Scheme"), `"`); hint != "" {
		opts.dark = hint == "dark"
	}
	switch q.Get("scheme") {
	case "":
	case "dark":
		opts.dark = true
	case "light":
		opts.dark = false
	default:
		return opts, &ErrValidation{Field: "scheme", Message: "must be light or dark"}
	}
	if v := q.Get("dark"); v != "" {
		dark, err := strconv.ParseBool(v)
		if err != nil {
			return opts, &ErrValidation{Field: "dark", Message: "must be true or false"}
		}
		opts.dark = dark
	}
	return opts, nil
}

// renderPreview projects the session's current snapshot.
func (s *Server) renderPreview(sess *Session, opts previewOptions) (string, error) {
	doc := sess.Snapshot()
	var buf bytes.Buffer
	var err error
	switch {
	case doc.Kind == types.KindPortfolio:
		err = s.renderer.RenderPortfolioPage(&buf, doc, opts.page, opts.dark)
	case opts.template != "":
		err = s.renderer.RenderResume(&buf, doc, opts.template, doc.Style.Resolved())
	default:
		err = s.renderer.Render(&buf, doc, opts.dark)
	}
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	opts, err := parsePreviewOptions(r, sess.Settings())
	if err != nil {
		writeError(w, err)
		return
	}
	html, err := s.renderPreview(sess, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, html)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	if s.printer == nil {
		errorResponse(w, http.StatusServiceUnavailable, "PDF export is not configured")
		return
	}
	opts, err := parsePreviewOptions(r, sess.Settings())
	if err != nil {
		writeError(w, err)
		return
	}
	html, err := s.renderPreview(sess, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	pdf, err := s.printer.RenderHTMLToPDF(r.Context(), html)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(sess.Snapshot(), "pdf"))
	_, _ = w.Write(pdf)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	doc := sess.Snapshot()
	data, err := importer.Export(doc)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment(doc, "json"))
	_, _ = w.Write(data)
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// attachment builds a Content-Disposition header named after the document.
func attachment(doc *types.Document, ext string) string {
	name := doc.PersonalInfo.FullName
	if name == "" {
		name = doc.Name
	}
	base := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if base == "" {
		base = string(doc.Kind)
	}
	return fmt.Sprintf(`attachment; filename="%s.%s"`, base, ext)
}
