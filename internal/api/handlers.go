package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mkraev/worklog/internal/apperr"
	"github.com/mkraev/worklog/internal/document"
	"github.com/mkraev/worklog/internal/sse"
	"github.com/mkraev/worklog/internal/workspace"
)

const maxBodyBytes = 10 << 20

// Handler holds API route handlers.
type Handler struct {
	svc    *workspace.Service
	broker *sse.Broker
}

// NewHandler creates a new Handler. broker may be nil; events are then
// not published.
func NewHandler(svc *workspace.Service, broker *sse.Broker) *Handler {
	return &Handler{svc: svc, broker: broker}
}

// docPath extracts the record path from the URL (everything after
// /documents/). Supports encoded slashes (e.g. dailies%2F2026-01-15.md).
func docPath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// writeServiceError maps service-layer errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error, op string) {
	var pe *document.ParseError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorBody("already exists"))
	case errors.Is(err, apperr.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("checksum mismatch"))
	case errors.As(err, &pe):
		writeJSON(w, http.StatusBadRequest, errorBody(pe.Error()))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func (h *Handler) publish(kind, path string) {
	if h.broker != nil {
		h.broker.PublishDocumentEvent(kind, path)
	}
}

// ListDocuments handles GET /documents with optional kind filter and
// pagination.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	kind := q.Get("kind")

	items, total, err := h.svc.ListDocuments(r.Context(), kind, limit, offset)
	if err != nil {
		writeServiceError(w, err, "list documents")
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: items, Total: total})
}

// listKind serves the kind-specific list endpoints.
func (h *Handler) listKind(w http.ResponseWriter, r *http.Request, kind string) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, total, err := h.svc.ListDocuments(r.Context(), kind, limit, offset)
	if err != nil {
		writeServiceError(w, err, "list "+kind)
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: items, Total: total})
}

// ListDailies handles GET /dailies.
func (h *Handler) ListDailies(w http.ResponseWriter, r *http.Request) {
	h.listKind(w, r, string(document.KindDaily))
}

// ListWeeks handles GET /weeks.
func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	h.listKind(w, r, string(document.KindWeekly))
}

// ListProjects handles GET /projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	h.listKind(w, r, string(document.KindProject))
}

// GetDocument handles GET /documents/*.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	path := docPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	detail, err := h.svc.GetDocument(r.Context(), path)
	if err != nil {
		writeServiceError(w, err, "get document")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// CreateDocument handles POST /documents with raw Markdown content.
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Path == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path and content are required"))
		return
	}
	detail, err := h.svc.CreateDocument(r.Context(), req.Path, []byte(req.Content))
	if err != nil {
		writeServiceError(w, err, "create document")
		return
	}
	h.publish("created", detail.Path)
	writeJSON(w, http.StatusCreated, detail)
}

// UpdateDocument handles PUT /documents/* with optimistic concurrency via
// the If-Match header.
func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	path := docPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}
	detail, err := h.svc.UpdateDocument(r.Context(), path, []byte(req.Content), r.Header.Get("If-Match"))
	if err != nil {
		writeServiceError(w, err, "update document")
		return
	}
	h.publish("updated", detail.Path)
	writeJSON(w, http.StatusOK, detail)
}

// DeleteDocument handles DELETE /documents/*.
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	path := docPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	if err := h.svc.DeleteDocument(r.Context(), path); err != nil {
		writeServiceError(w, err, "delete document")
		return
	}
	h.publish("deleted", path)
	w.WriteHeader(http.StatusNoContent)
}

// CreateDaily handles POST /dailies.
func (h *Handler) CreateDaily(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req CreateDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Date == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("date is required"))
		return
	}
	detail, err := h.svc.CreateDaily(r.Context(), req.Date, req.Projects, req.Tags, req.Highlight)
	if err != nil {
		writeServiceError(w, err, "create daily")
		return
	}
	h.publish("created", detail.Path)
	writeJSON(w, http.StatusCreated, detail)
}

// CreateProject handles POST /projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	detail, err := h.svc.CreateProject(r.Context(), req.Name, req.GithubRepo, req.Status, req.Type)
	if err != nil {
		writeServiceError(w, err, "create project")
		return
	}
	h.publish("created", detail.Path)
	writeJSON(w, http.StatusCreated, detail)
}

// GetWeekly handles GET /weeks/{week}.
func (h *Handler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	week := chi.URLParam(r, "week")
	detail, err := h.svc.GetDocument(r.Context(), workspace.WeeklyPath(week))
	if err != nil {
		writeServiceError(w, err, "get weekly")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// CreateWeekly handles POST /weeks/{week}. It fails when the report is
// already present.
func (h *Handler) CreateWeekly(w http.ResponseWriter, r *http.Request) {
	week := chi.URLParam(r, "week")
	detail, err := h.svc.CreateWeekly(r.Context(), week)
	if err != nil {
		writeServiceError(w, err, "create weekly")
		return
	}
	if h.broker != nil {
		h.broker.PublishReportGenerated(week, detail.Path)
	}
	writeJSON(w, http.StatusCreated, detail)
}

// GenerateWeekly handles POST /weeks/{week}/generate. Regeneration merges
// with any existing report, preserving user-authored sections.
func (h *Handler) GenerateWeekly(w http.ResponseWriter, r *http.Request) {
	week := chi.URLParam(r, "week")
	detail, err := h.svc.GenerateWeekly(r.Context(), week)
	if err != nil {
		writeServiceError(w, err, "generate weekly")
		return
	}
	if h.broker != nil {
		h.broker.PublishReportGenerated(week, detail.Path)
	}
	writeJSON(w, http.StatusOK, detail)
}

// Search handles GET /search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("q is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	hits, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeServiceError(w, err, "search")
		return
	}
	results := make([]SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = SearchResult{Path: hit.Path, Title: hit.Title, Snippet: hit.Snippet}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
