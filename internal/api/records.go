package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sells-group/schooldata/internal/model"
	"github.com/sells-group/schooldata/internal/store"
)

// wildcardID addresses every record in DELETE /api/data/{id}.
const wildcardID = "*"

// maxBodyBytes bounds create and update request bodies.
const maxBodyBytes = 1 << 20

func (h *Handler) listSchools(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ListSchools(r.Context())
	if err != nil {
		storeError(w, r, "list schools", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rows))
}

func (h *Handler) searchSchools(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	rows, err := h.store.SearchSchools(r.Context(), q)
	if err != nil {
		storeError(w, r, "search schools", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rows))
}

func (h *Handler) getSchool(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := h.store.GetSchool(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		storeError(w, r, "get school", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) createSchool(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	id, err := h.store.CreateSchool(r.Context(), in)
	if err != nil {
		storeError(w, r, "create school", err)
		return
	}
	writeJSON(w, http.StatusOK, model.Created{ID: id})
}

func (h *Handler) updateSchool(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	if err := h.store.UpdateSchool(r.Context(), id, in); err != nil {
		storeError(w, r, "update school", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) deleteSchool(w http.ResponseWriter, r *http.Request) {
	if rawID(r) == wildcardID {
		h.deleteAll(w, r)
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteSchool(r.Context(), id); err != nil {
		storeError(w, r, "delete school", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// deleteAll is the admin reset behind DELETE /api/data/*.
func (h *Handler) deleteAll(w http.ResponseWriter, r *http.Request) {
	if !h.opts.AllowBulkDelete {
		writeError(w, http.StatusForbidden, "bulk delete is disabled")
		return
	}
	n, err := h.store.DeleteAllSchools(r.Context())
	if err != nil {
		storeError(w, r, "delete all schools", err)
		return
	}
	zap.L().Warn("api: deleted all school records",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("remote", r.RemoteAddr),
		zap.Int64("deleted", n),
	)
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "deleted": n})
}

func rawID(r *http.Request) string {
	return pathParam(r, "id")
}

// pathParam returns the named route parameter, percent-decoded when valid.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(rawID(r), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

func decodeInput(w http.ResponseWriter, r *http.Request) (model.SchoolInput, bool) {
	var in model.SchoolInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return in, false
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return in, false
	}
	return in, true
}
