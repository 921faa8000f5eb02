package api

import (
	"net/http"
	"strings"

	"github.com/sells-group/schooldata/internal/model"
)

func (h *Handler) demographics(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.Demographics(r.Context())
	if err != nil {
		storeError(w, r, "demographics", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rows))
}

// graduationRates serves both the all-district and the single-district route.
func (h *Handler) graduationRates(w http.ResponseWriter, r *http.Request) {
	aun := strings.TrimSpace(pathParam(r, "aun"))
	rows, err := h.store.GraduationRates(r.Context(), aun)
	if err != nil {
		storeError(w, r, "graduation rates", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rows))
}

func (h *Handler) financialAnalysis(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.FinancialAnalysis(r.Context())
	if err != nil {
		storeError(w, r, "financial analysis", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rows))
}

func (h *Handler) schoolPerformance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.SchoolPerformance(r.Context())
	if err != nil {
		storeError(w, r, "school performance", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rows))
}

func (h *Handler) cities(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.Demographics(r.Context())
	if err != nil {
		storeError(w, r, "cities", err)
		return
	}
	writeJSON(w, http.StatusOK, model.GroupByCity(rows))
}

// searchDirectory answers the multi-field search. An unknown sortBy falls
// back to the school name.
func (h *Handler) searchDirectory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := strings.TrimSpace(q.Get("term"))
	if term == "" {
		writeError(w, http.StatusBadRequest, "search term is required")
		return
	}
	sortKey := model.ParseSortKey(q.Get("sortBy"))

	rows, err := h.store.SearchDirectory(r.Context(), term, sortKey)
	if err != nil {
		storeError(w, r, "search directory", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rows))
}
