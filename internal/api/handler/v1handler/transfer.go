package v1handler

import (
	"fmt"
	"io"
	"net/http"
	"unfollower/internal/transfer"
	"unfollower/pkg/serrors"
)

// Export downloads the account's persisted state as a backup file.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	st := h.deps.Engine.State()
	now := h.deps.Now()
	data := transfer.Export(st, now)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename=%q`, transfer.FileName(st.Account(), now)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import applies a backup and reports which parts were applied.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		h.writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "could not read backup"))

		return
	}
	rep, err := transfer.Import(r.Context(), h.deps.Engine.State(), data)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	writeJSON(w, r, http.StatusOK, rep)
}
