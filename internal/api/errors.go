package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/investfolio/backend/internal/repository"
	"github.com/investfolio/backend/internal/settlement"
)

// respondError maps domain errors onto HTTP statuses. Anything outside the
// taxonomy is logged and reported as a generic failure so internal detail
// never reaches the client.
func respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, settlement.ErrInvalidQuantity), errors.Is(err, settlement.ErrNoLines):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, settlement.ErrWalletNotFound),
		errors.Is(err, settlement.ErrAssetNotFound),
		errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		fmt.Printf("[API] %s: %v\n", fallback, err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
