package api

import (
	"net/http"
)

func (s *Server) handleHoldingList(w http.ResponseWriter, r *http.Request) {
	holdings, err := s.holdings.GetAll(r.Context())
	if err != nil {
		respondError(w, err, "failed to fetch asset wallets")
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}

func (s *Server) handleHoldingGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	holding, err := s.holdings.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "failed to fetch asset wallet")
		return
	}
	writeJSON(w, http.StatusOK, holding)
}

type holdingPatchJSON struct {
	Quantity *int64 `json:"quantity"`
}

func (s *Server) handleHoldingUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch holdingPatchJSON
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}
	if *patch.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "quantity cannot be negative")
		return
	}

	holding, err := s.holdings.UpdateQuantity(r.Context(), id, *patch.Quantity)
	if err != nil {
		respondError(w, err, "failed to update asset wallet")
		return
	}
	writeJSON(w, http.StatusOK, holding)
}

func (s *Server) handleHoldingDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.holdings.Delete(r.Context(), id); err != nil {
		respondError(w, err, "failed to delete asset wallet")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
