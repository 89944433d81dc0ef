package api

import (
	"net/http"

	"github.com/investfolio/backend/internal/models"
	"github.com/investfolio/backend/internal/settlement"
)

type orderCreateJSON struct {
	WalletID int64                  `json:"walletId"`
	Assets   []settlement.LineInput `json:"assets"`
}

func (s *Server) handleOrderCreate(w http.ResponseWriter, r *http.Request) {
	var in orderCreateJSON
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.WalletID <= 0 {
		writeError(w, http.StatusBadRequest, "walletId must be a positive integer")
		return
	}

	order, err := s.settle.CreateOrder(r.Context(), in.WalletID, in.Assets)
	if err != nil {
		respondError(w, err, "failed to create order")
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleOrderList(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.GetAll(r.Context())
	if err != nil {
		respondError(w, err, "failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleOrderGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := s.orders.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "failed to fetch order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type orderPatchJSON struct {
	Status *models.OrderStatus    `json:"status"`
	Assets []settlement.LineInput `json:"assets"`
}

// handleOrderUpdate updates status only when no asset lines are supplied;
// with lines, the order is recomputed from scratch and its lines replaced.
func (s *Server) handleOrderUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch orderPatchJSON
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.Status != nil && !patch.Status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid order status")
		return
	}

	order, err := s.settle.UpdateOrder(r.Context(), id, patch.Status, patch.Assets)
	if err != nil {
		respondError(w, err, "failed to update order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleOrderDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.orders.Delete(r.Context(), id); err != nil {
		respondError(w, err, "failed to delete order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
