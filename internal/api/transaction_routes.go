package api

import (
	"net/http"
	"time"

	"github.com/investfolio/backend/internal/models"
	"github.com/shopspring/decimal"
)

type transactionCreateJSON struct {
	WalletID    int64                  `json:"walletId"`
	Type        models.TransactionType `json:"type"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
	ExecutedAt  *time.Time             `json:"executedAt"`
}

func validTransactionType(t models.TransactionType) bool {
	return t == models.TransactionDeposit || t == models.TransactionWithdrawal
}

func (s *Server) handleTransactionCreate(w http.ResponseWriter, r *http.Request) {
	var in transactionCreateJSON
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.WalletID <= 0 {
		writeError(w, http.StatusBadRequest, "walletId must be a positive integer")
		return
	}
	if !validTransactionType(in.Type) {
		writeError(w, http.StatusBadRequest, "type must be DEPOSIT or WITHDRAWAL")
		return
	}

	record := &models.TransactionRecord{
		WalletID:    in.WalletID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
	}
	if in.ExecutedAt != nil {
		record.ExecutedAt = *in.ExecutedAt
	}

	created, err := s.transactions.Create(r.Context(), record)
	if err != nil {
		respondError(w, err, "failed to create transaction")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	records, err := s.transactions.GetAll(r.Context())
	if err != nil {
		respondError(w, err, "failed to fetch transactions")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleTransactionGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := s.transactions.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "failed to fetch transaction")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

type transactionPatchJSON struct {
	WalletID    *int64                  `json:"walletId"`
	Type        *models.TransactionType `json:"type"`
	Amount      *decimal.Decimal        `json:"amount"`
	Description *string                 `json:"description"`
	ExecutedAt  *time.Time              `json:"executedAt"`
}

func (s *Server) handleTransactionUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch transactionPatchJSON
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := s.transactions.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "failed to fetch transaction")
		return
	}

	if patch.WalletID != nil {
		record.WalletID = *patch.WalletID
	}
	if patch.Type != nil {
		if !validTransactionType(*patch.Type) {
			writeError(w, http.StatusBadRequest, "type must be DEPOSIT or WITHDRAWAL")
			return
		}
		record.Type = *patch.Type
	}
	if patch.Amount != nil {
		record.Amount = *patch.Amount
	}
	if patch.Description != nil {
		record.Description = *patch.Description
	}
	if patch.ExecutedAt != nil {
		record.ExecutedAt = *patch.ExecutedAt
	}

	updated, err := s.transactions.Update(r.Context(), record)
	if err != nil {
		respondError(w, err, "failed to update transaction")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.transactions.Delete(r.Context(), id); err != nil {
		respondError(w, err, "failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
