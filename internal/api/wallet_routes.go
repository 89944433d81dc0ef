package api

import (
	"net/http"

	"github.com/investfolio/backend/internal/models"
	"github.com/investfolio/backend/internal/settlement"
	"github.com/shopspring/decimal"
)

type walletCreateJSON struct {
	InvestorID    int64            `json:"investorId"`
	TotalInvested *decimal.Decimal `json:"totalInvested"`
	Active        *bool            `json:"active"`
}

func (s *Server) handleWalletCreate(w http.ResponseWriter, r *http.Request) {
	var in walletCreateJSON
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.InvestorID <= 0 {
		writeError(w, http.StatusBadRequest, "investorId must be a positive integer")
		return
	}

	wallet := &models.Wallet{InvestorID: in.InvestorID, TotalInvested: decimal.Zero, Active: true}
	if in.TotalInvested != nil {
		wallet.TotalInvested = *in.TotalInvested
	}
	if in.Active != nil {
		wallet.Active = *in.Active
	}

	created, err := s.wallets.Create(r.Context(), wallet)
	if err != nil {
		respondError(w, err, "failed to create wallet")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleWalletList(w http.ResponseWriter, r *http.Request) {
	wallets, err := s.wallets.GetAll(r.Context())
	if err != nil {
		respondError(w, err, "failed to fetch wallets")
		return
	}
	writeJSON(w, http.StatusOK, wallets)
}

func (s *Server) handleWalletGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	wallet, err := s.wallets.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "failed to fetch wallet")
		return
	}
	wallet.Holdings, err = s.holdings.GetByWallet(r.Context(), id)
	if err != nil {
		respondError(w, err, "failed to fetch wallet")
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

type walletPatchJSON struct {
	Active *bool                  `json:"active"`
	Assets []settlement.LineInput `json:"assets"`
}

// handleWalletUpdate runs the wallet settlement path: any supplied asset
// lines are priced at the latest snapshot and accumulated into the wallet's
// holdings and invested balance, all inside one transaction.
func (s *Server) handleWalletUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch walletPatchJSON
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	wallet, err := s.settle.SettleWallet(r.Context(), id, patch.Assets, patch.Active)
	if err != nil {
		respondError(w, err, "failed to update wallet")
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

func (s *Server) handleWalletDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.wallets.Delete(r.Context(), id); err != nil {
		respondError(w, err, "failed to delete wallet")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
