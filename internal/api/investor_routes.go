package api

import (
	"net/http"
	"strings"

	"github.com/investfolio/backend/internal/models"
)

type investorCreateJSON struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	TaxID    string `json:"taxId"`
}

func (in *investorCreateJSON) validate() string {
	switch {
	case in.Email == "" || !strings.Contains(in.Email, "@"):
		return "a valid email is required"
	case in.Name == "" || len(in.Name) > 50:
		return "name is required and must be at most 50 characters"
	case len(in.Password) < 8:
		return "password must be at least 8 characters"
	case !taxIDRegexp.MatchString(in.TaxID):
		return "taxId must match NNN-NN-NNNN"
	}
	return ""
}

func toInvestor(in *investorCreateJSON) *models.Investor {
	return &models.Investor{Email: in.Email, Name: in.Name, Password: in.Password, TaxID: in.TaxID}
}

func (s *Server) handleInvestorCreate(w http.ResponseWriter, r *http.Request) {
	var in investorCreateJSON
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := in.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	inv, err := s.investors.Create(r.Context(), toInvestor(&in))
	if err != nil {
		respondError(w, err, "failed to create investor")
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (s *Server) handleInvestorList(w http.ResponseWriter, r *http.Request) {
	investors, err := s.investors.GetAll(r.Context())
	if err != nil {
		respondError(w, err, "failed to fetch investors")
		return
	}
	writeJSON(w, http.StatusOK, investors)
}

func (s *Server) handleInvestorGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := s.investors.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "failed to fetch investor")
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

type investorPatchJSON struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
	TaxID    *string `json:"taxId"`
}

func (s *Server) handleInvestorUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch investorPatchJSON
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := s.investors.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "failed to fetch investor")
		return
	}

	if patch.Email != nil {
		inv.Email = *patch.Email
	}
	if patch.Name != nil {
		inv.Name = *patch.Name
	}
	if patch.Password != nil {
		inv.Password = *patch.Password
	}
	if patch.TaxID != nil {
		inv.TaxID = *patch.TaxID
	}

	check := investorCreateJSON{Email: inv.Email, Name: inv.Name, Password: inv.Password, TaxID: inv.TaxID}
	if msg := check.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := s.investors.Update(r.Context(), inv)
	if err != nil {
		respondError(w, err, "failed to update investor")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleInvestorDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.investors.Delete(r.Context(), id); err != nil {
		respondError(w, err, "failed to delete investor")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
