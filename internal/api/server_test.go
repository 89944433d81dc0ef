package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/investfolio/backend/internal/models"
	"github.com/investfolio/backend/internal/repository"
	"github.com/investfolio/backend/internal/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithID(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/wallets/"+id, nil)
	req.SetPathValue("id", id)
	return req
}

func TestPathID(t *testing.T) {
	got, err := pathID(requestWithID("42"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	for _, bad := range []string{"0", "-7", "abc", "1.5", ""} {
		_, err := pathID(requestWithID(bad))
		assert.Error(t, err, "id %q must be rejected", bad)
	}
}

func TestDecodeBody_RejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/wallets",
		strings.NewReader(`{"investorId": 1, "bogus": true}`))

	var in walletCreateJSON
	err := decodeBody(req, &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request body")
}

func TestInvestorCreateValidation(t *testing.T) {
	valid := investorCreateJSON{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "longenough",
		TaxID:    "123-45-6789",
	}
	assert.Empty(t, valid.validate())

	cases := []struct {
		name   string
		mutate func(*investorCreateJSON)
	}{
		{"missing email", func(in *investorCreateJSON) { in.Email = "" }},
		{"email without at", func(in *investorCreateJSON) { in.Email = "ana.example.com" }},
		{"empty name", func(in *investorCreateJSON) { in.Name = "" }},
		{"name too long", func(in *investorCreateJSON) { in.Name = strings.Repeat("x", 51) }},
		{"short password", func(in *investorCreateJSON) { in.Password = "short" }},
		{"bad tax id", func(in *investorCreateJSON) { in.TaxID = "12-345-6789" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			assert.NotEmpty(t, in.validate())
		})
	}
}

func TestWriteJSON_DecimalsAsStrings(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusOK, models.Wallet{
		ID:            7,
		TotalInvested: decimal.RequireFromString("12500.25"),
	})

	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), `"totalInvested":"12500.25"`)
}

func TestWriteJSON_EmptyListShape(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusOK, []models.Asset{})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String(), "empty collections must serialize as [], not null")
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{settlement.ErrInvalidQuantity, http.StatusBadRequest},
		{settlement.ErrNoLines, http.StatusBadRequest},
		{fmt.Errorf("%w: AAPL", settlement.ErrAssetNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: 7", settlement.ErrWalletNotFound), http.StatusNotFound},
		{repository.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: investors_email_key", repository.ErrConflict), http.StatusConflict},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		respondError(rr, tc.err, "operation failed")
		assert.Equal(t, tc.status, rr.Code, "error %v", tc.err)
	}

	// Internal failures must not leak detail.
	rr := httptest.NewRecorder()
	respondError(rr, fmt.Errorf("password=hunter2 leaked"), "operation failed")
	assert.NotContains(t, rr.Body.String(), "hunter2")
	assert.Contains(t, rr.Body.String(), "operation failed")
}
