package api

import (
	"net/http"
	"time"

	"github.com/investfolio/backend/internal/models"
	"github.com/shopspring/decimal"
)

type assetCreateJSON struct {
	Ticker         string              `json:"ticker"`
	Date           time.Time           `json:"date"`
	Price          decimal.Decimal     `json:"price"`
	Volume         int64               `json:"volume"`
	DailyVariation decimal.Decimal     `json:"dailyVariation"`
	BBI            decimal.Decimal     `json:"bbi"`
	RSI            *int64              `json:"rsi"`
	SCom           decimal.NullDecimal `json:"scom"`
	SVen           decimal.Decimal     `json:"sven"`
	AssetName      string              `json:"assetName"`
	Type           string              `json:"type"`
	Benchmark      string              `json:"benchmark"`
	PL             decimal.Decimal     `json:"pl"`
	MACDIM         decimal.Decimal     `json:"macdim"`
	MACDIS         decimal.Decimal     `json:"macdis"`
	MACDH          decimal.Decimal     `json:"macdh"`
	BBS            decimal.Decimal     `json:"bbs"`
	BBL            decimal.Decimal     `json:"bbl"`
	BBM            decimal.Decimal     `json:"bbm"`
	RSICom         decimal.Decimal     `json:"rsicom"`
	RSIVem         decimal.Decimal     `json:"rsivem"`
}

func (s *Server) handleAssetCreate(w http.ResponseWriter, r *http.Request) {
	var in assetCreateJSON
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	if in.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	asset, err := s.assets.Create(r.Context(), &models.Asset{
		Ticker: in.Ticker, Date: in.Date, Price: in.Price, Volume: in.Volume,
		DailyVariation: in.DailyVariation, BBI: in.BBI, RSI: in.RSI, SCom: in.SCom,
		SVen: in.SVen, AssetName: in.AssetName, Type: in.Type, Benchmark: in.Benchmark,
		PL: in.PL, MACDIM: in.MACDIM, MACDIS: in.MACDIS, MACDH: in.MACDH,
		BBS: in.BBS, BBL: in.BBL, BBM: in.BBM, RSICom: in.RSICom, RSIVem: in.RSIVem,
	})
	if err != nil {
		respondError(w, err, "failed to create asset")
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (s *Server) handleAssetList(w http.ResponseWriter, r *http.Request) {
	orderBy := r.URL.Query().Get("orderBy")
	direction := r.URL.Query().Get("direction")

	assets, err := s.assets.GetAll(r.Context(), orderBy, direction)
	if err != nil {
		respondError(w, err, "failed to fetch assets")
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) handleAssetGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	asset, err := s.assets.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "failed to fetch asset")
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// handleAssetLatestByTicker returns the most recent price snapshot for a
// ticker, the same resolution the settlement calculator uses.
func (s *Server) handleAssetLatestByTicker(w http.ResponseWriter, r *http.Request) {
	ticker := r.PathValue("ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	asset, err := s.assets.GetLatestByTicker(r.Context(), ticker)
	if err != nil {
		respondError(w, err, "failed to fetch asset")
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

type assetPatchJSON struct {
	Ticker         *string              `json:"ticker"`
	Date           *time.Time           `json:"date"`
	Price          *decimal.Decimal     `json:"price"`
	Volume         *int64               `json:"volume"`
	DailyVariation *decimal.Decimal     `json:"dailyVariation"`
	BBI            *decimal.Decimal     `json:"bbi"`
	RSI            *int64               `json:"rsi"`
	SCom           *decimal.NullDecimal `json:"scom"`
	SVen           *decimal.Decimal     `json:"sven"`
	AssetName      *string              `json:"assetName"`
	Type           *string              `json:"type"`
	Benchmark      *string              `json:"benchmark"`
	PL             *decimal.Decimal     `json:"pl"`
	MACDIM         *decimal.Decimal     `json:"macdim"`
	MACDIS         *decimal.Decimal     `json:"macdis"`
	MACDH          *decimal.Decimal     `json:"macdh"`
	BBS            *decimal.Decimal     `json:"bbs"`
	BBL            *decimal.Decimal     `json:"bbl"`
	BBM            *decimal.Decimal     `json:"bbm"`
	RSICom         *decimal.Decimal     `json:"rsicom"`
	RSIVem         *decimal.Decimal     `json:"rsivem"`
}

func (p *assetPatchJSON) apply(a *models.Asset) {
	if p.Ticker != nil {
		a.Ticker = *p.Ticker
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Price != nil {
		a.Price = *p.Price
	}
	if p.Volume != nil {
		a.Volume = *p.Volume
	}
	if p.DailyVariation != nil {
		a.DailyVariation = *p.DailyVariation
	}
	if p.BBI != nil {
		a.BBI = *p.BBI
	}
	if p.RSI != nil {
		a.RSI = p.RSI
	}
	if p.SCom != nil {
		a.SCom = *p.SCom
	}
	if p.SVen != nil {
		a.SVen = *p.SVen
	}
	if p.AssetName != nil {
		a.AssetName = *p.AssetName
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Benchmark != nil {
		a.Benchmark = *p.Benchmark
	}
	if p.PL != nil {
		a.PL = *p.PL
	}
	if p.MACDIM != nil {
		a.MACDIM = *p.MACDIM
	}
	if p.MACDIS != nil {
		a.MACDIS = *p.MACDIS
	}
	if p.MACDH != nil {
		a.MACDH = *p.MACDH
	}
	if p.BBS != nil {
		a.BBS = *p.BBS
	}
	if p.BBL != nil {
		a.BBL = *p.BBL
	}
	if p.BBM != nil {
		a.BBM = *p.BBM
	}
	if p.RSICom != nil {
		a.RSICom = *p.RSICom
	}
	if p.RSIVem != nil {
		a.RSIVem = *p.RSIVem
	}
}

func (s *Server) handleAssetUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch assetPatchJSON
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	asset, err := s.assets.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "failed to fetch asset")
		return
	}
	patch.apply(asset)

	updated, err := s.assets.Update(r.Context(), asset)
	if err != nil {
		respondError(w, err, "failed to update asset")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleAssetDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.assets.Delete(r.Context(), id); err != nil {
		respondError(w, err, "failed to delete asset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
