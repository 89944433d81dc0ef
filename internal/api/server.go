package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/investfolio/backend/internal/repository"
	"github.com/investfolio/backend/internal/settlement"
	"github.com/jackc/pgx/v5/pgxpool"
)

var taxIDRegexp = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)

type Server struct {
	pool         *pgxpool.Pool
	investors    *repository.InvestorRepo
	assets       *repository.AssetRepo
	wallets      *repository.WalletRepo
	holdings     *repository.AssetWalletRepo
	orders       *repository.OrderRepo
	transactions *repository.TransactionRepo
	settle       *settlement.Service
	httpServer   *http.Server
	apiKey       string
}

func NewServer(pool *pgxpool.Pool, settle *settlement.Service, port int, apiKey, corsOrigin string) *Server {
	s := &Server{
		pool:         pool,
		investors:    repository.NewInvestorRepo(pool),
		assets:       repository.NewAssetRepo(pool),
		wallets:      repository.NewWalletRepo(pool),
		holdings:     repository.NewAssetWalletRepo(pool),
		orders:       repository.NewOrderRepo(pool),
		transactions: repository.NewTransactionRepo(pool),
		settle:       settle,
		apiKey:       apiKey,
	}

	mux := http.NewServeMux()

	// Investor routes
	mux.HandleFunc("POST /v1/investors", s.handleInvestorCreate)
	mux.HandleFunc("GET /v1/investors", s.handleInvestorList)
	mux.HandleFunc("GET /v1/investors/{id}", s.handleInvestorGet)
	mux.HandleFunc("PATCH /v1/investors/{id}", s.handleInvestorUpdate)
	mux.HandleFunc("DELETE /v1/investors/{id}", s.handleInvestorDelete)

	// Asset routes
	mux.HandleFunc("POST /v1/assets", s.handleAssetCreate)
	mux.HandleFunc("GET /v1/assets", s.handleAssetList)
	mux.HandleFunc("GET /v1/assets/{id}", s.handleAssetGet)
	mux.HandleFunc("GET /v1/assets/ticker/{ticker}", s.handleAssetLatestByTicker)
	mux.HandleFunc("PATCH /v1/assets/{id}", s.handleAssetUpdate)
	mux.HandleFunc("DELETE /v1/assets/{id}", s.handleAssetDelete)

	// Wallet routes
	mux.HandleFunc("POST /v1/wallets", s.handleWalletCreate)
	mux.HandleFunc("GET /v1/wallets", s.handleWalletList)
	mux.HandleFunc("GET /v1/wallets/{id}", s.handleWalletGet)
	mux.HandleFunc("PATCH /v1/wallets/{id}", s.handleWalletUpdate)
	mux.HandleFunc("DELETE /v1/wallets/{id}", s.handleWalletDelete)

	// Holding routes
	mux.HandleFunc("GET /v1/asset-wallets", s.handleHoldingList)
	mux.HandleFunc("GET /v1/asset-wallets/{id}", s.handleHoldingGet)
	mux.HandleFunc("PATCH /v1/asset-wallets/{id}", s.handleHoldingUpdate)
	mux.HandleFunc("DELETE /v1/asset-wallets/{id}", s.handleHoldingDelete)

	// Order routes
	mux.HandleFunc("POST /v1/orders", s.handleOrderCreate)
	mux.HandleFunc("GET /v1/orders", s.handleOrderList)
	mux.HandleFunc("GET /v1/orders/{id}", s.handleOrderGet)
	mux.HandleFunc("PATCH /v1/orders/{id}", s.handleOrderUpdate)
	mux.HandleFunc("DELETE /v1/orders/{id}", s.handleOrderDelete)

	// Transaction routes
	mux.HandleFunc("POST /v1/transactions", s.handleTransactionCreate)
	mux.HandleFunc("GET /v1/transactions", s.handleTransactionList)
	mux.HandleFunc("GET /v1/transactions/{id}", s.handleTransactionGet)
	mux.HandleFunc("PATCH /v1/transactions/{id}", s.handleTransactionUpdate)
	mux.HandleFunc("DELETE /v1/transactions/{id}", s.handleTransactionDelete)

	// Health check (no auth required)
	mux.HandleFunc("GET /health", s.handleHealth)

	// CORS wraps auth: preflight OPTIONS requests carry no Authorization
	// header and must short-circuit before the Bearer check.
	handler := corsMiddleware(s.authMiddleware(mux), corsOrigin)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	fmt.Printf("[API] REST API server started on http://localhost%s\n", s.httpServer.Addr)
	fmt.Printf("[API] Health check: http://localhost%s/health\n", s.httpServer.Addr)
	if s.apiKey != "" {
		fmt.Println("[API] Authentication: enabled (Bearer token)")
	} else {
		fmt.Println("[API] Authentication: disabled (no API_KEY configured)")
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// --- middleware ---

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		if auth == "" {
			writeError(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth || token != s.apiKey {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler, allowOrigin string) http.Handler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- request helpers ---

// pathID parses the {id} segment; identifiers are positive integers.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	return nil
}

// --- response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
