package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/chinmay1088/stellarpay/api"
)

// Service is the part of api.Client the gateway exposes.
type Service interface {
	GetBalance(selector, accountID, assetCode, assetIssuer string) (decimal.Decimal, error)
	IsTrusted(selector, accountID, assetCode, assetIssuer string) (bool, error)
	GetFeeStats(selector string) (api.FeeStats, error)
	GetTransaction(txID, selector string) *api.Receipt
	SendPayment(req api.PaymentRequest) (*api.Receipt, error)
}

type Server struct {
	httpServer *http.Server
}

func New(address string, service Service) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              address,
			Handler:           NewRouter(service),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter registers every gateway route on a fresh mux.
func NewRouter(service Service) *http.ServeMux {
	h := &handler{service: service}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /v1/{network}/accounts/{id}/balance", h.balance)
	mux.HandleFunc("GET /v1/{network}/accounts/{id}/trusted", h.trusted)
	mux.HandleFunc("GET /v1/{network}/fees", h.fees)
	mux.HandleFunc("GET /v1/{network}/transactions/{id}", h.transaction)
	mux.HandleFunc("POST /v1/payments", h.payment)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

func (s *Server) Start() error {
	log.Infof("gateway listening on %s", s.httpServer.Addr)

	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("gateway shutting down")
	return s.httpServer.Shutdown(ctx)
}
