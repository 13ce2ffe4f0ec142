package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/chinmay1088/stellarpay/api"
)

const maxBodyBytes = 1 << 16

type handler struct {
	service Service
}

type errorResponse struct {
	Error errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code           string   `json:"code"`
	Message        string   `json:"message"`
	OperationCodes []string `json:"operationCodes,omitempty"`
}

type balanceResponse struct {
	Network   string `json:"network"`
	AccountID string `json:"accountId"`
	Asset     string `json:"asset"`
	Balance   string `json:"balance"`
}

type trustedResponse struct {
	Network   string `json:"network"`
	AccountID string `json:"accountId"`
	Asset     string `json:"asset"`
	Trusted   bool   `json:"trusted"`
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) balance(w http.ResponseWriter, r *http.Request) {
	network, accountID := api.Resolve(r.PathValue("network")).Name, r.PathValue("id")
	asset := assetFromQuery(r)

	balance, err := h.service.GetBalance(network, accountID, asset.Code, asset.Issuer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{
		Network:   network,
		AccountID: accountID,
		Asset:     asset.String(),
		Balance:   balance.String(),
	})
}

func (h *handler) trusted(w http.ResponseWriter, r *http.Request) {
	network, accountID := api.Resolve(r.PathValue("network")).Name, r.PathValue("id")
	asset := assetFromQuery(r)

	trusted, err := h.service.IsTrusted(network, accountID, asset.Code, asset.Issuer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trustedResponse{
		Network:   network,
		AccountID: accountID,
		Asset:     asset.String(),
		Trusted:   trusted,
	})
}

func (h *handler) fees(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetFeeStats(api.Resolve(r.PathValue("network")).Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *handler) transaction(w http.ResponseWriter, r *http.Request) {
	network, txID := api.Resolve(r.PathValue("network")).Name, r.PathValue("id")

	receipt := h.service.GetTransaction(txID, network)
	if receipt == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: errorEnvelope{Code: "not_found", Message: fmt.Sprintf("transaction %s not found", txID)},
		})
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *handler) payment(w http.ResponseWriter, r *http.Request) {
	var req api.PaymentRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: errorEnvelope{Code: "invalid_request", Message: err.Error()},
		})
		return
	}
	receipt, err := h.service.SendPayment(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func assetFromQuery(r *http.Request) api.Asset {
	q := r.URL.Query()
	return api.NewAsset(q.Get("asset_code"), q.Get("asset_issuer"))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal"
	envelope := errorEnvelope{Message: err.Error()}

	if rejected, ok := api.AsRejected(err); ok {
		status, code = http.StatusUnprocessableEntity, rejected.TransactionCode
		envelope.OperationCodes = rejected.OperationCodes
	} else {
		switch {
		case errors.Is(err, api.ErrInvalidKey),
			errors.Is(err, api.ErrInvalidAmount),
			errors.Is(err, api.ErrInvalidMemo):
			status, code = http.StatusBadRequest, "invalid_request"
		case errors.Is(err, api.ErrAccountNotFound),
			errors.Is(err, api.ErrAssetNotFound):
			status, code = http.StatusNotFound, "not_found"
		case errors.Is(err, api.ErrNetworkUnreachable),
			errors.Is(err, api.ErrFeeEstimationFailed):
			status, code = http.StatusBadGateway, "upstream"
		}
	}
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("gateway request failed")
	}

	envelope.Code = code
	writeJSON(w, status, errorResponse{Error: envelope})
}
