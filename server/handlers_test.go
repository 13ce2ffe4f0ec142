package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chinmay1088/stellarpay/api"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetBalance(selector, accountID, assetCode, assetIssuer string) (decimal.Decimal, error) {
	args := m.Called(selector, accountID, assetCode, assetIssuer)

	var res decimal.Decimal
	if a := args.Get(0); a != nil {
		res = a.(decimal.Decimal)
	}
	return res, args.Error(1)
}

func (m *mockService) IsTrusted(selector, accountID, assetCode, assetIssuer string) (bool, error) {
	args := m.Called(selector, accountID, assetCode, assetIssuer)
	return args.Bool(0), args.Error(1)
}

func (m *mockService) GetFeeStats(selector string) (api.FeeStats, error) {
	args := m.Called(selector)

	var res api.FeeStats
	if a := args.Get(0); a != nil {
		res = a.(api.FeeStats)
	}
	return res, args.Error(1)
}

func (m *mockService) GetTransaction(txID, selector string) *api.Receipt {
	args := m.Called(txID, selector)

	var res *api.Receipt
	if a := args.Get(0); a != nil {
		res = a.(*api.Receipt)
	}
	return res
}

func (m *mockService) SendPayment(req api.PaymentRequest) (*api.Receipt, error) {
	args := m.Called(req)

	var res *api.Receipt
	if a := args.Get(0); a != nil {
		res = a.(*api.Receipt)
	}
	return res, args.Error(1)
}

func serve(t *testing.T, service Service, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	NewRouter(service).ServeHTTP(rec, req)

	payload := make(map[string]any)
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func TestBalance(t *testing.T) {
	account := keypair.MustRandom().Address()
	issuer := keypair.MustRandom().Address()

	svc := &mockService{}
	svc.On("GetBalance", "main", account, "", "").Return(decimal.RequireFromString("42.5"), nil)
	svc.On("GetBalance", "testnet", account, "USDC", issuer).Return(nil, fmt.Errorf("wrapped: %w", api.ErrAssetNotFound))

	rec, payload := serve(t, svc, http.MethodGet, "/v1/main/accounts/"+account+"/balance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "42.5", payload["balance"])
	require.Equal(t, "XLM", payload["asset"])

	rec, payload = serve(t, svc, http.MethodGet,
		fmt.Sprintf("/v1/whatever/accounts/%s/balance?asset_code=USDC&asset_issuer=%s", account, issuer), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", payload["error"].(map[string]any)["code"])
	svc.AssertExpectations(t)
}

func TestTrusted(t *testing.T) {
	account := keypair.MustRandom().Address()
	issuer := keypair.MustRandom().Address()

	svc := &mockService{}
	svc.On("IsTrusted", "testnet", account, "USDC", issuer).Return(false, nil)

	rec, payload := serve(t, svc, http.MethodGet,
		fmt.Sprintf("/v1/testnet/accounts/%s/trusted?asset_code=USDC&asset_issuer=%s", account, issuer), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, payload["trusted"])
	require.Equal(t, "USDC:"+issuer, payload["asset"])
}

func TestFees(t *testing.T) {
	svc := &mockService{}
	svc.On("GetFeeStats", "testnet").Return(api.FeeStats{
		FeeCryptoCurrency:  "XLM",
		BaseFee:            api.StroopsToXLM(100),
		StandardFeeCharged: api.StroopsToXLM(150),
		FastFeeCharged:     api.StroopsToXLM(5000),
	}, nil)
	svc.On("GetFeeStats", "main").Return(nil, fmt.Errorf("%w: %v", api.ErrFeeEstimationFailed, api.ErrNetworkUnreachable))

	rec, payload := serve(t, svc, http.MethodGet, "/v1/testnet/fees", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "XLM", payload["feeCryptoCurrency"])
	require.Equal(t, "0.0005", payload["fastFeeCharged"])

	rec, _ = serve(t, svc, http.MethodGet, "/v1/main/fees", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestTransaction(t *testing.T) {
	receipt := &api.Receipt{
		GasCostCryptoCurrency: "XLM",
		GasCostInCrypto:       api.StroopsToXLM(100),
		GasLimit:              api.StroopsToXLM(100),
		Network:               "testnet",
		TransactionHash:       "abc",
		TransactionLink:       api.GetTransactionLink("abc", "testnet"),
		Status:                &api.Status{IsExecuted: true, IsSuccessful: true},
	}

	svc := &mockService{}
	svc.On("GetTransaction", "abc", "testnet").Return(receipt)
	svc.On("GetTransaction", "missing", "testnet").Return(nil)

	rec, payload := serve(t, svc, http.MethodGet, "/v1/testnet/transactions/abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "abc", payload["transactionHash"])
	require.Equal(t, true, payload["isSuccessful"])
	require.Equal(t, false, payload["isFailed"])
	require.NotContains(t, payload, "from")

	rec, _ = serve(t, svc, http.MethodGet, "/v1/testnet/transactions/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPayment(t *testing.T) {
	source := keypair.MustRandom()
	destination := keypair.MustRandom().Address()
	req := api.PaymentRequest{
		To:         destination,
		Amount:     "1",
		Network:    "testnet",
		PrivateKey: source.Seed(),
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	t.Run("confirmed", func(t *testing.T) {
		svc := &mockService{}
		svc.On("SendPayment", req).Return(&api.Receipt{
			TransactionHash: "abc",
			Transfer: &api.Transfer{
				Amount: decimal.NewFromInt(1),
				From:   source.Address(),
				To:     destination,
			},
		}, nil)

		rec, payload := serve(t, svc, http.MethodPost, "/v1/payments", string(body))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "abc", payload["transactionHash"])
		require.Equal(t, source.Address(), payload["from"])
		require.NotContains(t, payload, "isSuccessful")
	})

	t.Run("rejected", func(t *testing.T) {
		svc := &mockService{}
		svc.On("SendPayment", req).Return(nil, &api.RejectedError{
			TransactionCode: "tx_failed",
			OperationCodes:  []string{"op_underfunded"},
		})

		rec, payload := serve(t, svc, http.MethodPost, "/v1/payments", string(body))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		envelope := payload["error"].(map[string]any)
		require.Equal(t, "tx_failed", envelope["code"])
		require.Equal(t, []any{"op_underfunded"}, envelope["operationCodes"])
	})

	t.Run("invalid key", func(t *testing.T) {
		svc := &mockService{}
		svc.On("SendPayment", req).Return(nil, api.ErrInvalidKey)

		rec, _ := serve(t, svc, http.MethodPost, "/v1/payments", string(body))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad body", func(t *testing.T) {
		svc := &mockService{}

		rec, _ := serve(t, svc, http.MethodPost, "/v1/payments", `{"to": 1`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec, _ = serve(t, svc, http.MethodPost, "/v1/payments", `{"to": "GABC", "fee": "1", "extra": true}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "SendPayment", mock.Anything)
	})

	t.Run("malformed destination", func(t *testing.T) {
		bad := api.PaymentRequest{To: "GABC", Amount: "1", PrivateKey: source.Seed()}
		svc := &mockService{}
		svc.On("SendPayment", bad).Return(nil, &api.RejectedError{TransactionCode: "tx_malformed"})

		body, err := json.Marshal(bad)
		require.NoError(t, err)
		rec, payload := serve(t, svc, http.MethodPost, "/v1/payments", string(body))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Equal(t, "tx_malformed", payload["error"].(map[string]any)["code"])
	})

	t.Run("muxed destination", func(t *testing.T) {
		muxed := req
		muxed.To = "MA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVAAAAAAAAAAAAAJLK"
		svc := &mockService{}
		svc.On("SendPayment", muxed).Return(&api.Receipt{TransactionHash: "abc"}, nil)

		body, err := json.Marshal(muxed)
		require.NoError(t, err)
		rec, payload := serve(t, svc, http.MethodPost, "/v1/payments", string(body))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "abc", payload["transactionHash"])
		svc.AssertExpectations(t)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	rec, payload := serve(t, &mockService{}, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", payload["status"])

	rec, _ = serve(t, &mockService{}, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}
