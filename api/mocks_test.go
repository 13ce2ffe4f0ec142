package api_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/stellar/go-stellar-sdk/txnbuild"
	"github.com/stretchr/testify/mock"

	"github.com/chinmay1088/stellarpay/api"
)

// **** Ledger ****

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) LoadAccount(address string) (api.AccountSnapshot, error) {
	args := m.Called(address)

	var res api.AccountSnapshot
	if a := args.Get(0); a != nil {
		res = a.(api.AccountSnapshot)
	}
	return res, args.Error(1)
}

func (m *mockLedger) SubmitTransaction(tx *txnbuild.Transaction) (api.TransactionRecord, error) {
	args := m.Called(tx)

	var res api.TransactionRecord
	if a := args.Get(0); a != nil {
		res = a.(api.TransactionRecord)
	}
	return res, args.Error(1)
}

func (m *mockLedger) FeeStats() (api.RawFeeStats, error) {
	args := m.Called()

	var res api.RawFeeStats
	if a := args.Get(0); a != nil {
		res = a.(api.RawFeeStats)
	}
	return res, args.Error(1)
}

// newMockedClient returns a client whose every ledger handle is ledger.
// dialed collects the network names the client resolved to.
func newMockedClient(ledger api.Ledger, cfg api.Config) (*api.Client, *[]string) {
	dialed := make([]string, 0)
	cfg.Dialer = func(n api.NetworkConfig, _ *http.Client) (api.Ledger, error) {
		dialed = append(dialed, n.Name)
		return ledger, nil
	}
	return api.NewClient(cfg), &dialed
}

// **** HTTP ****

// redirectTransport sends every request to target, keeping path and headers.
type redirectTransport struct {
	target *url.URL
}

func (t redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	out.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(out)
}

func newRedirectingHTTPClient(server *httptest.Server) *http.Client {
	target, _ := url.Parse(server.URL)
	return &http.Client{Transport: redirectTransport{target: target}}
}
