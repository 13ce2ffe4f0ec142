package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidKey          = errors.New("invalid secret key")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidMemo         = errors.New("invalid memo")
	ErrAssetNotFound       = errors.New("asset not found on account")
	ErrAccountNotFound     = errors.New("account not found")
	ErrNetworkUnreachable  = errors.New("network unreachable")
	ErrFeeEstimationFailed = errors.New("fee estimation failed")
	ErrTransactionRejected = errors.New("transaction rejected")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// codeMalformed is reported when the payment cannot even be assembled, for
// example because the destination is not a valid account address.
const codeMalformed = "tx_malformed"

// RejectedError carries the result codes the network returned for a
// transaction it refused to include.
type RejectedError struct {
	TransactionCode string
	OperationCodes  []string
	Reason          string
}

func (e *RejectedError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrTransactionRejected, e.TransactionCode)
	if len(e.OperationCodes) > 0 {
		msg += fmt.Sprintf(" [%s]", strings.Join(e.OperationCodes, ", "))
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrTransactionRejected
}

// AsRejected returns the rejection details carried by err, if any.
func AsRejected(err error) (*RejectedError, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}
