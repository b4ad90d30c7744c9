package domain

import "errors"

// Ledger error taxonomy. Business-rule failures are terminal and surfaced to
// the caller as-is; ErrConcurrentModification is retried with bounded attempts
// before it surfaces.
var (
	ErrAlreadyAwarded         = errors.New("report already awarded")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrInvalidDestination     = errors.New("invalid payment destination")
	ErrInvalidTier            = errors.New("no matching redemption tier")
	ErrConcurrentModification = errors.New("concurrent balance modification")
	ErrPersistenceFailure     = errors.New("persistence failure")
	ErrBalanceNotFound        = errors.New("balance not found")
	ErrReportNotFound         = errors.New("report not found")
	ErrInvalidStatus          = errors.New("invalid report status")
	ErrRedemptionNotFound     = errors.New("redemption request not found")
)
