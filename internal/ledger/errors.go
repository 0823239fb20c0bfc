package ledger

import "errors"

// User-facing failure modes. All are recoverable: a failed operation leaves
// every balance untouched.
var (
	ErrCapacityExceeded      = errors.New("daily mining capacity reached")
	ErrDuplicateDailyDeposit = errors.New("deposit already requested for this miner today")
	ErrBelowMinimum          = errors.New("amount below minimum withdrawal")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrIncompleteBankDetails = errors.New("incomplete bank details")
	ErrNoGeodesAvailable     = errors.New("no geodes available")

	ErrUnknownUpgrade  = errors.New("unknown upgrade")
	ErrRequestNotFound = errors.New("request not found")
	ErrRequestResolved = errors.New("request already resolved")
)
