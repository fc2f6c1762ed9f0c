package account

import "errors"

var (
	ErrAccountNotFound   = errors.New("managed account not found")
	ErrAlreadyConnected  = errors.New("google ads account already connected")
	ErrNoAdsAccount      = errors.New("no google ads account selected")
	ErrAccessDenied      = errors.New("insufficient permissions for google ads account")
	ErrInvalidCustomerID = errors.New("invalid customer id")
	ErrIdentityMismatch  = errors.New("google identity does not match managed account")
	ErrGoogleUnavailable = errors.New("google ads request failed")
)
