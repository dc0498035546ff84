package entitlement

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPackage is wrapped by PurchaseError when the package is not in the catalog.
	ErrUnknownPackage = errors.New("unknown package")
	// ErrAlreadyEntitled is returned by Subscription.Purchase when the user is already pro.
	ErrAlreadyEntitled = errors.New("already entitled")
)

// PurchaseError reports a purchase that could not be completed.
// A declined purchase is not an error.
type PurchaseError struct {
	Package string
	Err     error
}

func (e *PurchaseError) Error() string {
	return fmt.Sprintf("purchase %s: %v", e.Package, e.Err)
}

func (e *PurchaseError) Unwrap() error { return e.Err }

// RestoreError reports a restore that could not be completed.
// Finding no prior purchase is not an error.
type RestoreError struct {
	Err error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore: %v", e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }
