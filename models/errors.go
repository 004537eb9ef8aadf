// models/errors.go
package models

import "errors"

// Domain errors surfaced by repositories and services. Controllers map
// these to HTTP statuses at their own boundary; anything unrecognized
// becomes a logged 500.
var (
	// ErrUserNotFound: the user id or email does not resolve
	ErrUserNotFound = errors.New("user not found")
	// ErrPartnerNotFound: the id does not resolve to a partner account
	ErrPartnerNotFound = errors.New("partner not found")
	// ErrOrderNotFound: the order id does not resolve
	ErrOrderNotFound = errors.New("order not found")
	// ErrCommissionNotFound: the commission id does not resolve
	ErrCommissionNotFound = errors.New("commission not found")

	// ErrCommissionProcessed: approve/reject attempted on a commission
	// that already left the pending state
	ErrCommissionProcessed = errors.New("commission already processed")
	// ErrCommissionNotApproved: paid attempted before approval
	ErrCommissionNotApproved = errors.New("commission must be approved first")
	// ErrCommissionExists: a commission for this order was already created
	ErrCommissionExists = errors.New("commission already exists for order")
	// ErrCommissionStateConflict: a conditional status transition matched
	// nothing because the record is no longer in the expected state
	ErrCommissionStateConflict = errors.New("commission not in expected state")

	// ErrNotAuthorized: role or ownership check failed
	ErrNotAuthorized = errors.New("not authorized")

	// ErrEmailTaken: registration with an existing email
	ErrEmailTaken = errors.New("user already exists with this email")
)
