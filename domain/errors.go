// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package domain

import "errors"

// Domain rule failures. All of them are recoverable statuses reported to the
// caller; none of them leaves account state changed. Only ErrInvalidAccountKind
// is a hard failure of the creating call.
var (
	// ErrAccountLocked is reported for deposit, withdraw, interest and
	// statement attempts on a locked account.
	ErrAccountLocked = errors.New("account is locked")

	// ErrInvalidAmount is reported for non-positive deposit, withdrawal or
	// transfer amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds is reported when a withdrawal exceeds the
	// available balance plus the overdraft ceiling where applicable.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAccountKind is reported when an unrecognized account kind is
	// requested at opening time.
	ErrInvalidAccountKind = errors.New("invalid account kind")

	// ErrAuthenticationFailed is reported on a PIN mismatch. The directory
	// surfaces it as "no session" rather than a hard error.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNoInterest is reported when interest is applied to an account kind
	// that does not earn interest.
	ErrNoInterest = errors.New("account does not earn interest")

	// ErrSameAccount is reported when a transfer names the same account on
	// both sides.
	ErrSameAccount = errors.New("source and destination accounts are the same")

	// ErrNotFound is reported when an account or customer lookup misses.
	ErrNotFound = errors.New("not found")

	// ErrNotPermitted is reported when a customer attempts a transfer from an
	// account it does not own.
	ErrNotPermitted = errors.New("account is not owned by customer")
)

// Reason maps a domain error to a stable reason code. Callers render the code
// however they see fit; the HTTP layer turns it into a status code.
func Reason(err error) string {
	switch {
	case err == nil:
		return "OK"
	case errors.Is(err, ErrAccountLocked):
		return "ACCOUNT_LOCKED"
	case errors.Is(err, ErrInvalidAmount):
		return "INVALID_AMOUNT"
	case errors.Is(err, ErrInsufficientFunds):
		return "INSUFFICIENT_FUNDS"
	case errors.Is(err, ErrInvalidAccountKind):
		return "INVALID_ACCOUNT_KIND"
	case errors.Is(err, ErrAuthenticationFailed):
		return "AUTHENTICATION_FAILED"
	case errors.Is(err, ErrNoInterest):
		return "NO_INTEREST"
	case errors.Is(err, ErrSameAccount):
		return "SAME_ACCOUNT"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrNotPermitted):
		return "NOT_PERMITTED"
	default:
		return "INTERNAL"
	}
}
