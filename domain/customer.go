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

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Customer owns one or more accounts and authorizes transfers out of them.
// The PIN is assigned at construction and immutable; authentication is an
// exact string comparison with no lockout or rate limiting. That is the
// collaborator contract this core exposes, isolated here so a stronger
// scheme can replace it without touching account logic.
type Customer struct {
	mu       sync.Mutex
	id       string
	pin      string
	accounts []*Account
}

// NewCustomer creates a customer with its PIN and initial accounts.
func NewCustomer(id, pin string, accounts ...*Account) *Customer {
	return &Customer{
		id:       id,
		pin:      pin,
		accounts: accounts,
	}
}

// ID returns the customer identifier.
func (c *Customer) ID() string {
	return c.id
}

// PIN returns the shared secret. It exists for the directory's session
// handling and for seeding demos; nothing else should read it.
func (c *Customer) PIN() string {
	return c.pin
}

// Authenticate checks the entered PIN against the stored one.
func (c *Customer) Authenticate(pin string) bool {
	return pin == c.pin
}

// AddAccount attaches an account to the customer.
func (c *Customer) AddAccount(a *Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, a)
}

// Accounts returns the customer's accounts.
func (c *Customer) Accounts() []*Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Owns reports whether the customer owns the account with the given number.
func (c *Customer) Owns(number string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.accounts {
		if a.Number() == number {
			return true
		}
	}
	return false
}

// Transfer moves amount from one of the customer's accounts to the recipient.
// It is the guarded form of the protocol: every eligibility check runs before
// either account is touched, so the transfer is all-or-nothing. A simpler
// withdraw-then-deposit form exists but is not used here: with a locked
// recipient the deposit half silently fails and leaves the sender debited
// with no matching credit.
//
// Both accounts' mutexes are taken in ascending account-number order so that
// two transfers crossing in opposite directions cannot deadlock.
//
// On success the sender's history gains a Withdrawal entry plus a Transfer
// entry and the recipient's a Deposit entry plus a Transfer entry. The two
// Transfer entries share kind and amount but are independent records.
func (c *Customer) Transfer(from, to *Account, amount decimal.Decimal) error {
	if !c.Owns(from.Number()) {
		return ErrNotPermitted
	}
	if from.Number() == to.Number() {
		return ErrSameAccount
	}

	first, second := from, to
	if second.number < first.number {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if from.locked || to.locked {
		return ErrAccountLocked
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(from.balance) {
		return ErrInsufficientFunds
	}

	from.debit(EntryWithdrawal, amount)
	from.record(EntryTransfer, amount)
	to.credit(EntryDeposit, amount)
	to.record(EntryTransfer, amount)
	return nil
}
