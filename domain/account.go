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

// Package domain holds the ledger core: accounts, transactions, customers and
// the transfer protocol. It is free of any transport or actor concern; the
// actors package hosts these types behind one mailbox per account.
package domain

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Kind discriminates the account variants. Each kind binds its own withdraw,
// interest and statement policy; every other rule is shared.
type Kind string

const (
	Normal  Kind = "normal"
	Debit   Kind = "debit"
	Savings Kind = "savings"
)

// ParseKind validates an account kind received at the opening boundary.
// Matching is case-insensitive; the canonical lowercase value is returned.
func ParseKind(s string) (Kind, error) {
	switch kind := Kind(strings.ToLower(s)); kind {
	case Normal, Debit, Savings:
		return kind, nil
	default:
		return "", ErrInvalidAccountKind
	}
}

// overdraftCeiling is the fixed extra amount a Normal account may withdraw
// beyond its balance when overdraft protection is requested. It is an
// absolute constant, not proportional to the balance.
var overdraftCeiling = decimal.NewFromInt(100)

var oneHundred = decimal.NewFromInt(100)

// policy carries the per-kind behavior. Keeping the variant logic in plain
// functions over the one shared account record keeps every balance mutation
// in this file and auditable.
type policy struct {
	withdraw  func(a *Account, amount decimal.Decimal, overdraft bool) error
	interest  func(a *Account, rate decimal.Decimal) (decimal.Decimal, error)
	statement func(a *Account) ([]Transaction, error)
}

var policies = map[Kind]policy{
	Normal: {
		withdraw:  normalWithdraw,
		interest:  normalInterest,
		statement: lockedGuardedStatement,
	},
	Debit: {
		withdraw:  debitWithdraw,
		interest:  debitInterest,
		statement: lockedGuardedStatement,
	},
	Savings: {
		withdraw:  savingsWithdraw,
		interest:  savingsInterest,
		statement: savingsStatement,
	},
}

// Account is a balance holder with an append-only history. The balance always
// equals the opening balance plus the signed sum of the history; any mutation
// path that breaks that is a bug. All operations take the account mutex;
// transfers take both participants' mutexes in account-number order.
type Account struct {
	mu      sync.Mutex
	number  string
	kind    Kind
	balance decimal.Decimal
	locked  bool
	history []Transaction
}

// NewAccount opens an account with the given number, kind and opening
// balance. The opening balance produces no history entry.
func NewAccount(number string, kind Kind, initial decimal.Decimal) *Account {
	return &Account{
		number:  number,
		kind:    kind,
		balance: initial,
	}
}

// Number returns the externally visible account identifier.
func (a *Account) Number() string {
	return a.number
}

// Kind returns the account kind.
func (a *Account) Kind() Kind {
	return a.kind
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// IsLocked reports whether the account is locked.
func (a *Account) IsLocked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.locked
}

// Lock locks the account. Idempotent; appends no history entry.
func (a *Account) Lock() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.locked = true
}

// Unlock unlocks the account. Idempotent; appends no history entry.
func (a *Account) Unlock() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.locked = false
}

// Deposit increases the balance and records a Deposit entry. It reports
// ErrAccountLocked on a locked account and ErrInvalidAmount for non-positive
// amounts; in both cases the account is left untouched.
func (a *Account) Deposit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.locked {
		return ErrAccountLocked
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	a.credit(EntryDeposit, amount)
	return nil
}

// Withdraw decreases the balance under the account kind's eligibility rule
// and records a Withdrawal entry. The overdraft flag only means something to
// Normal accounts. On any failure the account is left untouched.
func (a *Account) Withdraw(amount decimal.Decimal, overdraft bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return policies[a.kind].withdraw(a, amount, overdraft)
}

// ApplyInterest accrues interest per the account kind's formula, records an
// Interest entry and returns the accrued amount.
func (a *Account) ApplyInterest(rate decimal.Decimal) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return policies[a.kind].interest(a, rate)
}

// Statement returns a copy of the ordered transaction history, subject to the
// account kind's readability rule.
func (a *Account) Statement() ([]Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return policies[a.kind].statement(a)
}

// credit and debit are the only two balance mutators. Callers hold a.mu.
// Every call appends exactly one matching history entry.

func (a *Account) credit(kind EntryKind, amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
	a.history = append(a.history, NewTransaction(kind, amount, time.Now()))
}

func (a *Account) debit(kind EntryKind, amount decimal.Decimal) {
	a.balance = a.balance.Sub(amount)
	a.history = append(a.history, NewTransaction(kind, amount, time.Now()))
}

// record appends a zero-weight marker entry without touching the balance.
// Used for the Transfer entries paired across the two accounts of a transfer.
func (a *Account) record(kind EntryKind, amount decimal.Decimal) {
	a.history = append(a.history, NewTransaction(kind, amount, time.Now()))
}

func normalWithdraw(a *Account, amount decimal.Decimal, overdraft bool) error {
	if a.locked {
		return ErrAccountLocked
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	ceiling := a.balance
	if overdraft {
		ceiling = ceiling.Add(overdraftCeiling)
	}
	if amount.GreaterThan(ceiling) {
		return ErrInsufficientFunds
	}
	a.debit(EntryWithdrawal, amount)
	return nil
}

func debitWithdraw(a *Account, amount decimal.Decimal, _ bool) error {
	if a.locked {
		return ErrAccountLocked
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.debit(EntryWithdrawal, amount)
	return nil
}

// savingsWithdraw keeps the inverted lock convention of the legacy teller:
// the withdrawal only runs while the account is locked, and then without any
// amount or funds check; while unlocked it reports an invalid withdrawal.
// Deliberately not normalized; pinned by TestSavingsWithdrawQuirk. See
// DESIGN.md.
func savingsWithdraw(a *Account, amount decimal.Decimal, _ bool) error {
	if a.locked {
		a.debit(EntryWithdrawal, amount)
		return nil
	}
	return ErrInvalidAmount
}

// normalInterest accrues balance*rate/100. A zero balance still records an
// Interest entry of amount zero.
func normalInterest(a *Account, rate decimal.Decimal) (decimal.Decimal, error) {
	if a.locked {
		return decimal.Zero, ErrAccountLocked
	}
	accrued := a.balance.Mul(rate).Div(oneHundred)
	a.credit(EntryInterest, accrued)
	return accrued, nil
}

func debitInterest(a *Account, _ decimal.Decimal) (decimal.Decimal, error) {
	if a.locked {
		return decimal.Zero, ErrAccountLocked
	}
	return decimal.Zero, ErrNoInterest
}

// savingsInterest accrues balance + rate/100, not balance*rate/100. The
// additive formula comes straight from the legacy teller and is almost
// certainly a defect there; preserved as-is and pinned by
// TestSavingsInterestQuirk. See DESIGN.md.
func savingsInterest(a *Account, rate decimal.Decimal) (decimal.Decimal, error) {
	if a.locked {
		return decimal.Zero, ErrAccountLocked
	}
	accrued := a.balance.Add(rate.Div(oneHundred))
	a.credit(EntryInterest, accrued)
	return accrued, nil
}

func lockedGuardedStatement(a *Account) ([]Transaction, error) {
	if a.locked {
		return nil, ErrAccountLocked
	}
	return a.copyHistory(), nil
}

// savingsStatement is readable only while the account is locked, the inverse
// of the other kinds. Preserved legacy behavior; see DESIGN.md.
func savingsStatement(a *Account) ([]Transaction, error) {
	if !a.locked {
		return nil, ErrAccountLocked
	}
	return a.copyHistory(), nil
}

func (a *Account) copyHistory() []Transaction {
	out := make([]Transaction, len(a.history))
	copy(out, a.history)
	return out
}
