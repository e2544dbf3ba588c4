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

// Package messages defines the commands and replies exchanged with account
// entities. Amounts travel as float64 on the wire; the domain converts them
// to decimals at the boundary.
package messages

import "time"

// LedgerMessage is the common interface implemented by all ledger message
// types. The cbor tags describe the wire shape should the system ever be
// remoted; the in-process host passes the structs as-is.
type LedgerMessage interface {
	ledgerMessage()
}

// OpenAccount asks an entity to open its account under the given customer.
type OpenAccount struct {
	CustomerID     string  `cbor:"customer_id,omitempty"`
	Kind           string  `cbor:"kind,omitempty"`
	InitialBalance float64 `cbor:"initial_balance,omitempty"`
}

func (*OpenAccount) ledgerMessage() {}

// Deposit credits the account.
type Deposit struct {
	AccountID string  `cbor:"account_id,omitempty"`
	Amount    float64 `cbor:"amount,omitempty"`
}

func (*Deposit) ledgerMessage() {}

// Withdraw debits the account under its kind's eligibility rule.
type Withdraw struct {
	AccountID           string  `cbor:"account_id,omitempty"`
	Amount              float64 `cbor:"amount,omitempty"`
	OverdraftProtection bool    `cbor:"overdraft_protection,omitempty"`
}

func (*Withdraw) ledgerMessage() {}

// ApplyInterest accrues interest at the given percentage rate.
type ApplyInterest struct {
	AccountID string  `cbor:"account_id,omitempty"`
	Rate      float64 `cbor:"rate,omitempty"`
}

func (*ApplyInterest) ledgerMessage() {}

// LockAccount locks the account.
type LockAccount struct {
	AccountID string `cbor:"account_id,omitempty"`
}

func (*LockAccount) ledgerMessage() {}

// UnlockAccount unlocks the account.
type UnlockAccount struct {
	AccountID string `cbor:"account_id,omitempty"`
}

func (*UnlockAccount) ledgerMessage() {}

// GetAccount asks for the current account state.
type GetAccount struct {
	AccountID string `cbor:"account_id,omitempty"`
}

func (*GetAccount) ledgerMessage() {}

// GetStatement asks for the ordered transaction history.
type GetStatement struct {
	AccountID string `cbor:"account_id,omitempty"`
}

func (*GetStatement) ledgerMessage() {}

// TransferFunds moves an amount from this entity's account to another one,
// authorized by the owning customer. Handled by the sender's entity.
type TransferFunds struct {
	CustomerID    string  `cbor:"customer_id,omitempty"`
	FromAccountID string  `cbor:"from_account_id,omitempty"`
	ToAccountID   string  `cbor:"to_account_id,omitempty"`
	Amount        float64 `cbor:"amount,omitempty"`
}

func (*TransferFunds) ledgerMessage() {}

// Account is the account state in replies.
type Account struct {
	AccountID string  `cbor:"account_id,omitempty"`
	Kind      string  `cbor:"kind,omitempty"`
	Balance   float64 `cbor:"balance,omitempty"`
	Locked    bool    `cbor:"locked,omitempty"`
}

func (*Account) ledgerMessage() {}

// Entry is one transaction record in a statement reply.
type Entry struct {
	Kind      string    `cbor:"kind,omitempty"`
	Amount    float64   `cbor:"amount,omitempty"`
	Timestamp time.Time `cbor:"timestamp,omitempty"`
}

// Statement carries the ordered history of one account.
type Statement struct {
	AccountID string  `cbor:"account_id,omitempty"`
	Entries   []Entry `cbor:"entries,omitempty"`
}

func (*Statement) ledgerMessage() {}

// InterestApplied reports the accrued amount together with the new state.
type InterestApplied struct {
	Account Account `cbor:"account,omitempty"`
	Accrued float64 `cbor:"accrued,omitempty"`
}

func (*InterestApplied) ledgerMessage() {}

// TransferResult carries both accounts' states after a successful transfer.
type TransferResult struct {
	From Account `cbor:"from,omitempty"`
	To   Account `cbor:"to,omitempty"`
}

func (*TransferResult) ledgerMessage() {}

// CommandFailed reports a domain rule failure as a status value. Code is one
// of the stable reason codes from the domain package; the account involved is
// left untouched.
type CommandFailed struct {
	Code    string `cbor:"code,omitempty"`
	Message string `cbor:"message,omitempty"`
}

func (*CommandFailed) ledgerMessage() {}
