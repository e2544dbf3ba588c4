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
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind identifies the event a Transaction records.
type EntryKind string

const (
	EntryDeposit    EntryKind = "deposit"
	EntryWithdrawal EntryKind = "withdrawal"
	EntryTransfer   EntryKind = "transfer"
	EntryInterest   EntryKind = "interest"
)

// Transaction is an immutable record of one balance-affecting event. The
// amount is always stored as a magnitude; the kind disambiguates direction.
// A transfer produces two entries, one per participating account, sharing
// kind and amount but with independent identity and timestamps.
type Transaction struct {
	kind      EntryKind
	amount    decimal.Decimal
	timestamp time.Time
}

// NewTransaction creates a transaction record. The record does not validate
// the sign of the amount; the account operations that append it do.
func NewTransaction(kind EntryKind, amount decimal.Decimal, timestamp time.Time) Transaction {
	return Transaction{
		kind:      kind,
		amount:    amount,
		timestamp: timestamp,
	}
}

// Kind returns the entry kind.
func (t Transaction) Kind() EntryKind {
	return t.kind
}

// Amount returns the recorded magnitude.
func (t Transaction) Amount() decimal.Decimal {
	return t.amount
}

// Timestamp returns the creation instant. Timestamps are not guaranteed to be
// monotonic across accounts; the two entries of a transfer may differ.
func (t Transaction) Timestamp() time.Time {
	return t.timestamp
}

// Signed returns the entry's contribution to the account balance: positive
// for deposits and interest, negative for withdrawals and zero for transfer
// markers, whose movement is already carried by the paired deposit and
// withdrawal entries.
func (t Transaction) Signed() decimal.Decimal {
	switch t.kind {
	case EntryDeposit, EntryInterest:
		return t.amount
	case EntryWithdrawal:
		return t.amount.Neg()
	default:
		return decimal.Zero
	}
}
