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

package actors

import (
	"github.com/shopspring/decimal"
	"github.com/tochemey/goakt/v4/actor"

	"github.com/tochemey/goakt-bank/directory"
	"github.com/tochemey/goakt-bank/domain"
	"github.com/tochemey/goakt-bank/messages"
)

// AccountEntity is the actor guarding a single account. The actor name is the
// account number; the underlying record lives in the shared directory so that
// cross-account transfers can reach both sides.
type AccountEntity struct {
	account   *domain.Account
	directory *directory.Directory
}

var _ actor.Actor = (*AccountEntity)(nil)

// NewAccountEntity creates an instance of AccountEntity
func NewAccountEntity() *AccountEntity {
	return &AccountEntity{}
}

// PreStart is used to pre-set initial values for the actor
func (x *AccountEntity) PreStart(ctx *actor.Context) error {
	x.directory = ctx.Extension(directory.ExtensionID).(*directory.Directory)
	// the account exists only after OpenAccount has been handled
	x.account, _ = x.directory.Account(ctx.ActorName())
	return nil
}

// Receive handles the messages sent to the actor
func (x *AccountEntity) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *actor.PostStart:

	case *messages.OpenAccount:
		ctx.Logger().Infof("opening account=%s kind=%s", ctx.Self().Name(), msg.Kind)
		if x.account != nil {
			// already open, just report the current state
			ctx.Response(x.snapshot())
			return
		}
		account, err := x.directory.OpenAccount(ctx.Self().Name(), msg.CustomerID, msg.Kind, decimal.NewFromFloat(msg.InitialBalance))
		if err != nil {
			x.fail(ctx, err)
			return
		}
		x.account = account
		ctx.Response(x.snapshot())

	case *messages.Deposit:
		ctx.Logger().Infof("depositing %.2f into account=%s", msg.Amount, ctx.Self().Name())
		if !x.opened(ctx) {
			return
		}
		if err := x.account.Deposit(decimal.NewFromFloat(msg.Amount)); err != nil {
			x.fail(ctx, err)
			return
		}
		ctx.Response(x.snapshot())

	case *messages.Withdraw:
		ctx.Logger().Infof("withdrawing %.2f from account=%s", msg.Amount, ctx.Self().Name())
		if !x.opened(ctx) {
			return
		}
		if err := x.account.Withdraw(decimal.NewFromFloat(msg.Amount), msg.OverdraftProtection); err != nil {
			x.fail(ctx, err)
			return
		}
		ctx.Response(x.snapshot())

	case *messages.ApplyInterest:
		ctx.Logger().Infof("applying interest rate=%.2f on account=%s", msg.Rate, ctx.Self().Name())
		if !x.opened(ctx) {
			return
		}
		accrued, err := x.account.ApplyInterest(decimal.NewFromFloat(msg.Rate))
		if err != nil {
			x.fail(ctx, err)
			return
		}
		ctx.Response(&messages.InterestApplied{
			Account: *x.snapshot(),
			Accrued: accrued.InexactFloat64(),
		})

	case *messages.LockAccount:
		if !x.opened(ctx) {
			return
		}
		x.account.Lock()
		ctx.Response(x.snapshot())

	case *messages.UnlockAccount:
		if !x.opened(ctx) {
			return
		}
		x.account.Unlock()
		ctx.Response(x.snapshot())

	case *messages.GetAccount:
		if !x.opened(ctx) {
			return
		}
		ctx.Response(x.snapshot())

	case *messages.GetStatement:
		if !x.opened(ctx) {
			return
		}
		history, err := x.account.Statement()
		if err != nil {
			x.fail(ctx, err)
			return
		}
		entries := make([]messages.Entry, 0, len(history))
		for _, tx := range history {
			entries = append(entries, messages.Entry{
				Kind:      string(tx.Kind()),
				Amount:    tx.Amount().InexactFloat64(),
				Timestamp: tx.Timestamp(),
			})
		}
		ctx.Response(&messages.Statement{
			AccountID: x.account.Number(),
			Entries:   entries,
		})

	case *messages.TransferFunds:
		ctx.Logger().Infof("transferring %.2f from account=%s to account=%s", msg.Amount, msg.FromAccountID, msg.ToAccountID)
		if !x.opened(ctx) {
			return
		}
		x.transfer(ctx, msg)

	default:
		ctx.Unhandled()
	}
}

// PostStop is used to free-up resources when the actor stops
func (x *AccountEntity) PostStop(*actor.Context) error {
	return nil
}

// transfer runs the customer-guarded move on the sender's side. Both account
// records carry their own locks so touching the recipient here is safe.
func (x *AccountEntity) transfer(ctx *actor.ReceiveContext, msg *messages.TransferFunds) {
	customer, ok := x.directory.Customer(msg.CustomerID)
	if !ok {
		x.fail(ctx, domain.ErrNotFound)
		return
	}
	recipient, ok := x.directory.Account(msg.ToAccountID)
	if !ok {
		x.fail(ctx, domain.ErrNotFound)
		return
	}
	if err := customer.Transfer(x.account, recipient, decimal.NewFromFloat(msg.Amount)); err != nil {
		x.fail(ctx, err)
		return
	}
	ctx.Response(&messages.TransferResult{
		From: *x.snapshot(),
		To:   *snapshot(recipient),
	})
}

// opened replies with a NOT_FOUND failure when the account was never opened.
func (x *AccountEntity) opened(ctx *actor.ReceiveContext) bool {
	if x.account == nil {
		x.fail(ctx, domain.ErrNotFound)
		return false
	}
	return true
}

func (x *AccountEntity) fail(ctx *actor.ReceiveContext, err error) {
	ctx.Response(&messages.CommandFailed{
		Code:    domain.Reason(err),
		Message: err.Error(),
	})
}

func (x *AccountEntity) snapshot() *messages.Account {
	return snapshot(x.account)
}

func snapshot(account *domain.Account) *messages.Account {
	return &messages.Account{
		AccountID: account.Number(),
		Kind:      string(account.Kind()),
		Balance:   account.Balance().InexactFloat64(),
		Locked:    account.IsLocked(),
	}
}
