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

package cmd

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	goakt "github.com/tochemey/goakt/v4/actor"
	"github.com/tochemey/goakt/v4/log"

	"github.com/tochemey/goakt-bank/actors"
	"github.com/tochemey/goakt-bank/directory"
	"github.com/tochemey/goakt-bank/messages"
)

// demoCmd replays a short in-process teller session against the actor system
// so the ledger can be exercised without an HTTP client.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Replay a scripted teller session against an in-process ledger",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := log.NewSlog(log.InfoLevel, os.Stdout)

		dir := directory.New()
		if err := dir.Start(ctx); err != nil {
			logger.Fatal(err)
			os.Exit(1)
		}

		actorSystem, err := goakt.NewActorSystem("ledgerDemo",
			goakt.WithLogger(log.DiscardLogger),
			goakt.WithActorInitMaxRetries(3),
			goakt.WithExtensions(dir))
		if err != nil {
			logger.Fatal(err)
			os.Exit(1)
		}
		if err := actorSystem.Start(ctx); err != nil {
			logger.Fatal(err)
			os.Exit(1)
		}

		open := func(customerID, kind string, initial float64) (*goakt.PID, string) {
			number := uuid.NewString()
			pid, err := actorSystem.Spawn(ctx, number, actors.NewAccountEntity(), goakt.WithLongLived())
			if err != nil {
				logger.Fatal(err)
				os.Exit(1)
			}
			mustAsk(logger, ctx, pid, &messages.OpenAccount{
				CustomerID:     customerID,
				Kind:           kind,
				InitialBalance: initial,
			})
			return pid, number
		}

		alice, err := dir.RegisterCustomer("")
		if err != nil {
			logger.Fatal(err)
			os.Exit(1)
		}
		bob, err := dir.RegisterCustomer("")
		if err != nil {
			logger.Fatal(err)
			os.Exit(1)
		}

		checking, checkingNumber := open(alice.ID(), "normal", 1000)
		savings, _ := open(alice.ID(), "savings", 2000)
		bobCard, bobNumber := open(bob.ID(), "debit", 500)

		logger.Infof("customer=%s pin=%s accounts: normal=%s", alice.ID(), alice.PIN(), checkingNumber)

		mustAsk(logger, ctx, checking, &messages.Deposit{Amount: 250})
		mustAsk(logger, ctx, checking, &messages.Withdraw{Amount: 400})

		// overdraft protection allows drawing past the balance by the ceiling
		mustAsk(logger, ctx, checking, &messages.Withdraw{Amount: 900, OverdraftProtection: true})
		mustAsk(logger, ctx, checking, &messages.Deposit{Amount: 1000})

		reply := mustAsk(logger, ctx, checking, &messages.ApplyInterest{Rate: 2.5})
		if applied, ok := reply.(*messages.InterestApplied); ok {
			logger.Infof("interest accrued=%.2f balance=%.2f", applied.Accrued, applied.Account.Balance)
		}

		// savings statements and withdrawals only work while the account is locked
		mustAsk(logger, ctx, savings, &messages.LockAccount{})
		mustAsk(logger, ctx, savings, &messages.Withdraw{Amount: 100})
		reply = mustAsk(logger, ctx, savings, &messages.GetStatement{})
		if statement, ok := reply.(*messages.Statement); ok {
			for _, entry := range statement.Entries {
				logger.Infof("savings entry kind=%s amount=%.2f", entry.Kind, entry.Amount)
			}
		}
		mustAsk(logger, ctx, savings, &messages.UnlockAccount{})

		// a transfer authorized through a session
		token, ok := dir.Authenticate(checkingNumber, alice.PIN())
		if !ok {
			logger.Fatal("no session")
			os.Exit(1)
		}
		customer, _ := dir.CustomerBySession(token)
		reply = mustAsk(logger, ctx, checking, &messages.TransferFunds{
			CustomerID:    customer.ID(),
			FromAccountID: checkingNumber,
			ToAccountID:   bobNumber,
			Amount:        300,
		})
		if failed, ok := reply.(*messages.CommandFailed); ok {
			logger.Infof("transfer rejected code=%s", failed.Code)
		}
		if result, ok := reply.(*messages.TransferResult); ok {
			logger.Infof("transfer done from=%.2f to=%.2f", result.From.Balance, result.To.Balance)
		}
		dir.EndSession(token)

		reply = mustAsk(logger, ctx, bobCard, &messages.GetAccount{})
		if account, ok := reply.(*messages.Account); ok {
			logger.Infof("account=%s kind=%s balance=%.2f", account.AccountID, account.Kind, account.Balance)
		}

		if err := actorSystem.Stop(ctx); err != nil {
			logger.Errorf("error stopping actor system: %v", err)
		}
		if err := dir.Stop(); err != nil {
			logger.Errorf("error stopping directory: %v", err)
		}
	},
}

func mustAsk(logger log.Logger, ctx context.Context, pid *goakt.PID, msg any) any {
	reply, err := goakt.Ask(ctx, pid, msg, time.Second)
	if err != nil {
		logger.Fatal(err)
		os.Exit(1)
	}
	if failed, ok := reply.(*messages.CommandFailed); ok {
		logger.Warnf("command rejected code=%s message=%s", failed.Code, failed.Message)
	}
	return reply
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
