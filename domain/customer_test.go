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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	c := NewCustomer("cust-1", "4321")
	require.True(t, c.Authenticate("4321"))
	require.False(t, c.Authenticate("1234"))
	require.False(t, c.Authenticate(""))
}

func TestTransferMovesFundsAndRecordsBothSides(t *testing.T) {
	from := NewAccount("acc-a", Normal, dec(1000))
	to := NewAccount("acc-b", Debit, dec(500))
	c := NewCustomer("cust-1", "4321", from, to)

	require.NoError(t, c.Transfer(from, to, dec(300)))
	require.True(t, from.Balance().Equal(dec(700)))
	require.True(t, to.Balance().Equal(dec(800)))

	// sender: Withdrawal + Transfer; recipient: Deposit + Transfer
	require.Len(t, from.history, 2)
	require.Equal(t, EntryWithdrawal, from.history[0].Kind())
	require.Equal(t, EntryTransfer, from.history[1].Kind())
	require.Len(t, to.history, 2)
	require.Equal(t, EntryDeposit, to.history[0].Kind())
	require.Equal(t, EntryTransfer, to.history[1].Kind())

	// the two Transfer entries share kind and amount but are distinct records
	require.True(t, from.history[1].Amount().Equal(to.history[1].Amount()))

	requireInvariant(t, from, dec(1000))
	requireInvariant(t, to, dec(500))
}

func TestTransferLockedRecipientLeavesSenderUntouched(t *testing.T) {
	from := NewAccount("acc-a", Normal, dec(1000))
	to := NewAccount("acc-b", Normal, dec(500))
	c := NewCustomer("cust-1", "4321", from, to)

	to.Lock()
	require.ErrorIs(t, c.Transfer(from, to, dec(300)), ErrAccountLocked)

	// no debit without a matching credit
	require.True(t, from.Balance().Equal(dec(1000)))
	require.True(t, to.Balance().Equal(dec(500)))
	require.Empty(t, from.history)
	require.Empty(t, to.history)
}

func TestTransferLockedSenderFails(t *testing.T) {
	from := NewAccount("acc-a", Normal, dec(1000))
	to := NewAccount("acc-b", Normal, dec(500))
	c := NewCustomer("cust-1", "4321", from, to)

	from.Lock()
	require.ErrorIs(t, c.Transfer(from, to, dec(300)), ErrAccountLocked)
	require.True(t, to.Balance().Equal(dec(500)))
}

func TestTransferEligibility(t *testing.T) {
	from := NewAccount("acc-a", Normal, dec(100))
	to := NewAccount("acc-b", Normal, dec(0))
	c := NewCustomer("cust-1", "4321", from, to)

	require.ErrorIs(t, c.Transfer(from, to, dec(0)), ErrInvalidAmount)
	require.ErrorIs(t, c.Transfer(from, to, dec(-5)), ErrInvalidAmount)
	require.ErrorIs(t, c.Transfer(from, to, dec(101)), ErrInsufficientFunds)
	require.ErrorIs(t, c.Transfer(from, from, dec(10)), ErrSameAccount)

	// transferring the exact balance succeeds
	require.NoError(t, c.Transfer(from, to, dec(100)))
	require.True(t, from.Balance().IsZero())
	require.True(t, to.Balance().Equal(dec(100)))
}

func TestTransferRequiresOwnership(t *testing.T) {
	mine := NewAccount("acc-a", Normal, dec(100))
	theirs := NewAccount("acc-b", Normal, dec(100))
	c := NewCustomer("cust-1", "4321", mine)

	require.ErrorIs(t, c.Transfer(theirs, mine, dec(10)), ErrNotPermitted)
	require.True(t, theirs.Balance().Equal(dec(100)))
}

// Crossing transfers take the account mutexes in account-number order, so
// running them concurrently in both directions must neither deadlock nor
// lose money.
func TestConcurrentCrossingTransfersConserveTotal(t *testing.T) {
	a := NewAccount("acc-a", Normal, dec(1000))
	b := NewAccount("acc-b", Normal, dec(1000))
	c := NewCustomer("cust-1", "4321", a, b)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := c.Transfer(a, b, dec(1)); err != nil {
				t.Errorf("a->b: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := c.Transfer(b, a, dec(1)); err != nil {
				t.Errorf("b->a: %v", err)
			}
		}()
	}
	wg.Wait()

	total := a.Balance().Add(b.Balance())
	require.True(t, total.Equal(dec(2000)), "total=%s", total)
	requireInvariant(t, a, dec(1000))
	requireInvariant(t, b, dec(1000))
}
