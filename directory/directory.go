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

// Package directory is the registry collaborator around the ledger core:
// it opens accounts, registers customers, issues session tokens and resolves
// lookups. It is attached to the actor system as an extension so account
// entities can reach it from their mailbox.
package directory

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tochemey/goakt/v4/extension"
	"go.uber.org/atomic"

	"github.com/tochemey/goakt-bank/domain"
)

// ExtensionID is the identifier under which the directory is registered with
// the actor system.
const ExtensionID = "Directory"

// Directory holds non-owning references to customers and, transitively,
// accounts. Customers remain the logical owners of their accounts; the
// directory only indexes them for lookup and session handling.
type Directory struct {
	mu        sync.Mutex
	customers map[string]*domain.Customer
	accounts  map[string]*domain.Account
	owners    map[string]*domain.Customer
	sessions  map[string]*domain.Customer
	connected *atomic.Bool
}

var _ extension.Extension = (*Directory)(nil)

// New creates an empty directory.
func New() *Directory {
	return &Directory{
		customers: make(map[string]*domain.Customer),
		accounts:  make(map[string]*domain.Account),
		owners:    make(map[string]*domain.Customer),
		sessions:  make(map[string]*domain.Customer),
		connected: atomic.NewBool(false),
	}
}

// ID implements extension.Extension.
func (d *Directory) ID() string {
	return ExtensionID
}

// Start readies the directory.
// nolint
func (d *Directory) Start(ctx context.Context) error {
	d.connected.Store(true)
	return nil
}

// Stop drops all registrations and sessions.
func (d *Directory) Stop() error {
	if !d.connected.Load() {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.customers = make(map[string]*domain.Customer)
	d.accounts = make(map[string]*domain.Account)
	d.owners = make(map[string]*domain.Customer)
	d.sessions = make(map[string]*domain.Customer)
	d.connected.Store(false)
	return nil
}

// RegisterCustomer creates and registers a customer. When pin is empty a
// four-digit PIN is generated; the generator is demo-grade on purpose.
func (d *Directory) RegisterCustomer(pin string) (*domain.Customer, error) {
	if !d.connected.Load() {
		return nil, errors.New("directory is not started")
	}
	if pin == "" {
		pin = fmt.Sprintf("%04d", rand.Intn(9000)+1000)
	}
	customer := domain.NewCustomer(uuid.NewString(), pin)
	d.mu.Lock()
	d.customers[customer.ID()] = customer
	d.mu.Unlock()
	return customer, nil
}

// OpenAccount opens an account of the given kind under the customer and
// indexes it. An unrecognized kind fails hard with ErrInvalidAccountKind;
// an unknown customer reports ErrNotFound.
func (d *Directory) OpenAccount(number, customerID, kind string, initial decimal.Decimal) (*domain.Account, error) {
	parsed, err := domain.ParseKind(kind)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	customer, ok := d.customers[customerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if _, exists := d.accounts[number]; exists {
		return nil, fmt.Errorf("account %s already registered", number)
	}

	account := domain.NewAccount(number, parsed, initial)
	customer.AddAccount(account)
	d.accounts[number] = account
	d.owners[number] = customer
	return account, nil
}

// Customer looks up a customer by identifier.
func (d *Directory) Customer(id string) (*domain.Customer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.customers[id]
	return c, ok
}

// Account looks up an account by number.
func (d *Directory) Account(number string) (*domain.Account, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.accounts[number]
	return a, ok
}

// Accounts returns all registered accounts.
func (d *Directory) Accounts() []*domain.Account {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*domain.Account, 0, len(d.accounts))
	for _, a := range d.accounts {
		out = append(out, a)
	}
	return out
}

// CustomerByAccount resolves the owner of an account number.
func (d *Directory) CustomerByAccount(number string) (*domain.Customer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.owners[number]
	return c, ok
}

// Authenticate checks the PIN of the account's owner and, on success, issues
// an opaque session token. Failure is reported as "no session", never as a
// hard error.
func (d *Directory) Authenticate(accountNumber, pin string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	customer, ok := d.owners[accountNumber]
	if !ok || !customer.Authenticate(pin) {
		return "", false
	}
	token := uuid.NewString()
	d.sessions[token] = customer
	return token, true
}

// CustomerBySession resolves the customer behind a session token.
func (d *Directory) CustomerBySession(token string) (*domain.Customer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.sessions[token]
	return c, ok
}

// EndSession invalidates a session token. Reports whether the token existed.
func (d *Directory) EndSession(token string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.sessions[token]; !ok {
		return false
	}
	delete(d.sessions, token)
	return true
}
