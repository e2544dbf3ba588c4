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

// Package service exposes the ledger over HTTP and backs every account
// operation with its entity actor.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	goakt "github.com/tochemey/goakt/v4/actor"
	gerrors "github.com/tochemey/goakt/v4/errors"
	"github.com/tochemey/goakt/v4/log"

	"github.com/tochemey/goakt-bank/actors"
	"github.com/tochemey/goakt-bank/directory"
	"github.com/tochemey/goakt-bank/messages"
)

const askTimeout = 5 * time.Second

// LedgerService routes the banking API onto the actor system.
type LedgerService struct {
	actorSystem goakt.ActorSystem
	directory   *directory.Directory
	logger      log.Logger
	port        int
	server      *http.Server
}

// NewLedgerService creates an instance of LedgerService
func NewLedgerService(system goakt.ActorSystem, dir *directory.Directory, port int, logger log.Logger) *LedgerService {
	return &LedgerService{
		actorSystem: system,
		directory:   dir,
		logger:      logger,
		port:        port,
	}
}

// Start starts the service
func (s *LedgerService) Start() {
	go func() {
		s.listenAndServe()
	}()
}

// Stop stops the service
func (s *LedgerService) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *LedgerService) listenAndServe() {
	serverAddr := fmt.Sprintf(":%d", s.port)
	s.server = &http.Server{
		Addr:              serverAddr,
		ReadTimeout:       3 * time.Second,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      time.Second,
		IdleTimeout:       1200 * time.Second,
		Handler:           s.Routes(),
	}

	s.logger.Infof("Ledger service listening on %s", serverAddr)
	if err := s.server.ListenAndServe(); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("failed to start ledger service: %v", errors.Wrap(err, "listen error"))
		}
	}
}

// Routes builds the HTTP handler for the banking API.
func (s *LedgerService) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("POST /api/customers", s.registerCustomer)
	mux.HandleFunc("POST /api/accounts", s.openAccount)
	mux.HandleFunc("GET /api/accounts/{number}", s.getAccount)
	mux.HandleFunc("POST /api/accounts/{number}/deposit", s.deposit)
	mux.HandleFunc("POST /api/accounts/{number}/withdraw", s.withdraw)
	mux.HandleFunc("POST /api/accounts/{number}/interest", s.applyInterest)
	mux.HandleFunc("POST /api/accounts/{number}/lock", s.lockAccount)
	mux.HandleFunc("POST /api/accounts/{number}/unlock", s.unlockAccount)
	mux.HandleFunc("GET /api/accounts/{number}/transactions", s.statement)
	mux.HandleFunc("POST /api/sessions", s.openSession)
	mux.HandleFunc("DELETE /api/sessions/{token}", s.endSession)
	mux.HandleFunc("POST /api/transfers", s.transfer)
	return mux
}

func (s *LedgerService) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "up"})
}

// RegisterCustomerRequest is the POST /api/customers payload. PIN is optional;
// a four digit one is generated when omitted.
type RegisterCustomerRequest struct {
	PIN string `json:"pin,omitempty"`
}

// CustomerResponse carries a newly registered customer.
type CustomerResponse struct {
	CustomerID string `json:"customer_id"`
	PIN        string `json:"pin"`
}

func (s *LedgerService) registerCustomer(w http.ResponseWriter, r *http.Request) {
	var req RegisterCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}

	customer, err := s.directory.RegisterCustomer(req.PIN)
	if err != nil {
		s.logger.Errorf("error registering customer: %v", err)
		countOperation("register_customer", "failure")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	countOperation("register_customer", "success")
	writeJSON(w, http.StatusCreated, CustomerResponse{
		CustomerID: customer.ID(),
		PIN:        customer.PIN(),
	})
}

// OpenAccountRequest is the POST /api/accounts payload.
type OpenAccountRequest struct {
	CustomerID     string  `json:"customer_id"`
	Kind           string  `json:"kind"`
	InitialBalance float64 `json:"initial_balance"`
}

func (s *LedgerService) openAccount(w http.ResponseWriter, r *http.Request) {
	var req OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	accountNumber := uuid.NewString()
	pid, err := s.actorSystem.Spawn(ctx, accountNumber, actors.NewAccountEntity(), goakt.WithLongLived())
	if err != nil {
		s.logger.Errorf("error spawning actor: %v", err)
		countOperation("open_account", "failure")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	reply, err := goakt.Ask(ctx, pid, &messages.OpenAccount{
		CustomerID:     req.CustomerID,
		Kind:           req.Kind,
		InitialBalance: req.InitialBalance,
	}, askTimeout)
	if err != nil {
		s.logger.Errorf("error opening account: %v", err)
		countOperation("open_account", "failure")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if failed, ok := reply.(*messages.CommandFailed); ok {
		// the entity never owned an account, no point keeping it around
		if err := pid.Shutdown(ctx); err != nil {
			s.logger.Errorf("error stopping actor=%s: %v", accountNumber, err)
		}
		countOperation("open_account", failed.Code)
		http.Error(w, failed.Message, httpStatus(failed.Code))
		return
	}

	account, ok := reply.(*messages.Account)
	if !ok {
		http.Error(w, fmt.Sprintf("invalid reply type: %T", reply), http.StatusInternalServerError)
		return
	}

	countOperation("open_account", "success")
	writeJSON(w, http.StatusCreated, account)
}

func (s *LedgerService) getAccount(w http.ResponseWriter, r *http.Request) {
	s.ask(w, r, "get_account", &messages.GetAccount{AccountID: r.PathValue("number")})
}

// AmountRequest is the deposit and withdraw payload.
type AmountRequest struct {
	Amount              float64 `json:"amount"`
	OverdraftProtection bool    `json:"overdraft_protection,omitempty"`
}

func (s *LedgerService) deposit(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	s.ask(w, r, "deposit", &messages.Deposit{
		AccountID: r.PathValue("number"),
		Amount:    req.Amount,
	})
}

func (s *LedgerService) withdraw(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	s.ask(w, r, "withdraw", &messages.Withdraw{
		AccountID:           r.PathValue("number"),
		Amount:              req.Amount,
		OverdraftProtection: req.OverdraftProtection,
	})
}

// InterestRequest is the interest accrual payload.
type InterestRequest struct {
	Rate float64 `json:"rate"`
}

func (s *LedgerService) applyInterest(w http.ResponseWriter, r *http.Request) {
	var req InterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	s.ask(w, r, "apply_interest", &messages.ApplyInterest{
		AccountID: r.PathValue("number"),
		Rate:      req.Rate,
	})
}

func (s *LedgerService) lockAccount(w http.ResponseWriter, r *http.Request) {
	s.ask(w, r, "lock_account", &messages.LockAccount{AccountID: r.PathValue("number")})
}

func (s *LedgerService) unlockAccount(w http.ResponseWriter, r *http.Request) {
	s.ask(w, r, "unlock_account", &messages.UnlockAccount{AccountID: r.PathValue("number")})
}

func (s *LedgerService) statement(w http.ResponseWriter, r *http.Request) {
	s.ask(w, r, "statement", &messages.GetStatement{AccountID: r.PathValue("number")})
}

// OpenSessionRequest is the POST /api/sessions payload.
type OpenSessionRequest struct {
	AccountNumber string `json:"account_number"`
	PIN           string `json:"pin"`
}

// SessionResponse carries the session token returned on authentication.
type SessionResponse struct {
	Token string `json:"token"`
}

func (s *LedgerService) openSession(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}

	token, ok := s.directory.Authenticate(req.AccountNumber, req.PIN)
	if !ok {
		countOperation("open_session", "AUTHENTICATION_FAILED")
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	countOperation("open_session", "success")
	writeJSON(w, http.StatusCreated, SessionResponse{Token: token})
}

func (s *LedgerService) endSession(w http.ResponseWriter, r *http.Request) {
	if !s.directory.EndSession(r.PathValue("token")) {
		countOperation("end_session", "NOT_FOUND")
		http.Error(w, "no session", http.StatusNotFound)
		return
	}
	countOperation("end_session", "success")
	w.WriteHeader(http.StatusNoContent)
}

// TransferRequest is the POST /api/transfers payload. The caller authorizes
// with the session token from POST /api/sessions.
type TransferRequest struct {
	FromAccountID string  `json:"from_account_id"`
	ToAccountID   string  `json:"to_account_id"`
	Amount        float64 `json:"amount"`
}

func (s *LedgerService) transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}

	customer, ok := s.directory.CustomerBySession(bearerToken(r))
	if !ok {
		countOperation("transfer", "AUTHENTICATION_FAILED")
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	pid, err := s.actorSystem.ActorOf(ctx, req.FromAccountID)
	if err != nil {
		if errors.Is(err, gerrors.ErrActorNotFound) {
			countOperation("transfer", "NOT_FOUND")
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}
		s.logger.Errorf("error locating actor: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	reply, err := goakt.Ask(ctx, pid, &messages.TransferFunds{
		CustomerID:    customer.ID(),
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	}, askTimeout)
	if err != nil {
		s.logger.Errorf("error transferring funds: %v", err)
		countOperation("transfer", "failure")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if failed, ok := reply.(*messages.CommandFailed); ok {
		countOperation("transfer", failed.Code)
		http.Error(w, failed.Message, httpStatus(failed.Code))
		return
	}

	countOperation("transfer", "success")
	writeJSON(w, http.StatusOK, reply)
}

// ask routes a command to the account entity named by the request path and
// writes the reply.
func (s *LedgerService) ask(w http.ResponseWriter, r *http.Request, operation string, msg any) {
	ctx := r.Context()
	accountNumber := r.PathValue("number")

	pid, err := s.actorSystem.ActorOf(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, gerrors.ErrActorNotFound) {
			countOperation(operation, "NOT_FOUND")
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}
		s.logger.Errorf("error locating actor: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	reply, err := goakt.Ask(ctx, pid, msg, askTimeout)
	if err != nil {
		s.logger.Errorf("error asking account=%s: %v", accountNumber, err)
		countOperation(operation, "failure")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if failed, ok := reply.(*messages.CommandFailed); ok {
		countOperation(operation, failed.Code)
		http.Error(w, failed.Message, httpStatus(failed.Code))
		return
	}

	countOperation(operation, "success")
	writeJSON(w, http.StatusOK, reply)
}

// httpStatus maps the stable reason codes onto HTTP statuses.
func httpStatus(code string) int {
	switch code {
	case "ACCOUNT_LOCKED":
		return http.StatusLocked
	case "INVALID_AMOUNT", "INVALID_ACCOUNT_KIND", "NO_INTEREST", "SAME_ACCOUNT":
		return http.StatusBadRequest
	case "INSUFFICIENT_FUNDS":
		return http.StatusConflict
	case "NOT_FOUND":
		return http.StatusNotFound
	case "AUTHENTICATION_FAILED":
		return http.StatusUnauthorized
	case "NOT_PERMITTED":
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
