// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/userdesk/internal/platform/sec"
	"github.com/taibuivan/userdesk/internal/users/auth"
)

const (
	testSecret      = "unit-test-secret-with-enough-bytes!!"
	testVerifyURL   = "https://app.example.test/verify-account"
	alicePassword   = "Wonder1and!"
	aliceUsername   = "alice"
	aliceEmail      = "alice@example.com"
	anotherPassword = "LookingGl4ss!"
)

// fakeClock is a manually advanced, goroutine-safe time source.
type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func newClock() *fakeClock {
	return &fakeClock{current: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *fakeClock) Advance(step time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(step)
}

// recordingNotifier keeps every mail it is asked to send.
type recordingNotifier struct {
	mu    sync.Mutex
	mails []auth.VerificationMail
	err   error
}

func (n *recordingNotifier) SendVerification(_ context.Context, mail auth.VerificationMail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mails = append(n.mails, mail)
	return n.err
}

// lastToken extracts the token from the most recent mailed link.
func (n *recordingNotifier) lastToken(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.mails, "no verification mail was sent")

	link, err := url.Parse(n.mails[len(n.mails)-1].Link)
	require.NoError(t, err)
	return link.Query().Get("token")
}

// fixture wires a Service over the in-memory repository.
type fixture struct {
	clock    *fakeClock
	accounts *auth.MemoryAccountRepository
	tokens   *sec.TokenService
	notifier *recordingNotifier
	service  *auth.Service
}

func newFixture(t *testing.T, opts ...auth.Option) *fixture {
	t.Helper()

	clock := newClock()
	tokens, err := sec.NewTokenService(testSecret, "userdesk.test", sec.WithClock(clock.Now))
	require.NoError(t, err)

	f := &fixture{
		clock:    clock,
		accounts: auth.NewMemoryAccountRepository(),
		tokens:   tokens,
		notifier: &recordingNotifier{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]auth.Option{auth.WithClock(clock.Now)}, opts...)

	f.service = auth.NewService(
		f.accounts,
		sec.NewPasswordHasher(bcrypt.MinCost),
		tokens,
		f.notifier,
		auth.ServiceConfig{VerificationURL: testVerifyURL},
		logger,
		opts...,
	)
	return f
}

// register enrolls alice and returns her account id.
func (f *fixture) register(t *testing.T) string {
	t.Helper()
	dob := time.Date(1995, 5, 4, 0, 0, 0, 0, time.UTC)
	result, err := f.service.Register(context.Background(), auth.RegisterInput{
		FirstName:   "Alice",
		LastName:    "Liddell",
		Username:    aliceUsername,
		Email:       aliceEmail,
		Password:    alicePassword,
		DateOfBirth: &dob,
	})
	require.NoError(t, err)
	return result.AccountID
}

// registerVerified enrolls alice and consumes the verification link.
func (f *fixture) registerVerified(t *testing.T) string {
	t.Helper()
	id := f.register(t)
	require.NoError(t, f.service.VerifyEmail(context.Background(), f.notifier.lastToken(t)))
	return id
}

func (f *fixture) account(t *testing.T, id string) *auth.Account {
	t.Helper()
	account, err := f.accounts.FindByID(context.Background(), id)
	require.NoError(t, err)
	return account
}
