// Package identity tracks the single current user of a profile and the
// registry of demo accounts it is chosen from.
//
// The context is either anonymous or authenticated. Login and Register move
// it to authenticated, Logout back to anonymous. The pointer to the current
// user is persisted, so a new Context boots straight into the last state.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"starstream/internal/kv"
	"starstream/internal/media"
	"starstream/internal/notify"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyUsed   = errors.New("email already in use")
	ErrInvalidInput       = errors.New("invalid input")
)

// Storage keys.
const (
	UsersKey   = "users"
	CurrentKey = "currentUser"
)

// RouteHome is where the UI goes after login, register and logout.
const RouteHome = "/"

// DefaultDelay simulates the round trip of a real auth backend.
const DefaultDelay = time.Second

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// Result is returned by successful Login and Register calls.
type Result struct {
	Identity media.Identity `json:"identity"`
	Redirect string         `json:"redirect"`
}

// Context is the identity state machine.
type Context struct {
	repo     *kv.Repository
	notifier notify.Notifier
	delay    time.Duration
	cost     int
	now      func() time.Time

	mu      sync.Mutex
	current *media.Identity
}

// Option configures a Context.
type Option func(*Context)

// WithDelay sets the simulated latency of Login and Register.
func WithDelay(d time.Duration) Option {
	return func(c *Context) { c.delay = d }
}

// WithNotifier sets where success/failure notifications go.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Context) { c.notifier = n }
}

// WithHashCost sets the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(c *Context) { c.cost = cost }
}

// New loads the persisted current-user pointer and returns a Context in the
// matching state.
func New(ctx context.Context, repo *kv.Repository, opts ...Option) (*Context, error) {
	c := &Context{
		repo:     repo,
		notifier: notify.Discard,
		delay:    DefaultDelay,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	current, err := kv.Load[*media.Identity](ctx, repo, CurrentKey)
	if err != nil {
		return nil, fmt.Errorf("loading current user: %w", err)
	}
	if current != nil && current.ID != "" {
		c.current = current
	}
	return c, nil
}

// Current returns the authenticated identity, or nil when anonymous.
func (c *Context) Current() *media.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	id := *c.current
	return &id
}

// Login authenticates against the registered accounts. The email must match
// exactly.
func (c *Context) Login(ctx context.Context, email, password string) (*Result, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	accounts, err := kv.Load[[]media.Account](ctx, c.repo, UsersKey)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	idx := -1
	for i, a := range accounts {
		if a.Email == email {
			idx = i
			break
		}
	}
	if idx < 0 || !c.checkPassword(accounts[idx], password) {
		c.notifier.Notify(notify.Notification{
			Title:       "Sign-in failed",
			Description: "Email or password is incorrect",
			Severity:    notify.Error,
		})
		return nil, ErrInvalidCredentials
	}

	acct := accounts[idx]
	if acct.PasswordHash == "" {
		// Legacy plaintext record: replace it with a hash now that we know the password.
		hashed, err := hashPassword(password, c.cost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		accounts[idx].PasswordHash = hashed
		accounts[idx].Password = ""
		if err := kv.Save(ctx, c.repo, UsersKey, accounts); err != nil {
			return nil, fmt.Errorf("saving users: %w", err)
		}
	}

	if err := c.setCurrent(ctx, acct.Identity()); err != nil {
		return nil, err
	}

	c.notifier.Notify(notify.Notification{
		Title:       "Signed in",
		Description: "Welcome back, " + acct.Username,
		Severity:    notify.Success,
	})
	return &Result{Identity: acct.Identity(), Redirect: RouteHome}, nil
}

// Register creates a new account and signs it in. The user list is left
// untouched when the email is already registered.
func (c *Context) Register(ctx context.Context, username, email, password string) (*Result, error) {
	username = strings.TrimSpace(username)
	if err := validate(username, email, password); err != nil {
		return nil, err
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	accounts, err := kv.Load[[]media.Account](ctx, c.repo, UsersKey)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	for _, a := range accounts {
		if a.Email == email {
			c.notifier.Notify(notify.Notification{
				Title:       "Registration failed",
				Description: "This email is already registered",
				Severity:    notify.Error,
			})
			return nil, ErrEmailAlreadyUsed
		}
	}

	hashed, err := hashPassword(password, c.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	acct := media.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    c.now().UTC(),
	}
	accounts = append(accounts, acct)
	if err := kv.Save(ctx, c.repo, UsersKey, accounts); err != nil {
		return nil, fmt.Errorf("saving users: %w", err)
	}

	if err := c.setCurrent(ctx, acct.Identity()); err != nil {
		return nil, err
	}

	c.notifier.Notify(notify.Notification{
		Title:       "Account created",
		Description: "Welcome to StarStream, " + acct.Username,
		Severity:    notify.Success,
	})
	return &Result{Identity: acct.Identity(), Redirect: RouteHome}, nil
}

// Logout clears the current-user pointer. Per-user data is kept.
func (c *Context) Logout(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.repo.Delete(ctx, CurrentKey); err != nil {
		return "", fmt.Errorf("clearing current user: %w", err)
	}
	wasSignedIn := c.current != nil
	c.current = nil

	if wasSignedIn {
		c.notifier.Notify(notify.Notification{Title: "Signed out", Severity: notify.Info})
	}
	return RouteHome, nil
}

func (c *Context) setCurrent(ctx context.Context, id media.Identity) error {
	if err := kv.Save(ctx, c.repo, CurrentKey, id); err != nil {
		return fmt.Errorf("saving current user: %w", err)
	}
	c.current = &id
	return nil
}

func (c *Context) checkPassword(a media.Account, password string) bool {
	if a.PasswordHash != "" {
		return verifyPassword(a.PasswordHash, password)
	}
	return a.Password != "" && a.Password == password
}

// wait blocks for the simulated latency or until ctx is done.
func (c *Context) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func validate(username, email, password string) error {
	if len([]rune(username)) < minUsernameLen {
		return fmt.Errorf("%w: username must be at least %d characters", ErrInvalidInput, minUsernameLen)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return fmt.Errorf("%w: %q is not a valid email address", ErrInvalidInput, email)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	return nil
}
