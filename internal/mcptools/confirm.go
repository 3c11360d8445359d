package mcptools

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Confirmation tokens expire after this long.
const tokenTTL = 5 * time.Minute

// DestructiveTools names the tools that require a confirmation token
// before they act.
var DestructiveTools = []string{
	"vagrant_destroy",
}

// pendingConfirmation records an outstanding confirmation token.
type pendingConfirmation struct {
	tool      string
	resource  string
	createdAt time.Time
}

// ConfirmationTracker hands out single-use, time-limited confirmation
// tokens for destructive tool invocations. A destructive tool called
// without a valid token answers with a prompt carrying a fresh token;
// the caller repeats the call with the token to proceed.
type ConfirmationTracker struct {
	destructive map[string]struct{}

	mu     sync.Mutex
	tokens map[string]*pendingConfirmation
}

// NewConfirmationTracker returns a tracker whose set of gated tools is
// destructiveTools. A nil or empty slice gates nothing.
func NewConfirmationTracker(destructiveTools []string) *ConfirmationTracker {
	ct := &ConfirmationTracker{
		destructive: make(map[string]struct{}, len(destructiveTools)),
		tokens:      make(map[string]*pendingConfirmation),
	}
	for _, tool := range destructiveTools {
		ct.destructive[tool] = struct{}{}
	}
	return ct
}

// NeedsConfirmation reports whether tool is gated.
func (ct *ConfirmationTracker) NeedsConfirmation(tool string) bool {
	_, ok := ct.destructive[tool]
	return ok
}

// RequestConfirmation issues a new token for the given tool and
// resource. Tokens are single-use and expire after five minutes.
func (ct *ConfirmationTracker) RequestConfirmation(tool, resource string) string {
	token := generateToken()

	ct.mu.Lock()
	ct.sweepExpired()
	ct.tokens[token] = &pendingConfirmation{
		tool:      tool,
		resource:  resource,
		createdAt: time.Now(),
	}
	ct.mu.Unlock()

	return token
}

// Confirm consumes token and reports whether it was valid and
// unexpired. A second call with the same token reports false.
func (ct *ConfirmationTracker) Confirm(token string) bool {
	if token == "" {
		return false
	}

	ct.mu.Lock()
	defer ct.mu.Unlock()

	pending, ok := ct.tokens[token]
	if !ok {
		return false
	}
	delete(ct.tokens, token)

	return time.Since(pending.createdAt) <= tokenTTL
}

// sweepExpired drops expired tokens. The caller must hold ct.mu.
func (ct *ConfirmationTracker) sweepExpired() {
	for token, pending := range ct.tokens {
		if time.Since(pending.createdAt) > tokenTTL {
			delete(ct.tokens, token)
		}
	}
}

func generateToken() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; a
		// timestamp token keeps the prompt flow alive regardless.
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b[:])
}
