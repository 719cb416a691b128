package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/nutrilog/client-go/internal/client/models"
	"github.com/nutrilog/client-go/internal/client/storage"
	"github.com/nutrilog/client-go/internal/cryptox"
	"github.com/nutrilog/client-go/internal/logging"
)

// CredentialStore owns the mapping between an identity and the storage keys
// holding that identity's token and cached profile, and the lookup-order
// policy for discovering the current session.
//
// A single unreadable key is never fatal: it is logged and treated as absent
// so one corrupt entry cannot block resolution of the others.
type CredentialStore struct {
	store   storage.Store
	log     logging.Logger
	sealKey []byte
}

// NewCredentialStore wraps the given store. sealKey is optional; when
// non-nil, tokens are sealed at rest (see cryptox) and entries that fail to
// open read as absent.
func NewCredentialStore(store storage.Store, log logging.Logger, sealKey []byte) *CredentialStore {
	if log == nil {
		log = logging.Nop()
	}
	return &CredentialStore{store: store, log: log, sealKey: sealKey}
}

// FindBestToken resolves the best candidate credential, in strict order:
//
//  1. the generic cached profile's identity → that identity's scoped token;
//  2. the last-identity marker → that identity's scoped token;
//  3. the generic token slot (identity unknown until validated);
//  4. last resort: the first scoped token found by key scan, sorted so the
//     pick is at least deterministic per store state.
//
// Returns nil when nothing usable is cached.
func (c *CredentialStore) FindBestToken(ctx context.Context) *models.Credential {
	if identity := c.genericProfileIdentity(ctx); identity != "" {
		if token := c.readToken(ctx, scopedTokenKey(identity)); token != "" {
			return &models.Credential{Identity: identity, Token: token}
		}
	}

	if raw := c.readKey(ctx, lastIdentityKey); len(raw) > 0 {
		identity := NormalizeIdentity(string(raw))
		if token := c.readToken(ctx, scopedTokenKey(identity)); token != "" {
			return &models.Credential{Identity: identity, Token: token}
		}
	}

	if token := c.readToken(ctx, genericTokenKey); token != "" {
		return &models.Credential{Token: token}
	}

	keys, err := c.store.Keys(ctx, scopedTokenPrefix)
	if err != nil {
		c.log.Warn(ctx, "scoped token scan failed", "error", err)
		return nil
	}
	for _, key := range keys {
		if token := c.readToken(ctx, key); token != "" {
			identity := strings.TrimPrefix(key, scopedTokenPrefix)
			c.log.Warn(ctx, "falling back to scanned scoped token", "identity", identity)
			return &models.Credential{Identity: identity, Token: token}
		}
	}

	return nil
}

// CachedProfile reads the profile cached for identity, falling back to the
// generic slot. The two copies are not assumed to agree.
func (c *CredentialStore) CachedProfile(ctx context.Context, identity string) *models.Profile {
	if identity != "" {
		if p := c.readProfile(ctx, scopedProfileKey(identity)); p != nil {
			return p
		}
	}
	return c.readProfile(ctx, genericProfileKey)
}

// Persist writes the credential and profile under both the identity-scoped
// and generic keys, plus the last-identity marker. On stores supporting
// batching the writes are one transaction; otherwise they run sequentially
// and readers tolerate partial failure.
func (c *CredentialStore) Persist(ctx context.Context, identity, token string, profile *models.Profile) error {
	identity = NormalizeIdentity(identity)

	profileData, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	tokenData, err := c.encodeToken(token)
	if err != nil {
		return err
	}

	entries := []struct {
		key   string
		value []byte
	}{
		{scopedTokenKey(identity), tokenData},
		{scopedProfileKey(identity), profileData},
		{genericTokenKey, tokenData},
		{genericProfileKey, profileData},
		{lastIdentityKey, []byte(identity)},
	}

	if b, ok := c.store.(storage.Batcher); ok {
		return b.Batch(ctx, func(ctx context.Context, s storage.Store) error {
			for _, e := range entries {
				if err := s.Set(ctx, e.key, e.value); err != nil {
					return err
				}
			}
			return nil
		})
	}

	// No transaction available: attempt every write so a single failure
	// leaves as much of the cache consistent as possible.
	var errs []error
	for _, e := range entries {
		if err := c.store.Set(ctx, e.key, e.value); err != nil {
			c.log.Warn(ctx, "credential cache write failed", "key", e.key, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ClearAll removes the generic slots, the last-identity marker, and every
// identity-scoped token/profile key found by prefix scan. Idempotent; per-key
// failures are collected but do not stop the sweep.
func (c *CredentialStore) ClearAll(ctx context.Context) error {
	keys := []string{genericTokenKey, genericProfileKey, lastIdentityKey}

	for _, prefix := range []string{scopedTokenPrefix, scopedProfilePrefix} {
		scoped, err := c.store.Keys(ctx, prefix)
		if err != nil {
			c.log.Warn(ctx, "key scan failed during clear", "prefix", prefix, "error", err)
			continue
		}
		keys = append(keys, scoped...)
	}

	var errs []error
	for _, key := range keys {
		if err := c.store.Delete(ctx, key); err != nil {
			c.log.Warn(ctx, "failed to delete key during clear", "key", key, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// genericProfileIdentity extracts the identity from the generic cached
// profile, if readable.
func (c *CredentialStore) genericProfileIdentity(ctx context.Context) string {
	p := c.readProfile(ctx, genericProfileKey)
	if p == nil {
		return ""
	}
	return NormalizeIdentity(p.Email)
}

func (c *CredentialStore) readProfile(ctx context.Context, key string) *models.Profile {
	raw := c.readKey(ctx, key)
	if len(raw) == 0 {
		return nil
	}
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		c.log.Warn(ctx, "cached profile unreadable, treating as absent", "key", key, "error", err)
		return nil
	}
	return &p
}

// readToken reads and, when sealing is enabled, opens a stored token.
// Unreadable or unopenable entries read as absent.
func (c *CredentialStore) readToken(ctx context.Context, key string) string {
	raw := c.readKey(ctx, key)
	if len(raw) == 0 {
		return ""
	}
	if c.sealKey == nil {
		return string(raw)
	}
	plain, err := cryptox.Open(raw, c.sealKey)
	if err != nil {
		c.log.Warn(ctx, "sealed token unreadable, treating as absent", "key", key, "error", err)
		return ""
	}
	return string(plain)
}

func (c *CredentialStore) encodeToken(token string) ([]byte, error) {
	if c.sealKey == nil {
		return []byte(token), nil
	}
	return cryptox.Seal([]byte(token), c.sealKey)
}

// readKey reads one key, degrading storage errors to "absent".
func (c *CredentialStore) readKey(ctx context.Context, key string) []byte {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn(ctx, "storage read failed, treating key as absent", "key", key, "error", err)
		return nil
	}
	return raw
}
