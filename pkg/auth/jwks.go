// Package auth verifies Supabase-issued access tokens. Newer Supabase
// projects sign with RS256 and publish the public keys at a JWKS endpoint;
// this provider fetches and caches those keys by kid.
package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshCooldown throttles endpoint fetches so a burst of tokens with an
// unknown kid cannot hammer the auth server.
const refreshCooldown = time.Minute

type jwkDocument struct {
	Keys []struct {
		Kid string `json:"kid"`
		Kty string `json:"kty"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

// Provider resolves RSA public keys by kid for jwt.Parse.
type Provider struct {
	url    string
	client *http.Client

	mu          sync.RWMutex
	keys        map[string]*rsa.PublicKey
	lastFetched time.Time
}

func NewProvider(jwksURL string) *Provider {
	return &Provider{
		url:    jwksURL,
		client: &http.Client{Timeout: 10 * time.Second},
		keys:   make(map[string]*rsa.PublicKey),
	}
}

// KeyFunc plugs into jwt.Parse. It only accepts RSA-signed tokens; HS256
// verification is handled separately with the shared secret.
func (p *Provider) KeyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	kid, ok := token.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, fmt.Errorf("token missing kid header")
	}
	return p.lookup(kid)
}

func (p *Provider) lookup(kid string) (*rsa.PublicKey, error) {
	p.mu.RLock()
	key := p.keys[kid]
	p.mu.RUnlock()
	if key != nil {
		return key, nil
	}

	if err := p.refresh(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	key = p.keys[kid]
	p.mu.RUnlock()
	if key == nil {
		return nil, fmt.Errorf("no key published for kid %q", kid)
	}
	return key, nil
}

// refresh replaces the cached key set from the endpoint. Keys are decoded
// once here; bad entries are skipped rather than failing the whole set.
func (p *Provider) refresh() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.keys) > 0 && time.Since(p.lastFetched) < refreshCooldown {
		return nil
	}

	resp, err := p.client.Get(p.url)
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch jwks: unexpected status %d", resp.StatusCode)
	}

	var doc jwkDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("decode jwks: %w", err)
	}

	fresh := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := decodeRSAKey(k.N, k.E)
		if err != nil {
			continue
		}
		fresh[k.Kid] = pub
	}

	p.keys = fresh
	p.lastFetched = time.Now()
	return nil
}

func decodeRSAKey(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, err
	}

	exp := 0
	for _, b := range eBytes {
		exp = exp<<8 | int(b)
	}

	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: exp}, nil
}
