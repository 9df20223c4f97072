package bootstrap

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/gorilla/securecookie"

	"github.com/mcsa-hvr/circuit1021/config"
)

// NewCookieCodec builds the codec that signs (and, with a block key, encrypts)
// the session cookie. Without configured keys a random pair is generated and
// every restart signs all visitors out.
func NewCookieCodec(cfg config.SessionConfig, logger *slog.Logger) *securecookie.SecureCookie {
	var hashKey, blockKey []byte
	if cfg.HasCookieKeys() {
		hashKey = deriveKey(cfg.HashKey)
		if cfg.BlockKey != "" {
			blockKey = deriveKey(cfg.BlockKey)
		}
	} else {
		if logger != nil {
			logger.Warn("SESSION_HASH_KEY not set; using a random cookie key, sessions will not survive restarts")
		}
		hashKey = securecookie.GenerateRandomKey(32)
		blockKey = securecookie.GenerateRandomKey(32)
	}

	codec := securecookie.New(hashKey, blockKey)
	if cfg.TTL > 0 {
		codec.MaxAge(int(cfg.TTL.Seconds()))
	}
	return codec
}

// deriveKey decodes a 32-byte hex key, otherwise hashes the value to 32 bytes.
func deriveKey(key string) []byte {
	if decoded, err := hex.DecodeString(key); err == nil && len(decoded) == 32 {
		return decoded
	}
	sum := sha256.Sum256([]byte(key))
	return sum[:]
}
