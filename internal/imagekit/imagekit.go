// Package imagekit produces the authentication parameters the browser upload
// widget sends to the media CDN. The contract is the one the ImageKit upload
// API expects: a unique token, a unix expiry, and an HMAC-SHA1 signature of
// token+expire under the account's private key.
package imagekit

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AuthParams are returned to the client performing a direct CDN upload.
type AuthParams struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// Signer issues upload authentication parameters.
type Signer struct {
	privateKey string
	validity   time.Duration
}

// NewSigner creates a Signer for the given private key. Parameters are valid
// for 30 minutes.
func NewSigner(privateKey string) *Signer {
	return &Signer{privateKey: privateKey, validity: 30 * time.Minute}
}

// AuthenticationParameters returns freshly signed upload parameters.
func (s *Signer) AuthenticationParameters() AuthParams {
	token := uuid.NewString()
	expire := time.Now().Add(s.validity).Unix()
	return AuthParams{
		Token:     token,
		Expire:    expire,
		Signature: s.sign(token, expire),
	}
}

func (s *Signer) sign(token string, expire int64) string {
	mac := hmac.New(sha1.New, []byte(s.privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
