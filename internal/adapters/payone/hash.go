package payone

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha512"
	"encoding/hex"
	"strings"

	"github.com/kevin07696/payone-gateway/internal/domain"
)

// HashMethod selects the digest used to sign request fields
type HashMethod string

const (
	HashMD5     HashMethod = "md5"      // md5(values + key)
	HashSHA2384 HashMethod = "sha2_384" // HMAC-SHA-384(values, key)
)

// ParseHashMethod validates a configured hash method name
func ParseHashMethod(s string) (HashMethod, error) {
	switch m := HashMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case HashMD5, HashSHA2384:
		return m, nil
	default:
		return "", domain.NewInvalidField("hash_method", s, "must be md5 or sha2_384")
	}
}

// Hash signs fields with secret.
// Values are concatenated in ascending key order (keys themselves are not
// hashed), then digested with the selected method. Output is lowercase hex.
func Hash(fields Fields, secret string, method HashMethod) (string, error) {
	var b strings.Builder
	for _, k := range fields.Keys() {
		b.WriteString(fields[k])
	}
	concat := b.String()

	switch method {
	case HashMD5:
		sum := md5.Sum([]byte(concat + secret))
		return hex.EncodeToString(sum[:]), nil
	case HashSHA2384:
		h := hmac.New(sha512.New384, []byte(secret))
		h.Write([]byte(concat))
		return hex.EncodeToString(h.Sum(nil)), nil
	default:
		return "", domain.NewDomainError(domain.ErrorCodeUnsupportedHashMethod,
			"unsupported hash method "+string(method)).WithDetail("hash_method", string(method))
	}
}

// HashString signs a single value, stored under an empty key
func HashString(value, secret string, method HashMethod) (string, error) {
	return Hash(Fields{"": value}, secret, method)
}
