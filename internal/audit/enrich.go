package audit

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mssola/useragent"
	"golang.org/x/crypto/blake2b"
)

// DescribeClient reduces a User-Agent header to "Browser Version (OS)". Bots
// and unparseable headers come back as the raw header, truncated.
func DescribeClient(header string) string {
	if header == "" {
		return ""
	}
	ua := useragent.New(header)
	name, version := ua.Browser()
	if ua.Bot() || name == "" {
		return truncate(header, 64)
	}
	desc := name
	if major, _, _ := strings.Cut(version, "."); major != "" {
		desc += " " + major
	}
	if platform := ua.OS(); platform != "" {
		desc += " (" + platform + ")"
	}
	return desc
}

// Digest returns a hex BLAKE2b-256 of v's JSON encoding. Events carry the
// digest of the document they refer to rather than the personal data itself.
func Digest(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode for digest: %w", err)
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
