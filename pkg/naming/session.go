package naming

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Operation kinds used as session ID prefixes.
const (
	KindOptimize = "optimize"
	KindRename   = "rename"
)

const tokenLength = 12

// ErrInvalidSessionID is returned by ParseSessionID for malformed identifiers.
var ErrInvalidSessionID = errors.New("invalid session id")

// SessionID is the decoded form of a session identifier.
type SessionID struct {
	Kind      string
	CreatedAt time.Time
	Token     string
}

func (s SessionID) String() string {
	return s.Kind + "_" + strconv.FormatInt(s.CreatedAt.Unix(), 10) + "_" + s.Token
}

// NewSessionID returns a fresh identifier for kind.
func NewSessionID(kind string) string {
	return newSessionID(kind, time.Now())
}

func newSessionID(kind string, now time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
	return SessionID{Kind: kind, CreatedAt: now, Token: token}.String()
}

// ParseSessionID validates id and splits it into its parts. It is strict
// enough that a valid id is always a safe single path segment.
func ParseSessionID(id string) (SessionID, error) {
	kind, rest, ok := strings.Cut(id, "_")
	if !ok || !validKind(kind) {
		return SessionID{}, ErrInvalidSessionID
	}
	ts, token, ok := strings.Cut(rest, "_")
	if !ok || len(token) != tokenLength || !isHex(token) {
		return SessionID{}, ErrInvalidSessionID
	}
	sec, err := strconv.ParseInt(ts, 10, 64)
	if err != nil || sec < 0 {
		return SessionID{}, ErrInvalidSessionID
	}
	return SessionID{Kind: kind, CreatedAt: time.Unix(sec, 0).UTC(), Token: token}, nil
}

// IsSessionID reports whether id parses.
func IsSessionID(id string) bool {
	_, err := ParseSessionID(id)
	return err == nil
}

func validKind(kind string) bool {
	if kind == "" {
		return false
	}
	for _, r := range kind {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
