package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies recovery and backup failures.
type Kind int

const (
	// KindMalformedAdvertisement: a scanned recovery QR payload could not be parsed.
	KindMalformedAdvertisement Kind = iota + 1
	// KindBadPassword: decryption or structural validation failed during restore.
	// Network failures while fetching are reported the same way.
	KindBadPassword
	// KindBadSignatures: the node rejected the signing-key rotation.
	KindBadSignatures
	// KindTransientIO: a single photo backup or restore failed.
	KindTransientIO
	// KindSessionExpired: the recovery session outlived its lifetime.
	KindSessionExpired
	// KindNoSession: an operation needs a recovery session and none exists.
	KindNoSession
)

func (k Kind) String() string {
	switch k {
	case KindMalformedAdvertisement:
		return "malformed advertisement"
	case KindBadPassword:
		return "bad password"
	case KindBadSignatures:
		return "bad signatures"
	case KindTransientIO:
		return "transient io failure"
	case KindSessionExpired:
		return "recovery session expired"
	case KindNoSession:
		return "no recovery session"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a recovery or backup failure with structured context.
type Error struct {
	Kind Kind
	// Op is the operation that failed, e.g. "fetch entry".
	Op string
	// Key is the recovery-store key involved, if any.
	Key string
	// ID is the identity or item id involved, if any.
	ID  string
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Key != "" {
		fmt.Fprintf(&b, " (key %q)", e.Key)
	}
	if e.ID != "" {
		fmt.Fprintf(&b, " (id %q)", e.ID)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrMalformedAdvertisement = &Error{Kind: KindMalformedAdvertisement}
	ErrBadPassword            = &Error{Kind: KindBadPassword}
	ErrBadSignatures          = &Error{Kind: KindBadSignatures}
	ErrTransientIO            = &Error{Kind: KindTransientIO}
	ErrSessionExpired         = &Error{Kind: KindSessionExpired}
	ErrNoSession              = &Error{Kind: KindNoSession}
)

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
