package cosign

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"brightrec/internal/domain"
)

// Threshold is the number of agreeing co-signatures needed to rotate the signing key.
const Threshold = 2

// SignedNotice is shown to the user after the first co-signature arrives.
const SignedNotice = "One of your trusted connections signed your request"

// State is the collector state of a session.
type State int

const (
	Empty State = iota
	Pending
	Ready
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Event classifies an incoming signature relative to the session.
type Event int

const (
	EventIgnore Event = iota
	EventFirst
	EventMismatch
	EventMatch
	EventExtra
)

func (e Event) String() string {
	return [...]string{"ignore", "first", "mismatch", "match", "extra"}[e]
}

type action int

const (
	noop action = iota
	reset
	appendSig
)

type key struct {
	from  State
	event Event
}

type transition struct {
	to     State
	action action
}

// table is the complete transition function. Pairs missing from it cannot
// be produced by Classify.
var table = map[key]transition{
	{Empty, EventIgnore}:     {Empty, noop},
	{Pending, EventIgnore}:   {Pending, noop},
	{Ready, EventIgnore}:     {Ready, noop},
	{Empty, EventFirst}:      {Pending, reset},
	{Pending, EventMismatch}: {Pending, reset},
	{Pending, EventMatch}:    {Ready, appendSig},
	{Ready, EventExtra}:      {Ready, noop},
}

// Outcome describes what Apply did.
type Outcome struct {
	From  State
	Event Event
	To    State
	// Ready is true only for the transition that reached the threshold.
	Ready bool
	// Notice is a user-facing message, empty when there is none.
	Notice string
}

// Changed reports whether the session was modified.
func (o Outcome) Changed() bool {
	t := table[key{o.From, o.Event}]
	return t.action != noop
}

var validate = validator.New()

// Validate checks that sig carries a signer, identity and signature.
func Validate(sig domain.Cosignature) error {
	return validate.Struct(sig)
}

// StateOf derives the collector state from the number of held signatures.
func StateOf(s domain.RecoverySession) State {
	switch n := len(s.Signatures); {
	case n == 0:
		return Empty
	case n < Threshold:
		return Pending
	default:
		return Ready
	}
}

// IsDuplicate reports whether the session holds exactly one signature equal
// to sig on (signature, signer, identity).
func IsDuplicate(s domain.RecoverySession, sig domain.Cosignature) bool {
	if len(s.Signatures) != 1 {
		return false
	}
	held := s.Signatures[0]
	return held.Signature == sig.Signature &&
		held.SignerID == sig.SignerID &&
		held.IdentityID == sig.IdentityID
}

// Classify returns the session state and the event sig represents.
func Classify(s domain.RecoverySession, sig *domain.Cosignature) (State, Event) {
	from := StateOf(s)
	switch {
	case sig == nil || IsDuplicate(s, *sig):
		return from, EventIgnore
	case from == Empty:
		return from, EventFirst
	case from == Ready:
		return from, EventExtra
	case s.Signatures[0].IdentityID != sig.IdentityID:
		return from, EventMismatch
	case s.Signatures[0].SignerID == sig.SignerID:
		// Same signer again with a different signature: one signer counts once.
		return from, EventIgnore
	default:
		return from, EventMatch
	}
}

// Apply runs sig through the transition table and returns the next session.
func Apply(s domain.RecoverySession, sig *domain.Cosignature) (domain.RecoverySession, Outcome) {
	from, event := Classify(s, sig)
	t, ok := table[key{from, event}]
	if !ok {
		// Unreachable by construction; keep the session unchanged.
		return s.Clone(), Outcome{From: from, Event: event, To: from}
	}

	next := s.Clone()
	out := Outcome{From: from, Event: event, To: t.to}
	switch t.action {
	case reset:
		next.IdentityID = sig.IdentityID
		next.Name = sig.Name
		next.Photo = sig.Photo
		next.Signatures = []domain.Cosignature{*sig}
		out.Notice = SignedNotice
	case appendSig:
		next.Signatures = append(next.Signatures, *sig)
		out.Ready = true
	}
	return next, out
}
