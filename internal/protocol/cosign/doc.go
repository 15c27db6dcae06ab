// Package cosign implements the 2-of-N co-signature threshold for a recovery
// session as an explicit transition table.
//
// States are derived from the number of signatures a session holds:
//
//	Empty   (0) --first-->    Pending
//	Pending (1) --match-->    Ready     second signer agrees on the identity
//	Pending (1) --mismatch--> Pending   reset: the new identity replaces the old one
//	any         --ignore-->   unchanged nil or duplicate signature
//	Ready   (2) --extra-->    Ready     further signatures are ignored
//
// Apply is pure: it returns the next session and an Outcome, and never
// mutates its input. Persisting the result is the caller's job.
package cosign
