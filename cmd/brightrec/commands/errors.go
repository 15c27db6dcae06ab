package commands

import (
	"brightrec/internal/domain"
)

// describe turns domain failures into actionable messages.
func describe(err error) string {
	switch domain.KindOf(err) {
	case domain.KindBadPassword:
		return "the password did not unlock the backup; check it and try again (" + err.Error() + ")"
	case domain.KindBadSignatures:
		return "the network rejected the cosignatures; ask two trusted connections to sign again (" + err.Error() + ")"
	case domain.KindMalformedAdvertisement:
		return "that is not a recovery code (" + err.Error() + ")"
	case domain.KindSessionExpired:
		return "the recovery session expired; run 'session begin' for a new code"
	case domain.KindNoSession:
		return "no recovery session; run 'session begin' first"
	default:
		return err.Error()
	}
}
