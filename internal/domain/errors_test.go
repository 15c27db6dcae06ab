package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"brightrec/internal/domain"
)

func TestError_IsMatchesKind(t *testing.T) {
	cause := errors.New("connection refused")
	err := &domain.Error{Kind: domain.KindBadPassword, Op: "fetch entry", Key: "data", Err: cause}
	wrapped := fmt.Errorf("restore: %w", err)

	assert.ErrorIs(t, wrapped, domain.ErrBadPassword)
	assert.NotErrorIs(t, wrapped, domain.ErrBadSignatures)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, domain.KindBadPassword, domain.KindOf(wrapped))
	assert.Equal(t, domain.Kind(0), domain.KindOf(cause))
}

func TestError_Message(t *testing.T) {
	err := &domain.Error{Kind: domain.KindTransientIO, Op: "restore photo", ID: "c1", Err: errors.New("timeout")}
	assert.Equal(t, `restore photo: transient io failure (id "c1"): timeout`, err.Error())

	assert.Equal(t, "bad signatures", domain.ErrBadSignatures.Error())
}
