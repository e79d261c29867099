package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKind(t *testing.T) {
	err := State("paused")

	assert.True(t, IsKind(err, KindState))
	assert.False(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(nil, KindState))
	assert.False(t, IsKind(errors.New("plain"), KindState))
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("s.repo.Mint -> %w", Payment("Incorrect payment amount"))

	assert.True(t, IsKind(err, KindPayment))
	assert.EqualError(t, AsError(err), "Incorrect payment amount")
}

func TestAsError(t *testing.T) {
	assert.Nil(t, AsError(errors.New("plain")))
	assert.Nil(t, AsError(nil))

	ae := AsError(NotFoundf("ticket %d not found", 7))
	assert.Equal(t, KindNotFound, ae.Kind)
	assert.Equal(t, "ticket 7 not found", ae.Msg)
}
