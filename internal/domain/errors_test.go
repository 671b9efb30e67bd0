package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/abdidvp/rackmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejection_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("adding product: %w", domain.Reject(domain.RuleModelFormat, "model %q is invalid", "bad"))

	rej, ok := domain.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, domain.RuleModelFormat, rej.Rule)
	assert.Equal(t, `model "bad" is invalid`, rej.Error())
	assert.True(t, domain.IsRejection(err))
	assert.False(t, domain.IsStorageError(err))
}

func TestStorageError_Unwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("adding product: %w", &domain.StorageError{Op: "save product", Err: cause})

	assert.True(t, domain.IsStorageError(err))
	assert.False(t, domain.IsRejection(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "storage: save product: disk full")
}
