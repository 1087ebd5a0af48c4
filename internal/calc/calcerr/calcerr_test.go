package calcerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalid(t *testing.T) {
	err := fmt.Errorf("load 2: %w", Invalid("cos_phi", "must be in (0,1], got %v", 1.2))

	var ie *InvalidInputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "cos_phi", ie.Field)
	assert.Equal(t, "load 2: invalid cos_phi: must be in (0,1], got 1.2", err.Error())
}
