package askdocs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/askdocs/askdocs"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := askdocs.Errorf(askdocs.ENOTFOUND, "collection %q not found", "docs")

	assert.Equal(t, askdocs.ENOTFOUND, askdocs.ErrorCode(err))
	assert.Equal(t, "collection \"docs\" not found", askdocs.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, askdocs.ErrorCode(nil))
}

func TestErrorCode_UnwrapsWrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("upsert batch 3: %w", askdocs.Errorf(askdocs.EUNAVAILABLE, "store unreachable"))

	assert.Equal(t, askdocs.EUNAVAILABLE, askdocs.ErrorCode(err))
	assert.Equal(t, "store unreachable", askdocs.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, askdocs.EINTERNAL, askdocs.ErrorCode(errors.New("boom")))
	assert.Equal(t, "Internal error.", askdocs.ErrorMessage(errors.New("boom")))
}
