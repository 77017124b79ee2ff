package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadWallet fails the way a storage lookup does, one call away from the
// test body.
func loadWallet() error {
	return Wrapf(ErrNotFound, "wallet %X", []byte{0xca, 0xfe})
}

func TestStackTrace(t *testing.T) {
	cases := map[string]struct {
		err     error
		message string
	}{
		"registered error": {
			err:     ErrDuplicate.New("owner"),
			message: "owner: duplicate",
		},
		"wrapped standard library error": {
			err:     Wrap(stderrors.New("disk full"), "commit"),
			message: "commit: disk full",
		},
		"wrapped formatted error": {
			err:     Wrapf(fmt.Errorf("version %d", 7), "load %s", "state"),
			message: "load state: version 7",
		},
		"created in a helper": {
			err:     loadWallet(),
			message: "wallet CAFE: not found",
		},
	}

	internal := []string{
		thisPkg + "Wrap\n",
		thisPkg + "Wrapf\n",
		thisPkg + "(*Error).New\n",
		thisPkg + "(*Error).Newf\n",
		"runtime.goexit\n",
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.message, tc.err.Error())
			require.NotNil(t, stackTrace(tc.err))

			full := fmt.Sprintf("%+v", tc.err)
			assert.True(t, strings.HasPrefix(full, tc.message+"\n"), full)
			assert.Contains(t, full, "errors/stacktrace_test.go")
			for _, frame := range internal {
				assert.NotContains(t, full, frame)
			}

			short := fmt.Sprintf("%v", tc.err)
			assert.True(t, strings.HasPrefix(short, tc.message+" ["), short)
			assert.NotContains(t, short, "\n")
			assert.Contains(t, short, "[stacktrace_test.go:")

			assert.Equal(t, tc.message, fmt.Sprintf("%s", tc.err))
		})
	}
}

func TestStackTraceMissing(t *testing.T) {
	assert.Nil(t, stackTrace(stderrors.New("plain")))
	assert.Nil(t, stackTrace(nil))
}
