package file

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpload_NotConfigured(t *testing.T) {
	f := New("", "", "")

	url, err := f.Upload(context.Background(), strings.NewReader("pdf"), "credentials/ctr-1", "insurance")
	require.ErrorIs(t, err, ErrNotConfigured)
	require.Empty(t, url)
}
