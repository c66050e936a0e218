//go:build integration

package export

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/jonathan/folio-builder/internal/rendering"
	"github.com/jonathan/folio-builder/internal/types"
	"github.com/stretchr/testify/require"
)

func TestPDFRenderer_PrintsSample(t *testing.T) {
	if os.Getenv("SKIP_BROWSER_TESTS") != "" {
		t.Skip("SKIP_BROWSER_TESTS set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	doc := types.SampleDocument(types.KindResume, time.Now())
	pdf, err := Document(ctx, NewPDFRenderer(os.Getenv("CHROME_PATH")), rendering.MustNewRenderer(), doc, false)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
