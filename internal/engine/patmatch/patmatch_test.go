package patmatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/morfx-security/govulnscan/internal/engine/patmatch"
	"github.com/morfx-security/govulnscan/internal/lang"
	_ "github.com/morfx-security/govulnscan/internal/lang/javascript"
)

func TestEvalUsageIsFlagged(t *testing.T) {
	adapter, ok := lang.GetByExtension("js")
	require.True(t, ok)

	src := []byte(`eval(userInput);`)
	tree, err := patmatch.ParseWithContext(context.Background(), adapter, src)
	require.NoError(t, err)

	m := patmatch.New(patmatch.DefaultRules())
	diags, errs := m.Run(adapter, tree, src, "app.js")
	require.Empty(t, errs)
	require.Len(t, diags, 1)
	require.Equal(t, "eval-usage", diags[0].ID)
}
