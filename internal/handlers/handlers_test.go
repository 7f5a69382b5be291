package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"supermarket-dashboard/internal/dataset"
	"supermarket-dashboard/internal/services"
	"supermarket-dashboard/internal/testutil"
)

func createTestAnalytics(t *testing.T) *services.Analytics {
	t.Helper()
	table, err := dataset.Load(context.Background(), strings.NewReader(testutil.SalesCSV))
	require.NoError(t, err)
	return services.NewAnalytics(table, testutil.NewTestLogger(t))
}

var testView = View{Currency: "AED", TableRowLimit: 0}
