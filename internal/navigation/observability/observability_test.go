package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("nonsense")
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zap.DebugLevel))
	require.True(t, logger.Core().Enabled(zap.InfoLevel))

	logger, err = NewLogger("DEBUG")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestLoggerContextRoundTrip(t *testing.T) {
	t.Parallel()

	require.NotNil(t, FromContext(context.Background()))

	logger := zap.NewExample()
	ctx := WithLogger(context.Background(), logger)
	require.Same(t, logger, FromContext(ctx))
	require.Equal(t, context.Background(), WithLogger(context.Background(), nil))
}

func TestMetricsExposeRenderCounts(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveRender(KindMenu, time.Now(), "<ul></ul>", nil)
	m.ObserveRender(KindMenu, time.Now(), "", nil)
	m.ObserveRender(KindPartial, time.Now(), "", errors.New("boom"))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "navmenu_renders_total")
	require.Contains(t, names, "navmenu_render_duration_seconds")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `navmenu_renders_total{kind="menu",result="empty"} 1`)
	require.Contains(t, rec.Body.String(), `navmenu_renders_total{kind="partial",result="error"} 1`)

	var nilMetrics *Metrics
	nilMetrics.ObserveRender(KindMenu, time.Now(), "", nil)
}
