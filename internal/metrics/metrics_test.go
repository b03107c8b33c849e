package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/neoarcana-server/internal/model"
)

func TestReadings(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReadings(reg)

	m.Served(model.ReadingTypeThreeCardWeekly, OutcomeGenerated)
	m.Served(model.ReadingTypeThreeCardWeekly, OutcomeGenerated)
	m.Served(model.ReadingTypeThreeCardWeekly, OutcomeDenied)
	m.ObserveGeneration(model.ReadingTypeThreeCardWeekly, 2*time.Second)
	m.HistoryFailed("minio")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.served.WithLabelValues("three_card_weekly", OutcomeGenerated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.served.WithLabelValues("three_card_weekly", OutcomeDenied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.historyFailures.WithLabelValues("minio")))

	count, err := testutil.GatherAndCount(reg, "neoarcana_generation_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReadings_Nil(t *testing.T) {
	var m *Readings
	assert.NotPanics(t, func() {
		m.Served(model.ReadingTypeDailySingle, OutcomeCached)
		m.ObserveGeneration(model.ReadingTypeDailySingle, time.Second)
		m.HistoryFailed("postgres")
	})
}
