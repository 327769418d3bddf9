package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/cpbl-games/internal/game"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeOK, Outcome(nil))
	assert.Equal(t, OutcomeNotFound, Outcome(game.ErrNotFoundOrChanged))
	assert.Equal(t, OutcomeStatus, Outcome(&game.TransportError{URL: "u", StatusCode: 404}))
	assert.Equal(t, OutcomeNetwork, Outcome(&game.TransportError{URL: "u", Err: errors.New("timeout")}))
	assert.Equal(t, OutcomeOther, Outcome(errors.New("boom")))
}

func TestRecorder_Counts(t *testing.T) {
	r := NewRecorder()

	r.RecordFetch(10*time.Millisecond, nil)
	r.RecordFetch(20*time.Millisecond, nil)
	r.RecordFetch(5*time.Millisecond, game.ErrNotFoundOrChanged)
	r.RecordDecision("range", DecisionKeep)
	r.RecordDecision("range", DecisionSkipMonth)
	r.RecordDecision("range", DecisionSkipMonth)
	r.RecordCacheLookup(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.fetches.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetches.WithLabelValues(OutcomeNotFound)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.decisions.WithLabelValues("range", DecisionSkipMonth)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("hit")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.RecordDecision("month", DecisionKeep)

	path := filepath.Join(t.TempDir(), "cpbl.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `cpbl_scan_decisions_total{decision="keep",scan="month"} 1`)
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	r.RecordFetch(time.Second, nil)
	r.RecordDecision("range", DecisionKeep)
	r.RecordCacheLookup(false)
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteTextfile("ignored"))
}
