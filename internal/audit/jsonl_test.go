package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLSinkAssignsSequentialSeqPerRun(t *testing.T) {
	sink, err := NewJSONLSink(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	for range 3 {
		require.NoError(t, sink.Record(ctx, Entry{RunID: "run-a", Caller: "orchestrator", Kind: KindRouting}))
	}
	require.NoError(t, sink.Record(ctx, Entry{RunID: "run-b", Caller: "orchestrator", Kind: KindRouting}))

	entriesA, err := sink.ReadRun("run-a")
	require.NoError(t, err)
	require.Len(t, entriesA, 3)
	for i, e := range entriesA {
		assert.Equal(t, i, e.Seq)
		assert.False(t, e.Timestamp.IsZero())
	}

	entriesB, err := sink.ReadRun("run-b")
	require.NoError(t, err)
	require.Len(t, entriesB, 1)
	assert.Equal(t, 0, entriesB[0].Seq)
}

func TestJSONLSinkRoundTripsPayload(t *testing.T) {
	sink, err := NewJSONLSink(t.TempDir())
	require.NoError(t, err)

	in := Entry{
		RunID:  "run-x",
		Caller: "triage_nurse",
		Kind:   KindToolResult,
		Payload: map[string]any{
			"tool":       "patient_record",
			"error_code": "",
		},
	}
	require.NoError(t, sink.Record(context.Background(), in))

	out, err := sink.ReadRun("run-x")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, KindToolResult, out[0].Kind)
	assert.Equal(t, "patient_record", out[0].Payload["tool"])
}

func TestJSONLSinkConcurrentRecordsAreTotallyOrdered(t *testing.T) {
	sink, err := NewJSONLSink(t.TempDir())
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sink.Record(context.Background(), Entry{RunID: "run-c", Caller: "tools", Kind: KindToolResult})
		}()
	}
	wg.Wait()

	entries, err := sink.ReadRun("run-c")
	require.NoError(t, err)
	require.Len(t, entries, n)
	for i, e := range entries {
		assert.Equal(t, i, e.Seq)
	}
}

func TestJSONLSinkRejectsPathTraversalRunIDs(t *testing.T) {
	sink, err := NewJSONLSink(t.TempDir())
	require.NoError(t, err)

	for _, runID := range []string{"", "..", "a/b", `a\b`} {
		err := sink.Record(context.Background(), Entry{RunID: runID, Kind: KindRouting})
		assert.Error(t, err, "run id %q", runID)
	}
}

func TestReadRunForUnknownRunReturnsNil(t *testing.T) {
	sink, err := NewJSONLSink(t.TempDir())
	require.NoError(t, err)

	entries, err := sink.ReadRun("never-recorded")
	require.NoError(t, err)
	assert.Nil(t, entries)
}
