package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInterpreter scripts both phases.
type fakeInterpreter struct {
	selectFunc   func(ctx context.Context, request string, index []Info) ([]string, error)
	evaluateFunc func(ctx context.Context, request string, docs []Document) (*Decision, error)
}

func (f *fakeInterpreter) Select(ctx context.Context, request string, index []Info) ([]string, error) {
	return f.selectFunc(ctx, request, index)
}

func (f *fakeInterpreter) Evaluate(ctx context.Context, request string, docs []Document) (*Decision, error) {
	return f.evaluateFunc(ctx, request, docs)
}

func newTestStore(t *testing.T) *StaticStore {
	t.Helper()
	store, err := NewStaticStore(DefaultDocuments())
	require.NoError(t, err)
	return store
}

func TestEvaluateDropsIdentifiersOutsideIndex(t *testing.T) {
	store := newTestStore(t)
	var evaluatedDocs []Document
	interp := &fakeInterpreter{
		selectFunc: func(ctx context.Context, request string, index []Info) ([]string, error) {
			return []string{"imaging_services", "made_up_policy", "imaging_services", "also_fake"}, nil
		},
		evaluateFunc: func(ctx context.Context, request string, docs []Document) (*Decision, error) {
			evaluatedDocs = docs
			return &Decision{Status: StatusRequiresReview}, nil
		},
	}

	decision, err := NewEvaluator(store, interp).Evaluate(context.Background(), "mri please")

	require.NoError(t, err)
	assert.Equal(t, []string{"imaging_services"}, decision.AppliedPolicies)
	assert.Equal(t, []string{"imaging_services"}, decision.Selection.Selected)
	assert.ElementsMatch(t, []string{"made_up_policy", "also_fake"}, decision.Selection.Dropped)
	require.Len(t, evaluatedDocs, 1)
	assert.Equal(t, "imaging_services", evaluatedDocs[0].ID)
}

func TestEvaluateEmptySelectionPasses(t *testing.T) {
	store := newTestStore(t)
	interp := &fakeInterpreter{
		selectFunc: func(ctx context.Context, request string, index []Info) ([]string, error) {
			return nil, nil
		},
		evaluateFunc: func(ctx context.Context, request string, docs []Document) (*Decision, error) {
			t.Fatal("phase 2 must not run on an empty selection")
			return nil, nil
		},
	}

	decision, err := NewEvaluator(store, interp).Evaluate(context.Background(), "book a flu shot")

	require.NoError(t, err)
	assert.Equal(t, StatusPass, decision.Status)
	assert.Empty(t, decision.AppliedPolicies)
	assert.NotEmpty(t, decision.Selection.Candidates)
}

func TestEvaluateAllGarbageSelectionPasses(t *testing.T) {
	store := newTestStore(t)
	interp := &fakeInterpreter{
		selectFunc: func(ctx context.Context, request string, index []Info) ([]string, error) {
			return []string{"not_a_policy", "still_not"}, nil
		},
		evaluateFunc: func(ctx context.Context, request string, docs []Document) (*Decision, error) {
			t.Fatal("phase 2 must not run when every pick is dropped")
			return nil, nil
		},
	}

	decision, err := NewEvaluator(store, interp).Evaluate(context.Background(), "whatever")

	require.NoError(t, err)
	assert.Equal(t, StatusPass, decision.Status)
	assert.ElementsMatch(t, []string{"not_a_policy", "still_not"}, decision.Selection.Dropped)
}

func TestEvaluateRejectsInvalidStatus(t *testing.T) {
	store := newTestStore(t)
	interp := &fakeInterpreter{
		selectFunc: func(ctx context.Context, request string, index []Info) ([]string, error) {
			return []string{"imaging_services"}, nil
		},
		evaluateFunc: func(ctx context.Context, request string, docs []Document) (*Decision, error) {
			return &Decision{Status: "MAYBE"}, nil
		},
	}

	_, err := NewEvaluator(store, interp).Evaluate(context.Background(), "mri please")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestEvaluateRejectsNilDecision(t *testing.T) {
	store := newTestStore(t)
	interp := &fakeInterpreter{
		selectFunc: func(ctx context.Context, request string, index []Info) ([]string, error) {
			return []string{"imaging_services"}, nil
		},
		evaluateFunc: func(ctx context.Context, request string, docs []Document) (*Decision, error) {
			return nil, nil
		},
	}

	_, err := NewEvaluator(store, interp).Evaluate(context.Background(), "mri please")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestEvaluatePropagatesSelectionErrors(t *testing.T) {
	store := newTestStore(t)
	boom := errors.New("backend down")
	interp := &fakeInterpreter{
		selectFunc: func(ctx context.Context, request string, index []Info) ([]string, error) {
			return nil, boom
		},
	}

	_, err := NewEvaluator(store, interp).Evaluate(context.Background(), "anything")

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
