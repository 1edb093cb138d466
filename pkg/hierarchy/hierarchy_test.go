package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeVocab_OliveExample(t *testing.T) {
	t.Parallel()

	roots, err := DecomposeVocab(
		[]string{"cs olive oil", "olive", "olive paste"},
		[]string{"olive"},
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"cs olive oil": "olive",
		"olive paste":  "olive",
	}, roots)
	assert.NotContains(t, roots, "olive")
}

func TestDecomposeVocab(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		vocab []string
		fixed []string
		want  map[string]string
	}{
		{
			name:  "chain resolves to root",
			vocab: []string{"tomato", "tomato paste", "sun dried tomato paste"},
			fixed: nil,
			// "sun dried tomato paste" -> "tomato" (fewer words than "tomato paste").
			want: map[string]string{
				"tomato paste":           "tomato",
				"sun dried tomato paste": "tomato",
			},
		},
		{
			name:  "fewer words replaces a fixed candidate",
			vocab: []string{"red bell pepper", "bell pepper", "pepper"},
			fixed: []string{"bell pepper"},
			// "bell pepper" (fixed) is seen first, then "pepper" has fewer words.
			want: map[string]string{"red bell pepper": "pepper"},
		},
		{
			name:  "fixed point never gets a parent",
			vocab: []string{"pepper", "bell pepper"},
			fixed: []string{"bell pepper"},
			want:  map[string]string{},
		},
		{
			name:  "later fixed point replaces earlier candidate",
			vocab: []string{"coconut milk", "coconut", "milk"},
			fixed: []string{"milk"},
			// Scan order: "coconut" (parent, 1 word), then "milk" (fixed, replaces).
			want: map[string]string{"coconut milk": "milk"},
		},
		{
			name:  "equal word count keeps first in lexicographic order",
			vocab: []string{"garlic onion", "onion", "garlic"},
			want:  map[string]string{"garlic onion": "garlic"},
		},
		{
			name:  "substring inside word counts",
			vocab: []string{"pineapple", "apple"},
			want:  map[string]string{"pineapple": "apple"},
		},
		{
			name:  "duplicates and empty terms ignored",
			vocab: []string{"", "olive", "olive", "olive oil"},
			want:  map[string]string{"olive oil": "olive"},
		},
		{
			name:  "no relations",
			vocab: []string{"kale", "leek"},
			want:  map[string]string{},
		},
		{
			name:  "empty vocabulary",
			vocab: nil,
			want:  map[string]string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecomposeVocab(tc.vocab, tc.fixed)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecomposeVocab_DeterministicAcrossWorkers(t *testing.T) {
	t.Parallel()

	var vocab []string
	for i := 0; i < 40; i++ {
		vocab = append(vocab, fmt.Sprintf("herb %d", i), fmt.Sprintf("dried herb %d mix", i))
	}
	vocab = append(vocab, "herb", "mix")

	want, err := DecomposeVocab(vocab, []string{"herb"}, WithWorkers(1))
	require.NoError(t, err)
	for _, w := range []int{0, 2, 8} {
		got, err := DecomposeVocab(vocab, []string{"herb"}, WithWorkers(w))
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", w)
	}
	assert.Equal(t, "herb", want["dried herb 7 mix"])
}

func TestBuildForest_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildForest(ctx, []string{"a", "ab"}, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildForest_Parents(t *testing.T) {
	t.Parallel()

	f, err := BuildForest(context.Background(), []string{"cs olive oil", "olive", "olive oil"}, []string{"olive"})
	require.NoError(t, err)

	p, ok := f.Parent("cs olive oil")
	require.True(t, ok)
	// "olive" is seen first; "olive oil" is not fixed and has more words.
	assert.Equal(t, "olive", p)
	_, ok = f.Parent("olive")
	assert.False(t, ok)
	assert.True(t, f.IsFixed("olive"))
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, map[string]string{"cs olive oil": "olive", "olive oil": "olive"}, f.Parents())
}

func TestResolve_Cycle(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	var (
		roots map[string]string
		err   error
	)
	go func() {
		defer close(done)
		roots, err = Resolve(map[string]string{"a": "b", "b": "c", "c": "a", "d": "a"})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Resolve did not terminate on a cyclic parent map")
	}

	require.Error(t, err)
	assert.Nil(t, roots)
	assert.True(t, errors.Is(err, ErrMalformedHierarchy))

	var cycle *CycleError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, "a", cycle.Term)
	assert.Equal(t, []string{"a", "b", "c", "a"}, cycle.Path)
}

func TestResolve_SelfLoop(t *testing.T) {
	t.Parallel()

	_, err := Resolve(map[string]string{"olive": "olive"})
	require.ErrorIs(t, err, ErrMalformedHierarchy)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	roots, err := Resolve(map[string]string{
		"cs olive oil": "olive oil",
		"olive oil":    "olive",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"cs olive oil": "olive", "olive oil": "olive"}, roots)
}

func TestForest_Link(t *testing.T) {
	t.Parallel()

	f := NewForest([]string{"olive", "olive oil"}, []string{"olive"})
	require.NoError(t, f.Link("olive oil", "olive"))
	require.Error(t, f.Link("olive", "olive oil"), "fixed point cannot get a parent")

	r, err := f.Root("olive oil")
	require.NoError(t, err)
	assert.Equal(t, "olive", r)

	r, err = f.Root("unknown")
	require.NoError(t, err)
	assert.Equal(t, "unknown", r)
	assert.False(t, f.Has("unknown"))
}
