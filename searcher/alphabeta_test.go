package searcher

import (
	"context"
	"errors"
	"testing"

	"checkers/experiments/metrics"
	"checkers/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Alpha-beta search on hand-built and random trees:
- picks the move leading to the best minimized subtree
- agrees with exhaustive minimax (move and value) while scoring fewer leaves
- keeps the first of equally valued moves
- narrows alpha on max levels and beta on min levels, never widening them
- enumerates each side's own moves
- fails on zero ply limit, terminal roots, stuck nodes, collaborator faults, cancellation
*/

func bestMove(t *testing.T, s Searcher, state game.State) game.Move {
	t.Helper()
	move, err := s.BestMove(context.Background(), state)
	require.NoError(t, err)
	return move
}

func TestAlphaBetaFixtures(t *testing.T) {
	tests := []struct {
		name      string
		branching []int
		values    []float64
		plies     int
		expected  treeMove
		value     float64
	}{
		{
			name:      "four replies of two",
			branching: []int{4, 2},
			values:    []float64{3, 12, 8, 2, 4, 6, 14, 5},
			plies:     2,
			expected:  3, // min(3,12)=3 min(8,2)=2 min(4,6)=4 min(14,5)=5
			value:     5,
		},
		{
			name:      "binary depth three",
			branching: []int{2, 2, 2},
			values:    []float64{3, 12, 8, 2, 4, 6, 14, 5},
			plies:     3,
			expected:  0, // min(max(3,12), max(8,2))=8 vs min(max(4,6), max(14,5))=6
			value:     8,
		},
		{
			name:      "three by three",
			branching: []int{3, 3},
			values:    []float64{3, 12, 8, 2, 4, 6, 14, 5, 2},
			plies:     2,
			expected:  0,
			value:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := uniform(tt.branching, tt.values)

			got := bestMove(t, NewAlphaBeta(maxPlayer, minPlayer, tt.plies, treeValue), root)
			require.Equal(t, tt.expected, got)

			exhaustive := NewMinimax(maxPlayer, minPlayer, tt.plies, treeValue)
			require.Equal(t, tt.expected, bestMove(t, exhaustive, root), "Exhaustive search should agree")
			value, err := exhaustive.Value(context.Background(), root)
			require.NoError(t, err)
			require.Equal(t, tt.value, value)
		})
	}
}

func TestAlphaBetaPrunes(t *testing.T) {
	root := uniform([]int{3, 3}, []float64{3, 12, 8, 2, 4, 6, 14, 5, 2})

	pruned := metrics.NewCollector()
	bestMove(t, NewAlphaBeta(maxPlayer, minPlayer, 2, treeValue, WithMetrics(pruned)), root)
	full := metrics.NewCollector()
	bestMove(t, NewMinimax(maxPlayer, minPlayer, 2, treeValue, WithMetrics(full)), root)

	require.Equal(t, 7, pruned.Complete().Evaluations, "Second subtree should be cut after its first leaf")
	require.Equal(t, 2, pruned.Complete().Prunes)
	require.Equal(t, "alphabeta", pruned.Complete().Searcher)
	require.Equal(t, 9, full.Complete().Evaluations)
	require.Equal(t, 0, full.Complete().Prunes)
	require.Equal(t, 4, full.Complete().Nodes, "Root and three min nodes should be expanded")
}

func randomTree(r *rand.Rand, depth, branching int) *treeState {
	var build func(d int) *treeState
	build = func(d int) *treeState {
		value := float64(r.Intn(10)) // Small range so ties are common
		if d == depth {
			return leaf(value)
		}
		s := inner(value)
		for i := 0; i < 1+r.Intn(branching); i++ {
			s.children = append(s.children, build(d+1))
		}
		return s
	}
	return label(build(0), maxPlayer, minPlayer)
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		depth := 1 + r.Intn(4)
		root := randomTree(r, depth, 3)
		for plies := 1; plies <= depth; plies++ {
			pruned, full := metrics.NewCollector(), metrics.NewCollector()
			got := bestMove(t, NewAlphaBeta(maxPlayer, minPlayer, plies, treeValue, WithMetrics(pruned)), root)
			expected := bestMove(t, NewMinimax(maxPlayer, minPlayer, plies, treeValue, WithMetrics(full)), root)

			require.Equal(t, expected, got, "tree %d plies %d: pruning should never change the chosen move", i, plies)
			require.LessOrEqual(t, pruned.Complete().Evaluations, full.Complete().Evaluations)
		}
	}
}

func TestAlphaBetaTieBreak(t *testing.T) {
	t.Run("first of equal moves wins", func(t *testing.T) {
		root := uniform([]int{3, 1}, []float64{4, 4, 4})
		require.Equal(t, treeMove(0), bestMove(t, NewAlphaBeta(maxPlayer, minPlayer, 2, treeValue), root))
	})

	t.Run("later strictly better move replaces it", func(t *testing.T) {
		root := uniform([]int{3, 1}, []float64{4, 7, 7})
		require.Equal(t, treeMove(1), bestMove(t, NewAlphaBeta(maxPlayer, minPlayer, 2, treeValue), root))
	})
}

func TestAlphaBetaBounds(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		root := randomTree(r, 4, 3)

		// Current node per ply, and the last child entered below each parent
		var path []Node
		lastChild := map[string]Node{}
		trace := func(n Node) {
			path = append(path[:n.Ply], n)
			require.LessOrEqual(t, n.Alpha, n.Beta, "Nodes should never be entered with an empty window")
			if n.Ply == 0 {
				return
			}
			parent := path[n.Ply-1]
			id := parent.State.(*treeState).id
			if prev, ok := lastChild[id]; ok {
				if parent.Maximizing {
					require.GreaterOrEqual(t, n.Alpha, prev.Alpha, "Alpha should not decrease across a max node's children")
					require.Equal(t, prev.Beta, n.Beta)
				} else {
					require.LessOrEqual(t, n.Beta, prev.Beta, "Beta should not increase across a min node's children")
					require.Equal(t, prev.Alpha, n.Alpha)
				}
			}
			lastChild[id] = n
		}

		bestMove(t, NewAlphaBeta(maxPlayer, minPlayer, 4, treeValue, WithTrace(trace)), root)
	}
}

func TestAlphaBetaDeterminism(t *testing.T) {
	root := randomTree(rand.New(rand.NewSource(3)), 4, 3)
	search := NewAlphaBeta(maxPlayer, minPlayer, 4, treeValue)

	first := bestMove(t, search, root)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, bestMove(t, search, root))
	}
}

func TestAlphaBetaSymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		root := randomTree(r, 3, 3)
		got := bestMove(t, NewAlphaBeta(maxPlayer, minPlayer, 3, treeValue), root)
		mirrored := bestMove(t, NewAlphaBeta(minPlayer, maxPlayer, 3, negatedTreeValue), mirror(root))
		require.Equal(t, got, mirrored, "Swapping sides and negating scores should mirror the choice")
	}
}

func TestAlphaBetaHorizon(t *testing.T) {
	// Move 0 looks better up close but loses; move 1 wins after three plies.
	root := label(inner(0,
		inner(5, inner(5, leaf(-100))),
		inner(0, inner(0, leaf(100))),
	), maxPlayer, minPlayer)

	require.Equal(t, treeMove(1), bestMove(t, NewAlphaBeta(maxPlayer, minPlayer, 3, treeValue), root),
		"A ply limit reaching the win should find it")
	require.Equal(t, treeMove(0), bestMove(t, NewAlphaBeta(maxPlayer, minPlayer, 2, treeValue), root),
		"One ply short the win is beyond the horizon")
}

func TestAlphaBetaPlayers(t *testing.T) {
	// The min level must ask for the minimizer's moves, or the tree reports a wrong turn.
	root := uniform([]int{2, 2}, []float64{1, 2, 3, 4})
	require.Equal(t, treeMove(1), bestMove(t, NewAlphaBeta(maxPlayer, minPlayer, 2, treeValue), root))

	_, err := NewAlphaBeta(minPlayer, maxPlayer, 2, treeValue).BestMove(context.Background(), root)
	require.ErrorIs(t, err, errWrongTurn)
}

func TestAlphaBetaErrors(t *testing.T) {
	t.Run("zero ply limit", func(t *testing.T) {
		root := uniform([]int{2}, []float64{1, 2})
		for _, plies := range []int{0, -1} {
			move, err := NewAlphaBeta(maxPlayer, minPlayer, plies, treeValue).BestMove(context.Background(), root)
			require.ErrorIs(t, err, ErrNoSearchDepth)
			require.Nil(t, move)
		}
	})

	t.Run("terminal root", func(t *testing.T) {
		evaluated := false
		evaluator := EvaluatorFunc(func(game.State) float64 {
			evaluated = true
			return 0
		})
		move, err := NewAlphaBeta(maxPlayer, minPlayer, 3, evaluator).BestMove(context.Background(), label(leaf(1), maxPlayer, minPlayer))
		require.ErrorIs(t, err, ErrNoLegalActions)
		require.Nil(t, move)
		require.False(t, evaluated, "Terminal roots should fail before evaluation")
	})

	t.Run("non-terminal node without moves", func(t *testing.T) {
		root := label(inner(0, inner(0), leaf(1)), maxPlayer, minPlayer)
		_, err := NewAlphaBeta(maxPlayer, minPlayer, 3, treeValue).BestMove(context.Background(), root)
		require.ErrorIs(t, err, ErrNoLegalActions)
	})

	t.Run("collaborator faults propagate unmodified", func(t *testing.T) {
		boom := errors.New("boom")
		root := uniform([]int{2, 2}, []float64{1, 2, 3, 4})
		root.children[1].fault = boom

		_, err := NewAlphaBeta(maxPlayer, minPlayer, 2, treeValue).BestMove(context.Background(), root)
		require.Equal(t, boom, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		root := uniform([]int{2, 2}, []float64{1, 2, 3, 4})

		_, err := NewAlphaBeta(maxPlayer, minPlayer, 2, treeValue).BestMove(ctx, root)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invalid construction", func(t *testing.T) {
		require.Panics(t, func() { NewAlphaBeta(maxPlayer, minPlayer, 2, nil) })
		require.Panics(t, func() { NewAlphaBeta(maxPlayer, maxPlayer, 2, treeValue) })
	})
}

// depthValue pulls terminal values toward zero by one per ply.
type depthValue struct{}

func (depthValue) Evaluate(state game.State) float64 {
	return treeValue(state)
}

func (depthValue) EvaluateAt(state game.State, ply int) float64 {
	s := state.(*treeState)
	switch {
	case !s.terminal || s.value == 0:
		return s.value
	case s.value > 0:
		return s.value - float64(ply)
	default:
		return s.value + float64(ply)
	}
}

func TestAlphaBetaDepthEvaluator(t *testing.T) {
	// Both moves win, move 1 right away and move 0 a ply later
	root := label(inner(0,
		inner(0, leaf(100)),
		leaf(100),
	), maxPlayer, minPlayer)

	require.Equal(t, treeMove(0), bestMove(t, NewAlphaBeta(maxPlayer, minPlayer, 3, treeValue), root),
		"Without depth the first of the equal wins is kept")
	require.Equal(t, treeMove(1), bestMove(t, NewAlphaBeta(maxPlayer, minPlayer, 3, depthValue{}), root),
		"The quicker win should be preferred")
	require.Equal(t, treeMove(1), bestMove(t, NewMinimax(maxPlayer, minPlayer, 3, depthValue{}), root))

	value, err := NewMinimax(maxPlayer, minPlayer, 3, depthValue{}).Value(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, 99.0, value)
}
