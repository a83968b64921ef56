package searcher

import (
	"errors"
	"fmt"
	"strconv"

	"checkers/game"
)

const (
	maxPlayer = "max"
	minPlayer = "min"
)

var errWrongTurn = errors.New("wrong turn")

type treeMove int

func (m treeMove) String() string {
	return strconv.Itoa(int(m))
}

// treeState is a hand-built game tree. Leaves are terminal; value is used whenever the
// node is scored, at a leaf or at the ply limit.
type treeState struct {
	id       string
	player   string
	value    float64
	terminal bool
	children []*treeState
	fault    error // Returned by Play when set
}

func (s *treeState) IsTerminal() (bool, string) {
	return s.terminal, ""
}

func (s *treeState) LegalMoves(player string) ([]game.Move, error) {
	if player != s.player {
		return nil, fmt.Errorf("%w: %s asked to move at %q", errWrongTurn, player, s.id)
	}
	moves := make([]game.Move, len(s.children))
	for i := range s.children {
		moves[i] = treeMove(i)
	}
	return moves, nil
}

func (s *treeState) Play(move game.Move) (game.State, error) {
	if s.fault != nil {
		return nil, s.fault
	}
	i := int(move.(treeMove))
	if i < 0 || i >= len(s.children) {
		return nil, fmt.Errorf("no move %d at %q", i, s.id)
	}
	return s.children[i], nil
}

func (s *treeState) Turn() string {
	return s.player
}

var treeValue = EvaluatorFunc(func(state game.State) float64 {
	return state.(*treeState).value
})

var negatedTreeValue = EvaluatorFunc(func(state game.State) float64 {
	return -state.(*treeState).value
})

func leaf(value float64) *treeState {
	return &treeState{value: value, terminal: true}
}

func inner(value float64, children ...*treeState) *treeState {
	return &treeState{value: value, children: children}
}

// label names every node by its path and alternates players by depth, first to move at the root.
func label(root *treeState, first, second string) *treeState {
	var walk func(s *treeState, id string, player, other string)
	walk = func(s *treeState, id string, player, other string) {
		s.id = id
		s.player = player
		for i, child := range s.children {
			walk(child, id+strconv.Itoa(i), other, player)
		}
	}
	walk(root, "", first, second)
	return root
}

// uniform builds a tree whose level i has branching[i] children per node, with the
// given leaf values in left to right order.
func uniform(branching []int, values []float64) *treeState {
	next := 0
	var build func(depth int) *treeState
	build = func(depth int) *treeState {
		if depth == len(branching) {
			v := values[next]
			next++
			return leaf(v)
		}
		s := inner(0)
		for i := 0; i < branching[depth]; i++ {
			s.children = append(s.children, build(depth+1))
		}
		return s
	}
	root := build(0)
	if next != len(values) {
		panic(fmt.Sprintf("used %d of %d leaf values", next, len(values)))
	}
	return label(root, maxPlayer, minPlayer)
}

// mirror swaps the players and negates every value.
func mirror(s *treeState) *treeState {
	m := &treeState{id: s.id, value: -s.value, terminal: s.terminal}
	switch s.player {
	case maxPlayer:
		m.player = minPlayer
	case minPlayer:
		m.player = maxPlayer
	}
	for _, child := range s.children {
		m.children = append(m.children, mirror(child))
	}
	return m
}
