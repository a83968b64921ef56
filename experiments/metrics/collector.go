package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Searcher    string
	Plies       int
	Duration    time.Duration
	Nodes       int // Expanded (non-cutoff) nodes
	Evaluations int // Cutoff nodes scored by the evaluator
	Prunes      int // Levels abandoned by an alpha or beta cutoff
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "" for a draw or an unfinished game
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(searcher string, plies int)
	AddNode()
	AddEvaluation()
	AddPrune()
	Complete() SearchMetric
}

type collector struct {
	searcher    string
	plies       int
	startTime   time.Time
	nodes       atomic.Int64
	evaluations atomic.Int64
	prunes      atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(searcher string, plies int) {
	m.startTime = time.Now()
	m.searcher = searcher
	m.plies = plies
	m.nodes.Store(0)
	m.evaluations.Store(0)
	m.prunes.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddPrune() {
	m.prunes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Searcher:    m.searcher,
		Plies:       m.plies,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Evaluations: int(m.evaluations.Load()),
		Prunes:      int(m.prunes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(searcher string, plies int) {}
func (m *dummyCollector) AddNode()                         {}
func (m *dummyCollector) AddEvaluation()                   {}
func (m *dummyCollector) AddPrune()                        {}
func (m *dummyCollector) Complete() SearchMetric           { return SearchMetric{} }
