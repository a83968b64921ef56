package experiments

import (
	"fmt"
	"os"

	"checkers/experiments/metrics"
	"checkers/meta"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Name        string                `yaml:"name"`
	Games       int                   `yaml:"games"` // Per matchup
	Parallelism int                   `yaml:"parallelism"`
	MaxTurns    int                   `yaml:"max_turns"`
	Agents      []metrics.AgentConfig `yaml:"agents"`
	Matchups    [][]int               `yaml:"matchups"` // Pairs of agent IDs
}

// DefaultConfig pits searches of increasing depth against a random baseline and
// against each other.
func DefaultConfig() Config {
	return Config{
		Name:        "plies",
		Games:       meta.NUM_GAMES,
		Parallelism: meta.PARALLELISM,
		MaxTurns:    meta.MAX_TURNS,
		Agents: []metrics.AgentConfig{
			{ID: 0, Random: true, Seed: 1},
			{ID: 1, Plies: 2},
			{ID: 2, Plies: 4},
			{ID: 3, Plies: meta.DEFAULT_PLIES},
		},
		Matchups: [][]int{{1, 0}, {2, 0}, {3, 0}, {2, 1}, {3, 2}},
	}
}

// LoadConfig reads a YAML experiment file. Fields left out keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read experiment config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse experiment config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("experiment needs a name")
	}
	if c.Games <= 0 || c.Parallelism <= 0 || c.MaxTurns <= 0 {
		return fmt.Errorf("games, parallelism and max_turns must be positive")
	}

	ids := make(map[int]bool, len(c.Agents))
	for _, agent := range c.Agents {
		if ids[agent.ID] {
			return fmt.Errorf("duplicate agent id %d", agent.ID)
		}
		ids[agent.ID] = true
		if !agent.Random && agent.Plies <= 0 {
			return fmt.Errorf("agent %d: plies must be positive", agent.ID)
		}
	}

	if len(c.Matchups) == 0 {
		return fmt.Errorf("experiment needs at least one matchup")
	}
	for i, matchup := range c.Matchups {
		if len(matchup) != 2 {
			return fmt.Errorf("matchup %d: expected 2 agents, got %d", i, len(matchup))
		}
		for _, id := range matchup {
			if !ids[id] {
				return fmt.Errorf("matchup %d: unknown agent id %d", i, id)
			}
		}
	}
	return nil
}

func (c Config) agent(id int) metrics.AgentConfig {
	for _, agent := range c.Agents {
		if agent.ID == id {
			return agent
		}
	}
	panic(fmt.Sprintf("unknown agent id %d", id))
}
