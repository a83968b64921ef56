// meta/meta.go
package meta

// DEFAULT_PLIES is the search depth used when none is given.
const DEFAULT_PLIES = 6

// MAX_TURNS caps the number of plies in a game.
const MAX_TURNS = 300

// NUM_GAMES is the number of games played per experiment matchup.
const NUM_GAMES = 10

// PARALLELISM is the number of games played at once in an experiment.
const PARALLELISM = 4

// RECORDS_DIR is where experiment records are written.
const RECORDS_DIR = "records"
