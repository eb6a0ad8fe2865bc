package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"lxsort/internal/match"
	"lxsort/internal/shared"
	"lxsort/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
	engine *tasks.SortEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	engine := tasks.NewSortEngine(weightsFromConfig(opts.Config))

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		engine: engine,
	}
}

// weightsFromConfig merges the [matching] config section over the built-in
// defaults. Zero fields keep the default so partial configs stay valid.
func weightsFromConfig(cfg *shared.Config) match.Weights {
	w := match.DefaultWeights()
	m := cfg.Matching
	if m.Exact > 0 {
		w.Exact = m.Exact
	}
	if m.ExactWithArtist > 0 {
		w.ExactWithArtist = m.ExactWithArtist
	}
	if m.RefInCandidate > 0 {
		w.RefInCandidate = m.RefInCandidate
	}
	if m.CandidateInRef > 0 {
		w.CandidateInRef = m.CandidateInRef
	}
	if m.ArtistBonus > 0 {
		w.ArtistBonus = m.ArtistBonus
	}
	if m.Threshold > 0 {
		w.Threshold = m.Threshold
	}
	return w
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		sortCommand, playlistsCommand, parseCommand, exportCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openHistory opens the configured history database and ensures its schema.
// Returns nil without error when history is disabled.
func (r *Runner) openHistory() (*sql.DB, error) {
	if r.config.Database.Path == "" {
		return nil, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
