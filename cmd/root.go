package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shlama/shlama/internal/broker"
	"github.com/shlama/shlama/internal/config"
	"github.com/shlama/shlama/internal/constants"
	"github.com/shlama/shlama/internal/display"
	"github.com/shlama/shlama/internal/executor"
	"github.com/shlama/shlama/internal/logging"
	"github.com/shlama/shlama/internal/ollama"
	"github.com/shlama/shlama/internal/suggest"
)

// App holds the application state
type App struct {
	cfg         *config.Config
	selectModel bool
	showVersion bool
	explain     bool
	verbose     bool
}

// NewApp creates a new App instance
func NewApp() *App {
	return &App{}
}

// Execute runs the root command
func Execute() {
	app := NewApp()

	rootCmd := &cobra.Command{
		Use:   "shlama [request...]",
		Short: "Turn a natural-language request into a shell command",
		Long: `shlama asks a local Ollama model for exactly one shell command matching
your request, shows it, and runs it only after you confirm with "y".

Examples:
  shlama list all files including hidden
  shlama "show the 10 largest files in this directory"
  shlama -e find every TODO in the repo     # also explain the command
  shlama -m                                 # choose a different model`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.run(cmd, args)
		},
	}

	rootCmd.Flags().BoolVarP(&app.selectModel, "model", "m", false, "Choose the model interactively")
	rootCmd.Flags().BoolVarP(&app.showVersion, "version", "v", false, "Print version and exit")
	rootCmd.Flags().BoolVarP(&app.explain, "explain", "e", false, "Explain the suggested command before confirming")
	rootCmd.Flags().BoolVar(&app.verbose, "verbose", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (app *App) run(cmd *cobra.Command, args []string) {
	if app.showVersion {
		fmt.Printf("%s %s\n", constants.AppName, constants.Version)
		return
	}

	if app.verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	app.cfg = config.Load()
	logging.Debug("resolved configuration", logging.Fields{
		"invocation": uuid.NewString(),
		"model":      app.cfg.Model,
		"server":     app.cfg.ServerURL,
	})

	client := ollama.NewClient(app.cfg.ServerURL, app.verbose)

	if app.selectModel {
		if err := app.runModelSelection(client); err != nil {
			display.Errorf(os.Stderr, "%v", err)
			os.Exit(1)
		}
		return
	}

	engine := suggest.NewEngine(client, app.cfg.Model)
	b := &broker.Broker{
		Prober:    ollama.NewProber(app.cfg.ServerURL),
		Generator: &spinnerGenerator{engine: engine},
		Executor:  executor.NewShell(),
		In:        os.Stdin,
		Out:       os.Stdout,
	}
	if app.explain {
		b.OnSuggest = explainSuggestion(engine)
	}

	if err := b.Run(context.Background(), args); err != nil {
		app.reportError(cmd, err)
		os.Exit(1)
	}
}

// reportError maps every broker error to a colored, human-readable message.
func (app *App) reportError(cmd *cobra.Command, err error) {
	var execErr *broker.ExecutionError

	switch {
	case errors.Is(err, broker.ErrUsage):
		display.Errorf(os.Stderr, "tell me what you want to do, e.g. %s \"list all files including hidden\"", constants.AppName)
		fmt.Fprintln(os.Stderr)
		_ = cmd.Help()

	case errors.Is(err, broker.ErrServerUnavailable):
		display.Errorf(os.Stderr, "could not reach Ollama at %s", app.cfg.ServerURL)
		display.Warnf(os.Stderr, "Install it from https://ollama.com, or start it with 'ollama serve' and try again.")

	case errors.As(err, &execErr):
		display.Errorf(os.Stderr, "%v", execErr)
		display.Warnf(os.Stderr, "The command ran with your consent and may have had partial effects before failing.")

	default:
		display.Errorf(os.Stderr, "%v", err)
	}
}

// spinnerGenerator shows a spinner on stderr while the blocking generation
// call runs; the broker never sees terminal concerns.
type spinnerGenerator struct {
	engine *suggest.Engine
}

func (g *spinnerGenerator) Suggest(ctx context.Context, request string) (string, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " thinking..."
	s.Start()
	defer s.Stop()
	return g.engine.Suggest(ctx, request)
}

// explainSuggestion renders a markdown explanation of the suggested command
// between display and confirmation.
func explainSuggestion(engine *suggest.Engine) func(ctx context.Context, command string) {
	return func(ctx context.Context, command string) {
		md, err := engine.Explain(ctx, command)
		if err != nil {
			display.Warnf(os.Stderr, "explanation unavailable: %v", err)
			return
		}
		rendered, err := glamour.Render(md, "auto")
		if err != nil {
			fmt.Println(md)
			return
		}
		fmt.Print(rendered)
	}
}
