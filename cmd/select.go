package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shlama/shlama/internal/config"
	"github.com/shlama/shlama/internal/display"
	"github.com/shlama/shlama/internal/ollama"
)

// choiceKind is the validated result of a menu input. Raw numeric strings are
// parsed once at the boundary; nothing deeper dispatches on them.
type choiceKind int

const (
	choiceCancel choiceKind = iota
	choiceCurated
	choiceCustom
)

// parseChoice maps a raw menu line onto a choice. 1..curatedCount select a
// curated model (index returned), curatedCount+1 is custom, 0 and anything
// unrecognized cancel.
func parseChoice(input string, curatedCount int) (choiceKind, int) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 {
		return choiceCancel, 0
	}
	switch {
	case n <= curatedCount:
		return choiceCurated, n - 1
	case n == curatedCount+1:
		return choiceCustom, 0
	default:
		return choiceCancel, 0
	}
}

// selectDeps are the injectable pieces of the selection flow.
type selectDeps struct {
	current  string
	curated  []string
	save     func(name string) error
	hasModel func(ctx context.Context, name string) (bool, error)
	pull     func(name string) error
	in       io.Reader
	out      io.Writer
}

// runModelSelection shows the menu, persists the chosen model and offers to
// download it when it is not available locally.
func runModelSelection(ctx context.Context, d selectDeps) error {
	fmt.Fprintf(d.out, "Current model: %s\n\n", d.current)
	for i, m := range d.curated {
		fmt.Fprintf(d.out, "  %d) %s\n", i+1, m)
	}
	fmt.Fprintf(d.out, "  %d) custom model name\n", len(d.curated)+1)
	fmt.Fprintln(d.out, "  0) cancel")
	display.Promptf(d.out, "\nChoice: ")

	reader := bufio.NewReader(d.in)
	line, _ := reader.ReadString('\n')

	var model string
	switch kind, idx := parseChoice(line, len(d.curated)); kind {
	case choiceCancel:
		display.Noticef(d.out, "No change.")
		return nil
	case choiceCurated:
		model = d.curated[idx]
	case choiceCustom:
		display.Promptf(d.out, "Model name: ")
		custom, _ := reader.ReadString('\n')
		model = strings.TrimSpace(custom)
		if model == "" {
			display.Noticef(d.out, "No change.")
			return nil
		}
	}

	if err := d.save(model); err != nil {
		return err
	}
	display.Successf(d.out, "Model set to %s", model)

	has, err := d.hasModel(ctx, model)
	if err != nil {
		display.Warnf(d.out, "Could not check local models: %v", err)
		return nil
	}
	if has {
		return nil
	}

	display.Promptf(d.out, "Model %s is not available locally. Download it now? [y/N]: ", model)
	answer, _ := reader.ReadString('\n')
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		display.Noticef(d.out, "Skipped download.")
		return nil
	}
	if err := d.pull(model); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	display.Successf(d.out, "Model %s downloaded", model)
	return nil
}

func (app *App) runModelSelection(client *ollama.Client) error {
	return runModelSelection(context.Background(), selectDeps{
		current:  app.cfg.Model,
		curated:  app.cfg.MenuModels,
		save:     config.SaveModel,
		hasModel: client.HasModel,
		pull:     pullModel,
		in:       os.Stdin,
		out:      os.Stdout,
	})
}

// pullModel shells out to the ollama CLI; the download is blocking and its
// progress output streams straight to the terminal.
func pullModel(name string) error {
	bin, err := exec.LookPath("ollama")
	if err != nil {
		return fmt.Errorf("ollama binary not found: %w", err)
	}
	cmd := exec.Command(bin, "pull", name)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
