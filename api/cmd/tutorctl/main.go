package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tutor-proxy/api/internal/app"
	"tutor-proxy/api/internal/config"
	"tutor-proxy/api/internal/logging"
	"tutor-proxy/api/internal/tools/calculator"
	"tutor-proxy/api/internal/tools/physics"
	"tutor-proxy/api/internal/tutor"
)

var (
	llmName string
	timeout time.Duration
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tutorctl",
	Short: "Ask the tutor and run its local tools from the terminal",
	Long: `tutorctl drives the same pipeline as the HTTP service.

ask and classify call the configured collaborator and need an API key.
calc and solve run the local tools only.`,
	SilenceUsage: true,
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Classify, route and answer a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var classifyCmd = &cobra.Command{
	Use:   "classify <question>",
	Short: "Print the subject label and the route it selects",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

var calcCmd = &cobra.Command{
	Use:   "calc <expression>",
	Short: "Evaluate an arithmetic expression",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), calculator.Evaluate(strings.Join(args, " ")))
		return nil
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve <problem text>",
	Short: "Extract physics quantities and apply the force, energy and kinematics formulas",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		out := cmd.OutOrStdout()
		if verbose {
			for k, v := range physics.Extract(text) {
				fmt.Fprintf(out, "%s: %v\n", k, v)
			}
		}
		fmt.Fprintln(out, physics.Solve(text))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&llmName, "llm", "", "engine to use (gemini, gpt); defaults to DEFAULT_LLM")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 70*time.Second, "deadline for collaborator calls")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging and extra output")

	rootCmd.AddCommand(askCmd, classifyCmd, calcCmd, solveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadTutor() (*tutor.Tutor, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level, "console")
	if err != nil {
		return nil, nil, err
	}
	pool, err := app.Tutors(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	t, err := pool.Get(llmName)
	if err != nil {
		return nil, nil, err
	}
	return t, logger, nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	t, logger, err := loadTutor()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	ans, err := t.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "[label=%q subject=%q engine=%s]\n", ans.Label, ans.Subject, t.Engine().Name())
	}
	fmt.Fprintln(cmd.OutOrStdout(), ans.Text)
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	t, logger, err := loadTutor()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	label, err := t.Classifier().Classify(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	route := "fallback"
	if r, ok := t.Dispatcher().Match(label); ok {
		route = r.Subject.Name
	}
	fmt.Fprintf(cmd.OutOrStdout(), "label: %s\nroute: %s\n", label, route)
	return nil
}
