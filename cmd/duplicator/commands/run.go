// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/similigh/issue-duplicator/internal/core/config"
	"github.com/similigh/issue-duplicator/internal/core/duplicator"
	"github.com/similigh/issue-duplicator/internal/core/event"
	"github.com/similigh/issue-duplicator/internal/core/pipeline"
	"github.com/similigh/issue-duplicator/internal/integrations/github"
	"github.com/similigh/issue-duplicator/internal/logging"
	"github.com/similigh/issue-duplicator/internal/tui"
)

// outputIssueURLs is the action output listing the created issues.
const outputIssueURLs = "issue-urls"

// runOptions are flag overrides shared by run and check.
type runOptions struct {
	eventName string
	eventPath string
	targets   []string
	command   string
	dryRun    bool
}

var runFlags runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Duplicate the issue of an issue_comment event",
	Long: `Read the issue_comment event handed over by the Actions runner, create a copy
of the issue in every target repository, copy its project field values, and
append links to the copies to the triggering comment.`,
	Run: func(cmd *cobra.Command, args []string) {
		action := newAction(cmd.OutOrStdout(), os.Getenv, &runFlags)
		exitOnError(action, runWorkflow(cmd.Context(), action, "duplicate", &runFlags))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd, &runFlags)
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.eventName, "event-name", "", "Event name (default: $GITHUB_EVENT_NAME)")
	cmd.Flags().StringVar(&opts.eventPath, "event-path", "", "Path to the event payload (default: $GITHUB_EVENT_PATH)")
	cmd.Flags().StringSliceVar(&opts.targets, "target-repositories", nil, "Repositories to duplicate into, as owner/name or name")
	cmd.Flags().StringVar(&opts.command, "command", "", "Only comments equal to this command trigger a duplication")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Log writes instead of performing them")
}

// apply overlays flags onto the config; flags win over inputs and file.
func (o *runOptions) apply(cfg *config.Config) {
	if len(o.targets) > 0 {
		cfg.TargetRepositories = o.targets
	}
	if o.command != "" {
		cfg.Trigger.Command = o.command
	}
	if o.dryRun {
		cfg.DryRun = true
	}
}

// newAction binds the Actions toolkit to out and getenv, with the event
// flags standing in for the runner's event variables.
func newAction(out io.Writer, getenv func(string) string, opts *runOptions) *githubactions.Action {
	return githubactions.New(
		githubactions.WithWriter(out),
		githubactions.WithGetenv(func(key string) string {
			switch {
			case key == "GITHUB_EVENT_NAME" && opts.eventName != "":
				return opts.eventName
			case key == "GITHUB_EVENT_PATH" && opts.eventPath != "":
				return opts.eventPath
			}
			return getenv(key)
		}),
	)
}

func runWorkflow(ctx context.Context, action *githubactions.Action, workflow string, opts *runOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ev, ghctx, err := loadEventContext(action)
	if err != nil {
		return err
	}
	endpoints := github.Endpoints{API: ghctx.APIURL, GraphQL: ghctx.GraphqlURL}

	inputs, err := config.LoadInputs(nil)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, cfgFile, inputs, endpoints)
	if err != nil {
		return err
	}
	opts.apply(cfg)

	if workflow == "check" {
		err = cfg.ValidateSettings()
	} else {
		err = cfg.Validate()
	}
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so interactive runs only log through it.
	logger := zap.NewNop()
	if !interactive(action) {
		logger, err = logging.New(verbose)
		if err != nil {
			return err
		}
	}
	defer func() { _ = logger.Sync() }()

	client, err := github.NewClientWithEndpoints(ctx, cfg.GitHubToken, endpoints)
	if err != nil {
		return err
	}
	var api duplicator.API = client
	if cfg.DryRun {
		api = github.NewDryRunClient(client, logger)
	}

	deps := &pipeline.Dependencies{
		API:    api,
		Logger: logger,
	}
	stepNames := pipeline.ResolveSteps(workflow)

	var result *pipeline.Result
	if interactive(action) {
		runner := tuiRunner{out: os.Stdout, idleTimeout: tui.DefaultIdleTimeout}
		result, err = runner.run(ctx, deps, stepNames, ev, cfg)
	} else {
		deps.Observer = duplicator.NewLogObserver(logger)
		result, err = runDirect(ctx, deps, stepNames, ev, cfg)
	}
	if err != nil {
		return err
	}

	if result.Skipped {
		logger.Info("skipped", zap.String("reason", result.SkipReason))
	}

	writeOutputs(action, result)
	return nil
}

// interactive reports whether the process runs outside a CI runner.
func interactive(action *githubactions.Action) bool {
	return action.Getenv("CI") != "true" && action.Getenv("GITHUB_ACTIONS") != "true"
}

// loadConfig resolves the config file, its extends chain, and action inputs.
// Without a config file the inputs alone configure the run.
func loadConfig(ctx context.Context, path string, inputs *config.Inputs, endpoints github.Endpoints) (*config.Config, error) {
	token := inputs.Token()
	if token == "" {
		token = inputs.EnvToken
	}

	fetcher := func(ref string) ([]byte, error) {
		org, repo, branch, file, err := config.ParseExtendsRef(ref)
		if err != nil {
			return nil, err
		}
		if token == "" {
			return nil, fmt.Errorf("a GitHub token is required to fetch remote config %s", ref)
		}
		client, err := github.NewClientWithEndpoints(ctx, token, endpoints)
		if err != nil {
			return nil, err
		}
		return client.GetFileContent(ctx, org, repo, file, branch)
	}

	actual := config.FindConfigPath(path)
	if path != "" && actual == "" {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := &config.Config{}
	if actual != "" {
		loaded, err := config.LoadWithInheritance(actual, fetcher)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", actual, err)
		}
		cfg = loaded
	}

	cfg.ApplyInputs(inputs)
	return cfg, nil
}

// loadEventContext reads the event name and payload from the runner context.
func loadEventContext(action *githubactions.Action) (event.Context, *githubactions.GitHubContext, error) {
	ghctx, err := action.Context()
	if err != nil {
		return event.Context{}, nil, fmt.Errorf("failed to read runner context: %w", err)
	}
	if ghctx.EventName == "" {
		return event.Context{}, nil, fmt.Errorf("event name is required (--event-name or GITHUB_EVENT_NAME)")
	}
	if ghctx.EventPath == "" {
		return event.Context{}, nil, fmt.Errorf("event payload is required (--event-path or GITHUB_EVENT_PATH)")
	}
	if len(ghctx.Event) == 0 {
		return event.Context{}, nil, fmt.Errorf("event payload %s is missing or empty", ghctx.EventPath)
	}

	payload, err := json.Marshal(ghctx.Event)
	if err != nil {
		return event.Context{}, nil, fmt.Errorf("failed to encode event payload: %w", err)
	}

	return event.Context{Name: ghctx.EventName, Payload: payload}, ghctx, nil
}

// writeOutputs sets the action outputs when running under a runner.
func writeOutputs(action *githubactions.Action, result *pipeline.Result) {
	if result == nil || action.Getenv("GITHUB_OUTPUT") == "" {
		return
	}

	urls := make([]string, 0, len(result.Duplicates))
	for _, d := range result.Duplicates {
		urls = append(urls, d.URL)
	}
	action.SetOutput(outputIssueURLs, strings.Join(urls, "\n"))
}

// failureMessage is the text reported for a failed run: the failing step's
// own error, without the pipeline's step prefix.
func failureMessage(err error) string {
	var stepErr *pipeline.StepError
	if errors.As(err, &stepErr) {
		return stepErr.Err.Error()
	}
	return err.Error()
}

// reportFailure writes err as a workflow error annotation.
func reportFailure(action *githubactions.Action, err error) {
	action.Errorf("%s", failureMessage(err))
}

// exitOnError reports err and exits.
func exitOnError(action *githubactions.Action, err error) {
	if err == nil {
		return
	}
	reportFailure(action, err)
	os.Exit(1)
}
