package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opttab/opttab-go/internal/app"
	"github.com/opttab/opttab-go/internal/config"
	"github.com/opttab/opttab-go/internal/logger"
	"github.com/opttab/opttab-go/pkg/opttab"
)

// cli holds state shared by every command for one invocation.
type cli struct {
	out      io.Writer
	err      io.Writer
	app      *app.App
	reported bool
}

func newCLI(out, errOut io.Writer) *cli {
	return &cli{out: out, err: errOut}
}

func newRootCommand(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "opttab",
		Short:         "Command line client for the Opttab User API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return c.setup(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(c.out)
	root.SetErr(c.err)

	pf := root.PersistentFlags()
	pf.String("api-key", "", "Opttab API key (env OPTTAB_API_KEY)")
	pf.String("base-url", "", "API base URL (env OPTTAB_BASE_URL)")
	pf.Int("timeout", 30, "request timeout in seconds")
	pf.Int("retries", 0, "retries on transport errors and 5xx responses")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("publishers-file", "", "YAML/JSON file listing asset event publishers")

	root.AddCommand(
		c.profileCommand(),
		c.statsCommand(),
		c.assetsCommand(),
		c.analyticsCommand(),
		c.demoCommand(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return c.fail(fmt.Errorf("load config: %w", err))
	}

	log, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return c.fail(fmt.Errorf("init logger: %w", err))
	}
	log.DebugObj("opttab starting", "config", cfg.Redacted())

	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return c.fail(err)
	}
	c.app = a
	return nil
}

func (c *cli) teardown() {
	if c.app != nil {
		c.app.Close()
	}
	_ = logger.Close()
}

// fail prints err for the user and returns it so cobra exits non-zero.
func (c *cli) fail(err error) error {
	app.DescribeError(c.err, err)
	c.reported = true
	return err
}

// report prints errors cobra produced itself, such as unknown flags.
func (c *cli) report(err error) {
	if err == nil || c.reported {
		return
	}
	app.DescribeError(c.err, err)
}

// emit prints a result as JSON or reports the error.
func (c *cli) emit(v any, err error) error {
	if err != nil {
		return c.fail(err)
	}
	return app.PrintJSON(c.out, v)
}

func (c *cli) profileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.emit(c.app.Session().Profile(cmd.Context()))
		},
	}
}

func (c *cli) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show account statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.emit(c.app.Session().Stats(cmd.Context()))
		},
	}
}

func (c *cli) assetsCommand() *cobra.Command {
	assets := &cobra.Command{
		Use:   "assets",
		Short: "Manage assets",
	}

	var listOpts opttab.ListAssetsOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.emit(c.app.Session().ListAssets(cmd.Context(), listOpts))
		},
	}
	list.Flags().IntVar(&listOpts.Limit, "limit", opttab.DefaultListLimit, "maximum number of assets")
	list.Flags().StringVar(&listOpts.Status, "status", "", "filter by status")

	var in opttab.AssetInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.emit(c.app.Session().CreateAsset(cmd.Context(), in))
		},
	}
	create.Flags().StringVar(&in.Name, "name", "", "asset name (required)")
	create.Flags().StringVar(&in.Category, "category", "", "asset category, e.g. creative_work (required)")
	create.Flags().StringVar(&in.Description, "description", "", "asset description")
	create.Flags().StringArrayVar(&in.Links, "link", nil, "related link (repeatable)")
	create.Flags().StringArrayVar(&in.AIModels, "ai-model", nil, "AI model name (repeatable)")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("category")

	var sets []string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update asset fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return c.fail(err)
			}
			patch, err := parsePatch(sets)
			if err != nil {
				return c.fail(err)
			}
			return c.emit(c.app.Session().UpdateAsset(cmd.Context(), id, patch))
		},
	}
	update.Flags().StringArrayVar(&sets, "set", nil, "field=value to change; JSON values are decoded (repeatable)")
	_ = update.MarkFlagRequired("set")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return c.fail(err)
			}
			return c.emit(c.app.Session().DeleteAsset(cmd.Context(), id))
		},
	}

	analytics := &cobra.Command{
		Use:   "analytics <id>",
		Short: "Show analytics for an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return c.fail(err)
			}
			return c.emit(c.app.Session().AssetAnalytics(cmd.Context(), id))
		},
	}

	assets.AddCommand(list, create, update, del, analytics)
	return assets
}

func (c *cli) analyticsCommand() *cobra.Command {
	analytics := &cobra.Command{
		Use:   "analytics",
		Short: "Account-wide analytics",
	}
	analytics.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Show the analytics summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.emit(c.app.Session().AnalyticsSummary(cmd.Context()))
		},
	})
	return analytics
}

func (c *cli) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a create/update/analytics/delete walkthrough against the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Session().Walkthrough(cmd.Context(), c.out); err != nil {
				return c.fail(err)
			}
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid asset id %q", raw)
	}
	return id, nil
}

// parsePatch turns field=value pairs into a patch. Values that parse as JSON
// keep their JSON type; anything else is sent as a string.
func parsePatch(pairs []string) (opttab.AssetPatch, error) {
	patch := make(opttab.AssetPatch, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q (want field=value)", pair)
		}
		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			patch[key] = decoded
			continue
		}
		patch[key] = value
	}
	return patch, nil
}
