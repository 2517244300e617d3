package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"querybridge/internal/intent"
)

func newAnalyzeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <text>",
		Short: "Classify text locally without contacting any backend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := intent.NewAnalyzer(o.schema).Analyze(strings.Join(args, " "))
			if o.json {
				return writeJSON(o.out, a)
			}
			return renderAnalysis(o.out, a)
		},
	}
}

func newQueryCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "query <text>",
		Short: "Route a natural-language request to the backends",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := o.client().Query(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if o.json {
				return writeJSON(o.out, res)
			}
			return renderResult(o.out, &res.QueryResult)
		},
	}
}

func newCommandCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "command <text>",
		Short: "Run an operator command such as \"backup postgres to mongodb\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := o.client().Command(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if o.json {
				return writeJSON(o.out, res)
			}
			return renderResult(o.out, res)
		},
	}
}

func newToolsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List backend capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tools, err := o.client().Tools(cmd.Context())
			if err != nil {
				return err
			}
			if o.json {
				return writeJSON(o.out, tools)
			}
			return renderTools(o.out, tools)
		},
	}
}

func newExamplesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show example requests by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := o.client().Examples(cmd.Context())
			if err != nil {
				return err
			}
			if o.json {
				return writeJSON(o.out, ex)
			}
			return renderExamples(o.out, ex)
		},
	}
}

func newHealthCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe every backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := o.client().Health(cmd.Context())
			if err != nil {
				return err
			}
			if o.json {
				return writeJSON(o.out, rep)
			}
			return renderHealth(o.out, rep)
		},
	}
}

func newBackupsCmd(o *options) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List recorded backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("limit must be positive")
			}
			res, err := o.client().Backups(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			if o.json {
				return writeJSON(o.out, res)
			}
			return renderBackups(o.out, res)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}
