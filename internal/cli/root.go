// Package cli implements qbctl, the operator command line for the querybridge API.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"querybridge/internal/client"
)

const defaultServer = "http://localhost:8080"

type options struct {
	server string
	schema string
	json   bool
	out    io.Writer
}

func (o *options) client() *client.Client {
	return client.New(o.server, nil)
}

// NewRootCmd builds the qbctl command tree writing to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	o := &options{out: out}

	root := &cobra.Command{
		Use:           "qbctl",
		Short:         "Route natural-language requests to PostgreSQL and MongoDB",
		Long:          `qbctl sends free-text requests to a querybridge server and renders the result envelope.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	server := os.Getenv("QB_SERVER")
	if server == "" {
		server = defaultServer
	}
	schema := os.Getenv("SCHEMA_NAME")
	if schema == "" {
		schema = "dvdrental"
	}

	root.PersistentFlags().StringVar(&o.server, "server", server, "querybridge base URL (env QB_SERVER)")
	root.PersistentFlags().BoolVar(&o.json, "json", false, "print raw JSON instead of formatted output")

	analyze := newAnalyzeCmd(o)
	analyze.Flags().StringVar(&o.schema, "schema", schema, "schema name treated as a relational keyword")

	root.AddCommand(
		analyze,
		newQueryCmd(o),
		newCommandCmd(o),
		newToolsCmd(o),
		newExamplesCmd(o),
		newHealthCmd(o),
		newBackupsCmd(o),
	)
	return root
}
