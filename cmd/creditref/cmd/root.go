// Package cmd implements the creditref command line: offline request builds,
// field listings and development tokens.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "creditref",
		Short: "Build credit reference request documents",
		Long: `creditref builds credit reference request documents from applicant
input, the same way the HTTP API does, without running the server.

Commands:
  build   - build a request document from a JSON file
  fields  - list the fields each partial accepts
  token   - mint a bearer token for local testing
  version - print the version`,
		SilenceUsage: true,
	}
	root.AddCommand(newBuildCmd(), newFieldsCmd(), newTokenCmd(), newVersionCmd())
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}
