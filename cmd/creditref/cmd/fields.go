package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"creditref/internal/request"
)

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "fields [kind]",
		Short:     "List the fields each partial accepts",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(request.KindApplicationData), string(request.KindLocationDetails)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []request.PartialKind{request.KindApplicationData, request.KindLocationDetails}
			if len(args) == 1 {
				kinds = []request.PartialKind{request.PartialKind(args[0])}
			}

			req := request.New()
			applicant, err := req.CreateApplicant("Field", "Listing")
			if err != nil {
				return err
			}
			for _, kind := range kinds {
				partial, err := req.CreatePartial(kind, applicant)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", kind)
				for _, field := range partial.Fields() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", field)
				}
			}
			return nil
		},
	}
}
