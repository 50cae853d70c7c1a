package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"creditref/internal/draft/service"
	"creditref/internal/draft/store"
	"creditref/internal/request"
)

func newBuildCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Build a request document from JSON input",
		Long: `Reads a request body as accepted by POST /v1/requests from file, or from
stdin when file is "-" or omitted, and prints the resulting draft.

In strict mode the first rejected field is reported and the command fails.
In permissive mode rejected inputs are listed under "rejections".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, mode)
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "error mode: strict|verbose|permissive|silent (overrides the input)")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string, mode string) error {
	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	var input service.BuildInput
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if mode != "" {
		m, err := request.ParseMode(mode)
		if err != nil {
			return err
		}
		input.Mode = &m
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	svc := service.New(store.NewInMemoryStore(), service.WithLogger(logger))
	draft, err := svc.Build(cmd.Context(), input)
	if err != nil {
		if verr, ok := request.AsValidationError(err); ok {
			return fmt.Errorf("%s.%s rejected: %w", verr.Kind, verr.Field, verr.Reason)
		}
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(draft)
}

func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}
