package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/imagebatch/pkg/archive"
)

func newBundleCmd(flags *globalFlags) *cobra.Command {
	var (
		session string
		files   string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Write a zip bundle of one session or the whole store",
		Long: `Write a zip bundle of one session or the whole store.

Without --session every session is included, each under its own folder.
--files narrows the bundle to exact filenames. Without -o the bundle is
written to the current directory under its suggested name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := flags.newOfflineApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			dir := "."
			if output != "" {
				dir = filepath.Dir(output)
			}
			tmp, err := os.CreateTemp(dir, ".bundle-*.zip")
			if err != nil {
				return fmt.Errorf("create bundle file: %w", err)
			}
			defer os.Remove(tmp.Name())

			scope := archive.Scope{SessionID: session, Files: archive.ParseFilter(files)}
			bundle, err := app.Builder().Build(cmd.Context(), scope, tmp)
			if cerr := tmp.Close(); err == nil && cerr != nil {
				err = cerr
			}
			if err != nil {
				return err
			}

			target := output
			if target == "" {
				target = filepath.Join(dir, bundle.Name)
			}
			if err := os.Rename(tmp.Name(), target); err != nil {
				return fmt.Errorf("write bundle: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d files)\n",
				headerStyle.Render("wrote"), target, bundle.Files)
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session to bundle (default: all sessions)")
	cmd.Flags().StringVar(&files, "files", "", "Comma-separated filenames to include")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	return cmd
}
