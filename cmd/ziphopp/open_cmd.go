// cmd/ziphopp/open_cmd.go

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/ziphopp/internal/app"
	"github.com/creativeyann17/ziphopp/pkg/inspect"
	"github.com/creativeyann17/ziphopp/pkg/picker"
)

// maxPasswordAttempts bounds the interactive password prompt
const maxPasswordAttempts = 3

func init() {
	rootCmd.AddCommand(openCmd())
}

func openCmd() *cobra.Command {
	var password string
	var pickDir string
	var recentIndex int
	var verifyData bool
	var noPrompt bool
	var asJSON bool
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "open [archive]",
		Short: "Open a zip archive and list its contents",
		Long: `Open a zip archive, list its entries and report its sizes.

Without an archive argument a file picker lists the zip files of --dir.
Encrypted archives need a password: pass --password, or type it when asked.
Archives that open successfully are added to the recent list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if quiet {
				verbose = false
			}
			level := ""
			if verbose {
				level = "debug"
			}

			env, err := setup(level)
			if err != nil {
				return err
			}
			defer env.close()

			if cmd.Flags().Changed("data") {
				env.cfg.VerifyData = verifyData
			}
			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())

			// Logging helper
			log := func(format string, args ...interface{}) {
				if !quiet && !asJSON {
					fmt.Fprintf(out, format+"\n", args...)
				}
			}

			a, err := env.newApp(&picker.Terminal{Dir: pickDir, In: in, Out: out})
			if err != nil {
				return err
			}

			req := app.Request{
				Password:    password,
				HasPassword: cmd.Flags().Changed("password"),
			}
			switch {
			case len(args) == 1:
				req.Path = args[0]
			case recentIndex > 0:
				recent := a.Refresh().History
				if recentIndex > len(recent) {
					return fmt.Errorf("no recent archive #%d (%d remembered)", recentIndex, len(recent))
				}
				req.Path = recent[recentIndex-1].Path
			}

			outcome, err := openWithProgress(a, req, !quiet && !verbose && !asJSON)

			// Ask for the password like the desktop modal did
			for attempt := 0; attempt < maxPasswordAttempts && !noPrompt && !asJSON; attempt++ {
				var fail *inspect.Failure
				if !errors.As(err, &fail) || !fail.PasswordRequired {
					break
				}
				if fail.Kind == inspect.KindCredentialInvalid {
					fmt.Fprintln(out, "Wrong password.")
				}
				fmt.Fprint(out, "This file is password protected. Type your password (empty to cancel): ")
				line, readErr := readLine(in)
				if readErr != nil || line == "" {
					break
				}
				req = app.Request{Path: fail.Path, Password: line, HasPassword: true}
				outcome, err = openWithProgress(a, req, false)
			}

			if err != nil {
				var fail *inspect.Failure
				if asJSON && errors.As(err, &fail) {
					if encErr := writeJSON(out, fail); encErr != nil {
						return encErr
					}
				}
				return err
			}

			if asJSON {
				return writeJSON(out, outcome)
			}

			for _, name := range outcome.Contents {
				log("  %s", name)
			}
			log("")
			fmt.Fprint(out, outcome.Summary())

			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password for encrypted archives (checks the first entry only)")
	cmd.Flags().StringVar(&pickDir, "dir", ".", "Directory listed by the file picker")
	cmd.Flags().IntVar(&recentIndex, "recent", 0, "Open the Nth archive of the recent list")
	cmd.Flags().BoolVar(&verifyData, "data", false, "Read every entry and verify its checksum (overrides config)")
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Never ask for a password interactively")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	return cmd
}

// openWithProgress runs OpenFile, drawing a progress bar when asked
func openWithProgress(a *app.App, req app.Request, showProgress bool) (*inspect.Outcome, error) {
	var progressCb inspect.ProgressCallback
	var progress *mpb.Progress

	if showProgress && !req.HasPassword {
		progressCb, progress = inspect.ProgressBarCallback()
	}

	outcome, err := a.OpenFile(req, progressCb)

	// Wait for progress bars to finish rendering
	if progress != nil {
		progress.Wait()
	}

	return outcome, err
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
