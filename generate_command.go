package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nijaru/yt-blog/backend"
	"github.com/nijaru/yt-blog/form"
	"github.com/nijaru/yt-blog/models"
	"github.com/nijaru/yt-blog/presenter"
	"github.com/nijaru/yt-blog/validation"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const terminalWidth = 100

type generateOptions struct {
	audience string
	tone     string
	format   string
	copy     bool
	saveDir  string
	raw      bool
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate <youtube-url>",
		Short: "Generate a blog post from a YouTube video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log, err := ctx.ensureLogger(false)
			if err != nil {
				return err
			}
			defer ctx.close()

			formOpts, err := validation.ParseOptions(opts.audience, opts.tone, opts.format)
			if err != nil {
				return err
			}

			client := backend.NewClient(cfg.BackendURL, backend.WithLogger(log))
			ctrl := form.NewController(client, form.WithLogger(logrus.NewEntry(log)))

			stderr := cmd.ErrOrStderr()
			ctrl.OnChange(func(s form.State) {
				if s.Loading {
					fmt.Fprintln(stderr, "Processing...")
				}
			})

			state := ctrl.Submit(cmd.Context(), args[0], formOpts)
			if state.Error != "" {
				return errors.New(state.Error)
			}

			p := presenter.New(presenter.WithTempDir(cfg.TempDir), presenter.WithLogger(log))
			if err := writePost(cmd.OutOrStdout(), p, state.Result, formOpts.OutputFormat, opts.raw); err != nil {
				return err
			}

			if opts.copy {
				p.CopyToClipboard(state.Result)
			}
			if opts.saveDir != "" {
				path, err := savePost(p, state.Result, opts.saveDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(stderr, "Saved %s\n", path)
			}
			return nil
		},
	}

	defaults := models.DefaultFormOptions()
	cmd.Flags().StringVarP(&opts.audience, "audience", "a", string(defaults.Audience), "Target audience")
	cmd.Flags().StringVarP(&opts.tone, "tone", "t", string(defaults.Tone), "Writing tone")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(defaults.OutputFormat), "Output format (markdown or html)")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the post to the clipboard")
	cmd.Flags().StringVar(&opts.saveDir, "save", "", "Directory to save "+presenter.DownloadFileName+" into")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the post without terminal styling")

	return cmd
}

// writePost prints styled output on a terminal and the raw text otherwise.
func writePost(out io.Writer, p *presenter.Presenter, content string, format models.OutputFormat, raw bool) error {
	if !raw && isTerminal(out) {
		styled, err := p.RenderTerminal(content, format, terminalWidth)
		if err == nil {
			_, err = io.WriteString(out, styled)
			return err
		}
	}

	_, err := io.WriteString(out, content)
	if err == nil && (len(content) == 0 || content[len(content)-1] != '\n') {
		_, err = io.WriteString(out, "\n")
	}
	return err
}

func savePost(p *presenter.Presenter, content, dir string) (string, error) {
	d, err := p.DownloadAsFile(content)
	if err != nil {
		return "", err
	}
	defer d.Release()

	return d.SaveTo(dir)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
