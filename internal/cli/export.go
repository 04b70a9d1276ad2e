package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/export"
	pkgio "github.com/matzehuels/polaroid/pkg/io"
	"github.com/matzehuels/polaroid/pkg/pipeline"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	runnerOpts
	output      string // output directory
	stdout      bool   // write the PNG to stdout
	saveJSON    string // also write the session as a JSON document
	watch       bool   // re-export whenever the photo changes
	interactive bool   // toggle fields in a terminal list before exporting
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <photo>",
		Short: "Compose a polaroid PNG from a photo",
		Long: `Compose a polaroid PNG from a photo.

The photo's EXIF metadata is read and laid out as a caption under the image.
Photos without EXIF are still exported; the caption then only shows values
given with --set or --from.

The result is always named polaroid.png and written to the output directory,
replacing any previous export there. Use --stdout to pipe it elsewhere.`,
		Example: `  polaroid export DSC_0042.jpg
  polaroid export DSC_0042.jpg --background black --font Courier -o ~/Pictures
  polaroid export DSC_0042.jpg --hide latitude,longitude --set photographer="Jane Doe"
  polaroid export DSC_0042.jpg --stdout > framed.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.stdout && (opts.watch || opts.interactive) {
				return errors.New(errors.ErrCodeInvalidInput, "--stdout cannot be combined with --watch or --interactive")
			}
			return c.runExport(cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from config, else current directory)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write the PNG to stdout")
	cmd.Flags().StringVar(&opts.saveJSON, "save-json", "", "write the metadata, hidden fields and style to a JSON file")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-export whenever the photo changes")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose visible fields interactively")

	return cmd
}

// runExport builds a session for photo and exports it once, interactively or
// on every change.
func (c *CLI) runExport(cmd *cobra.Command, photo string, opts *exportOpts) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(cmd, &opts.runnerOpts, photo)
	if err != nil {
		return err
	}
	defer runner.Close()

	dir, err := c.outputDir(opts.output)
	if err != nil {
		return err
	}
	var sink export.Sink = export.DirSink{Dir: dir}
	status := cmd.OutOrStdout()
	if opts.stdout {
		sink = export.WriterSink{W: cmd.OutOrStdout()}
		status = cmd.ErrOrStderr()
	}

	if opts.interactive {
		exported, err := runInteractive(ctx, runner, sink)
		if err != nil {
			return err
		}
		if exported != nil {
			reportExport(status, exported, outputPath(dir, export.FileName), opts.stdout)
		}
		return c.saveDocument(status, runner, opts.saveJSON)
	}

	if err := c.exportOnce(ctx, status, runner, sink, dir, opts.stdout); err != nil {
		return err
	}
	if err := c.saveDocument(status, runner, opts.saveJSON); err != nil {
		return err
	}

	if opts.watch {
		return c.watchPhoto(ctx, status, photo, func(ctx context.Context) error {
			if err := opts.apply(cmd, runner, photo); err != nil {
				return err
			}
			return c.exportOnce(ctx, status, runner, sink, dir, false)
		})
	}
	return nil
}

// exportOnce runs one capture with a spinner.
func (c *CLI) exportOnce(ctx context.Context, status io.Writer, runner *pipeline.Runner, sink export.Sink, dir string, toStdout bool) error {
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, status, "Composing polaroid...")
	spinner.Start()

	res, err := runner.Export(ctx, sink)
	if err != nil {
		spinner.StopWithError("Export failed")
		if errors.IsTimeout(err) {
			printDetail(status, "a resource did not load in time; try a larger --timeout")
		}
		return fmt.Errorf("export: %w", err)
	}
	spinner.Stop()

	reportExport(status, res, outputPath(dir, res.File), toStdout)
	prog.done("Exported " + res.File)
	return nil
}

func reportExport(w io.Writer, res *pipeline.Result, path string, toStdout bool) {
	if toStdout {
		printSuccess(w, "Wrote %d bytes to stdout", res.Bytes)
		return
	}
	printSuccess(w, "Exported polaroid")
	printFile(w, path)
}

// saveDocument writes the session document when --save-json is set.
func (c *CLI) saveDocument(w io.Writer, runner *pipeline.Runner, path string) error {
	if path == "" {
		return nil
	}
	if err := pkgio.ExportJSON(runner.Document(true), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	printInfo(w, "Saved document")
	printFile(w, path)
	return nil
}

// outputDir resolves -o against the config file.
func (c *CLI) outputDir(flag string) (string, error) {
	dir := flag
	if dir == "" {
		cfg, err := c.loadConfig()
		if err != nil {
			return "", err
		}
		dir = cfg.Export.Dir
	}
	if err := errors.ValidateOutputDir(dir); err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	return dir, nil
}

func importDocument(path string) (pkgio.Document, error) {
	doc, err := pkgio.ImportJSON(path)
	if err != nil {
		return pkgio.Document{}, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}
