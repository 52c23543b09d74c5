package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dgallion1/patterncat/internal/catalog"
	"github.com/dgallion1/patterncat/internal/parser"
	"github.com/dgallion1/patterncat/internal/render"
)

// cli carries the global flags shared by every subcommand.
type cli struct {
	outputFormat string
	chapterLevel int
	verbose      bool
	log          *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "patterncat",
		Short: "Browse design-pattern study notes as a structured catalog",
		Long: `patterncat loads markdown study notes into chapters, sections and
content blocks (prose, bullet lists, code snippets) and lets you list,
inspect, validate and export them.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.format(); err != nil {
				return err
			}
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			c.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.outputFormat, "output", "o", "yaml", "output format: yaml or json")
	root.PersistentFlags().IntVar(&c.chapterLevel, "chapter-level", 0, "heading level of chapters (0 = shallowest heading)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log loading details to stderr")

	root.AddCommand(
		c.chaptersCmd(),
		c.sectionsCmd(),
		c.blocksCmd(),
		c.checkCmd(),
		c.exportCmd(),
		versionCmd(),
	)
	return root
}

func (c *cli) format() (render.Format, error) {
	f, err := render.ParseFormat(c.outputFormat)
	if err != nil {
		return "", err
	}
	if f == render.FormatHTML {
		return "", fmt.Errorf("--output supports yaml or json; use export --format html for pages")
	}
	return f, nil
}

func (c *cli) load(path string) (*catalog.Document, error) {
	doc, err := parser.LoadFile(path, parser.Options{ChapterLevel: c.chapterLevel})
	if err != nil {
		return nil, err
	}
	c.log.Debug("catalog loaded",
		"path", path,
		"digest", doc.Digest[:12],
		"chapters", len(doc.Chapters),
	)
	return doc, nil
}

func (c *cli) output(cmd *cobra.Command, data any) error {
	f, err := c.format()
	if err != nil {
		return err
	}
	return render.OutputTo(cmd.OutOrStdout(), f, data)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "patterncat %s\n", version)
		},
	}
}
