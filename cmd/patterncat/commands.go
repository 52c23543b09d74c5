package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/patterncat/internal/catalog"
	"github.com/dgallion1/patterncat/internal/render"
)

type chapterRow struct {
	Index    int    `json:"index" yaml:"index"`
	Title    string `json:"title" yaml:"title"`
	Slug     string `json:"slug" yaml:"slug"`
	Line     int    `json:"line" yaml:"line"`
	Sections int    `json:"sections" yaml:"sections"`
}

type sectionRow struct {
	Index    int    `json:"index" yaml:"index"`
	Title    string `json:"title" yaml:"title"`
	Slug     string `json:"slug" yaml:"slug"`
	Line     int    `json:"line" yaml:"line"`
	Implicit bool   `json:"implicit,omitempty" yaml:"implicit,omitempty"`
	Blocks   int    `json:"blocks" yaml:"blocks"`
}

func (c *cli) chaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chapters FILE",
		Short: "List chapters in document order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.load(args[0])
			if err != nil {
				return err
			}
			rows := make([]chapterRow, 0, len(doc.Chapters))
			for i, ch := range doc.ListChapters() {
				rows = append(rows, chapterRow{
					Index:    i,
					Title:    render.PlainText(ch.Title),
					Slug:     ch.Slug(),
					Line:     ch.Line,
					Sections: len(ch.Sections),
				})
			}
			return c.output(cmd, rows)
		},
	}
}

func (c *cli) sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections FILE CHAPTER",
		Short: "List the sections of a chapter (by index or slug)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.load(args[0])
			if err != nil {
				return err
			}
			ch, err := doc.FindChapter(args[1])
			if err != nil {
				return err
			}
			rows := make([]sectionRow, 0, len(ch.Sections))
			for i, s := range ch.Sections {
				rows = append(rows, sectionRow{
					Index:    i,
					Title:    render.PlainText(s.Title),
					Slug:     s.Slug(),
					Line:     s.Line,
					Implicit: s.Implicit,
					Blocks:   len(s.Blocks),
				})
			}
			return c.output(cmd, rows)
		},
	}
}

func (c *cli) blocksCmd() *cobra.Command {
	var withRaw bool
	cmd := &cobra.Command{
		Use:   "blocks FILE CHAPTER SECTION",
		Short: "Print the content blocks of a section",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.load(args[0])
			if err != nil {
				return err
			}
			ch, err := doc.FindChapter(args[1])
			if err != nil {
				return err
			}
			sec, err := ch.FindSection(args[2])
			if err != nil {
				return err
			}
			blocks := make([]catalog.Block, len(sec.Blocks))
			copy(blocks, sec.Blocks)
			if !withRaw {
				for i := range blocks {
					blocks[i].Raw = ""
				}
			}
			return c.output(cmd, blocks)
		},
	}
	cmd.Flags().BoolVar(&withRaw, "raw", false, "include each block's raw source text")
	return cmd
}

func (c *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a catalog file and print its statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.load(args[0])
			if err != nil {
				return err
			}
			return c.output(cmd, map[string]any{
				"source": doc.Source,
				"digest": doc.Digest,
				"stats":  doc.Stats(),
			})
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var format, outPath string
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export the whole catalog as json, yaml or html",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			doc, err := c.load(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer file.Close()
				w = file
			}
			if err := render.Export(w, doc, f); err != nil {
				return fmt.Errorf("export %s: %w", f, err)
			}
			c.log.Debug("exported catalog", "format", f, "dest", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "export format: json, yaml or html")
	cmd.Flags().StringVar(&outPath, "out", "", "write to this file instead of stdout")
	return cmd
}
