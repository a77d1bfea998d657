package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/optable/derange/pkg/position"
	"github.com/spf13/cobra"
)

// newShowCmd represents the show command
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Shuffle the board once and print every item's move",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig(cmd)
			logger := getLogger(cfg)
			exitOnErr(logger, err, "invalid configuration")

			s, err := newSession(cfg, logger, nil)
			exitOnErr(logger, err, "failed to create session")

			res, err := s.SetSize(cfg.N())
			exitOnErr(logger, err, "failed to deal the board")
			layout, err := s.Layout()
			exitOnErr(logger, err, "failed to read the layout")

			trial, err := s.Shuffle()
			exitOnErr(logger, err, "failed to shuffle")

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "before")
			printBoard(w, res.Initial, layout)
			fmt.Fprintln(w, "after")
			printBoard(w, trial.Permutation, layout)

			if trial.NonDerangement {
				fmt.Fprintln(w, "This is not a Derangement")
			} else {
				fmt.Fprintln(w, "This is a Derangement")
			}
			for _, tr := range trial.Transitions {
				var mark string
				if tr.To == tr.Item {
					mark = " home"
				}
				fmt.Fprintf(w, "%3d: (%d,%d) -> (%d,%d)%s\n", tr.Item+1,
					tr.FromCoord.Row, tr.FromCoord.Col, tr.ToCoord.Row, tr.ToCoord.Col, mark)
			}
		},
	}
}

// printBoard draws items 1-based at their layout coordinates
func printBoard(w io.Writer, p []int, layout position.LayoutFunc) {
	cells := make(map[position.Coordinate]int, len(p))
	width := len(strconv.Itoa(len(p)))
	var rows, cols int
	for slot, item := range p {
		c := layout(slot)
		cells[c] = item + 1
		rows = max(rows, c.Row+1)
		cols = max(cols, c.Col+1)
	}

	for r := 0; r < rows; r++ {
		var line []string
		for c := 0; c < cols; c++ {
			if v, ok := cells[position.Coordinate{Row: r, Col: c}]; ok {
				line = append(line, fmt.Sprintf("%*d", width, v))
			} else {
				line = append(line, strings.Repeat(" ", width))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(line, " "), " "))
	}
}
