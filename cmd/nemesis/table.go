package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dargueta/nemesis"
	"github.com/gocarina/gocsv"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// codeTableRow is one entry of a code table as shown by the `table` command.
type codeTableRow struct {
	Nibble string `csv:"nibble"`
	Count  uint8  `csv:"count"`
	Code   string `csv:"code"`
	Length uint8  `csv:"length"`
}

func codeTableRows(codes nemesis.CodeTable) []*codeTableRow {
	entries := codes.Entries()
	rows := make([]*codeTableRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(
			rows,
			&codeTableRow{
				Nibble: fmt.Sprintf("%X", entry.Run.Nibble),
				Count:  entry.Run.Count,
				Code:   entry.Code.String(),
				Length: entry.Code.Length,
			},
		)
	}
	return rows
}

func showCodeTable(context *cli.Context) error {
	if context.NArg() != 1 {
		return cli.Exit("expected exactly one file", 1)
	}

	sourcePath := context.Args().First()
	sourceFile, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open file for reading: `%s`: %w", sourcePath, err)
	}
	defer sourceFile.Close()

	header, codes, err := nemesis.ReadCodeTable(bufio.NewReader(sourceFile))
	if err != nil {
		return fmt.Errorf("`%s`: %w", sourcePath, err)
	}
	rows := codeTableRows(codes)

	switch context.String("format") {
	case "csv":
		return gocsv.Marshal(rows, context.App.Writer)
	case "table":
		renderCodeTable(context.App.Writer, header, rows)
		return nil
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", context.String("format")), 1)
	}
}

func renderCodeTable(output io.Writer, header nemesis.Header, rows []*codeTableRow) {
	tw := table.NewWriter()
	tw.SetOutputMirror(output)
	tw.SetTitle(
		"%d tiles (%d bytes), xor=%t",
		header.Tiles,
		header.DecompressedSize(),
		header.Xor,
	)
	tw.AppendHeader(table.Row{"Nibble", "Count", "Code", "Length"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row.Nibble, row.Count, row.Code, row.Length})
	}
	tw.AppendFooter(table.Row{"", "", "Entries", len(rows)})
	tw.Render()
}
