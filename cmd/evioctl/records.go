package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/joshuapare/eviokit/evio"
	"github.com/joshuapare/eviokit/internal/format"
)

func init() {
	rootCmd.AddCommand(newRecordsCmd())
}

func newRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records <file>",
		Short: "List record headers",
		Long: `The records command lists every record found by the scan, with its
offset, length, event count and header flags.

Example:
  evioctl records run_001.evio
  evioctl records run_001.evio --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(args)
		},
	}
	return cmd
}

type recordInfo struct {
	Index       int    `json:"index"`
	Offset      int    `json:"offset"`
	LengthWords uint32 `json:"length_words"`
	Number      uint32 `json:"number"`
	Events      uint32 `json:"events"`
	IndexBytes  uint32 `json:"index_bytes"`
	UserBytes   uint32 `json:"user_header_bytes"`
	EventType   string `json:"event_type"`
	HeaderType  string `json:"header_type"`
	Compression uint32 `json:"compression"`
	Last        bool   `json:"last"`
}

func newRecordInfo(i int, rh evio.RecordHeader) recordInfo {
	return recordInfo{
		Index:       i,
		Offset:      rh.Offset,
		LengthWords: rh.RecordLength,
		Number:      rh.RecordNumber,
		Events:      rh.EventCount,
		IndexBytes:  rh.IndexArrayLength,
		UserBytes:   rh.UserHeaderLength,
		EventType:   rh.EventType().String(),
		HeaderType:  rh.HeaderType().String(),
		Compression: rh.CompressionType(),
		Last:        rh.IsLastRecord(),
	}
}

func runRecords(args []string) error {
	f, err := openFile(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	infos := make([]recordInfo, 0, f.RecordCount())
	for i := range f.RecordCount() {
		rh, err := f.RecordHeader(i)
		if err != nil {
			return err
		}
		infos = append(infos, newRecordInfo(i, rh))
	}

	if jsonOut {
		return printJSON(infos)
	}
	if quiet {
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Offset", "Words", "Number", "Events", "Index", "User", "Event Type", "Header", "Last"})
	for _, r := range infos {
		header := r.HeaderType
		if r.Compression != 0 {
			header = color.YellowString("%s (%s)", header, format.CompressionName(r.Compression))
		}
		t.AppendRow(table.Row{
			r.Index, fmt.Sprintf("0x%X", r.Offset), r.LengthWords, r.Number, r.Events,
			r.IndexBytes, r.UserBytes, r.EventType, header, r.Last,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 10, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	})
	t.Render()
	return nil
}
