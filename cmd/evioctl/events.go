package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/joshuapare/eviokit/evio"
)

var eventsRecord int

func init() {
	cmd := newEventsCmd()
	cmd.Flags().IntVarP(&eventsRecord, "record", "r", -1, "List only this record (-1 = all)")
	rootCmd.AddCommand(cmd)
}

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events <file>",
		Short: "List events and their top-level bank headers",
		Long: `The events command locates every event through the record index
arrays and decodes the top-level bank header of each. Events that are ROC
time-slice banks also show their frame number and timestamp.

Example:
  evioctl events run_001.evio
  evioctl events run_001.evio --record 3 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(args)
		},
	}
	return cmd
}

type eventInfo struct {
	Record    int     `json:"record"`
	Event     int     `json:"event"`
	Offset    int     `json:"offset"`
	Bytes     int     `json:"bytes"`
	Tag       uint16  `json:"tag"`
	Type      string  `json:"type"`
	Num       uint8   `json:"num"`
	Children  int     `json:"children"`
	Frame     *uint32 `json:"frame,omitempty"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// recordRange returns the records selected by a --record flag value.
func recordRange(f *evio.File, rec int) ([]int, error) {
	if rec < 0 {
		out := make([]int, f.RecordCount())
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	if rec >= f.RecordCount() {
		return nil, fmt.Errorf("record %d out of range (file has %d records)", rec, f.RecordCount())
	}
	return []int{rec}, nil
}

func collectEvents(f *evio.File, rec int) ([]eventInfo, error) {
	var out []eventInfo
	offs, err := f.EventOffsets(rec)
	if err != nil {
		if evio.IsKind(err, evio.KindUnsupported) {
			printWarn("record %d: %v\n", rec, err)
			return nil, nil
		}
		return nil, err
	}
	for evt, off := range offs {
		info := eventInfo{Record: rec, Event: evt, Offset: off}
		b, err := f.EventBank(rec, evt)
		if err != nil {
			info.Error = err.Error()
			out = append(out, info)
			continue
		}
		info.Bytes = b.TotalBytes()
		info.Tag, info.Type, info.Num = b.Tag, b.Type.String(), b.Num
		info.Children = len(b.Children)

		ts, ok, err := f.Event(rec, evt)
		if err != nil {
			return nil, err
		}
		if ok {
			frame, stamp := ts.StreamInfo.FrameNumber, ts.StreamInfo.Timestamp
			info.Frame, info.Timestamp = &frame, &stamp
		}
		out = append(out, info)
	}
	return out, nil
}

func runEvents(args []string) error {
	f, err := openFile(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	recs, err := recordRange(f, eventsRecord)
	if err != nil {
		return err
	}
	var events []eventInfo
	for _, rec := range recs {
		evs, err := collectEvents(f, rec)
		if err != nil {
			return err
		}
		events = append(events, evs...)
	}

	if jsonOut {
		if events == nil {
			events = []eventInfo{}
		}
		return printJSON(events)
	}
	if quiet {
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Record", "Event", "Offset", "Bytes", "Tag", "Type", "Num", "Children", "Frame", "Timestamp"})
	for _, e := range events {
		if e.Error != "" {
			t.AppendRow(table.Row{e.Record, e.Event, fmt.Sprintf("0x%X", e.Offset), color.RedString(e.Error)})
			continue
		}
		frame, stamp := "-", "-"
		if e.Frame != nil {
			frame, stamp = fmt.Sprint(*e.Frame), fmt.Sprint(*e.Timestamp)
		}
		t.AppendRow(table.Row{
			e.Record, e.Event, fmt.Sprintf("0x%X", e.Offset), e.Bytes,
			fmt.Sprintf("0x%X", e.Tag), e.Type, e.Num, e.Children, frame, stamp,
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d events", len(events))})
	t.Render()
	return nil
}
