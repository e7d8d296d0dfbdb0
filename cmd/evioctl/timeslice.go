package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/eviokit/evio/printer"
)

var (
	timesliceRecord int
	timesliceNoData bool
)

func init() {
	cmd := newTimesliceCmd()
	cmd.Flags().IntVarP(&timesliceRecord, "record", "r", -1, "Decode only this record (-1 = all)")
	cmd.Flags().BoolVar(&timesliceNoData, "no-payload", false, "Omit payload data")
	rootCmd.AddCommand(cmd)
}

func newTimesliceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeslice <file>",
		Short: "Decode ROC time-slice banks",
		Long: `The timeslice command decodes every event that has the ROC time-slice
layout (a stream info bank followed by payload banks) and prints its frame
number, timestamp and per-port payloads. Other events are counted and
skipped.

Example:
  evioctl timeslice stream.evio
  evioctl timeslice stream.evio --record 0 --no-payload --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeslice(args)
		},
	}
	return cmd
}

func runTimeslice(args []string) error {
	f, err := openFile(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	recs, err := recordRange(f, timesliceRecord)
	if err != nil {
		return err
	}

	opts := printerOptions()
	opts.ShowPayload = !timesliceNoData
	p := printer.New(stdout(), opts)

	decoded, skipped := 0, 0
	for _, rec := range recs {
		offs, err := f.EventOffsets(rec)
		if err != nil {
			printWarn("record %d: %v\n", rec, err)
			continue
		}
		for evt := range offs {
			ts, ok, err := f.Event(rec, evt)
			if err != nil {
				return err
			}
			if !ok {
				skipped++
				continue
			}
			decoded++
			if err := p.PrintTimeSlice(ts); err != nil {
				return err
			}
		}
	}

	if !jsonOut {
		printInfo("\n%d time slice(s), %d other event(s)\n", decoded, skipped)
	}
	return nil
}
