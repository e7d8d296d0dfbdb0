package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/eviokit/evio"
	"github.com/joshuapare/eviokit/evio/printer"
)

var (
	dumpRecord    int
	dumpEvent     int
	dumpNoPayload bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVarP(&dumpRecord, "record", "r", -1, "Dump only this record (-1 = all)")
	cmd.Flags().IntVarP(&dumpEvent, "event", "e", -1, "Dump only this event of the record (-1 = all)")
	cmd.Flags().BoolVar(&dumpNoPayload, "no-payload", false, "Omit leaf payloads")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print decoded bank trees",
		Long: `The dump command decodes events as generic bank trees and prints
every bank, segment and tagsegment with its header fields and payload.
Records without an index array show their first bank only.

Example:
  evioctl dump run_001.evio
  evioctl dump run_001.evio --record 0 --event 2 --depth 3
  evioctl dump run_001.evio --json --payload-bytes 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func printerOptions() printer.Options {
	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	opts.MaxDepth = maxDepth
	opts.MaxPayloadBytes = payloadBytes
	opts.ShowPayload = !dumpNoPayload
	return opts
}

func runDump(args []string) error {
	f, err := openFile(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if dumpEvent >= 0 && dumpRecord < 0 {
		return fmt.Errorf("--event requires --record")
	}
	recs, err := recordRange(f, dumpRecord)
	if err != nil {
		return err
	}

	p := printer.New(stdout(), printerOptions())
	for _, rec := range recs {
		if err := dumpRecordBanks(f, p, rec); err != nil {
			return err
		}
	}
	return nil
}

func dumpRecordBanks(f *evio.File, p *printer.Printer, rec int) error {
	offs, err := f.EventOffsets(rec)
	if err != nil {
		if evio.IsKind(err, evio.KindUnsupported) {
			printWarn("record %d: %v\n", rec, err)
			return nil
		}
		return err
	}

	if len(offs) == 0 {
		n, _ := f.EventCount(rec)
		if n == 0 {
			return nil
		}
		printVerbose("record %d has no index array, showing first bank\n", rec)
		b, err := f.ParseFirstBankHeader(rec)
		if err != nil {
			return err
		}
		printInfo("# record %d first bank\n", rec)
		return p.PrintBank(b)
	}

	evts := make([]int, 0, len(offs))
	if dumpEvent >= 0 {
		evts = append(evts, dumpEvent)
	} else {
		for i := range offs {
			evts = append(evts, i)
		}
	}
	for _, evt := range evts {
		b, err := f.EventBank(rec, evt)
		if err != nil {
			return err
		}
		if !jsonOut {
			printInfo("# record %d event %d\n", rec, evt)
		}
		if err := p.PrintBank(b); err != nil {
			return err
		}
	}
	return nil
}
