package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Validate a file header and report basic metadata",
		Long: `The info command validates an EVIO v6 file, scans its records and
displays the file header fields along with the number of records found.

Example:
  evioctl info run_001.evio
  evioctl info run_001.evio --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type fileInfo struct {
	Path             string `json:"path"`
	Size             int    `json:"size"`
	ByteOrder        string `json:"byte_order"`
	Version          uint32 `json:"version"`
	FileNumber       uint32 `json:"file_number"`
	DeclaredRecords  uint32 `json:"declared_records"`
	Records          int    `json:"records"`
	Events           int    `json:"events"`
	IndexArrayBytes  uint32 `json:"index_array_bytes"`
	UserHeaderBytes  uint32 `json:"user_header_bytes"`
	Dictionary       bool   `json:"dictionary"`
	FirstEvent       bool   `json:"first_event"`
	TrailerWithIndex bool   `json:"trailer_with_index"`
	TrailerPosition  uint64 `json:"trailer_position,omitempty"`
	Compressed       int    `json:"compressed_records,omitempty"`
}

func runInfo(args []string) error {
	path := args[0]

	f, err := openFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h := f.Header()
	info := fileInfo{
		Path:             path,
		Size:             f.Size(),
		ByteOrder:        f.Order().String(),
		Version:          h.Version(),
		FileNumber:       h.FileNumber,
		DeclaredRecords:  h.RecordCount,
		Records:          f.RecordCount(),
		IndexArrayBytes:  h.IndexArrayLength,
		UserHeaderBytes:  h.UserHeaderLength,
		Dictionary:       h.HasDictionary(),
		FirstEvent:       h.HasFirstEvent(),
		TrailerWithIndex: h.HasTrailerWithIndex(),
		TrailerPosition:  h.TrailerPosition,
	}
	for i := range f.RecordCount() {
		rh, err := f.RecordHeader(i)
		if err != nil {
			return err
		}
		if rh.IsCompressed() {
			info.Compressed++
			continue
		}
		offs, err := f.EventOffsets(i)
		if err != nil {
			return err
		}
		info.Events += len(offs)
	}

	// Output as JSON if requested
	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nFile Information:\n")
	printInfo("  File: %s\n", path)
	printInfo("  Size: %s\n", formatSize(info.Size))
	printInfo("  Byte order: %s endian\n", info.ByteOrder)
	printInfo("  Version: %d\n", info.Version)
	printInfo("  File number: %d\n", info.FileNumber)
	printInfo("  Records: %d (header declares %d)\n", info.Records, info.DeclaredRecords)
	printInfo("  Indexed events: %d\n", info.Events)
	printInfo("  Index array: %d bytes\n", info.IndexArrayBytes)
	printInfo("  User header: %d bytes\n", info.UserHeaderBytes)
	printInfo("  Dictionary: %t\n", info.Dictionary)
	printInfo("  First event: %t\n", info.FirstEvent)
	printInfo("  Trailer with index: %t\n", info.TrailerWithIndex)
	if info.Compressed > 0 {
		printWarn("%d compressed record(s) cannot be decoded\n", info.Compressed)
	}
	return nil
}
