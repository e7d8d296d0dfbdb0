package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/eviokit/evio"
)

const hexdumpLineBytes = 16

var (
	hexOffset int
	hexLength int
	hexRecord int
	hexWords  bool
)

func init() {
	cmd := newHexdumpCmd()
	cmd.Flags().IntVarP(&hexOffset, "offset", "o", 0, "Absolute byte offset to start at")
	cmd.Flags().IntVarP(&hexLength, "length", "n", 64, "Number of bytes to show (0 = to end of range)")
	cmd.Flags().IntVarP(&hexRecord, "record", "r", -1, "Dump this record instead of --offset")
	cmd.Flags().BoolVarP(&hexWords, "words", "w", false, "Show 32-bit words in file byte order")
	rootCmd.AddCommand(cmd)
}

func newHexdumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hexdump <file>",
		Short: "Show raw bytes of a file region or record",
		Long: `The hexdump command prints raw bytes with absolute offsets. With
--record it starts at that record's header; with --words the bytes are shown
as 32-bit words decoded in the file's byte order.

Example:
  evioctl hexdump run_001.evio --length 56
  evioctl hexdump run_001.evio --record 2 --words`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHexdump(args)
		},
	}
	return cmd
}

func runHexdump(args []string) error {
	f, err := openFile(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	off, end := hexOffset, f.Size()
	if hexRecord >= 0 {
		rh, err := f.RecordHeader(hexRecord)
		if err != nil {
			return err
		}
		off, end = rh.Offset, rh.End()
	}
	if off < 0 || off > f.Size() {
		return fmt.Errorf("offset 0x%X outside file (size 0x%X)", off, f.Size())
	}
	n := end - off
	if hexLength > 0 {
		n = min(n, hexLength)
	}

	data, err := f.Bytes(off, n)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"offset": off,
			"length": n,
			"bytes":  hex.EncodeToString(data),
		})
	}
	w := stdout()
	if hexWords {
		writeWords(w, data, off, f.Order())
		return nil
	}
	writeHex(w, data, off)
	return nil
}

// writeHex prints data 16 bytes per line, grouped in words, with an ASCII
// column. Offsets are absolute.
func writeHex(w io.Writer, data []byte, base int) {
	for i := 0; i < len(data); i += hexdumpLineBytes {
		line := data[i:min(i+hexdumpLineBytes, len(data))]
		var sb strings.Builder
		for j := 0; j < hexdumpLineBytes; j++ {
			if j > 0 && j%4 == 0 {
				sb.WriteByte(' ')
			}
			if j < len(line) {
				fmt.Fprintf(&sb, "%02x", line[j])
			} else {
				sb.WriteString("  ")
			}
		}
		fmt.Fprintf(w, "%08X  %s  |%s|\n", base+i, sb.String(), printable(line))
	}
}

// writeWords prints data as 32-bit words, four per line. A trailing partial
// word is ignored.
func writeWords(w io.Writer, data []byte, base int, order evio.Order) {
	bo := order.ByteOrder()
	for i := 0; i+4 <= len(data); i += hexdumpLineBytes {
		fmt.Fprintf(w, "%08X ", base+i)
		for j := i; j+4 <= len(data) && j < i+hexdumpLineBytes; j += 4 {
			fmt.Fprintf(w, " 0x%08X", bo.Uint32(data[j:]))
		}
		fmt.Fprintln(w)
	}
}

func printable(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 0x20 && c < 0x7F {
			out[i] = c
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
