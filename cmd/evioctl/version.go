package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/joshuapare/eviokit/internal/format"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the tool version and the EVIO format it reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion()
		},
	})
}

type versionInfo struct {
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	Go            string `json:"go"`
	FormatVersion int    `json:"format_version"`
	Magic         string `json:"magic"`
	Compression   string `json:"compression"`
}

func runVersion() error {
	info := versionInfo{
		Version:       version,
		Commit:        commit,
		Go:            runtime.Version(),
		FormatVersion: format.Version,
		Magic:         fmt.Sprintf("0x%08X", format.MagicNumber),
		Compression:   format.CompressionName(format.CompressionNone),
	}
	if jsonOut {
		return printJSON(info)
	}
	w := stdout()
	fmt.Fprintf(w, "evioctl %s (%s, %s)\n", info.Version, info.Commit, info.Go)
	fmt.Fprintf(w, "  format: EVIO v%d, magic %s, compression %s\n",
		info.FormatVersion, info.Magic, info.Compression)
	return nil
}
