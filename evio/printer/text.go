package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/eviokit/evio"
)

// printBankText prints a structure and its children as an indented tree.
func (p *Printer) printBankText(b *evio.Bank, depth int) error {
	if p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth {
		return nil
	}

	indent := strings.Repeat(" ", depth*p.opts.IndentSize)

	fmt.Fprintf(p.writer, "%s[%s] tag=0x%X type=%s num=%d len=%d @0x%X",
		indent, b.Kind, b.Tag, b.Type, b.Num, b.Length, b.Offset)

	if b.IsContainer() {
		fmt.Fprintf(p.writer, " children=%d\n", len(b.Children))
		for _, c := range b.Children {
			if err := p.printBankText(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	fmt.Fprintf(p.writer, " bytes=%d count=%d\n", len(b.Data()), b.Count())
	if !p.opts.ShowPayload {
		return nil
	}
	return p.printPayloadText(b, indent+"  ")
}

// printPayloadText prints a leaf's content according to its data type.
func (p *Printer) printPayloadText(b *evio.Bank, indent string) error {
	if b.Type == evio.TypeCharStar8 {
		strs, err := b.Strings()
		if err != nil {
			return err
		}
		for _, s := range strs {
			fmt.Fprintf(p.writer, "%s%q\n", indent, s)
		}
		return nil
	}

	data, truncated := truncate(b.Data(), p.opts.MaxPayloadBytes)
	if len(data) == 0 {
		fmt.Fprintf(p.writer, "%s<empty>\n", indent)
		return nil
	}
	suffix := ""
	if truncated {
		suffix = fmt.Sprintf(" (truncated, %d total bytes)", len(b.Data()))
	}
	fmt.Fprintf(p.writer, "%s%X%s\n", indent, data, suffix)
	return nil
}

func (p *Printer) printTimeSliceText(ts *evio.RocTimeSliceBank) error {
	sib := ts.StreamInfo
	fmt.Fprintf(p.writer, "ROC 0x%X status=0x%02X frame=%d timestamp=%d payloads=%d\n",
		ts.RocID, ts.StreamStatus, sib.FrameNumber, sib.Timestamp, len(ts.Payloads))

	indent := strings.Repeat(" ", p.opts.IndentSize)
	for _, pb := range ts.Payloads {
		fmt.Fprintf(p.writer, "%sport=%d bytes=%d", indent, pb.Port, len(pb.Data()))
		if pb.HasInfo {
			fmt.Fprintf(p.writer, " module=%d lane=%d bond=%t",
				pb.Info.ModuleID, pb.Info.Lane, pb.Info.Bond)
		}
		fmt.Fprintln(p.writer)
		if p.opts.ShowPayload {
			if err := p.printPayloadText(pb.Bank, indent+"  "); err != nil {
				return err
			}
		}
	}
	return nil
}
