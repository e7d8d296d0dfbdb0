package printer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/joshuapare/eviokit/evio"
)

// jsonBank represents one structure in JSON format.
type jsonBank struct {
	Kind      string     `json:"kind"`
	Tag       uint16     `json:"tag"`
	Type      string     `json:"type"`
	Num       uint8      `json:"num"`
	Length    uint32     `json:"length"`
	Offset    int        `json:"offset"`
	Bytes     int        `json:"bytes,omitempty"`
	Count     int        `json:"count,omitempty"`
	Payload   string     `json:"payload,omitempty"`
	Truncated bool       `json:"truncated,omitempty"`
	Strings   []string   `json:"strings,omitempty"`
	Children  []jsonBank `json:"children,omitempty"`
}

// jsonPayload represents one payload bank of a time slice.
type jsonPayload struct {
	Port     uint16 `json:"port"`
	Bytes    int    `json:"bytes"`
	ModuleID *uint8 `json:"module,omitempty"`
	Lane     *uint8 `json:"lane,omitempty"`
	Bond     *bool  `json:"bond,omitempty"`
	Payload  string `json:"payload,omitempty"`
}

// jsonTimeSlice represents a ROC time-slice bank in JSON format.
type jsonTimeSlice struct {
	RocID     uint16        `json:"roc_id"`
	Status    uint8         `json:"status"`
	Frame     uint32        `json:"frame"`
	Timestamp uint64        `json:"timestamp"`
	Payloads  []jsonPayload `json:"payloads"`
}

func (p *Printer) printBankJSON(b *evio.Bank) error {
	tree, err := p.buildJSONTree(b, 0)
	if err != nil {
		return err
	}
	return p.writeJSON(tree)
}

// buildJSONTree builds a JSON tree structure recursively.
func (p *Printer) buildJSONTree(b *evio.Bank, depth int) (jsonBank, error) {
	node := jsonBank{
		Kind:   b.Kind.String(),
		Tag:    b.Tag,
		Type:   b.Type.String(),
		Num:    b.Num,
		Length: b.Length,
		Offset: b.Offset,
	}

	if !b.IsContainer() {
		node.Bytes = len(b.Data())
		node.Count = b.Count()
		if p.opts.ShowPayload {
			if b.Type == evio.TypeCharStar8 {
				strs, err := b.Strings()
				if err != nil {
					return jsonBank{}, err
				}
				node.Strings = strs
			} else {
				data, truncated := truncate(b.Data(), p.opts.MaxPayloadBytes)
				node.Payload = hex.EncodeToString(data)
				node.Truncated = truncated
			}
		}
		return node, nil
	}

	// Children below the depth limit are omitted.
	if p.opts.MaxDepth > 0 && depth+1 >= p.opts.MaxDepth {
		return node, nil
	}
	node.Children = make([]jsonBank, 0, len(b.Children))
	for _, c := range b.Children {
		child, err := p.buildJSONTree(c, depth+1)
		if err != nil {
			return jsonBank{}, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func (p *Printer) printTimeSliceJSON(ts *evio.RocTimeSliceBank) error {
	out := jsonTimeSlice{
		RocID:     ts.RocID,
		Status:    ts.StreamStatus,
		Frame:     ts.StreamInfo.FrameNumber,
		Timestamp: ts.StreamInfo.Timestamp,
		Payloads:  make([]jsonPayload, 0, len(ts.Payloads)),
	}
	for _, pb := range ts.Payloads {
		jp := jsonPayload{Port: pb.Port, Bytes: len(pb.Data())}
		if pb.HasInfo {
			info := pb.Info
			jp.ModuleID, jp.Lane, jp.Bond = &info.ModuleID, &info.Lane, &info.Bond
		}
		if p.opts.ShowPayload {
			data, _ := truncate(pb.Data(), p.opts.MaxPayloadBytes)
			jp.Payload = hex.EncodeToString(data)
		}
		out.Payloads = append(out.Payloads, jp)
	}
	return p.writeJSON(out)
}

func (p *Printer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}
