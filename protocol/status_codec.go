// File: protocol/status_codec.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Status line encoders. TextEncoder reproduces the classic console format
// byte for byte; JSONEncoder emits one JSON object per line.

package protocol

import (
	"fmt"
	"strconv"

	"github.com/sugawarayuuta/sonnet"

	"github.com/momentics/hioload-ringq/api"
)

// Format names a status encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// StatusEncoder renders one status event as a single newline-terminated line.
type StatusEncoder interface {
	Encode(s api.Status) ([]byte, error)
}

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", api.NewError(api.ErrCodeInvalidArgument, fmt.Sprintf("unknown status format %q", name)).
			WithContext("format", name)
	}
}

// NewEncoder returns the encoder for f.
func NewEncoder(f Format) StatusEncoder {
	if f == FormatJSON {
		return JSONEncoder{}
	}
	return TextEncoder{}
}

// TextEncoder writes the human-readable console format.
type TextEncoder struct{}

// Encode implements StatusEncoder.
func (TextEncoder) Encode(s api.Status) ([]byte, error) {
	b := make([]byte, 0, 64)
	switch s.Kind {
	case api.StatusProduced:
		b = append(b, "Producer: value "...)
		b = strconv.AppendInt(b, int64(s.Value), 10)
		b = append(b, " from input line "...)
		b = strconv.AppendInt(b, int64(s.Line), 10)
	case api.StatusConsumed:
		b = appendConsumer(b, s.Consumer)
		b = strconv.AppendInt(b, int64(s.Value), 10)
		b = append(b, " from input line "...)
		b = strconv.AppendInt(b, int64(s.Line), 10)
		b = append(b, "; sum = "...)
		b = strconv.AppendInt(b, int64(s.Sum), 10)
	case api.StatusConsumerDone:
		b = appendConsumer(b, s.Consumer)
		b = append(b, "final sum is "...)
		b = strconv.AppendInt(b, int64(s.Sum), 10)
	case api.StatusTotal:
		b = append(b, "Main: total sum is "...)
		b = strconv.AppendInt(b, int64(s.Sum), 10)
	default:
		return nil, fmt.Errorf("encode status: unknown kind %d", int(s.Kind))
	}
	return append(b, '\n'), nil
}

func appendConsumer(b []byte, id int) []byte {
	b = append(b, "Consumer "...)
	b = strconv.AppendInt(b, int64(id), 10)
	return append(b, ": "...)
}

// statusJSON is the wire shape of a JSON status line.
type statusJSON struct {
	Event    string `json:"event"`
	Consumer *int   `json:"consumer,omitempty"`
	Value    *int   `json:"value,omitempty"`
	Line     *int   `json:"line,omitempty"`
	Sum      *int   `json:"sum,omitempty"`
}

// JSONEncoder writes status events as JSON lines.
type JSONEncoder struct{}

// Encode implements StatusEncoder.
func (JSONEncoder) Encode(s api.Status) ([]byte, error) {
	out := statusJSON{Event: s.Kind.String()}
	switch s.Kind {
	case api.StatusProduced:
		out.Value, out.Line = &s.Value, &s.Line
	case api.StatusConsumed:
		out.Consumer, out.Value, out.Line, out.Sum = &s.Consumer, &s.Value, &s.Line, &s.Sum
	case api.StatusConsumerDone:
		out.Consumer, out.Sum = &s.Consumer, &s.Sum
	case api.StatusTotal:
		out.Sum = &s.Sum
	default:
		return nil, fmt.Errorf("encode status: unknown kind %d", int(s.Kind))
	}
	b, err := sonnet.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode status: %w", err)
	}
	return append(b, '\n'), nil
}
