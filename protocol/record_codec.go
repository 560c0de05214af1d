// File: protocol/record_codec.go
// Package protocol implements the line codecs used at the pipeline edges.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Record input format: one record per line, four whitespace-separated
// integers "value producerDelayMs consumerDelayMs reportCode". Blank lines
// are skipped. Anything else is a malformed record and ends the run.

package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/momentics/hioload-ringq/api"
)

// RecordFields is the number of integers on a record line.
const RecordFields = 4

// Ensure compile-time interface compliance.
var _ api.RecordSource = (*Decoder)(nil)

// Decoder reads records from a line-oriented stream.
// It is not safe for concurrent use; the producer owns it.
type Decoder struct {
	sc   *bufio.Scanner
	line int
	err  error // sticky after the first failure or EOF
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{sc: bufio.NewScanner(r)}
}

// Next returns the next record, io.EOF at clean end of input, or an error
// matching api.ErrMalformedRecord for a bad line.
func (d *Decoder) Next() (api.Record, error) {
	if d.err != nil {
		return api.Record{}, d.err
	}
	for d.sc.Scan() {
		d.line++
		text := strings.TrimSpace(d.sc.Text())
		if text == "" {
			continue
		}
		rec, err := ParseRecord(text)
		if err != nil {
			d.err = err.WithContext("line", d.line)
			return api.Record{}, d.err
		}
		rec.Line = d.line
		return rec, nil
	}
	if err := d.sc.Err(); err != nil {
		d.err = fmt.Errorf("read input line %d: %w", d.line+1, err)
		return api.Record{}, d.err
	}
	d.err = io.EOF
	return api.Record{}, io.EOF
}

// ParseRecord decodes a single non-empty record line.
func ParseRecord(text string) (api.Record, *api.Error) {
	fields := strings.Fields(text)
	if len(fields) != RecordFields {
		return api.Record{}, malformed(fmt.Sprintf("expected %d fields, got %d", RecordFields, len(fields)))
	}
	var nums [RecordFields]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return api.Record{}, malformed(fmt.Sprintf("field %d: %q is not an integer", i+1, f))
		}
		nums[i] = n
	}
	if nums[1] < 0 || nums[2] < 0 {
		return api.Record{}, malformed("delays must be non-negative")
	}
	mode, err := api.ParseReportMode(nums[3])
	if err != nil {
		return api.Record{}, malformed(err.Error())
	}
	return api.Record{
		Value:         nums[0],
		ProducerDelay: time.Duration(nums[1]) * time.Millisecond,
		ConsumerDelay: time.Duration(nums[2]) * time.Millisecond,
		Report:        mode,
	}, nil
}

func malformed(reason string) *api.Error {
	return api.NewError(api.ErrCodeMalformedInput, "malformed input record: "+reason)
}
