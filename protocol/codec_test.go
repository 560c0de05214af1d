package protocol_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sugawarayuuta/sonnet"

	"github.com/momentics/hioload-ringq/api"
	"github.com/momentics/hioload-ringq/protocol"
)

func TestDecoderReadsRecords(t *testing.T) {
	in := "5 0 0 0\n\n  3 10 20 3  \n-7 0 1 2"
	d := protocol.NewDecoder(strings.NewReader(in))

	want := []api.Record{
		{Value: 5, Report: api.ReportNone, Line: 1},
		{Value: 3, ProducerDelay: 10 * time.Millisecond, ConsumerDelay: 20 * time.Millisecond, Report: api.ReportBoth, Line: 3},
		{Value: -7, ConsumerDelay: time.Millisecond, Report: api.ReportConsumer, Line: 4},
	}
	for i, w := range want {
		got, err := d.Next()
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if got != w {
			t.Errorf("record %d: got %+v want %+v", i, got, w)
		}
	}
	if _, err := d.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if _, err := d.Next(); err != io.EOF {
		t.Fatalf("EOF must be sticky, got %v", err)
	}
}

func TestDecoderMalformed(t *testing.T) {
	cases := map[string]string{
		"too few fields":  "1 2 3\n",
		"too many fields": "1 2 3 4 5\n",
		"not an integer":  "1 x 0 0\n",
		"negative delay":  "1 -5 0 0\n",
		"bad report code": "1 0 0 4\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			d := protocol.NewDecoder(strings.NewReader("9 0 0 0\n" + in))
			if _, err := d.Next(); err != nil {
				t.Fatalf("first record: %v", err)
			}
			_, err := d.Next()
			if !errors.Is(err, api.ErrMalformedRecord) {
				t.Fatalf("err=%v want ErrMalformedRecord", err)
			}
			var e *api.Error
			if !errors.As(err, &e) || e.Context["line"] != 2 {
				t.Errorf("expected line 2 in context, got %v", err)
			}
			if _, again := d.Next(); again != err {
				t.Errorf("error must be sticky, got %v", again)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestDecoderReadError(t *testing.T) {
	d := protocol.NewDecoder(failingReader{})
	_, err := d.Next()
	if err == nil || err == io.EOF || errors.Is(err, api.ErrMalformedRecord) {
		t.Fatalf("expected a read error, got %v", err)
	}
}

func TestTextEncoder(t *testing.T) {
	cases := []struct {
		in   api.Status
		want string
	}{
		{api.Status{Kind: api.StatusProduced, Value: 7, Line: 4}, "Producer: value 7 from input line 4\n"},
		{api.Status{Kind: api.StatusConsumed, Consumer: 1, Value: 7, Line: 4, Sum: 12}, "Consumer 1: 7 from input line 4; sum = 12\n"},
		{api.Status{Kind: api.StatusConsumerDone, Consumer: 0, Sum: -3}, "Consumer 0: final sum is -3\n"},
		{api.Status{Kind: api.StatusTotal, Sum: 8}, "Main: total sum is 8\n"},
	}
	enc := protocol.NewEncoder(protocol.FormatText)
	for _, c := range cases {
		got, err := enc.Encode(c.in)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != c.want {
			t.Errorf("got %q want %q", got, c.want)
		}
	}
	if _, err := enc.Encode(api.Status{}); err == nil {
		t.Error("expected error for zero status kind")
	}
}

func TestJSONEncoder(t *testing.T) {
	enc := protocol.NewEncoder(protocol.FormatJSON)
	b, err := enc.Encode(api.Status{Kind: api.StatusConsumed, Consumer: 1, Value: 7, Line: 4, Sum: 12})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(b), "\n") {
		t.Fatalf("missing newline: %q", b)
	}
	var got map[string]any
	if err := sonnet.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if got["event"] != "consumed" || got["consumer"] != float64(1) || got["value"] != float64(7) ||
		got["line"] != float64(4) || got["sum"] != float64(12) {
		t.Errorf("unexpected object %v", got)
	}

	b, err = enc.Encode(api.Status{Kind: api.StatusTotal, Sum: 0})
	if err != nil {
		t.Fatal(err)
	}
	got = nil
	if err := sonnet.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if _, ok := got["consumer"]; ok {
		t.Errorf("total must not carry a consumer: %v", got)
	}
	if got["sum"] != float64(0) {
		t.Errorf("zero sum must still be present: %v", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]protocol.Format{"": protocol.FormatText, "text": protocol.FormatText, "json": protocol.FormatJSON} {
		got, err := protocol.ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q)=(%q,%v)", in, got, err)
		}
	}
	if _, err := protocol.ParseFormat("xml"); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("err=%v want ErrInvalidArgument", err)
	}
}
