// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations: input records, queue messages,
// the tagged queue item and status events.

package api

import (
	"fmt"
	"time"
)

// ReportMode selects which side of the queue emits a status line for a record.
type ReportMode int

const (
	ReportNone ReportMode = iota
	ReportProducer
	ReportConsumer
	ReportBoth
)

// ParseReportMode converts the numeric input code (0..3) into a ReportMode.
func ParseReportMode(code int) (ReportMode, error) {
	if code < int(ReportNone) || code > int(ReportBoth) {
		return ReportNone, fmt.Errorf("report code %d out of range 0..3", code)
	}
	return ReportMode(code), nil
}

// ProducerReports reports whether the producer prints a status line.
func (m ReportMode) ProducerReports() bool {
	return m == ReportProducer || m == ReportBoth
}

// ConsumerReports reports whether the consumer prints a status line.
func (m ReportMode) ConsumerReports() bool {
	return m == ReportConsumer || m == ReportBoth
}

func (m ReportMode) String() string {
	switch m {
	case ReportNone:
		return "none"
	case ReportProducer:
		return "producer"
	case ReportConsumer:
		return "consumer"
	case ReportBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Record is one decoded input tuple.
type Record struct {
	Value         int
	ProducerDelay time.Duration
	ConsumerDelay time.Duration
	Report        ReportMode
	Line          int // physical input line, diagnostics only
}

// Message is the unit of work carried through the ring. It is copied by value
// on Put and Take; nothing inside it is shared between goroutines.
type Message struct {
	Value         int
	ConsumerDelay time.Duration
	Sequence      int // 1-based record ordinal
	Report        ReportMode
}

// Item is the ring element: either a data message or a shutdown sentinel.
// The zero Item is an empty data message.
type Item struct {
	msg      Message
	shutdown bool
}

// Data wraps a message as a queue item.
func Data(m Message) Item {
	return Item{msg: m}
}

// Shutdown returns a sentinel item telling one consumer to stop.
func Shutdown() Item {
	return Item{shutdown: true}
}

// IsShutdown reports whether the item is a shutdown sentinel.
func (it Item) IsShutdown() bool { return it.shutdown }

// Message returns the carried message. ok is false for shutdown sentinels,
// which have no payload.
func (it Item) Message() (m Message, ok bool) {
	if it.shutdown {
		return Message{}, false
	}
	return it.msg, true
}

// StatusKind enumerates status events emitted by the pipeline.
type StatusKind int

const (
	StatusProduced StatusKind = iota + 1
	StatusConsumed
	StatusConsumerDone
	StatusTotal
)

func (k StatusKind) String() string {
	switch k {
	case StatusProduced:
		return "produced"
	case StatusConsumed:
		return "consumed"
	case StatusConsumerDone:
		return "consumer_done"
	case StatusTotal:
		return "total"
	default:
		return "unknown"
	}
}

// Status is a single status event. Fields not meaningful for Kind are zero:
// Produced uses Value/Line, Consumed uses Consumer/Value/Line/Sum,
// ConsumerDone uses Consumer/Sum and Total uses Sum.
type Status struct {
	Kind     StatusKind
	Consumer int
	Value    int
	Line     int
	Sum      int
}
