package parser

import (
	"errors"
	"fmt"

	"github.com/courier-tools/courier-traffic/pkg/window"
)

type Protocol int

const (
	IMAP Protocol = iota
	POP3
)

func (p Protocol) String() string {
	if p == POP3 {
		return "pop3"
	}
	return "imap"
}

// Record is one transfer event attributed to a mailbox.
type Record struct {
	Domain   string
	User     string
	Received uint64
	Sent     uint64
	Protocol Protocol
}

type LogItem struct {
	Day window.Day
	Record
}

type Parser interface {
	Parse(line []byte) (LogItem, error)
}

type NewFunc func() Parser

type ParserMeta struct {
	Name        string
	Description string
	Hidden      bool
	F           NewFunc
}

var (
	ErrMissingMarker  = errors.New("missing marker")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidMailbox = errors.New("invalid mailbox")
	ErrInvalidSize    = errors.New("invalid size")

	registry = make(map[string]ParserMeta)
)

func RegisterParser(meta ParserMeta) {
	registry[meta.Name] = meta
}

func GetParser(name string) (Parser, error) {
	meta, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown parser %q", name)
	}
	return meta.F(), nil
}

func All() []ParserMeta {
	parsers := make([]ParserMeta, 0, len(registry))
	for _, meta := range registry {
		parsers = append(parsers, meta)
	}
	return parsers
}
