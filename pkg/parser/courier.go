package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/courier-tools/courier-traffic/pkg/window"
)

// Courier logs one line per finished session, for example:
//
//	Jan  5 10:00:00 mail courierpop3login: LOGOUT, user=bob@example.org, ip=[::1], port=[4242], top=0, retr=0, rcvd=200, sent=0, time=1
const (
	suiteKey    = "courier"
	userKey     = "user"
	receivedKey = "rcvd"
	sentKey     = "sent"
	pop3Key     = "pop3"

	// index of the syslog tag (e.g. "courierpop3login:") among the fields
	protocolField = 4

	// "user=" and the trailing ","
	keyPrefixLen = 5
	delimLen     = 1
)

// DefaultMarkers must all appear in a line for it to be considered.
var DefaultMarkers = []string{suiteKey, userKey, receivedKey, sentKey}

func init() {
	newFunc := func() Parser {
		return NewCourierParser()
	}
	RegisterParser(ParserMeta{
		Name:        "courier",
		Description: "Courier IMAP/POP3 LOGOUT lines in syslog format",
		F:           newFunc,
	})
	RegisterParser(ParserMeta{
		Name:        "courier-imap",
		Description: "An alias for `courier`",
		Hidden:      true,
		F:           newFunc,
	})
}

type CourierParser struct {
	Markers []string
}

func NewCourierParser() CourierParser {
	return CourierParser{Markers: DefaultMarkers}
}

func (p CourierParser) Parse(line []byte) (LogItem, error) {
	if !containsAll(line, p.Markers) {
		return LogItem{}, ErrMissingMarker
	}
	fields := strings.Fields(string(line))
	day, err := parseDate(fields)
	if err != nil {
		return LogItem{}, err
	}
	record, err := parseRecord(fields)
	if err != nil {
		return LogItem{}, err
	}
	return LogItem{Day: day, Record: record}, nil
}

// Extract returns the record carried by line if the line has every marker,
// contains domainFilter (when non-empty) anywhere, and is dated target.
// Any other line yields false.
func Extract(line []byte, target window.Day, markers []string, domainFilter string) (Record, bool) {
	if !containsAll(line, markers) {
		return Record{}, false
	}
	if domainFilter != "" && !bytes.Contains(line, []byte(domainFilter)) {
		return Record{}, false
	}
	fields := strings.Fields(string(line))
	day, err := parseDate(fields)
	if err != nil || day != target {
		return Record{}, false
	}
	record, err := parseRecord(fields)
	if err != nil {
		return Record{}, false
	}
	return record, true
}

func containsAll(line []byte, markers []string) bool {
	for _, m := range markers {
		if !bytes.Contains(line, []byte(m)) {
			return false
		}
	}
	return true
}

func parseDate(fields []string) (window.Day, error) {
	if len(fields) < 2 {
		return window.Day{}, fmt.Errorf("%w: not enough fields", ErrInvalidDate)
	}
	day, err := window.ParseLogDate(fields[0], fields[1])
	if err != nil {
		return window.Day{}, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	return day, nil
}

func parseRecord(fields []string) (Record, error) {
	mailbox := joinValues(fields, userKey)
	user, domain, ok := strings.Cut(mailbox, "@")
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrInvalidMailbox, mailbox)
	}
	// Byte counts are plain decimal digits that fit in a uint64. A sign,
	// digit separators or overflow make the whole line unusable rather than
	// being coerced into a count.
	received, err := strconv.ParseUint(joinValues(fields, receivedKey), 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}
	sent, err := strconv.ParseUint(joinValues(fields, sentKey), 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}
	return Record{
		Domain:   domain,
		User:     user,
		Received: received,
		Sent:     sent,
		Protocol: detectProtocol(fields),
	}, nil
}

// joinValues concatenates the values of every key=value, field containing key.
func joinValues(fields []string, key string) string {
	var sb strings.Builder
	for _, f := range fields {
		if strings.Contains(f, key) {
			sb.WriteString(trimKeyValue(f))
		}
	}
	return sb.String()
}

func trimKeyValue(field string) string {
	r := []rune(field)
	if len(r) <= keyPrefixLen+delimLen {
		return ""
	}
	return string(r[keyPrefixLen : len(r)-delimLen])
}

func detectProtocol(fields []string) Protocol {
	if len(fields) > protocolField && strings.Contains(fields[protocolField], pop3Key) {
		return POP3
	}
	return IMAP
}
