package analyze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

type UnitFlag string

const (
	UnitBytes     UnitFlag = "B"
	UnitKilobytes UnitFlag = "KB"
	UnitMegabytes UnitFlag = "MB"
	UnitGigabytes UnitFlag = "GB"
	// humanize picks the unit per value
	UnitAuto UnitFlag = "auto"
)

var unitDivisors = map[UnitFlag]float64{
	UnitBytes:     1,
	UnitKilobytes: 1 << 10,
	UnitMegabytes: 1 << 20,
	UnitGigabytes: 1 << 30,
	UnitAuto:      1,
}

func (u UnitFlag) String() string {
	return string(u)
}

func (u *UnitFlag) Set(value string) error {
	switch strings.ToUpper(value) {
	case "B", "BYTES":
		*u = UnitBytes
	case "KB", "KILOBYTES":
		*u = UnitKilobytes
	case "MB", "MEGABYTES":
		*u = UnitMegabytes
	case "GB", "GIGABYTES":
		*u = UnitGigabytes
	case "AUTO", "HUMAN":
		*u = UnitAuto
	default:
		return errors.New(`must be one of "B", "KB", "MB", "GB" or "auto"`)
	}
	return nil
}

func (u UnitFlag) Type() string {
	return "unit"
}

// Convert divides bytes by the size of unit. No rounding is done.
func Convert(bytes uint64, unit UnitFlag) float64 {
	divisor, ok := unitDivisors[unit]
	if !ok {
		divisor = 1
	}
	return float64(bytes) / divisor
}

// FormatSize renders bytes in unit with two decimals, e.g. "1.50 KB".
func FormatSize(bytes uint64, unit UnitFlag) string {
	if unit == UnitAuto {
		return humanize.IBytes(bytes)
	}
	return fmt.Sprintf("%.2f %s", Convert(bytes, unit), unit)
}

func ListUnits() []UnitFlag {
	return []UnitFlag{UnitBytes, UnitKilobytes, UnitMegabytes, UnitGigabytes, UnitAuto}
}

type FormatFlag string

const (
	FormatText  FormatFlag = "text"
	FormatTable FormatFlag = "table"
	FormatJSON  FormatFlag = "json"
)

func (f FormatFlag) String() string {
	return string(f)
}

func (f *FormatFlag) Set(value string) error {
	switch value {
	case "text", "plain":
		*f = FormatText
	case "table":
		*f = FormatTable
	case "json":
		*f = FormatJSON
	default:
		return errors.New(`must be one of "text", "table" or "json"`)
	}
	return nil
}

func (f FormatFlag) Type() string {
	return "string"
}

type SortByFlag string

const (
	SortBySeen  SortByFlag = "seen"
	SortByName  SortByFlag = "name"
	SortByTotal SortByFlag = "total"
)

func (s SortByFlag) String() string {
	return string(s)
}

func (s *SortByFlag) Set(value string) error {
	switch value {
	case "seen", "first-seen":
		*s = SortBySeen
	case "name":
		*s = SortByName
	case "total", "size":
		*s = SortByTotal
	default:
		return errors.New(`must be one of "seen", "name" or "total"`)
	}
	return nil
}

func (s SortByFlag) Type() string {
	return "string"
}
