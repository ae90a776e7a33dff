// Package metrics exports a traffic report in the Prometheus text format,
// suitable for node_exporter's textfile collector.
package metrics

import (
	"github.com/courier-tools/courier-traffic/pkg/analyze"
	"github.com/courier-tools/courier-traffic/pkg/parser"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "courier_traffic"

type collectors struct {
	bytes    *prometheus.GaugeVec
	dayBytes *prometheus.GaugeVec
	total    prometheus.Gauge
	lines    prometheus.Gauge
	records  prometheus.Gauge
}

func newCollectors() *collectors {
	return &collectors{
		bytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bytes",
			Help:      "Bytes transferred per mailbox, protocol and direction on a day.",
		}, []string{"date", "domain", "user", "protocol", "direction"}),
		dayBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "day_bytes",
			Help:      "Bytes transferred by all mailboxes on a day.",
		}, []string{"date"}),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "window_bytes",
			Help:      "Bytes transferred over the whole reporting window.",
		}),
		lines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lines_read",
			Help:      "Log lines read while building the report.",
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Log lines that yielded a traffic record.",
		}),
	}
}

func (c *collectors) observe(report *analyze.Report) {
	for _, day := range report.Days {
		date := day.Day.Key()
		c.dayBytes.WithLabelValues(date).Set(float64(day.Total()))
		for _, d := range day.Store.Domains {
			for _, u := range d.Users {
				gauge := func(p parser.Protocol, direction string) prometheus.Gauge {
					return c.bytes.WithLabelValues(date, d.Name, u.Name, p.String(), direction)
				}
				gauge(parser.POP3, "received").Set(float64(u.Received.POP3))
				gauge(parser.IMAP, "received").Set(float64(u.Received.IMAP))
				gauge(parser.POP3, "sent").Set(float64(u.Sent.POP3))
				gauge(parser.IMAP, "sent").Set(float64(u.Sent.IMAP))
			}
		}
	}
	c.total.Set(float64(report.Total()))
	c.lines.Set(float64(report.Lines))
	c.records.Set(float64(report.Records))
}

// NewRegistry returns a registry holding the gauges of report.
func NewRegistry(report *analyze.Report) *prometheus.Registry {
	c := newCollectors()
	c.observe(report)
	reg := prometheus.NewRegistry()
	reg.MustRegister(c.bytes, c.dayBytes, c.total, c.lines, c.records)
	return reg
}

// WriteTextfile atomically replaces filename with the metrics of report.
func WriteTextfile(filename string, report *analyze.Report) error {
	return prometheus.WriteToTextfile(filename, NewRegistry(report))
}
