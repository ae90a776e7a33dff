package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceLine = `Jan 05 10:00:01 mail courier-imapd: LOGOUT, user=alice@example.com, ip=[::1], headers=0, body=0, rcvd=100, sent=50, time=3`
	bobLine   = `Jan  5 10:00:02 mail courierpop3login: LOGOUT, user=bob@example.org, ip=[::1], port=[4242], top=0, retr=0, rcvd=200, sent=0, time=1`
)

func writeLog(t *testing.T) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "maillog")
	require.NoError(t, os.WriteFile(name, []byte(aliceLine+"\n"+bobLine+"\n"), 0o644))
	return name
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := RootCmd()
	out := new(strings.Builder)
	root.SetOut(out)
	root.SetErr(new(strings.Builder))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestReportCmd(t *testing.T) {
	name := writeLog(t)
	out, err := execute(t, "report", "--log-level", "error", "--no-color", "--start", "05-01", "-u", "KB", name)
	require.NoError(t, err)
	assert.Contains(t, out, "Statistics for 05 Jan\n")
	assert.Contains(t, out, "  Domain example.org\n    User bob\n    Total: 0.20 KB\n")
	assert.True(t, strings.HasSuffix(out, "\nTotal: 0.34 KB\n"))
}

func TestReportCmdConfigFile(t *testing.T) {
	name := writeLog(t)
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("start: 05-01\nformat: json\nlog-level: error\n"), 0o644))

	out, err := execute(t, "report", "--config", cfg, name)
	require.NoError(t, err)
	assert.Contains(t, out, `"date": "01-05"`)
	assert.Contains(t, out, `"total": 350`)
}

func TestReportCmdErrors(t *testing.T) {
	name := writeLog(t)
	_, err := execute(t, "report", "--log-level", "error", "--start", "05-01", "--end", "04-01", name)
	assert.Error(t, err)

	_, err = execute(t, "report", "--log-level", "loud", "--start", "05-01", name)
	assert.Error(t, err)

	_, err = execute(t, "report", "--log-level", "error", "--start", "32-01", name)
	assert.Error(t, err)

	_, err = execute(t, "report", "--log-level", "error", "--start", "05-01", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestGrepCmd(t *testing.T) {
	name := writeLog(t)
	out, err := execute(t, "grep", "--log-level", "error", "--protocol", "pop3", name)
	require.NoError(t, err)
	assert.Equal(t, bobLine+"\n", out)
}

func TestListCmd(t *testing.T) {
	out, err := execute(t, "list", "parsers")
	require.NoError(t, err)
	assert.Contains(t, out, "courier")
	assert.NotContains(t, out, "courier-imap")

	out, err = execute(t, "list", "parsers", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "courier-imap")

	out, err = execute(t, "list", "units")
	require.NoError(t, err)
	assert.Contains(t, out, "1.00 KB")
	assert.Contains(t, out, "1.0 KiB")
}
