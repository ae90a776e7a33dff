package grep

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/courier-tools/courier-traffic/pkg/fileiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lines = []string{
	`Jan  4 09:00:00 mail courier-imapd: LOGOUT, user=alice@example.com, ip=[::1], headers=0, body=0, rcvd=1, sent=2, time=3`,
	`Jan  5 10:00:01 mail courier-imapd: LOGOUT, user=alice@example.com, ip=[::1], headers=0, body=0, rcvd=100, sent=50, time=3`,
	`Jan  5 10:00:02 mail courierpop3login: LOGOUT, user=bob@example.org, ip=[::1], port=[1], top=0, retr=0, rcvd=200, sent=0, time=1`,
	`Jan  5 10:00:03 mail courier-imapd: LOGOUT, user=carol@notexample.com, ip=[::1], headers=0, body=0, rcvd=5, sent=5, time=3`,
	`Jan  5 10:00:04 mail postfix/smtpd[123]: connect from unknown[10.0.0.9]`,
}

func iter() fileiter.Iterator {
	raw := make([][]byte, 0, len(lines))
	for _, l := range lines {
		raw = append(raw, []byte(l))
	}
	return fileiter.NewWithLines(raw)
}

func grep(t *testing.T, args ...string) []string {
	t.Helper()
	c := DefaultConfig()
	flags := newFlagSet(&c)
	require.NoError(t, flags.Parse(args))

	out := new(strings.Builder)
	g, err := New(c, out)
	require.NoError(t, err)
	require.NoError(t, g.RunLoop(iter()))
	res := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if out.Len() == 0 {
		res = nil
	}
	assert.EqualValues(t, len(res), g.Matched())
	return res
}

func TestGrepNoFilter(t *testing.T) {
	// every courier record, nothing else
	assert.Equal(t, lines[:4], grep(t))
}

func TestGrepDomainIsExact(t *testing.T) {
	assert.Equal(t, lines[:2], grep(t, "--domain", "example.com"))
	assert.Equal(t, []string{lines[1], lines[2]}, grep(t, "--domain", "example.com", "--domain", "example.org", "--start", "05-01"))
}

func TestGrepUserAndProtocol(t *testing.T) {
	assert.Equal(t, []string{lines[2]}, grep(t, "--protocol", "pop3"))
	assert.Equal(t, []string{lines[3]}, grep(t, "--user", "carol"))
	assert.Nil(t, grep(t, "--user", "bob", "--protocol", "imap"))
}

func TestGrepWindow(t *testing.T) {
	assert.Equal(t, lines[:1], grep(t, "--start", "04-01"))
	assert.Equal(t, lines[:4], grep(t, "--start", "04-01", "--end", "05-01"))
}

func TestGrepInvalidConfig(t *testing.T) {
	c := DefaultConfig()
	flags := newFlagSet(&c)
	require.NoError(t, flags.Parse([]string{"--protocol", "smtp"}))
	_, err := New(c, new(strings.Builder))
	assert.Error(t, err)

	c = DefaultConfig()
	flags = newFlagSet(&c)
	require.NoError(t, flags.Parse([]string{"--end", "05-01"}))
	_, err = New(c, new(strings.Builder))
	assert.Error(t, err)
}

func TestGrepFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "maillog")
	require.NoError(t, os.WriteFile(name, []byte(strings.Join(lines, "\n")), 0o644))

	c := DefaultConfig()
	out := new(strings.Builder)
	g, err := New(c, out)
	require.NoError(t, err)
	assert.True(t, g.IsEmpty())
	require.NoError(t, g.GrepFile(name))
	assert.Equal(t, strings.Join(lines[:4], "\n")+"\n", out.String())
}
