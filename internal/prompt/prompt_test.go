// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/deskkit/internal/scan"
)

func TestLinePrompterAsk(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("first\r\nsecond\nlast"), &out)

	for _, want := range []string{"first", "second", "last"} {
		got, err := p.Ask("> ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := p.Ask("> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "> > > > ", out.String())
}

func TestLinePrompterWarn(t *testing.T) {
	var out bytes.Buffer
	NewLinePrompter(strings.NewReader(""), &out).Warn("bad input")
	assert.Contains(t, out.String(), "bad input")
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestAskUntil(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("x\n-1\n7\n"), &out)

	got, err := AskUntil(p, "n: ", func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, errors.New("not a number")
		}
		if n <= 0 {
			return 0, errors.New("must be positive")
		}
		return n, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Contains(t, out.String(), "not a number")
	assert.Contains(t, out.String(), "must be positive")
	assert.Equal(t, 3, strings.Count(out.String(), "n: "))
}

func TestAskUntilStopsAtEOF(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("bad\n"), io.Discard)
	_, err := AskUntil(p, "", func(string) (int, error) { return 0, errors.New("never valid") })
	assert.ErrorIs(t, err, io.EOF)
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{in: "yes", want: true},
		{in: "Y", want: true},
		{in: " YES ", want: true},
		{in: "no"},
		{in: "N"},
		{in: "maybe", wantErr: true},
		{in: "", wantErr: true},
		{in: "yess", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseYesNo(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotYesNo)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAskYesNoRetries(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("sure\nok\nn\n"), &out)
	got, err := AskYesNo(p, "? ")
	require.NoError(t, err)
	assert.False(t, got)
	assert.Equal(t, 2, strings.Count(out.String(), "yes' or 'no"))
}

func TestAskDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/data/scans", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/data/file.txt", []byte("x"), 0o644))

	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("/nope\n/data/file.txt\n  /data/scans  \n"), &out)

	dir, err := AskDirectory(p, fsys, "dir: ")
	require.NoError(t, err)
	assert.Equal(t, "/data/scans", dir)
	assert.Contains(t, out.String(), "the path '/nope' "+scan.ErrNotExist.Error())
	assert.Contains(t, out.String(), "'/data/file.txt' "+scan.ErrNotDir.Error())
}

func TestDetectFallsBackToLinePrompter(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()

	p := Detect(f, f, false)
	_, ok := p.(*LinePrompter)
	assert.True(t, ok, "regular files are not terminals")

	p = Detect(f, f, true)
	_, ok = p.(*LinePrompter)
	assert.True(t, ok)
}
