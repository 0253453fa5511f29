package matrix

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `,c1,c2,c3
good,1,0,2
bad,0,3,1.5
`

func TestReadCSV(t *testing.T) {
	m, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"good", "bad"}, m.Terms())
	assert.Equal(t, []string{"c1", "c2", "c3"}, m.Columns())

	row, ok := m.Row("bad")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 3, 1.5}, row)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty input", "", ErrNoColumns},
		{"header only index", "word\n", ErrNoColumns},
		{"ragged row", ",c1,c2\ngood,1\n", ErrRaggedRow},
		{"bad number", ",c1\ngood,lots\n", ErrParseValue},
		{"duplicate row", ",c1\ngood,1\ngood,2\n", ErrDuplicateTerm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadCSV_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "window5.csv.gz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	m, err := LoadCSV(path)
	require.NoError(t, err)
	assert.True(t, m.Has("good"))
	assert.True(t, m.Has("bad"))
}

func TestLoadCSV_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "window5.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	m, err := LoadCSV(path)
	require.NoError(t, err)
	rows, cols := m.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	m, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, m))

	again, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Terms(), again.Terms())
	assert.Equal(t, m.Columns(), again.Columns())
	for _, term := range m.Terms() {
		want, _ := m.Row(term)
		got, _ := again.Row(term)
		assert.Equal(t, want, got, term)
	}
}
