package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDirectorySourceCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "export_1.csv",
		"slot,timestamp,fee,success,accounts\n"+
			`1,0,10,true,"[""A"",""B""]"`+"\n")
	writeFile(t, dir, "export_2.csv",
		"slot,timestamp,fee,success,accounts\n"+
			`1,0,20,false,"[""A""]"`+"\n")
	writeFile(t, dir, "notes.txt", "ignored")

	src := NewDirectorySource(dir, zaptest.NewLogger(t))
	records, err := src.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	var accounts int
	for _, rec := range records {
		assert.Equal(t, uint64(1), rec.Slot)
		accounts += len(rec.Accounts)
	}
	assert.Equal(t, 3, accounts)
}

func TestDirectorySourceNoExports(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "readme.md", "nothing columnar here")

	src := NewDirectorySource(dir, zaptest.NewLogger(t))
	_, err := src.Records(context.Background())
	require.ErrorIs(t, err, ErrDataUnavailable)
}

func TestDirectorySourceMissingDir(t *testing.T) {
	t.Parallel()

	src := NewDirectorySource(filepath.Join(t.TempDir(), "absent"), zaptest.NewLogger(t))
	_, err := src.Records(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDataUnavailable)
}

func TestDirectorySourceMalformedCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "export.csv",
		"slot,timestamp,fee,success,accounts\n"+
			",0,10,true,\n")

	src := NewDirectorySource(dir, zaptest.NewLogger(t))
	_, err := src.Records(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slot")
}
