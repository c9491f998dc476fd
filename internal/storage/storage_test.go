package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalArchiveRoundTrip(t *testing.T) {
	archive, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	content := []byte("MODELO,SERIAL\nPC200-8,C12345\n")
	key, checksum, err := archive.Put(context.Background(), "run-123", "compras.csv", content)
	require.NoError(t, err)

	expected := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(expected[:]), checksum)

	day := time.Now().UTC().Format("2006-01-02")
	assert.True(t, strings.HasPrefix(key, day+"/"), "key %q not date-partitioned", key)
	assert.Contains(t, key, "run-123_compras.csv")

	got, err := archive.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocalArchiveSanitizesFilename(t *testing.T) {
	archive, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	key, _, err := archive.Put(context.Background(), "run-1", "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.NotContains(t, key, "..")
	assert.True(t, strings.HasSuffix(key, "run-1_passwd"), "key %q", key)

	key, _, err = archive.Put(context.Background(), "run-2", "compras enero (v2).xlsx", []byte("x"))
	require.NoError(t, err)
	assert.Contains(t, key, "run-2_compras_enero__v2_.xlsx")
}

func TestLocalArchiveGetRejectsTraversal(t *testing.T) {
	archive, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	_, err = archive.Get(context.Background(), "../outside")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid archive key")
}
