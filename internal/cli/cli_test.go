package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/media/sniffer"
)

func TestReadPassword(t *testing.T) {
	pw, err := readPassword("", true, strings.NewReader("s3cret\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	pw, err = readPassword("flag", false, nil)
	require.NoError(t, err)
	assert.Equal(t, "flag", pw)

	t.Setenv("ROOPADMIN_PASSWORD", "")
	_, err = readPassword("", false, nil)
	assert.Error(t, err)

	_, err = readPassword("", true, strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadImageFileUsesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ring.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o600))

	image, err := readImageFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "ring.png", image.Name)
	assert.Equal(t, "image/png", image.ContentType)

	image, err = readImageFile(path, "image/webp")
	require.NoError(t, err)
	assert.Equal(t, "image/webp", image.ContentType)
}

func TestStoreErrorPrefersRecordedMessage(t *testing.T) {
	err := errors.New("POST /admin/login: 400")
	assert.EqualError(t, storeError(err, "Invalid credentials"), "Invalid credentials")
	assert.Equal(t, err, storeError(err, ""))

	invalid := &sniffer.ValidationError{File: "a.txt", Err: sniffer.ErrTypeNotAllowed}
	assert.Equal(t, error(invalid), storeError(invalid, "stale"))
}

func TestTable(t *testing.T) {
	var out bytes.Buffer
	rt := &runtime{out: &out}
	require.NoError(t, rt.table([]string{"ID", "NAME"}, [][]string{{"c1", "Rings"}}))
	assert.Equal(t, "ID  NAME\nc1  Rings\n", out.String())
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	root := newRootCommand(newRuntime())
	root.SetArgs([]string{"categories", "delete", "c1"})
	root.SetOut(&bytes.Buffer{})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestRunReleasesStorageOnFailure(t *testing.T) {
	released := 0
	rt := &runtime{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, release: func() { released++ }}

	err := run(context.Background(), rt, []string{"categories", "delete", "c1"})
	require.Error(t, err)
	assert.Equal(t, 1, released)
}
