package storage

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisk_SaveOpenDelete(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	assert.NoError(t, err)

	path, err := d.Save("report.PDF", strings.NewReader("hello"))
	assert.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(path), "extension is kept lowercased")
	assert.True(t, d.Exists(path))

	size, err := d.Size(path)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), size)

	rc, err := d.Open(path)
	assert.NoError(t, err)
	data, err := io.ReadAll(rc)
	assert.NoError(t, err)
	_ = rc.Close()
	assert.Equal(t, "hello", string(data))

	assert.NoError(t, d.Delete(path))
	assert.False(t, d.Exists(path))

	// повторное удаление — не ошибка
	assert.NoError(t, d.Delete(path))
}

func TestDisk_UniqueNames(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	assert.NoError(t, err)

	p1, err := d.Save("a.pdf", strings.NewReader("1"))
	assert.NoError(t, err)
	p2, err := d.Save("a.pdf", strings.NewReader("2"))
	assert.NoError(t, err)
	assert.NotEqual(t, p1, p2)
}

func TestDisk_SizeMissing(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	assert.NoError(t, err)

	_, err = d.Size("documents/nope.pdf")
	assert.Error(t, err)
}
