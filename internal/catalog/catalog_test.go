package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"fotosort/internal/catalog"
	"fotosort/internal/errors"
	"fotosort/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeepsOrderAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	imgs := testutils.CreateTestImages(t, dir, "c.png", "a.jpg", "b.png")

	res, err := catalog.Load([]string{imgs[0], imgs[1], imgs[0], imgs[2]}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{imgs[0], imgs[1], imgs[0], imgs[2]}, res.Paths())
	assert.Empty(t, res.Dropped)

	first := res.Candidates[0]
	assert.Equal(t, "png", first.Format)
	assert.Equal(t, 8, first.Width)
	assert.Equal(t, 6, first.Height)
	assert.Positive(t, first.Size)
	assert.Equal(t, "jpeg", res.Candidates[1].Format)
}

func TestLoadDropsSilently(t *testing.T) {
	dir := t.TempDir()
	imgs := testutils.CreateTestImages(t, dir, "good.png")
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"notes.txt":       "hello",
		"fake.jpg":        "definitely not a jpeg",
		"empty.png":       "",
		"sub/placeholder": "x",
	})

	input := []string{
		filepath.Join(dir, "missing.png"),
		filepath.Join(dir, "notes.txt"),
		imgs[0],
		filepath.Join(dir, "fake.jpg"),
		filepath.Join(dir, "empty.png"),
		filepath.Join(dir, "sub"),
	}
	res, err := catalog.Load(input, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{imgs[0]}, res.Paths())
	assert.Len(t, res.Dropped, 5)
}

func TestLoadNothingValid(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"a.txt": "x"})

	res, err := catalog.Load([]string{filepath.Join(dir, "a.txt")}, nil)
	assert.ErrorIs(t, err, errors.ErrNoImages)
	require.NotNil(t, res)
	assert.Empty(t, res.Candidates)

	_, err = catalog.Load(nil, nil)
	assert.ErrorIs(t, err, errors.ErrNoImages)
}

func TestFilter(t *testing.T) {
	f, err := catalog.NewFilter([]string{"*.{jpg,jpeg}"}, []string{"._*", "*_thumb.*"})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"/photos/IMG_001.JPG", true},
		{"/photos/b.jpeg", true},
		{"/photos/c.png", false},
		{"/photos/._IMG_001.jpg", false},
		{"/photos/d_thumb.jpg", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Match(tt.path))
		})
	}

	var nilFilter *catalog.Filter
	assert.True(t, nilFilter.Match("anything"))

	open, err := catalog.NewFilter(nil, nil)
	require.NoError(t, err)
	assert.True(t, open.Match("x.png"))
}

func TestFilterInvalidPattern(t *testing.T) {
	_, err := catalog.NewFilter([]string{"[abc"}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestLoadAppliesFilter(t *testing.T) {
	dir := t.TempDir()
	imgs := testutils.CreateTestImages(t, dir, "keep.png", "skip.jpg")
	f, err := catalog.NewFilter([]string{"*.png"}, nil)
	require.NoError(t, err)

	res, err := catalog.Load(imgs, f)
	require.NoError(t, err)
	assert.Equal(t, imgs[:1], res.Paths())
	assert.Equal(t, imgs[1:], res.Dropped)
}

func TestLoadUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read anything")
	}
	dir := t.TempDir()
	imgs := testutils.CreateTestImages(t, dir, "a.png", "locked.png")
	require.NoError(t, os.Chmod(imgs[1], 0))

	res, err := catalog.Load(imgs, nil)
	require.NoError(t, err)
	assert.Equal(t, imgs[:1], res.Paths())
}
