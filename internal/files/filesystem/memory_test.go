package filesystem

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_Basic(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")

	mfs.AddFile("manage.py", "import sys\n")
	mfs.AddFile("blog/migrations/0001_initial.py", sampleMigration)

	dir, err := mfs.Open("/test/project")
	require.NoError(t, err, "Failed to open root directory")
	require.NotNil(t, dir)

	var files []string
	err = dir.Walk(func(file File, err error) error {
		require.NoError(t, err)
		if !file.Info().IsDir() {
			files = append(files, file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"blog/migrations/0001_initial.py", "manage.py"}, files)
}

func TestMemoryFileSystem_WalkSubdirectory(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	mfs.AddFile("blog/migrations/0001_initial.py", sampleMigration)
	mfs.AddFile("shop/migrations/0001_initial.py", sampleMigration)

	dir, err := mfs.Open("blog")
	require.NoError(t, err)

	var rels []string
	err = dir.Walk(func(file File, err error) error {
		require.NoError(t, err)
		rels = append(rels, file.RelativePath())
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{".", "migrations", "migrations/0001_initial.py"}, rels)
}

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	mfs.AddFile("blog/migrations/0001_initial.py", sampleMigration)

	content, err := mfs.ReadFile("/test/project/blog/migrations/0001_initial.py")
	require.NoError(t, err)
	require.Equal(t, sampleMigration, string(content))

	_, err = mfs.ReadFile("blog/migrations")
	require.Error(t, err)
}

func TestMemoryFileSystem_WriteFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	mfs.AddFile("blog/migrations/0001_initial.py", sampleMigration)

	err := mfs.WriteFile("blog/migrations/0001_initial.py", []byte("patched"), 0600)
	require.NoError(t, err)

	content, err := mfs.ReadFile("blog/migrations/0001_initial.py")
	require.NoError(t, err)
	require.Equal(t, "patched", string(content))

	info, err := mfs.Stat("blog/migrations/0001_initial.py")
	require.NoError(t, err)
	require.Equal(t, int64(len("patched")), info.Size())
	require.EqualValues(t, 0644, info.Mode(), "existing files keep their mode")
}

func TestMemoryFileSystem_InjectedFailures(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	mfs.AddFile("blog/migrations/0001_initial.py", sampleMigration)

	readErr := errors.New("read denied")
	writeErr := errors.New("write denied")
	mfs.FailReads("blog/migrations/0001_initial.py", readErr)
	mfs.FailWrites("/test/project/blog/migrations/0001_initial.py", writeErr)

	_, err := mfs.ReadFile("/test/project/blog/migrations/0001_initial.py")
	require.ErrorIs(t, err, readErr)

	err = mfs.WriteFile("blog/migrations/0001_initial.py", []byte("x"), 0644)
	require.ErrorIs(t, err, writeErr)
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	mfs.AddFile("manage.py", "import sys\n")

	info, err := mfs.Stat("/test/project/manage.py")
	require.NoError(t, err)
	require.False(t, info.IsDir())
	require.Equal(t, "manage.py", info.Name())

	info, err = mfs.Stat("/test/project")
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestMemoryFileSystem_OpenErrors(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	mfs.AddFile("manage.py", "import sys\n")

	_, err := mfs.Open("missing")
	require.Error(t, err)

	_, err = mfs.Open("manage.py")
	require.Error(t, err)
}

func TestMemoryFileSystem_ConcurrentWrites(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	paths := []string{"a/migrations/0001.py", "b/migrations/0001.py", "c/migrations/0001.py"}
	for _, p := range paths {
		mfs.AddFile(p, sampleMigration)
	}

	var wg sync.WaitGroup
	for _, p := range paths {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			data, err := mfs.ReadFile(p)
			if assert.NoError(t, err) {
				assert.NoError(t, mfs.WriteFile(p, append(data, '#'), 0644))
			}
		}(p)
	}
	wg.Wait()

	for _, p := range paths {
		content, err := mfs.ReadFile(p)
		require.NoError(t, err)
		require.Equal(t, sampleMigration+"#", string(content))
	}
}
