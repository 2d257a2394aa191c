package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lpenaud/odtmerge/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.odt")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("payload"), 0); err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "payload" {
			t.Errorf("content = %q", data)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %v, want %v", info.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("replaces existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.odt")
		if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0); err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "new" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("cancelled context aborts before writing", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "out.odt")
		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); err == nil {
			t.Error("expected context error")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("file should not exist")
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.odt")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].Name() != "out.odt" {
			t.Errorf("directory entries = %v", entries)
		}
	})
}
