package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// linkOrSkip creates a directory link, skipping the test when the platform
// refuses symlinks (Windows without Developer Mode).
func linkOrSkip(t *testing.T, target, link string) {
	t.Helper()
	if err := LinkDir(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

func TestLinkDir(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "provider")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "scripttype.yaml"), []byte("id: x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(tmp, "linked")
	linkOrSkip(t, target, link)

	if !IsLink(link) {
		t.Fatal("IsLink = false for created link")
	}
	data, err := os.ReadFile(filepath.Join(link, "scripttype.yaml"))
	if err != nil {
		t.Fatalf("reading through link: %v", err)
	}
	if string(data) != "id: x\n" {
		t.Errorf("content = %q", data)
	}

	got, err := ReadLink(link)
	if err != nil {
		t.Fatalf("ReadLink: %v", err)
	}
	if got != target {
		t.Errorf("ReadLink = %q, want %q", got, target)
	}
}

func TestLinkDir_RejectsFileOrMissingTarget(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LinkDir(file, filepath.Join(tmp, "a")); err == nil {
		t.Error("expected error linking to a file")
	}
	if err := LinkDir(filepath.Join(tmp, "missing"), filepath.Join(tmp, "b")); err == nil {
		t.Error("expected error linking to a missing directory")
	}
}

func TestRemoveLink(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "provider")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, "linked")
	linkOrSkip(t, target, link)

	if err := RemoveLink(link); err != nil {
		t.Fatalf("RemoveLink: %v", err)
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Error("link still exists after RemoveLink")
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("target removed along with link: %v", err)
	}
}

func TestRemoveLink_RefusesRealDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "real")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	err := RemoveLink(dir)
	if !errors.Is(err, ErrNotLink) {
		t.Fatalf("RemoveLink(real dir) = %v, want ErrNotLink", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("real directory was removed: %v", err)
	}
	if _, err := ReadLink(dir); !errors.Is(err, ErrNotLink) {
		t.Errorf("ReadLink(real dir) = %v, want ErrNotLink", err)
	}
}

func TestIsDanglingLink(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "provider")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, "linked")
	linkOrSkip(t, target, link)

	if IsDanglingLink(link) {
		t.Error("live link reported as dangling")
	}
	if err := os.RemoveAll(target); err != nil {
		t.Fatal(err)
	}
	if !IsDanglingLink(link) {
		t.Error("dangling link not detected")
	}
	if IsDanglingLink(tmp) {
		t.Error("plain directory reported as dangling link")
	}
}
