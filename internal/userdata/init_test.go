package userdata

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitUser(t *testing.T) {
	home := withHome(t)

	var buf bytes.Buffer
	if err := InitUser(&buf); err != nil {
		t.Fatalf("InitUser: %v", err)
	}

	for _, dir := range []string{home, filepath.Join(home, "scripttypes")} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("%s not created: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	if err != nil {
		t.Fatalf("config.yaml not created: %v", err)
	}
	if !strings.Contains(string(data), "cache: false") {
		t.Errorf("unexpected config content:\n%s", data)
	}
	if strings.Count(buf.String(), "[ OK ] Created") != 3 {
		t.Errorf("expected three created items, got:\n%s", buf.String())
	}
}

func TestInitUser_Idempotent(t *testing.T) {
	home := withHome(t)
	if err := InitUser(&bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	custom := []byte("log:\n  level: 2\n")
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), custom, 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := InitUser(&buf); err != nil {
		t.Fatalf("second InitUser: %v", err)
	}
	if strings.Contains(buf.String(), "Created") {
		t.Errorf("second run created items:\n%s", buf.String())
	}
	data, _ := os.ReadFile(filepath.Join(home, "config.yaml"))
	if string(data) != string(custom) {
		t.Error("existing config.yaml was overwritten")
	}
}

func TestInitUser_FileInTheWay(t *testing.T) {
	home := withHome(t)
	if err := os.MkdirAll(home, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, "scripttypes"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := InitUser(&bytes.Buffer{}); err == nil {
		t.Error("expected error when a file occupies the provider directory path")
	}
}
