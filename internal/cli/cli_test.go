package cli

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	goruntime "runtime"
	"slices"
	"strings"
	"testing"

	"github.com/modforge-labs/modforge/internal/registry"
	"github.com/spf13/viper"
)

const (
	fomodManifest = "id: fomod\nname: FOMOD\nversion: 1.0.0\nroot: fomod\npriority: 10\nfile_names:\n  - ModuleConfig.xml\n  - script.cs\n"
	omodManifest  = "id: omod\nname: OMOD\nversion: 1.0.0\nroot: omod\nfile_names:\n  - script.txt\n"
)

// testEnv isolates one command run: a temp home, a provider root with the
// fomod and omod providers, and fresh flag and viper state.
func testEnv(t *testing.T) (root string) {
	t.Helper()
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("MODFORGE_HOME", home)
	t.Setenv("MODFORGE_USER_PROVIDERS", "")
	viper.Reset()
	t.Cleanup(viper.Reset)

	root = filepath.Join(t.TempDir(), "scripttypes")
	writeProvider(t, root, "fomod", fomodManifest)
	writeProvider(t, root, "omod", omodManifest)
	return root
}

func writeProvider(t *testing.T, base, dir, body string) string {
	t.Helper()
	providerDir := filepath.Join(base, dir)
	if err := os.MkdirAll(providerDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(providerDir, "scripttype.yaml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return providerDir
}

func writeListing(t *testing.T, entries ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listing.txt")
	if err := os.WriteFile(path, []byte(strings.Join(entries, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func resetFlags() {
	verbosity = 0
	rootDir = ""
	useCache = false
	noUserTypes = false
	typesJSON = false
	detectJSON = false
	detectDeep = false
	requiresJSON = false
	newRoot = "fomod"
	newFileNames = nil
	newRuntime = ""
	newName = ""
	newOutputDir = ""
	linkList = false
	doctorFix = false
	versionShort = false
	versionJSON = false
	rootCmd.PersistentFlags().Lookup("verbose").Changed = false
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestDetect(t *testing.T) {
	root := testEnv(t)

	tests := []struct {
		name    string
		entries []string
		want    string
	}{
		{"fomod archive", []string{"MyMod/fomod/ModuleConfig.xml", "MyMod/Data/a.esp"}, "fomod"},
		{"omod archive", []string{"omod/script.txt", "readme.txt"}, "omod"},
		{"higher priority wins", []string{"omod/script.txt", "fomod/script.cs"}, "fomod"},
		{"no match", []string{"docs/readme.txt"}, noFormatMessage},
		{"empty listing", nil, noFormatMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", "detect", "--root", root, "--no-user", writeListing(t, tt.entries...))
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("detect = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetect_Stdin(t *testing.T) {
	root := testEnv(t)
	out, err := run(t, "# from unzip -Z1\nMyMod/FOMOD/moduleconfig.xml\n", "detect", "--root", root, "-")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if strings.TrimSpace(out) != "fomod" {
		t.Errorf("detect = %q, want fomod", out)
	}
}

func TestDetect_Zip(t *testing.T) {
	root := testEnv(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"MyMod/omod/script.txt", "MyMod/Data/a.esp"} {
		if _, err := zw.Create(name); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	archive := filepath.Join(t.TempDir(), "MyMod.zip")
	if err := os.WriteFile(archive, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "detect", "--root", root, archive)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if strings.TrimSpace(out) != "omod" {
		t.Errorf("detect = %q, want omod", out)
	}
}

func TestDetect_JSON(t *testing.T) {
	root := testEnv(t)
	listing := writeListing(t, "a/fomod/script.cs", "a/fomod/ModuleConfig.xml")

	out, err := run(t, "", "detect", "--root", root, "--json", listing)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	var got detectOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got.Type != "fomod" || got.Method != methodFileNames {
		t.Errorf("type/method = %q/%q", got.Type, got.Method)
	}
	if got.Primary != "a/fomod/ModuleConfig.xml" {
		t.Errorf("primary = %q, want the first pattern's match", got.Primary)
	}
	if len(got.RequiredFiles) != 2 || got.RequiredFiles[1] != "a/fomod/script.cs" {
		t.Errorf("required_files = %v", got.RequiredFiles)
	}
}

func TestDetect_MissingRootFails(t *testing.T) {
	testEnv(t)
	missing := filepath.Join(t.TempDir(), "nowhere")

	out, err := run(t, "", "detect", "--root", missing, writeListing(t, "fomod/ModuleConfig.xml"))
	if !errors.Is(err, registry.ErrDiscovery) {
		t.Fatalf("error = %v, want ErrDiscovery", err)
	}
	if !strings.Contains(err.Error(), "discovery failed") {
		t.Errorf("error = %q, want it labelled as a discovery failure", err)
	}
	if strings.Contains(out, noFormatMessage) {
		t.Error("discovery failure reported as no match")
	}
}

func TestDetect_Deep(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("shell entry points are not run on windows")
	}
	root := testEnv(t)
	dir := writeProvider(t, root, "bsa", "id: bsa\nname: BSA\nversion: 1.0.0\nroot: omod\nidentify:\n  runtime: exec\n  entry: identify\n")
	script := "#!/bin/sh\nif grep -qi '\\.bsa$'; then exit 0; fi\nexit 1\n"
	if err := os.WriteFile(filepath.Join(dir, "identify"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	listing := writeListing(t, "Data/textures.bsa")

	out, err := run(t, "", "detect", "--root", root, listing)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if strings.TrimSpace(out) != noFormatMessage {
		t.Errorf("filename-only detect = %q, want no match", out)
	}

	out, err = run(t, "", "detect", "--root", root, "--deep", "--cache", "--json", listing)
	if err != nil {
		t.Fatalf("detect --deep: %v", err)
	}
	var got detectOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got.Type != "bsa" || got.Method != methodIdentify {
		t.Errorf("deep detect = %+v, want bsa via identify", got)
	}
}

func TestRequires(t *testing.T) {
	root := testEnv(t)
	listing := writeListing(t, "x/fomod/script.cs", "x/fomod/ModuleConfig.xml", "x/omod/script.txt")

	out, err := run(t, "", "requires", "--root", root, listing)
	if err != nil {
		t.Fatalf("requires: %v", err)
	}
	if want := "x/fomod/ModuleConfig.xml\nx/fomod/script.cs\n"; out != want {
		t.Errorf("requires = %q, want %q", out, want)
	}

	out, err = run(t, "", "requires", "--root", root, "--json", writeListing(t, "docs/readme.txt"))
	if err != nil {
		t.Fatalf("requires --json: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("requires --json for no match = %q, want []", out)
	}
}

func TestTypes(t *testing.T) {
	root := testEnv(t)
	writeProvider(t, root, "broken", "id: broken\nname: Broken\nversion: 1.0.0\nroot: nexus\n")

	out, err := run(t, "", "types", "--root", root)
	if err != nil {
		t.Fatalf("types: %v", err)
	}
	fomodAt := strings.Index(out, "fomod")
	omodAt := strings.Index(out, "\nomod")
	if fomodAt < 0 || omodAt < 0 || fomodAt > omodAt {
		t.Errorf("expected fomod listed before omod:\n%s", out)
	}
	if !strings.Contains(out, "invalid_manifest") {
		t.Errorf("skipped provider not reported:\n%s", out)
	}

	out, err = run(t, "", "types", "--root", root, "--json")
	if err != nil {
		t.Fatalf("types --json: %v", err)
	}
	var got typesOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Types) != 2 || got.Types[0].ID != "fomod" || got.Types[0].Source != "app" {
		t.Errorf("types = %+v", got.Types)
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0].Severity != "error" {
		t.Errorf("diagnostics = %+v", got.Diagnostics)
	}
}

func TestTypes_UserSource(t *testing.T) {
	root := testEnv(t)
	userDir := filepath.Join(os.Getenv("MODFORGE_HOME"), "scripttypes")
	writeProvider(t, userDir, "custom", "id: custom\nname: Custom\nversion: 1.0.0\nroot: fomod\nfile_names: [custom.xml]\n")

	out, err := run(t, "", "types", "--root", root, "--json")
	if err != nil {
		t.Fatalf("types: %v", err)
	}
	var got typesOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if n := len(got.Types); n != 3 || got.Types[2].ID != "custom" || got.Types[2].Source != "user" {
		t.Errorf("types = %+v", got.Types)
	}

	out, err = run(t, "", "types", "--root", root, "--no-user", "--json")
	if err != nil {
		t.Fatalf("types --no-user: %v", err)
	}
	got = typesOutput{}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Types) != 2 {
		t.Errorf("--no-user still listed %d types", len(got.Types))
	}
}

func TestValidate(t *testing.T) {
	root := testEnv(t)
	bad := writeProvider(t, t.TempDir(), "bad", "id: bad\nname: Bad\nversion: 1.0.0\nroot: nexus\nextra: 1\n")

	out, err := run(t, "", "validate", filepath.Join(root, "fomod"))
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "ok ") {
		t.Errorf("validate output = %q", out)
	}

	out, err = run(t, "", "validate", filepath.Join(root, "omod", "scripttype.yaml"), bad)
	if err == nil {
		t.Fatal("expected error for invalid manifest")
	}
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "/root") {
		t.Errorf("validate output missing issue details:\n%s", out)
	}
}

func TestNew(t *testing.T) {
	testEnv(t)
	outDir := filepath.Join(t.TempDir(), "custom")

	out, err := run(t, "", "new", "custom", "--root", "omod", "--file-name", "script.txt", "--file-name", "config.ini", "--output-dir", outDir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if strings.Contains(out, "warning") {
		t.Errorf("unexpected warnings:\n%s", out)
	}

	if _, err := run(t, "", "validate", outDir); err != nil {
		t.Errorf("generated provider fails validation: %v", err)
	}

	out, err = run(t, "", "detect", "--root", filepath.Dir(outDir), writeListing(t, "Mod/omod/config.ini"))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if strings.TrimSpace(out) != "custom" {
		t.Errorf("detect with generated provider = %q, want custom", out)
	}
}

func TestNew_DefaultsToUserDir(t *testing.T) {
	testEnv(t)
	if _, err := run(t, "", "new", "mine", "--file-name", "ModuleConfig.xml"); err != nil {
		t.Fatalf("new: %v", err)
	}
	path := filepath.Join(os.Getenv("MODFORGE_HOME"), "scripttypes", "mine", "scripttype.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("manifest not written to user dir: %v", err)
	}
}

func TestNew_HonorsConfiguredUserDir(t *testing.T) {
	tests := []struct {
		name      string
		configure func(t *testing.T, dir string)
	}{
		{
			name: "config file",
			configure: func(t *testing.T, dir string) {
				if _, err := run(t, "", "config", "set", "discovery.user_dir", dir); err != nil {
					t.Fatalf("config set: %v", err)
				}
			},
		},
		{
			name: "environment",
			configure: func(t *testing.T, dir string) {
				t.Setenv("MODFORGE_DISCOVERY_USER_DIR", dir)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := testEnv(t)
			userDir := filepath.Join(t.TempDir(), "myproviders")
			tc.configure(t, userDir)

			if _, err := run(t, "", "new", "mine", "--file-name", "mine.xml"); err != nil {
				t.Fatalf("new: %v", err)
			}
			if _, err := os.Stat(filepath.Join(userDir, "mine", "scripttype.yaml")); err != nil {
				t.Errorf("manifest not written to configured user_dir: %v", err)
			}

			out, err := run(t, "", "types", "--root", root, "--json")
			if err != nil {
				t.Fatalf("types: %v", err)
			}
			var got typesOutput
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatal(err)
			}
			var ids []string
			for _, ty := range got.Types {
				ids = append(ids, ty.ID)
			}
			if !slices.Contains(ids, "mine") {
				t.Errorf("types = %v, want mine listed", ids)
			}
		})
	}
}

func TestNew_RejectsBadInput(t *testing.T) {
	testEnv(t)
	tests := [][]string{
		{"new", "bad/id"},
		{"new", "ok", "--root", "nexus"},
		{"new", "ok", "--runtime", "python"},
		{"new", "ok", "--file-name", ""},
	}
	for _, args := range tests {
		if _, err := run(t, "", args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestConfigSetGet(t *testing.T) {
	testEnv(t)

	if _, err := run(t, "", "config", "set", "discovery.cache", "true"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := run(t, "", "config", "get", "discovery.cache")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "true" {
		t.Errorf("config get = %q, want true", out)
	}

	if _, err := run(t, "", "config", "set", "no.such.key", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestInitAndDoctor(t *testing.T) {
	root := testEnv(t)

	if _, err := run(t, "", "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	out, err := run(t, "", "doctor", "--root", root)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No problems found.") {
		t.Errorf("doctor output:\n%s", out)
	}

	if _, err := run(t, "", "doctor", "--root", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected doctor to fail for a missing root")
	}
}

func TestVersion(t *testing.T) {
	testEnv(t)
	buildVersion = "1.2.3"
	t.Cleanup(func() { buildVersion = "" })

	out, err := run(t, "", "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("version --short = %q", out)
	}
}
