package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadColorMode(t *testing.T) {
	cases := []struct {
		input   string
		want    colorMode
		wantErr bool
	}{
		{"", colorModeAuto, false},
		{"auto", colorModeAuto, false},
		{"ON", colorModeOn, false},
		{" off ", colorModeOff, false},
		{"rainbow", "", true},
	}
	for _, tc := range cases {
		got, err := readColorMode(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("readColorMode(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("readColorMode(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("readColorMode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error for unknown ui mode")
	}
	got, err := readUIMode("On")
	if err != nil {
		t.Fatal(err)
	}
	if got != uiModeOn {
		t.Errorf("readUIMode(\"On\") = %q, want on", got)
	}
}

func TestFindNetmendTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(root, "netmend.toml")
	if err := os.WriteFile(manifest, []byte("[output]\nsuffix = \".out.json\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findNetmendToml(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected to find netmend.toml in an ancestor directory")
	}
	if path != manifest {
		t.Errorf("found %q, want %q", path, manifest)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	good := write("good.toml", "[output]\nsuffix = \".fixed.json\"\n[recover]\next = \".log\"\njobs = 4\n")
	cfg, err := loadProjectConfig(good)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Suffix != ".fixed.json" || cfg.Recover.Ext != ".log" || cfg.Recover.Jobs != 4 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	// пустой манифест валиден: все секции опциональны
	empty := write("empty.toml", "")
	if _, err := loadProjectConfig(empty); err != nil {
		t.Errorf("empty manifest must be valid: %v", err)
	}

	badSuffix := write("bad_suffix.toml", "[output]\nsuffix = \"json\"\n")
	if _, err := loadProjectConfig(badSuffix); err == nil {
		t.Error("expected error for suffix without leading dot")
	}

	badJobs := write("bad_jobs.toml", "[recover]\njobs = -1\n")
	if _, err := loadProjectConfig(badJobs); err == nil {
		t.Error("expected error for negative jobs")
	}
}
