package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/nomxml/pkg/config"
)

// noEnv is an environment with no variables set.
func noEnv(string) (string, bool) { return "", false }

// fakeEnv returns a lookup backed by vars.
func fakeEnv(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := vars[key]
		return value, ok
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		LookupEnv:          noEnv,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	if result.Config.Mode != config.ModeFile {
		t.Errorf("expected mode %q, got %q", config.ModeFile, result.Config.Mode)
	}
	if result.Config.Charset != config.DefaultCharset {
		t.Errorf("expected charset %q, got %q", config.DefaultCharset, result.Config.Charset)
	}
	if result.Config.Indent != config.DefaultIndent {
		t.Errorf("expected indent %d, got %d", config.DefaultIndent, result.Config.Indent)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".nomdump.yml", `
mode: memory
charset: windows-1252
jobs: 2
detect: true
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Mode != config.ModeMemory {
		t.Errorf("expected mode %q, got %q", config.ModeMemory, result.Config.Mode)
	}
	if result.Config.Charset != "windows-1252" {
		t.Errorf("expected charset windows-1252, got %q", result.Config.Charset)
	}
	if result.Config.Jobs != 2 {
		t.Errorf("expected jobs 2, got %d", result.Config.Jobs)
	}
	if !result.Config.DetectEnabled() {
		t.Error("expected detect to be enabled")
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("unset format should keep default, got %q", result.Config.Format)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigFoundUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, ".nomdump.yml", "format: summary\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolatedOptions(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatSummary {
		t.Errorf("expected format summary, got %q", result.Config.Format)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, ".nomdump.yml", "format: summary\n")

	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at the repository root, found %q", path)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".nomdump.yml", "mode: memory\nindent: 2\n")
	customPath := writeConfig(t, tmpDir, "custom.yml", "mode: interface\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Mode != config.ModeInterface {
		t.Errorf("expected explicit mode to win, got %q", result.Config.Mode)
	}
	if result.Config.Indent != 2 {
		t.Errorf("expected project indent to survive, got %d", result.Config.Indent)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("expected explicit config loaded last, got %v", result.LoadedFrom)
	}
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".nomdump.yml", "mode: memory\njobs: 2\n")

	opts := isolatedOptions(tmpDir)
	opts.LookupEnv = fakeEnv(map[string]string{
		"NOMDUMP_MODE":            "interface",
		"NOMDUMP_IGNORE":          "vendor/**, build/**",
		"NOMDUMP_DETECT":          "1",
		"NOMDUMP_EXTENSIONS":      ".xml,.svg",
		"NOMDUMP_FOLLOW_SYMLINKS": "true",
	})

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Mode != config.ModeInterface {
		t.Errorf("expected env mode, got %q", result.Config.Mode)
	}
	if result.Config.Jobs != 2 {
		t.Errorf("expected file jobs to survive, got %d", result.Config.Jobs)
	}
	if strings.Join(result.Config.Ignore, "|") != "vendor/**|build/**" {
		t.Errorf("unexpected ignore list %v", result.Config.Ignore)
	}
	if strings.Join(result.Config.Extensions, "|") != ".xml|.svg" {
		t.Errorf("unexpected extensions %v", result.Config.Extensions)
	}
	if !result.Config.DetectEnabled() {
		t.Error("expected detect from env")
	}
	if !result.Config.FollowSymlinks {
		t.Error("expected follow_symlinks from env")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t.TempDir())
	opts.LookupEnv = fakeEnv(map[string]string{"NOMDUMP_JOBS": "many"})

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "NOMDUMP_JOBS") {
		t.Fatalf("expected error naming NOMDUMP_JOBS, got %v", err)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".nomdump.yml", "format: json\njobs: 2\ndetect: true\n")

	detect := false
	opts := isolatedOptions(tmpDir)
	opts.LookupEnv = fakeEnv(map[string]string{"NOMDUMP_JOBS": "4"})
	opts.CLIConfig = &config.Config{
		Format: config.FormatSummary,
		Jobs:   8,
		Detect: &detect,
		Output: "report.txt",
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatSummary {
		t.Errorf("expected format summary (CLI override), got %q", result.Config.Format)
	}
	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}
	if result.Config.DetectEnabled() {
		t.Error("expected CLI to switch detection off")
	}
	if result.Config.Output != "report.txt" {
		t.Errorf("expected output from CLI, got %q", result.Config.Output)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "unknown mode", content: "mode: mmap\n", field: "mode"},
		{name: "multi-byte charset", content: "charset: UTF-8\n", field: "charset"},
		{name: "unknown charset", content: "charset: klingon\n", field: "charset"},
		{name: "negative jobs", content: "jobs: -1\n", field: "jobs"},
		{name: "huge indent", content: "indent: 99\n", field: "indent"},
		{name: "bad glob", content: "ignore: [\"[\"]\n", field: "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, ".nomdump.yml", tt.content)

			_, err := Load(context.Background(), isolatedOptions(tmpDir))
			if err == nil {
				t.Fatal("expected validation error")
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if validationErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, validationErr.Field)
			}
		})
	}
}

func TestLoad_UnknownKeyFails(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := writeConfig(t, tmpDir, ".nomdump.yml", "flavor: gfm\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected error to name %s, got %v", path, err)
	}
}

func TestLoad_StrictTurnsWarningsIntoErrors(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".nomdump.yml", "extensions: [xml]\n")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", result.Warnings)
	}

	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{Strict: true}
	_, err = Load(context.Background(), opts)
	if !errors.Is(err, ErrStrictWarnings) {
		t.Fatalf("expected ErrStrictWarnings, got %v", err)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(t.TempDir()))
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	detectOn := true
	merged := MergeAll(
		config.NewConfig(),
		&config.Config{Mode: config.ModeMemory, Detect: &detectOn},
		&config.Config{Ignore: []string{"a/**"}},
		nil,
	)

	if merged.Mode != config.ModeMemory {
		t.Errorf("expected mode memory, got %q", merged.Mode)
	}
	if !merged.DetectEnabled() {
		t.Error("expected detect on")
	}
	if len(merged.Ignore) != 1 {
		t.Errorf("expected ignore to be replaced, got %v", merged.Ignore)
	}
	if merged.Charset != config.DefaultCharset {
		t.Errorf("expected default charset to survive, got %q", merged.Charset)
	}

	if MergeAll() != nil {
		t.Error("expected nil for no configs")
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if len(vars) != len(envVars) {
		t.Fatalf("expected %d vars, got %d", len(envVars), len(vars))
	}
	for i := 1; i < len(vars); i++ {
		if vars[i-1].Name >= vars[i].Name {
			t.Errorf("vars not sorted: %q before %q", vars[i-1].Name, vars[i].Name)
		}
	}

	found := false
	for _, v := range vars {
		if v.Name == "NOMDUMP_CHARSET" && v.Description != "" {
			found = true
		}
	}
	if !found {
		t.Errorf("NOMDUMP_CHARSET missing from %v", vars)
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := splitList(" .xml, ,.svg ,")
	if len(got) != 2 || got[0] != ".xml" || got[1] != ".svg" {
		t.Errorf("splitList = %q", got)
	}
	if splitList("") != nil {
		t.Error("expected nil for an empty value")
	}
}

func TestLoad_ProjectJSONConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".nomdump.json", `{"mode": "memory", "indent": 2}`)

	result, err := Load(context.Background(), isolatedOptions(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Mode != config.ModeMemory {
		t.Errorf("expected mode memory, got %q", result.Config.Mode)
	}
	if result.Config.Indent != 2 {
		t.Errorf("expected indent 2, got %d", result.Config.Indent)
	}
}
