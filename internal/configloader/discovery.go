package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

const appName = "nomdump"

// ConfigPaths lists the configuration files found for one run. An empty
// field means no file exists at that layer.
type ConfigPaths struct {
	System   string // /etc/nomdump/config.yaml or %ProgramData%\nomdump
	User     string // $XDG_CONFIG_HOME/nomdump/config.yaml
	Project  string // nearest .nomdump.yml above the working directory
	Explicit string // --config
}

// projectNames are searched in order in each directory walked upward.
// JSON is a YAML subset, so .nomdump.json goes through the same decoder.
//
//nolint:gochecknoglobals // read-only lookup table
var projectNames = []string{
	".nomdump.yml",
	".nomdump.yaml",
	".nomdump.json",
	"nomdump.yml",
	"nomdump.yaml",
}

// layerNames are the file names looked for in the system and user directories.
//
//nolint:gochecknoglobals // read-only lookup table
var layerNames = []string{"config.yaml", "config.yml"}

// ProjectConfigName is the file name written by "nomdump init".
func ProjectConfigName() string {
	return projectNames[0]
}

// DiscoverPaths locates the system, user and project configuration files
// that apply to workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerNames),
		User:    firstFile(userConfigDir(), layerNames),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, appName)
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// FindProjectConfig walks upward from startDir and returns the first project
// config file it meets, or "" when there is none. The walk ends after a
// directory holding .git, .hg or .svn, at the home directory, or at the
// filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := absWorkDir(startDir)
	if err != nil {
		return "", err
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if found := firstFile(dir, projectNames); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isRepoRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func absWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func isRepoRoot(dir string) bool {
	return slices.ContainsFunc([]string{".git", ".hg", ".svn"}, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
