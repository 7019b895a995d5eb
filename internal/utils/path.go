package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppDirName is the directory name used under the platform config dir.
const AppDirName = "songserve"

// PathResolver finds dataset files relative to the places a user is likely to keep them
type PathResolver struct {
	executableDir string
	workingDir    string
	configDir     string
}

// NewPathResolver determines the executable location, the working dir and the config dir
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not determine working directory: %v", err)
		cwd = "."
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		workingDir:    cwd,
		configDir:     platformConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, cwd=%s, configDir=%s",
		pr.executableDir, pr.workingDir, pr.configDir)
	return pr, nil
}

// platformConfigDir returns the appropriate config directory for the platform
func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppDirName)
		}
		return filepath.Join(homeDir, ".config", AppDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppDirName)
	default:
		return filepath.Join(homeDir, ".config", AppDirName)
	}
}

// GetDataFile resolves a dataset path. Candidates, in order:
// 1. the path itself when absolute
// 2. relative to the working directory
// 3. relative to the executable directory
// 4. inside the config directory
func (pr *PathResolver) GetDataFile(userPath string) (string, error) {
	if userPath == "" {
		return "", fmt.Errorf("no dataset path given")
	}
	for _, path := range pr.dataFileCandidates(userPath) {
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			log.Debugf("Found dataset file: %s", path)
			return path, nil
		}
		log.Debugf("Dataset candidate not found: %s", path)
	}
	return "", fmt.Errorf("dataset %s: %w", userPath, os.ErrNotExist)
}

func (pr *PathResolver) dataFileCandidates(userPath string) []string {
	if filepath.IsAbs(userPath) {
		return []string{userPath}
	}
	return []string{
		filepath.Join(pr.workingDir, userPath),
		filepath.Join(pr.executableDir, userPath),
		filepath.Join(pr.configDir, userPath),
	}
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}
