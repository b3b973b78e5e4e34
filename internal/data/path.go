package data

import (
	"os"
	"path/filepath"
	"runtime"
)

/*

Where templates live on disk.

The data directory is the platform's per-user application data directory plus a fixed
subdirectory. Nothing here touches the filesystem; callers decide when to create it.

*/

const (
	AppDirName   = "template_editor"
	DataFileName = "templates.json"
	SQLFileName  = "templates.db"
)

// Env is the slice of the host environment that path resolution depends on
type Env struct {
	GOOS    string
	Getenv  func(string) string
	HomeDir func() (string, error)
}

// HostEnv returns the environment of the running process
func HostEnv() Env {
	return Env{
		GOOS:    runtime.GOOS,
		Getenv:  os.Getenv,
		HomeDir: os.UserHomeDir,
	}
}

// platformDataDir returns the per-user application data directory, or "" when the platform
// has no notion of one (sandboxed targets, missing home directory).
func (e Env) platformDataDir() string {
	switch e.GOOS {
	case "js", "wasip1", "ios", "android", "plan9":
		return ""
	case "windows":
		return e.getenv("APPDATA")
	case "darwin":
		home := e.home()
		if home == "" {
			return ""
		}
		return filepath.Join(home, "Library", "Application Support")
	default:
		// XDG: a relative value is treated as unset
		if dir := e.getenv("XDG_DATA_HOME"); filepath.IsAbs(dir) {
			return dir
		}
		home := e.home()
		if home == "" {
			return ""
		}
		return filepath.Join(home, ".local", "share")
	}
}

func (e Env) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

func (e Env) home() string {
	if e.HomeDir == nil {
		return ""
	}
	home, err := e.HomeDir()
	if err != nil || !filepath.IsAbs(home) {
		return ""
	}
	return home
}

// DataDirectory returns the directory templates are saved in. ok is false when no data
// directory can be determined, which means persistence is unavailable.
func DataDirectory(e Env) (dir string, ok bool) {
	base := e.platformDataDir()
	if base == "" {
		return "", false
	}
	return filepath.Join(base, AppDirName), true
}

// DataFile returns the path of the JSON document inside DataDirectory
func DataFile(e Env) (string, bool) {
	dir, ok := DataDirectory(e)
	if !ok {
		return "", false
	}
	return filepath.Join(dir, DataFileName), true
}
