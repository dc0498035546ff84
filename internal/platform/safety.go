package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// devDirName is the namespace of sandboxed data directories.
const devDirName = "ideastash-dev"

// IsDevRun reports whether the process is running via `go run` or `go test`.
// Both build their binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveDataDir applies the sandbox rule: with forceTemp the directory is
// re-rooted under <tmp>/ideastash-dev/<base>, unless it already lives in
// the temp directory.
func ResolveDataDir(dir string, forceTemp bool) string {
	if !forceTemp {
		return dir
	}

	clean := filepath.Clean(dir)
	if rel, err := filepath.Rel(os.TempDir(), clean); err == nil && !strings.HasPrefix(rel, "..") {
		return clean
	}

	name := filepath.Base(clean)
	if dir == "" || name == "." || name == string(os.PathSeparator) {
		name = "default"
	}
	return filepath.Join(os.TempDir(), devDirName, name)
}
