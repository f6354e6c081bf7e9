//go:build darwin

package jre

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const javaBinaryName = "java"

func platformInstallRoots() []string {
	roots := []string{
		"/Library/Java/JavaVirtualMachines",
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots,
			filepath.Join(home, "Library", "Java", "JavaVirtualMachines"),
			filepath.Join(home, ".sdkman", "candidates", "java"),
		)
	}
	roots = append(roots, filepath.Join(xdg.DataHome, "launchkit", "runtimes"))
	return roots
}

func platformBinaries() []string {
	return []string{"/usr/bin/java"}
}

// installBinary maps one installation bundle to its runtime binary.
// macOS JDK bundles nest the home directory under Contents/Home.
func installBinary(installDir string) string {
	bundled := filepath.Join(installDir, "Contents", "Home", "bin", "java")
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}
	return filepath.Join(installDir, "bin", "java")
}
