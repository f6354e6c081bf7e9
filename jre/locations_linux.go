//go:build linux

package jre

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const javaBinaryName = "java"

// platformInstallRoots lists directories whose immediate subdirectories
// are treated as runtime installations. Stands in for the wildcard
// patterns distro packages and version managers use.
func platformInstallRoots() []string {
	roots := []string{
		"/usr/lib/jvm",
		"/usr/java",
		"/opt/java",
		"/opt/jdk",
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots,
			filepath.Join(home, ".jdks"),
			filepath.Join(home, ".sdkman", "candidates", "java"),
		)
	}
	// Runtimes installed by the launcher itself.
	roots = append(roots, filepath.Join(xdg.DataHome, "launchkit", "runtimes"))
	return roots
}

// platformBinaries lists explicit candidate binaries outside install roots.
func platformBinaries() []string {
	return []string{"/usr/bin/java"}
}

// installBinary maps one installation directory to its runtime binary.
func installBinary(installDir string) string {
	return filepath.Join(installDir, "bin", "java")
}
