//go:build windows

package jre

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const javaBinaryName = "java.exe"

func platformInstallRoots() []string {
	var roots []string
	for _, pf := range programFilesDirs() {
		roots = append(roots,
			filepath.Join(pf, "Java"),
			filepath.Join(pf, "Eclipse Adoptium"),
			filepath.Join(pf, "Microsoft"),
			filepath.Join(pf, "Zulu"),
			filepath.Join(pf, "Amazon Corretto"),
		)
	}
	roots = append(roots, filepath.Join(xdg.DataHome, "launchkit", "runtimes"))
	return roots
}

func programFilesDirs() []string {
	var dirs []string
	for _, key := range []string{"ProgramFiles", "ProgramFiles(x86)"} {
		if v := os.Getenv(key); v != "" {
			dirs = append(dirs, v)
		}
	}
	return dirs
}

func platformBinaries() []string {
	return nil
}

func installBinary(installDir string) string {
	return filepath.Join(installDir, "bin", "java.exe")
}
