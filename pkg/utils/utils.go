package utils

import "os"

func GetDefaultOutputDir() string {
	tmpDir, err := os.MkdirTemp("", "sheetslice-cards-*")
	if err != nil {
		// If we can't create a temp directory, fall back to local directory
		return "sheetslice-cards"
	}
	return tmpDir
}
