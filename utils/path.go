package utils

import (
	"os"
	"path/filepath"
)

// DefaultGraphPath returns the -graph destination to use when the flag was
// left empty: the analyzed program's basename with its extension replaced
// by ".svg", in the current working directory. Mirrors the teacher's
// MakePath fallback-to-a-sensible-default idiom.
func DefaultGraphPath(programPath string) string {
	base := filepath.Base(programPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	if name == "" {
		name = "analysis"
	}
	wd, err := os.Getwd()
	if err != nil {
		return name + ".svg"
	}
	return filepath.Join(wd, name+".svg")
}
