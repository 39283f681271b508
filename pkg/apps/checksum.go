package apps

import (
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// DirChecksum hashes every regular file under root, skipping the .git
// directory. Paths are hashed relative to root so the digest survives moves.
func DirChecksum(root string) (string, error) {
	h := blake3.New()
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		h.WriteString(filepath.ToSlash(rel))
		h.Write([]byte{0})
		h.Write(data)
		h.Write([]byte{0})
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
