package database

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// FileHashSHA256 returns the hex-encoded sha256 of a file's content.
func FileHashSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", ErrDatabase.MsgErr("could not open file for hashing", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", ErrDatabase.MsgErr("could not hash "+path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
