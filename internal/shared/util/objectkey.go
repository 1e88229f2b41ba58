package util

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

const maxStoredNameLen = 100

var ErrInvalidFileName = errors.New("invalid file name")

// ObjectKey returns "<sha256(owner)>/<uuid>_<name>" for an artifact body.
// Raw owner ids never appear in keys, and every call yields a distinct key.
func ObjectKey(ownerID, fileName string) (string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return "", errors.New("owner id is required")
	}
	name, err := storedName(fileName)
	if err != nil {
		return "", err
	}
	return path.Join(ownerDir(ownerID), uuid.NewString()+"_"+name), nil
}

func ownerDir(ownerID string) string {
	sum := sha256.Sum256([]byte(ownerID))
	return hex.EncodeToString(sum[:])
}

// storedName flattens separators, rejects traversal and caps the length
// while keeping the extension.
func storedName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" || strings.Contains(s, "..") {
		return "", ErrInvalidFileName
	}
	s = strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(s)
	if len(s) > maxStoredNameLen {
		ext := path.Ext(s)
		if len(ext) > 10 {
			ext = ""
		}
		s = s[:maxStoredNameLen-len(ext)] + ext
	}
	return s, nil
}
