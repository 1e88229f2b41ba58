package util

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// SniffContentType returns declared when set. Otherwise it peeks at the first
// 512 bytes and returns a reader that still yields the full body.
func SniffContentType(r io.Reader, declared string) (io.Reader, string, error) {
	if ct := strings.TrimSpace(declared); ct != "" {
		return r, ct, nil
	}
	var sniff [512]byte
	n, err := io.ReadFull(r, sniff[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, "", fmt.Errorf("read sniff: %w", err)
	}
	head := append([]byte(nil), sniff[:n]...)
	return io.MultiReader(bytes.NewReader(head), r), http.DetectContentType(head), nil
}
