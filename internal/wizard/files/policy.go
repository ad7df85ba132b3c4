// Package files gates documents entering the wizard: a fixed MIME/size policy
// plus the in-memory registry that owns uploaded bytes and their preview
// references for the lifetime of a session.
package files

import (
	"path/filepath"
	"strings"
)

// MaxFileSize is the inclusive upper bound for uploads: 5 MiB.
const MaxFileSize = 5 * 1024 * 1024

const (
	// MessageInvalidType is reported for any declared MIME type outside the
	// accepted set. Type is checked before size, so a file violating both
	// rules reports this message.
	MessageInvalidType = "Only PDF, JPG, and PNG files are allowed"
	// MessageTooLarge is reported when size exceeds MaxFileSize.
	MessageTooLarge = "File size must be less than 5MB"
)

// acceptedTypes lists the declared MIME types the policy accepts. The check is
// advisory: content is not sniffed, so a renamed file with a spoofed declared
// type will pass.
var acceptedTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
}

// acceptedExtensions mirrors the file input's accept list at the UI boundary.
var acceptedExtensions = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Result is the outcome of a policy check.
type Result struct {
	Valid   bool
	Message string
}

// Check validates a candidate file's declared MIME type and byte size against
// the fixed policy. It is pure and has no side effects.
func Check(mimeType string, size int64) Result {
	if _, ok := acceptedTypes[mimeType]; !ok {
		return Result{Valid: false, Message: MessageInvalidType}
	}
	if size > MaxFileSize {
		return Result{Valid: false, Message: MessageTooLarge}
	}
	return Result{Valid: true}
}

// AllowedExtension reports whether the filename carries one of the accepted
// extensions. This runs at the upload boundary in addition to Check.
func AllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := acceptedExtensions[ext]
	return ok
}
