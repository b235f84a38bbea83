package session

import (
	"crypto/sha256"
	"encoding/hex"
)

// UploadKey identifies one upload: the file name plus a digest of its bytes.
//
// Two uploads with equal keys parse to the same table, so the session can
// reuse the parsed table instead of loading it again.
type UploadKey struct {
	Name   string
	Digest string
}

// NewUploadKey computes the key of an upload.
//
// Parameters:
//   - name: File name as uploaded
//   - data: File contents
//
// Returns:
//   - UploadKey: Name and hex-encoded SHA-256 of data
func NewUploadKey(name string, data []byte) UploadKey {
	sum := sha256.Sum256(data)
	return UploadKey{Name: name, Digest: hex.EncodeToString(sum[:])}
}

// IsZero reports whether the key is unset.
func (k UploadKey) IsZero() bool {
	return k == UploadKey{}
}

// String renders the key as "name@digest-prefix".
func (k UploadKey) String() string {
	if k.IsZero() {
		return ""
	}
	d := k.Digest
	if len(d) > 12 {
		d = d[:12]
	}
	return k.Name + "@" + d
}
