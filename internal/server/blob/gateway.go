// Package blob abstracts the external object store that holds audio and
// photo binaries. Records in the database only keep the returned references.
package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/keepsake/internal/common"
	"github.com/dmitrijs2005/keepsake/internal/server/models"
)

// Kind is the declared media kind of an uploaded blob. Storage placement is
// classified from the declared kind only, never from sniffed content.
type Kind string

const (
	KindAudio Kind = "audio"
	KindImage Kind = "image"
)

// Prefix returns the object-store folder for the kind.
func (k Kind) Prefix() (string, error) {
	switch k {
	case KindAudio:
		return "audio", nil
	case KindImage:
		return "images", nil
	default:
		return "", fmt.Errorf("%w: unknown media kind %q", common.ErrStorageRejected, string(k))
	}
}

// KindFromContentType maps a MIME type to a Kind by its major type.
// Unsupported types are rejected.
func KindFromContentType(contentType string) (Kind, error) {
	switch {
	case strings.HasPrefix(contentType, "audio/"):
		return KindAudio, nil
	case strings.HasPrefix(contentType, "image/"):
		return KindImage, nil
	default:
		return "", fmt.Errorf("%w: unsupported content type %q", common.ErrStorageRejected, contentType)
	}
}

// Gateway stores and removes media blobs in the external object store.
//
// Remove must be idempotent: removing a key that no longer exists is not an
// error the caller has to care about.
type Gateway interface {
	Store(ctx context.Context, r io.Reader, kind Kind, contentType string) (models.BlobRef, error)
	Remove(ctx context.Context, key string, kind Kind) error
}
