package models

type ImageKind string

const (
	ImageKindInline ImageKind = "inline"
	ImageKindURL    ImageKind = "url"
)

// ImageRef is either inline base64 data with its media type or a URL.
// Only the fields of the selected Kind are set.
type ImageRef struct {
	Kind      ImageKind
	Data      string
	MediaType string
	URL       string
}

// Image resolves the request's image fields into a single reference.
// Inline data needs both the payload and its media type. When both inline
// data and a URL are present the inline image wins. Returns nil when the
// request carries no usable image.
func (r DiagnosisRequest) Image() *ImageRef {
	if r.ImageBase64 != "" && r.ImageMediaType != "" {
		return &ImageRef{
			Kind:      ImageKindInline,
			Data:      r.ImageBase64,
			MediaType: r.ImageMediaType,
		}
	}

	if r.ImageURL != "" {
		return &ImageRef{
			Kind: ImageKindURL,
			URL:  r.ImageURL,
		}
	}

	return nil
}

// HasConflictingImages reports whether both image variants were sent.
func (r DiagnosisRequest) HasConflictingImages() bool {
	return r.ImageBase64 != "" && r.ImageMediaType != "" && r.ImageURL != ""
}
