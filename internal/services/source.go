package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"beanmart/internal/common"

	"github.com/gabriel-vasile/mimetype"
)

// ImageSource is the tagged union of the three ingestion modes. Exactly one
// variant is constructed at the request boundary; everything downstream
// switches on the type instead of probing for field presence.
type ImageSource interface {
	sourceKind() string
}

// SourceFile is an attached binary upload.
type SourceFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// SourceURL is a remote image to download.
type SourceURL struct {
	URL string
}

// SourceBase64 is a pasted data URI.
type SourceBase64 struct {
	Data string
}

func (SourceFile) sourceKind() string   { return "file" }
func (SourceURL) sourceKind() string    { return "url" }
func (SourceBase64) sourceKind() string { return "base64" }

// ResolvedSource is the normalized output of source resolution: raw bytes
// plus the declared content type and a filename to derive the storage key
// extension from.
type ResolvedSource struct {
	Data        []byte
	ContentType string
	Filename    string
}

var dataURIPattern = regexp.MustCompile(`^data:image\/(\w+);base64,([a-zA-Z0-9+/=]+)$`)

// extensionContentTypes maps URL file extensions to MIME types for responses
// that arrive with a generic or absent content type.
var extensionContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
}

// SourceResolver normalizes any ImageSource to a raw byte buffer. URL-mode
// resolution performs the one outbound network call of the pipeline.
type SourceResolver struct {
	fetcher *RemoteFetcher
}

func NewSourceResolver(fetcher *RemoteFetcher) *SourceResolver {
	return &SourceResolver{fetcher: fetcher}
}

func (r *SourceResolver) Resolve(ctx context.Context, source ImageSource) (*ResolvedSource, error) {
	switch src := source.(type) {
	case SourceFile:
		return r.resolveFile(src)
	case SourceURL:
		return r.resolveURL(ctx, src)
	case SourceBase64:
		return r.resolveBase64(src)
	default:
		return nil, fmt.Errorf("%w: no file, url or image data provided", common.ErrInvalidInput)
	}
}

func (r *SourceResolver) resolveFile(src SourceFile) (*ResolvedSource, error) {
	if len(src.Data) == 0 {
		return nil, fmt.Errorf("%w: uploaded file is empty", common.ErrInvalidInput)
	}
	contentType := src.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(src.Data).String()
	}
	return &ResolvedSource{
		Data:        src.Data,
		ContentType: contentType,
		Filename:    src.Filename,
	}, nil
}

func (r *SourceResolver) resolveURL(ctx context.Context, src SourceURL) (*ResolvedSource, error) {
	parsed, err := url.Parse(src.URL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: malformed image URL", common.ErrInvalidInput)
	}

	data, contentType, err := r.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFromURL(parsed.Path)
		if contentType == "application/octet-stream" {
			if detected := mimetype.Detect(data); strings.HasPrefix(detected.String(), "image/") {
				contentType = detected.String()
			}
		}
	}

	filename := path.Base(parsed.Path)
	if filename == "." || filename == "/" || filename == "" {
		filename = "downloaded-image"
	}
	return &ResolvedSource{
		Data:        data,
		ContentType: contentType,
		Filename:    filename,
	}, nil
}

func (r *SourceResolver) resolveBase64(src SourceBase64) (*ResolvedSource, error) {
	matches := dataURIPattern.FindStringSubmatch(src.Data)
	if matches == nil {
		return nil, fmt.Errorf("%w: image data must be a base64 data URI of the form data:image/<type>;base64,<payload>", common.ErrInvalidInput)
	}
	subtype := matches[1]

	data, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 payload", common.ErrInvalidInput)
	}

	return &ResolvedSource{
		Data:        data,
		ContentType: "image/" + subtype,
		Filename:    "pasted-image." + subtype,
	}, nil
}

func contentTypeFromURL(urlPath string) string {
	ext := strings.ToLower(path.Ext(urlPath))
	if ct, ok := extensionContentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
