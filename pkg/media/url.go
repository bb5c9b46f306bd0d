// Package media maps stored S3 object keys to public URLs and issues presigned uploads.
package media

import (
	"fmt"
	"net/url"
	"strings"
)

// URLBuilder expands relative object keys into virtual-hosted S3 URLs.
type URLBuilder struct {
	bucket string
	region string
}

func NewURLBuilder(bucket, region string) *URLBuilder {
	if region == "" {
		region = "us-east-1"
	}
	return &URLBuilder{bucket: bucket, region: region}
}

// MediaURL leaves absolute http(s) URLs alone and returns "" for "".
func (b *URLBuilder) MediaURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if b == nil || b.bucket == "" {
		return path
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.bucket, b.region, strings.TrimPrefix(path, "/"))
}

// MediaURLPtr is MediaURL for optional fields.
func (b *URLBuilder) MediaURLPtr(path *string) *string {
	if path == nil {
		return nil
	}
	u := b.MediaURL(*path)
	return &u
}

// KeyFromURL returns the object key of an S3 URL, or the input unchanged.
func KeyFromURL(raw string) string {
	if !strings.Contains(raw, "amazonaws.com") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return strings.TrimPrefix(u.Path, "/")
}
