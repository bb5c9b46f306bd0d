package media

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaURL(t *testing.T) {
	b := NewURLBuilder("portfolio-media", "ap-south-1")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"projects/cover.png", "https://portfolio-media.s3.ap-south-1.amazonaws.com/projects/cover.png"},
		{"/projects/cover.png", "https://portfolio-media.s3.ap-south-1.amazonaws.com/projects/cover.png"},
		{"https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"http://example.com/a.png", "http://example.com/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, b.MediaURL(tt.in))
		})
	}
}

func TestMediaURL_NoBucket(t *testing.T) {
	b := NewURLBuilder("", "")
	assert.Equal(t, "projects/a.png", b.MediaURL("projects/a.png"))
	assert.Nil(t, b.MediaURLPtr(nil))
}

func TestKeyFromURL(t *testing.T) {
	assert.Equal(t, "projects/cover.png", KeyFromURL("https://b.s3.us-east-1.amazonaws.com/projects/cover.png"))
	assert.Equal(t, "projects/cover.png", KeyFromURL("projects/cover.png"))
}

func TestGenerateKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	key := GenerateKey("Projects", "My Cover Photo.PNG", now)
	assert.True(t, strings.HasPrefix(key, "projects/my-cover-photo-1700000000123-"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)

	assert.NotEqual(t, key, GenerateKey("Projects", "My Cover Photo.PNG", now))
}

func TestGenerateKey_Hostile(t *testing.T) {
	key := GenerateKey("../../etc", `..\..\passwd`, time.UnixMilli(1))
	assert.NotContains(t, key, "..")
	assert.True(t, strings.HasPrefix(key, "etc/passwd-1-"), key)

	key = GenerateKey("", ".env", time.UnixMilli(1))
	assert.True(t, strings.HasPrefix(key, "file-1-"), key)
}

func TestPresigner_UploadURL(t *testing.T) {
	client := s3.NewFromConfig(aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	})
	p := newPresigner("portfolio-media", client)

	raw, err := p.UploadURL(context.Background(), "projects/a.png", "image/png", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/projects/a.png", u.Path)
	assert.Contains(t, u.Host, "portfolio-media")
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestNewPresigner_NotConfigured(t *testing.T) {
	_, err := NewPresigner(context.Background(), Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
