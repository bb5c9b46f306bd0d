package media

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateKey builds "<folder>/<name>-<unixms>-<random>.<ext>" from an uploaded file name.
func GenerateKey(folder, fileName string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(fileName, `\`, "/"))
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(base), "."))
	name := strings.TrimSuffix(base, path.Ext(base))

	name = strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if name == "" {
		name = "file"
	}
	ext = unsafeChars.ReplaceAllString(ext, "")

	key := fmt.Sprintf("%s-%d-%s", name, now.UnixMilli(), uuid.NewString()[:8])
	if ext != "" {
		key += "." + ext
	}
	if folder = SanitizeFolder(folder); folder != "" {
		key = folder + "/" + key
	}
	return key
}

// SanitizeFolder lowercases each segment and strips anything that could escape the prefix.
func SanitizeFolder(folder string) string {
	var parts []string
	for _, seg := range strings.Split(folder, "/") {
		seg = strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(seg), "-"), "-")
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "/")
}
