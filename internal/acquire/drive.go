package acquire

import (
	"net/url"
	"strings"
)

// ExtractGoogleDriveFileID pulls the file ID out of the common Google Drive
// link shapes: /file/d/<id>/..., /uc?id=<id>, /open?id=<id> and
// ?export=download&id=<id>.
func ExtractGoogleDriveFileID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if !strings.Contains(parsed.Host, "drive.google.") {
		return "", false
	}

	parts := make([]string, 0, 4)
	for _, p := range strings.Split(parsed.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) >= 3 && parts[0] == "file" && parts[1] == "d" {
		return parts[2], true
	}

	q := parsed.Query()
	if id := q.Get("id"); id != "" {
		return id, true
	}
	return "", false
}

// DirectDownloadURL builds the direct-download form of a Drive file link.
func DirectDownloadURL(fileID string) string {
	return "https://drive.google.com/uc?export=download&id=" + fileID
}

// NormalizeURL converts recognized share links into direct-download URLs.
// Unrecognized hosts (Yandex.Disk included) pass through unchanged; whether
// they resolve to a direct download is the remote host's business.
func NormalizeURL(raw string) string {
	if id, ok := ExtractGoogleDriveFileID(raw); ok {
		return DirectDownloadURL(id)
	}
	return strings.TrimSpace(raw)
}
