// Package youtube is the toggleable video-posting module.
package youtube

import (
	"regexp"
	"strings"
)

var watchIDPattern = regexp.MustCompile(`v=([\w-]+)`)

// ExtractVideoID pulls the video ID out of the common YouTube URL forms
// (youtu.be short links and youtube.com watch links). Empty result means the
// link is not recognized.
func ExtractVideoID(link string) string {
	if idx := strings.Index(link, "youtu.be/"); idx >= 0 {
		id := link[idx+len("youtu.be/"):]
		if q := strings.IndexByte(id, '?'); q >= 0 {
			id = id[:q]
		}
		return id
	}
	if strings.Contains(link, "youtube.com") {
		if m := watchIDPattern.FindStringSubmatch(link); m != nil {
			return m[1]
		}
	}
	return ""
}

// ThumbnailURL returns the standard high-quality thumbnail for a video.
func ThumbnailURL(videoID string) string {
	return "https://i.ytimg.com/vi/" + videoID + "/hqdefault.jpg"
}
