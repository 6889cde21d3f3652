package server

import (
	"path/filepath"
	"strings"
)

// mediaKind classifies an upload for limit selection.
type mediaKind int

const (
	mediaUnknown mediaKind = iota
	mediaVideo
	mediaAudio
)

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true,
	".webm": true, ".wmv": true, ".flv": true, ".m4v": true,
}

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".flac": true, ".aac": true,
	".ogg": true, ".m4a": true, ".wma": true, ".opus": true,
}

// classifyMedia checks the declared content type first and the filename
// extension second. Browsers report unreliable types for some containers, so
// the extension alone is enough to accept a file.
func classifyMedia(filename, contentType string) mediaKind {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if strings.HasPrefix(contentType, "video/") {
		return mediaVideo
	}
	if strings.HasPrefix(contentType, "audio/") {
		return mediaAudio
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if videoExtensions[ext] {
		return mediaVideo
	}
	if audioExtensions[ext] {
		return mediaAudio
	}
	return mediaUnknown
}
