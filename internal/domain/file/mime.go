package file

import "strings"

const defaultMimeType = "application/octet-stream"

var mimeTypes = map[string]string{
	"7z":    "application/x-7z-compressed",
	"aac":   "audio/aac",
	"apng":  "image/apng",
	"avi":   "video/x-msvideo",
	"avif":  "image/avif",
	"bmp":   "image/bmp",
	"bz2":   "application/x-bzip2",
	"c":     "text/plain",
	"cpp":   "text/plain",
	"cs":    "text/plain",
	"css":   "text/css",
	"csv":   "text/csv",
	"doc":   "application/msword",
	"docx":  "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"epub":  "application/epub+zip",
	"flac":  "audio/flac",
	"gif":   "image/gif",
	"go":    "text/plain",
	"gz":    "application/gzip",
	"htm":   "text/html",
	"html":  "text/html",
	"ico":   "image/x-icon",
	"ini":   "text/plain",
	"jar":   "application/java-archive",
	"jpeg":  "image/jpeg",
	"jpg":   "image/jpeg",
	"js":    "text/javascript",
	"json":  "application/json",
	"log":   "text/plain",
	"m4a":   "audio/mp4",
	"md":    "text/markdown",
	"mid":   "audio/midi",
	"midi":  "audio/midi",
	"mkv":   "video/x-matroska",
	"mov":   "video/quicktime",
	"mp3":   "audio/mpeg",
	"mp4":   "video/mp4",
	"mpeg":  "video/mpeg",
	"odp":   "application/vnd.oasis.opendocument.presentation",
	"ods":   "application/vnd.oasis.opendocument.spreadsheet",
	"odt":   "application/vnd.oasis.opendocument.text",
	"oga":   "audio/ogg",
	"ogg":   "audio/ogg",
	"ogv":   "video/ogg",
	"opus":  "audio/opus",
	"otf":   "font/otf",
	"pdf":   "application/pdf",
	"png":   "image/png",
	"ppt":   "application/vnd.ms-powerpoint",
	"pptx":  "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"py":    "text/plain",
	"rar":   "application/vnd.rar",
	"rtf":   "application/rtf",
	"sh":    "text/plain",
	"svg":   "image/svg+xml",
	"tar":   "application/x-tar",
	"tif":   "image/tiff",
	"tiff":  "image/tiff",
	"ttf":   "font/ttf",
	"txt":   "text/plain",
	"wav":   "audio/wav",
	"weba":  "audio/webm",
	"webm":  "video/webm",
	"webp":  "image/webp",
	"woff":  "font/woff",
	"woff2": "font/woff2",
	"xls":   "application/vnd.ms-excel",
	"xlsx":  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"xml":   "application/xml",
	"yaml":  "text/yaml",
	"yml":   "text/yaml",
	"zip":   "application/zip",
}

// MimeType maps a file extension (with or without the leading dot) to a content type.
func MimeType(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if t, ok := mimeTypes[ext]; ok {
		return t
	}

	return defaultMimeType
}
