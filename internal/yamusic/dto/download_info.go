package dto

import (
	"github.com/handiism/yamusic-downloader/internal/model"
)

// JSONDownloadInfo is one rendition entry from /tracks/{id}/download-info.
type JSONDownloadInfo struct {
	Codec           string `json:"codec"`
	BitrateInKbps   int    `json:"bitrateInKbps"`
	Gain            bool   `json:"gain"`
	Preview         bool   `json:"preview"`
	DownloadInfoURL string `json:"downloadInfoUrl"`
	Direct          bool   `json:"direct"`
}

// DownloadInfoResponse envelopes /tracks/{id}/download-info.
type DownloadInfoResponse struct {
	Result []JSONDownloadInfo `json:"result"`
}

// ToEncoding converts the wire entry to a model.Encoding. The descriptor
// URL travels along as the opaque handle used later to resolve the actual
// byte stream.
func (di *JSONDownloadInfo) ToEncoding() model.Encoding {
	return model.Encoding{
		Format:      model.ParseFormat(di.Codec),
		BitrateKbps: di.BitrateInKbps,
		InfoURL:     di.DownloadInfoURL,
	}
}

// DownloadDescriptor is the XML document served at a rendition's
// downloadInfoUrl. Its fields are combined into the final direct URL.
type DownloadDescriptor struct {
	Host string `xml:"host"`
	Path string `xml:"path"`
	TS   string `xml:"ts"`
	S    string `xml:"s"`
}
