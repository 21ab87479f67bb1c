// Package metadata extracts container tags and embedded artwork from audio
// files. Extraction is best-effort: a file without readable tags yields an
// empty snapshot, never an error.
package metadata

import (
	"os"
	"strconv"
	"time"

	"github.com/dhowden/tag"
)

// Meta is an immutable metadata snapshot captured once at open time.
type Meta struct {
	Fields  map[string]string
	Artwork []byte
}

// Get returns the value of a metadata field, or the empty string when the
// field is absent.
func (m *Meta) Get(key string) string {
	if m == nil || m.Fields == nil {
		return ""
	}
	return m.Fields[key]
}

// Read reads the tag metadata and embedded artwork of an audio file.
// Unreadable or absent tags degrade to an empty snapshot.
func Read(path string) *Meta {
	meta := &Meta{Fields: map[string]string{}}

	f, err := os.Open(path)
	if err != nil {
		return meta
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return meta
	}

	setField(meta.Fields, "title", m.Title())
	setField(meta.Fields, "artist", m.Artist())
	setField(meta.Fields, "albumartist", m.AlbumArtist())
	setField(meta.Fields, "album", m.Album())
	setField(meta.Fields, "composer", m.Composer())
	setField(meta.Fields, "genre", m.Genre())
	setField(meta.Fields, "comment", m.Comment())
	if year := m.Year(); year != 0 {
		meta.Fields["date"] = strconv.Itoa(year)
	}
	if track, _ := m.Track(); track != 0 {
		meta.Fields["track"] = strconv.Itoa(track)
	}
	if disc, _ := m.Disc(); disc != 0 {
		meta.Fields["disc"] = strconv.Itoa(disc)
	}

	meta.Artwork = extractArtwork(m)

	return meta
}

// extractArtwork returns the embedded picture, trying the typed accessor
// first and falling back to a scan of the raw frame map. Returns nil when
// the file carries no artwork.
func extractArtwork(m tag.Metadata) []byte {
	if pic := m.Picture(); pic != nil && len(pic.Data) > 0 {
		return pic.Data
	}
	for _, v := range m.Raw() {
		if pic, ok := v.(*tag.Picture); ok && len(pic.Data) > 0 {
			return pic.Data
		}
	}
	return nil
}

// EstimateBitrate estimates the average bitrate in bits per second from
// container size and decoded duration. The tagging library cannot report
// bitrate, so this approximation feeds the derived bit-depth property.
// Degrades to 0 when the duration is unknown.
func EstimateBitrate(path string, duration time.Duration) int {
	if duration <= 0 {
		return 0
	}
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return int(float64(fi.Size()*8) / duration.Seconds())
}

func setField(fields map[string]string, key, value string) {
	if value != "" {
		fields[key] = value
	}
}
