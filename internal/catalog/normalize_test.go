package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmap/pkg/models"
)

func TestNormalizeDefaults(t *testing.T) {
	// a completely empty volume must still yield a fully renderable book
	b := Normalize(models.Volume{})

	assert.Equal(t, "Untitled", b.Title)
	assert.Equal(t, "Unknown", b.Authors)
	assert.Equal(t, "", b.Description)
	assert.Equal(t, PlaceholderCover, b.Cover)
	assert.Equal(t, "", b.PreviewLink)
	assert.Nil(t, b.Rating)
}

func TestNormalizeFullVolume(t *testing.T) {
	rating := 4.5
	v := models.Volume{
		ID: "abc123",
		VolumeInfo: models.VolumeInfo{
			Title:         "Dune",
			Authors:       []string{"Frank Herbert", "Someone Else"},
			Description:   "A desert planet.",
			PublishedDate: "1965-08-01",
			AverageRating: &rating,
			ImageLinks:    models.ImageLinks{Thumbnail: "http://books.example/cover.jpg"},
			PreviewLink:   "https://books.example/preview",
		},
		AccessInfo: models.AccessInfo{WebReaderLink: "https://books.example/reader"},
	}

	b := Normalize(v)
	assert.Equal(t, "abc123", b.ID)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "Frank Herbert, Someone Else", b.Authors)
	assert.Equal(t, "A desert planet.", b.Description)
	// thumbnail gets upgraded to https
	assert.Equal(t, "https://books.example/cover.jpg", b.Cover)
	// the web reader link wins over the preview link
	assert.Equal(t, "https://books.example/reader", b.PreviewLink)
	assert.Equal(t, "1965-08-01", b.PublishedDate)
	require.NotNil(t, b.Rating)
	assert.Equal(t, 4.5, *b.Rating)
}

func TestNormalizeCoverPreference(t *testing.T) {
	v := models.Volume{VolumeInfo: models.VolumeInfo{
		ImageLinks: models.ImageLinks{
			Thumbnail:  "https://img/thumb",
			Medium:     "https://img/medium",
			ExtraLarge: "https://img/xl",
		},
	}}
	assert.Equal(t, "https://img/xl", Normalize(v).Cover)

	v.VolumeInfo.ImageLinks.ExtraLarge = ""
	assert.Equal(t, "https://img/medium", Normalize(v).Cover)
}

func TestNormalizeSubtitleFallback(t *testing.T) {
	v := models.Volume{VolumeInfo: models.VolumeInfo{
		Title:    "Short",
		Subtitle: "A Subtitle",
	}}
	assert.Equal(t, "A Subtitle", Normalize(v).Description)
}

func TestNormalizePreviewFallbackChain(t *testing.T) {
	v := models.Volume{VolumeInfo: models.VolumeInfo{
		PreviewLink: "https://books.example/preview",
		InfoLink:    "https://books.example/info",
	}}
	assert.Equal(t, "https://books.example/preview", Normalize(v).PreviewLink)

	v.VolumeInfo.PreviewLink = ""
	assert.Equal(t, "https://books.example/info", Normalize(v).PreviewLink)
}

func TestNormalizeIdempotent(t *testing.T) {
	// re-normalizing a normalized book's projection must be stable
	first := Normalize(models.Volume{VolumeInfo: models.VolumeInfo{
		Title:   "Dune",
		Authors: []string{"Frank Herbert"},
		ImageLinks: models.ImageLinks{
			Thumbnail: "http://books.example/cover.jpg",
		},
	}})

	again := Normalize(models.Volume{VolumeInfo: models.VolumeInfo{
		Title:      first.Title,
		Authors:    []string{first.Authors},
		ImageLinks: models.ImageLinks{Thumbnail: first.Cover},
	}})

	assert.Equal(t, first.Title, again.Title)
	assert.Equal(t, first.Authors, again.Authors)
	assert.Equal(t, first.Cover, again.Cover)
	assert.True(t, strings.HasPrefix(again.Cover, "https://"))
}
