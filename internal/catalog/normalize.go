package catalog

import (
	"strings"

	"bookmap/pkg/models"
)

// PlaceholderCover is used whenever a volume carries no usable image link.
const PlaceholderCover = "https://via.placeholder.com/240x360?text=No+Cover"

// Normalize maps one raw catalog volume into a canonical Book. It never
// fails: any missing or malformed field degrades to its default, so the
// renderers can interpolate every field without guards. Feeding a Book's
// own projection back through is stable.
func Normalize(v models.Volume) models.Book {
	info := v.VolumeInfo

	title := strings.TrimSpace(info.Title)
	if title == "" {
		title = "Untitled"
	}

	authors := "Unknown"
	if len(info.Authors) > 0 {
		authors = strings.Join(info.Authors, ", ")
	}

	desc := info.Description
	if desc == "" {
		desc = info.Subtitle
	}

	preview := v.AccessInfo.WebReaderLink
	if preview == "" {
		preview = info.PreviewLink
	}
	if preview == "" {
		preview = info.InfoLink
	}

	return models.Book{
		ID:            v.ID,
		Title:         title,
		Authors:       authors,
		Description:   desc,
		Cover:         pickCover(info.ImageLinks),
		PreviewLink:   preview,
		PublishedDate: info.PublishedDate,
		Rating:        info.AverageRating,
	}
}

// pickCover prefers the largest available image and always yields an
// https URL. Catalog thumbnails are served over plain http.
func pickCover(links models.ImageLinks) string {
	cover := links.ExtraLarge
	if cover == "" {
		cover = links.Large
	}
	if cover == "" {
		cover = links.Medium
	}
	if cover == "" {
		cover = links.Thumbnail
	}
	if cover == "" {
		return PlaceholderCover
	}
	return strings.Replace(cover, "http:", "https:", 1)
}
