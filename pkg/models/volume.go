package models

// Volume mirrors one item of the catalog search response. Only the fields
// the normalizer reads are declared; everything else is ignored on decode.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
	AccessInfo AccessInfo `json:"accessInfo"`
}

type VolumeInfo struct {
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Authors       []string   `json:"authors"`
	Description   string     `json:"description"`
	PublishedDate string     `json:"publishedDate"`
	AverageRating *float64   `json:"averageRating"`
	ImageLinks    ImageLinks `json:"imageLinks"`
	PreviewLink   string     `json:"previewLink"`
	InfoLink      string     `json:"infoLink"`
}

type ImageLinks struct {
	Thumbnail  string `json:"thumbnail"`
	Medium     string `json:"medium"`
	Large      string `json:"large"`
	ExtraLarge string `json:"extraLarge"`
}

type AccessInfo struct {
	WebReaderLink string `json:"webReaderLink"`
}

// VolumeList is the top-level search response envelope.
type VolumeList struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}
