package discovery

import "strings"

// moodQueries expands a mood pick into the keyword query sent to the
// catalog. Per-view differences are configuration here, not separate fetch
// implementations.
var moodQueries = map[string]string{
	"all":         "bestsellers OR popular fiction",
	"happy":       "happiness OR comedy OR uplifting OR feel-good",
	"sad":         "tragedy OR drama OR melancholy OR emotional",
	"adventurous": "adventure OR exploration OR fantasy OR quest",
	"motivated":   "motivation OR inspiration OR self-help OR success",
	"frustrated":  "overcoming challenges OR resilience OR frustration OR thriller",
}

// MoodQuery resolves a mood name to its keyword expansion. Unknown moods
// fall back to the default topic.
func MoodQuery(mood string) string {
	if q, ok := moodQueries[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return q
	}
	return ""
}

// GenreQuery resolves a genre pick; "all" and empty mean the default topic.
func GenreQuery(genre string) string {
	genre = strings.ToLower(strings.TrimSpace(genre))
	if genre == "" || genre == "all" {
		return ""
	}
	return genre
}
