// Package search filters a catalog snapshot with a conjunctive multi-field
// token match.
package search

import (
	"strings"

	"github.com/yhkl-dev/navistream/domain"
	"github.com/yhkl-dev/navistream/textnorm"
)

// stopWords are dropped from queries before matching.
var stopWords = map[string]struct{}{
	"on":  {},
	"the": {},
	"in":  {},
	"of":  {},
	"and": {},
	"or":  {},
	"a":   {},
}

// Search returns the tracks of catalog matching query, in catalog order.
// Every query token must be a substring of at least one of the title,
// artist, album or album artist. A query without tokens matches everything.
func Search(catalog []domain.Track, query string) []domain.Track {
	tokens := Tokenize(query)
	result := make([]domain.Track, 0)
	for _, track := range catalog {
		if matches(fields(track), tokens) {
			result = append(result, track)
		}
	}
	return result
}

// Tokenize splits query on whitespace, drops stop words and normalizes the
// remaining tokens. Tokens left empty by normalization are dropped too.
func Tokenize(query string) []string {
	var tokens []string
	for _, word := range strings.Fields(query) {
		if _, stop := stopWords[strings.ToLower(word)]; stop {
			continue
		}
		if tok := normalize(word); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func matches(fields [4]string, tokens []string) bool {
	for _, tok := range tokens {
		found := false
		for _, f := range fields {
			if strings.Contains(f, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func fields(t domain.Track) [4]string {
	return [4]string{
		normalize(t.Title),
		normalize(t.Artist),
		normalize(t.Album),
		normalize(t.AlbumArtist),
	}
}

func normalize(s string) string {
	return textnorm.Letters(textnorm.StripAccents(s))
}
