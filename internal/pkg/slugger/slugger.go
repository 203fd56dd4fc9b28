// Package slugger derives URL-safe identifiers from post titles.
package slugger

import "github.com/gosimple/slug"

// Make returns the lowercase, transliterated slug for a title.
func Make(title string) string {
	return slug.Make(title)
}
