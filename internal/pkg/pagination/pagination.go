package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Query holds parsed pagination parameters.
type Query struct {
	Page  int
	Limit int
}

// Cursor points at an adjacent page.
type Cursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Meta carries next/prev cursors; either is omitted when absent.
type Meta struct {
	Next *Cursor `json:"next,omitempty"`
	Prev *Cursor `json:"prev,omitempty"`
}

// FromContext extracts pagination params from the request. Non-numeric or
// negative values fall back to the defaults.
func FromContext(c *gin.Context) Query {
	return Parse(c.Query("page"), c.Query("limit"))
}

// Parse builds a Query from raw page/limit strings.
func Parse(page, limit string) Query {
	q := Query{
		Page:  parseIntOr(page, DefaultPage),
		Limit: parseIntOr(limit, DefaultLimit),
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

// Offset returns the number of rows to skip.
func (q Query) Offset() int { return (q.Page - 1) * q.Limit }

// BuildMeta computes next/prev cursors against the total matching rows.
func BuildMeta(q Query, total int64) Meta {
	var meta Meta
	if int64(q.Page*q.Limit) < total {
		meta.Next = &Cursor{Page: q.Page + 1, Limit: q.Limit}
	}
	if q.Offset() > 0 {
		meta.Prev = &Cursor{Page: q.Page - 1, Limit: q.Limit}
	}
	return meta
}

func parseIntOr(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
