package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Defaults(t *testing.T) {
	q := Parse("", "")
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
}

func TestParse_IgnoresGarbage(t *testing.T) {
	q := Parse("abc", "-3")
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)

	q = Parse("0", "0")
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Query{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 5, Query{Page: 2, Limit: 5}.Offset())
}

func TestBuildMeta_MiddlePage(t *testing.T) {
	meta := BuildMeta(Query{Page: 2, Limit: 5}, 12)

	assert.Equal(t, &Cursor{Page: 3, Limit: 5}, meta.Next)
	assert.Equal(t, &Cursor{Page: 1, Limit: 5}, meta.Prev)
}

func TestBuildMeta_FirstPage(t *testing.T) {
	meta := BuildMeta(Query{Page: 1, Limit: 10}, 25)

	assert.Equal(t, &Cursor{Page: 2, Limit: 10}, meta.Next)
	assert.Nil(t, meta.Prev)
}

func TestBuildMeta_LastPage(t *testing.T) {
	meta := BuildMeta(Query{Page: 3, Limit: 5}, 12)

	assert.Nil(t, meta.Next)
	assert.Equal(t, &Cursor{Page: 2, Limit: 5}, meta.Prev)
}

func TestBuildMeta_SinglePage(t *testing.T) {
	meta := BuildMeta(Query{Page: 1, Limit: 10}, 4)

	assert.Nil(t, meta.Next)
	assert.Nil(t, meta.Prev)
}
