package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_DeriveProfile(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"simple", "https://api.example.org/profiles/story", "story"},
		{"trailing slash", "https://api.example.org/profiles/story/", "story"},
		{"deep path", "https://api.example.org/v2/profiles/audio", "audio"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{ProfileHref: tt.href}
			assert.Equal(t, tt.want, doc.DeriveProfile())
		})
	}
}

func TestDocument_Attr(t *testing.T) {
	doc := Document{Attributes: map[string]AttrValue{
		"title": ScalarValue("hello"),
	}}

	v, ok := doc.Attr("title")
	require.True(t, ok)
	assert.Equal(t, ScalarValue("hello"), v)

	_, ok = doc.Attr("missing")
	assert.False(t, ok)
}

func TestDocument_Window(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	doc := Document{Attributes: map[string]AttrValue{
		AttrValid: WindowValue{From: &from},
	}}

	w, ok := doc.Window()
	require.True(t, ok)
	assert.Equal(t, from, *w.From)
	assert.Nil(t, w.To)
}

func TestDocument_WindowWrongKind(t *testing.T) {
	doc := Document{Attributes: map[string]AttrValue{
		AttrValid: ScalarValue("not a window"),
	}}

	_, ok := doc.Window()
	assert.False(t, ok)
}

func TestDocument_Valid(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	after := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		from *time.Time
		to   *time.Time
		want bool
	}{
		{"inside window", &before, &after, true},
		{"expired", &before, &before, false},
		{"not yet started", &after, nil, false},
		{"open upper bound", &before, nil, true},
		{"open lower bound", nil, &after, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{Attributes: map[string]AttrValue{
				AttrValid: WindowValue{From: tt.from, To: tt.to},
			}}
			assert.Equal(t, tt.want, doc.Valid(now))
		})
	}
}

func TestDocument_ValidWithoutWindow(t *testing.T) {
	doc := Document{}
	assert.True(t, doc.Valid(time.Now()))
}
