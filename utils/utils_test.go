package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "aqeedah-essentials", Slugify("Aqeedah Essentials"))
	assert.Equal(t, "tasawwuf-101", Slugify("  Tasawwuf 101! "))
	assert.Equal(t, "dhikr-and-dua", Slugify("Dhikr & Dua"))

	// Urdu titles carry no Latin letters; the slug must still be usable
	urdu := Slugify("تصوف کی بنیادیں")
	assert.NotEmpty(t, urdu)
	assert.Len(t, urdu, 8)

	// fallback slugs are random, so equal titles do not collide
	assert.NotEqual(t, Slugify("تصوف"), Slugify("تصوف"))
}
