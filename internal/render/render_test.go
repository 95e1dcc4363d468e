package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwood-studio/marquee/internal/composer"
	"github.com/driftwood-studio/marquee/internal/section"
)

func renderToString(t *testing.T, rs composer.RenderableSection) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Section(rs).Render(context.Background(), &buf))
	return buf.String()
}

func TestSection_CommonAttributes(t *testing.T) {
	out := renderToString(t, composer.RenderableSection{
		Key: "hero",
		Section: section.HeaderSection{
			Base: section.Base{
				Key:        "hero",
				Type:       section.TypeHeader,
				Title:      "Build faster",
				Background: section.BackgroundDark,
				Border:     true,
			},
		},
	})

	assert.Contains(t, out, `data-key="hero"`)
	assert.Contains(t, out, "section-headerSection")
	assert.Contains(t, out, "bg-dark")
	assert.Contains(t, out, "bordered")
	assert.Contains(t, out, "<h2>Build faster</h2>")
}

func TestSection_EscapesAuthorContent(t *testing.T) {
	out := renderToString(t, composer.RenderableSection{
		Key: "x",
		Section: section.ContentSection{
			Base: section.Base{Type: section.TypeContent},
			Body: `<script>alert(1)</script>`,
		},
	})

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestSection_AttributeValuesKeptVerbatim(t *testing.T) {
	out := renderToString(t, composer.RenderableSection{
		Key: `a\b"c`,
		Section: section.FormSection{
			Base:   section.Base{Type: section.TypeForm},
			FormID: `contact\v1`,
		},
	})

	// Backslashes pass through untouched; only HTML metacharacters are
	// entity-encoded.
	assert.Contains(t, out, `data-key="a\b&#34;c"`)
	assert.Contains(t, out, `data-form-id="contact\v1"`)
	assert.NotContains(t, out, `\\`)
}

func TestPage_SectionsInOrder(t *testing.T) {
	page := &composer.Page{
		Title: "Home",
		Sections: []composer.RenderableSection{
			{Key: "a", Section: section.HeaderSection{Base: section.Base{Type: section.TypeHeader, Title: "First"}}},
			{Key: "b", Section: section.ContentSection{Base: section.Base{Type: section.TypeContent}, Body: "Second"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Page(page).Render(context.Background(), &buf))
	out := buf.String()

	assert.Less(t, bytes.Index(buf.Bytes(), []byte("First")),
		bytes.Index(buf.Bytes(), []byte("Second")))
	assert.Contains(t, out, "<title>Home</title>")
}

func TestSection_FAQDetails(t *testing.T) {
	out := renderToString(t, composer.RenderableSection{
		Key: "faq",
		Section: section.FAQSection{
			Base:  section.Base{Type: section.TypeFAQ},
			Items: []section.FAQItem{{Question: "Why?", Answer: "Because."}},
		},
	})

	assert.Contains(t, out, "<summary>Why?</summary>")
	assert.Contains(t, out, "Because.")
}

func TestExcerpt_StripsMarkup(t *testing.T) {
	out := Excerpt(`<p>Hello <strong>world</strong>, this is <a href="/x">fine</a>.</p>`, 0)
	assert.Equal(t, "Hello world , this is fine .", out)
}

func TestExcerpt_CapsAtWordBoundary(t *testing.T) {
	assert.Equal(t, "one two three…", Excerpt("one two three four five", 13))
	assert.Equal(t, "one two…", Excerpt("one two three four five", 11))
}

func TestExcerpt_ShortInputUntouched(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 100))
}
