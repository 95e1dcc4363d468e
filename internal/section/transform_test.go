package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwood-studio/marquee/internal/errors"
)

func TestRegistry_KnowsAllVariants(t *testing.T) {
	registry := NewRegistry()

	for _, typ := range Types() {
		assert.True(t, registry.Known(typ), "variant %s should be registered", typ)
	}
	assert.False(t, registry.Known("bannerSection"))
}

func TestRegistry_UnknownTypeIsTypedError(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Transform(RawRecord{"_type": "bannerSection", "_key": "a"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidSectionData(err))
}

func TestTransform_WrongTypeTagRejected(t *testing.T) {
	registry := NewRegistry()

	// A cards payload labeled as a header still dispatches to the header
	// transformer by tag, so cross-check with the transformer directly.
	_, err := transformCards(RawRecord{"_type": "headerSection", "cards": []interface{}{}})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidSectionData(err))

	// And through the registry an intact tag with a broken shape fails too.
	_, err = registry.Transform(RawRecord{"_type": "cardsSection", "_key": "x"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidSectionData(err))
}

func TestTransformHeader_Minimal(t *testing.T) {
	registry := NewRegistry()

	out, err := registry.Transform(RawRecord{
		"_type": "headerSection",
		"_key":  "h1",
	})
	require.NoError(t, err)

	header, ok := out.(HeaderSection)
	require.True(t, ok)
	assert.Equal(t, "h1", header.SectionKey())
	assert.Equal(t, TypeHeader, header.SectionType())
	assert.Empty(t, header.Title)
	assert.Empty(t, header.Subtitle)
	assert.Empty(t, header.CTA.URL)
}

func TestTransform_TitleResolution(t *testing.T) {
	tests := []struct {
		name         string
		title        string
		displayTitle string
		want         string
	}{
		{"display title wins", "Raw", "Display", "Display"},
		{"empty display title falls back", "Raw", "", "Raw"},
		{"both absent", "", "", ""},
	}

	registry := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawRecord{"_type": "headerSection", "_key": "k"}
			if tt.title != "" {
				raw["title"] = tt.title
			}
			if tt.displayTitle != "" {
				raw["displayTitle"] = tt.displayTitle
			}

			out, err := registry.Transform(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.(HeaderSection).Title)
		})
	}
}

func TestTransform_BackgroundPalette(t *testing.T) {
	registry := NewRegistry()

	out, err := registry.Transform(RawRecord{
		"_type":      "headerSection",
		"background": "gradient",
	})
	require.NoError(t, err)
	assert.Equal(t, BackgroundGradient, out.(HeaderSection).Background)

	// Off-palette tokens normalize to absent rather than failing.
	out, err = registry.Transform(RawRecord{
		"_type":      "headerSection",
		"background": "chartreuse",
	})
	require.NoError(t, err)
	assert.Equal(t, Background(""), out.(HeaderSection).Background)
}

func TestTransformCards_CollectionsNeverNil(t *testing.T) {
	out, err := transformCards(RawRecord{
		"_type": "cardsSection",
		"cards": []interface{}{},
	})
	require.NoError(t, err)

	cards := out.(CardsSection)
	assert.NotNil(t, cards.Cards)
	assert.Len(t, cards.Cards, 0)
}

func TestTransformCards_RequiresArray(t *testing.T) {
	_, err := transformCards(RawRecord{"_type": "cardsSection"})
	assert.True(t, errors.IsInvalidSectionData(err))

	_, err = transformCards(RawRecord{"_type": "cardsSection", "cards": "nope"})
	assert.True(t, errors.IsInvalidSectionData(err))
}

func TestTransformCards_Entries(t *testing.T) {
	out, err := transformCards(RawRecord{
		"_type":      "cardsSection",
		"_key":       "c1",
		"title":      "Features",
		"showBorder": true,
		"cards": []interface{}{
			map[string]interface{}{"_key": "a", "title": "Fast", "body": "Really fast"},
			map[string]interface{}{"_key": "b", "title": "Simple"},
		},
	})
	require.NoError(t, err)

	cards := out.(CardsSection)
	assert.True(t, cards.Border)
	require.Len(t, cards.Cards, 2)
	assert.Equal(t, "Fast", cards.Cards[0].Title)
	assert.Equal(t, "Really fast", cards.Cards[0].Body)
	assert.Empty(t, cards.Cards[1].Body)
}

func TestTransformCalendar_Settings(t *testing.T) {
	out, err := transformCalendar(RawRecord{
		"_type": "calendarSection",
		"_key":  "cal",
		"settings": map[string]interface{}{
			"initialDate": "2026-09-01",
			"disabledDates": map[string]interface{}{
				"daysOfWeek": []interface{}{float64(0), float64(6)},
				"dates":      []interface{}{"2026-09-15"},
				"ranges": []interface{}{
					map[string]interface{}{"start": "2026-12-24", "end": "2026-12-31"},
				},
				"before": "2026-09-01",
			},
		},
	})
	require.NoError(t, err)

	cal := out.(CalendarSection)
	assert.Equal(t, "2026-09-01", cal.Settings.InitialDate.Format("2006-01-02"))
	require.NotNil(t, cal.Settings.DisabledDates)
	assert.Equal(t, []int{0, 6}, cal.Settings.DisabledDates.DaysOfWeek)
	require.Len(t, cal.Settings.DisabledDates.Ranges, 1)
}

func TestTransformCalendar_SettingsWrongKind(t *testing.T) {
	_, err := transformCalendar(RawRecord{
		"_type":    "calendarSection",
		"settings": "tomorrow",
	})
	assert.True(t, errors.IsInvalidSectionData(err))
}

func TestTransformCalendar_MalformedDateIsZeroNotError(t *testing.T) {
	// Malformed date strings pass through as the zero sentinel; they are
	// not a validation failure.
	out, err := transformCalendar(RawRecord{
		"_type": "calendarSection",
		"settings": map[string]interface{}{
			"initialDate": "not-a-date",
		},
	})
	require.NoError(t, err)
	assert.True(t, out.(CalendarSection).Settings.InitialDate.IsZero())
}

func TestTransformPricing(t *testing.T) {
	out, err := transformPricing(RawRecord{
		"_type": "pricingSection",
		"tiers": []interface{}{
			map[string]interface{}{
				"_key": "t1", "name": "Starter", "price": "$9",
				"interval": "month",
				"features": []interface{}{"One site", "", "Email support"},
			},
			map[string]interface{}{
				"_key": "t2", "name": "Pro", "price": "$29", "highlighted": true,
			},
		},
	})
	require.NoError(t, err)

	pricing := out.(PricingSection)
	require.Len(t, pricing.Tiers, 2)
	// Empty-string features are dropped, and the collection is never nil.
	assert.Equal(t, []string{"One site", "Email support"}, pricing.Tiers[0].Features)
	assert.NotNil(t, pricing.Tiers[1].Features)
	assert.True(t, pricing.Tiers[1].Highlighted)
}

func TestTransformTimeline_Steps(t *testing.T) {
	out, err := transformTimeline(RawRecord{
		"_type": "timelineSection",
		"steps": []interface{}{
			map[string]interface{}{"_key": "s1", "title": "Kickoff", "date": "2026-01-10"},
			map[string]interface{}{"_key": "s2", "title": "Launch"},
		},
	})
	require.NoError(t, err)

	timeline := out.(TimelineSection)
	require.Len(t, timeline.Steps, 2)
	assert.Equal(t, "Kickoff", timeline.Steps[0].Title)
	assert.False(t, timeline.Steps[0].Date.IsZero())
	assert.True(t, timeline.Steps[1].Date.IsZero())
}

func TestTransformForm_OptionalFields(t *testing.T) {
	out, err := transformForm(RawRecord{
		"_type":  "formSection",
		"formId": "contact",
	})
	require.NoError(t, err)

	form := out.(FormSection)
	assert.Equal(t, "contact", form.FormID)
	assert.NotNil(t, form.Fields)
	assert.Len(t, form.Fields, 0)
}

func TestTransformFAQ_RichTextAnswers(t *testing.T) {
	out, err := transformFAQ(RawRecord{
		"_type": "faqSection",
		"items": []interface{}{
			map[string]interface{}{
				"_key":     "q1",
				"question": "Is there a trial?",
				"answer": []interface{}{
					map[string]interface{}{
						"children": []interface{}{
							map[string]interface{}{"text": "Yes, "},
							map[string]interface{}{"text": "14 days."},
						},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	faq := out.(FAQSection)
	require.Len(t, faq.Items, 1)
	assert.Equal(t, "Yes, 14 days.", faq.Items[0].Answer)
}

func TestTransform_DescriptionString(t *testing.T) {
	out, err := transformContent(RawRecord{
		"_type":       "contentSection",
		"description": "plain text",
		"body":        "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "plain text", out.(ContentSection).Description)
	assert.Equal(t, "hello", out.(ContentSection).Body)
}

func TestTransform_Idempotent(t *testing.T) {
	registry := NewRegistry()
	raw := RawRecord{
		"_type": "testimonialSection",
		"_key":  "t",
		"quotes": []interface{}{
			map[string]interface{}{"_key": "q", "quote": "Great", "author": "Sam"},
		},
	}

	first, err := registry.Transform(raw)
	require.NoError(t, err)
	second, err := registry.Transform(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTransformBlog_Limit(t *testing.T) {
	out, err := transformBlog(RawRecord{
		"_type":    "blogSection",
		"category": "engineering",
		"limit":    float64(6),
	})
	require.NoError(t, err)

	blog := out.(BlogSection)
	assert.Equal(t, "engineering", blog.Category)
	assert.Equal(t, 6, blog.Limit)
}

func TestTransformBlog_NegativeLimitMeansNoCap(t *testing.T) {
	out, err := transformBlog(RawRecord{
		"_type": "blogSection",
		"limit": float64(-3),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.(BlogSection).Limit)
}

func TestTransformFeatured_BorderAliases(t *testing.T) {
	out, err := transformFeatured(RawRecord{
		"_type":  "featuredSection",
		"border": true,
		"items":  []interface{}{},
	})
	require.NoError(t, err)
	assert.True(t, out.(FeaturedSection).Border)
}
