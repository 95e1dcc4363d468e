// Package section implements the content composition core: the closed set of
// recognized section variants, the per-variant transformers that turn raw
// author-supplied records into strict rendering models, and the disabled-date
// combinator used by the calendar variant.
//
// A raw record arrives from the content store as an untyped map keyed by the
// CMS field names. Transformation is strict about structure (_type must match,
// required container fields must be the right kind) and lenient about optional
// scalars (absent and empty string both normalize to the zero value, so the
// render layer can use simple presence checks).
package section

import "time"

// Type is the discriminant identifying which section shape a record is.
type Type string

// The closed set of recognized section variants. Adding a variant means
// adding a constant here, a transformer in transform.go, and a registry
// entry in NewRegistry.
const (
	TypeHeader      Type = "headerSection"
	TypeContent     Type = "contentSection"
	TypeCards       Type = "cardsSection"
	TypeCalendar    Type = "calendarSection"
	TypePricing     Type = "pricingSection"
	TypeTestimonial Type = "testimonialSection"
	TypeTimeline    Type = "timelineSection"
	TypeForm        Type = "formSection"
	TypeBlog        Type = "blogSection"
	TypeFAQ         Type = "faqSection"
	TypeFeatured    Type = "featuredSection"
)

// Types returns all recognized variant tags in a stable order.
func Types() []Type {
	return []Type{
		TypeHeader,
		TypeContent,
		TypeCards,
		TypeCalendar,
		TypePricing,
		TypeTestimonial,
		TypeTimeline,
		TypeForm,
		TypeBlog,
		TypeFAQ,
		TypeFeatured,
	}
}

// Background is one of the fixed palette of background tokens an author may
// assign to a section. The empty string means no background was chosen.
type Background string

const (
	BackgroundWhite    Background = "white"
	BackgroundLight    Background = "light"
	BackgroundDark     Background = "dark"
	BackgroundAccent   Background = "accent"
	BackgroundMuted    Background = "muted"
	BackgroundGradient Background = "gradient"
)

// ValidBackground reports whether b is one of the palette tokens.
func ValidBackground(b Background) bool {
	switch b {
	case BackgroundWhite, BackgroundLight, BackgroundDark,
		BackgroundAccent, BackgroundMuted, BackgroundGradient:
		return true
	}
	return false
}

// RawRecord is an untyped content record as returned by the content store.
type RawRecord map[string]interface{}

// Section is the interface implemented by every normalized section model.
type Section interface {
	// SectionKey returns the section's stable identity within a page.
	SectionKey() string
	// SectionType returns the variant tag.
	SectionType() Type
}

// Base carries the fields common to every section variant. Title is already
// resolved: when the record has a non-empty displayTitle it wins over title.
type Base struct {
	Key         string
	ID          string
	Type        Type
	Title       string
	Background  Background
	Border      bool
	Description string
}

// SectionKey implements Section.
func (b Base) SectionKey() string { return b.Key }

// SectionType implements Section.
func (b Base) SectionType() Type { return b.Type }

// Link is a label/URL pair used by calls to action.
type Link struct {
	Label string
	URL   string
}

// HeaderSection is the page-top hero block.
type HeaderSection struct {
	Base
	Subtitle string
	ImageURL string
	CTA      Link
}

// ContentSection is a free-form rich text block.
type ContentSection struct {
	Base
	Body    string
	Columns int
}

// Card is one entry of a cards section.
type Card struct {
	Key   string
	Title string
	Body  string
	Icon  string
	URL   string
}

// CardsSection renders a grid of cards.
type CardsSection struct {
	Base
	Cards []Card
}

// CalendarSettings carries the booking-calendar configuration. InitialDate
// and any parsed date may be the zero time when the stored string did not
// parse; the render layer treats zero as "not set".
type CalendarSettings struct {
	InitialDate   time.Time
	DisabledDates *DisabledDatesConfig
}

// CalendarSection renders the booking calendar.
type CalendarSection struct {
	Base
	Settings CalendarSettings
}

// PricingTier is one column of a pricing section.
type PricingTier struct {
	Key         string
	Name        string
	Price       string
	Interval    string
	Features    []string
	Highlighted bool
}

// PricingSection renders the pricing table.
type PricingSection struct {
	Base
	Tiers []PricingTier
}

// Quote is one entry of a testimonial section.
type Quote struct {
	Key    string
	Text   string
	Author string
	Role   string
	Avatar string
}

// TestimonialSection renders customer quotes.
type TestimonialSection struct {
	Base
	Quotes []Quote
}

// TimelineStep is one entry of a timeline section.
type TimelineStep struct {
	Key         string
	Title       string
	Description string
	Date        time.Time
}

// TimelineSection renders an ordered sequence of steps.
type TimelineSection struct {
	Base
	Steps []TimelineStep
}

// FormField describes one input of a form section.
type FormField struct {
	Key         string
	Name        string
	Label       string
	Kind        string
	Required    bool
	Placeholder string
}

// FormSection renders a contact or signup form. Submission goes to an
// external delivery service; this model only shapes the markup.
type FormSection struct {
	Base
	FormID         string
	SubmitLabel    string
	SuccessMessage string
	Fields         []FormField
}

// BlogSection renders a listing of recent posts, optionally filtered by
// category and capped at Limit entries (0 means no cap).
type BlogSection struct {
	Base
	Category string
	Limit    int
}

// FAQItem is one question/answer pair.
type FAQItem struct {
	Key      string
	Question string
	Answer   string
}

// FAQSection renders a question list.
type FAQSection struct {
	Base
	Items []FAQItem
}

// FeaturedItem is one entry of a featured section.
type FeaturedItem struct {
	Key      string
	Title    string
	Subtitle string
	ImageURL string
	URL      string
}

// FeaturedSection renders highlighted items.
type FeaturedSection struct {
	Base
	Items []FeaturedItem
}
