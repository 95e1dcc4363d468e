// Package render is the boundary to the visual component library: pure
// functions from normalized section models to HTML, built as templ
// components so the server can stream them. Layout and styling live in the
// site's stylesheet; this package only emits structure.
package render

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/driftwood-studio/marquee/internal/composer"
	"github.com/driftwood-studio/marquee/internal/section"
)

// Page builds the component for a composed page. Sections render in the
// composed order.
func Page(p *composer.Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			"<!DOCTYPE html><html><head><title>%s</title></head><body>",
			html.EscapeString(p.Title)); err != nil {
			return err
		}
		for _, rs := range p.Sections {
			if err := Section(rs).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// Section builds the component for one renderable section.
func Section(rs composer.RenderableSection) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := openSection(w, rs); err != nil {
			return err
		}
		if err := renderBody(ctx, w, rs.Section); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</section>")
		return err
	})
}

// openSection emits the wrapper element with the common attributes derived
// from the section base: key, variant, background token, border flag.
func openSection(w io.Writer, rs composer.RenderableSection) error {
	base := sectionBase(rs.Section)

	class := "section section-" + string(base.Type)
	if base.Background != "" {
		class += " bg-" + string(base.Background)
	}
	if base.Border {
		class += " bordered"
	}

	if _, err := fmt.Fprintf(w, `<section data-key="%s" class="%s">`,
		html.EscapeString(rs.Key), class); err != nil {
		return err
	}
	if base.Title != "" {
		if _, err := fmt.Fprintf(w, "<h2>%s</h2>", html.EscapeString(base.Title)); err != nil {
			return err
		}
	}
	if base.Description != "" {
		if _, err := fmt.Fprintf(w, `<p class="description">%s</p>`,
			html.EscapeString(base.Description)); err != nil {
			return err
		}
	}
	return nil
}

func sectionBase(s section.Section) section.Base {
	switch v := s.(type) {
	case section.HeaderSection:
		return v.Base
	case section.ContentSection:
		return v.Base
	case section.CardsSection:
		return v.Base
	case section.CalendarSection:
		return v.Base
	case section.PricingSection:
		return v.Base
	case section.TestimonialSection:
		return v.Base
	case section.TimelineSection:
		return v.Base
	case section.FormSection:
		return v.Base
	case section.BlogSection:
		return v.Base
	case section.FAQSection:
		return v.Base
	case section.FeaturedSection:
		return v.Base
	}
	return section.Base{}
}

func renderBody(ctx context.Context, w io.Writer, s section.Section) error {
	switch v := s.(type) {
	case section.HeaderSection:
		return renderHeader(w, v)
	case section.ContentSection:
		return renderContent(w, v)
	case section.CardsSection:
		return renderCards(w, v)
	case section.CalendarSection:
		return renderCalendar(w, v)
	case section.PricingSection:
		return renderPricing(w, v)
	case section.TestimonialSection:
		return renderTestimonial(w, v)
	case section.TimelineSection:
		return renderTimeline(w, v)
	case section.FormSection:
		return renderForm(w, v)
	case section.BlogSection:
		return renderBlog(w, v)
	case section.FAQSection:
		return renderFAQ(w, v)
	case section.FeaturedSection:
		return renderFeatured(w, v)
	}
	return nil
}

func renderHeader(w io.Writer, s section.HeaderSection) error {
	if s.Subtitle != "" {
		if _, err := fmt.Fprintf(w, `<p class="subtitle">%s</p>`,
			html.EscapeString(s.Subtitle)); err != nil {
			return err
		}
	}
	if s.ImageURL != "" {
		if _, err := fmt.Fprintf(w, `<img src="%s" alt="">`,
			html.EscapeString(s.ImageURL)); err != nil {
			return err
		}
	}
	if s.CTA.URL != "" {
		if _, err := fmt.Fprintf(w, `<a class="cta" href="%s">%s</a>`,
			html.EscapeString(s.CTA.URL), html.EscapeString(s.CTA.Label)); err != nil {
			return err
		}
	}
	return nil
}

func renderContent(w io.Writer, s section.ContentSection) error {
	_, err := fmt.Fprintf(w, `<div class="body">%s</div>`,
		html.EscapeString(s.Body))
	return err
}

func renderCards(w io.Writer, s section.CardsSection) error {
	if _, err := io.WriteString(w, `<ul class="cards">`); err != nil {
		return err
	}
	for _, card := range s.Cards {
		if _, err := fmt.Fprintf(w, "<li><h3>%s</h3><p>%s</p></li>",
			html.EscapeString(card.Title),
			html.EscapeString(Excerpt(card.Body, 200))); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</ul>")
	return err
}

func renderCalendar(w io.Writer, s section.CalendarSection) error {
	initial := ""
	if !s.Settings.InitialDate.IsZero() {
		initial = s.Settings.InitialDate.Format("2006-01-02")
	}
	_, err := fmt.Fprintf(w, `<div class="calendar" data-initial-date="%s"></div>`,
		initial)
	return err
}

func renderPricing(w io.Writer, s section.PricingSection) error {
	if _, err := io.WriteString(w, `<div class="tiers">`); err != nil {
		return err
	}
	for _, tier := range s.Tiers {
		class := "tier"
		if tier.Highlighted {
			class += " highlighted"
		}
		if _, err := fmt.Fprintf(w, `<div class="%s"><h3>%s</h3><p>%s %s</p><ul>`,
			class, html.EscapeString(tier.Name),
			html.EscapeString(tier.Price), html.EscapeString(tier.Interval)); err != nil {
			return err
		}
		for _, feature := range tier.Features {
			if _, err := fmt.Fprintf(w, "<li>%s</li>", html.EscapeString(feature)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</ul></div>"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>")
	return err
}

func renderTestimonial(w io.Writer, s section.TestimonialSection) error {
	for _, quote := range s.Quotes {
		if _, err := fmt.Fprintf(w,
			"<blockquote><p>%s</p><footer>%s %s</footer></blockquote>",
			html.EscapeString(quote.Text),
			html.EscapeString(quote.Author),
			html.EscapeString(quote.Role)); err != nil {
			return err
		}
	}
	return nil
}

func renderTimeline(w io.Writer, s section.TimelineSection) error {
	if _, err := io.WriteString(w, `<ol class="timeline">`); err != nil {
		return err
	}
	for _, step := range s.Steps {
		if _, err := fmt.Fprintf(w, "<li><h3>%s</h3><p>%s</p></li>",
			html.EscapeString(step.Title),
			html.EscapeString(step.Description)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</ol>")
	return err
}

func renderForm(w io.Writer, s section.FormSection) error {
	if _, err := fmt.Fprintf(w, `<form data-form-id="%s">`,
		html.EscapeString(s.FormID)); err != nil {
		return err
	}
	for _, field := range s.Fields {
		if _, err := fmt.Fprintf(w,
			`<label>%s<input name="%s" type="%s" placeholder="%s"></label>`,
			html.EscapeString(field.Label),
			html.EscapeString(field.Name),
			html.EscapeString(field.Kind),
			html.EscapeString(field.Placeholder)); err != nil {
			return err
		}
	}
	label := s.SubmitLabel
	if label == "" {
		label = "Submit"
	}
	_, err := fmt.Fprintf(w, `<button type="submit">%s</button></form>`,
		html.EscapeString(label))
	return err
}

func renderBlog(w io.Writer, s section.BlogSection) error {
	_, err := fmt.Fprintf(w, `<div class="blog-listing" data-category="%s" data-limit="%d"></div>`,
		html.EscapeString(s.Category), s.Limit)
	return err
}

func renderFAQ(w io.Writer, s section.FAQSection) error {
	for _, item := range s.Items {
		if _, err := fmt.Fprintf(w,
			"<details><summary>%s</summary><p>%s</p></details>",
			html.EscapeString(item.Question),
			html.EscapeString(item.Answer)); err != nil {
			return err
		}
	}
	return nil
}

func renderFeatured(w io.Writer, s section.FeaturedSection) error {
	if _, err := io.WriteString(w, `<ul class="featured">`); err != nil {
		return err
	}
	for _, item := range s.Items {
		if _, err := fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`,
			html.EscapeString(item.URL),
			html.EscapeString(item.Title)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</ul>")
	return err
}
