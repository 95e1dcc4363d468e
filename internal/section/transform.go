package section

import (
	"fmt"

	"github.com/driftwood-studio/marquee/internal/errors"
)

// Transformer is a pure per-variant function from a raw content record to a
// normalized section model. It either succeeds fully or fails with an
// *errors.InvalidSectionDataError; there is no partial recovery.
type Transformer func(raw RawRecord) (Section, error)

func transformHeader(raw RawRecord) (Section, error) {
	if err := guardType(raw, TypeHeader); err != nil {
		return nil, err
	}
	s := HeaderSection{
		Base:     baseFrom(raw, TypeHeader),
		Subtitle: stringField(raw, "subtitle"),
		ImageURL: stringField(raw, "image"),
	}
	if cta := mapField(raw, "cta"); cta != nil {
		s.CTA = Link{
			Label: stringField(cta, "label"),
			URL:   stringField(cta, "url"),
		}
	}
	return s, nil
}

func transformContent(raw RawRecord) (Section, error) {
	if err := guardType(raw, TypeContent); err != nil {
		return nil, err
	}
	s := ContentSection{
		Base:    baseFrom(raw, TypeContent),
		Columns: intField(raw, "columns"),
	}
	switch v := raw["body"].(type) {
	case string:
		s.Body = v
	case []interface{}:
		s.Body = flattenBlocks(v)
	}
	return s, nil
}

func transformCards(raw RawRecord) (Section, error) {
	if err := guardType(raw, TypeCards); err != nil {
		return nil, err
	}
	arr, err := guardArray(raw, "cards", TypeCards)
	if err != nil {
		return nil, err
	}
	s := CardsSection{
		Base:  baseFrom(raw, TypeCards),
		Cards: make([]Card, 0, len(arr)),
	}
	for _, item := range arr {
		card, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		cr := RawRecord(card)
		s.Cards = append(s.Cards, Card{
			Key:   stringField(cr, "_key"),
			Title: stringField(cr, "title"),
			Body:  stringField(cr, "body"),
			Icon:  stringField(cr, "icon"),
			URL:   stringField(cr, "url"),
		})
	}
	return s, nil
}

func transformCalendar(raw RawRecord) (Section, error) {
	if err := guardType(raw, TypeCalendar); err != nil {
		return nil, err
	}
	s := CalendarSection{Base: baseFrom(raw, TypeCalendar)}
	if v, ok := raw["settings"]; ok && v != nil {
		settings, ok := v.(map[string]interface{})
		if !ok {
			return nil, errors.NewInvalidSectionDataError(string(TypeCalendar),
				`field "settings" is not an object`)
		}
		sr := RawRecord(settings)
		s.Settings.InitialDate = parseDate(stringField(sr, "initialDate"))
		if dd := mapField(sr, "disabledDates"); dd != nil {
			s.Settings.DisabledDates = parseDisabledDates(dd)
		}
	}
	return s, nil
}

func transformPricing(raw RawRecord) (Section, error) {
	if err := guardType(raw, TypePricing); err != nil {
		return nil, err
	}
	arr, err := guardArray(raw, "tiers", TypePricing)
	if err != nil {
		return nil, err
	}
	s := PricingSection{
		Base:  baseFrom(raw, TypePricing),
		Tiers: make([]PricingTier, 0, len(arr)),
	}
	for _, item := range arr {
		tier, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		tr := RawRecord(tier)
		features := make([]string, 0)
		for _, f := range arrayField(tr, "features") {
			if fs, ok := f.(string); ok && fs != "" {
				features = append(features, fs)
			}
		}
		s.Tiers = append(s.Tiers, PricingTier{
			Key:         stringField(tr, "_key"),
			Name:        stringField(tr, "name"),
			Price:       stringField(tr, "price"),
			Interval:    stringField(tr, "interval"),
			Features:    features,
			Highlighted: boolField(tr, "highlighted"),
		})
	}
	return s, nil
}

func transformTestimonial(raw RawRecord) (Section, error) {
	if err := guardType(raw, TypeTestimonial); err != nil {
		return nil, err
	}
	arr, err := guardArray(raw, "quotes", TypeTestimonial)
	if err != nil {
		return nil, err
	}
	s := TestimonialSection{
		Base:   baseFrom(raw, TypeTestimonial),
		Quotes: make([]Quote, 0, len(arr)),
	}
	for _, item := range arr {
		quote, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		qr := RawRecord(quote)
		s.Quotes = append(s.Quotes, Quote{
			Key:    stringField(qr, "_key"),
			Text:   stringField(qr, "quote"),
			Author: stringField(qr, "author"),
			Role:   stringField(qr, "role"),
			Avatar: stringField(qr, "avatar"),
		})
	}
	return s, nil
}

func transformTimeline(raw RawRecord) (Section, error) {
	if err := guardType(raw, TypeTimeline); err != nil {
		return nil, err
	}
	arr, err := guardArray(raw, "steps", TypeTimeline)
	if err != nil {
		return nil, err
	}
	s := TimelineSection{
		Base:  baseFrom(raw, TypeTimeline),
		Steps: make([]TimelineStep, 0, len(arr)),
	}
	for _, item := range arr {
		step, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		sr := RawRecord(step)
		s.Steps = append(s.Steps, TimelineStep{
			Key:         stringField(sr, "_key"),
			Title:       stringField(sr, "title"),
			Description: resolveDescription(sr),
			Date:        parseDate(stringField(sr, "date")),
		})
	}
	return s, nil
}

func transformForm(raw RawRecord) (Section, error) {
	if err := guardType(raw, TypeForm); err != nil {
		return nil, err
	}
	s := FormSection{
		Base:           baseFrom(raw, TypeForm),
		FormID:         stringField(raw, "formId"),
		SubmitLabel:    stringField(raw, "submitLabel"),
		SuccessMessage: stringField(raw, "successMessage"),
		Fields:         make([]FormField, 0),
	}
	for _, item := range arrayField(raw, "fields") {
		field, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		fr := RawRecord(field)
		s.Fields = append(s.Fields, FormField{
			Key:         stringField(fr, "_key"),
			Name:        stringField(fr, "name"),
			Label:       stringField(fr, "label"),
			Kind:        stringField(fr, "type"),
			Required:    boolField(fr, "required"),
			Placeholder: stringField(fr, "placeholder"),
		})
	}
	return s, nil
}

func transformBlog(raw RawRecord) (Section, error) {
	if err := guardType(raw, TypeBlog); err != nil {
		return nil, err
	}
	// A negative stored limit means no cap, same as absent.
	limit := intField(raw, "limit")
	if limit < 0 {
		limit = 0
	}
	return BlogSection{
		Base:     baseFrom(raw, TypeBlog),
		Category: stringField(raw, "category"),
		Limit:    limit,
	}, nil
}

func transformFAQ(raw RawRecord) (Section, error) {
	if err := guardType(raw, TypeFAQ); err != nil {
		return nil, err
	}
	arr, err := guardArray(raw, "items", TypeFAQ)
	if err != nil {
		return nil, err
	}
	s := FAQSection{
		Base:  baseFrom(raw, TypeFAQ),
		Items: make([]FAQItem, 0, len(arr)),
	}
	for _, item := range arr {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		er := RawRecord(entry)
		s.Items = append(s.Items, FAQItem{
			Key:      stringField(er, "_key"),
			Question: stringField(er, "question"),
			Answer:   resolveDescription(RawRecord{"description": er["answer"]}),
		})
	}
	return s, nil
}

func transformFeatured(raw RawRecord) (Section, error) {
	if err := guardType(raw, TypeFeatured); err != nil {
		return nil, err
	}
	arr, err := guardArray(raw, "items", TypeFeatured)
	if err != nil {
		return nil, err
	}
	s := FeaturedSection{
		Base:  baseFrom(raw, TypeFeatured),
		Items: make([]FeaturedItem, 0, len(arr)),
	}
	for _, item := range arr {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		er := RawRecord(entry)
		s.Items = append(s.Items, FeaturedItem{
			Key:      stringField(er, "_key"),
			Title:    stringField(er, "title"),
			Subtitle: stringField(er, "subtitle"),
			ImageURL: stringField(er, "image"),
			URL:      stringField(er, "url"),
		})
	}
	return s, nil
}

// parseDisabledDates builds the disabled-dates configuration from the stored
// form. Date strings that fail to parse come out as the zero time, which the
// combinator ignores.
func parseDisabledDates(raw RawRecord) *DisabledDatesConfig {
	cfg := &DisabledDatesConfig{}

	for _, d := range arrayField(raw, "daysOfWeek") {
		day := -1
		switch v := d.(type) {
		case float64:
			day = int(v)
		case int:
			day = v
		}
		if day >= 0 && day <= 6 {
			cfg.DaysOfWeek = append(cfg.DaysOfWeek, day)
		}
	}

	for _, d := range arrayField(raw, "dates") {
		if s, ok := d.(string); ok {
			cfg.Dates = append(cfg.Dates, parseDate(s))
		}
	}

	for _, r := range arrayField(raw, "ranges") {
		rng, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		rr := RawRecord(rng)
		cfg.Ranges = append(cfg.Ranges, DateRange{
			Start: parseDate(stringField(rr, "start")),
			End:   parseDate(stringField(rr, "end")),
		})
	}

	cfg.Before = parseDate(stringField(raw, "before"))
	cfg.After = parseDate(stringField(raw, "after"))

	return cfg
}

// Registry holds the closed set of variant transformers. It is built once at
// startup and read-only afterwards, so lookups need no locking.
type Registry struct {
	transformers map[Type]Transformer
}

// NewRegistry creates the registry with every recognized variant registered.
func NewRegistry() *Registry {
	return &Registry{
		transformers: map[Type]Transformer{
			TypeHeader:      transformHeader,
			TypeContent:     transformContent,
			TypeCards:       transformCards,
			TypeCalendar:    transformCalendar,
			TypePricing:     transformPricing,
			TypeTestimonial: transformTestimonial,
			TypeTimeline:    transformTimeline,
			TypeForm:        transformForm,
			TypeBlog:        transformBlog,
			TypeFAQ:         transformFAQ,
			TypeFeatured:    transformFeatured,
		},
	}
}

// Known reports whether t is a recognized variant tag.
func (r *Registry) Known(t Type) bool {
	_, ok := r.transformers[t]
	return ok
}

// Transform dispatches a raw record to its variant transformer based on the
// _type discriminant. An unknown tag is a typed error, never a silent
// coercion into a default variant.
func (r *Registry) Transform(raw RawRecord) (Section, error) {
	tag, _ := raw["_type"].(string)
	transformer, ok := r.transformers[Type(tag)]
	if !ok {
		return nil, &errors.InvalidSectionDataError{
			Variant: tag,
			Reason:  fmt.Sprintf("unknown section type %q", tag),
			Unknown: true,
		}
	}
	return transformer(raw)
}
