package spapi

import (
	"encoding/json"
	"log/slog"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/donaldgifford/ssello-gateway/internal/metrics"
	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

// NormalizeAll normalizes every raw catalog item. Entries that are not JSON
// objects are logged and skipped; the rest of the batch is unaffected. The
// result is never nil.
func NormalizeAll(raw []json.RawMessage, marketplaceID string, log *slog.Logger) []domain.CatalogItem {
	if log == nil {
		log = slog.Default()
	}

	items := make([]domain.CatalogItem, 0, len(raw))
	for i, r := range raw {
		if !gjson.ValidBytes(r) {
			metrics.NormalizationWarningsTotal.Inc()
			log.Warn("skipping malformed catalog item", "index", i, "reason", "invalid JSON")
			continue
		}
		parsed := gjson.ParseBytes(r)
		if !parsed.IsObject() {
			metrics.NormalizationWarningsTotal.Inc()
			log.Warn("skipping malformed catalog item", "index", i, "shape", ShapeOf(parsed).String())
			continue
		}
		items = append(items, Normalize(parsed, marketplaceID))
		metrics.NormalizedItemsTotal.Inc()
	}
	return items
}

// Normalize extracts a complete CatalogItem from one upstream item. It never
// fails: every field falls back to its default.
func Normalize(item gjson.Result, marketplaceID string) domain.CatalogItem {
	asin, _ := unwrapText(item.Get("asin"))
	out := domain.NewCatalogItem(asin)
	attrs := item.Get("attributes")
	summaries := entries(item.Get("summaries"))

	if title, ok := firstText(
		summaryField(summaries, marketplaceID, "itemName"),
		attrs.Get("item_name"),
		attrs.Get("title"),
		attrs.Get("itemName"),
	); ok {
		out.Title = title
	}

	if brand, ok := firstText(
		summaryField(summaries, marketplaceID, "brand"),
		attrs.Get("brand"),
		attrs.Get("brand_name"),
	); ok {
		out.Brand = brand
	}

	for _, field := range []string{"list_price", "listPrice"} {
		if price, ok := unwrapAmount(attrs.Get(field)); ok {
			out.ListPrice = price
			break
		}
	}

	if link := imageURL(item.Get("images"), marketplaceID); link != "" {
		out.ImageURL = link
	}

	out.Category = category(item.Get("productTypes"))

	return out
}

// summaryField returns field from the marketplace-matched summary when it
// carries one, otherwise from the first summary.
func summaryField(summaries []gjson.Result, marketplaceID, field string) gjson.Result {
	if matched, ok := lo.Find(summaries, func(s gjson.Result) bool {
		return s.Get("marketplaceId").String() == marketplaceID
	}); ok {
		if v := matched.Get(field); hasText(v) {
			return v
		}
	}
	if len(summaries) > 0 {
		return summaries[0].Get(field)
	}
	return gjson.Result{}
}

func hasText(r gjson.Result) bool {
	_, ok := unwrapText(r)
	return ok
}

func firstText(candidates ...gjson.Result) (string, bool) {
	for _, c := range candidates {
		if s, ok := unwrapText(c); ok {
			return s, true
		}
	}
	return "", false
}

// imageURL resolves the primary image link. images is either an object with
// a "primary" list or an array of per-marketplace entries.
func imageURL(images gjson.Result, marketplaceID string) string {
	var entry gjson.Result
	switch ShapeOf(images) {
	case ShapeArray:
		list := images.Array()
		if len(list) == 0 {
			return ""
		}
		entry = list[0]
		if matched, ok := lo.Find(list, func(e gjson.Result) bool {
			return e.Get("marketplaceId").String() == marketplaceID
		}); ok {
			entry = matched
		}
	case ShapeObject, ShapeValue, ShapeAmount:
		primary := entries(images.Get("primary"))
		if len(primary) == 0 {
			return ""
		}
		entry = primary[0]
	default:
		return ""
	}

	if link, ok := unwrapText(entry.Get("link")); ok {
		return link
	}
	return largestImage(entry.Get("images"))
}

// largestImage returns the link of the variant with the greatest
// height×width. Ties keep the first.
func largestImage(images gjson.Result) string {
	linked := lo.Filter(entries(images), func(img gjson.Result, _ int) bool {
		return hasText(img.Get("link"))
	})
	if len(linked) == 0 {
		return ""
	}

	best := lo.MaxBy(linked, func(a, b gjson.Result) bool {
		return imageArea(a) > imageArea(b)
	})
	link, _ := unwrapText(best.Get("link"))
	return link
}

func imageArea(img gjson.Result) int64 {
	return img.Get("height").Int() * img.Get("width").Int()
}

func category(productTypes gjson.Result) string {
	list := entries(productTypes)
	if len(list) == 0 {
		return ""
	}
	first := list[0]
	if ShapeOf(first) == ShapeObject {
		first = first.Get("productType")
	}
	s, _ := unwrapText(first)
	return s
}
