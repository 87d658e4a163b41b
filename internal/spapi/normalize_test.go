package spapi_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/donaldgifford/ssello-gateway/internal/spapi"
	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

const usMarketplace = "ATVPDKIKX0DER"

func TestShapeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		json string
		want spapi.Shape
	}{
		{json: `null`, want: spapi.ShapeMissing},
		{json: `"text"`, want: spapi.ShapeScalar},
		{json: `12.5`, want: spapi.ShapeScalar},
		{json: `[1,2]`, want: spapi.ShapeArray},
		{json: `{"value":"x"}`, want: spapi.ShapeValue},
		{json: `{"amount":"9.99","currencyCode":"USD"}`, want: spapi.ShapeAmount},
		{json: `{"link":"x"}`, want: spapi.ShapeObject},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, spapi.ShapeOf(gjson.Parse(tt.json)))
		})
	}

	assert.Equal(t, spapi.ShapeMissing, spapi.ShapeOf(gjson.Get(`{}`, "nope")))
	assert.Equal(t, "amount", spapi.ShapeAmount.String())
}

func normalize(t *testing.T, raw string) domain.CatalogItem {
	t.Helper()
	require.True(t, gjson.Valid(raw), "fixture must be valid JSON")
	return spapi.Normalize(gjson.Parse(raw), usMarketplace)
}

func TestNormalize_Title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "marketplace matched summary wins",
			raw: `{"summaries":[
				{"marketplaceId":"A1F83G8C2ARO7P","itemName":"UK name"},
				{"marketplaceId":"ATVPDKIKX0DER","itemName":"US name"}]}`,
			want: "US name",
		},
		{
			name: "first summary when no marketplace match",
			raw:  `{"summaries":[{"marketplaceId":"A1F83G8C2ARO7P","itemName":"UK name"}]}`,
			want: "UK name",
		},
		{
			name: "matched summary without name falls back to first",
			raw: `{"summaries":[
				{"marketplaceId":"A1F83G8C2ARO7P","itemName":"UK name"},
				{"marketplaceId":"ATVPDKIKX0DER"}]}`,
			want: "UK name",
		},
		{
			name: "attribute array of value objects",
			raw:  `{"attributes":{"item_name":[{"value":"Attr name","language_tag":"en_US"}]}}`,
			want: "Attr name",
		},
		{
			name: "attribute title scalar",
			raw:  `{"attributes":{"title":"Plain title"}}`,
			want: "Plain title",
		},
		{
			name: "attribute itemName value object",
			raw:  `{"attributes":{"itemName":{"value":"Camel name"}}}`,
			want: "Camel name",
		},
		{
			name: "summary without names falls back to attributes",
			raw:  `{"summaries":[{"marketplaceId":"ATVPDKIKX0DER"}],"attributes":{"item_name":"From attrs"}}`,
			want: "From attrs",
		},
		{
			name: "default",
			raw:  `{"asin":"B000"}`,
			want: domain.UnknownTitle,
		},
		{
			name: "blank title is unknown",
			raw:  `{"attributes":{"item_name":"   "}}`,
			want: domain.UnknownTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize(t, tt.raw).Title)
		})
	}
}

func TestNormalize_Brand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "summary brand", raw: `{"summaries":[{"marketplaceId":"ATVPDKIKX0DER","brand":"Amazon"}]}`, want: "Amazon"},
		{name: "attribute brand array", raw: `{"attributes":{"brand":[{"value":"Anker"}]}}`, want: "Anker"},
		{name: "attribute brand_name scalar", raw: `{"attributes":{"brand_name":"Sony"}}`, want: "Sony"},
		{name: "default", raw: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize(t, tt.raw).Brand)
		})
	}
}

func TestNormalize_ListPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "array of value objects", raw: `{"attributes":{"list_price":[{"value":49.99,"currency":"USD"}]}}`, want: 49.99},
		{name: "amount object", raw: `{"attributes":{"list_price":{"amount":"19.95","currencyCode":"USD"}}}`, want: 19.95},
		{name: "numeric string", raw: `{"attributes":{"listPrice":"12.50"}}`, want: 12.5},
		{name: "plain number", raw: `{"attributes":{"listPrice":7}}`, want: 7},
		{name: "nested value amount", raw: `{"attributes":{"list_price":[{"value":{"amount":3.25}}]}}`, want: 3.25},
		{name: "unparseable string", raw: `{"attributes":{"list_price":"call for price"}}`, want: 0},
		{name: "not a number", raw: `{"attributes":{"list_price":"NaN"}}`, want: 0},
		{name: "empty array", raw: `{"attributes":{"list_price":[]}}`, want: 0},
		{name: "missing", raw: `{}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, normalize(t, tt.raw).ListPrice, 0.0001)
		})
	}
}

func TestNormalize_ImageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "primary link",
			raw:  `{"images":{"primary":[{"link":"https://m.media-amazon.com/primary.jpg"}]}}`,
			want: "https://m.media-amazon.com/primary.jpg",
		},
		{
			name: "largest primary variant",
			raw: `{"images":{"primary":[{"images":[
				{"link":"https://img/small.jpg","height":75,"width":75},
				{"link":"https://img/large.jpg","height":1500,"width":1500},
				{"link":"https://img/medium.jpg","height":500,"width":500}]}]}}`,
			want: "https://img/large.jpg",
		},
		{
			name: "marketplace matched array entry",
			raw: `{"images":[
				{"marketplaceId":"A1F83G8C2ARO7P","images":[{"link":"https://img/uk.jpg","height":10,"width":10}]},
				{"marketplaceId":"ATVPDKIKX0DER","images":[
					{"variant":"MAIN","link":"https://img/us-main.jpg","height":500,"width":500},
					{"variant":"PT01","link":"https://img/us-big.jpg","height":2000,"width":2000}]}]}`,
			want: "https://img/us-big.jpg",
		},
		{
			name: "first array entry when unmatched",
			raw:  `{"images":[{"marketplaceId":"A1F83G8C2ARO7P","images":[{"link":"https://img/uk.jpg"}]}]}`,
			want: "https://img/uk.jpg",
		},
		{
			name: "variants without links",
			raw:  `{"images":[{"marketplaceId":"ATVPDKIKX0DER","images":[{"height":10,"width":10}]}]}`,
			want: domain.PlaceholderImageURL,
		},
		{
			name: "empty images",
			raw:  `{"images":[]}`,
			want: domain.PlaceholderImageURL,
		},
		{
			name: "missing",
			raw:  `{}`,
			want: domain.PlaceholderImageURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize(t, tt.raw).ImageURL)
		})
	}
}

func TestNormalize_Category(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "productType object", raw: `{"productTypes":[{"marketplaceId":"ATVPDKIKX0DER","productType":"SPEAKERS"}]}`, want: "SPEAKERS"},
		{name: "string entry", raw: `{"productTypes":["HEADPHONES"]}`, want: "HEADPHONES"},
		{name: "object without productType", raw: `{"productTypes":[{"marketplaceId":"ATVPDKIKX0DER"}]}`, want: ""},
		{name: "missing", raw: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize(t, tt.raw).Category)
		})
	}
}

func TestNormalize_FullItem(t *testing.T) {
	t.Parallel()

	raw := `{
		"asin": "B08N5WRWNW",
		"attributes": {"list_price": [{"value": 49.99, "currency": "USD"}]},
		"images": [{"marketplaceId": "ATVPDKIKX0DER", "images": [
			{"variant": "MAIN", "link": "https://m.media-amazon.com/images/I/main.jpg", "height": 500, "width": 500}
		]}],
		"productTypes": [{"marketplaceId": "ATVPDKIKX0DER", "productType": "SPEAKERS"}],
		"summaries": [{"marketplaceId": "ATVPDKIKX0DER", "brand": "Amazon", "itemName": "Echo Dot (4th Gen)"}]
	}`

	assert.Equal(t, domain.CatalogItem{
		ASIN:      "B08N5WRWNW",
		Title:     "Echo Dot (4th Gen)",
		Brand:     "Amazon",
		ListPrice: 49.99,
		ImageURL:  "https://m.media-amazon.com/images/I/main.jpg",
		Category:  "SPEAKERS",
	}, normalize(t, raw))
}

func TestNormalize_EmptyObjectHasDefaults(t *testing.T) {
	t.Parallel()

	item := normalize(t, `{}`)
	assert.Equal(t, domain.NewCatalogItem(""), item)

	out, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"asin": "",
		"title": "Unknown Product",
		"brand": "",
		"listPrice": 0,
		"imageUrl": "/placeholder.svg?height=80&width=80",
		"category": "",
		"ASIN": "",
		"Title": "Unknown Product",
		"price": "0",
		"OriginalMSRP": "0",
		"image": "/placeholder.svg?height=80&width=80",
		"source": "amazon"
	}`, string(out))
}

func TestNormalizeAll_SkipsMalformed(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	raw := []json.RawMessage{
		json.RawMessage(`{"asin":"A1"}`),
		json.RawMessage(`"just a string"`),
		json.RawMessage(`{broken`),
		json.RawMessage(`{"asin":"A2","summaries":[{"itemName":"Second"}]}`),
	}

	items := spapi.NormalizeAll(raw, usMarketplace, log)
	require.Len(t, items, 2)
	assert.Equal(t, "A1", items[0].ASIN)
	assert.Equal(t, "Second", items[1].Title)
	assert.Contains(t, logs.String(), "skipping malformed catalog item")
}

func TestNormalizeAll_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	items := spapi.NormalizeAll(nil, usMarketplace, nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
