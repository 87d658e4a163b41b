// Package main implements a mock Amazon SP-API server for local development.
// It serves canned catalog and competitive-pricing responses from JSON
// fixtures and stands in for the Login with Amazon token endpoint, so the
// gateway can run without real seller credentials.
//
// Point the gateway at it with:
//
//	amazon:
//	  token_url: http://localhost:8090/auth/o2/token
//	  endpoint: http://localhost:8090
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	defaultPageSize = 10
	maxPageSize     = 20
)

type fixtures struct {
	items   []gjson.Result
	pricing []gjson.Result
}

func main() {
	port := flag.Int("port", 8090, "port to listen on")
	catalogFile := flag.String("catalog", "tools/mock-spapi/testdata/catalog.json", "path to catalog items fixture")
	pricingFile := flag.String("pricing", "tools/mock-spapi/testdata/pricing.json", "path to competitive pricing fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixtures(*catalogFile, *pricingFile)
	if err != nil {
		logger.Error("failed to load fixtures", "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixtures", "items", len(fx.items), "pricing", len(fx.pricing))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock SP-API server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, fx)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, fx *fixtures) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/o2/token", tokenHandler(logger))
	mux.Handle("GET /catalog/2022-04-01/items", requireToken(searchHandler(logger, fx)))
	mux.Handle("GET /catalog/2022-04-01/items/{asin}", requireToken(getItemHandler(logger, fx)))
	mux.Handle("GET /products/pricing/v0/competitivePrice", requireToken(pricingHandler(logger, fx)))
	return mux
}

func loadFixtures(catalogPath, pricingPath string) (*fixtures, error) {
	catalog, err := readJSON(catalogPath)
	if err != nil {
		return nil, err
	}
	pricing, err := readJSON(pricingPath)
	if err != nil {
		return nil, err
	}
	return &fixtures{
		items:   catalog.Get("items").Array(),
		pricing: pricing.Get("payload").Array(),
	}, nil
}

func readJSON(path string) (gjson.Result, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return gjson.Result{}, fmt.Errorf("reading fixture: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("parsing fixture %s: invalid JSON", path)
	}
	return gjson.ParseBytes(data), nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, raw string) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	w.Write([]byte(raw))
}

func spapiError(code, message string) map[string]any {
	return map[string]any{
		"errors": []map[string]string{{"code": code, "message": message}},
	}
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "invalid_request",
				"error_description": "malformed form body",
			})
			return
		}

		if r.PostForm.Get("grant_type") != "refresh_token" || r.PostForm.Get("refresh_token") == "" {
			logger.Warn("token request missing refresh token grant")
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "invalid_grant",
				"error_description": "The request has an invalid grant parameter : refresh_token",
			})
			return
		}
		if r.PostForm.Get("client_id") == "" || r.PostForm.Get("client_secret") == "" {
			logger.Warn("token request missing client credentials")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "invalid_client",
				"error_description": "Client authentication failed",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  "Atza|mock-" + uuid.NewString(),
			"refresh_token": r.PostForm.Get("refresh_token"),
			"token_type":    "bearer",
			"expires_in":    3600,
		})
		logger.Info("issued mock token")
	}
}

func requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-amz-access-token") == "" {
			writeJSON(w, http.StatusForbidden, spapiError("Unauthorized", "Access to requested resource is denied."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func searchHandler(logger *slog.Logger, fx *fixtures) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		pageSize := defaultPageSize
		if v, err := strconv.Atoi(q.Get("pageSize")); err == nil && v > 0 {
			pageSize = min(v, maxPageSize)
		}

		var match func(gjson.Result) bool
		switch {
		case q.Get("identifiers") != "":
			idType := strings.ToUpper(q.Get("identifiersType"))
			wanted := strings.Split(q.Get("identifiers"), ",")
			match = func(item gjson.Result) bool {
				return hasIdentifier(item, idType, wanted)
			}
		case q.Get("keywords") != "":
			words := strings.Fields(strings.ToLower(q.Get("keywords")))
			match = func(item gjson.Result) bool {
				return matchesKeywords(item, words)
			}
		default:
			writeJSON(w, http.StatusBadRequest, spapiError("InvalidInput",
				"Either keywords or identifiers must be provided."))
			return
		}

		raw := make([]string, 0, pageSize)
		total := 0
		for _, item := range fx.items {
			if !match(item) {
				continue
			}
			total++
			if len(raw) < pageSize {
				raw = append(raw, item.Raw)
			}
		}

		writeRaw(w, fmt.Sprintf(`{"numberOfResults":%d,"items":[%s]}`, total, strings.Join(raw, ",")))
		logger.Info("search", "keywords", q.Get("keywords"), "identifiers", q.Get("identifiers"),
			"matched", total, "returned", len(raw))
	}
}

func getItemHandler(logger *slog.Logger, fx *fixtures) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asin := strings.ToUpper(r.PathValue("asin"))
		for _, item := range fx.items {
			if item.Get("asin").String() == asin {
				writeRaw(w, item.Raw)
				logger.Info("get item", "asin", asin, "found", true)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, spapiError("NotFound",
			fmt.Sprintf("Requested item '%s' not found in marketplace", asin)))
		logger.Info("get item", "asin", asin, "found", false)
	}
}

func pricingHandler(logger *slog.Logger, fx *fixtures) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ItemType") != "Asin" {
			writeJSON(w, http.StatusBadRequest, spapiError("InvalidInput", "ItemType must be Asin."))
			return
		}

		asins := strings.Split(r.URL.Query().Get("Asins"), ",")
		entries := make([]string, 0, len(asins))
		for _, asin := range asins {
			entries = append(entries, pricingEntry(fx, strings.TrimSpace(asin)))
		}

		writeRaw(w, `{"payload":[`+strings.Join(entries, ",")+`]}`)
		logger.Info("competitive pricing", "asins", asins)
	}
}

func pricingEntry(fx *fixtures, asin string) string {
	for _, entry := range fx.pricing {
		if entry.Get("ASIN").String() == asin {
			return entry.Raw
		}
	}
	data, _ := json.Marshal(map[string]any{ //nolint:errcheck // static map always marshals
		"status":  "ClientError",
		"ASIN":    asin,
		"Product": map[string]any{},
	})
	return string(data)
}

func hasIdentifier(item gjson.Result, idType string, wanted []string) bool {
	found := false
	item.Get("identifiers.#.identifiers").ForEach(func(_, group gjson.Result) bool {
		group.ForEach(func(_, id gjson.Result) bool {
			if id.Get("identifierType").String() != idType {
				return true
			}
			for _, w := range wanted {
				if id.Get("identifier").String() == strings.TrimSpace(w) {
					found = true
					return false
				}
			}
			return true
		})
		return !found
	})
	return found
}

func matchesKeywords(item gjson.Result, words []string) bool {
	title := strings.ToLower(item.Get("summaries.0.itemName").String())
	if title == "" {
		title = strings.ToLower(item.Get("attributes.item_name.0.value").String())
	}
	for _, w := range words {
		if !strings.Contains(title, w) {
			return false
		}
	}
	return true
}
