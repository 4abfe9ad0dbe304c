package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// mapsShortLinkHosts are share-link domains that cannot be rewritten
// without following a redirect.
var mapsShortLinkHosts = map[string]bool{
	"maps.app.goo.gl": true,
	"goo.gl":          true,
	"g.co":            true,
}

const mapsEmbedTemplate = "https://www.google.com/maps?q=%s&output=embed"

// NormalizeGoogleMapsURL turns a Google Maps search link into an embeddable
// link. Short links, unknown hosts and malformed input are returned unchanged.
func NormalizeGoogleMapsURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return raw
	}
	host := strings.ToLower(u.Hostname())

	if mapsShortLinkHosts[host] {
		return raw
	}
	if !isGoogleMapsHost(host, u.Path) {
		return raw
	}

	query := u.Query()
	place := query.Get("q")
	if place == "" {
		place = query.Get("query")
	}
	if place == "" {
		return raw
	}
	return fmt.Sprintf(mapsEmbedTemplate, url.QueryEscape(place))
}

func isGoogleMapsHost(host, path string) bool {
	if host == "maps.google.com" || strings.HasPrefix(host, "maps.google.") {
		return true
	}
	if host == "google.com" || host == "www.google.com" ||
		strings.HasPrefix(host, "www.google.") || strings.HasPrefix(host, "google.") {
		return path == "/maps" || strings.HasPrefix(path, "/maps/")
	}
	return false
}
