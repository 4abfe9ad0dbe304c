package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
)

// maxImageRedirects caps redirect hops when downloading a remote image.
const maxImageRedirects = 3

var privateRanges = []*net.IPNet{
	parseCIDR("10.0.0.0/8"),
	parseCIDR("172.16.0.0/12"),
	parseCIDR("192.168.0.0/16"),
	parseCIDR("127.0.0.0/8"),
	parseCIDR("169.254.0.0/16"),
	parseCIDR("100.64.0.0/10"),
	parseCIDR("198.18.0.0/15"),
	parseCIDR("0.0.0.0/8"),
	parseCIDR("224.0.0.0/4"),
	parseCIDR("::1/128"),
	parseCIDR("::/128"),
	parseCIDR("fc00::/7"),
	parseCIDR("fe80::/10"),
	parseCIDR("64:ff9b::/96"),
}

var remoteImageClient = newImageClient(isPrivateIP)

// isPrivateIP checks whether an IP address is a private/reserved address.
// IPv4-mapped IPv6 addresses are checked as IPv4.
func isPrivateIP(ip net.IP) bool {
	if ip == nil {
		return true
	}
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}
	for _, network := range privateRanges {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func parseCIDR(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("invalid CIDR: %s", cidr))
	}
	return network
}

// newImageClient builds the download client. Every connection is checked
// against blocked at dial time, after DNS resolution, so a name that
// re-resolves to an internal address is refused. Redirect targets are
// checked before they are followed.
func newImageClient(blocked func(net.IP) bool) *http.Client {
	dialer := &net.Dialer{
		Timeout: 10 * time.Second,
		Control: func(network, address string, _ syscall.RawConn) error {
			host, _, err := net.SplitHostPort(address)
			if err != nil {
				return err
			}
			if ip := net.ParseIP(host); ip == nil || blocked(ip) {
				return fmt.Errorf("connection to %s is not allowed", host)
			}
			return nil
		},
	}
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DialContext:           dialer.DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 15 * time.Second,
			MaxIdleConns:          10,
			IdleConnTimeout:       30 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxImageRedirects {
				return fmt.Errorf("stopped after %d redirects", maxImageRedirects)
			}
			return checkRedirectTarget(req.URL, blocked)
		},
	}
}

// checkRedirectTarget applies the static URL rules to a redirect. Names are
// resolved and checked again when the connection is dialed.
func checkRedirectTarget(u *url.URL, blocked func(net.IP) bool) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("redirect to scheme '%s' is not allowed", u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return errors.New("redirect has no hostname")
	}
	if strings.EqualFold(host, "localhost") {
		return errors.New("redirect to localhost is not allowed")
	}
	if ip := net.ParseIP(host); ip != nil && blocked(ip) {
		return fmt.Errorf("redirect to private IP address %s is not allowed", ip.String())
	}
	return nil
}

// ValidateExternalURL rejects URLs that are not http(s) or that resolve to
// private addresses.
func ValidateExternalURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL scheme '%s' is not allowed; only http and https are permitted", parsed.Scheme)
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("URL has no hostname")
	}
	if strings.EqualFold(host, "localhost") {
		return fmt.Errorf("requests to localhost are not allowed")
	}

	ips, err := net.LookupIP(host)
	if err != nil {
		return fmt.Errorf("failed to resolve hostname '%s': %v", host, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("URL resolves to private IP address %s, which is not allowed", ip.String())
		}
	}
	return nil
}

// FetchImage downloads an image referenced by URL, reading at most maxSize
// bytes. It returns the payload and the served content type.
func FetchImage(ctx context.Context, rawURL string, maxSize int64) ([]byte, string, error) {
	if err := ValidateExternalURL(rawURL); err != nil {
		return nil, "", err
	}
	return fetchImage(ctx, remoteImageClient, rawURL, maxSize)
}

func fetchImage(ctx context.Context, client *http.Client, rawURL string, maxSize int64) ([]byte, string, error) {
	if maxSize <= 0 {
		maxSize = MaxUploadSize
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid URL: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %v", err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", fmt.Errorf("file size exceeds maximum allowed size of %d bytes", maxSize)
	}

	contentType := DetectImageType(resp.Header.Get("Content-Type"), data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("URL returned non-image content-type: %s", contentType)
	}
	return data, contentType, nil
}
