package preview

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	previewPort "timelineforum/internal/ports/preview"
)

const fetchTimeout = 10 * time.Second

// Fetcher resolves link previews. Known platforms go through their oEmbed
// endpoints; everything else falls back to scraping OpenGraph tags from the
// page itself.
type Fetcher struct {
	client *resty.Client
	Logger *zap.Logger
}

func NewFetcher(logger *zap.Logger) *Fetcher {
	client := resty.New().
		SetTimeout(fetchTimeout).
		SetHeader("User-Agent", "timelineforum-preview/1.0")
	return &Fetcher{client: client, Logger: logger}
}

// oEmbed endpoints for special-cased platforms. Instagram dropped its
// tokenless oEmbed endpoint, so Instagram links take the OpenGraph fallback.
var oembedEndpoints = map[string]string{
	"youtube.com": "https://www.youtube.com/oembed",
	"youtu.be":    "https://www.youtube.com/oembed",
	"spotify.com": "https://open.spotify.com/oembed",
	"twitter.com": "https://publish.twitter.com/oembed",
	"x.com":       "https://publish.twitter.com/oembed",
	"tiktok.com":  "https://www.tiktok.com/oembed",
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ProviderName string `json:"provider_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Fetch returns preview metadata for the URL, or nil when nothing useful
// could be extracted. Errors are for the caller to log and swallow; they must
// never fail the operation that pasted the link.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*previewPort.Preview, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("unusable url %q", rawURL)
	}

	if endpoint := oembedEndpointFor(parsed.Host); endpoint != "" {
		p, err := f.fetchOEmbed(ctx, endpoint, rawURL)
		if err == nil && p != nil {
			return p, nil
		}
		if err != nil {
			f.Logger.Debug("oEmbed lookup failed, falling back to OpenGraph",
				zap.String("url", rawURL), zap.Error(err))
		}
	}

	return f.fetchOpenGraph(ctx, rawURL)
}

func oembedEndpointFor(host string) string {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	for suffix, endpoint := range oembedEndpoints {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return endpoint
		}
	}
	return ""
}

func (f *Fetcher) fetchOEmbed(ctx context.Context, endpoint, target string) (*previewPort.Preview, error) {
	var body oembedResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"url": target, "format": "json"}).
		SetResult(&body).
		Get(endpoint)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("oEmbed endpoint returned %s", resp.Status())
	}
	if body.Title == "" && body.ThumbnailURL == "" {
		return nil, nil
	}

	description := body.AuthorName
	if description != "" && body.ProviderName != "" {
		description = fmt.Sprintf("%s on %s", body.AuthorName, body.ProviderName)
	} else if body.ProviderName != "" {
		description = body.ProviderName
	}

	return &previewPort.Preview{
		Title:       body.Title,
		Description: description,
		Image:       body.ThumbnailURL,
	}, nil
}

func (f *Fetcher) fetchOpenGraph(ctx context.Context, target string) (*previewPort.Preview, error) {
	resp, err := f.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(target)
	if err != nil {
		return nil, err
	}
	raw := resp.RawBody()
	defer raw.Close()
	if resp.IsError() {
		return nil, fmt.Errorf("page returned %s", resp.Status())
	}

	doc, err := goquery.NewDocumentFromReader(raw)
	if err != nil {
		return nil, err
	}

	p := &previewPort.Preview{
		Title:       metaProperty(doc, "og:title"),
		Description: metaProperty(doc, "og:description"),
		Image:       metaProperty(doc, "og:image"),
	}
	if p.Title == "" {
		p.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if p.Description == "" {
		p.Description = metaName(doc, "description")
	}

	if p.Title == "" && p.Description == "" && p.Image == "" {
		return nil, nil
	}
	return p, nil
}

func metaProperty(doc *goquery.Document, property string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First().Attr("content")
	return strings.TrimSpace(content)
}

func metaName(doc *goquery.Document, name string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[name=%q]`, name)).First().Attr("content")
	return strings.TrimSpace(content)
}
