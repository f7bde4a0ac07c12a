package yahoo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// MaxArticleSize caps the HTML we are willing to parse for one article.
const MaxArticleSize = 1 * 1024 * 1024 // 1MB

// Article is the readable body of a news article, converted to Markdown.
type Article struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

// Article fetches a news page and extracts its readable content. News
// items from the search endpoint carry only a truncated summary; this
// fills in the full text when the agent asks for it.
func (c *Client) Article(ctx context.Context, rawURL string) (*Article, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, fmt.Errorf("%w: url must start with http:// or https://", ErrUpstream)
	}

	var pageHTML []byte
	var finalURL string
	var contentType string

	collector := c.newCollector()
	collector.Context = ctx
	collector.OnResponse(func(r *colly.Response) {
		if ctx.Err() != nil {
			return
		}
		finalURL = r.Request.URL.String()
		pageHTML = append([]byte(nil), r.Body...)
		contentType = r.Headers.Get("Content-Type")
	})

	if err := collector.Visit(rawURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if len(pageHTML) == 0 {
		return nil, fmt.Errorf("%w: empty response body", ErrUpstream)
	}
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrUpstream, contentType)
	}
	if len(pageHTML) > MaxArticleSize {
		pageHTML = pageHTML[:MaxArticleSize]
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	title := strings.TrimSpace(doc.Find("head > title").First().Text())
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		title = h1
	}

	// Strip everything that is not article text.
	doc.Find("script, style, noscript, iframe, svg, img, video, audio, form, input, button, nav, header, footer, aside").Remove()

	// Prefer the article element when the page has one.
	content := doc.Find("article").First()
	if content.Length() == 0 {
		content = doc.Find("body").First()
	}
	if content.Length() == 0 {
		return nil, errors.New("yahoo: no readable content found")
	}

	htmlStr, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	markdown, err := htmltomarkdown.ConvertString(htmlStr)
	if err != nil {
		// Fall back to collapsed plain text.
		markdown = strings.Join(strings.Fields(content.Text()), " ")
	}

	return &Article{URL: finalURL, Title: title, Markdown: strings.TrimSpace(markdown)}, nil
}
