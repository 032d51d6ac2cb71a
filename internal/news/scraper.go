package news

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"matchday-backend/internal/domain"
)

const articlesPerSource = 10

// Fetcher scrapes the sports sections of the supported news sites.
type Fetcher struct {
	client *http.Client

	vnExpressURL string
	bongdaURL    string
	dantriURL    string
}

// NewFetcher creates a fetcher with the given request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:       &http.Client{Timeout: timeout},
		vnExpressURL: "https://vnexpress.net/the-thao",
		bongdaURL:    "https://www.bongda.com.vn/",
		dantriURL:    "https://dantri.com.vn/the-thao.htm",
	}
}

// Sources returns one named source per supported site.
func (f *Fetcher) Sources() []Source {
	return []Source{
		{Name: "VnExpress", Fetch: f.ScrapeVnExpress},
		{Name: "Bongda.com.vn", Fetch: f.ScrapeBongda},
		{Name: "Dantri", Fetch: f.ScrapeDantri},
	}
}

func (f *Fetcher) ScrapeVnExpress(ctx context.Context) ([]domain.NewsArticle, error) {
	doc, err := f.load(ctx, f.vnExpressURL)
	if err != nil {
		return nil, err
	}

	var articles []domain.NewsArticle
	limit(doc.Find("article.item-news")).Each(func(_ int, el *goquery.Selection) {
		titleTag := el.Find("h3.title-news a")
		title := strings.TrimSpace(titleTag.Text())
		link := titleTag.AttrOr("href", "")
		if title == "" || link == "" {
			return
		}
		articles = append(articles, domain.NewsArticle{
			Title:       title,
			Link:        link,
			Image:       imageURL(el.Find("img")),
			Description: strings.TrimSpace(el.Find("p.description").Text()),
			Source:      "VnExpress",
		})
	})
	return articles, nil
}

func (f *Fetcher) ScrapeBongda(ctx context.Context) ([]domain.NewsArticle, error) {
	doc, err := f.load(ctx, f.bongdaURL)
	if err != nil {
		return nil, err
	}

	var articles []domain.NewsArticle
	limit(doc.Find("figure.picture")).Each(func(_ int, el *goquery.Selection) {
		linkTag := el.Find("a")
		title := linkTag.AttrOr("title", "")
		href := linkTag.AttrOr("href", "")
		if title == "" || href == "" {
			return
		}
		articles = append(articles, domain.NewsArticle{
			Title:  title,
			Link:   "https://www.bongda.com.vn" + href,
			Image:  imageURL(el.Find("img")),
			Source: "Bongda.com.vn",
		})
	})
	return articles, nil
}

func (f *Fetcher) ScrapeDantri(ctx context.Context) ([]domain.NewsArticle, error) {
	doc, err := f.load(ctx, f.dantriURL)
	if err != nil {
		return nil, err
	}

	var articles []domain.NewsArticle
	limit(doc.Find("article.article-item")).Each(func(_ int, el *goquery.Selection) {
		titleTag := el.Find("h3.article-title a")
		title := strings.TrimSpace(titleTag.Text())
		href := titleTag.AttrOr("href", "")
		if title == "" || href == "" {
			return
		}
		articles = append(articles, domain.NewsArticle{
			Title:       title,
			Link:        "https://dantri.com.vn" + href,
			Image:       imageURL(el.Find("img")),
			Description: strings.TrimSpace(el.Find("div.article-excerpt").Text()),
			Source:      "Dantri",
		})
	})
	return articles, nil
}

func (f *Fetcher) load(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return doc, nil
}

// limit caps a selection at the per-source article count.
func limit(sel *goquery.Selection) *goquery.Selection {
	if sel.Length() > articlesPerSource {
		return sel.Slice(0, articlesPerSource)
	}
	return sel
}

// imageURL prefers the lazy-load attribute the sites use over plain src.
func imageURL(img *goquery.Selection) string {
	if src := img.AttrOr("data-src", ""); src != "" {
		return src
	}
	return img.AttrOr("src", "")
}
