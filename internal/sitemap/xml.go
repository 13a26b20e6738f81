package sitemap

import (
	"encoding/xml"
	"fmt"
)

// xmlns is the sitemaps.org protocol namespace.
const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

// Render encodes entries as a sitemap urlset document. An empty entry
// slice renders a valid urlset with zero url elements.
func Render(entries []Entry) ([]byte, error) {
	set := urlSet{
		Xmlns: xmlns,
		URLs:  make([]xmlURL, len(entries)),
	}
	for i, e := range entries {
		set.URLs[i] = xmlURL{
			Loc:        e.Loc,
			LastMod:    e.LastMod,
			ChangeFreq: e.ChangeFreq,
			Priority:   e.Priority,
		}
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal urlset: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}

// IndexEntry is one <sitemap> element of a sitemap index document.
type IndexEntry struct {
	Loc     string
	LastMod string
}

type xmlSitemapRef struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

type sitemapIndex struct {
	XMLName  xml.Name        `xml:"sitemapindex"`
	Xmlns    string          `xml:"xmlns,attr"`
	Sitemaps []xmlSitemapRef `xml:"sitemap"`
}

// RenderIndex encodes entries as a sitemap index document.
func RenderIndex(entries []IndexEntry) ([]byte, error) {
	idx := sitemapIndex{
		Xmlns:    xmlns,
		Sitemaps: make([]xmlSitemapRef, len(entries)),
	}
	for i, e := range entries {
		idx.Sitemaps[i] = xmlSitemapRef{Loc: e.Loc, LastMod: e.LastMod}
	}

	body, err := xml.MarshalIndent(idx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemapindex: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}
