// Package feed parses the external catalog feed document.
package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/conntour/spacesearch/internal/domain"
)

// Wire shape of the feed: a collection of items, each carrying metadata
// records and typed links.
type document struct {
	Collection struct {
		Items []item `json:"items"`
	} `json:"collection"`
}

type item struct {
	Data  []itemData `json:"data"`
	Links []itemLink `json:"links"`
}

type itemData struct {
	Title       string `json:"title"`
	MediaType   string `json:"media_type"`
	DateCreated string `json:"date_created"`
	Description string `json:"description"`
}

type itemLink struct {
	Href   string `json:"href"`
	Render string `json:"render"`
}

// Load reads and parses the feed file at path.
func Load(path string) ([]domain.Source, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open feed %s: %w", path, err)
	}
	defer f.Close()

	sources, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", path, err)
	}
	return sources, nil
}

// Parse decodes a feed document into catalog sources. Ids are assigned
// sequentially starting at 1 in feed order and never change afterwards.
func Parse(r io.Reader) ([]domain.Source, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	items := doc.Collection.Items
	sources := make([]domain.Source, 0, len(items))
	for i, it := range items {
		sources = append(sources, sourceFromItem(it, i+1))
	}
	return sources, nil
}

func sourceFromItem(it item, id int) domain.Source {
	var data itemData
	if len(it.Data) > 0 {
		data = it.Data[0]
	}

	src := domain.Source{
		ID:          id,
		Name:        data.Title,
		Type:        data.MediaType,
		LaunchDate:  data.DateCreated,
		Description: data.Description,
		ImageURL:    firstImageLink(it.Links),
		Status:      "Active",
	}
	if src.Name == "" {
		src.Name = fmt.Sprintf("Item %d", id)
	}
	if src.Type == "" {
		src.Type = "unknown"
	}
	return src
}

// firstImageLink returns the href of the first link rendered as an image,
// or nil when the item has none.
func firstImageLink(links []itemLink) *string {
	for _, l := range links {
		if l.Render == "image" {
			href := l.Href
			return &href
		}
	}
	return nil
}
