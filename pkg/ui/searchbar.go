package ui

import (
	"context"
	"sync"
)

type SearchFunc func(ctx context.Context, query string)

// SearchBar holds the text of the search input. It does no validation or
// trimming: what was typed is what gets submitted.
type SearchBar struct {
	mu       sync.RWMutex
	text     string
	onSearch SearchFunc
}

func (b *SearchBar) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.text
}

func (b *SearchBar) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = text
}

// Submit hands the current text to the search callback.
func (b *SearchBar) Submit(ctx context.Context) {
	if b.onSearch == nil {
		return
	}

	b.onSearch(ctx, b.Text())
}

func NewSearchBar(seed string, onSearch SearchFunc) *SearchBar {
	return &SearchBar{
		text:     seed,
		onSearch: onSearch,
	}
}
