// Package extract turns rendered page surfaces into individual card
// images. It glues the addressing math, the skip/override registry and
// the page renderer together: per-card work is independent and safe to
// parallelize, while each page is rendered exactly once and shared
// read-only across the cards on it.
package extract

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sort"
	"sync"

	"github.com/sheetslice/sheetslice/internal/addressing"
	"github.com/sheetslice/sheetslice/internal/geometry"
	"github.com/sheetslice/sheetslice/internal/registry"
	"github.com/sheetslice/sheetslice/internal/render"
	"github.com/sheetslice/sheetslice/pkg/logger"
	"github.com/sheetslice/sheetslice/pkg/models"
)

var (
	// ErrCardNotFound marks indices past the last card. Callers are
	// expected to treat it as "no such card", not as a fault.
	ErrCardNotFound = errors.New("card not found")
)

// Pipeline extracts cards from an ordered page sequence.
type Pipeline struct {
	pages    []models.PageDescriptor
	settings models.Settings
	provider render.PageProvider

	skips     *registry.SkipSet
	overrides *registry.OverrideSet

	log *logger.Logger

	mu    sync.Mutex
	cache map[int]*pageEntry
}

type pageEntry struct {
	once    sync.Once
	surface *image.RGBA
	err     error
}

func New(pages []models.PageDescriptor, settings models.Settings, provider render.PageProvider, skips *registry.SkipSet, overrides *registry.OverrideSet, log *logger.Logger) (*Pipeline, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extraction settings: %w", err)
	}
	if skips == nil {
		skips = registry.NewSkipSet()
	}
	if overrides == nil {
		overrides = registry.NewOverrideSet()
	}
	return &Pipeline{
		pages:     pages,
		settings:  settings,
		provider:  provider,
		skips:     skips,
		overrides: overrides,
		log:       log,
		cache:     make(map[int]*pageEntry),
	}, nil
}

// TotalCards returns the number of unique logical cards in the
// sequence. In duplex mode back cells share their front's logical id,
// so this is smaller than the flat index space.
func (p *Pipeline) TotalCards() int {
	return addressing.TotalCardCount(p.settings.Mode, p.pages, p.settings.Grid)
}

// AddressableCards returns the size of the flat card-index space:
// every cell on every active page. Enumeration and batch extraction
// walk this range; TotalCards only counts unique logical ids.
func (p *Pipeline) AddressableCards() int {
	return len(p.pages) * p.settings.Grid.CardsPerPage()
}

// Identity resolves the face and logical id of a card, with any manual
// per-cell override applied on top of the layout-derived identity.
func (p *Pipeline) Identity(cardIndex int) models.CardIdentity {
	pos := addressing.Locate(cardIndex, p.settings.Grid)
	if override := p.overrides.Get(pos.PageIndex, pos.Row, pos.Column); override != models.FaceUnknown {
		return addressing.IdentifyAs(cardIndex, p.pages, p.settings.Grid, p.settings.Mode, override)
	}
	return addressing.Identify(cardIndex, p.pages, p.settings.Grid, p.settings.Mode)
}

// IsSkipped reports whether the card's cell is marked skipped for its
// resolved face.
func (p *Pipeline) IsSkipped(cardIndex int) bool {
	pos := addressing.Locate(cardIndex, p.settings.Grid)
	return p.skips.IsSkipped(pos.PageIndex, pos.Row, pos.Column, p.Identity(cardIndex).Face)
}

// AvailableCardIDs enumerates the logical ids present for a face,
// excluding skipped cells, sorted and deduplicated.
func (p *Pipeline) AvailableCardIDs(face models.Face) []int {
	total := p.AddressableCards()
	seen := make(map[int]bool)
	var ids []int
	for i := 0; i < total; i++ {
		id := p.Identity(i)
		if id.Face != face || id.LogicalID == 0 {
			continue
		}
		if p.IsSkipped(i) {
			continue
		}
		if !seen[id.LogicalID] {
			seen[id.LogicalID] = true
			ids = append(ids, id.LogicalID)
		}
	}
	sort.Ints(ids)
	return ids
}

// surface renders the page once and shares the result. Concurrent
// extractions of cards on the same page block until the render lands.
func (p *Pipeline) surface(ctx context.Context, pageIndex int) (*image.RGBA, error) {
	p.mu.Lock()
	entry, ok := p.cache[pageIndex]
	if !ok {
		entry = &pageEntry{}
		p.cache[pageIndex] = entry
	}
	p.mu.Unlock()

	entry.once.Do(func() {
		entry.surface, entry.err = p.provider.RenderPage(ctx, pageIndex, geometry.ExtractionDPI)
	})
	return entry.surface, entry.err
}

// ReleasePage drops the cached surface for a page. High-resolution
// surfaces run tens of megabytes, so batch callers release pages they
// are done with.
func (p *Pipeline) ReleasePage(pageIndex int) {
	p.mu.Lock()
	delete(p.cache, pageIndex)
	p.mu.Unlock()
}

// ExtractCard crops, secondary-crops and rotates the card at
// cardIndex out of its rendered page. An out-of-range index returns
// ErrCardNotFound; render failures propagate wrapped with the card's
// position for diagnosis.
func (p *Pipeline) ExtractCard(ctx context.Context, cardIndex int) (*image.RGBA, error) {
	identity := p.Identity(cardIndex)
	if identity.Face == models.FaceUnknown {
		return nil, ErrCardNotFound
	}
	pos := addressing.Locate(cardIndex, p.settings.Grid)

	surface, err := p.surface(ctx, pos.PageIndex)
	if err != nil {
		return nil, fmt.Errorf("card %d (page %d, cell %d, %s mode): %w",
			cardIndex, pos.PageIndex, pos.CardOnPage, p.settings.Mode, err)
	}

	b := surface.Bounds()
	rect := geometry.CardRect(b.Dx(), b.Dy(), p.settings, pos.Row, pos.Column)
	rect = geometry.InnerCrop(rect, p.settings.CardCrop)

	card := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(card, card.Bounds(), surface, rect.Min.Add(b.Min), draw.Src)

	return geometry.Rotate(card, p.settings.Rotation.ForFace(identity.Face)), nil
}
