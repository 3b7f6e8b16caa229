package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/combination"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Resolution is the outcome of dimension resolution. When
// NeedsManualVerification is set because an item could not be resolved,
// Weight and Dimensions are nil and ResolvedItems are the input items.
// For an unverified multi-item combination they carry the computed aggregate
// as a suggestion for the operator.
type Resolution struct {
	Weight                  *float64
	Dimensions              *kernel.Dimensions
	NeedsManualVerification bool
	ResolvedItems           []order.Item
	CombinationHash         string
	FromCache               bool
	Reason                  string
}

// Reasons reported on a Resolution.
const (
	ResolutionFromCatalog         = "resolved_from_catalog"
	ResolutionFromCache           = "verified_combination"
	ResolutionUnverifiedMultiItem = "unverified_multi_item_combination"
	ResolutionMissingIdentity     = "item_missing_product_or_sku"
	ResolutionCatalogUnavailable  = "catalog_unavailable"
	ResolutionProductNotFound     = "product_not_found"
	ResolutionVariationNotFound   = "variation_not_found"
	ResolutionMissingMeasurements = "variation_missing_weight_or_dimensions"
)

// ResolveDimensionsCommandHandler resolves an order's package weight and box.
//
// Per item it reads catalog variation data, caching catalog reads per product
// id for the duration of one call. Any unresolvable item stops resolution and
// requests manual verification. Resolved lines are aggregated by
// PackageAggregator, then the verified combination cache is consulted:
//   - active hit: usage is recorded (best-effort) and the cached values win
//   - miss with more than one line: manual verification is required
//   - single line: the aggregate is final
type ResolveDimensionsCommandHandler struct {
	catalog    ports.CatalogResolver
	uowFactory CombinationUoWFactory
	aggregator services.PackageAggregator
	clock      ports.Clock
	logger     *slog.Logger
}

func NewResolveDimensionsCommandHandler(
	catalog ports.CatalogResolver,
	uowFactory CombinationUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) ResolveDimensionsCommandHandler {
	return ResolveDimensionsCommandHandler{
		catalog:    catalog,
		uowFactory: uowFactory,
		aggregator: services.NewPackageAggregator(),
		clock:      clock,
		logger:     logger.With("component", "dimension_resolver"),
	}
}

func (h ResolveDimensionsCommandHandler) Handle(ctx context.Context, cmd ResolveDimensionsCommand) (Resolution, error) {
	if err := cmd.Validate(); err != nil {
		return Resolution{}, err
	}

	items := cmd.Items()
	resolved := make([]order.Item, 0, len(items))
	lines := make([]services.PackageLine, 0, len(items))
	catalogCache := make(map[string][]ports.CatalogVariation)

	for _, item := range items {
		if !item.HasIdentity() {
			return manualResolution(items, ResolutionMissingIdentity), nil
		}

		variations, ok := catalogCache[item.ProductID()]
		if !ok {
			var err error
			variations, err = h.catalog.Variations(ctx, item.ProductID())
			if errors.Is(err, errs.ErrObjectNotFound) {
				return manualResolution(items, ResolutionProductNotFound), nil
			}
			if err != nil {
				h.logger.WarnContext(ctx, "Catalog lookup failed",
					"product_id", item.ProductID(), "error", err)
				return manualResolution(items, ResolutionCatalogUnavailable), nil
			}
			catalogCache[item.ProductID()] = variations
		}

		variation, found := findVariation(variations, item.SKU())
		if !found {
			return manualResolution(items, ResolutionVariationNotFound), nil
		}
		if variation.Weight <= 0 {
			return manualResolution(items, ResolutionMissingMeasurements), nil
		}
		dims, err := kernel.NewDimensions(variation.Length, variation.Width, variation.Height)
		if err != nil {
			return manualResolution(items, ResolutionMissingMeasurements), nil
		}

		resolved = append(resolved, item.Resolved(variation.VariationID, variation.Weight, dims, variation.TaxCode))
		lines = append(lines, services.PackageLine{Weight: variation.Weight, Dimensions: dims, Quantity: item.Quantity()})
	}

	weight, box, err := h.aggregator.Aggregate(lines)
	if err != nil {
		return Resolution{}, fmt.Errorf("aggregate package: %w", err)
	}

	hash := combination.HashItems(combinationItems(items))
	result := Resolution{
		Weight:          &weight,
		Dimensions:      &box,
		ResolvedItems:   resolved,
		CombinationHash: hash,
		Reason:          ResolutionFromCatalog,
	}

	repo := h.uowFactory.Create().CombinationRepository()
	cached, err := repo.Get(ctx, hash)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "Combination lookup failed", "combination_hash", hash, "error", err)
		cached = nil
	}

	if cached != nil && cached.IsActive() {
		if usageErr := repo.RecordUsage(ctx, hash, h.clock.Now()); usageErr != nil {
			h.logger.ErrorContext(ctx, "Failed to record combination usage",
				"combination_hash", hash, "error", usageErr)
		}
		cachedWeight, cachedBox := cached.Weight(), cached.Dimensions()
		result.Weight = &cachedWeight
		result.Dimensions = &cachedBox
		result.FromCache = true
		result.Reason = ResolutionFromCache
		return result, nil
	}

	if len(items) > 1 {
		result.NeedsManualVerification = true
		result.Reason = ResolutionUnverifiedMultiItem
	}

	return result, nil
}

func manualResolution(items []order.Item, reason string) Resolution {
	return Resolution{
		NeedsManualVerification: true,
		ResolvedItems:           items,
		Reason:                  reason,
	}
}

func findVariation(variations []ports.CatalogVariation, sku string) (ports.CatalogVariation, bool) {
	for _, v := range variations {
		if v.SKU == sku {
			return v, true
		}
	}
	return ports.CatalogVariation{}, false
}

func combinationItems(items []order.Item) []combination.Item {
	out := make([]combination.Item, len(items))
	for i, it := range items {
		out[i] = combination.Item{ProductID: it.ProductID(), SKU: it.SKU(), Quantity: it.Quantity()}
	}
	return out
}
