package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/combination"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// ListCombinations handles GET /api/v1/combinations?active=&limit=&offset=.
// Only active records are listed unless active=false.
func (s *Server) ListCombinations(c echo.Context, params servers.ListCombinationsParams) error {
	activeOnly := params.Active == nil || *params.Active
	query, err := queries.NewListCombinationsQuery(activeOnly, derefInt(params.Limit), derefInt(params.Offset))
	if err != nil {
		return badRequest(c, "Invalid paging", err)
	}

	views, err := s.h.ListCombinations.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err, "Failed to list combinations")
	}
	return c.JSON(http.StatusOK, toCombinations(views))
}

// SearchCombinations handles GET /api/v1/combinations/search?productId=.
func (s *Server) SearchCombinations(c echo.Context, params servers.SearchCombinationsParams) error {
	query, err := queries.NewSearchCombinationsByProductQuery(params.ProductId)
	if err != nil {
		return badRequest(c, "Invalid search", err)
	}

	views, err := s.h.SearchCombinations.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err, "Failed to search combinations")
	}
	return c.JSON(http.StatusOK, toCombinations(views))
}

// GetCombinationStats handles GET /api/v1/combinations/stats.
func (s *Server) GetCombinationStats(c echo.Context) error {
	stats, err := s.h.CombinationStatsFor.Handle(c.Request().Context(), queries.NewCombinationStatsQuery())
	if err != nil {
		return writeError(c, err, "Failed to compute combination stats")
	}
	return c.JSON(http.StatusOK, CombinationStats(stats))
}

// FindCombination handles POST /api/v1/combinations/lookup. Inactive records
// are returned too.
func (s *Server) FindCombination(c echo.Context) error {
	var req CombinationLookup
	if ok, err := bind(c, &req); !ok {
		return err
	}

	query, err := queries.NewFindCombinationQuery(toCombinationItems(req.Items))
	if err != nil {
		return badRequest(c, "Invalid lookup", err)
	}

	view, err := s.h.FindCombination.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err, "Failed to find combination")
	}
	return c.JSON(http.StatusOK, toCombination(view))
}

// SaveCombination handles POST /api/v1/combinations.
func (s *Server) SaveCombination(c echo.Context) error {
	var req NewCombination
	if ok, err := bind(c, &req); !ok {
		return err
	}

	dims, err := kernel.NewDimensions(req.Dimensions.Length, req.Dimensions.Width, req.Dimensions.Height)
	if err != nil {
		return badRequest(c, "Invalid dimensions", err)
	}

	cmd, err := commands.NewSaveCombinationCommand(toCombinationItems(req.Items), req.Weight, dims, req.VerifiedBy, req.Notes)
	if err != nil {
		return badRequest(c, "Invalid combination", err)
	}

	hash, err := s.h.SaveCombination.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err, "Failed to save combination")
	}
	return c.JSON(http.StatusCreated, map[string]string{"hash": hash})
}

// UpdateCombination handles PUT /api/v1/combinations/:hash.
func (s *Server) UpdateCombination(c echo.Context, hash string) error {
	var req CombinationUpdate
	if ok, err := bind(c, &req); !ok {
		return err
	}

	dims, err := kernel.NewDimensions(req.Dimensions.Length, req.Dimensions.Width, req.Dimensions.Height)
	if err != nil {
		return badRequest(c, "Invalid dimensions", err)
	}

	cmd, err := commands.NewUpdateCombinationCommand(hash, req.Weight, dims, req.UpdatedBy, req.Notes)
	if err != nil {
		return badRequest(c, "Invalid combination update", err)
	}

	if err = s.h.UpdateCombination.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err, "Failed to update combination")
	}
	return c.NoContent(http.StatusNoContent)
}

// DeactivateCombination handles DELETE /api/v1/combinations/:hash?by=.
func (s *Server) DeactivateCombination(c echo.Context, hash string, params servers.DeactivateCombinationParams) error {
	cmd, err := commands.NewDeactivateCombinationCommand(hash, params.By)
	if err != nil {
		return badRequest(c, "Invalid deactivation", err)
	}

	if err = s.h.DeactivateCombo.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err, "Failed to deactivate combination")
	}
	return c.NoContent(http.StatusNoContent)
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func toCombinationItems(items []CombinationItemDTO) []combination.Item {
	out := make([]combination.Item, len(items))
	for i, it := range items {
		out[i] = combination.Item(it)
	}
	return out
}

func toCombinations(views []queries.CombinationView) []Combination {
	out := make([]Combination, len(views))
	for i, v := range views {
		out[i] = toCombination(v)
	}
	return out
}

func toCombination(v queries.CombinationView) Combination {
	items := make([]CombinationItemDTO, len(v.Items))
	for i, it := range v.Items {
		items[i] = CombinationItemDTO(it)
	}
	return Combination{
		Hash:  v.Hash,
		Items: items,
		Dimensions: DimensionsDTO{
			Length: v.Dimensions.Length(),
			Width:  v.Dimensions.Width(),
			Height: v.Dimensions.Height(),
		},
		Weight:        v.Weight,
		VerifiedBy:    v.VerifiedBy,
		VerifiedAt:    v.VerifiedAt,
		Notes:         v.Notes,
		UsageCount:    v.UsageCount,
		LastUsedAt:    v.LastUsedAt,
		IsActive:      v.IsActive,
		DeactivatedBy: v.DeactivatedBy,
		DeactivatedAt: v.DeactivatedAt,
	}
}
