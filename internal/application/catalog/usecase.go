package catalog

import (
	"context"
	"strings"

	"github.com/jhoicas/foodorder-api/internal/application/dto"
	"github.com/jhoicas/foodorder-api/internal/domain"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

// AllCategories valor de categoría que el cliente envía para no filtrar.
const AllCategories = "all"

// CatalogUseCase consultas del menú (solo lectura).
type CatalogUseCase struct {
	repo repository.MenuRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.MenuRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// ListCategories categorías activas por orden de visualización.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{
			ID:           c.ID,
			Name:         c.Name,
			Icon:         c.Icon,
			DisplayOrder: c.DisplayOrder,
		})
	}
	return out, nil
}

// ListItems platos activos; categoryID vacío o "all" devuelve todo el menú.
func (uc *CatalogUseCase) ListItems(ctx context.Context, categoryID string) ([]dto.MenuItemResponse, error) {
	return uc.list(ctx, repository.MenuFilter{CategoryID: normalizeCategory(categoryID)})
}

// Search busca por nombre (sin distinguir mayúsculas), opcionalmente dentro de una categoría.
// Un término vacío equivale a ListItems.
func (uc *CatalogUseCase) Search(ctx context.Context, term, categoryID string) ([]dto.MenuItemResponse, error) {
	return uc.list(ctx, repository.MenuFilter{
		CategoryID: normalizeCategory(categoryID),
		Search:     strings.TrimSpace(term),
	})
}

// GetItem plato activo por ID.
func (uc *CatalogUseCase) GetItem(ctx context.Context, id string) (*dto.MenuItemResponse, error) {
	item, err := uc.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrMenuItemNotFound
	}
	resp := ToMenuItemResponse(item)
	return &resp, nil
}

func (uc *CatalogUseCase) list(ctx context.Context, filter repository.MenuFilter) ([]dto.MenuItemResponse, error) {
	items, err := uc.repo.ListItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToMenuItemResponse(it))
	}
	return out, nil
}

func normalizeCategory(categoryID string) string {
	categoryID = strings.TrimSpace(categoryID)
	if strings.EqualFold(categoryID, AllCategories) {
		return ""
	}
	return categoryID
}

// ToMenuItemResponse convierte la entidad a DTO.
func ToMenuItemResponse(m *entity.MenuItem) dto.MenuItemResponse {
	resp := dto.MenuItemResponse{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		CategoryID:      m.CategoryID,
		BasePrice:       m.BasePrice,
		Image:           m.Image,
		InStock:         m.InStock,
		Rating:          m.Rating,
		PreparationTime: m.PreparationTime,
		Variants:        make([]dto.VariantResponse, 0, len(m.Variants)),
		Customizations:  make([]dto.CustomizationResponse, 0, len(m.Customizations)),
	}
	if m.Category != nil {
		resp.Category = &dto.CategoryRef{ID: m.Category.ID, Name: m.Category.Name, Icon: m.Category.Icon}
	}
	for _, v := range m.Variants {
		resp.Variants = append(resp.Variants, dto.VariantResponse{
			ID: v.ID, Name: v.Name, Price: v.Price, IsDefault: v.IsDefault,
		})
	}
	for _, c := range m.Customizations {
		resp.Customizations = append(resp.Customizations, dto.CustomizationResponse{
			ID: c.ID, Name: c.Name, Price: c.Price, IsFree: c.IsFree, Category: c.Category,
		})
	}
	return resp
}
