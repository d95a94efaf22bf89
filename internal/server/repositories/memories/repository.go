package memories

import (
	"context"

	"github.com/dmitrijs2005/keepsake/internal/server/models"
)

// Repository persists Memory records. Records are create-or-delete only;
// partial updates are not part of the contract.
type Repository interface {
	Create(ctx context.Context, memory *models.Memory) (*models.Memory, error)
	List(ctx context.Context) ([]*models.Memory, error)
	GetByID(ctx context.Context, id string) (*models.Memory, error)
	DeleteByID(ctx context.Context, id string) error
}
