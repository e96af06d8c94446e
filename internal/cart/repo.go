package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/pizzaria-backend/pkg/db/models"
)

// Repository manages persistent cart lines.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new cart line. Repeated adds of the same item produce
// separate lines; the ledger never merges.
func (r *Repository) Create(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// FindForUser loads a line only when it belongs to the given user.
func (r *Repository) FindForUser(ctx context.Context, userID, lineID uuid.UUID) (*models.CartLine, error) {
	var line models.CartLine
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// ListForUser returns the user's cart in insertion order.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// ListForUserLocked behaves like ListForUser but takes row locks inside a
// transaction so concurrent checkouts serialize. SQLite has no FOR UPDATE;
// its writer lock covers the same guarantee in tests.
func (r *Repository) ListForUserLocked(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var lines []models.CartLine
	err := query.
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// UpdateQuantity replaces the quantity on a line owned by the user.
func (r *Repository) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartLine{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		UpdateColumn("quantity", quantity)
	return result.RowsAffected, result.Error
}

// Delete removes a line owned by the user.
func (r *Repository) Delete(ctx context.Context, userID, lineID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&models.CartLine{})
	return result.RowsAffected, result.Error
}

// DeleteAllForUser clears the user's cart.
func (r *Repository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartLine{}).Error
}

// CountForUser sums quantities across the user's lines. The count is always
// derived; no stored counter can drift from the ledger.
func (r *Repository) CountForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count *int
	err := r.db.WithContext(ctx).
		Model(&models.CartLine{}).
		Select("SUM(quantity)").
		Where("user_id = ?", userID).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	if count == nil {
		return 0, nil
	}
	return *count, nil
}
