package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shopify-sync/internal/domain/model"
)

// ProductsService is the local inventory table. Every operation is scoped by
// merchant key; rows never cross that boundary.
type ProductsService interface {
	GetAll(ctx context.Context, merchantKey string) ([]model.ProductRecord, error)
	GetOne(ctx context.Context, merchantKey, externalID string) (*model.ProductRecord, error)
	Upsert(ctx context.Context, merchantKey string, record model.ProductRecord) (bool, error)
	DeleteAll(ctx context.Context, merchantKey string) (int64, error)
}

type MysqlProducts struct {
	db *sql.DB
}

func NewProducts(db *sql.DB) *MysqlProducts {
	return &MysqlProducts{db: db}
}

const createTableStatement = `
CREATE TABLE IF NOT EXISTS products (
	id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
	merchant_key VARCHAR(64) NOT NULL,
	external_id VARCHAR(64) NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	image_url TEXT,
	` + "`condition`" + ` VARCHAR(32) NOT NULL DEFAULT '',
	brand VARCHAR(128) NOT NULL DEFAULT '',
	size VARCHAR(64) NOT NULL DEFAULT '',
	price VARCHAR(64) NOT NULL DEFAULT '',
	inventory_quantity INT NOT NULL DEFAULT 0,
	version BIGINT NOT NULL DEFAULT 1,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	PRIMARY KEY (id),
	UNIQUE KEY uniq_merchant_external (merchant_key, external_id),
	KEY idx_external_id (external_id),
	KEY idx_merchant_key (merchant_key)
)`

func (s *MysqlProducts) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createTableStatement)
	if err != nil {
		return fmt.Errorf("products schema: %w", err)
	}
	return nil
}

const selectColumns = "merchant_key, external_id, title, COALESCE(description, ''), COALESCE(image_url, ''), `condition`, brand, size, price, inventory_quantity, version, updated_at"

func (s *MysqlProducts) GetAll(ctx context.Context, merchantKey string) ([]model.ProductRecord, error) {
	merchantKey = strings.TrimSpace(merchantKey)
	if merchantKey == "" {
		return nil, errors.New("merchant key is required")
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM products WHERE merchant_key = ?",
		merchantKey,
	)
	if err != nil {
		return nil, fmt.Errorf("products select: %w", err)
	}
	defer rows.Close()

	var records []model.ProductRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("products scan: %w", err)
	}
	return records, nil
}

func (s *MysqlProducts) GetOne(ctx context.Context, merchantKey, externalID string) (*model.ProductRecord, error) {
	merchantKey = strings.TrimSpace(merchantKey)
	externalID = strings.TrimSpace(externalID)
	if merchantKey == "" || externalID == "" {
		return nil, errors.New("merchant key and external id are required")
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM products WHERE merchant_key = ? AND external_id = ?",
		merchantKey, externalID,
	)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert inserts or fully updates the row keyed by (merchantKey, externalId).
// The version column bumps on every write so concurrent writers are
// detectable after the fact. Returns true when a new row was inserted.
func (s *MysqlProducts) Upsert(ctx context.Context, merchantKey string, record model.ProductRecord) (bool, error) {
	merchantKey = strings.TrimSpace(merchantKey)
	externalID := strings.TrimSpace(record.ExternalID)
	if merchantKey == "" || externalID == "" {
		return false, errors.New("merchant key and external id are required")
	}
	if record.InventoryQuantity < 0 {
		return false, fmt.Errorf("inventory quantity must be non-negative external_id=%s", externalID)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO products
			(merchant_key, external_id, title, description, image_url, `+"`condition`"+`, brand, size, price, inventory_quantity, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON DUPLICATE KEY UPDATE
			title = VALUES(title),
			description = VALUES(description),
			image_url = VALUES(image_url),
			`+"`condition`"+` = VALUES(`+"`condition`"+`),
			brand = VALUES(brand),
			size = VALUES(size),
			price = VALUES(price),
			inventory_quantity = VALUES(inventory_quantity),
			version = version + 1`,
		merchantKey,
		externalID,
		record.Title,
		record.Description,
		record.ImageURL,
		record.Condition,
		record.Brand,
		record.Size,
		record.Price,
		record.InventoryQuantity,
	)
	if err != nil {
		return false, fmt.Errorf("products upsert: %w", err)
	}

	// MySQL reports 1 affected row for an insert, 2 for an update through
	// ON DUPLICATE KEY.
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("products upsert result: %w", err)
	}
	return affected == 1, nil
}

func (s *MysqlProducts) DeleteAll(ctx context.Context, merchantKey string) (int64, error) {
	merchantKey = strings.TrimSpace(merchantKey)
	if merchantKey == "" {
		return 0, errors.New("merchant key is required")
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE merchant_key = ?", merchantKey)
	if err != nil {
		return 0, fmt.Errorf("products delete: %w", err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (model.ProductRecord, error) {
	var record model.ProductRecord
	err := row.Scan(
		&record.MerchantKey,
		&record.ExternalID,
		&record.Title,
		&record.Description,
		&record.ImageURL,
		&record.Condition,
		&record.Brand,
		&record.Size,
		&record.Price,
		&record.InventoryQuantity,
		&record.Version,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record, err
		}
		return record, fmt.Errorf("products scan row: %w", err)
	}
	return record, nil
}
