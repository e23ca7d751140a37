package storage

import (
	"context"
	"errors"

	"github.com/angelmondragon/storefront-cart/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQL stores cart payloads in the cart_snapshots table.
type SQL struct {
	db *gorm.DB
}

func NewSQL(db *gorm.DB) (*SQL, error) {
	if db == nil {
		return nil, errors.New("gorm connection required")
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Load(ctx context.Context, key string) (string, bool, error) {
	var snapshot models.CartSnapshot
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return snapshot.Payload, true, nil
}

func (s *SQL) Save(ctx context.Context, key, value string) error {
	snapshot := models.CartSnapshot{Key: key, Payload: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snapshot).Error
}

func (s *SQL) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
