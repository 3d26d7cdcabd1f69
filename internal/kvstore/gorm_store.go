package kvstore

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the backing row for one key.
type Record struct {
	Key       string         `gorm:"primaryKey;column:key"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (Record) TableName() string { return "kv_records" }

type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store backed by the kv_records table.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Get(key string, dest interface{}) error {
	var rec Record
	err := s.db.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(rec.Value, dest)
}

func (s *gormStore) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	rec := Record{Key: key, Value: datatypes.JSON(raw), UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&rec).Error
}

func (s *gormStore) Keys() ([]string, error) {
	var keys []string
	err := s.db.Model(&Record{}).Order("key").Pluck("key", &keys).Error
	return keys, err
}
