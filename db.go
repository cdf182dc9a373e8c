package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"home_telemetry/model"
)

// SnapshotRow is the single live row holding the latest snapshot as JSON.
type SnapshotRow struct {
	ID        uint `gorm:"primaryKey"`
	Data      string
	UpdatedAt time.Time
}

// AlertRow is one evaluated threshold violation.
type AlertRow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `json:"kind"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

var db *gorm.DB

// initDb opens the shared in-memory live store. Nothing here survives a
// restart, which is intended: the rows are operational state, not records.
func initDb() {
	var dbfile = "file::memory:?cache=shared"
	Db, err := gorm.Open(sqlite.Open(dbfile), &gorm.Config{})
	if err != nil {
		log.Panic(err)
	}

	Db.AutoMigrate(&SnapshotRow{}, &AlertRow{})
	db = Db
}

func storeSnapshot(s *model.Snapshot) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	row := SnapshotRow{ID: 1, Data: string(raw), UpdatedAt: time.Now()}
	return db.Save(&row).Error
}

func storeAlerts(events []model.AlertEvent) error {
	for _, e := range events {
		row := AlertRow{Kind: e.Kind, Severity: e.Severity, Message: e.Message, Value: e.Value}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}
	return pruneAlerts(cfg.AlertRetention)
}

// pruneAlerts keeps only the newest keep rows.
func pruneAlerts(keep int) error {
	if keep < 1 {
		keep = 1
	}
	var count int64
	if err := db.Model(&AlertRow{}).Count(&count).Error; err != nil {
		return err
	}
	if count <= int64(keep) {
		return nil
	}
	var cutoff AlertRow
	if err := db.Model(&AlertRow{}).Order("id desc").Offset(keep - 1).First(&cutoff).Error; err != nil {
		return err
	}
	return db.Delete(&AlertRow{}, "id < ?", cutoff.ID).Error
}

func recentAlerts(limit int) ([]AlertRow, error) {
	var rows []AlertRow
	err := db.Model(&AlertRow{}).Order("id desc").Limit(limit).Find(&rows).Error
	return rows, err
}
