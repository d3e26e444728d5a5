package domain

import (
	"strconv"
	"time"
)

type AssetIdentifier uint

func (i AssetIdentifier) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

type AssetStatus string

const (
	AssetStatusActive  AssetStatus = "active"
	AssetStatusRetired AssetStatus = "retired"
)

// Asset is an inventoried system or application subject to audits and
// vulnerability tracking. The catalog itself is maintained by an external
// inventory process; the portal reads it and keeps the liveness fields
// current.
type Asset struct {
	BaseModel

	Id          AssetIdentifier `gorm:"primaryKey;autoIncrement:true;column:id"`
	Name        string          `gorm:"column:name"`
	Type        string          `gorm:"column:type"`
	Address     string          `gorm:"column:address"` // IP address or hostname, used for liveness checks
	Criticality string          `gorm:"column:criticality"`
	Status      AssetStatus     `gorm:"column:status;index:idx_asset_status"`

	LastSeen  *time.Time `gorm:"column:last_seen"`
	Reachable bool       `gorm:"column:reachable"`
}

func (a *Asset) IsActive() bool {
	return a.Status == AssetStatusActive
}
