package model

import (
	"time"

	"github.com/argus-sec/argus-portal/internal/domain"
)

// Asset is the wire representation of an inventoried system. The catalog is
// read-only through this API, only the liveness collector writes to it.
type Asset struct {
	Id          uint   `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Address     string `json:"address"`
	Criticality string `json:"criticality"`
	Status      string `json:"status"`

	LastSeen  *time.Time `json:"lastSeen"`
	Reachable bool       `json:"reachable"`
}

// Vulnerability is the wire representation of a tracked weakness. Read-only
// through this API, the records are fed by an external scanner.
type Vulnerability struct {
	Id             uint       `json:"id"`
	Title          string     `json:"title"`
	Severity       string     `json:"severity"`
	Status         string     `json:"status"`
	AssetId        *uint      `json:"assetId"`
	DiscoveredDate time.Time  `json:"discoveredDate"`
	ResolvedDate   *time.Time `json:"resolvedDate"`
}

// NewAsset creates a REST API Asset from a domain Asset.
func NewAsset(src *domain.Asset) *Asset {
	return &Asset{
		Id:          uint(src.Id),
		Name:        src.Name,
		Type:        src.Type,
		Address:     src.Address,
		Criticality: src.Criticality,
		Status:      string(src.Status),
		LastSeen:    src.LastSeen,
		Reachable:   src.Reachable,
	}
}

// NewAssets creates a slice of REST API Assets from a slice of domain Assets.
func NewAssets(src []domain.Asset) []Asset {
	dst := make([]Asset, 0, len(src))
	for i := range src {
		dst = append(dst, *NewAsset(&src[i]))
	}
	return dst
}

// NewVulnerability creates a REST API Vulnerability from a domain Vulnerability.
func NewVulnerability(src *domain.Vulnerability) *Vulnerability {
	var assetId *uint
	if src.AssetId != nil {
		id := uint(*src.AssetId)
		assetId = &id
	}

	return &Vulnerability{
		Id:             uint(src.Id),
		Title:          src.Title,
		Severity:       string(src.Severity),
		Status:         string(src.Status),
		AssetId:        assetId,
		DiscoveredDate: src.DiscoveredDate,
		ResolvedDate:   src.ResolvedDate,
	}
}

// NewVulnerabilities creates a slice of REST API Vulnerabilities from a slice
// of domain Vulnerabilities.
func NewVulnerabilities(src []domain.Vulnerability) []Vulnerability {
	dst := make([]Vulnerability, 0, len(src))
	for i := range src {
		dst = append(dst, *NewVulnerability(&src[i]))
	}
	return dst
}
