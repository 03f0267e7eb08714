package domain

import (
	"errors"
	"time"
)

var ErrPlanNotFound = errors.New("plan not found")

// MinecraftPlan is a game-server tier. Pure reference data, admin-edited.
type MinecraftPlan struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Category  string    `json:"category" bson:"category"`
	RAMGb     int       `json:"ram_gb" bson:"ram_gb"`
	StorageGb int       `json:"storage_gb" bson:"storage_gb"`
	CPUCores  int       `json:"cpu_cores" bson:"cpu_cores"`
	Slots     int       `json:"slots" bson:"slots"`
	Price     string    `json:"price" bson:"price"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// VPSPlan is a virtual-server tier.
type VPSPlan struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Tier        string    `json:"tier" bson:"tier"`
	RAMGb       int       `json:"ram_gb" bson:"ram_gb"`
	StorageGb   int       `json:"storage_gb" bson:"storage_gb"`
	CPUCores    int       `json:"cpu_cores" bson:"cpu_cores"`
	BandwidthTb int       `json:"bandwidth_tb" bson:"bandwidth_tb"`
	Price       string    `json:"price" bson:"price"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// TLD is a domain-extension pricing record.
type TLD struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	RegisterCost string    `json:"register_cost" bson:"register_cost"`
	RenewCost    string    `json:"renew_cost" bson:"renew_cost"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// DomainFeature is a marketing bullet shown on the domain landing page.
type DomainFeature struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Icon        string    `json:"icon,omitempty" bson:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
