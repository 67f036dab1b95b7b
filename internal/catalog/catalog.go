// Package catalog owns the grouped hosting-package model: one logical plan
// is up to three Package rows (MONTHLY/QUARTERLY/YEARLY) sharing
// (name, serverId). The unit of mutation is always the whole group; no row
// is ever updated or deleted in isolation.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hostwire/hostpanel/internal/controlpanel"
	"github.com/hostwire/hostpanel/internal/models"
	"gorm.io/gorm"
)

// Catalog validation and lookup errors.
var (
	// ErrNameAndServerRequired indicates a create without name or server.
	ErrNameAndServerRequired = errors.New("catalog: package name and server are required")
	// ErrNoPositivePrice indicates a create with no cycle priced above zero.
	ErrNoPositivePrice = errors.New("catalog: at least one price must be provided")
	// ErrPackageNotFound indicates the addressed package row does not exist.
	ErrPackageNotFound = errors.New("catalog: package not found")
	// ErrServerNotFound indicates the addressed server does not exist.
	ErrServerNotFound = errors.New("catalog: server not found")
)

// ProviderClient lists remote packages from a server's control panel.
type ProviderClient interface {
	ListPackages(ctx context.Context, server *models.Server) ([]controlpanel.PackageTemplate, error)
}

// Manager implements the package catalog operations over the database and
// the control panel client.
type Manager struct {
	db       *gorm.DB
	provider ProviderClient
}

// NewManager constructs a Manager.
func NewManager(db *gorm.DB, provider ProviderClient) *Manager {
	return &Manager{db: db, provider: provider}
}

// PackageInput carries the create/update form fields. Quotas and prices
// arrive as strings exactly as the form submits them; normalization happens
// here, not in the handler.
type PackageInput struct {
	Name                string `json:"name"`
	ServerID            string `json:"serverId"`
	Description         string `json:"description"`
	ProviderPackageName string `json:"providerPackageName"`

	DiskSpace     string `json:"diskSpace"`
	Bandwidth     string `json:"bandwidth"`
	Domains       string `json:"domains"`
	EmailAccounts string `json:"emailAccounts"`
	Databases     string `json:"databases"`
	Features      string `json:"features"`
	Status        string `json:"status"`

	MonthlyPrice   string `json:"monthlyPrice"`
	QuarterlyPrice string `json:"quarterlyPrice"`
	YearlyPrice    string `json:"yearlyPrice"`
}

// cyclePrice pairs a billing cycle with a submitted price.
type cyclePrice struct {
	cycle string
	price float64
}

// suppliedPrices extracts the positively priced cycles from the input, in
// the fixed monthly/quarterly/yearly order.
func suppliedPrices(input PackageInput) []cyclePrice {
	var out []cyclePrice
	if price, ok := parsePositivePrice(input.MonthlyPrice); ok {
		out = append(out, cyclePrice{models.BillingCycleMonthly, price})
	}
	if price, ok := parsePositivePrice(input.QuarterlyPrice); ok {
		out = append(out, cyclePrice{models.BillingCycleQuarterly, price})
	}
	if price, ok := parsePositivePrice(input.YearlyPrice); ok {
		out = append(out, cyclePrice{models.BillingCycleYearly, price})
	}
	return out
}

// List returns all package rows joined with their servers, newest first.
func (m *Manager) List(ctx context.Context) ([]models.Package, error) {
	var rows []models.Package
	if errFind := m.db.WithContext(ctx).
		Preload("Server").
		Order("created_at DESC").
		Find(&rows).Error; errFind != nil {
		return nil, errFind
	}
	return rows, nil
}

// Get returns one package row with its server.
func (m *Manager) Get(ctx context.Context, id string) (*models.Package, error) {
	var row models.Package
	if errFind := m.db.WithContext(ctx).Preload("Server").Where("id = ?", id).First(&row).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, errFind
	}
	return &row, nil
}

// Create inserts one package row per positively priced billing cycle, all
// rows carrying identical shared attributes. Inserts run in one transaction
// so a group never exists partially.
func (m *Manager) Create(ctx context.Context, input PackageInput) ([]models.Package, error) {
	name := strings.TrimSpace(input.Name)
	serverID := strings.TrimSpace(input.ServerID)
	if name == "" || serverID == "" {
		return nil, ErrNameAndServerRequired
	}

	prices := suppliedPrices(input)
	if len(prices) == 0 {
		return nil, ErrNoPositivePrice
	}

	shared := models.Package{
		Name:                name,
		ServerID:            serverID,
		ProviderPackageName: strings.TrimSpace(input.ProviderPackageName),
		Description:         input.Description,
		DiskSpace:           ParseQuota(input.DiskSpace),
		Bandwidth:           ParseBandwidth(input.Bandwidth),
		Domains:             ParseQuota(input.Domains),
		EmailAccounts:       ParseQuota(input.EmailAccounts),
		Databases:           ParseQuota(input.Databases),
		Features:            input.Features,
		Status:              NormalizeStatus(input.Status),
	}

	created := make([]models.Package, 0, len(prices))
	errTx := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range prices {
			row := shared
			row.ID = uuid.NewString()
			row.BillingCycle = entry.cycle
			row.Price = entry.price
			if errCreate := tx.Create(&row).Error; errCreate != nil {
				return errCreate
			}
			created = append(created, row)
		}
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}

	m.attachServer(ctx, created)
	return created, nil
}

// Update rewrites every row of the group containing the addressed row. The
// group is resolved by the addressed row's current (name, serverId); shared
// attributes are recomputed with fallback to the addressed row's values, each
// row keeps its own billing cycle, and a row's price changes only when its
// cycle's price field was supplied. Update never adds new cycle rows.
func (m *Manager) Update(ctx context.Context, id string, input PackageInput) ([]models.Package, error) {
	var existing models.Package
	if errFind := m.db.WithContext(ctx).Where("id = ?", id).First(&existing).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, errFind
	}

	var group []models.Package
	if errFind := m.db.WithContext(ctx).
		Where("name = ? AND server_id = ?", existing.Name, existing.ServerID).
		Order("created_at ASC").
		Find(&group).Error; errFind != nil {
		return nil, errFind
	}

	shared := models.Package{
		Name:                fallback(input.Name, existing.Name),
		ServerID:            fallback(input.ServerID, existing.ServerID),
		ProviderPackageName: fallback(input.ProviderPackageName, existing.ProviderPackageName),
		Description:         fallback(input.Description, existing.Description),
		Features:            fallback(input.Features, existing.Features),
		DiskSpace:           existing.DiskSpace,
		Bandwidth:           existing.Bandwidth,
		Domains:             existing.Domains,
		EmailAccounts:       existing.EmailAccounts,
		Databases:           existing.Databases,
		Status:              existing.Status,
	}
	if strings.TrimSpace(input.DiskSpace) != "" {
		shared.DiskSpace = ParseQuota(input.DiskSpace)
	}
	if strings.TrimSpace(input.Bandwidth) != "" {
		shared.Bandwidth = ParseBandwidth(input.Bandwidth)
	}
	if strings.TrimSpace(input.Domains) != "" {
		shared.Domains = ParseQuota(input.Domains)
	}
	if strings.TrimSpace(input.EmailAccounts) != "" {
		shared.EmailAccounts = ParseQuota(input.EmailAccounts)
	}
	if strings.TrimSpace(input.Databases) != "" {
		shared.Databases = ParseQuota(input.Databases)
	}
	if strings.TrimSpace(input.Status) != "" {
		shared.Status = NormalizeStatus(input.Status)
	}

	prices := map[string]float64{}
	for _, entry := range suppliedPrices(input) {
		prices[entry.cycle] = entry.price
	}

	errTx := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range group {
			row := &group[i]
			row.Name = shared.Name
			row.ServerID = shared.ServerID
			row.ProviderPackageName = shared.ProviderPackageName
			row.Description = shared.Description
			row.Features = shared.Features
			row.DiskSpace = shared.DiskSpace
			row.Bandwidth = shared.Bandwidth
			row.Domains = shared.Domains
			row.EmailAccounts = shared.EmailAccounts
			row.Databases = shared.Databases
			row.Status = shared.Status
			if price, ok := prices[row.BillingCycle]; ok {
				row.Price = price
			}
			if errSave := tx.Save(row).Error; errSave != nil {
				return errSave
			}
		}
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}

	m.attachServer(ctx, group)
	return group, nil
}

// Delete removes every row sharing the addressed row's (name, serverId) and
// returns the count removed. Partial group deletion is not reachable.
func (m *Manager) Delete(ctx context.Context, id string) (int64, error) {
	var existing models.Package
	if errFind := m.db.WithContext(ctx).Where("id = ?", id).First(&existing).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return 0, ErrPackageNotFound
		}
		return 0, errFind
	}

	var removed int64
	errTx := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("name = ? AND server_id = ?", existing.Name, existing.ServerID).
			Delete(&models.Package{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	if errTx != nil {
		return 0, errTx
	}
	return removed, nil
}

// FetchProviderPackages lists remote packages from the server's control
// panel, mapped into the create-form shape. The remote result is never
// cached and the call is never retried.
func (m *Manager) FetchProviderPackages(ctx context.Context, serverID string) ([]controlpanel.PackageTemplate, error) {
	var server models.Server
	if errFind := m.db.WithContext(ctx).Where("id = ?", serverID).First(&server).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrServerNotFound
		}
		return nil, errFind
	}
	return m.provider.ListPackages(ctx, &server)
}

// attachServer loads the rows' server once and attaches it. A lookup failure
// only leaves the association empty; the rows themselves are already valid.
func (m *Manager) attachServer(ctx context.Context, rows []models.Package) {
	if len(rows) == 0 {
		return
	}
	var server models.Server
	if errFind := m.db.WithContext(ctx).Where("id = ?", rows[0].ServerID).First(&server).Error; errFind != nil {
		return
	}
	for i := range rows {
		rows[i].Server = &server
	}
}
