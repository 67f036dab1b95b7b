package catalog

import "github.com/hostwire/hostpanel/internal/models"

// CyclePrice references one billing-cycle row of a group.
type CyclePrice struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

// GroupedPackage is the read-side view of a logical hosting plan: the shared
// attributes of a (name, serverId) group plus whichever cycle rows exist. It
// is a projection rebuilt from the package rows on every read, never stored.
type GroupedPackage struct {
	Name                string         `json:"name"`
	ServerID            string         `json:"serverId"`
	Server              *models.Server `json:"server,omitempty"`
	Description         string         `json:"description"`
	ProviderPackageName string         `json:"providerPackageName"`

	DiskSpace     int    `json:"diskSpace"`
	Bandwidth     int64  `json:"bandwidth"`
	Domains       int    `json:"domains"`
	EmailAccounts int    `json:"emailAccounts"`
	Databases     int    `json:"databases"`
	Features      string `json:"features"`
	Status        string `json:"status"`

	Monthly   *CyclePrice `json:"monthly,omitempty"`
	Quarterly *CyclePrice `json:"quarterly,omitempty"`
	Yearly    *CyclePrice `json:"yearly,omitempty"`
}

// Group folds package rows into one GroupedPackage per distinct
// (serverId, name), preserving first-seen order. Shared attributes are taken
// from the first row of each group; by construction every sibling carries the
// same values.
func Group(rows []models.Package) []GroupedPackage {
	type key struct {
		serverID string
		name     string
	}

	index := map[key]int{}
	grouped := make([]GroupedPackage, 0, len(rows))

	for i := range rows {
		row := &rows[i]
		k := key{serverID: row.ServerID, name: row.Name}
		at, seen := index[k]
		if !seen {
			grouped = append(grouped, GroupedPackage{
				Name:                row.Name,
				ServerID:            row.ServerID,
				Server:              row.Server,
				Description:         row.Description,
				ProviderPackageName: row.ProviderPackageName,
				DiskSpace:           row.DiskSpace,
				Bandwidth:           row.Bandwidth,
				Domains:             row.Domains,
				EmailAccounts:       row.EmailAccounts,
				Databases:           row.Databases,
				Features:            row.Features,
				Status:              row.Status,
			})
			at = len(grouped) - 1
			index[k] = at
		}

		ref := &CyclePrice{ID: row.ID, Price: row.Price}
		switch row.BillingCycle {
		case models.BillingCycleMonthly:
			grouped[at].Monthly = ref
		case models.BillingCycleQuarterly:
			grouped[at].Quarterly = ref
		case models.BillingCycleYearly:
			grouped[at].Yearly = ref
		}
	}

	return grouped
}
