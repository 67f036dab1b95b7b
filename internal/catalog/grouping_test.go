package catalog

import (
	"testing"

	"github.com/hostwire/hostpanel/internal/models"
)

func TestGroupFoldsRowsByNameAndServer(t *testing.T) {
	rows := []models.Package{
		{ID: "m1", Name: "Starter", ServerID: "s1", DiskSpace: 10, BillingCycle: models.BillingCycleMonthly, Price: 9.99},
		{ID: "y1", Name: "Starter", ServerID: "s1", DiskSpace: 10, BillingCycle: models.BillingCycleYearly, Price: 89.99},
		{ID: "m2", Name: "Business", ServerID: "s1", DiskSpace: 50, BillingCycle: models.BillingCycleMonthly, Price: 29.99},
	}

	grouped := Group(rows)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(grouped))
	}

	starter := grouped[0]
	if starter.Name != "Starter" || starter.DiskSpace != 10 {
		t.Fatalf("unexpected first group: %+v", starter)
	}
	if starter.Monthly == nil || starter.Monthly.ID != "m1" || starter.Monthly.Price != 9.99 {
		t.Fatalf("starter monthly = %+v", starter.Monthly)
	}
	if starter.Yearly == nil || starter.Yearly.ID != "y1" {
		t.Fatalf("starter yearly = %+v", starter.Yearly)
	}
	if starter.Quarterly != nil {
		t.Fatalf("starter quarterly should be absent")
	}

	business := grouped[1]
	if business.Name != "Business" || business.Monthly == nil || business.Monthly.ID != "m2" {
		t.Fatalf("unexpected second group: %+v", business)
	}
}

func TestGroupSeparatesSameNameOnDifferentServers(t *testing.T) {
	rows := []models.Package{
		{ID: "a", Name: "Starter", ServerID: "s1", BillingCycle: models.BillingCycleMonthly, Price: 10},
		{ID: "b", Name: "Starter", ServerID: "s2", BillingCycle: models.BillingCycleMonthly, Price: 12},
	}

	grouped := Group(rows)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(grouped))
	}
	if grouped[0].ServerID == grouped[1].ServerID {
		t.Fatalf("groups collapsed across servers")
	}
}

func TestGroupEmptyInput(t *testing.T) {
	if grouped := Group(nil); len(grouped) != 0 {
		t.Fatalf("expected no groups, got %d", len(grouped))
	}
}
