package services

import (
	"context"
	"fmt"
	"testing"

	"supplier-management-api-server/internal/models"
)

func seedDiscoverable(store *fakeSupplierStore, name string, services, states []string) {
	supplier := newSupplierPayload(name)
	supplier.ApplyDefaults()
	supplier.Services = services
	supplier.States = states
	supplier.WorkStatus = models.WorkStatusApproved
	supplier.IsDiscoverable = true
	store.Create(context.Background(), supplier)
}

func TestSearchDiscoverableFiltersAndMatches(t *testing.T) {
	store := newFakeSupplierStore()
	seedDiscoverable(store, "Alpha Logistics", []string{"Warehousing"}, []string{"Kent"})
	seedDiscoverable(store, "Beta Freight", []string{"Freight Forwarding"}, []string{"Essex"})

	hidden := newSupplierPayload("Hidden Haulage")
	hidden.ApplyDefaults()
	store.Create(context.Background(), hidden)

	svc := NewSupplierService(store, nil)

	page, err := svc.SearchDiscoverable(context.Background(), "freight", 1, 10)
	if err != nil {
		t.Fatalf("SearchDiscoverable: %v", err)
	}
	if page.TotalItems != 1 || page.Suppliers[0].SupplierName != "Beta Freight" {
		t.Errorf("got %+v, want only Beta Freight", page.Suppliers)
	}

	page, err = svc.SearchDiscoverable(context.Background(), "kent", 1, 10)
	if err != nil {
		t.Fatalf("SearchDiscoverable: %v", err)
	}
	if page.TotalItems != 1 || page.Suppliers[0].SupplierName != "Alpha Logistics" {
		t.Errorf("region match failed: %+v", page.Suppliers)
	}

	page, err = svc.SearchDiscoverable(context.Background(), "haulage", 1, 10)
	if err != nil {
		t.Fatalf("SearchDiscoverable: %v", err)
	}
	if page.TotalItems != 0 {
		t.Error("non-discoverable suppliers must never match")
	}
}

func TestDeleteSupplierRemovesDocuments(t *testing.T) {
	store := newFakeSupplierStore()
	supplier := newSupplierPayload("Gamma Groundworks")
	supplier.ApplyDefaults()
	supplier.SafetyAndCompliance.COIURL = "https://cdn.test/supplier-1/coi.pdf"
	supplier.SafetyAndCompliance.BankInfoURL = "https://cdn.test/supplier-1/bank.pdf"
	created, err := store.Create(context.Background(), supplier)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	uploader := &fakeUploader{}
	svc := NewSupplierService(store, uploader)
	if err := svc.DeleteSupplier(context.Background(), created.ID.Hex()); err != nil {
		t.Fatalf("DeleteSupplier: %v", err)
	}

	if len(uploader.deleted) != 2 {
		t.Errorf("deleted %d blobs, want 2: %v", len(uploader.deleted), uploader.deleted)
	}
	if _, err := store.FindByID(context.Background(), created.ID.Hex()); err == nil {
		t.Error("supplier record still present after delete")
	}
}

func TestSearchDiscoverablePagination(t *testing.T) {
	store := newFakeSupplierStore()
	for i := 0; i < 7; i++ {
		seedDiscoverable(store, fmt.Sprintf("Supplier %02d", i), nil, nil)
	}
	svc := NewSupplierService(store, nil)

	page, err := svc.SearchDiscoverable(context.Background(), "", 2, 3)
	if err != nil {
		t.Fatalf("SearchDiscoverable: %v", err)
	}
	if page.TotalItems != 7 || page.TotalPages != 3 {
		t.Errorf("totals = %d items / %d pages, want 7 / 3", page.TotalItems, page.TotalPages)
	}
	if len(page.Suppliers) != 3 {
		t.Fatalf("page 2 holds %d suppliers, want 3", len(page.Suppliers))
	}
	if page.Suppliers[0].SupplierName != "Supplier 03" {
		t.Errorf("page 2 starts at %q, want Supplier 03", page.Suppliers[0].SupplierName)
	}

	beyond, err := svc.SearchDiscoverable(context.Background(), "", 5, 3)
	if err != nil {
		t.Fatalf("SearchDiscoverable: %v", err)
	}
	if len(beyond.Suppliers) != 0 {
		t.Error("pages past the end must be empty, not an error")
	}
}
