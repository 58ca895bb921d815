package console

import (
	"fmt"
	"strings"
)

// DefaultSection is rendered when nothing else has been selected.
const DefaultSection = SectionDashboard

var sidebarOrder = []SectionID{
	SectionDashboard,
	SectionClinics,
	SectionDoctors,
	SectionSubscriptions,
	SectionAnalytics,
	SectionMarketplace,
	SectionProducts,
	SectionOrders,
	SectionVendors,
	SectionSales,
	SectionCommunications,
	SectionAudit,
	SectionNotifications,
	SectionActivity,
	SectionSettings,
}

// SectionIDs lists every known section in sidebar order.
func SectionIDs() []SectionID {
	out := make([]SectionID, len(sidebarOrder))
	copy(out, sidebarOrder)
	return out
}

// ParseSectionID validates a raw section id.
func ParseSectionID(raw string) (SectionID, error) {
	id := SectionID(strings.ToLower(strings.TrimSpace(raw)))
	if !id.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, raw)
	}
	return id, nil
}

// Valid reports whether the id belongs to the catalog.
func (id SectionID) Valid() bool {
	for _, known := range sidebarOrder {
		if known == id {
			return true
		}
	}
	return false
}

func sectionRank(id SectionID) int {
	for i, known := range sidebarOrder {
		if known == id {
			return i
		}
	}
	return len(sidebarOrder)
}

func authEndpoint(path, envelope string) Endpoint {
	return Endpoint{Service: ServiceAuth, Path: path, Envelope: envelope}
}

func inventoryEndpoint(path, envelope string) Endpoint {
	return Endpoint{Service: ServiceInventory, Path: path, Envelope: envelope}
}

// DefaultSectionDefinitions returns the built-in section catalog.
func DefaultSectionDefinitions() []SectionDefinition {
	return []SectionDefinition{
		{
			ID:    SectionDashboard,
			Label: "Dashboard",
			Group: GroupMain,
			Icon:  "layout-dashboard",
			Slices: []SliceDefinition{
				{Name: "monthly", Kind: SliceRecords, Endpoint: authEndpoint("api/v1/auth/super-admin/getMonthlySummary", "data"), SortBy: "month"},
				{Name: "clinicCounts", Kind: SliceAggregate, Endpoint: authEndpoint("api/v1/auth/clinic/clicnicCount", "data")},
				{Name: "stats", Kind: SliceAggregate, Endpoint: authEndpoint("api/v1/auth/super-admin/dashStats", "")},
			},
		},
		{
			ID:     SectionClinics,
			Label:  "Clinic Management",
			Group:  GroupMain,
			Icon:   "building",
			Search: []string{"name", "email", "address.city", "address.state"},
			Filters: []FilterField{
				{Name: "status", Values: []string{"Active", "Expired", "Trial", "Suspended"}},
				{Name: "subscription", Values: []string{"Basic", "Standard", "Premium", "Enterprise"}},
			},
			PrimarySlice: "clinics",
			Slices: []SliceDefinition{
				{Name: "counts", Kind: SliceAggregate, Endpoint: authEndpoint("api/v1/auth/clinic/clicnicCount", "data")},
				{Name: "clinics", Kind: SliceRecords, Endpoint: authEndpoint("api/v1/auth/clinic/clinics", "data")},
			},
		},
		{
			ID:     SectionDoctors,
			Label:  "Doctor Management",
			Group:  GroupMain,
			Icon:   "stethoscope",
			Search: []string{"name", "email"},
			Filters: []FilterField{
				{Name: "status", Normalize: NormalizeFold, Values: []string{"active", "inactive", "pending"}},
			},
			PrimarySlice: "doctors",
			Slices: []SliceDefinition{
				{Name: "stats", Kind: SliceAggregate, Endpoint: authEndpoint("api/v1/auth/doctor/doctorStats", "stats")},
				{Name: "doctors", Kind: SliceRecords, Endpoint: authEndpoint("api/v1/auth/doctor/doctors", "doctors")},
			},
		},
		{
			ID:    SectionSubscriptions,
			Label: "Subscriptions",
			Group: GroupMain,
			Badge: "3",
			Icon:  "credit-card",
		},
		{
			ID:    SectionAnalytics,
			Label: "Analytics",
			Group: GroupMain,
			Icon:  "bar-chart",
			Slices: []SliceDefinition{
				{Name: "appointments", Kind: SliceAggregate, Endpoint: authEndpoint("api/v1/auth/super-admin/appointmentStats", "dashboard")},
			},
		},
		{
			ID:           SectionMarketplace,
			Label:        "Marketplace",
			Group:        GroupEcommerce,
			Icon:         "store",
			Search:       []string{"name", "brand", "brand.brandName", "description"},
			PrimarySlice: "products",
			Slices: []SliceDefinition{
				{Name: "products", Kind: SliceRecords, Endpoint: inventoryEndpoint("api/v1/product/productsDetails", "data")},
			},
		},
		{
			ID:     SectionProducts,
			Label:  "Products",
			Group:  GroupEcommerce,
			Icon:   "package",
			Search: []string{"name", "productId", "brand"},
			Filters: []FilterField{
				{Name: "status", Values: []string{"active", "low-stock", "inactive"}},
				{Name: "lowStock", Path: "isLowStock", Normalize: NormalizeBool, Values: []string{"true", "false"}},
			},
			PrimarySlice: "products",
			Slices: []SliceDefinition{
				{Name: "stats", Kind: SliceAggregate, Endpoint: inventoryEndpoint("api/v1/product/productStats", "data")},
				{Name: "products", Kind: SliceRecords, Endpoint: inventoryEndpoint("api/v1/product/productinventoryList", "products")},
				{Name: "categories", Kind: SliceRecords, Endpoint: inventoryEndpoint("api/v1/category/categoryDashboard", "data")},
			},
		},
		{
			ID:     SectionOrders,
			Label:  "Orders",
			Group:  GroupEcommerce,
			Badge:  "12",
			Icon:   "shopping-cart",
			Search: []string{"orderId", "clinic"},
			Filters: []FilterField{
				{Name: "status", Path: "orderStatus", Values: []string{"PROCESSING", "SHIPPED", "DELIVERED", "CANCELLED"}},
				{Name: "priority", Normalize: NormalizeFold, Values: []string{"LOW", "STANDARD", "HIGH"}},
			},
			PrimarySlice: "orders",
			Slices: []SliceDefinition{
				{Name: "stats", Kind: SliceAggregate, Endpoint: inventoryEndpoint("api/v1/order/orderStats", "stats")},
				{Name: "orders", Kind: SliceRecords, Endpoint: inventoryEndpoint("api/v1/order/recentOrders", "data")},
				{Name: "analytics", Kind: SliceAggregate, Endpoint: inventoryEndpoint("api/v1/order/dashboard-analytics", "dashboard")},
			},
		},
		{
			ID:     SectionVendors,
			Label:  "Vendors",
			Group:  GroupEcommerce,
			Icon:   "truck",
			Search: []string{"name", "companyName", "email", "vendorId"},
			Filters: []FilterField{
				{Name: "status", Normalize: NormalizeFold, Values: []string{"active", "inactive", "pending"}},
			},
			PrimarySlice: "vendors",
			Slices: []SliceDefinition{
				{Name: "vendors", Kind: SliceRecords, Endpoint: inventoryEndpoint("api/v1/vendor/allVendor", "data")},
				{Name: "counts", Kind: SliceAggregate, Endpoint: inventoryEndpoint("api/v1/vendor/vendorCount", "data")},
			},
		},
		{
			ID:    SectionSales,
			Label: "Sales",
			Group: GroupEcommerce,
			Icon:  "trending-up",
			Slices: []SliceDefinition{
				{Name: "metrics", Kind: SliceAggregate, Endpoint: authEndpoint("api/v1/auth/super-admin/metrics", "metrics")},
				{Name: "trends", Kind: SliceAggregate, Endpoint: authEndpoint("api/v1/auth/super-admin/trends", "trends")},
			},
		},
		{ID: SectionCommunications, Label: "Communications", Group: GroupSystem, Badge: "5", Icon: "message-square"},
		{ID: SectionAudit, Label: "Audit Logs", Group: GroupSystem, Icon: "shield"},
		{ID: SectionNotifications, Label: "Notifications", Group: GroupSystem, Badge: "8", Icon: "bell"},
		{ID: SectionActivity, Label: "Activity", Group: GroupSystem, Icon: "activity"},
		{ID: SectionSettings, Label: "Settings", Group: GroupSystem, Icon: "settings"},
	}
}
