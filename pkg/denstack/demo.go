package denstack

import "github.com/adharshSciPy/DenStack-Superadmin/components/console"

// Demo account accepted by DemoData.
const (
	DemoEmail    = "superadmin@denstack.com"
	DemoPassword = "denstack"
	DemoToken    = "demo-token"
)

// DemoData returns fixtures shaped like the live collaborator payloads.
func DemoData() MockData {
	return MockData{
		Accounts: map[string]MockAccount{
			DemoEmail: {
				Password: DemoPassword,
				Token:    DemoToken,
				User:     console.UserRecord{ID: "sa-1", Name: "Super Admin", Email: DemoEmail, Role: "superadmin"},
			},
		},
		Slices: map[console.SectionID]map[string]console.SliceData{
			console.SectionDashboard: {
				"monthly": {Records: []console.Record{
					{"month": "Mar", "totalRevenue": float64(18200), "totalSubscriptions": float64(41)},
					{"month": "Jan", "totalRevenue": float64(12400), "totalSubscriptions": float64(30)},
					{"month": "Feb", "totalRevenue": float64(15050), "totalSubscriptions": float64(36)},
				}},
				"clinicCounts": {Aggregate: console.Aggregate{"totalClinics": float64(4), "activeClinics": float64(2), "expiredClinics": float64(1)}},
				"stats":        {Aggregate: console.Aggregate{"totalClinics": float64(4), "totalUsers": float64(118), "subscriptionRevenue": float64(45650), "ecommerceRevenue": float64(23120.5)}},
			},
			console.SectionClinics: {
				"counts": {Aggregate: console.Aggregate{"totalClinics": float64(4), "activeClinics": float64(2), "expiredClinics": float64(1)}},
				"clinics": {Records: []console.Record{
					{"_id": "c1", "name": "SmileCare Dental Center", "address": map[string]any{"city": "New York", "state": "NY"}, "status": "Active", "subscription": "Premium", "email": "admin@smilecare.com", "users": float64(24)},
					{"_id": "c2", "name": "Dental Care Plus", "address": map[string]any{"city": "Los Angeles", "state": "CA"}, "status": "Expired", "subscription": "Standard", "email": "info@dentalcareplus.com", "users": float64(18)},
					{"_id": "c3", "name": "Bright Smile Clinic", "address": map[string]any{"city": "Chicago", "state": "IL"}, "status": "Active", "subscription": "Enterprise", "email": "contact@brightsmile.com", "users": float64(45)},
					{"_id": "c4", "name": "Family Orthodontics", "address": map[string]any{"city": "Houston", "state": "TX"}, "status": "Trial", "subscription": "Basic", "email": "hello@familyortho.com", "users": float64(6)},
				}},
			},
			console.SectionDoctors: {
				"stats": {Aggregate: console.Aggregate{"totalDoctors": float64(3), "activeDoctors": float64(2), "inactiveDoctors": float64(0), "pendingDoctors": float64(1), "independentDoctors": float64(1), "clinicDoctors": float64(2)}},
				"doctors": {Records: []console.Record{
					{"_id": "d1", "name": "Dr. Asha Menon", "email": "asha@smilecare.com", "specialization": "Orthodontics", "status": "Active", "isIndependent": false},
					{"_id": "d2", "name": "Dr. Ravi Kumar", "email": "ravi@clinic.in", "specialization": "Endodontics", "status": "active", "isIndependent": true},
					{"_id": "d3", "name": "Dr. Leah Stone", "email": "leah@brightsmile.com", "specialization": "Pediatric", "status": "Pending", "isIndependent": false},
				}},
			},
			console.SectionOrders: {
				"stats": {Aggregate: console.Aggregate{"totalOrders": float64(3), "processing": float64(1), "shipped": float64(1), "delivered": float64(1), "cancelled": float64(0)}},
				"orders": {Records: []console.Record{
					{"_id": "o1", "orderId": "ORD-1001", "clinic": "SmileCare Dental Center", "totalAmount": float64(1240), "orderStatus": "PROCESSING", "priority": "HIGH"},
					{"_id": "o2", "orderId": "ORD-1002", "clinic": "Bright Smile Clinic", "totalAmount": float64(310.5), "orderStatus": "SHIPPED", "priority": "STANDARD"},
					{"_id": "o3", "orderId": "ORD-1003", "clinic": "Dental Care Plus", "totalAmount": float64(89.99), "orderStatus": "DELIVERED", "priority": "LOW"},
				}},
				"analytics": {Aggregate: console.Aggregate{
					"orderVolume":       map[string]any{"label": "Orders this month", "value": float64(3)},
					"averageOrderValue": map[string]any{"label": "Average order value", "value": float64(546.83), "growthPercent": float64(4.2)},
					"fulfillmentRate":   map[string]any{"label": "Fulfillment rate", "value": "66%"},
				}},
			},
			console.SectionProducts: {
				"stats": {Aggregate: console.Aggregate{"totalProducts": float64(3), "avgRating": "4.5", "lowStockCount": float64(1), "totalInventoryValue": float64(18450)}},
				"products": {Records: []console.Record{
					{"_id": "p1", "productId": "PRD-01", "name": "Nitrile Gloves", "brand": "SafeHands", "price": float64(12.5), "stock": float64(400), "status": "active", "isLowStock": false},
					{"_id": "p2", "productId": "PRD-02", "name": "Composite Resin Kit", "brand": "3M", "price": float64(189), "stock": float64(4), "status": "low-stock", "isLowStock": true},
					{"_id": "p3", "productId": "PRD-03", "name": "Dental Mirror", "brand": "Hu-Friedy", "price": float64(9.75), "stock": float64(0), "status": "inactive", "isLowStock": false},
				}},
				"categories": {Records: []console.Record{
					{"categoryName": "Consumables", "products": float64(2), "revenue": float64(9800)},
					{"categoryName": "Instruments", "products": float64(1), "revenue": float64(2100)},
				}},
			},
			console.SectionVendors: {
				"vendors": {Records: []console.Record{
					{"_id": "v1", "vendorId": "VEN-01", "name": "Ravi Traders", "companyName": "Ravi Dental Supplies", "email": "sales@ravidental.in", "status": "Active", "rating": float64(4.6)},
					{"_id": "v2", "vendorId": "VEN-02", "name": "OrthoSource", "companyName": "OrthoSource LLC", "email": "hello@orthosource.com", "status": "inactive", "rating": float64(3.9)},
				}},
				"counts": {Aggregate: console.Aggregate{"totalVendors": "2", "activeVendors": "1", "avgRating": "4.25", "totalRevenue": "10250.75"}},
			},
			console.SectionSales: {
				"metrics": {Aggregate: console.Aggregate{"totalRevenue": float64(23120.5), "totalOrders": float64(3), "avgOrderValue": float64(546.83), "growthRate": float64(4.2)}},
				"trends":  {Aggregate: console.Aggregate{"revenueTrend": []any{}, "orderVolume": []any{}}},
			},
			console.SectionAnalytics: {
				"appointments": {Aggregate: console.Aggregate{"totalAppointments": float64(312), "completed": float64(280), "cancelled": float64(12)}},
			},
			console.SectionMarketplace: {
				"products": {Records: []console.Record{
					{"_id": "m1", "name": "Nitrile Gloves", "brand": map[string]any{"brandName": "SafeHands"}, "description": "Powder-free gloves"},
					{"_id": "m2", "name": "Composite Resin Kit", "brand": map[string]any{"brandName": "3M"}, "description": "Light-cure composite"},
				}},
			},
		},
	}
}
