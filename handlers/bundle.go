// File: kts/handlers/bundle.go
package handlers

import (
	adminsvc "kts/services/admin"
)

// HandlerBundle groups all endpoint handlers, plus the admin service the
// auth middleware needs, for route registration.
type HandlerBundle struct {
	AdminSvc adminsvc.AdminService

	Wizard        *WizardHandler
	Catalog       *CatalogHandler
	Coupons       *CouponHandler
	Appointments  *AppointmentHandler
	Invoices      *InvoiceHandler
	Analytics     *AnalyticsHandler
	Settings      *SettingsHandler
	Content       *ContentHandler
	Payments      *PaymentHandler
	Notifications *NotificationHandler
	Auth          *AuthHandler
	Admins        *AdminHandler
	Storage       *StorageHandler
}
