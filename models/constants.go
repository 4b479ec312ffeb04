package models

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Invoice statuses.
const (
	InvoiceDraft  = "draft"
	InvoicePaid   = "paid"
	InvoiceUnpaid = "unpaid"
	InvoiceVoid   = "void"
)

// Admin permission flags, as stored on AdminPermissions and checked by the
// permission gate and route middleware.
const (
	PermViewDashboard       = "view_dashboard"
	PermManageServices      = "manage_services"
	PermManageAppointments  = "manage_appointments"
	PermConfirmAppointments = "confirm_appointments"
	PermDeleteAppointments  = "delete_appointments"
	PermManageCoupons       = "manage_coupons"
	PermManageInvoices      = "manage_invoices"
	PermManageContent       = "manage_content"
	PermManageSettings      = "manage_settings"
	PermManagePayments      = "manage_payments"
	PermManageAdmins        = "manage_admins"
)

// Deletion request statuses.
const (
	DeletionRequestPending  = "pending"
	DeletionRequestApproved = "approved"
	DeletionRequestRejected = "rejected"
)
