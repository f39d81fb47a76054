package router

import (
	"github.com/comercia/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// PartnerRoutes wires the supplier endpoints
type PartnerRoutes struct {
	Suppliers *handler.SupplierHandler
	Balances  *handler.BalanceHandler
	Invoices  *handler.InvoiceHandler
}

// RegisterRoutes implements RouteRegistrar
func (r *PartnerRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	suppliers.POST("", r.Suppliers.Create)
	suppliers.GET("", r.Suppliers.List)
	suppliers.GET("/:id", r.Suppliers.GetByID)
	suppliers.PUT("/:id", r.Suppliers.Update)
	suppliers.DELETE("/:id", r.Suppliers.Delete)
	suppliers.GET("/:id/invoices", r.Invoices.ListBySupplier)
	suppliers.GET("/:id/balance", r.Balances.SupplierBalance)
}

// PurchasingRoutes wires the document lifecycle endpoints
type PurchasingRoutes struct {
	Invoices       *handler.InvoiceHandler
	PaymentOrders  *handler.PaymentOrderHandler
	ReceivingNotes *handler.ReceivingNoteHandler
	Balances       *handler.BalanceHandler
}

// RegisterRoutes implements RouteRegistrar
func (r *PurchasingRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/purchase-invoices")
	invoices.POST("", r.Invoices.Create)
	invoices.GET("/:id", r.Invoices.GetByID)
	invoices.POST("/:id/confirm", r.Invoices.Confirm)
	invoices.POST("/:id/cancel", r.Invoices.Cancel)
	invoices.GET("/:id/balance", r.Balances.InvoiceBalance)

	rg.POST("/credit-notes/apply", r.Invoices.ApplyCreditNote)

	orders := rg.Group("/payment-orders")
	orders.POST("", r.PaymentOrders.Create)
	orders.GET("/:id", r.PaymentOrders.GetByID)
	orders.POST("/:id/confirm", r.PaymentOrders.Confirm)
	orders.POST("/:id/cancel", r.PaymentOrders.Cancel)

	notes := rg.Group("/receiving-notes")
	notes.POST("", r.ReceivingNotes.Create)
	notes.GET("", r.ReceivingNotes.List)
	notes.GET("/:id", r.ReceivingNotes.GetByID)
	notes.POST("/:id/confirm", r.ReceivingNotes.Confirm)
	notes.POST("/:id/cancel", r.ReceivingNotes.Cancel)
	notes.DELETE("/:id", r.ReceivingNotes.Delete)
}

// TreasuryRoutes wires the bank, check and cash endpoints
type TreasuryRoutes struct {
	BankAccounts *handler.BankAccountHandler
	Checks       *handler.CheckHandler
	CashSessions *handler.CashSessionHandler
}

// RegisterRoutes implements RouteRegistrar
func (r *TreasuryRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/bank-accounts")
	accounts.POST("", r.BankAccounts.Create)
	accounts.GET("", r.BankAccounts.List)
	accounts.GET("/:id", r.BankAccounts.GetByID)
	accounts.GET("/:id/movements", r.BankAccounts.ListMovements)
	accounts.POST("/:id/movements/import", r.BankAccounts.ImportMovements)

	checks := rg.Group("/checks")
	checks.POST("", r.Checks.Create)
	checks.GET("", r.Checks.List)
	checks.GET("/:id", r.Checks.GetByID)
	checks.POST("/:id/deposit", r.Checks.Deposit)
	checks.POST("/:id/clear", r.Checks.Clear)
	checks.POST("/:id/reject", r.Checks.Reject)
	checks.POST("/:id/endorse", r.Checks.Endorse)
	checks.POST("/:id/deliver", r.Checks.Deliver)
	checks.POST("/:id/cash", r.Checks.Cash)
	checks.POST("/:id/void", r.Checks.Void)
	checks.DELETE("/:id", r.Checks.Delete)

	sessions := rg.Group("/cash-sessions")
	sessions.GET("/current", r.CashSessions.GetCurrent)
	sessions.POST("", r.CashSessions.Open)
	sessions.POST("/:id/adjust", r.CashSessions.AdjustExpected)
	sessions.POST("/:id/close", r.CashSessions.Close)
}
