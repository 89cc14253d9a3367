package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/contracts/contract/controller"
)

// ContractLandlordRoutes mounts contract management under the landlord group.
func ContractLandlordRoutes(landlord fiber.Router, db *gorm.DB) {
	ctl := controller.NewContractController(db)

	contracts := landlord.Group("/contracts")
	contracts.Get("/", ctl.List)
	contracts.Post("/", ctl.Create)
	contracts.Post("/process-expired", ctl.ProcessExpired)
	contracts.Get("/:id", ctl.GetByID)
	contracts.Put("/:id", ctl.Update)
	contracts.Delete("/:id", ctl.Delete)
	contracts.Get("/:id/billing-periods", ctl.BillingPeriods)
	contracts.Post("/:id/export", ctl.ExportPDF)
	contracts.Get("/:id/amendments", ctl.ListAmendments)
	contracts.Post("/:id/amendments", ctl.ProposeAmendment)

	amendments := landlord.Group("/amendments")
	amendments.Post("/:id/approve", ctl.ApproveAmendment)
	amendments.Post("/:id/reject", ctl.RejectAmendment)

	templates := landlord.Group("/contract-templates")
	templates.Get("/", ctl.ListTemplates)
	templates.Post("/", ctl.CreateTemplate)
	templates.Delete("/:id", ctl.DeleteTemplate)
}

// ContractRenterRoutes mounts the renter-facing contract surface.
func ContractRenterRoutes(renter fiber.Router, db *gorm.DB) {
	ctl := controller.NewContractController(db)

	contracts := renter.Group("/contracts")
	contracts.Get("/", ctl.ListMine)
	contracts.Get("/:id", ctl.GetMine)
	contracts.Post("/:id/accept", ctl.Accept)
	contracts.Get("/:id/amendments", ctl.ListAmendments)
	contracts.Post("/:id/amendments", ctl.ProposeAmendment)

	amendments := renter.Group("/amendments")
	amendments.Post("/:id/approve", ctl.ApproveAmendment)
	amendments.Post("/:id/reject", ctl.RejectAmendment)
}
