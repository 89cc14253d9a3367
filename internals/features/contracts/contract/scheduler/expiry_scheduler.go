package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"nhatro_backend/internals/features/contracts/contract/service"
)

// StartContractExpiryScheduler flips contracts past their end date to
// EXPIRED once a day. The landlord UI has a manual trigger for the
// same sweep.
func StartContractExpiryScheduler(db *gorm.DB) {
	go func() {
		for {
			n, err := service.ProcessExpired(db)
			if err != nil {
				log.Printf("[EXPIRY ERROR] process expired contracts: %v", err)
			} else if n > 0 {
				log.Printf("[EXPIRY] %d contracts marked expired", n)
			}
			time.Sleep(24 * time.Hour)
		}
	}()
}
