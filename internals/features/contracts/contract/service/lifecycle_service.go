package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
	"nhatro_backend/internals/features/billing/billingcycle"
	"nhatro_backend/internals/features/contracts/contract/dto"
	"nhatro_backend/internals/features/contracts/contract/model"
	roomModel "nhatro_backend/internals/features/rooms/rooms/model"
	userModel "nhatro_backend/internals/features/users/user/model"
)

var (
	ErrContractNotFound  = fiber.NewError(fiber.StatusNotFound, "Contract not found")
	ErrRoomNotFound      = fiber.NewError(fiber.StatusNotFound, "Room not found")
	ErrRoomUnavailable   = fiber.NewError(fiber.StatusConflict, "Room already has an active or pending contract")
	ErrInvalidDates      = fiber.NewError(fiber.StatusBadRequest, "Contract end date must be after start date")
	ErrRenterInvalid     = fiber.NewError(fiber.StatusBadRequest, "One or more renter ids are not active renter accounts")
	ErrNotContractRenter = fiber.NewError(fiber.StatusForbidden, "You are not a renter on this contract")
	ErrWrongStatus       = fiber.NewError(fiber.StatusConflict, "Contract status does not allow this action")
	ErrAmendmentClosed   = fiber.NewError(fiber.StatusConflict, "Amendment has already been decided")
	ErrOwnAmendment      = fiber.NewError(fiber.StatusForbidden, "The proposing side cannot approve its own amendment")
)

const dateLayout = "2006-01-02"

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, err
	}
	return billingcycle.Civil(t), nil
}

// CreateContract builds a PENDING contract with its renter links.
// A cycle deviation on the contract span is advisory only, the caller
// surfaces the returned CycleCheck as a warning.
func CreateContract(db *gorm.DB, landlordID uuid.UUID, req *dto.CreateContractRequest) (*model.ContractModel, *billingcycle.CycleCheck, error) {
	start, err := parseDate(req.ContractStartDate)
	if err != nil {
		return nil, nil, ErrInvalidDates
	}
	end, err := parseDate(req.ContractEndDate)
	if err != nil {
		return nil, nil, ErrInvalidDates
	}
	if !end.After(start) {
		return nil, nil, ErrInvalidDates
	}

	cycleMonths := model.CycleToMonths(req.PaymentCycle)

	var room roomModel.RoomModel
	if err := db.First(&room, "room_id = ?", req.RoomID).Error; err != nil {
		return nil, nil, ErrRoomNotFound
	}

	var openContracts int64
	if err := db.Model(&model.ContractModel{}).
		Where("room_id = ? AND contract_status IN ?", req.RoomID, []string{model.ContractPending, model.ContractActive}).
		Count(&openContracts).Error; err != nil {
		return nil, nil, err
	}
	if openContracts > 0 {
		return nil, nil, ErrRoomUnavailable
	}

	var renterCount int64
	if err := db.Model(&userModel.UserModel{}).
		Where("id IN ? AND role = ? AND is_active = ?", req.RenterIDs, string(constants.RoleRenter), true).
		Count(&renterCount).Error; err != nil {
		return nil, nil, err
	}
	if renterCount != int64(len(req.RenterIDs)) {
		return nil, nil, ErrRenterInvalid
	}

	contract := &model.ContractModel{
		RoomID:            req.RoomID,
		LandlordID:        landlordID,
		ContractStartDate: start,
		ContractEndDate:   end,
		PaymentCycle:      req.PaymentCycle,
		RentAmount:        req.RentAmount,
		DepositAmount:     req.DepositAmount,
		ContractStatus:    model.ContractPending,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contract).Error; err != nil {
			return err
		}
		links := make([]model.ContractRenterModel, 0, len(req.RenterIDs))
		for _, rid := range req.RenterIDs {
			links = append(links, model.ContractRenterModel{
				ContractID: contract.ContractID,
				UserID:     rid,
			})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return nil, nil, err
	}

	check := billingcycle.CheckSpan(start, end, cycleMonths)
	if err := db.Preload("Renters").First(contract, "contract_id = ?", contract.ContractID).Error; err != nil {
		return nil, nil, err
	}
	return contract, &check, nil
}

// AcceptContract records one renter's acceptance. When every renter on
// the contract has accepted, the contract goes ACTIVE, the room flips
// to OCCUPIED and the renters are attached to the room.
func AcceptContract(db *gorm.DB, contractID, renterID uuid.UUID) (*model.ContractModel, error) {
	var contract model.ContractModel
	if err := db.Preload("Renters").First(&contract, "contract_id = ?", contractID).Error; err != nil {
		return nil, ErrContractNotFound
	}
	if contract.ContractStatus != model.ContractPending {
		return nil, ErrWrongStatus
	}

	var link *model.ContractRenterModel
	for i := range contract.Renters {
		if contract.Renters[i].UserID == renterID {
			link = &contract.Renters[i]
			break
		}
	}
	if link == nil {
		return nil, ErrNotContractRenter
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if link.AcceptedAt == nil {
			now := time.Now().UTC()
			if err := tx.Model(link).Update("accepted_at", now).Error; err != nil {
				return err
			}
			link.AcceptedAt = &now
		}

		for i := range contract.Renters {
			if contract.Renters[i].AcceptedAt == nil {
				return nil // still waiting on another renter
			}
		}

		if err := tx.Model(&contract).Update("contract_status", model.ContractActive).Error; err != nil {
			return err
		}
		contract.ContractStatus = model.ContractActive

		if err := tx.Model(&roomModel.RoomModel{}).
			Where("room_id = ?", contract.RoomID).
			Update("room_status", roomModel.RoomOccupied).Error; err != nil {
			return err
		}

		for _, r := range contract.Renters {
			ru := roomModel.RoomUserModel{RoomID: contract.RoomID, UserID: r.UserID, JoinedAt: time.Now().UTC()}
			if err := tx.Where("room_id = ? AND user_id = ?", ru.RoomID, ru.UserID).
				FirstOrCreate(&ru).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// ProposeAmendment opens a pending amendment on an active contract.
func ProposeAmendment(db *gorm.DB, contractID, proposerID uuid.UUID, proposerRole constants.Role, req *dto.ProposeAmendmentRequest) (*model.ContractAmendmentModel, error) {
	var contract model.ContractModel
	if err := db.Preload("Renters").First(&contract, "contract_id = ?", contractID).Error; err != nil {
		return nil, ErrContractNotFound
	}
	if contract.ContractStatus != model.ContractActive {
		return nil, ErrWrongStatus
	}

	switch proposerRole {
	case constants.RoleLandlord:
		if contract.LandlordID != proposerID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Contract belongs to another landlord")
		}
	case constants.RoleRenter:
		if !isContractRenter(&contract, proposerID) {
			return nil, ErrNotContractRenter
		}
	default:
		return nil, fiber.NewError(fiber.StatusForbidden, "Only contract parties can propose amendments")
	}

	amendment := &model.ContractAmendmentModel{
		ContractID:      contractID,
		ProposedBy:      proposerID,
		ProposedRole:    string(proposerRole),
		AmendmentType:   req.AmendmentType,
		NewRentAmount:   req.NewRentAmount,
		NewPaymentCycle: req.NewPaymentCycle,
		Reason:          req.Reason,
		AmendmentStatus: model.AmendmentPending,
	}

	switch req.AmendmentType {
	case model.AmendRent:
		if req.NewRentAmount == nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "new_rent_amount is required for a RENT amendment")
		}
	case model.AmendEndDate:
		if req.NewEndDate == nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "new_end_date is required for an END_DATE amendment")
		}
		d, err := parseDate(*req.NewEndDate)
		if err != nil || !d.After(contract.ContractStartDate) {
			return nil, ErrInvalidDates
		}
		amendment.NewEndDate = &d
	case model.AmendCycle:
		if req.NewPaymentCycle == nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "new_payment_cycle is required for a PAYMENT_CYCLE amendment")
		}
	}

	if err := db.Create(amendment).Error; err != nil {
		return nil, err
	}
	return amendment, nil
}

// ListAmendments returns a contract's amendment history. Only the
// contract's own parties may read it; admins may read any contract.
func ListAmendments(db *gorm.DB, contractID, viewerID uuid.UUID, viewerRole constants.Role) ([]model.ContractAmendmentModel, error) {
	var contract model.ContractModel
	if err := db.Preload("Renters").First(&contract, "contract_id = ?", contractID).Error; err != nil {
		return nil, ErrContractNotFound
	}

	switch viewerRole {
	case constants.RoleAdmin:
	case constants.RoleLandlord:
		if contract.LandlordID != viewerID {
			return nil, ErrContractNotFound
		}
	case constants.RoleRenter:
		if !isContractRenter(&contract, viewerID) {
			return nil, ErrNotContractRenter
		}
	default:
		return nil, fiber.NewError(fiber.StatusForbidden, "Only contract parties can view amendments")
	}

	var rows []model.ContractAmendmentModel
	if err := db.Where("contract_id = ?", contractID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DecideAmendment approves or rejects a pending amendment. Only the
// non-proposing side may decide. Approval rewrites the contract term,
// or terminates the contract for a TERMINATION amendment.
func DecideAmendment(db *gorm.DB, amendmentID, deciderID uuid.UUID, deciderRole constants.Role, approve bool) (*model.ContractAmendmentModel, error) {
	var amendment model.ContractAmendmentModel
	if err := db.First(&amendment, "amendment_id = ?", amendmentID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Amendment not found")
	}
	if amendment.AmendmentStatus != model.AmendmentPending {
		return nil, ErrAmendmentClosed
	}
	if amendment.ProposedRole == string(deciderRole) {
		return nil, ErrOwnAmendment
	}

	var contract model.ContractModel
	if err := db.Preload("Renters").First(&contract, "contract_id = ?", amendment.ContractID).Error; err != nil {
		return nil, ErrContractNotFound
	}

	switch deciderRole {
	case constants.RoleLandlord:
		if contract.LandlordID != deciderID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Contract belongs to another landlord")
		}
	case constants.RoleRenter:
		if !isContractRenter(&contract, deciderID) {
			return nil, ErrNotContractRenter
		}
	default:
		return nil, fiber.NewError(fiber.StatusForbidden, "Only contract parties can decide amendments")
	}

	now := time.Now().UTC()
	status := model.AmendmentRejected
	if approve {
		status = model.AmendmentApproved
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&amendment).Updates(map[string]any{
			"amendment_status": status,
			"decided_by":       deciderID,
			"decided_at":       now,
		}).Error; err != nil {
			return err
		}
		amendment.AmendmentStatus = status
		amendment.DecidedBy = &deciderID
		amendment.DecidedAt = &now

		if !approve {
			return nil
		}

		switch amendment.AmendmentType {
		case model.AmendRent:
			return tx.Model(&contract).Update("rent_amount", amendment.NewRentAmount).Error
		case model.AmendEndDate:
			return tx.Model(&contract).Update("contract_end_date", amendment.NewEndDate).Error
		case model.AmendCycle:
			return tx.Model(&contract).Update("payment_cycle", amendment.NewPaymentCycle).Error
		case model.AmendTermination:
			return terminateTx(tx, &contract, now)
		}
		return errors.New("unknown amendment type")
	})
	if err != nil {
		return nil, err
	}
	return &amendment, nil
}

// ProcessExpired flips every ACTIVE contract past its end date to
// EXPIRED and frees the rooms. Returns how many contracts changed.
// Called from the daily scheduler and from the manual admin trigger.
func ProcessExpired(db *gorm.DB) (int, error) {
	today := billingcycle.Civil(time.Now().UTC())

	var expired []model.ContractModel
	if err := db.Where("contract_status = ? AND contract_end_date < ?", model.ContractActive, today).
		Find(&expired).Error; err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range expired {
			if err := tx.Model(&expired[i]).Update("contract_status", model.ContractExpired).Error; err != nil {
				return err
			}
			if err := releaseRoomTx(tx, expired[i].RoomID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(expired), nil
}

func terminateTx(tx *gorm.DB, contract *model.ContractModel, at time.Time) error {
	if err := tx.Model(contract).Updates(map[string]any{
		"contract_status": model.ContractTerminated,
		"terminated_at":   at,
	}).Error; err != nil {
		return err
	}
	contract.ContractStatus = model.ContractTerminated
	contract.TerminatedAt = &at
	return releaseRoomTx(tx, contract.RoomID)
}

func releaseRoomTx(tx *gorm.DB, roomID uuid.UUID) error {
	if err := tx.Model(&roomModel.RoomModel{}).
		Where("room_id = ? AND room_status = ?", roomID, roomModel.RoomOccupied).
		Update("room_status", roomModel.RoomAvailable).Error; err != nil {
		return err
	}
	return tx.Where("room_id = ?", roomID).Delete(&roomModel.RoomUserModel{}).Error
}

func isContractRenter(contract *model.ContractModel, userID uuid.UUID) bool {
	for _, r := range contract.Renters {
		if r.UserID == userID {
			return true
		}
	}
	return false
}
