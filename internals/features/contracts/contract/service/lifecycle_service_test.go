package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nhatro_backend/internals/constants"
	"nhatro_backend/internals/features/contracts/contract/dto"
	"nhatro_backend/internals/features/contracts/contract/model"
	roomModel "nhatro_backend/internals/features/rooms/rooms/model"
	userModel "nhatro_backend/internals/features/users/user/model"
)

var testSchema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY, user_name TEXT, email TEXT, password TEXT,
		full_name TEXT, phone TEXT, role TEXT, is_active NUMERIC,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME)`,
	`CREATE TABLE rooms (
		room_id TEXT PRIMARY KEY, room_number TEXT, room_floor INTEGER,
		room_area REAL, room_max_occupancy INTEGER, room_rent_price NUMERIC,
		room_status TEXT, room_description TEXT,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME)`,
	`CREATE TABLE room_users (
		room_user_id TEXT PRIMARY KEY, room_id TEXT, user_id TEXT,
		joined_at DATETIME, created_at DATETIME, deleted_at DATETIME)`,
	`CREATE TABLE contracts (
		contract_id TEXT PRIMARY KEY, room_id TEXT, landlord_id TEXT,
		contract_start_date DATETIME, contract_end_date DATETIME,
		payment_cycle TEXT, rent_amount NUMERIC, deposit_amount NUMERIC,
		contract_status TEXT, terminated_at DATETIME,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME)`,
	`CREATE TABLE contract_renters (
		contract_renter_id TEXT PRIMARY KEY, contract_id TEXT, user_id TEXT,
		accepted_at DATETIME, created_at DATETIME)`,
	`CREATE TABLE contract_amendments (
		amendment_id TEXT PRIMARY KEY, contract_id TEXT,
		proposed_by TEXT, proposed_role TEXT, amendment_type TEXT,
		new_rent_amount NUMERIC, new_end_date DATETIME, new_payment_cycle TEXT,
		reason TEXT, amendment_status TEXT, decided_by TEXT, decided_at DATETIME,
		created_at DATETIME, updated_at DATETIME)`,
	`CREATE TABLE bills (
		bill_id TEXT PRIMARY KEY, contract_id TEXT, landlord_id TEXT, renter_id TEXT,
		bill_type TEXT, from_date DATETIME, to_date DATETIME, due_date DATETIME,
		total_amount NUMERIC, paid_amount NUMERIC, outstanding_amount NUMERIC,
		paid NUMERIC, payment_method TEXT, paid_at DATETIME, payment_ref TEXT,
		note TEXT, created_at DATETIME, updated_at DATETIME, deleted_at DATETIME)`,
	`CREATE TABLE bill_details (
		bill_detail_id TEXT PRIMARY KEY, bill_id TEXT, service_id TEXT,
		item_name TEXT, quantity NUMERIC, unit_price NUMERIC, amount NUMERIC,
		created_at DATETIME)`,
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	for _, stmt := range testSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role constants.Role) uuid.UUID {
	t.Helper()
	u := userModel.UserModel{
		UserName: "user-" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Password: "hashed-password",
		Role:     role.String(),
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

func seedRoom(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	r := roomModel.RoomModel{
		RoomNumber:    "R-" + uuid.NewString()[:8],
		RoomFloor:     2,
		RoomRentPrice: decimal.NewFromInt(3_000_000),
		RoomStatus:    roomModel.RoomAvailable,
	}
	require.NoError(t, db.Create(&r).Error)
	return r.RoomID
}

func createReq(roomID uuid.UUID, renters []uuid.UUID) *dto.CreateContractRequest {
	return &dto.CreateContractRequest{
		RoomID:            roomID,
		RenterIDs:         renters,
		ContractStartDate: "2024-01-01",
		ContractEndDate:   "2024-12-31",
		PaymentCycle:      model.CycleMonthly,
		RentAmount:        decimal.NewFromInt(3_000_000),
		DepositAmount:     decimal.NewFromInt(3_000_000),
	}
}

func TestCreateContractPendingWithRenterLinks(t *testing.T) {
	db := setupDB(t)
	landlord := seedUser(t, db, constants.RoleLandlord)
	renterA := seedUser(t, db, constants.RoleRenter)
	renterB := seedUser(t, db, constants.RoleRenter)
	room := seedRoom(t, db)

	contract, check, err := CreateContract(db, landlord, createReq(room, []uuid.UUID{renterA, renterB}))
	require.NoError(t, err)

	assert.Equal(t, model.ContractPending, contract.ContractStatus)
	assert.Len(t, contract.Renters, 2)
	require.NotNil(t, check)
	assert.Equal(t, "EXACT", string(check.Level))
}

func TestCreateContractRejectsSecondOpenContractOnRoom(t *testing.T) {
	db := setupDB(t)
	landlord := seedUser(t, db, constants.RoleLandlord)
	renter := seedUser(t, db, constants.RoleRenter)
	room := seedRoom(t, db)

	_, _, err := CreateContract(db, landlord, createReq(room, []uuid.UUID{renter}))
	require.NoError(t, err)

	_, _, err = CreateContract(db, landlord, createReq(room, []uuid.UUID{renter}))
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestCreateContractValidatesDatesAndRenters(t *testing.T) {
	db := setupDB(t)
	landlord := seedUser(t, db, constants.RoleLandlord)
	renter := seedUser(t, db, constants.RoleRenter)
	room := seedRoom(t, db)

	req := createReq(room, []uuid.UUID{renter})
	req.ContractEndDate = "2024-01-01"
	_, _, err := CreateContract(db, landlord, req)
	assert.ErrorIs(t, err, ErrInvalidDates)

	// a landlord account cannot be listed as a renter
	_, _, err = CreateContract(db, landlord, createReq(room, []uuid.UUID{landlord}))
	assert.ErrorIs(t, err, ErrRenterInvalid)
}

func TestAcceptContractActivatesAfterAllRenters(t *testing.T) {
	db := setupDB(t)
	landlord := seedUser(t, db, constants.RoleLandlord)
	renterA := seedUser(t, db, constants.RoleRenter)
	renterB := seedUser(t, db, constants.RoleRenter)
	room := seedRoom(t, db)

	contract, _, err := CreateContract(db, landlord, createReq(room, []uuid.UUID{renterA, renterB}))
	require.NoError(t, err)

	got, err := AcceptContract(db, contract.ContractID, renterA)
	require.NoError(t, err)
	assert.Equal(t, model.ContractPending, got.ContractStatus)

	got, err = AcceptContract(db, contract.ContractID, renterB)
	require.NoError(t, err)
	assert.Equal(t, model.ContractActive, got.ContractStatus)

	var r roomModel.RoomModel
	require.NoError(t, db.First(&r, "room_id = ?", room).Error)
	assert.Equal(t, roomModel.RoomOccupied, r.RoomStatus)

	var links int64
	require.NoError(t, db.Model(&roomModel.RoomUserModel{}).Where("room_id = ?", room).Count(&links).Error)
	assert.EqualValues(t, 2, links)
}

func TestAcceptContractRejectsOutsiders(t *testing.T) {
	db := setupDB(t)
	landlord := seedUser(t, db, constants.RoleLandlord)
	renter := seedUser(t, db, constants.RoleRenter)
	outsider := seedUser(t, db, constants.RoleRenter)
	room := seedRoom(t, db)

	contract, _, err := CreateContract(db, landlord, createReq(room, []uuid.UUID{renter}))
	require.NoError(t, err)

	_, err = AcceptContract(db, contract.ContractID, outsider)
	assert.ErrorIs(t, err, ErrNotContractRenter)
}

func activeContract(t *testing.T, db *gorm.DB) (uuid.UUID, uuid.UUID, uuid.UUID, *model.ContractModel) {
	t.Helper()
	landlord := seedUser(t, db, constants.RoleLandlord)
	renter := seedUser(t, db, constants.RoleRenter)
	room := seedRoom(t, db)

	contract, _, err := CreateContract(db, landlord, createReq(room, []uuid.UUID{renter}))
	require.NoError(t, err)
	contract, err = AcceptContract(db, contract.ContractID, renter)
	require.NoError(t, err)
	return landlord, renter, room, contract
}

func TestAmendmentApprovalRewritesRent(t *testing.T) {
	db := setupDB(t)
	landlord, renter, _, contract := activeContract(t, db)

	newRent := decimal.NewFromInt(3_500_000)
	amendment, err := ProposeAmendment(db, contract.ContractID, landlord, constants.RoleLandlord, &dto.ProposeAmendmentRequest{
		AmendmentType: model.AmendRent,
		NewRentAmount: &newRent,
		Reason:        "annual adjustment",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AmendmentPending, amendment.AmendmentStatus)

	// the proposing side cannot decide its own amendment
	_, err = DecideAmendment(db, amendment.AmendmentID, landlord, constants.RoleLandlord, true)
	assert.ErrorIs(t, err, ErrOwnAmendment)

	decided, err := DecideAmendment(db, amendment.AmendmentID, renter, constants.RoleRenter, true)
	require.NoError(t, err)
	assert.Equal(t, model.AmendmentApproved, decided.AmendmentStatus)

	var reloaded model.ContractModel
	require.NoError(t, db.First(&reloaded, "contract_id = ?", contract.ContractID).Error)
	assert.True(t, reloaded.RentAmount.Equal(newRent), "rent should be %s, got %s", newRent, reloaded.RentAmount)

	// a decided amendment stays decided
	_, err = DecideAmendment(db, amendment.AmendmentID, renter, constants.RoleRenter, false)
	assert.ErrorIs(t, err, ErrAmendmentClosed)
}

func TestTerminationAmendmentFreesRoom(t *testing.T) {
	db := setupDB(t)
	_, renter, room, contract := activeContract(t, db)

	amendment, err := ProposeAmendment(db, contract.ContractID, renter, constants.RoleRenter, &dto.ProposeAmendmentRequest{
		AmendmentType: model.AmendTermination,
		Reason:        "moving out",
	})
	require.NoError(t, err)

	_, err = DecideAmendment(db, amendment.AmendmentID, contract.LandlordID, constants.RoleLandlord, true)
	require.NoError(t, err)

	var reloaded model.ContractModel
	require.NoError(t, db.First(&reloaded, "contract_id = ?", contract.ContractID).Error)
	assert.Equal(t, model.ContractTerminated, reloaded.ContractStatus)
	assert.NotNil(t, reloaded.TerminatedAt)

	var r roomModel.RoomModel
	require.NoError(t, db.First(&r, "room_id = ?", room).Error)
	assert.Equal(t, roomModel.RoomAvailable, r.RoomStatus)
}

func TestRejectedAmendmentLeavesContractUntouched(t *testing.T) {
	db := setupDB(t)
	landlord, renter, _, contract := activeContract(t, db)

	newRent := decimal.NewFromInt(9_000_000)
	amendment, err := ProposeAmendment(db, contract.ContractID, landlord, constants.RoleLandlord, &dto.ProposeAmendmentRequest{
		AmendmentType: model.AmendRent,
		NewRentAmount: &newRent,
	})
	require.NoError(t, err)

	decided, err := DecideAmendment(db, amendment.AmendmentID, renter, constants.RoleRenter, false)
	require.NoError(t, err)
	assert.Equal(t, model.AmendmentRejected, decided.AmendmentStatus)

	var reloaded model.ContractModel
	require.NoError(t, db.First(&reloaded, "contract_id = ?", contract.ContractID).Error)
	assert.True(t, reloaded.RentAmount.Equal(contract.RentAmount))
}

func TestListAmendmentsScopedToContractParties(t *testing.T) {
	db := setupDB(t)
	landlord, renter, _, contract := activeContract(t, db)

	newRent := decimal.NewFromInt(4_000_000)
	_, err := ProposeAmendment(db, contract.ContractID, landlord, constants.RoleLandlord, &dto.ProposeAmendmentRequest{
		AmendmentType: model.AmendRent,
		NewRentAmount: &newRent,
	})
	require.NoError(t, err)

	rows, err := ListAmendments(db, contract.ContractID, landlord, constants.RoleLandlord)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = ListAmendments(db, contract.ContractID, renter, constants.RoleRenter)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// another landlord who knows the contract id sees nothing
	otherLandlord := seedUser(t, db, constants.RoleLandlord)
	_, err = ListAmendments(db, contract.ContractID, otherLandlord, constants.RoleLandlord)
	assert.ErrorIs(t, err, ErrContractNotFound)

	// same for a renter outside the contract
	outsider := seedUser(t, db, constants.RoleRenter)
	_, err = ListAmendments(db, contract.ContractID, outsider, constants.RoleRenter)
	assert.ErrorIs(t, err, ErrNotContractRenter)

	admin := seedUser(t, db, constants.RoleAdmin)
	rows, err = ListAmendments(db, contract.ContractID, admin, constants.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestProcessExpiredSweepsPastContracts(t *testing.T) {
	db := setupDB(t)
	_, _, room, contract := activeContract(t, db)

	// push the end date into the past
	past := time.Now().UTC().AddDate(0, -1, 0)
	require.NoError(t, db.Model(&model.ContractModel{}).
		Where("contract_id = ?", contract.ContractID).
		Update("contract_end_date", past).Error)

	n, err := ProcessExpired(db)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var reloaded model.ContractModel
	require.NoError(t, db.First(&reloaded, "contract_id = ?", contract.ContractID).Error)
	assert.Equal(t, model.ContractExpired, reloaded.ContractStatus)

	var r roomModel.RoomModel
	require.NoError(t, db.First(&r, "room_id = ?", room).Error)
	assert.Equal(t, roomModel.RoomAvailable, r.RoomStatus)

	// idempotent: nothing left to expire
	n, err = ProcessExpired(db)
	require.NoError(t, err)
	assert.Zero(t, n)
}
