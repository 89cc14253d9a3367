package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nhatro_backend/internals/features/billing/bills/dto"
	"nhatro_backend/internals/features/billing/bills/model"
	contractModel "nhatro_backend/internals/features/contracts/contract/model"
)

var billTestSchema = []string{
	`CREATE TABLE contracts (
		contract_id TEXT PRIMARY KEY, room_id TEXT, landlord_id TEXT,
		contract_start_date DATETIME, contract_end_date DATETIME,
		payment_cycle TEXT, rent_amount NUMERIC, deposit_amount NUMERIC,
		contract_status TEXT, terminated_at DATETIME,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME)`,
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

func setupBillDB(t *testing.T) (*gorm.DB, uuid.UUID, *contractModel.ContractModel) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	for _, stmt := range billTestSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	landlordID := uuid.New()
	contract := &contractModel.ContractModel{
		RoomID:            uuid.New(),
		LandlordID:        landlordID,
		ContractStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ContractEndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		PaymentCycle:      contractModel.CycleMonthly,
		RentAmount:        decimal.NewFromInt(3_000_000),
		DepositAmount:     decimal.NewFromInt(3_000_000),
		ContractStatus:    contractModel.ContractActive,
	}
	require.NoError(t, db.Create(contract).Error)
	return db, landlordID, contract
}

func rentBillReq(contractID uuid.UUID, from, to string) *dto.CreateBillRequest {
	return &dto.CreateBillRequest{
		ContractID: &contractID,
		BillType:   model.BillRoomRent,
		FromDate:   from,
		ToDate:     to,
		DueDate:    to,
	}
}

func TestCreateBillForExactPeriod(t *testing.T) {
	db, landlordID, contract := setupBillDB(t)

	bill, check, err := CreateBill(db, landlordID, rentBillReq(contract.ContractID, "2024-01-01", "2024-01-31"))
	require.NoError(t, err)

	assert.True(t, bill.TotalAmount.Equal(contract.RentAmount), "rent bill defaults to the contract rent")
	assert.True(t, bill.OutstandingAmount.Equal(contract.RentAmount))
	assert.False(t, bill.Paid)
	require.NotNil(t, check)
	assert.Equal(t, "EXACT", string(check.Level))
}

func TestCreateBillSumsLineItems(t *testing.T) {
	db, landlordID, contract := setupBillDB(t)

	req := rentBillReq(contract.ContractID, "2024-01-01", "2024-01-31")
	req.BillType = model.BillService
	req.Details = []dto.BillDetailInput{
		{ItemName: "Electricity", Quantity: decimal.NewFromInt(120), UnitPrice: decimal.NewFromInt(3_500)},
		{ItemName: "Water", UnitPrice: decimal.NewFromInt(100_000)}, // quantity defaults to 1
	}

	bill, _, err := CreateBill(db, landlordID, req)
	require.NoError(t, err)

	want := decimal.NewFromInt(120*3_500 + 100_000)
	assert.True(t, bill.TotalAmount.Equal(want), "want %s got %s", want, bill.TotalAmount)
	assert.Len(t, bill.Details, 2)
}

func TestCreateBillRejectsOutOfBoundsPeriod(t *testing.T) {
	db, landlordID, contract := setupBillDB(t)

	_, _, err := CreateBill(db, landlordID, rentBillReq(contract.ContractID, "2023-12-15", "2024-01-14"))
	require.Error(t, err)
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestCreateBillRejectsOverlappingPeriod(t *testing.T) {
	db, landlordID, contract := setupBillDB(t)

	_, _, err := CreateBill(db, landlordID, rentBillReq(contract.ContractID, "2024-01-01", "2024-01-31"))
	require.NoError(t, err)

	// a shifted range that intersects the billed month is a hard conflict
	_, _, err = CreateBill(db, landlordID, rentBillReq(contract.ContractID, "2024-01-20", "2024-02-19"))
	assert.ErrorIs(t, err, ErrPeriodOverlap)

	// the next whole month is fine
	_, _, err = CreateBill(db, landlordID, rentBillReq(contract.ContractID, "2024-02-01", "2024-02-29"))
	assert.NoError(t, err)
}

func TestServiceAndDepositBillsShareRentPeriod(t *testing.T) {
	db, landlordID, contract := setupBillDB(t)

	_, _, err := CreateBill(db, landlordID, rentBillReq(contract.ContractID, "2024-01-01", "2024-01-31"))
	require.NoError(t, err)

	// utilities for the same month sit alongside the rent bill
	svcReq := rentBillReq(contract.ContractID, "2024-01-01", "2024-01-31")
	svcReq.BillType = model.BillService
	svcReq.Details = []dto.BillDetailInput{
		{ItemName: "Electricity", Quantity: decimal.NewFromInt(90), UnitPrice: decimal.NewFromInt(3_500)},
	}
	_, _, err = CreateBill(db, landlordID, svcReq)
	require.NoError(t, err)

	depReq := rentBillReq(contract.ContractID, "2024-01-01", "2024-01-31")
	depReq.BillType = model.BillDeposit
	_, _, err = CreateBill(db, landlordID, depReq)
	require.NoError(t, err)

	// a second rent bill for the month is still a conflict
	_, _, err = CreateBill(db, landlordID, rentBillReq(contract.ContractID, "2024-01-01", "2024-01-31"))
	assert.ErrorIs(t, err, ErrPeriodOverlap)
}

func TestCreateBillCycleDeviationIsAdvisoryOnly(t *testing.T) {
	db, landlordID, contract := setupBillDB(t)

	// two whole months on a monthly cycle: accepted, flagged MINOR
	bill, check, err := CreateBill(db, landlordID, rentBillReq(contract.ContractID, "2024-03-01", "2024-04-30"))
	require.NoError(t, err)
	require.NotNil(t, bill)
	require.NotNil(t, check)
	assert.Equal(t, "MINOR", string(check.Level))
	assert.NotEmpty(t, check.Warning)
}

func TestCreateBillRejectsWrongLandlord(t *testing.T) {
	db, _, contract := setupBillDB(t)

	_, _, err := CreateBill(db, uuid.New(), rentBillReq(contract.ContractID, "2024-01-01", "2024-01-31"))
	assert.ErrorIs(t, err, ErrContractMissing)
}

func TestSettleBillPartialThenFull(t *testing.T) {
	db, landlordID, contract := setupBillDB(t)

	bill, _, err := CreateBill(db, landlordID, rentBillReq(contract.ContractID, "2024-01-01", "2024-01-31"))
	require.NoError(t, err)

	require.NoError(t, SettleBill(db, bill, decimal.NewFromInt(1_000_000), model.PaymentCash, nil))
	assert.False(t, bill.Paid)
	assert.True(t, bill.OutstandingAmount.Equal(decimal.NewFromInt(2_000_000)))

	ref := "VNP12345"
	require.NoError(t, SettleBill(db, bill, decimal.NewFromInt(2_000_000), model.PaymentVNPay, &ref))
	assert.True(t, bill.Paid)
	assert.True(t, bill.OutstandingAmount.IsZero())
	require.NotNil(t, bill.PaymentRef)
	assert.Equal(t, "VNP12345", *bill.PaymentRef)

	// settled bills take no further payments
	err = SettleBill(db, bill, decimal.NewFromInt(1), model.PaymentCash, nil)
	assert.ErrorIs(t, err, ErrBillPaid)
}
