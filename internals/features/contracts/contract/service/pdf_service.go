package service

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/contracts/contract/model"
	roomModel "nhatro_backend/internals/features/rooms/rooms/model"
	userModel "nhatro_backend/internals/features/users/user/model"
)

var ErrTemplateNotFound = fiber.NewError(fiber.StatusNotFound, "Contract template not found")

// pdfcpu form export/fill JSON payload. Only text fields are mapped,
// contract templates carry no checkboxes.
type formPayload struct {
	Header json.RawMessage `json:"header,omitempty"`
	Forms  []struct {
		Textfield []struct {
			Name  string `json:"name"`
			ID    string `json:"id,omitempty"`
			Value string `json:"value"`
		} `json:"textfield"`
	} `json:"forms"`
}

// ExportContractPDF fills the template's AcroForm with contract data
// and returns the resulting PDF bytes. With a nil templateID the
// default template is used.
func ExportContractPDF(db *gorm.DB, contract *model.ContractModel, templateID *uuid.UUID) ([]byte, error) {
	var tpl model.ContractTemplateModel
	q := db.Model(&model.ContractTemplateModel{})
	if templateID != nil {
		q = q.Where("template_id = ?", *templateID)
	} else {
		q = q.Where("is_default = ?", true)
	}
	if err := q.First(&tpl).Error; err != nil {
		return nil, ErrTemplateNotFound
	}

	values, err := contractFieldValues(db, contract, &tpl)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "nhatro-contract-pdf-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	exportPath := filepath.Join(tmpDir, "export.json")
	fillPath := filepath.Join(tmpDir, "fill.json")
	outPath := filepath.Join(tmpDir, "filled.pdf")

	if err := api.ExportFormFile(tpl.FilePath, exportPath, nil); err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Template PDF has no fillable form")
	}

	raw, err := os.ReadFile(exportPath)
	if err != nil {
		return nil, err
	}
	var payload formPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	for fi := range payload.Forms {
		for ti := range payload.Forms[fi].Textfield {
			if v, ok := values[payload.Forms[fi].Textfield[ti].Name]; ok {
				payload.Forms[fi].Textfield[ti].Value = v
			}
		}
	}

	filled, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(fillPath, filled, 0o600); err != nil {
		return nil, err
	}
	if err := api.FillFormFile(tpl.FilePath, fillPath, outPath, nil); err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Failed to fill template form")
	}

	return os.ReadFile(outPath)
}

// contractFieldValues resolves the template's field map into concrete
// strings. Mapped attribute keys cover the contract, its room and the
// first renter on the contract.
func contractFieldValues(db *gorm.DB, contract *model.ContractModel, tpl *model.ContractTemplateModel) (map[string]string, error) {
	var room roomModel.RoomModel
	if err := db.First(&room, "room_id = ?", contract.RoomID).Error; err != nil {
		return nil, err
	}

	var renter userModel.UserModel
	if len(contract.Renters) > 0 {
		if err := db.First(&renter, "id = ?", contract.Renters[0].UserID).Error; err != nil {
			return nil, err
		}
	}

	var landlord userModel.UserModel
	if err := db.First(&landlord, "id = ?", contract.LandlordID).Error; err != nil {
		return nil, err
	}

	attrs := map[string]string{
		"contract_id":    contract.ContractID.String(),
		"start_date":     contract.ContractStartDate.Format("02/01/2006"),
		"end_date":       contract.ContractEndDate.Format("02/01/2006"),
		"payment_cycle":  contract.PaymentCycle,
		"rent_amount":    contract.RentAmount.StringFixed(0),
		"deposit_amount": contract.DepositAmount.StringFixed(0),
		"room_number":    room.RoomNumber,
		"landlord_name":  landlord.FullName,
		"landlord_phone": landlord.Phone,
		"renter_name":    renter.FullName,
		"renter_phone":   renter.Phone,
		"renter_email":   renter.Email,
	}

	// field map: {"pdf field name": "attribute key"}
	fieldMap := map[string]string{}
	if len(tpl.FieldMap) > 0 {
		if err := json.Unmarshal(tpl.FieldMap, &fieldMap); err != nil {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Template field map is not valid JSON")
		}
	}

	values := make(map[string]string, len(fieldMap))
	for fieldName, attrKey := range fieldMap {
		if v, ok := attrs[attrKey]; ok {
			values[fieldName] = v
		}
	}
	return values, nil
}
