package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContractTemplateModel points at an AcroForm PDF on disk plus a mapping
// from form field names to contract attributes used when exporting.
type ContractTemplateModel struct {
	TemplateID   uuid.UUID      `gorm:"column:template_id;type:uuid;default:gen_random_uuid();primaryKey" json:"template_id"`
	TemplateName string         `gorm:"column:template_name;type:varchar(100);not null;unique" json:"template_name" validate:"required"`
	FilePath     string         `gorm:"column:file_path;type:varchar(255);not null" json:"file_path" validate:"required"`
	FieldMap     datatypes.JSON `gorm:"column:field_map;type:jsonb" json:"field_map"`
	IsDefault    bool           `gorm:"column:is_default;not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContractTemplateModel) TableName() string {
	return "contract_templates"
}

func (m *ContractTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.TemplateID == uuid.Nil {
		m.TemplateID = uuid.New()
	}
	return nil
}
