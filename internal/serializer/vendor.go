package serializer

import (
	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
)

var VendorFields = []string{"id", "owner", "name", "description", "created_at", "updated_at"}

// VendorSerializer 店铺表示，owner 只读
type VendorSerializer struct{}

func NewVendorSerializer() *VendorSerializer {
	return &VendorSerializer{}
}

func (s *VendorSerializer) Represent(v *model.Vendor) Data {
	return Data{
		"id":          v.ID,
		"owner":       v.OwnerID,
		"name":        v.Name,
		"description": v.Description,
		"created_at":  formatTime(v.CreatedAt),
		"updated_at":  formatTime(v.UpdatedAt),
	}
}

func (s *VendorSerializer) RepresentList(vendors []model.Vendor) []Data {
	out := make([]Data, 0, len(vendors))
	for i := range vendors {
		out = append(out, s.Represent(&vendors[i]))
	}
	return out
}

type VendorInput struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

func DecodeVendor(body []byte, partial bool) (*VendorInput, error) {
	in := &VendorInput{}
	if err := decodeJSON(body, in); err != nil {
		return nil, err
	}
	verr := &apperr.ValidationError{}
	if !partial {
		required(verr, "name", in.Name == nil)
	}
	notBlank(verr, "name", in.Name)
	validateStruct(in, verr)
	return in, finish(verr)
}

func (in *VendorInput) Apply(v *model.Vendor) {
	if in.Name != nil {
		v.Name = *in.Name
	}
	if in.Description != nil {
		v.Description = *in.Description
	}
}
