package serializer

import (
	"github.com/shopspring/decimal"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
)

// ==================== Product ====================

var (
	// ProductFields description / quantity / customers 不对外输出
	ProductFields       = []string{"id", "vendor", "category", "name", "brand", "price", "is_available", "created_at", "updated_at"}
	ProductCustomFields = []string{"id", "name", "is_available", "brand", "price"}
)

// ProductSerializer 商品表示，支持动态字段
type ProductSerializer struct {
	fieldSet
}

// NewProductSerializer fields 为 nil 时输出全部默认字段
func NewProductSerializer(fields ...string) *ProductSerializer {
	return &ProductSerializer{fieldSet: newFieldSet(ProductFields, fields)}
}

// NewProductCustomSerializer 受限字段集
func NewProductCustomSerializer() *ProductSerializer {
	return NewProductSerializer(ProductCustomFields...)
}

func (s *ProductSerializer) Represent(p *model.Product) Data {
	return s.pick(Data{
		"id":           p.ID,
		"vendor":       p.VendorID,
		"category":     idPtr(p.CategoryID),
		"name":         p.Name,
		"brand":        p.Brand,
		"price":        formatPrice(p.Price),
		"is_available": p.IsAvailable,
		"created_at":   formatTime(p.CreatedAt),
		"updated_at":   formatTime(p.UpdatedAt),
	})
}

func (s *ProductSerializer) RepresentList(products []model.Product) []Data {
	out := make([]Data, 0, len(products))
	for i := range products {
		out = append(out, s.Represent(&products[i]))
	}
	return out
}

// ProductInput 商品写入字段；vendor 创建后不可修改
type ProductInput struct {
	Vendor      *int64           `json:"vendor"`
	Category    NullableID       `json:"category"`
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	Brand       *string          `json:"brand" validate:"omitempty,max=255"`
	Price       *decimal.Decimal `json:"price" validate:"-"`
	Description *string          `json:"description" validate:"omitempty,max=10000"`
	IsAvailable *bool            `json:"is_available"`
	Quantity    *int             `json:"quantity" validate:"omitempty,gte=0"`
}

func DecodeProduct(body []byte, partial bool) (*ProductInput, error) {
	in := &ProductInput{}
	if err := decodeJSON(body, in); err != nil {
		return nil, err
	}
	verr := &apperr.ValidationError{}
	if !partial {
		required(verr, "vendor", in.Vendor == nil)
		required(verr, "name", in.Name == nil)
		required(verr, "price", in.Price == nil)
	}
	notBlank(verr, "name", in.Name)
	checkPrice(verr, "price", in.Price)
	validateStruct(in, verr)
	return in, finish(verr)
}

// NewProduct 创建时的默认值：上架、库存 1
func (in *ProductInput) NewProduct() *model.Product {
	p := &model.Product{IsAvailable: true, Quantity: 1}
	if in.Vendor != nil {
		p.VendorID = *in.Vendor
	}
	in.Apply(p)
	return p
}

// Apply 写入除 vendor 外的可写字段
func (in *ProductInput) Apply(p *model.Product) {
	if in.Category.Set {
		p.CategoryID = in.Category.Value
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
}

// ==================== Size ====================

var (
	SizeFields       = []string{"id", "product", "size", "quantity", "is_available", "created_at", "updated_at"}
	SizeCustomFields = []string{"id", "size", "is_available"}
)

const (
	MsgInvalidSize   = "Invalid value for size"
	MsgSizeOverflow  = "You cannot have more sizes for a product variant than product variant itself."
	MsgStockBelowSum = "Quantity cannot be lower than the total quantity of the product sizes."
)

type SizeSerializer struct {
	fieldSet
}

func NewSizeSerializer(fields ...string) *SizeSerializer {
	return &SizeSerializer{fieldSet: newFieldSet(SizeFields, fields)}
}

func NewSizeCustomSerializer() *SizeSerializer {
	return NewSizeSerializer(SizeCustomFields...)
}

func (s *SizeSerializer) Represent(sz *model.Size) Data {
	return s.pick(Data{
		"id":           sz.ID,
		"product":      sz.ProductID,
		"size":         sz.Size,
		"quantity":     sz.Quantity,
		"is_available": sz.IsAvailable,
		"created_at":   formatTime(sz.CreatedAt),
		"updated_at":   formatTime(sz.UpdatedAt),
	})
}

func (s *SizeSerializer) RepresentList(sizes []model.Size) []Data {
	out := make([]Data, 0, len(sizes))
	for i := range sizes {
		out = append(out, s.Represent(&sizes[i]))
	}
	return out
}

type SizeInput struct {
	Product     *int64  `json:"product"`
	Size        *string `json:"size" validate:"omitempty,max=32"`
	Quantity    *int    `json:"quantity" validate:"omitempty,gte=0"`
	IsAvailable *bool   `json:"is_available"`
}

// DecodeSize 解析尺码输入；尺码字典和库存上限需要查库，由 ValidateSizeLabel / ValidateSizeStock 完成
func DecodeSize(body []byte, partial bool) (*SizeInput, error) {
	in := &SizeInput{}
	if err := decodeJSON(body, in); err != nil {
		return nil, err
	}
	verr := &apperr.ValidationError{}
	if !partial {
		required(verr, "product", in.Product == nil)
		required(verr, "size", in.Size == nil)
	}
	validateStruct(in, verr)
	return in, finish(verr)
}

func (in *SizeInput) NewSize() *model.Size {
	sz := &model.Size{IsAvailable: true}
	in.Apply(sz)
	return sz
}

func (in *SizeInput) Apply(sz *model.Size) {
	if in.Product != nil {
		sz.ProductID = *in.Product
	}
	if in.Size != nil {
		sz.Size = *in.Size
	}
	if in.Quantity != nil {
		sz.Quantity = *in.Quantity
	}
	if in.IsAvailable != nil {
		sz.IsAvailable = *in.IsAvailable
	}
}

// ValidateSizeLabel 尺码必须在尺码字典中
func ValidateSizeLabel(known bool) error {
	if !known {
		return apperr.NewValidationError("size", MsgInvalidSize)
	}
	return nil
}

// ValidateSizeStock 同一商品其他尺码库存之和 + 本尺码库存不能超过商品库存
func ValidateSizeStock(otherSizesTotal, quantity, productQuantity int) error {
	if otherSizesTotal+quantity > productQuantity {
		return apperr.NewNonFieldError(MsgSizeOverflow)
	}
	return nil
}

// ValidateProductStock 商品库存不能低于现有尺码库存之和
func ValidateProductStock(quantity, sizesTotal int) error {
	if quantity < sizesTotal {
		return apperr.NewValidationError("quantity", MsgStockBelowSum)
	}
	return nil
}

// ==================== Image ====================

var (
	ImageFields       = []string{"id", "product", "url", "created_at", "updated_at"}
	ImageCustomFields = []string{"id", "url"}
)

type ImageSerializer struct {
	fieldSet
}

func NewImageSerializer(fields ...string) *ImageSerializer {
	return &ImageSerializer{fieldSet: newFieldSet(ImageFields, fields)}
}

func NewImageCustomSerializer() *ImageSerializer {
	return NewImageSerializer(ImageCustomFields...)
}

func (s *ImageSerializer) Represent(img *model.Image) Data {
	return s.pick(Data{
		"id":         img.ID,
		"product":    img.ProductID,
		"url":        img.URL,
		"created_at": formatTime(img.CreatedAt),
		"updated_at": formatTime(img.UpdatedAt),
	})
}

func (s *ImageSerializer) RepresentList(images []model.Image) []Data {
	out := make([]Data, 0, len(images))
	for i := range images {
		out = append(out, s.Represent(&images[i]))
	}
	return out
}

type ImageInput struct {
	Product *int64  `json:"product"`
	URL     *string `json:"url" validate:"omitempty,url,max=512"`
}

func DecodeImage(body []byte, partial bool) (*ImageInput, error) {
	in := &ImageInput{}
	if err := decodeJSON(body, in); err != nil {
		return nil, err
	}
	verr := &apperr.ValidationError{}
	if !partial {
		required(verr, "product", in.Product == nil)
		required(verr, "url", in.URL == nil)
	}
	validateStruct(in, verr)
	return in, finish(verr)
}

func (in *ImageInput) Apply(img *model.Image) {
	if in.Product != nil {
		img.ProductID = *in.Product
	}
	if in.URL != nil {
		img.URL = *in.URL
	}
}
