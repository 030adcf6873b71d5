package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"storefront_api/internal/apperr"
)

// Data 实体的对外表示
type Data map[string]any

// ==================== 动态字段 ====================

// SelectFields 计算生效字段：默认字段 ∩ 允许字段，allowed 为 nil 时返回全部默认字段。
// 结果保持默认字段的顺序。
func SelectFields(defaults []string, allowed []string) []string {
	if allowed == nil {
		out := make([]string, len(defaults))
		copy(out, defaults)
		return out
	}

	set := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		set[f] = struct{}{}
	}

	out := make([]string, 0, len(defaults))
	for _, f := range defaults {
		if _, ok := set[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// ParseFields 解析 ?fields=id,name 查询参数，空串返回 nil（即默认字段）
func ParseFields(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// fieldSet 带动态字段能力的序列化器公共部分
type fieldSet struct {
	fields []string
}

func newFieldSet(defaults []string, allowed []string) fieldSet {
	return fieldSet{fields: SelectFields(defaults, allowed)}
}

// Fields 生效字段
func (f fieldSet) Fields() []string {
	return f.fields
}

// pick 只保留生效字段
func (f fieldSet) pick(all Data) Data {
	out := make(Data, len(f.fields))
	for _, name := range f.fields {
		if v, ok := all[name]; ok {
			out[name] = v
		}
	}
	return out
}

// ==================== 输入解析 ====================

// NullableID 可区分“未传”和“显式 null”的外键字段
type NullableID struct {
	Set   bool
	Value *int64
}

func (n *NullableID) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

// decodeJSON 解析请求体，类型错误映射为字段错误
func decodeJSON(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperr.NewValidationError(typeErr.Field, "Incorrect type. Expected "+typeErr.Type.String()+".")
		}
		return apperr.NewNonFieldError("JSON parse error - " + err.Error())
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 错误信息使用 json 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct 执行 struct tag 校验，错误写入 verr
func validateStruct(s any, verr *apperr.ValidationError) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		verr.Add(apperr.NonFieldErrors, err.Error())
		return
	}

	for _, fe := range errs {
		field := fe.Namespace()
		// 去掉顶层结构体名
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		verr.Add(field, messageFor(fe))
	}
}

func messageFor(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return "Invalid value."
	}
}

// required 创建/全量更新时的必填校验
func required(verr *apperr.ValidationError, field string, missing bool) {
	if missing {
		verr.Add(field, "This field is required.")
	}
}

// notBlank 字符串字段不允许为空白
func notBlank(verr *apperr.ValidationError, field string, v *string) {
	if v != nil && strings.TrimSpace(*v) == "" {
		verr.Add(field, "This field may not be blank.")
	}
}

// checkPrice 价格非负且最多两位小数
func checkPrice(verr *apperr.ValidationError, field string, v *decimal.Decimal) {
	if v == nil {
		return
	}
	if v.IsNegative() {
		verr.Add(field, "Ensure this value is greater than or equal to 0.")
		return
	}
	if v.Exponent() < -2 && !v.Equal(v.Round(2)) {
		verr.Add(field, "Ensure that there are no more than 2 decimal places.")
	}
}

func finish(verr *apperr.ValidationError) error {
	if verr.Empty() {
		return nil
	}
	return verr
}

// ==================== 输出辅助 ====================

func formatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func idPtr(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
