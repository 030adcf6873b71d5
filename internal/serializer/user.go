package serializer

import (
	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
)

// UserFields User 的默认字段，password 只写不读
var UserFields = []string{
	"id", "email", "username", "first_name", "last_name",
	"is_active", "is_staff", "is_vendor", "last_login", "date_joined", "auth_token",
}

// UserSerializer 用户表示，不支持动态字段
type UserSerializer struct{}

func NewUserSerializer() *UserSerializer {
	return &UserSerializer{}
}

func (s *UserSerializer) Represent(u *model.User) Data {
	var token any
	if u.AuthToken != nil {
		token = u.AuthToken.Key
	}
	return Data{
		"id":          u.ID,
		"email":       u.Email,
		"username":    u.Username,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"is_active":   u.IsActive,
		"is_staff":    u.IsStaff,
		"is_vendor":   u.IsVendor,
		"last_login":  formatTimePtr(u.LastLogin),
		"date_joined": formatTime(u.DateJoined),
		"auth_token":  token,
	}
}

func (s *UserSerializer) RepresentList(users []model.User) []Data {
	out := make([]Data, 0, len(users))
	for i := range users {
		out = append(out, s.Represent(&users[i]))
	}
	return out
}

// UserInput 用户写入字段，角色标记只读
type UserInput struct {
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	Username  *string `json:"username" validate:"omitempty,max=150"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=128"`
}

// DecodeUser 解析并校验用户输入，partial 为 PATCH 语义
func DecodeUser(body []byte, partial bool) (*UserInput, error) {
	in := &UserInput{}
	if err := decodeJSON(body, in); err != nil {
		return nil, err
	}

	verr := &apperr.ValidationError{}
	if !partial {
		required(verr, "email", in.Email == nil)
		required(verr, "password", in.Password == nil)
	}
	notBlank(verr, "email", in.Email)
	notBlank(verr, "password", in.Password)
	validateStruct(in, verr)
	return in, finish(verr)
}

// Apply 写入模型，密码需调用方单独处理
func (in *UserInput) Apply(u *model.User) {
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
}

// LoginInput 登录请求
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func DecodeLogin(body []byte) (*LoginInput, error) {
	in := &LoginInput{}
	if err := decodeJSON(body, in); err != nil {
		return nil, err
	}
	verr := &apperr.ValidationError{}
	validateStruct(in, verr)
	return in, finish(verr)
}
