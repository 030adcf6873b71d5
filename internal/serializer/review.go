package serializer

import (
	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
)

var (
	ReviewFields       = []string{"id", "user", "product", "stars", "comment", "created_at", "updated_at"}
	ReviewCustomFields = []string{"id", "product", "stars"}
)

type ReviewSerializer struct {
	fieldSet
}

func NewReviewSerializer(fields ...string) *ReviewSerializer {
	return &ReviewSerializer{fieldSet: newFieldSet(ReviewFields, fields)}
}

func NewReviewCustomSerializer() *ReviewSerializer {
	return NewReviewSerializer(ReviewCustomFields...)
}

// Represent user 输出作者邮箱，需预加载 User
func (s *ReviewSerializer) Represent(r *model.Review) Data {
	var author any
	if r.User != nil {
		author = r.User.Email
	}
	return s.pick(Data{
		"id":         r.ID,
		"user":       author,
		"product":    r.ProductID,
		"stars":      r.Stars,
		"comment":    r.Comment,
		"created_at": formatTime(r.CreatedAt),
		"updated_at": formatTime(r.UpdatedAt),
	})
}

func (s *ReviewSerializer) RepresentList(reviews []model.Review) []Data {
	out := make([]Data, 0, len(reviews))
	for i := range reviews {
		out = append(out, s.Represent(&reviews[i]))
	}
	return out
}

// ReviewInput product 创建后不可修改
type ReviewInput struct {
	Product *int64  `json:"product"`
	Stars   *int    `json:"stars" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,max=5000"`
}

func DecodeReview(body []byte, partial bool) (*ReviewInput, error) {
	in := &ReviewInput{}
	if err := decodeJSON(body, in); err != nil {
		return nil, err
	}
	verr := &apperr.ValidationError{}
	if !partial {
		required(verr, "product", in.Product == nil)
		required(verr, "stars", in.Stars == nil)
	}
	validateStruct(in, verr)
	return in, finish(verr)
}

func (in *ReviewInput) Apply(r *model.Review) {
	if in.Stars != nil {
		r.Stars = *in.Stars
	}
	if in.Comment != nil {
		r.Comment = *in.Comment
	}
}
