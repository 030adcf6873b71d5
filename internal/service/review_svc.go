package service

import (
	"context"

	log "github.com/sirupsen/logrus"

	"storefront_api/internal/model"
	"storefront_api/internal/permission"
	"storefront_api/internal/repository"
	"storefront_api/internal/serializer"
)

// ==================== ReviewService 评价服务 ====================

type ReviewService struct {
	store  *repository.Store
	policy permission.Policy
}

// NewReviewService 买过商品的用户才能评价，购买记录在下单时写入 product_customers
func NewReviewService(store *repository.Store) *ReviewService {
	s := &ReviewService{store: store}
	s.policy = permission.NewReviewPolicy(s.isCustomer)
	return s
}

func (s *ReviewService) isCustomer(ctx context.Context, productID, userID int64) bool {
	ok, err := s.store.Products.IsCustomer(ctx, productID, userID)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"product_id": productID, "user_id": userID}).Error("查询购买记录失败")
		return false
	}
	return ok
}

func (s *ReviewService) List(ctx context.Context, user *model.User, q ListQuery) ([]model.Review, error) {
	if err := s.policy.Check(ctx, user, permission.ActionList); err != nil {
		return nil, err
	}
	return s.store.Reviews.List(ctx, repository.ReviewFilter{
		ProductID:  q.ProductID,
		UserID:     q.OwnerID,
		Pagination: q.pagination(),
	})
}

func (s *ReviewService) Retrieve(ctx context.Context, user *model.User, id int64) (*model.Review, error) {
	return s.load(ctx, user, permission.ActionRetrieve, id)
}

func (s *ReviewService) load(ctx context.Context, user *model.User, action permission.Action, id int64) (*model.Review, error) {
	if err := s.policy.Check(ctx, user, action); err != nil {
		return nil, err
	}
	review, err := s.store.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckObject(ctx, user, action, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Create 对象级校验的对象是被评价的商品
func (s *ReviewService) Create(ctx context.Context, user *model.User, body []byte) (*model.Review, error) {
	if err := s.policy.Check(ctx, user, permission.ActionCreate); err != nil {
		return nil, err
	}
	in, err := serializer.DecodeReview(body, false)
	if err != nil {
		return nil, err
	}
	product, err := related(ctx, "product", *in.Product, s.store.Products.GetByID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckObject(ctx, user, permission.ActionCreate, product); err != nil {
		return nil, err
	}

	review := &model.Review{UserID: user.ID, ProductID: product.ID}
	in.Apply(review)
	if err := s.store.Reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	review.User = user
	return review, nil
}

// Update product 不可修改
func (s *ReviewService) Update(ctx context.Context, user *model.User, id int64, body []byte, partial bool) (*model.Review, error) {
	review, err := s.load(ctx, user, writeAction(partial), id)
	if err != nil {
		return nil, err
	}
	in, err := serializer.DecodeReview(body, partial)
	if err != nil {
		return nil, err
	}
	in.Apply(review)
	if err := s.store.Reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Destroy(ctx context.Context, user *model.User, id int64) error {
	review, err := s.load(ctx, user, permission.ActionDestroy, id)
	if err != nil {
		return err
	}
	return s.store.Reviews.Delete(ctx, review.ID)
}
