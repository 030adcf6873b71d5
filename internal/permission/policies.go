package permission

// 各资源的访问策略
//
// 创建操作带对象级判定时，校验对象是新记录所挂靠的父对象：
// Product 校验 Vendor，Size / Image 校验 Product。

var (
	UserPolicy = Policy{
		Actions: map[Action]Predicate{
			ActionCreate:   AllowAny,
			ActionRetrieve: Or(IsOwner, IsAdmin),
			ActionList:     IsAdmin,
			ActionDestroy:  IsOwner,
		},
		Default: IsOwner,
	}

	ProductPolicy = Policy{
		Actions: map[Action]Predicate{
			ActionCreate:   And(IsAVendor, IsVendorOwner),
			ActionRetrieve: AllowAny,
			ActionList:     AllowAny,
			ActionDestroy:  Or(IsVendorOwner, IsAdmin),
		},
		Default: IsVendorOwner,
	}

	SizePolicy = Policy{
		Actions: map[Action]Predicate{
			ActionCreate:   IsVendorOwner,
			ActionRetrieve: AllowAny,
			ActionList:     AllowAny,
			ActionDestroy:  IsVendorOwner,
		},
		Default: IsVendorOwner,
	}

	ImagePolicy = Policy{
		Actions: map[Action]Predicate{
			ActionCreate:   IsVendorOwner,
			ActionRetrieve: AllowAny,
			ActionList:     AllowAny,
			ActionDestroy:  Or(IsVendorOwner, IsAdmin),
		},
		Default: IsVendorOwner,
	}

	CategoryPolicy = Policy{
		Actions: map[Action]Predicate{
			ActionCreate:   IsAdmin,
			ActionRetrieve: AllowAny,
			ActionList:     AllowAny,
			ActionDestroy:  IsAdmin,
		},
		Default: IsAdmin,
	}

	VendorPolicy = Policy{
		Actions: map[Action]Predicate{
			ActionCreate:   IsAuthenticated,
			ActionRetrieve: AllowAny,
			ActionList:     AllowAny,
			ActionDestroy:  Or(IsOwner, IsAdmin),
		},
		Default: Or(IsOwner, IsAdmin),
	}

	OrderItemPolicy = Policy{
		Default: Or(IsAdmin, IsOwner),
	}

	OrderPolicy = Policy{
		Actions: map[Action]Predicate{
			ActionCreate:   IsAuthenticated,
			ActionRetrieve: Or(IsOwner, IsAdmin),
			ActionList:     Or(IsOwner, IsAdmin),
			ActionDestroy:  Or(IsOwner, IsAdmin),
		},
		Default: Deny,
	}

	CartPolicy = Policy{
		Actions: map[Action]Predicate{
			ActionCreate: IsAuthenticated,
		},
		Default: Or(IsOwner, IsAdmin),
	}
)

// NewReviewPolicy 评价策略依赖购买记录查询
func NewReviewPolicy(isCustomer CustomerChecker) Policy {
	return Policy{
		Actions: map[Action]Predicate{
			ActionCreate:   Or(CanReview(isCustomer), IsAdmin),
			ActionRetrieve: AllowAny,
			ActionList:     AllowAny,
			ActionDestroy:  Or(IsOwner, IsAdmin),
		},
		Default: Or(IsOwner, IsAdmin),
	}
}
