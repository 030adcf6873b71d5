package middleware

import (
	"context"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ==================== 操作人上下文 ====================

type actorKey struct{}

// Actor 发起写操作的用户
type Actor struct {
	UserID int64
	Email  string
}

// WithAuditInfo 把操作人写入 context
func WithAuditInfo(ctx context.Context, userID int64, email string) context.Context {
	return context.WithValue(ctx, actorKey{}, Actor{UserID: userID, Email: email})
}

// ActorFrom 读取操作人，匿名请求返回 false
func ActorFrom(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok && a.UserID > 0
}

// GetAuditUserID 操作人 ID，匿名为 0
func GetAuditUserID(ctx context.Context) int64 {
	a, _ := ActorFrom(ctx)
	return a.UserID
}

// AuditContext 在认证之后挂载，使服务层写库时能记录 created_by / updated_by
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := GetUserID(c); id > 0 {
			c.Request = c.Request.WithContext(WithAuditInfo(c.Request.Context(), id, GetEmail(c)))
		}
		c.Next()
	}
}

// ==================== GORM 回调 ====================

const (
	createdByField = "CreatedBy"
	updatedByField = "UpdatedBy"
)

// RegisterAuditCallbacks 注册写入操作人的回调
func RegisterAuditCallbacks(db *gorm.DB) {
	_ = db.Callback().Create().Before("gorm:create").Register("storefront:audit_create", func(tx *gorm.DB) {
		actor, ok := ActorFrom(tx.Statement.Context)
		if !ok || tx.Statement.Schema == nil {
			return
		}
		fillZero(tx, createdByField, actor.UserID)
		fillZero(tx, updatedByField, actor.UserID)
	})

	// Updates(map) 与 Save(struct) 都经过 SetColumn
	_ = db.Callback().Update().Before("gorm:update").Register("storefront:audit_update", func(tx *gorm.DB) {
		actor, ok := ActorFrom(tx.Statement.Context)
		if !ok || tx.Statement.Schema == nil {
			return
		}
		if f := tx.Statement.Schema.LookUpField(updatedByField); f != nil {
			tx.Statement.SetColumn(f.DBName, actor.UserID, true)
		}
	})
}

// fillZero 仅填充尚未赋值的字段，支持批量插入
func fillZero(tx *gorm.DB, name string, value int64) {
	field := tx.Statement.Schema.LookUpField(name)
	if field == nil {
		return
	}

	rv := tx.Statement.ReflectValue
	switch rv.Kind() {
	case reflect.Struct:
		setIfZero(tx.Statement.Context, field, rv, value)
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			setIfZero(tx.Statement.Context, field, reflect.Indirect(rv.Index(i)), value)
		}
	}
}

func setIfZero(ctx context.Context, field *schema.Field, rv reflect.Value, value int64) {
	if _, zero := field.ValueOf(ctx, rv); zero {
		_ = field.Set(ctx, rv, value)
	}
}
