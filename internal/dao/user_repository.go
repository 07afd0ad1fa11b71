package dao

import (
	"context"

	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/model"

	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

func (r *userRepository) db(ctx context.Context) *gorm.DB {
	return r.dao.migrate("User").WithContext(ctx)
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:         m.UID,
		Username:    m.Username,
		Email:       m.Email,
		Password:    m.Password,
		DisplayName: m.DisplayName,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Prefix:      m.Prefix,
		Suffix:      m.Suffix,
		Link:        m.Link,
		Bio:         m.Bio,
		Affiliation: m.Affiliation,
		Institution: m.Institution,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// toModel 将领域模型转换为数据库模型
func (r *userRepository) toModel(u *domain.User) *model.User {
	return &model.User{
		UID:         u.UID,
		Username:    u.Username,
		Email:       u.Email,
		Password:    u.Password,
		DisplayName: u.DisplayName,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Prefix:      u.Prefix,
		Suffix:      u.Suffix,
		Link:        u.Link,
		Bio:         u.Bio,
		Affiliation: u.Affiliation,
		Institution: u.Institution,
	}
}

func (r *userRepository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var m model.User
	if err := r.db(ctx).Where(query, arg).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.toDomain(&m), nil
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	return r.first(ctx, "uid = ?", uid)
}

// GetByUIDs 批量获取用户
func (r *userRepository) GetByUIDs(ctx context.Context, uids []int64) (map[int64]*domain.User, error) {
	out := make(map[int64]*domain.User, len(uids))
	if len(uids) == 0 {
		return out, nil
	}
	var ms []*model.User
	if err := r.db(ctx).Where("uid IN ?", uids).Find(&ms).Error; err != nil {
		return nil, err
	}
	for _, m := range ms {
		out[m.UID] = r.toDomain(m)
	}
	return out, nil
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "username = ?", username)
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := r.toModel(user)
	if err := r.db(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// 确保 userRepository 实现了 domain.UserRepository 接口
var _ domain.UserRepository = (*userRepository)(nil)
