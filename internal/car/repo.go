package car

import (
	"context"
	"fmt"

	"github.com/CarShareLink/CarShareLink/internal/trip"
	"gorm.io/gorm"
)

// ListFilter 车辆列表过滤条件；零值表示不过滤。
type ListFilter struct {
	Size     string // 尺寸精确匹配
	MinDoors int    // >0 时要求 doors >= MinDoors
}

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) withCtx(ctx context.Context) *gorm.DB {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx)
}

// List 按过滤条件返回车辆，插入顺序（id 升序），不分页。
func (r *Repo) List(ctx context.Context, f ListFilter) ([]Car, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}

	q := db.Model(&Car{})
	if f.Size != "" {
		q = q.Where("size = ?", f.Size)
	}
	if f.MinDoors > 0 {
		q = q.Where("doors >= ?", f.MinDoors)
	}

	var cars []Car
	if err := q.Order("id asc").Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *Repo) FindByID(ctx context.Context, id uint) (*Car, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var c Car
	if err := db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Create(ctx context.Context, c *Car) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(c).Error
}

func (r *Repo) Save(ctx context.Context, c *Car) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Save(c).Error
}

// DeleteCascade 删除车辆及其名下全部行程（同一事务）。
// 车辆不存在返回 gorm.ErrRecordNotFound，由上层映射。
func (r *Repo) DeleteCascade(ctx context.Context, id uint) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := trip.DeleteFor(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&Car{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
