package trip

import (
	"context"
	"fmt"

	"github.com/CarShareLink/CarShareLink/internal/common/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger 行程台账：行程归属某辆车，追加时强制校验预订不变量。
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) withCtx(ctx context.Context) *gorm.DB {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.WithContext(ctx)
}

// Append 在 carID 名下追加一条行程：
// - 校验 start < end，失败返回 InvalidTrip（落库之前，不产生半写）
// - 父车辆不存在返回 NotFound
// - 行程号取该车当前最大 id + 1（从 1 起）
// 三步在同一事务内完成。
func (l *Ledger) Append(ctx context.Context, carID uint, in TripInput) (*Trip, error) {
	db := l.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("ledger db is nil")
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	var created Trip
	err := db.Transaction(func(tx *gorm.DB) error {
		// 按表名查父记录数而不是引用 car 包，避免 car<->trip 循环依赖。
		// 对父记录加行锁，同车并发预订按序执行，行程号不会撞号。
		var n int64
		if err := tx.Table("cars").Where("id = ?", carID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Count(&n).Error; err != nil {
			return apperror.NewDatabase("failed to check car", err)
		}
		if n == 0 {
			return apperror.NewNotFound(fmt.Sprintf("car not found with id=%d", carID), nil)
		}

		var last struct {
			MaxID uint
		}
		if err := tx.Model(&Trip{}).
			Where("car_id = ?", carID).
			Select("COALESCE(MAX(id), 0) AS max_id").
			Scan(&last).Error; err != nil {
			return apperror.NewDatabase("failed to get next trip id", err)
		}

		created = FromInput(carID, last.MaxID+1, in)
		if err := tx.Create(&created).Error; err != nil {
			return apperror.NewDatabase("failed to create trip", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListFor 返回某辆车的全部行程，按追加顺序（行程号升序）。
// 车辆不存在时返回空列表而不是错误。
func (l *Ledger) ListFor(ctx context.Context, carID uint) ([]Trip, error) {
	db := l.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("ledger db is nil")
	}

	var trips []Trip
	if err := db.Where("car_id = ?", carID).Order("id asc").Find(&trips).Error; err != nil {
		return nil, apperror.NewDatabase("failed to list trips", err)
	}
	return trips, nil
}

// DeleteFor 删除某辆车的全部行程（车辆级联删除用，需在调用方事务内执行）。
func DeleteFor(tx *gorm.DB, carID uint) error {
	if err := tx.Where("car_id = ?", carID).Delete(&Trip{}).Error; err != nil {
		return apperror.NewDatabase("failed to delete trips", err)
	}
	return nil
}
