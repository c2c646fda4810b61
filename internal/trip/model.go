package trip

import (
	"fmt"
	"time"

	"github.com/CarShareLink/CarShareLink/internal/common/apperror"
)

// Trip 是 trips 表的 GORM 模型。
// (car_id, id) 为复合主键：id 在所属车辆内从 1 起单调递增，
// 库级约束保证同一辆车下不会出现重复行程号。
// 行程创建后不可变更，没有 update/delete 操作。
type Trip struct {
	CarID       uint      `gorm:"primaryKey;autoIncrement:false" json:"car_id"`
	ID          uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Start       int       `gorm:"not null" json:"start"`
	End         int       `gorm:"not null" json:"end"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
}

// TripInput 创建行程的入参（无 id，所属车辆由路径决定）。
type TripInput struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Description string `json:"description"`
}

// TripOutput 对外输出（含 id，不含内部字段）。
type TripOutput struct {
	ID          uint   `json:"id"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Description string `json:"description"`
}

// Validate 预订不变量：start 必须严格小于 end。
// 违反时返回专用 InvalidTrip 错误（边界层映射为 422，而非普通 400）。
func (in TripInput) Validate() error {
	if in.Start >= in.End {
		return apperror.NewInvalidTrip(fmt.Sprintf("trip start %d must be before end %d", in.Start, in.End))
	}
	return nil
}

// FromInput 由入参构造持久化模型（显式字段映射，不做结构体嵌套继承）。
func FromInput(carID, id uint, in TripInput) Trip {
	return Trip{
		CarID:       carID,
		ID:          id,
		Start:       in.Start,
		End:         in.End,
		Description: in.Description,
	}
}

// ToOutput 持久化模型到输出的映射。
func ToOutput(t *Trip) TripOutput {
	return TripOutput{
		ID:          t.ID,
		Start:       t.Start,
		End:         t.End,
		Description: t.Description,
	}
}

// ToOutputs 批量映射，保持输入顺序。
func ToOutputs(trips []Trip) []TripOutput {
	out := make([]TripOutput, 0, len(trips))
	for i := range trips {
		out = append(out, ToOutput(&trips[i]))
	}
	return out
}
