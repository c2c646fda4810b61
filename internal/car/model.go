package car

import (
	"fmt"
	"time"

	"github.com/CarShareLink/CarShareLink/internal/common/apperror"
)

// 枚举取值（持久化为字符串）。
const (
	FuelGasoline = "gasoline"
	FuelElectric = "electric"
	FuelHybrid   = "hybrid"
	FuelDiesel   = "diesel"

	TransmissionAuto   = "auto"
	TransmissionManual = "manual"
)

// Car 是 cars 表的 GORM 模型。id 建表时自增分配，创建后不可变更；
// 其余字段均可原地更新。行程不在这里挂关联，由 trip.Ledger 按 car_id 派生查询。
type Car struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Size         string    `gorm:"size:16;not null" json:"size"`
	Fuel         string    `gorm:"size:16;not null;default:'electric'" json:"fuel"`
	Doors        int       `gorm:"not null" json:"doors"`
	Transmission string    `gorm:"size:16;not null;default:'auto'" json:"transmission"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

// CarInput 创建/更新入参（无 id）。fuel/transmission 缺省时取 electric/auto。
type CarInput struct {
	Size         string `json:"size"`
	Fuel         string `json:"fuel"`
	Doors        int    `json:"doors"`
	Transmission string `json:"transmission"`
}

// CarOutput 对外输出（含 id，不含内部时间戳）。
type CarOutput struct {
	ID           uint   `json:"id"`
	Size         string `json:"size"`
	Fuel         string `json:"fuel"`
	Doors        int    `json:"doors"`
	Transmission string `json:"transmission"`
}

// Validate 入参校验（普通校验错误，边界层映射为 400）。
func (in CarInput) Validate() error {
	if in.Size == "" {
		return apperror.NewValidation("size required", nil)
	}
	if in.Doors <= 0 {
		return apperror.NewValidation(fmt.Sprintf("doors must be positive, got %d", in.Doors), nil)
	}
	return nil
}

// apply 把入参写入模型的全部可变字段（id 不动），缺省值在这里补齐。
func (in CarInput) apply(c *Car) {
	c.Size = in.Size
	c.Doors = in.Doors
	c.Fuel = in.Fuel
	if c.Fuel == "" {
		c.Fuel = FuelElectric
	}
	c.Transmission = in.Transmission
	if c.Transmission == "" {
		c.Transmission = TransmissionAuto
	}
}

// FromInput 由入参构造持久化模型（显式字段映射，不做结构体嵌套继承）。
func FromInput(in CarInput) Car {
	var c Car
	in.apply(&c)
	return c
}

// ToOutput 持久化模型到输出的映射。
func ToOutput(c *Car) CarOutput {
	return CarOutput{
		ID:           c.ID,
		Size:         c.Size,
		Fuel:         c.Fuel,
		Doors:        c.Doors,
		Transmission: c.Transmission,
	}
}

// ToOutputs 批量映射，保持输入顺序。
func ToOutputs(cars []Car) []CarOutput {
	out := make([]CarOutput, 0, len(cars))
	for i := range cars {
		out = append(out, ToOutput(&cars[i]))
	}
	return out
}
