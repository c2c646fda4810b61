package booking

import (
	"context"
	"fmt"

	"github.com/CarShareLink/CarShareLink/internal/car"
	"github.com/CarShareLink/CarShareLink/internal/trip"
)

// CarResolver 解析车辆是否存在（车队服务实现）。
type CarResolver interface {
	Get(ctx context.Context, id uint) (*car.Car, error)
}

// TripAppender 追加行程并分配车内单调递增 id（行程账本实现）。
type TripAppender interface {
	Append(ctx context.Context, carID uint, in trip.TripInput) (*trip.Trip, error)
}

// Service 预订用例：先确认车辆存在，再校验时间窗，最后落账。
// 三步失败各自保持原错误类型（NotFound / InvalidTrip），边界层据此映射状态码。
type Service struct {
	cars  CarResolver
	trips TripAppender
}

func NewService(cars CarResolver, trips TripAppender) *Service {
	return &Service{cars: cars, trips: trips}
}

func (s *Service) BookTrip(ctx context.Context, carID uint, in trip.TripInput) (*trip.Trip, error) {
	if s == nil || s.cars == nil || s.trips == nil {
		return nil, fmt.Errorf("service not initialized")
	}

	if _, err := s.cars.Get(ctx, carID); err != nil {
		return nil, err
	}

	// 提前校验，避免无效窗口进入账本事务。
	if err := in.Validate(); err != nil {
		return nil, err
	}

	return s.trips.Append(ctx, carID, in)
}
