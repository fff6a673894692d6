package mocks

import (
	"context"
	"time"

	"bookit/internal/model"

	"github.com/stretchr/testify/mock"
)

type ExperienceServiceMock struct {
	mock.Mock
}

func NewExperienceServiceMock() *ExperienceServiceMock {
	return &ExperienceServiceMock{}
}

func (m *ExperienceServiceMock) List(ctx context.Context) ([]*model.Experience, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Experience), args.Error(1)
}

func (m *ExperienceServiceMock) GetWithSlots(ctx context.Context, id int, asOf time.Time) (*model.ExperienceDetail, error) {
	args := m.Called(ctx, id, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExperienceDetail), args.Error(1)
}
