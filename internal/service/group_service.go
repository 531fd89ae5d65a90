package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/VibolSen/Backend/internal/dto"
	"github.com/VibolSen/Backend/internal/model"
	"github.com/VibolSen/Backend/internal/repository"
)

// ── 班组模块业务错误 ──

var (
	ErrGroupNotFound = errors.New("班组不存在")
)

// GroupService 班组业务接口
type GroupService interface {
	Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	GetByID(ctx context.Context, id string) (*dto.GroupResponse, error)
	List(ctx context.Context) ([]dto.GroupResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error)
	Delete(ctx context.Context, id string) error
}

type groupService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGroupService 创建 GroupService 实例
func NewGroupService(repo *repository.Repository, logger *zap.Logger) GroupService {
	return &groupService{repo: repo, logger: logger}
}

func (s *groupService) Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	group := &model.Group{
		Name:         req.Name,
		AcademicYear: req.AcademicYear,
	}

	if err := s.repo.Group.Create(ctx, group); err != nil {
		s.logger.Error("创建班组失败", zap.Error(err))
		return nil, err
	}
	return toGroupResponse(group), nil
}

func (s *groupService) GetByID(ctx context.Context, id string) (*dto.GroupResponse, error) {
	group, err := s.repo.Group.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("查询班组失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toGroupResponse(group), nil
}

func (s *groupService) List(ctx context.Context) ([]dto.GroupResponse, error) {
	groups, err := s.repo.Group.List(ctx)
	if err != nil {
		s.logger.Error("列出班组失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		result = append(result, *toGroupResponse(&groups[i]))
	}
	return result, nil
}

func (s *groupService) Update(ctx context.Context, id string, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error) {
	group, err := s.repo.Group.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("查询班组失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.AcademicYear != nil {
		group.AcademicYear = *req.AcademicYear
	}

	if err := s.repo.Group.Update(ctx, group); err != nil {
		s.logger.Error("更新班组失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toGroupResponse(group), nil
}

func (s *groupService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Group.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		s.logger.Error("查询班组失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Group.Delete(ctx, id); err != nil {
		s.logger.Error("删除班组失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toGroupResponse(group *model.Group) *dto.GroupResponse {
	return &dto.GroupResponse{
		ID:           group.GroupID,
		Name:         group.Name,
		AcademicYear: group.AcademicYear,
		CreatedAt:    group.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    group.UpdatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/group_service.go
