package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/VibolSen/Backend/internal/dto"
)

func setupTestGroupService() (GroupService, *testRepos) {
	repos := newTestRepos()
	svc := NewGroupService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestGroupService_CRUD(t *testing.T) {
	svc, _ := setupTestGroupService()

	created, err := svc.Create(context.Background(), &dto.CreateGroupRequest{
		Name:         "Grade 10A",
		AcademicYear: "2026-2027",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if got.Name != "Grade 10A" || got.AcademicYear != "2026-2027" {
		t.Errorf("班组信息不符: %+v", got)
	}

	newName := "Grade 10B"
	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateGroupRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Name != "Grade 10B" || updated.AcademicYear != "2026-2027" {
		t.Errorf("仅提交的字段应变更: %+v", updated)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("删除后应返回 ErrGroupNotFound，实际: %v", err)
	}
}

func TestGroupService_NotFound(t *testing.T) {
	svc, _ := setupTestGroupService()

	if _, err := svc.GetByID(context.Background(), "nonexistent"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("期望 ErrGroupNotFound，实际: %v", err)
	}
	if err := svc.Delete(context.Background(), "nonexistent"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("期望 ErrGroupNotFound，实际: %v", err)
	}
}

