package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/VibolSen/Backend/internal/dto"
)

func setupTestRoomService() (RoomService, *testRepos) {
	repos := newTestRepos()
	svc := NewRoomService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestRoomService_Create_Success(t *testing.T) {
	svc, _ := setupTestRoomService()

	resp, err := svc.Create(context.Background(), &dto.CreateRoomRequest{
		Name:      "Lab 3",
		Capacity:  30,
		Resources: []string{"projector", "whiteboard"},
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Type != "CLASSROOM" {
		t.Errorf("缺省类型应为 CLASSROOM，实际 %s", resp.Type)
	}
	if resp.Status != "AVAILABLE" {
		t.Errorf("初始状态应为 AVAILABLE，实际 %s", resp.Status)
	}
	if len(resp.Resources) != 2 {
		t.Errorf("资源列表应保留，实际 %v", resp.Resources)
	}
}

func TestRoomService_Create_NameTaken(t *testing.T) {
	svc, _ := setupTestRoomService()

	if _, err := svc.Create(context.Background(), &dto.CreateRoomRequest{Name: "Lab 3"}); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	_, err := svc.Create(context.Background(), &dto.CreateRoomRequest{Name: "Lab 3"})
	if !errors.Is(err, ErrRoomNameTaken) {
		t.Errorf("期望 ErrRoomNameTaken，实际: %v", err)
	}
}

func TestRoomService_Update_NameConflict(t *testing.T) {
	svc, _ := setupTestRoomService()

	if _, err := svc.Create(context.Background(), &dto.CreateRoomRequest{Name: "Lab 1"}); err != nil {
		t.Fatalf("创建应成功: %v", err)
	}
	second, err := svc.Create(context.Background(), &dto.CreateRoomRequest{Name: "Lab 2"})
	if err != nil {
		t.Fatalf("创建应成功: %v", err)
	}

	newName := "Lab 1"
	if _, err := svc.Update(context.Background(), second.ID, &dto.UpdateRoomRequest{Name: &newName}); !errors.Is(err, ErrRoomNameTaken) {
		t.Errorf("改名撞名应返回 ErrRoomNameTaken，实际: %v", err)
	}

	// 改回自身名称不算冲突
	sameName := "Lab 2"
	if _, err := svc.Update(context.Background(), second.ID, &dto.UpdateRoomRequest{Name: &sameName}); err != nil {
		t.Errorf("保持原名的更新不应冲突: %v", err)
	}
}

func TestRoomService_Update_PartialFields(t *testing.T) {
	svc, _ := setupTestRoomService()

	created, err := svc.Create(context.Background(), &dto.CreateRoomRequest{Name: "Lab 1", Capacity: 20})
	if err != nil {
		t.Fatalf("创建应成功: %v", err)
	}

	capacity := 45
	status := "MAINTENANCE"
	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateRoomRequest{
		Capacity: &capacity,
		Status:   &status,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Name != "Lab 1" {
		t.Errorf("未提交的字段不应变更，实际 name=%s", updated.Name)
	}
	if updated.Capacity != 45 || updated.Status != "MAINTENANCE" {
		t.Errorf("提交的字段应生效: capacity=%d status=%s", updated.Capacity, updated.Status)
	}
}

func TestRoomService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestRoomService()

	if err := svc.Delete(context.Background(), "nonexistent"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("期望 ErrRoomNotFound，实际: %v", err)
	}
}

