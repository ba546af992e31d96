package dto

// ── 周知トピック / 問い合わせ / 手順モジュール DTO ──

// CreateTopicRequest 创建周知请求
type CreateTopicRequest struct {
	Title   string `json:"title"   binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

// UpdateTopicRequest 更新周知请求
type UpdateTopicRequest struct {
	Title   string `json:"title"   binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

// TopicResponse 周知响应
type TopicResponse struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	PostedBy         *string `json:"posted_by,omitempty"`
	PostedByUsername *string `json:"posted_by_username,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// CreateInquiryRequest 创建問い合わせ请求
type CreateInquiryRequest struct {
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required"`
}

// UpdateInquiryStatusRequest 更新問い合わせ状态请求
type UpdateInquiryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress resolved"`
}

// InquiryResponse 問い合わせ响应
type InquiryResponse struct {
	ID                string  `json:"id"`
	Subject           string  `json:"subject"`
	Message           string  `json:"message"`
	CreatedByID       *string `json:"created_by_id,omitempty"`
	CreatedByUsername *string `json:"created_by_username,omitempty"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// ProcedureListRequest 手順列表过滤参数
type ProcedureListRequest struct {
	Category    string `form:"category"`
	MachineName string `form:"machine_name"`
	UnitName    string `form:"unit_name"`
	Search      string `form:"search"`
}

// CreateProcedureRequest 创建手順请求
type CreateProcedureRequest struct {
	Title       string  `json:"title"        binding:"required,max=200"`
	Content     string  `json:"content"      binding:"required"`
	Category    string  `json:"category"     binding:"required,max=50"`
	MachineName *string `json:"machine_name" binding:"omitempty,max=100"`
	UnitName    *string `json:"unit_name"    binding:"omitempty,max=100"`
}

// UpdateProcedureRequest 更新手順请求（部分更新）
type UpdateProcedureRequest struct {
	Title       *string `json:"title"        binding:"omitempty,max=200"`
	Content     *string `json:"content"`
	Category    *string `json:"category"     binding:"omitempty,max=50"`
	MachineName *string `json:"machine_name" binding:"omitempty,max=100"`
	UnitName    *string `json:"unit_name"    binding:"omitempty,max=100"`
}

// CreateProcedureCommentRequest 手順コメント请求
type CreateProcedureCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ProcedureResponse 手順响应
type ProcedureResponse struct {
	ID          string                     `json:"id"`
	Title       string                     `json:"title"`
	Content     string                     `json:"content"`
	Category    string                     `json:"category"`
	MachineName *string                    `json:"machine_name,omitempty"`
	UnitName    *string                    `json:"unit_name,omitempty"`
	CreatedBy   *string                    `json:"created_by,omitempty"`
	CreatedAt   string                     `json:"created_at"`
	UpdatedAt   string                     `json:"updated_at"`
	Comments    []ProcedureCommentResponse `json:"comments,omitempty"`
}

// ProcedureCommentResponse 手順コメント响应
type ProcedureCommentResponse struct {
	ID          string  `json:"id"`
	ProcedureID string  `json:"procedure_id"`
	Content     string  `json:"content"`
	CommentedBy *string `json:"commented_by,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// [自证通过] internal/dto/topic.go
