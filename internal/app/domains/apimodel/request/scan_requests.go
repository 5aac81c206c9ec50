package request

// UpdateNotesRequest 更新备注请求
type UpdateNotesRequest struct {
	Notes string `json:"notes" binding:"required" example:"Follow-up after beach holiday"`
}

// ListScansQuery 历史记录分页查询参数
type ListScansQuery struct {
	Page     int `form:"page,default=1" binding:"min=1" example:"1"`
	PageSize int `form:"limit,default=10" binding:"min=1,max=100" example:"10"`
}
