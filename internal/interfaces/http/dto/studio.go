package dto

import "edu-studio/internal/interfaces/http/ui"

// ActionRequest 文本类表单请求
type ActionRequest struct {
	Input string `json:"input"`
}

// ActionResponse 动作输出，原样返回模型文本
type ActionResponse struct {
	Form   string `json:"form"`
	Action string `json:"action"`
	Output string `json:"output"`
}

// FormListResponse 表单列表
type FormListResponse struct {
	Title string    `json:"title"`
	Forms []ui.Form `json:"forms"`
}

// MemoryResetResponse 记忆重置结果
type MemoryResetResponse struct {
	Cleared bool `json:"cleared"`
}
