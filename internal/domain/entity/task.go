package entity

// Action 工作室动作
type Action string

const (
	ActionLessonPlan        Action = "lesson_plan"
	ActionCurriculum        Action = "curriculum"
	ActionLearningResources Action = "learning_resources"
	ActionResourceAnalysis  Action = "resource_analysis"
)

// Task 单次提示请求：指令 + 期望输出 + 执行角色
type Task struct {
	Action         Action    `json:"action"`
	PersonaID      PersonaID `json:"persona_id"`
	Description    string    `json:"description"`
	ExpectedOutput string    `json:"expected_output"`
}

// NewTask 创建任务
func NewTask(action Action, persona PersonaID, description, expectedOutput string) *Task {
	return &Task{
		Action:         action,
		PersonaID:      persona,
		Description:    description,
		ExpectedOutput: expectedOutput,
	}
}
