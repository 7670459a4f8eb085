package prompt

import "fmt"

// TaskPrompt 渲染后的任务指令与期望输出描述
type TaskPrompt struct {
	Description    string
	ExpectedOutput string
}

var defaultRegistry = NewRegistry()

// taskVars 各任务模板唯一的输入变量名
var taskVars = map[PromptID]string{
	PromptLessonPlanV1:        "topic",
	PromptCurriculumV1:        "subject",
	PromptLearningResourcesV1: "topic",
	PromptResourceAnalysisV1:  "document",
}

// 内置模板在包初始化时校验一次，之后的渲染不会失败
func init() {
	for id := range taskVars {
		build(id, "")
	}
}

// LessonPlan 课程教案任务
func LessonPlan(topic string) TaskPrompt {
	return build(PromptLessonPlanV1, topic)
}

// Curriculum 课程体系设计任务
func Curriculum(subject string) TaskPrompt {
	return build(PromptCurriculumV1, subject)
}

// LearningResources 互动教学资源任务
func LearningResources(topic string) TaskPrompt {
	return build(PromptLearningResourcesV1, topic)
}

// ResourceAnalysis 教学资料分析任务，document 为提取出的全文
func ResourceAnalysis(document string) TaskPrompt {
	return build(PromptResourceAnalysisV1, document)
}

func build(id PromptID, value string) TaskPrompt {
	tpl, err := defaultRegistry.Task(id)
	if err != nil {
		panic(fmt.Sprintf("prompt: load %s: %v", id, err))
	}
	desc, err := tpl.Render(map[string]any{taskVars[id]: value})
	if err != nil {
		panic(fmt.Sprintf("prompt: %v", err))
	}
	return TaskPrompt{Description: desc, ExpectedOutput: tpl.ExpectedOutput}
}
