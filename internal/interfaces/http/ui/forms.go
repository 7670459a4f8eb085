// Package ui 定义工作室页面的表单与渲染模板
package ui

import (
	"embed"
	"html/template"

	"edu-studio/internal/domain/entity"
)

// InputKind 表单输入类型
type InputKind string

const (
	InputText InputKind = "text"
	InputPDF  InputKind = "pdf"
)

// Form 页面上的一个标签页：一个输入、一个按钮、一个输出
type Form struct {
	ID          string        `json:"id"`
	Tab         string        `json:"tab"`
	Heading     string        `json:"heading"`
	Kind        InputKind     `json:"kind"`
	InputLabel  string        `json:"input_label"`
	Placeholder string        `json:"placeholder,omitempty"`
	Accept      string        `json:"accept,omitempty"`
	OutputLabel string        `json:"output_label"`
	OutputLines int           `json:"output_lines"`
	Button      string        `json:"button"`
	Action      entity.Action `json:"action"`
}

// Forms 按页面顺序排列的四个表单
var Forms = []Form{
	{
		ID:          "lesson-planner",
		Tab:         "📝 Lesson Planner",
		Heading:     "Create Custom Lesson Plans",
		Kind:        InputText,
		InputLabel:  "Topic/Subject",
		Placeholder: "Enter a topic like 'Fractions' or 'World War II'",
		OutputLabel: "Generated Lesson Plan",
		OutputLines: 15,
		Button:      "Generate Lesson Plan",
		Action:      entity.ActionLessonPlan,
	},
	{
		ID:          "curriculum-designer",
		Tab:         "📚 Curriculum Designer",
		Heading:     "Design Complete Curriculums",
		Kind:        InputText,
		InputLabel:  "Subject Area",
		Placeholder: "e.g., Mathematics Grade 5, Biology High School",
		OutputLabel: "Curriculum Framework",
		OutputLines: 15,
		Button:      "Design Curriculum",
		Action:      entity.ActionCurriculum,
	},
	{
		ID:          "activity-generator",
		Tab:         "💡 Activity Generator",
		Heading:     "Create Teaching Resources",
		Kind:        InputText,
		InputLabel:  "Learning Topic",
		Placeholder: "Enter topic for activities and resources",
		OutputLabel: "Teaching Resources",
		OutputLines: 15,
		Button:      "Generate Resources",
		Action:      entity.ActionLearningResources,
	},
	{
		ID:          "resource-analyzer",
		Tab:         "🔍 Resource Analyzer",
		Heading:     "Analyze Educational Materials",
		Kind:        InputPDF,
		InputLabel:  "Upload Teaching Material (PDF)",
		Accept:      ".pdf",
		OutputLabel: "Analysis Report",
		OutputLines: 15,
		Button:      "Analyze Resource",
		Action:      entity.ActionResourceAnalysis,
	},
}

// Lookup 按 ID 查找表单
func Lookup(id string) (Form, bool) {
	for _, f := range Forms {
		if f.ID == id {
			return f, true
		}
	}
	return Form{}, false
}

//go:embed templates/*.html
var templatesFS embed.FS

// IndexTemplate 页面模板名
const IndexTemplate = "index.html"

// Templates 解析内嵌页面模板
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// Page 页面渲染数据
type Page struct {
	Title string
	Forms []Form
}
