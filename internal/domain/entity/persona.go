// Package entity 定义领域实体
package entity

// PersonaID 角色标识
type PersonaID string

const (
	PersonaContentCreator     PersonaID = "content_creator"
	PersonaCurriculumDesigner PersonaID = "curriculum_designer"
	PersonaResourceGenerator  PersonaID = "resource_generator"
	PersonaResourceAnalyzer   PersonaID = "resource_analyzer"
)

// Persona 智能体角色配置，进程启动时固定，之后不再修改
type Persona struct {
	ID        PersonaID `json:"id"`
	Role      string    `json:"role"`
	Goal      string    `json:"goal"`
	Backstory string    `json:"backstory"`
	// Verbose 为 true 时记录完整的任务与输出日志
	Verbose bool `json:"verbose"`
	// SharesMemory 为 true 时绑定共享会话记忆
	SharesMemory bool `json:"shares_memory"`
}

// DefaultPersonas 返回工作室内置的四个角色
func DefaultPersonas() []*Persona {
	return []*Persona{
		{
			ID:   PersonaContentCreator,
			Role: "Educational Content Specialist",
			Goal: "Create engaging lesson plans and learning materials",
			Backstory: "Expert instructional designer with 15+ years experience creating effective " +
				"educational content for K-12 and higher education. Specializes in making " +
				"complex topics accessible and engaging.",
			Verbose:      true,
			SharesMemory: true,
		},
		{
			ID:   PersonaCurriculumDesigner,
			Role: "Curriculum Architect",
			Goal: "Design comprehensive learning pathways",
			Backstory: "Education specialist with expertise in curriculum development aligned with " +
				"international standards (IB, Common Core, Cambridge). Creates scaffolded " +
				"learning sequences with multimodal approaches.",
		},
		{
			ID:   PersonaResourceGenerator,
			Role: "Learning Resource Creator",
			Goal: "Generate interactive learning activities",
			Backstory: "Digital learning expert who creates engaging exercises, assessments, " +
				"and multimedia resources using evidence-based pedagogical approaches.",
		},
		{
			ID:   PersonaResourceAnalyzer,
			Role: "Educational Resource Analyst",
			Goal: "Analyze and explain teaching materials",
			Backstory: "Instructional coach who helps educators understand and effectively " +
				"utilize teaching resources with practical implementation strategies.",
			SharesMemory: true,
		},
	}
}
